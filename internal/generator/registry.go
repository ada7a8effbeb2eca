package generator

import (
	"fmt"
	"time"
)

// TableSpec describes one output table: how it is named on disk and how to
// pick it out of a Dataset.
type TableSpec struct {
	Name        string
	Description string
	// FileName returns the output file name for a run at the given reference time
	FileName func(ref time.Time) string
	Select   func(ds *Dataset) Table
}

// Registry lists the tables in write order
var Registry = []TableSpec{
	{
		Name:        "customers",
		Description: "Customer master data: id, name, email, region, status, lifetime value",
		FileName:    func(time.Time) string { return "customers_full.csv" },
		Select:      func(ds *Dataset) Table { return ds.Customers },
	},
	{
		Name:        "products",
		Description: "Product catalog: id, name, category, list price, stock",
		FileName:    func(time.Time) string { return "products_full.csv" },
		Select:      func(ds *Dataset) Table { return ds.Products },
	},
	{
		Name:        "orders",
		Description: "Daily orders referencing customers and products",
		FileName:    func(ref time.Time) string { return "orders_" + ref.Format("2006-01-02") + ".csv" },
		Select:      func(ds *Dataset) Table { return ds.Orders },
	},
}

// Get returns a table spec by name
func Get(name string) (TableSpec, error) {
	for _, spec := range Registry {
		if spec.Name == name {
			return spec, nil
		}
	}
	return TableSpec{}, fmt.Errorf("unknown table: %s", name)
}

// List returns all table names in write order
func List() []string {
	names := make([]string, 0, len(Registry))
	for _, spec := range Registry {
		names = append(names, spec.Name)
	}
	return names
}
