package generator

import (
	"time"
)

// Params is everything that determines a dataset's contents.
type Params struct {
	CustomerCount int
	ProductCount  int
	OrderCount    int
	Seed          uint64
	Reference     time.Time
}

// Validate checks every count up front so a bad order count fails before any work is done.
func (p Params) Validate() error {
	if err := validateCount("customer_count", p.CustomerCount); err != nil {
		return err
	}
	if err := validateCount("product_count", p.ProductCount); err != nil {
		return err
	}
	return validateCount("order_count", p.OrderCount)
}

// Dataset holds the three generated tables of one run.
type Dataset struct {
	Customers Customers
	Products  Products
	Orders    Orders
}

// Build generates customers, then products, then orders from a single source
// seeded with p.Seed. Orders reference the id ranges of the generated
// customers and products.
func Build(p Params) (*Dataset, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r := NewSource(p.Seed)

	customers, err := GenerateCustomers(r, p.Reference, p.CustomerCount)
	if err != nil {
		return nil, err
	}
	products, err := GenerateProducts(r, p.Reference, p.ProductCount)
	if err != nil {
		return nil, err
	}
	orders, err := GenerateOrders(r, p.Reference, p.OrderCount, customers.IDs(), products.IDs())
	if err != nil {
		return nil, err
	}

	return &Dataset{Customers: customers, Products: products, Orders: orders}, nil
}
