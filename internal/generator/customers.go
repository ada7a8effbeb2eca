package generator

import (
	"math/rand/v2"
	"strconv"
	"time"
)

var regions = []string{"North", "South", "East", "West"}

var customerStatuses = []string{"Active", "Inactive", "Churned"}

var customerHeader = []string{
	"customer_id",
	"customer_name",
	"email",
	"region",
	"status",
	"customer_lifetime_value",
	"created_date",
	"updated_date",
}

// Customer is one row of the customers table.
type Customer struct {
	ID            int
	Name          string
	Email         string
	Region        string
	Status        string
	LifetimeValue float64
	CreatedDate   time.Time
	UpdatedDate   time.Time
}

// Customers is the customers table.
type Customers []Customer

// GenerateCustomers builds count customers with ids 1..count.
// Timestamps are days before ref; UpdatedDate never precedes CreatedDate.
func GenerateCustomers(r *rand.Rand, ref time.Time, count int) (Customers, error) {
	if err := validateCount("customer_count", count); err != nil {
		return nil, err
	}

	customers := make(Customers, count)
	for i := range customers {
		id := i + 1
		region := pick(r, regions)
		status := pick(r, customerStatuses)
		ltv := uniform(r, 100, 50000)
		created := daysBefore(r, ref, 1, 365)
		updated := notBefore(daysBefore(r, ref, 0, 30), created)

		customers[i] = Customer{
			ID:            id,
			Name:          "Customer_" + strconv.Itoa(id),
			Email:         "customer" + strconv.Itoa(id) + "@company.com",
			Region:        region,
			Status:        status,
			LifetimeValue: ltv,
			CreatedDate:   created,
			UpdatedDate:   updated,
		}
	}
	return customers, nil
}

func (Customers) Name() string {
	return "customers"
}

func (Customers) Header() []string {
	return customerHeader
}

func (c Customers) Len() int {
	return len(c)
}

func (c Customers) IDs() IDRange {
	return RangeOf(len(c))
}

func (c Customers) Row(i int) []string {
	cu := c[i]
	return []string{
		strconv.Itoa(cu.ID),
		cu.Name,
		cu.Email,
		cu.Region,
		cu.Status,
		formatFloat(cu.LifetimeValue),
		formatTime(cu.CreatedDate),
		formatTime(cu.UpdatedDate),
	}
}
