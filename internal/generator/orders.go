package generator

import (
	"math/rand/v2"
	"strconv"
	"time"
)

var orderStatuses = []string{"Completed", "Pending", "Cancelled", "Shipped"}

var orderHeader = []string{
	"order_id",
	"customer_id",
	"product_id",
	"order_date",
	"quantity",
	"unit_price",
	"order_amount",
	"order_status",
	"last_modified_date",
}

// Order is one row of the orders table. UnitPrice is the price at the time of
// the order and is unrelated to the product's list price.
type Order struct {
	ID               int
	CustomerID       int
	ProductID        int
	OrderDate        time.Time
	Quantity         int
	UnitPrice        float64
	Amount           float64
	Status           string
	LastModifiedDate time.Time
}

// Orders is the orders table.
type Orders []Order

// GenerateOrders builds count orders with ids 1..count. Customer and product
// ids are drawn uniformly from the given inclusive ranges, so every reference
// lands inside them.
func GenerateOrders(r *rand.Rand, ref time.Time, count int, customers, products IDRange) (Orders, error) {
	if err := validateCount("order_count", count); err != nil {
		return nil, err
	}
	if err := customers.Validate("customer_id_range"); err != nil {
		return nil, err
	}
	if err := products.Validate("product_id_range"); err != nil {
		return nil, err
	}

	orders := make(Orders, count)
	for i := range orders {
		customerID := customers.Sample(r)
		productID := products.Sample(r)
		ordered := daysBefore(r, ref, 1, 180)
		quantity := between(r, 1, 9)
		price := orderUnitPrice(uniform(r, 10, 200))
		status := pick(r, orderStatuses)
		modified := notBefore(daysBefore(r, ref, 0, 30), ordered)

		orders[i] = Order{
			ID:               i + 1,
			CustomerID:       customerID,
			ProductID:        productID,
			OrderDate:        ordered,
			Quantity:         quantity,
			UnitPrice:        price,
			Amount:           orderAmount(quantity, price),
			Status:           status,
			LastModifiedDate: modified,
		}
	}
	return orders, nil
}

// maxOrderUnitPrice is the largest cent value below the 200 upper bound
const maxOrderUnitPrice = 199.99

// orderUnitPrice rounds a sampled price to cents, keeping it below 200.
func orderUnitPrice(sampled float64) float64 {
	return min(round2(sampled), maxOrderUnitPrice)
}

// orderAmount is quantity * unitPrice rounded to cents.
func orderAmount(quantity int, unitPrice float64) float64 {
	return round2(float64(quantity) * unitPrice)
}

func (Orders) Name() string {
	return "orders"
}

func (Orders) Header() []string {
	return orderHeader
}

func (o Orders) Len() int {
	return len(o)
}

func (o Orders) Row(i int) []string {
	od := o[i]
	return []string{
		strconv.Itoa(od.ID),
		strconv.Itoa(od.CustomerID),
		strconv.Itoa(od.ProductID),
		formatTime(od.OrderDate),
		strconv.Itoa(od.Quantity),
		formatFloat(od.UnitPrice),
		formatFloat(od.Amount),
		od.Status,
		formatTime(od.LastModifiedDate),
	}
}
