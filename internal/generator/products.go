package generator

import (
	"math/rand/v2"
	"strconv"
	"time"
)

var categories = []string{"Electronics", "Clothing", "Home & Garden", "Sports", "Books"}

var productHeader = []string{
	"product_id",
	"product_name",
	"category",
	"unit_price",
	"stock_quantity",
	"created_date",
	"updated_at",
}

// Product is one row of the products table.
type Product struct {
	ID            int
	Name          string
	Category      string
	UnitPrice     float64
	StockQuantity int
	CreatedDate   time.Time
	UpdatedAt     time.Time
}

// Products is the products table.
type Products []Product

// GenerateProducts builds count products with ids 1..count.
func GenerateProducts(r *rand.Rand, ref time.Time, count int) (Products, error) {
	if err := validateCount("product_count", count); err != nil {
		return nil, err
	}

	products := make(Products, count)
	for i := range products {
		id := i + 1
		category := pick(r, categories)
		price := uniform(r, 10, 500)
		stock := r.IntN(1000)
		created := daysBefore(r, ref, 1, 365)
		updated := notBefore(daysBefore(r, ref, 0, 30), created)

		products[i] = Product{
			ID:            id,
			Name:          "Product_" + strconv.Itoa(id),
			Category:      category,
			UnitPrice:     price,
			StockQuantity: stock,
			CreatedDate:   created,
			UpdatedAt:     updated,
		}
	}
	return products, nil
}

func (Products) Name() string {
	return "products"
}

func (Products) Header() []string {
	return productHeader
}

func (p Products) Len() int {
	return len(p)
}

func (p Products) IDs() IDRange {
	return RangeOf(len(p))
}

func (p Products) Row(i int) []string {
	pr := p[i]
	return []string{
		strconv.Itoa(pr.ID),
		pr.Name,
		pr.Category,
		formatFloat(pr.UnitPrice),
		strconv.Itoa(pr.StockQuantity),
		formatTime(pr.CreatedDate),
		formatTime(pr.UpdatedAt),
	}
}
