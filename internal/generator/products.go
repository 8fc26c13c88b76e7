package generator

import (
	"context"
	"fmt"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/identity"
	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/money"
)

const (
	// Cost lands in [0.4, 0.7] of price, so margin stays strictly positive.
	costMarginLow  = 0.4
	costMarginHigh = 0.7

	stockMin         = 10
	stockMax         = 1000
	supplierPoolSize = 50
)

// Products partitions n items evenly across the configured categories in
// config order. Each category receives n/len(categories) items (integer
// division); the remainder is dropped, so the returned count is the largest
// multiple of the category count not exceeding n.
func (g *Generator) Products(ctx context.Context, n int) ([]Product, error) {
	if n < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product count must not be negative")
	}
	g.logg.Info(ctx, fmt.Sprintf("generating %d products", n))

	categories := g.cfg.Categories
	perCategory := 0
	if len(categories) > 0 {
		perCategory = n / len(categories)
	}

	products := make([]Product, 0, perCategory*len(categories))
	idx := 0
	for _, cat := range categories {
		for i := 0; i < perCategory; i++ {
			if idx >= n {
				break
			}
			sub := cat.Subcategories[g.rng.Intn(len(cat.Subcategories))]
			price := money.Round2(g.uniform(cat.PriceMin, cat.PriceMax))
			cost := money.Round2(price * g.uniform(costMarginLow, costMarginHigh))

			products = append(products, Product{
				ProductID:     identity.Product(idx),
				ProductName:   g.fake.word() + " " + sub,
				Category:      cat.Name,
				SubCategory:   sub,
				Price:         price,
				Cost:          cost,
				Brand:         g.fake.word(),
				StockQuantity: g.intBetween(stockMin, stockMax),
				SupplierID:    identity.Supplier(g.rng.Intn(supplierPoolSize)),
			})
			idx++
		}
	}

	g.logg.Info(ctx, fmt.Sprintf("generated %d products", len(products)))
	return products, nil
}
