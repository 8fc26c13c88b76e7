// Package generator fabricates the synthetic e-commerce dataset: customers,
// a partitioned product catalog, and transactions with line items whose
// monetary totals are derived, not drawn. Randomness comes from a single
// seeded source so runs are reproducible record for record.
package generator

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
)

type Generator struct {
	cfg  *config.GenerationConfig
	rng  *rand.Rand
	fake *faker
	logg *logger.Logger
}

// New validates the generation parameters and seeds the random source.
// A nil config falls back to the built-in defaults.
func New(cfg *config.GenerationConfig, logg *logger.Logger) (*Generator, error) {
	if cfg == nil {
		cfg = config.DefaultGeneration()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Counts.Seed))
	return &Generator{
		cfg:  cfg,
		rng:  rng,
		fake: &faker{rng: rng},
		logg: logg,
	}, nil
}

// Config returns the parameters the generator was built with.
func (g *Generator) Config() *config.GenerationConfig {
	return g.cfg
}

// GenerateAll produces the full dataset in dependency order: customers and
// products first, then transaction headers referencing the customers, then
// items referencing both, and finally the total-amount back-fill.
func (g *Generator) GenerateAll(ctx context.Context) (*Dataset, error) {
	customers, err := g.Customers(ctx, g.cfg.Counts.Customers)
	if err != nil {
		return nil, err
	}

	products, err := g.Products(ctx, g.cfg.Counts.Products)
	if err != nil {
		return nil, err
	}

	transactions, err := g.Transactions(ctx, g.cfg.Counts.Transactions, customers)
	if err != nil {
		return nil, err
	}

	items, totals, err := g.TransactionItems(ctx, transactions, products)
	if err != nil {
		return nil, err
	}
	ApplyTotals(transactions, totals)

	ds := &Dataset{
		Customers:    customers,
		Products:     products,
		Transactions: transactions,
		Items:        items,
	}
	g.logg.Info(ctx, fmt.Sprintf("dataset generated: %d records total", ds.TotalRecords()))
	return ds, nil
}

func (g *Generator) uniform(low, high float64) float64 {
	return low + g.rng.Float64()*(high-low)
}

func (g *Generator) intBetween(low, high int) int {
	if high <= low {
		return low
	}
	return low + g.rng.Intn(high-low+1)
}
