package generator

import (
	"context"
	"io"
	"testing"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/config"
	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, mutate func(*config.GenerationConfig)) *Generator {
	t.Helper()

	cfg := config.DefaultGeneration()
	cfg.Counts.Customers = 50
	cfg.Counts.Products = 60
	cfg.Counts.Transactions = 40
	cfg.Counts.Seed = 7
	if mutate != nil {
		mutate(cfg)
	}

	logg := logger.New(logger.Options{ServiceName: "generator-test", Output: io.Discard})
	gen, err := New(cfg, logg)
	require.NoError(t, err)
	return gen
}

func TestCustomersHaveUniqueIDsAndEmails(t *testing.T) {
	gen := newTestGenerator(t, func(cfg *config.GenerationConfig) {
		cfg.Counts.Customers = 500
	})

	customers, err := gen.Customers(context.Background(), 500)
	require.NoError(t, err)
	require.NotEmpty(t, customers)
	assert.LessOrEqual(t, len(customers), 500)

	ids := make(map[string]struct{}, len(customers))
	emails := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		ids[c.CustomerID] = struct{}{}
		emails[c.Email] = struct{}{}
		assert.Equal(t, "India", c.Country)
		assert.NotEmpty(t, c.RegistrationDate)
	}
	assert.Len(t, ids, len(customers), "customer ids must be unique")
	assert.Len(t, emails, len(customers), "emails must be unique after dedupe")
}

func TestCustomersZeroCountReturnsEmpty(t *testing.T) {
	gen := newTestGenerator(t, nil)

	customers, err := gen.Customers(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestCustomersNegativeCountFailsFast(t *testing.T) {
	gen := newTestGenerator(t, nil)

	_, err := gen.Customers(context.Background(), -1)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestProductsPartitionAcrossCategories(t *testing.T) {
	gen := newTestGenerator(t, nil)

	// 100 across 6 categories: 16 each, remainder 4 dropped.
	products, err := gen.Products(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, products, 96)

	perCategory := map[string]int{}
	ranges := map[string][2]float64{}
	for _, cat := range gen.Config().Categories {
		ranges[cat.Name] = [2]float64{cat.PriceMin, cat.PriceMax}
	}

	for _, p := range products {
		perCategory[p.Category]++
		assert.Greater(t, p.Price, 0.0)
		assert.Less(t, p.Cost, p.Price, "cost must stay below price for %s", p.ProductID)

		bounds, ok := ranges[p.Category]
		require.True(t, ok, "unknown category %s", p.Category)
		assert.GreaterOrEqual(t, p.Price, bounds[0])
		assert.LessOrEqual(t, p.Price, bounds[1])
	}
	for name, count := range perCategory {
		assert.Equal(t, 16, count, "category %s", name)
	}
}

func TestProductsZeroCountReturnsEmpty(t *testing.T) {
	gen := newTestGenerator(t, nil)

	products, err := gen.Products(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestTransactionsReferenceExistingCustomers(t *testing.T) {
	gen := newTestGenerator(t, nil)
	ctx := context.Background()

	customers, err := gen.Customers(ctx, 20)
	require.NoError(t, err)

	transactions, err := gen.Transactions(ctx, 30, customers)
	require.NoError(t, err)
	require.Len(t, transactions, 30)

	known := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		known[c.CustomerID] = struct{}{}
	}
	for _, txn := range transactions {
		_, ok := known[txn.CustomerID]
		assert.True(t, ok, "transaction %s references unknown customer %s", txn.TransactionID, txn.CustomerID)
		assert.GreaterOrEqual(t, txn.TransactionDate, "2024-01-01")
		assert.LessOrEqual(t, txn.TransactionDate, "2024-12-31")
		assert.Zero(t, txn.TotalAmount, "header total must start at 0.0")
	}
}

func TestTransactionsWithoutCustomersFails(t *testing.T) {
	gen := newTestGenerator(t, nil)

	_, err := gen.Transactions(context.Background(), 5, nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestTransactionItemsDeriveLineTotalsAndBackfill(t *testing.T) {
	gen := newTestGenerator(t, func(cfg *config.GenerationConfig) {
		cfg.Counts.Customers = 10
		cfg.Counts.Products = 12
		cfg.Counts.Transactions = 10
	})
	ctx := context.Background()

	ds, err := gen.GenerateAll(ctx)
	require.NoError(t, err)

	// One generator call per transaction, 1-5 items each.
	assert.GreaterOrEqual(t, len(ds.Items), 10)
	assert.LessOrEqual(t, len(ds.Items), 50)

	prices := map[string]float64{}
	for _, p := range ds.Products {
		prices[p.ProductID] = p.Price
	}

	sums := map[string]float64{}
	for _, item := range ds.Items {
		expected := money.LineTotal(item.Quantity, item.UnitPrice, item.DiscountPercentage)
		assert.InDelta(t, expected, item.LineTotal, 0.01, "item %s", item.ItemID)
		assert.Equal(t, prices[item.ProductID], item.UnitPrice, "unit price must snapshot the product price")
		sums[item.TransactionID] += item.LineTotal
	}

	for _, txn := range ds.Transactions {
		assert.Equal(t, sums[txn.TransactionID], txn.TotalAmount,
			"transaction %s total must equal the sum of its items", txn.TransactionID)
	}
}

func TestApplyTotalsLeavesUnmatchedHeadersAtZero(t *testing.T) {
	transactions := []Transaction{
		{TransactionID: "TXN00001"},
		{TransactionID: "TXN00002"},
	}
	ApplyTotals(transactions, map[string]float64{"TXN00001": 99.5})

	assert.Equal(t, 99.5, transactions[0].TotalAmount)
	assert.Zero(t, transactions[1].TotalAmount)
}

func TestGenerateAllIsReproducibleForSameSeed(t *testing.T) {
	ctx := context.Background()

	first, err := newTestGenerator(t, nil).GenerateAll(ctx)
	require.NoError(t, err)
	second, err := newTestGenerator(t, nil).GenerateAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Products, second.Products)
	assert.Equal(t, first.Transactions, second.Transactions)
	assert.Equal(t, first.Items, second.Items)

	different, err := newTestGenerator(t, func(cfg *config.GenerationConfig) {
		cfg.Counts.Seed = 8
	}).GenerateAll(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.Items, different.Items)
}

func TestGenerateAllHonorsZeroCounts(t *testing.T) {
	gen := newTestGenerator(t, func(cfg *config.GenerationConfig) {
		cfg.Counts.Customers = 0
		cfg.Counts.Products = 0
		cfg.Counts.Transactions = 0
	})

	ds, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds.Customers)
	assert.Empty(t, ds.Products)
	assert.Empty(t, ds.Transactions)
	assert.Empty(t, ds.Items)
	assert.Zero(t, ds.TotalRecords())
}
