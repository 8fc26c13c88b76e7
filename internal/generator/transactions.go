package generator

import (
	"context"
	"fmt"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/identity"
	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/money"
)

// Transactions produces n order headers. Every customer_id is drawn from
// the supplied customer set, so referential integrity holds by
// construction. TotalAmount stays 0.0 until items are generated.
func (g *Generator) Transactions(ctx context.Context, n int, customers []Customer) ([]Transaction, error) {
	if n < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction count must not be negative")
	}
	if n > 0 && len(customers) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transactions require at least one customer")
	}
	g.logg.Info(ctx, fmt.Sprintf("generating %d transactions", n))

	start, end, err := g.cfg.DateRange.Window()
	if err != nil {
		return nil, err
	}
	methods := g.cfg.PaymentMethods

	transactions := make([]Transaction, 0, n)
	for i := 0; i < n; i++ {
		transactions = append(transactions, Transaction{
			TransactionID:   identity.Transaction(i),
			CustomerID:      customers[g.rng.Intn(len(customers))].CustomerID,
			TransactionDate: g.fake.dateBetween(start, end).Format("2006-01-02"),
			TransactionTime: g.fake.timeOfDay(),
			PaymentMethod:   enums.PaymentMethod(methods[g.rng.Intn(len(methods))]),
			ShippingAddress: g.fake.streetAddress() + ", " + g.fake.city(),
			TotalAmount:     0.0,
		})
	}

	g.logg.Info(ctx, fmt.Sprintf("generated %d transactions", len(transactions)))
	return transactions, nil
}

// TransactionItems generates the line items for every transaction and
// accumulates the per-transaction sums. Each item snapshots the product's
// price and derives its line total from the canonical discount formula.
func (g *Generator) TransactionItems(ctx context.Context, transactions []Transaction, products []Product) ([]TransactionItem, map[string]float64, error) {
	if len(transactions) > 0 && len(products) == 0 && g.cfg.ItemsPerTxn.Max > 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction items require at least one product")
	}
	g.logg.Info(ctx, "generating transaction items")

	items := make([]TransactionItem, 0, len(transactions)*g.cfg.ItemsPerTxn.Max)
	totals := make(map[string]float64, len(transactions))
	itemIdx := 0

	for _, txn := range transactions {
		count := g.intBetween(g.cfg.ItemsPerTxn.Min, g.cfg.ItemsPerTxn.Max)
		sum := 0.0

		for j := 0; j < count; j++ {
			product := products[g.rng.Intn(len(products))]
			quantity := g.intBetween(g.cfg.Quantity.Min, g.cfg.Quantity.Max)
			discount := g.cfg.DiscountLevels[g.rng.Intn(len(g.cfg.DiscountLevels))]
			lineTotal := money.LineTotal(quantity, product.Price, discount)

			items = append(items, TransactionItem{
				ItemID:             identity.Item(itemIdx),
				TransactionID:      txn.TransactionID,
				ProductID:          product.ProductID,
				Quantity:           quantity,
				UnitPrice:          product.Price,
				DiscountPercentage: discount,
				LineTotal:          lineTotal,
			})
			sum += lineTotal
			itemIdx++
		}

		totals[txn.TransactionID] = sum
	}

	g.logg.Info(ctx, fmt.Sprintf("generated %d transaction items", len(items)))
	return items, totals, nil
}

// ApplyTotals back-fills each transaction's total from the per-transaction
// sums keyed by transaction id. The sum of rounded line totals is applied
// as-is; headers without an entry keep the placeholder 0.0.
func ApplyTotals(transactions []Transaction, totals map[string]float64) {
	for i := range transactions {
		if total, ok := totals[transactions[i].TransactionID]; ok {
			transactions[i].TotalAmount = total
		}
	}
}
