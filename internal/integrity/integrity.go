// Package integrity validates a freshly generated dataset before it is
// persisted: referential closure across the four collections, recomputation
// of derived line totals, and basic value constraints. Findings are always
// returned as a report with a quality score, never as errors.
package integrity

import (
	"context"
	"fmt"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/generator"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/money"
)

// Report is the outcome of one validation pass. The score follows a linear
// penalty model: 100 minus the violation share of all records, floored at 0.
type Report struct {
	OrphanRecords        int            `json:"orphan_records"`
	ConstraintViolations int            `json:"constraint_violations"`
	QualityScore         float64        `json:"quality_score"`
	Details              map[string]int `json:"details"`
}

type Validator struct {
	logg *logger.Logger
}

func New(logg *logger.Logger) *Validator {
	return &Validator{logg: logg}
}

// Validate runs every check regardless of earlier findings and accumulates
// the counts. Check order: transaction→customer references, item→transaction
// references, item→product references, line-total recomputation, price sign.
func (v *Validator) Validate(ctx context.Context, ds *generator.Dataset) Report {
	v.logg.Info(ctx, "validating referential integrity")

	report := Report{
		QualityScore: 100,
		Details:      map[string]int{},
	}

	customerIDs := make(map[string]struct{}, len(ds.Customers))
	for _, c := range ds.Customers {
		customerIDs[c.CustomerID] = struct{}{}
	}
	transactionIDs := make(map[string]struct{}, len(ds.Transactions))
	for _, t := range ds.Transactions {
		transactionIDs[t.TransactionID] = struct{}{}
	}
	productIDs := make(map[string]struct{}, len(ds.Products))
	for _, p := range ds.Products {
		productIDs[p.ProductID] = struct{}{}
	}

	invalidTransactions := 0
	for _, t := range ds.Transactions {
		if _, ok := customerIDs[t.CustomerID]; !ok {
			invalidTransactions++
		}
	}
	if invalidTransactions > 0 {
		report.OrphanRecords += invalidTransactions
		report.Details["invalid_transactions"] = invalidTransactions
		v.logg.Warn(ctx, fmt.Sprintf("found %d transactions with invalid customer_id", invalidTransactions))
	}

	invalidItemTransactions := 0
	invalidItemProducts := 0
	for _, item := range ds.Items {
		if _, ok := transactionIDs[item.TransactionID]; !ok {
			invalidItemTransactions++
		}
		if _, ok := productIDs[item.ProductID]; !ok {
			invalidItemProducts++
		}
	}
	if invalidItemTransactions > 0 {
		report.OrphanRecords += invalidItemTransactions
		report.Details["invalid_item_transactions"] = invalidItemTransactions
		v.logg.Warn(ctx, fmt.Sprintf("found %d items with invalid transaction_id", invalidItemTransactions))
	}
	if invalidItemProducts > 0 {
		report.OrphanRecords += invalidItemProducts
		report.Details["invalid_item_products"] = invalidItemProducts
		v.logg.Warn(ctx, fmt.Sprintf("found %d items with invalid product_id", invalidItemProducts))
	}

	lineTotalMismatches := 0
	for _, item := range ds.Items {
		expected := money.LineTotal(item.Quantity, item.UnitPrice, item.DiscountPercentage)
		if expected != item.LineTotal {
			lineTotalMismatches++
		}
	}
	if lineTotalMismatches > 0 {
		report.ConstraintViolations += lineTotalMismatches
		report.Details["line_total_mismatches"] = lineTotalMismatches
		v.logg.Warn(ctx, fmt.Sprintf("found %d calculation errors in line_total", lineTotalMismatches))
	}

	nonPositivePrices := 0
	for _, p := range ds.Products {
		if p.Price <= 0 {
			nonPositivePrices++
		}
	}
	if nonPositivePrices > 0 {
		report.ConstraintViolations += nonPositivePrices
		report.Details["non_positive_prices"] = nonPositivePrices
		v.logg.Warn(ctx, fmt.Sprintf("found %d products with non-positive price", nonPositivePrices))
	}

	violations := report.OrphanRecords + report.ConstraintViolations
	if violations == 0 {
		report.QualityScore = 100
		v.logg.Info(ctx, "all validations passed, quality score 100/100")
		return report
	}

	total := ds.TotalRecords()
	score := 100 - float64(violations)/float64(total)*100
	if score < 0 {
		score = 0
	}
	report.QualityScore = money.Round2(score)
	v.logg.Warn(ctx, fmt.Sprintf("quality score %.1f/100", report.QualityScore))
	return report
}
