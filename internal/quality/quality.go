// Package quality audits the staging tables across five dimensions:
// completeness, uniqueness, validity, consistency, and referential
// integrity. Findings never abort the pipeline by themselves; the checker
// returns a graded report and leaves the gating decision to the caller.
package quality

import (
	"context"
	"fmt"
	"time"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db/models"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/logger"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/money"
)

// ReportFile is the JSON artifact written after every quality run.
const ReportFile = "quality_report.json"

// Store is the read surface the checker needs.
type Store interface {
	CountRows(ctx context.Context, table string) (int64, error)
	QueryRows(ctx context.Context, query string, args ...any) ([]string, [][]any, error)
}

// NullCheck reports NULLs found in mandatory columns, keyed table→column.
type NullCheck struct {
	Status         enums.CheckStatus         `json:"status"`
	NullViolations int                       `json:"null_violations"`
	Details        map[string]map[string]int `json:"details"`
}

// DuplicateCheck reports how many distinct IDs appear more than once.
type DuplicateCheck struct {
	Status          enums.CheckStatus `json:"status"`
	DuplicatesFound int               `json:"duplicates_found"`
	Details         map[string]int    `json:"details"`
}

// ValidityCheck reports rows whose values fall outside the legal ranges.
type ValidityCheck struct {
	Status     enums.CheckStatus `json:"status"`
	Violations int               `json:"violations"`
	Details    map[string]int    `json:"details"`
}

// ConsistencyCheck reports stored line totals that disagree with the
// recomputed quantity * unit_price * (1 - discount/100).
type ConsistencyCheck struct {
	Status     enums.CheckStatus `json:"status"`
	Violations int               `json:"violations"`
	Details    map[string]int    `json:"details"`
}

// ReferentialCheck reports orphan rows per foreign-key relationship.
type ReferentialCheck struct {
	Status        enums.CheckStatus `json:"status"`
	OrphanRecords int               `json:"orphan_records"`
	Details       map[string]int    `json:"details"`
}

// Checks bundles the five dimensions of one run.
type Checks struct {
	NullChecks           NullCheck        `json:"null_checks"`
	DuplicateChecks      DuplicateCheck   `json:"duplicate_checks"`
	ValidityChecks       ValidityCheck    `json:"validity_checks"`
	ConsistencyChecks    ConsistencyCheck `json:"consistency_checks"`
	ReferentialIntegrity ReferentialCheck `json:"referential_integrity"`
}

// Report is the persisted outcome of one quality run.
type Report struct {
	CheckTimestamp      string             `json:"check_timestamp"`
	ChecksPerformed     Checks             `json:"checks_performed"`
	OverallQualityScore float64            `json:"overall_quality_score"`
	QualityGrade        enums.QualityGrade `json:"quality_grade"`
}

// TotalIssues sums the violation counts across all five checks.
func (r Report) TotalIssues() int {
	c := r.ChecksPerformed
	return c.NullChecks.NullViolations +
		c.DuplicateChecks.DuplicatesFound +
		c.ValidityChecks.Violations +
		c.ConsistencyChecks.Violations +
		c.ReferentialIntegrity.OrphanRecords
}

type Checker struct {
	store Store
	logg  *logger.Logger
}

func New(store Store, logg *logger.Logger) *Checker {
	return &Checker{store: store, logg: logg}
}

// Run executes every check against staging and grades the result. Query
// failures abort with an error; data findings only lower the score.
func (c *Checker) Run(ctx context.Context) (Report, error) {
	c.logg.Info(ctx, "starting data quality checks")

	report := Report{CheckTimestamp: time.Now().Format(time.RFC3339)}

	var err error
	if report.ChecksPerformed.NullChecks, err = c.checkNullValues(ctx); err != nil {
		return report, err
	}
	if report.ChecksPerformed.DuplicateChecks, err = c.checkDuplicates(ctx); err != nil {
		return report, err
	}
	if report.ChecksPerformed.ValidityChecks, err = c.checkValidity(ctx); err != nil {
		return report, err
	}
	if report.ChecksPerformed.ConsistencyChecks, err = c.checkConsistency(ctx); err != nil {
		return report, err
	}
	if report.ChecksPerformed.ReferentialIntegrity, err = c.checkReferentialIntegrity(ctx); err != nil {
		return report, err
	}

	score, grade, err := c.scoreAndGrade(ctx, report.TotalIssues())
	if err != nil {
		return report, err
	}
	report.OverallQualityScore = score
	report.QualityGrade = grade

	c.logg.Info(ctx, fmt.Sprintf("quality checks complete, score %.2f grade %s", score, grade))
	return report, nil
}

// mandatoryColumns lists the fields that must never be NULL, per table.
func mandatoryColumns() map[string][]string {
	return map[string][]string{
		models.StagingCustomer{}.TableName():        {"customer_id", "email", "first_name", "last_name"},
		models.StagingProduct{}.TableName():         {"product_id", "product_name", "price", "cost"},
		models.StagingTransaction{}.TableName():     {"transaction_id", "customer_id", "transaction_date"},
		models.StagingTransactionItem{}.TableName(): {"item_id", "transaction_id", "product_id", "quantity", "line_total"},
	}
}

func idColumns() map[string]string {
	return map[string]string{
		models.StagingCustomer{}.TableName():        "customer_id",
		models.StagingProduct{}.TableName():         "product_id",
		models.StagingTransaction{}.TableName():     "transaction_id",
		models.StagingTransactionItem{}.TableName(): "item_id",
	}
}

func (c *Checker) checkNullValues(ctx context.Context) (NullCheck, error) {
	c.logg.Info(ctx, "checking null values")

	check := NullCheck{Details: map[string]map[string]int{}}
	for table, columns := range mandatoryColumns() {
		for _, column := range columns {
			count, err := c.countWhere(ctx, fmt.Sprintf(
				"SELECT COUNT(*) FROM %s WHERE %s IS NULL", table, column))
			if err != nil {
				return check, err
			}
			if count > 0 {
				if check.Details[table] == nil {
					check.Details[table] = map[string]int{}
				}
				check.Details[table][column] = count
				check.NullViolations += count
			}
		}
	}
	check.Status = enums.CheckStatusFor(check.NullViolations)
	return check, nil
}

func (c *Checker) checkDuplicates(ctx context.Context) (DuplicateCheck, error) {
	c.logg.Info(ctx, "checking for duplicates")

	check := DuplicateCheck{Details: map[string]int{}}
	for table, idColumn := range idColumns() {
		count, err := c.countWhere(ctx, fmt.Sprintf(
			"SELECT COUNT(*) FROM (SELECT %s FROM %s GROUP BY %s HAVING COUNT(*) > 1) AS dup",
			idColumn, table, idColumn))
		if err != nil {
			return check, err
		}
		if count > 0 {
			check.Details[table] = count
			check.DuplicatesFound += count
		}
	}
	check.Status = enums.CheckStatusFor(check.DuplicatesFound)
	return check, nil
}

func (c *Checker) checkValidity(ctx context.Context) (ValidityCheck, error) {
	c.logg.Info(ctx, "checking data validity")

	products := models.StagingProduct{}.TableName()
	items := models.StagingTransactionItem{}.TableName()
	rules := []struct {
		name  string
		query string
	}{
		{"negative_price", fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE price <= 0", products)},
		{"negative_cost", fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE cost <= 0", products)},
		{"invalid_quantity", fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE quantity <= 0", items)},
		{"invalid_discount", fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE discount_percentage < 0 OR discount_percentage > 100", items)},
	}

	check := ValidityCheck{Details: map[string]int{}}
	for _, rule := range rules {
		count, err := c.countWhere(ctx, rule.query)
		if err != nil {
			return check, err
		}
		if count > 0 {
			check.Details[rule.name] = count
			check.Violations += count
		}
	}
	check.Status = enums.CheckStatusFor(check.Violations)
	return check, nil
}

// checkConsistency recomputes every line total in Go rather than in SQL so
// the comparison uses the same rounding as generation, independent of the
// dialect's ROUND semantics. Rows with NULLs belong to the null check and
// are skipped here.
func (c *Checker) checkConsistency(ctx context.Context) (ConsistencyCheck, error) {
	c.logg.Info(ctx, "checking data consistency")

	check := ConsistencyCheck{Details: map[string]int{}}
	_, rows, err := c.store.QueryRows(ctx, fmt.Sprintf(
		"SELECT quantity, unit_price, discount_percentage, line_total FROM %s",
		models.StagingTransactionItem{}.TableName()))
	if err != nil {
		return check, pkgerrors.Wrap(pkgerrors.CodeQuery, err, "reading transaction items")
	}

	mismatches := 0
	for _, row := range rows {
		if hasNil(row) {
			continue
		}
		expected := money.LineTotal(db.ToInt(row[0]), db.ToFloat(row[1]), db.ToInt(row[2]))
		if expected != db.ToFloat(row[3]) {
			mismatches++
		}
	}
	if mismatches > 0 {
		check.Details["line_total_mismatch"] = mismatches
		check.Violations = mismatches
	}
	check.Status = enums.CheckStatusFor(check.Violations)
	return check, nil
}

func (c *Checker) checkReferentialIntegrity(ctx context.Context) (ReferentialCheck, error) {
	c.logg.Info(ctx, "checking referential integrity")

	customers := models.StagingCustomer{}.TableName()
	products := models.StagingProduct{}.TableName()
	transactions := models.StagingTransaction{}.TableName()
	items := models.StagingTransactionItem{}.TableName()

	rules := []struct {
		name  string
		query string
	}{
		{"invalid_customer_in_transactions", fmt.Sprintf(
			"SELECT COUNT(*) FROM %s t WHERE NOT EXISTS (SELECT 1 FROM %s c WHERE c.customer_id = t.customer_id)",
			transactions, customers)},
		{"invalid_transaction_in_items", fmt.Sprintf(
			"SELECT COUNT(*) FROM %s ti WHERE NOT EXISTS (SELECT 1 FROM %s t WHERE t.transaction_id = ti.transaction_id)",
			items, transactions)},
		{"invalid_product_in_items", fmt.Sprintf(
			"SELECT COUNT(*) FROM %s ti WHERE NOT EXISTS (SELECT 1 FROM %s p WHERE p.product_id = ti.product_id)",
			items, products)},
	}

	check := ReferentialCheck{Details: map[string]int{}}
	for _, rule := range rules {
		count, err := c.countWhere(ctx, rule.query)
		if err != nil {
			return check, err
		}
		if count > 0 {
			check.Details[rule.name] = count
			check.OrphanRecords += count
		}
	}
	check.Status = enums.CheckStatusFor(check.OrphanRecords)
	return check, nil
}

func (c *Checker) scoreAndGrade(ctx context.Context, totalIssues int) (float64, enums.QualityGrade, error) {
	if totalIssues == 0 {
		return 100, enums.GradeForScore(100), nil
	}

	var totalRecords int64
	for table := range idColumns() {
		count, err := c.store.CountRows(ctx, table)
		if err != nil {
			return 0, "", pkgerrors.Wrap(pkgerrors.CodeQuery, err, fmt.Sprintf("counting %s", table))
		}
		totalRecords += count
	}

	score := 100 - float64(totalIssues)/float64(totalRecords)*100
	if score < 0 {
		score = 0
	}
	score = money.Round2(score)
	return score, enums.GradeForScore(score), nil
}

func (c *Checker) countWhere(ctx context.Context, query string) (int, error) {
	_, rows, err := c.store.QueryRows(ctx, query)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeQuery, err, "quality check query failed")
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeQuery, "quality check query returned no rows")
	}
	return db.ToInt(rows[0][0]), nil
}

func hasNil(row []any) bool {
	for _, v := range row {
		if v == nil {
			return true
		}
	}
	return false
}
