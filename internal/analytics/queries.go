package analytics

import (
	"fmt"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db/models"
)

const (
	monthlySalesTrendSQL = `
SELECT
  d.year AS year,
  d.month AS month,
  d.month_name AS month_name,
  COUNT(DISTINCT f.transaction_id) AS transactions,
  SUM(f.quantity) AS units_sold,
  ROUND(SUM(f.line_total), 2) AS revenue,
  ROUND(SUM(f.profit), 2) AS profit
FROM %s f
JOIN %s d ON f.date_key = d.date_key
GROUP BY d.year, d.month, d.month_name
ORDER BY d.year, d.month
`

	topProductsByRevenueSQL = `
SELECT
  p.product_id AS product_id,
  p.product_name AS product_name,
  p.category AS category,
  SUM(f.quantity) AS units_sold,
  ROUND(SUM(f.line_total), 2) AS revenue
FROM %s f
JOIN %s p ON f.product_key = p.product_key
GROUP BY p.product_id, p.product_name, p.category
ORDER BY SUM(f.line_total) DESC
LIMIT 10
`

	categoryPerformanceSQL = `
SELECT
  p.category AS category,
  COUNT(DISTINCT p.product_id) AS products,
  SUM(f.quantity) AS units_sold,
  ROUND(SUM(f.line_total), 2) AS revenue,
  ROUND(SUM(f.profit), 2) AS profit
FROM %s f
JOIN %s p ON f.product_key = p.product_key
GROUP BY p.category
ORDER BY SUM(f.line_total) DESC
`

	paymentMethodMixSQL = `
SELECT
  pm.payment_method_name AS payment_method,
  pm.payment_type AS payment_type,
  COUNT(DISTINCT f.transaction_id) AS transactions,
  ROUND(SUM(f.line_total), 2) AS revenue
FROM %s f
JOIN %s pm ON f.payment_method_key = pm.payment_method_key
GROUP BY pm.payment_method_name, pm.payment_type
ORDER BY SUM(f.line_total) DESC
`

	ageGroupRevenueSQL = `
SELECT
  c.age_group AS age_group,
  COUNT(DISTINCT c.customer_id) AS customers,
  COUNT(DISTINCT f.transaction_id) AS transactions,
  ROUND(SUM(f.line_total), 2) AS revenue
FROM %s f
JOIN %s c ON f.customer_key = c.customer_key
GROUP BY c.age_group
ORDER BY SUM(f.line_total) DESC
`

	weekendWeekdaySplitSQL = `
SELECT
  CASE d.is_weekend WHEN 1 THEN 'weekend' ELSE 'weekday' END AS day_type,
  COUNT(DISTINCT f.transaction_id) AS transactions,
  SUM(f.quantity) AS units_sold,
  ROUND(SUM(f.line_total), 2) AS revenue
FROM %s f
JOIN %s d ON f.date_key = d.date_key
GROUP BY d.is_weekend
ORDER BY d.is_weekend
`
)

// Query is one named analytical query over the warehouse star schema.
type Query struct {
	Name        string
	Description string
	SQL         string
}

// Queries returns the analytical query registry in export order. Every
// statement joins the sales fact against exactly one dimension and uses
// portable SQL so it runs unchanged on postgres and sqlite.
func Queries() []Query {
	fact := models.FactSale{}.TableName()
	dates := models.DimDate{}.TableName()
	products := models.DimProduct{}.TableName()
	payments := models.DimPaymentMethod{}.TableName()
	customers := models.DimCustomer{}.TableName()

	return []Query{
		{
			Name:        "monthly_sales_trend",
			Description: "revenue, profit and order volume per calendar month",
			SQL:         fmt.Sprintf(monthlySalesTrendSQL, fact, dates),
		},
		{
			Name:        "top_products_by_revenue",
			Description: "ten highest-grossing products",
			SQL:         fmt.Sprintf(topProductsByRevenueSQL, fact, products),
		},
		{
			Name:        "category_performance",
			Description: "revenue, profit and unit volume per category",
			SQL:         fmt.Sprintf(categoryPerformanceSQL, fact, products),
		},
		{
			Name:        "payment_method_mix",
			Description: "transaction and revenue share per payment method",
			SQL:         fmt.Sprintf(paymentMethodMixSQL, fact, payments),
		},
		{
			Name:        "age_group_revenue",
			Description: "revenue contribution per customer age group",
			SQL:         fmt.Sprintf(ageGroupRevenueSQL, fact, customers),
		},
		{
			Name:        "weekend_weekday_split",
			Description: "weekend versus weekday sales volume",
			SQL:         fmt.Sprintf(weekendWeekdaySplitSQL, fact, dates),
		},
	}
}
