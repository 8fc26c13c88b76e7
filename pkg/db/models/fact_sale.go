package models

// FactSale is the sales fact grain: one row per transaction line item,
// joined to the four dimensions by surrogate key. Profit is derived at
// load time from the line total and the product cost.
type FactSale struct {
	SalesKey         int64   `gorm:"column:sales_key;primaryKey;autoIncrement"`
	DateKey          int     `gorm:"column:date_key"`
	CustomerKey      int64   `gorm:"column:customer_key"`
	ProductKey       int64   `gorm:"column:product_key"`
	PaymentMethodKey int64   `gorm:"column:payment_method_key"`
	TransactionID    string  `gorm:"column:transaction_id;type:varchar(20)"`
	Quantity         int     `gorm:"column:quantity"`
	UnitPrice        float64 `gorm:"column:unit_price;type:double precision"`
	LineTotal        float64 `gorm:"column:line_total;type:double precision"`
	Profit           float64 `gorm:"column:profit;type:double precision"`
}

func (FactSale) TableName() string {
	return "warehouse_fact_sales"
}
