package models

// Production tables mirror the staging shape. Rows arrive through the
// cleansing transforms, so the column sets stay identical and only the
// table names move to the production_ prefix.

type ProductionCustomer struct {
	CustomerID       string `gorm:"column:customer_id;type:varchar(20)"`
	FirstName        string `gorm:"column:first_name;type:varchar(100)"`
	LastName         string `gorm:"column:last_name;type:varchar(100)"`
	Email            string `gorm:"column:email;type:varchar(255)"`
	Phone            string `gorm:"column:phone;type:varchar(50)"`
	RegistrationDate string `gorm:"column:registration_date;type:varchar(10)"`
	City             string `gorm:"column:city;type:varchar(100)"`
	State            string `gorm:"column:state;type:varchar(100)"`
	Country          string `gorm:"column:country;type:varchar(100)"`
	AgeGroup         string `gorm:"column:age_group;type:varchar(10)"`
}

func (ProductionCustomer) TableName() string {
	return "production_customers"
}

type ProductionProduct struct {
	ProductID     string  `gorm:"column:product_id;type:varchar(20)"`
	ProductName   string  `gorm:"column:product_name;type:varchar(255)"`
	Category      string  `gorm:"column:category;type:varchar(100)"`
	SubCategory   string  `gorm:"column:sub_category;type:varchar(100)"`
	Price         float64 `gorm:"column:price;type:double precision"`
	Cost          float64 `gorm:"column:cost;type:double precision"`
	Brand         string  `gorm:"column:brand;type:varchar(100)"`
	StockQuantity int     `gorm:"column:stock_quantity"`
	SupplierID    string  `gorm:"column:supplier_id;type:varchar(20)"`
}

func (ProductionProduct) TableName() string {
	return "production_products"
}

type ProductionTransaction struct {
	TransactionID   string  `gorm:"column:transaction_id;type:varchar(20)"`
	CustomerID      string  `gorm:"column:customer_id;type:varchar(20)"`
	TransactionDate string  `gorm:"column:transaction_date;type:varchar(10)"`
	TransactionTime string  `gorm:"column:transaction_time;type:varchar(8)"`
	PaymentMethod   string  `gorm:"column:payment_method;type:varchar(50)"`
	ShippingAddress string  `gorm:"column:shipping_address;type:varchar(255)"`
	TotalAmount     float64 `gorm:"column:total_amount;type:double precision"`
}

func (ProductionTransaction) TableName() string {
	return "production_transactions"
}

type ProductionTransactionItem struct {
	ItemID             string  `gorm:"column:item_id;type:varchar(20)"`
	TransactionID      string  `gorm:"column:transaction_id;type:varchar(20)"`
	ProductID          string  `gorm:"column:product_id;type:varchar(20)"`
	Quantity           int     `gorm:"column:quantity"`
	UnitPrice          float64 `gorm:"column:unit_price;type:double precision"`
	DiscountPercentage int     `gorm:"column:discount_percentage"`
	LineTotal          float64 `gorm:"column:line_total;type:double precision"`
}

func (ProductionTransactionItem) TableName() string {
	return "production_transaction_items"
}
