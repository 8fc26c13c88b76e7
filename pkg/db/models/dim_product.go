package models

// DimProduct is the product dimension. Price and cost stay out of the
// dimension; the fact table carries the transacted amounts.
type DimProduct struct {
	ProductKey    int64  `gorm:"column:product_key;primaryKey;autoIncrement"`
	ProductID     string `gorm:"column:product_id;type:varchar(20)"`
	ProductName   string `gorm:"column:product_name;type:varchar(255)"`
	Category      string `gorm:"column:category;type:varchar(100)"`
	SubCategory   string `gorm:"column:sub_category;type:varchar(100)"`
	Brand         string `gorm:"column:brand;type:varchar(100)"`
	EffectiveDate string `gorm:"column:effective_date;type:varchar(10)"`
	IsCurrent     int    `gorm:"column:is_current"`
}

func (DimProduct) TableName() string {
	return "warehouse_dim_products"
}
