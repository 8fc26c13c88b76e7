package models

// DimCustomer is the customer dimension, loaded as a type-2 slowly changing
// dimension. Each load stamps the effective date and marks the row current.
type DimCustomer struct {
	CustomerKey      int64  `gorm:"column:customer_key;primaryKey;autoIncrement"`
	CustomerID       string `gorm:"column:customer_id;type:varchar(20)"`
	FullName         string `gorm:"column:full_name;type:varchar(200)"`
	Email            string `gorm:"column:email;type:varchar(255)"`
	City             string `gorm:"column:city;type:varchar(100)"`
	State            string `gorm:"column:state;type:varchar(100)"`
	Country          string `gorm:"column:country;type:varchar(100)"`
	AgeGroup         string `gorm:"column:age_group;type:varchar(10)"`
	RegistrationDate string `gorm:"column:registration_date;type:varchar(10)"`
	EffectiveDate    string `gorm:"column:effective_date;type:varchar(10)"`
	IsCurrent        int    `gorm:"column:is_current"`
}

func (DimCustomer) TableName() string {
	return "warehouse_dim_customers"
}
