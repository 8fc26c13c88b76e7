package models

// DimDate is the calendar dimension. The date key is the yyyymmdd integer
// form of the date, so fact rows can derive their key from the transaction
// date without a lookup.
type DimDate struct {
	DateKey    int    `gorm:"column:date_key;primaryKey"`
	FullDate   string `gorm:"column:full_date;type:varchar(10)"`
	Year       int    `gorm:"column:year"`
	Quarter    int    `gorm:"column:quarter"`
	Month      int    `gorm:"column:month"`
	Day        int    `gorm:"column:day"`
	MonthName  string `gorm:"column:month_name;type:varchar(10)"`
	DayName    string `gorm:"column:day_name;type:varchar(10)"`
	WeekOfYear int    `gorm:"column:week_of_year"`
	IsWeekend  int    `gorm:"column:is_weekend"`
}

func (DimDate) TableName() string {
	return "warehouse_dim_date"
}
