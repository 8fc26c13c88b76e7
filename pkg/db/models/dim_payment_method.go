package models

import (
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
)

// DimPaymentMethod is the payment method dimension. One row per method
// the generator can emit, keyed by a surrogate identity.
type DimPaymentMethod struct {
	PaymentMethodKey  int64             `gorm:"column:payment_method_key;primaryKey;autoIncrement"`
	PaymentMethodName string            `gorm:"column:payment_method_name;type:varchar(50);uniqueIndex"`
	PaymentType       enums.PaymentType `gorm:"column:payment_type;type:varchar(20)"`
}

func (DimPaymentMethod) TableName() string {
	return "warehouse_dim_payment_method"
}
