package generator

import (
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
)

// Customer is one synthetic customer record. Dates are pre-formatted as
// YYYY-MM-DD strings so records round-trip through CSV unchanged.
type Customer struct {
	CustomerID       string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	RegistrationDate string
	City             string
	State            string
	Country          string
	AgeGroup         enums.AgeGroup
}

// Product is one synthetic catalog entry. Cost is always strictly below
// price, so every sale carries a positive margin.
type Product struct {
	ProductID     string
	ProductName   string
	Category      string
	SubCategory   string
	Price         float64
	Cost          float64
	Brand         string
	StockQuantity int
	SupplierID    string
}

// Transaction is one order header. TotalAmount starts at 0.0 and is
// back-filled once the transaction's items exist.
type Transaction struct {
	TransactionID   string
	CustomerID      string
	TransactionDate string
	TransactionTime string
	PaymentMethod   enums.PaymentMethod
	ShippingAddress string
	TotalAmount     float64
}

// TransactionItem is one order line. UnitPrice is a snapshot of the
// product's price at generation time and never tracks later changes.
type TransactionItem struct {
	ItemID             string
	TransactionID      string
	ProductID          string
	Quantity           int
	UnitPrice          float64
	DiscountPercentage int
	LineTotal          float64
}

// Dataset bundles the four generated collections of one run.
type Dataset struct {
	Customers    []Customer
	Products     []Product
	Transactions []Transaction
	Items        []TransactionItem
}

// TotalRecords counts rows across all four collections.
func (d *Dataset) TotalRecords() int {
	if d == nil {
		return 0
	}
	return len(d.Customers) + len(d.Products) + len(d.Transactions) + len(d.Items)
}
