// Package identity produces the fixed-width surrogate keys used across
// every generated collection. Keys are assigned sequentially, so they are
// injective over a generation run by construction.
package identity

import "fmt"

// Kind selects the prefix and zero-padded width of a surrogate key.
type Kind string

const (
	KindCustomer    Kind = "customer"
	KindProduct     Kind = "product"
	KindTransaction Kind = "transaction"
	KindItem        Kind = "item"
	KindSupplier    Kind = "supplier"
)

var formats = map[Kind]string{
	KindCustomer:    "CUST%04d",
	KindProduct:     "PROD%04d",
	KindTransaction: "TXN%05d",
	KindItem:        "ITEM%05d",
	KindSupplier:    "SUP%03d",
}

// Format renders the key for a 0-based sequence index. The stored number
// is index+1, so the first customer is CUST0001, not CUST0000.
func Format(kind Kind, index int) string {
	return fmt.Sprintf(formats[kind], index+1)
}

func Customer(index int) string    { return Format(KindCustomer, index) }
func Product(index int) string     { return Format(KindProduct, index) }
func Transaction(index int) string { return Format(KindTransaction, index) }
func Item(index int) string        { return Format(KindItem, index) }
func Supplier(index int) string    { return Format(KindSupplier, index) }
