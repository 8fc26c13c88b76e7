package models

// Staging returns the staging layer models in load order.
func Staging() []any {
	return []any{
		&StagingCustomer{},
		&StagingProduct{},
		&StagingTransaction{},
		&StagingTransactionItem{},
	}
}

// Production returns the production layer models in load order.
func Production() []any {
	return []any{
		&ProductionCustomer{},
		&ProductionProduct{},
		&ProductionTransaction{},
		&ProductionTransactionItem{},
	}
}

// Warehouse returns the warehouse layer models, dimensions before facts.
func Warehouse() []any {
	return []any{
		&DimPaymentMethod{},
		&DimDate{},
		&DimCustomer{},
		&DimProduct{},
		&FactSale{},
	}
}

// All returns every pipeline model across the three layers.
func All() []any {
	out := Staging()
	out = append(out, Production()...)
	out = append(out, Warehouse()...)
	return out
}
