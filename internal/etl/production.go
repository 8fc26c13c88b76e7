package etl

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db/models"
	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
)

// TransformToProduction rebuilds the production layer from staging. Rows
// that fail the cleansing rules stay behind in staging: customers need an
// id and an email, products a positive price, transactions an id and a
// customer, items a positive quantity. DISTINCT collapses exact duplicate
// rows. The clear and every insert run in one transaction, so a failure
// leaves the previous production state intact. Returns the inserted row
// count per production table.
func (s *Service) TransformToProduction(ctx context.Context) (map[string]int64, error) {
	s.logg.Info(ctx, "transforming staging to production")

	stagingCustomers := models.StagingCustomer{}.TableName()
	stagingProducts := models.StagingProduct{}.TableName()
	stagingTransactions := models.StagingTransaction{}.TableName()
	stagingItems := models.StagingTransactionItem{}.TableName()

	inserts := []struct {
		table string
		query string
	}{
		{models.ProductionCustomer{}.TableName(), fmt.Sprintf(`
			INSERT INTO %s
			(customer_id, first_name, last_name, email, phone, registration_date, city, state, country, age_group)
			SELECT DISTINCT customer_id, first_name, last_name, email, phone, registration_date, city, state, country, age_group
			FROM %s WHERE customer_id IS NOT NULL AND email IS NOT NULL`,
			models.ProductionCustomer{}.TableName(), stagingCustomers)},
		{models.ProductionProduct{}.TableName(), fmt.Sprintf(`
			INSERT INTO %s
			(product_id, product_name, category, sub_category, price, cost, brand, stock_quantity, supplier_id)
			SELECT DISTINCT product_id, product_name, category, sub_category, price, cost, brand, stock_quantity, supplier_id
			FROM %s WHERE product_id IS NOT NULL AND price > 0`,
			models.ProductionProduct{}.TableName(), stagingProducts)},
		{models.ProductionTransaction{}.TableName(), fmt.Sprintf(`
			INSERT INTO %s
			(transaction_id, customer_id, transaction_date, transaction_time, payment_method, shipping_address, total_amount)
			SELECT DISTINCT transaction_id, customer_id, transaction_date, transaction_time, payment_method, shipping_address, total_amount
			FROM %s WHERE transaction_id IS NOT NULL AND customer_id IS NOT NULL`,
			models.ProductionTransaction{}.TableName(), stagingTransactions)},
		{models.ProductionTransactionItem{}.TableName(), fmt.Sprintf(`
			INSERT INTO %s
			(item_id, transaction_id, product_id, quantity, unit_price, discount_percentage, line_total)
			SELECT DISTINCT item_id, transaction_id, product_id, quantity, unit_price, discount_percentage, line_total
			FROM %s WHERE item_id IS NOT NULL AND quantity > 0`,
			models.ProductionTransactionItem{}.TableName(), stagingItems)},
	}

	counts := map[string]int64{}
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.clearProduction(tx); err != nil {
			return err
		}
		for _, ins := range inserts {
			res := tx.Exec(ins.query)
			if res.Error != nil {
				return pkgerrors.Wrap(pkgerrors.CodeLoad, res.Error, fmt.Sprintf("populating %s", ins.table))
			}
			counts[ins.table] = res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ins := range inserts {
		s.stats.AddRowsLoaded(ins.table, counts[ins.table])
		s.logg.Info(s.logg.WithTable(ctx, ins.table), fmt.Sprintf("loaded %d rows", counts[ins.table]))
	}
	return counts, nil
}

func (s *Service) clearProduction(tx *gorm.DB) error {
	tables := []string{
		models.ProductionTransactionItem{}.TableName(),
		models.ProductionTransaction{}.TableName(),
		models.ProductionCustomer{}.TableName(),
		models.ProductionProduct{}.TableName(),
	}
	for _, table := range tables {
		if err := s.client.ClearTx(tx, table); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeLoad, err, fmt.Sprintf("clearing %s", table))
		}
	}
	return nil
}
