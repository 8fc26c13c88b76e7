package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/db/models"
	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
)

// factInserter is the narrow surface ExportFactSales pushes through.
type factInserter interface {
	Insert(ctx context.Context, row FactSaleRow) error
	Flush(ctx context.Context) error
}

// ExportFactSales streams the warehouse sales fact into BigQuery through
// the batched writer. The export is additive: BigQuery-side deduplication
// is left to the dashboard layer, the pipeline only appends.
func (s *Service) ExportFactSales(ctx context.Context, writer factInserter) (int64, error) {
	s.logg.Info(ctx, "exporting sales fact to bigquery")

	query := fmt.Sprintf(`
		SELECT
			f.transaction_id, d.full_date, c.customer_id, p.product_id,
			p.category, pm.payment_method_name, f.quantity, f.unit_price,
			f.line_total, f.profit
		FROM %s f
		JOIN %s d ON f.date_key = d.date_key
		JOIN %s c ON f.customer_key = c.customer_key
		JOIN %s p ON f.product_key = p.product_key
		JOIN %s pm ON f.payment_method_key = pm.payment_method_key`,
		models.FactSale{}.TableName(),
		models.DimDate{}.TableName(),
		models.DimCustomer{}.TableName(),
		models.DimProduct{}.TableName(),
		models.DimPaymentMethod{}.TableName())

	_, rows, err := s.store.QueryRows(ctx, query)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeQuery, err, "reading sales fact")
	}

	var exported int64
	for _, row := range rows {
		transactionAt, err := time.Parse("2006-01-02", formatValue(row[1]))
		if err != nil {
			return exported, pkgerrors.Wrap(pkgerrors.CodeQuery, err, "parsing fact date")
		}
		fact := FactSaleRow{
			TransactionID: formatValue(row[0]),
			TransactionAt: transactionAt,
			CustomerID:    formatValue(row[2]),
			ProductID:     formatValue(row[3]),
			Category:      formatValue(row[4]),
			PaymentMethod: formatValue(row[5]),
			Quantity:      int64(db.ToInt(row[6])),
			UnitPrice:     db.ToFloat(row[7]),
			LineTotal:     db.ToFloat(row[8]),
			Profit:        db.ToFloat(row[9]),
		}
		if err := writer.Insert(ctx, fact); err != nil {
			return exported, err
		}
		exported++
	}
	if err := writer.Flush(ctx); err != nil {
		return exported, err
	}

	s.logg.Info(ctx, fmt.Sprintf("exported %d fact rows to bigquery", exported))
	return exported, nil
}
