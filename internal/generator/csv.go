package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// CSV artifact filenames of one generation run.
const (
	CustomersFile        = "customers.csv"
	ProductsFile         = "products.csv"
	TransactionsFile     = "transactions.csv"
	TransactionItemsFile = "transaction_items.csv"
)

// WriteCSV persists the dataset as four header-rowed CSV files under dir,
// creating the directory if needed. Empty collections still produce a file
// with the header row, so downstream loads see the full column set.
func WriteCSV(ds *Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", dir, err)
	}

	customerHeader := []string{
		"customer_id", "first_name", "last_name", "email", "phone",
		"registration_date", "city", "state", "country", "age_group",
	}
	if err := writeCSVFile(filepath.Join(dir, CustomersFile), customerHeader, len(ds.Customers), func(i int) []string {
		c := ds.Customers[i]
		return []string{
			c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone,
			c.RegistrationDate, c.City, c.State, c.Country, string(c.AgeGroup),
		}
	}); err != nil {
		return err
	}

	productHeader := []string{
		"product_id", "product_name", "category", "sub_category", "price",
		"cost", "brand", "stock_quantity", "supplier_id",
	}
	if err := writeCSVFile(filepath.Join(dir, ProductsFile), productHeader, len(ds.Products), func(i int) []string {
		p := ds.Products[i]
		return []string{
			p.ProductID, p.ProductName, p.Category, p.SubCategory, formatFloat(p.Price),
			formatFloat(p.Cost), p.Brand, strconv.Itoa(p.StockQuantity), p.SupplierID,
		}
	}); err != nil {
		return err
	}

	transactionHeader := []string{
		"transaction_id", "customer_id", "transaction_date", "transaction_time",
		"payment_method", "shipping_address", "total_amount",
	}
	if err := writeCSVFile(filepath.Join(dir, TransactionsFile), transactionHeader, len(ds.Transactions), func(i int) []string {
		t := ds.Transactions[i]
		return []string{
			t.TransactionID, t.CustomerID, t.TransactionDate, t.TransactionTime,
			string(t.PaymentMethod), t.ShippingAddress, formatFloat(t.TotalAmount),
		}
	}); err != nil {
		return err
	}

	itemHeader := []string{
		"item_id", "transaction_id", "product_id", "quantity", "unit_price",
		"discount_percentage", "line_total",
	}
	return writeCSVFile(filepath.Join(dir, TransactionItemsFile), itemHeader, len(ds.Items), func(i int) []string {
		it := ds.Items[i]
		return []string{
			it.ItemID, it.TransactionID, it.ProductID, strconv.Itoa(it.Quantity),
			formatFloat(it.UnitPrice), strconv.Itoa(it.DiscountPercentage), formatFloat(it.LineTotal),
		}
	})
}

func writeCSVFile(path string, header []string, n int, row func(int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header to %s: %w", path, err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return fmt.Errorf("writing row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
