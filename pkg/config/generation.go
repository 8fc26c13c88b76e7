package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// GenerationConfig drives the synthetic-data generators: cardinalities,
// the transaction date window, the category taxonomy, and the fixed
// payment/discount option sets. It is read from a YAML file; absent keys
// fall back to the built-in defaults.
type GenerationConfig struct {
	Counts         CountsConfig     `yaml:"data_generation" mapstructure:"data_generation"`
	DateRange      DateRangeConfig  `yaml:"date_range" mapstructure:"date_range"`
	Categories     []CategoryConfig `yaml:"categories" mapstructure:"categories" validate:"min=1,dive"`
	PaymentMethods []string         `yaml:"payment_methods" mapstructure:"payment_methods" validate:"min=1"`
	DiscountLevels []int            `yaml:"discount_levels" mapstructure:"discount_levels" validate:"min=1,dive,gte=0,lte=100"`
	ItemsPerTxn    BoundsConfig     `yaml:"items_per_transaction" mapstructure:"items_per_transaction"`
	Quantity       BoundsConfig     `yaml:"quantity" mapstructure:"quantity"`
}

type CountsConfig struct {
	Customers    int   `yaml:"num_customers" mapstructure:"num_customers" validate:"gte=0"`
	Products     int   `yaml:"num_products" mapstructure:"num_products" validate:"gte=0"`
	Transactions int   `yaml:"num_transactions" mapstructure:"num_transactions" validate:"gte=0"`
	Seed         int64 `yaml:"seed" mapstructure:"seed"`
}

type DateRangeConfig struct {
	StartDate string `yaml:"start_date" mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `yaml:"end_date" mapstructure:"end_date" validate:"required,datetime=2006-01-02"`
}

// Window parses the configured bounds into times. Validate has already
// checked the format, so parse failures only occur on unvalidated input.
func (d DateRangeConfig) Window() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", d.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start_date")
	}
	end, err := time.Parse("2006-01-02", d.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid end_date")
	}
	return start, end, nil
}

// CategoryConfig is one entry of the product taxonomy. The slice order is
// meaningful: products are partitioned across categories in config order.
type CategoryConfig struct {
	Name          string   `yaml:"name" mapstructure:"name" validate:"required"`
	Subcategories []string `yaml:"subcategories" mapstructure:"subcategories" validate:"min=1"`
	PriceMin      float64  `yaml:"price_min" mapstructure:"price_min" validate:"gt=0"`
	PriceMax      float64  `yaml:"price_max" mapstructure:"price_max" validate:"gtefield=PriceMin"`
}

type BoundsConfig struct {
	Min int `yaml:"min" mapstructure:"min" validate:"gte=0"`
	Max int `yaml:"max" mapstructure:"max" validate:"gtefield=Min"`
}

var generationValidate = newGenerationValidator()

func newGenerationValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// DefaultGeneration returns the built-in generation parameters: 1000
// customers, 500 products, 10000 transactions over calendar year 2024,
// the six-category taxonomy, and the standard payment/discount sets.
func DefaultGeneration() *GenerationConfig {
	methods := enums.PaymentMethods()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}
	return &GenerationConfig{
		Counts: CountsConfig{
			Customers:    1000,
			Products:     500,
			Transactions: 10000,
			Seed:         42,
		},
		DateRange: DateRangeConfig{
			StartDate: "2024-01-01",
			EndDate:   "2024-12-31",
		},
		Categories: []CategoryConfig{
			{Name: "Electronics", Subcategories: []string{"Phones", "Laptops", "Tablets", "Accessories"}, PriceMin: 500, PriceMax: 50000},
			{Name: "Clothing", Subcategories: []string{"Men", "Women", "Kids"}, PriceMin: 200, PriceMax: 5000},
			{Name: "Home & Kitchen", Subcategories: []string{"Appliances", "Cookware", "Bedding"}, PriceMin: 500, PriceMax: 15000},
			{Name: "Books", Subcategories: []string{"Fiction", "Non-Fiction", "Academic"}, PriceMin: 100, PriceMax: 2000},
			{Name: "Sports", Subcategories: []string{"Equipment", "Clothing", "Accessories"}, PriceMin: 500, PriceMax: 10000},
			{Name: "Beauty", Subcategories: []string{"Skincare", "Makeup", "Haircare"}, PriceMin: 200, PriceMax: 5000},
		},
		PaymentMethods: names,
		DiscountLevels: []int{0, 5, 10, 15, 20},
		ItemsPerTxn:    BoundsConfig{Min: 1, Max: 5},
		Quantity:       BoundsConfig{Min: 1, Max: 5},
	}
}

// LoadGeneration reads the generation config from the given YAML file,
// overlaying it on the defaults. An empty path returns the defaults.
func LoadGeneration(path string) (*GenerationConfig, error) {
	cfg := DefaultGeneration()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading generation config")
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decoding generation config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the input contract: negative counts are rejected,
// bounds must be ordered, and every payment method must be recognized.
func (g *GenerationConfig) Validate() error {
	if err := generationValidate.Struct(g); err != nil {
		return formatGenerationErrors(err)
	}

	start, end, err := g.DateRange.Window()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "date_range end_date precedes start_date")
	}

	for _, raw := range g.PaymentMethods {
		if _, err := enums.ParsePaymentMethod(raw); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unrecognized payment method")
		}
	}
	return nil
}

func formatGenerationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = generationValidationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "generation config invalid").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "generation config invalid")
}

func generationValidationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gtefield":
		return fmt.Sprintf("must not be less than %s", fe.Param())
	case "datetime":
		return "must be formatted as YYYY-MM-DD"
	}
	return "is invalid"
}
