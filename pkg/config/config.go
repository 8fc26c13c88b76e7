package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Paths        PathsConfig
	GCP          GCPConfig
	BigQuery     BigQueryConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PIPELINE_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"PIPELINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PIPELINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PIPELINE_DB_DSN"`
	Driver string `envconfig:"PIPELINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PIPELINE_DB_HOST"`
	LegacyPort     int    `envconfig:"PIPELINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PIPELINE_DB_USER"`
	LegacyPassword string `envconfig:"PIPELINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"PIPELINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"PIPELINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PIPELINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PIPELINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PIPELINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PIPELINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// PathsConfig locates the filesystem artifacts of a pipeline run: the
// generated CSVs, the JSON reports, and the analytical exports.
type PathsConfig struct {
	RawDataDir   string `envconfig:"PIPELINE_RAW_DATA_DIR" default:"data/raw"`
	StagingDir   string `envconfig:"PIPELINE_STAGING_DIR" default:"data/staging"`
	ReportDir    string `envconfig:"PIPELINE_REPORT_DIR" default:"data/processed"`
	AnalyticsDir string `envconfig:"PIPELINE_ANALYTICS_DIR" default:"data/processed/analytics"`
	ExportDir    string `envconfig:"PIPELINE_EXPORT_DIR" default:"data/csv_exports"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"PIPELINE_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"PIPELINE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"PIPELINE_GOOGLE_APPLICATION_CREDENTIALS"`
}

// Enabled reports whether the optional BigQuery export is configured.
func (g GCPConfig) Enabled() bool {
	return strings.TrimSpace(g.ProjectID) != ""
}

type BigQueryConfig struct {
	Dataset    string `envconfig:"PIPELINE_BIGQUERY_DATASET" default:"ecommerce_analytics"`
	SalesTable string `envconfig:"PIPELINE_BIGQUERY_SALES_TABLE" default:"fact_sales"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PIPELINE_AUTO_MIGRATE" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if strings.EqualFold(db.Driver, DriverSQLite) {
		db.DSN = "ecommerce.db"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
