package config

// Environment variable names shared between Load, the migration runner,
// and the test helpers. envconfig matches on the struct tags; these
// constants keep the names in one place for callers that set or unset
// them directly.
const (
	EnvPrefix = ""

	EnvAppEnv       = "PIPELINE_APP_ENV"
	EnvLogLevel     = "PIPELINE_LOG_LEVEL"
	EnvLogWarnStack = "PIPELINE_LOG_WARN_STACK"

	EnvDBDSN     = "PIPELINE_DB_DSN"
	EnvDBDriver  = "PIPELINE_DB_DRIVER"
	EnvDBHost    = "PIPELINE_DB_HOST"
	EnvDBPort    = "PIPELINE_DB_PORT"
	EnvDBUser    = "PIPELINE_DB_USER"
	EnvDBPass    = "PIPELINE_DB_PASSWORD"
	EnvDBName    = "PIPELINE_DB_NAME"
	EnvDBSSLMode = "PIPELINE_DB_SSLMODE"

	EnvRawDataDir   = "PIPELINE_RAW_DATA_DIR"
	EnvStagingDir   = "PIPELINE_STAGING_DIR"
	EnvReportDir    = "PIPELINE_REPORT_DIR"
	EnvAnalyticsDir = "PIPELINE_ANALYTICS_DIR"
	EnvExportDir    = "PIPELINE_EXPORT_DIR"

	EnvGCPProjectID = "PIPELINE_GCP_PROJECT_ID"

	EnvAutoMigrate = "PIPELINE_AUTO_MIGRATE"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
