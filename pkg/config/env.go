package config

const (
	EnvPrefix = "VENDAS"

	AppEnvDev = "dev"

	LogFormatJSON    = "json"
	LogFormatConsole = "console"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultPort = "3000"

	EnvAppEnv        = "VENDAS_APP_ENV"
	EnvPort          = "VENDAS_APP_PORT"
	EnvLogLevel      = "VENDAS_LOG_LEVEL"
	EnvLogFormat     = "VENDAS_LOG_FORMAT"
	EnvDBDriver      = "VENDAS_DB_DRIVER"
	EnvDBFile        = "VENDAS_DB_FILE"
	EnvDBDSN         = "VENDAS_DB_DSN"
	EnvDBReadOnly    = "VENDAS_DB_READ_ONLY"
	EnvDBHost        = "VENDAS_DB_HOST"
	EnvDBUser        = "VENDAS_DB_USER"
	EnvDBPassword    = "VENDAS_DB_PASSWORD"
	EnvDBName        = "VENDAS_DB_NAME"
	EnvRedisURL      = "VENDAS_REDIS_URL"
	EnvAutoMigrate   = "VENDAS_AUTO_MIGRATE"
	EnvImportLockTTL = "VENDAS_IMPORT_LOCK_TTL"
	EnvMetricsFile   = "VENDAS_IMPORT_METRICS_TEXTFILE"

	// Unprefixed names kept for existing deployments.
	EnvLegacyDBFile  = "DB_FILE"
	EnvLegacyAPIPort = "API_PORT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
