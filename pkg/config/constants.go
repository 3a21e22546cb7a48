package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// CATALOG_* names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv        = "CATALOG_APP_ENV"
	EnvPort          = "CATALOG_APP_PORT"
	EnvDBDSN         = "CATALOG_DB_DSN"
	EnvDBHost        = "CATALOG_DB_HOST"
	EnvDBUser        = "CATALOG_DB_USER"
	EnvDBName        = "CATALOG_DB_NAME"
	EnvRedisURL      = "CATALOG_REDIS_URL"
	EnvSessionSecret = "CATALOG_SESSION_SECRET"
)
