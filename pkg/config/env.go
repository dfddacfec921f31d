package config

const (
	EnvPrefix = "TAILORLINE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "TAILORLINE_APP_ENV"
	EnvPort     = "TAILORLINE_APP_PORT"
	EnvLogLevel = "TAILORLINE_LOG_LEVEL"

	EnvDBDSN  = "TAILORLINE_DB_DSN"
	EnvDBHost = "TAILORLINE_DB_HOST"
	EnvDBUser = "TAILORLINE_DB_USER"
	EnvDBName = "TAILORLINE_DB_NAME"

	EnvRedisURL = "TAILORLINE_REDIS_URL"

	EnvAdminPasswordHash = "TAILORLINE_ADMIN_PASSWORD_HASH"
	EnvAdminJWTSecret    = "TAILORLINE_ADMIN_JWT_SECRET"

	EnvUseSQLite = "TAILORLINE_USE_SQLITE"

	EnvAPIBaseURL   = "TAILORLINE_API_BASE_URL"
	EnvCartBackend  = "TAILORLINE_CART_BACKEND"
	EnvCartDir      = "TAILORLINE_CART_DIR"
	EnvAdminToken   = "TAILORLINE_ADMIN_TOKEN"
	EnvClientPrefix = "TAILORLINE_CLIENT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
