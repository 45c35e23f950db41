package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "BAZAARLY"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "BAZAARLY_APP_ENV"
	EnvPort       = "BAZAARLY_APP_PORT"
	EnvDBDSN      = "BAZAARLY_DB_DSN"
	EnvDBHost     = "BAZAARLY_DB_HOST"
	EnvDBUser     = "BAZAARLY_DB_USER"
	EnvDBName     = "BAZAARLY_DB_NAME"
	EnvRedisURL   = "BAZAARLY_REDIS_URL"
	EnvJWTSecret  = "BAZAARLY_JWT_SECRET"
	EnvJWTIssuer  = "BAZAARLY_JWT_ISSUER"
	EnvJWTExpMins = "BAZAARLY_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
