package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "KITTO"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "KITTO_APP_ENV"
	EnvPort       = "KITTO_APP_PORT"
	EnvDBDSN      = "KITTO_DB_DSN"
	EnvDBHost     = "KITTO_DB_HOST"
	EnvDBUser     = "KITTO_DB_USER"
	EnvDBName     = "KITTO_DB_NAME"
	EnvRedisURL   = "KITTO_REDIS_URL"
	EnvJWTSecret  = "KITTO_JWT_SECRET"
	EnvJWTIssuer  = "KITTO_JWT_ISSUER"
	EnvJWTExpMins = "KITTO_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
