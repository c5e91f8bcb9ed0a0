package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Orders        OrdersConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"KITTO_APP_ENV" required:"true"`
	Port         string `envconfig:"KITTO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"KITTO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KITTO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"KITTO_DB_DSN"`
	Driver string `envconfig:"KITTO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"KITTO_DB_HOST"`
	LegacyPort     int    `envconfig:"KITTO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KITTO_DB_USER"`
	LegacyPassword string `envconfig:"KITTO_DB_PASSWORD"`
	LegacyName     string `envconfig:"KITTO_DB_NAME"`
	LegacySSLMode  string `envconfig:"KITTO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KITTO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KITTO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KITTO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KITTO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KITTO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"KITTO_REDIS_ADDR"`
	Password     string        `envconfig:"KITTO_REDIS_PASSWORD"`
	DB           int           `envconfig:"KITTO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KITTO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KITTO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KITTO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KITTO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KITTO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"KITTO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"KITTO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"KITTO_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"KITTO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"KITTO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"KITTO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"KITTO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"KITTO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow         time.Duration `envconfig:"KITTO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginMobileLimit    int           `envconfig:"KITTO_AUTH_RATE_LIMIT_LOGIN_MOBILE_LIMIT" default:"5"`
	LoginIPLimit        int           `envconfig:"KITTO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow      time.Duration `envconfig:"KITTO_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterMobileLimit int           `envconfig:"KITTO_AUTH_RATE_LIMIT_REGISTER_MOBILE_LIMIT" default:"3"`
	RegisterIPLimit     int           `envconfig:"KITTO_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type OrdersConfig struct {
	SubmitIdempotencyTTL time.Duration `envconfig:"KITTO_ORDERS_SUBMIT_IDEMPOTENCY_TTL" default:"168h"`
	DeliveryFee          string        `envconfig:"KITTO_ORDERS_DELIVERY_FEE" default:"400"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"KITTO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
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
