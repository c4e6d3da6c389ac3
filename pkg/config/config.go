package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	ReportLimit  ReportRateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Finance      FinanceConfig
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
	Env          string `envconfig:"SOKOYETU_APP_ENV" required:"true"`
	Port         string `envconfig:"SOKOYETU_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SOKOYETU_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOKOYETU_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SOKOYETU_DB_DSN"`
	Driver string `envconfig:"SOKOYETU_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SOKOYETU_DB_HOST"`
	LegacyPort     int    `envconfig:"SOKOYETU_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SOKOYETU_DB_USER"`
	LegacyPassword string `envconfig:"SOKOYETU_DB_PASSWORD"`
	LegacyName     string `envconfig:"SOKOYETU_DB_NAME"`
	LegacySSLMode  string `envconfig:"SOKOYETU_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SOKOYETU_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SOKOYETU_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SOKOYETU_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOKOYETU_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a DSN from the legacy host/port variables when no
// explicit DSN is supplied.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either SOKOYETU_DB_DSN or SOKOYETU_DB_HOST/USER/NAME must be set")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.LegacyUser, d.LegacyPassword),
		Host:   fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:   "/" + d.LegacyName,
	}
	q := u.Query()
	q.Set("sslmode", d.LegacySSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"SOKOYETU_REDIS_URL"`
	Address      string        `envconfig:"SOKOYETU_REDIS_ADDR"`
	Password     string        `envconfig:"SOKOYETU_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOKOYETU_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOKOYETU_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOKOYETU_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOKOYETU_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOKOYETU_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOKOYETU_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SOKOYETU_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SOKOYETU_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SOKOYETU_JWT_EXPIRATION_MINUTES" default:"60"`
}

// ReportRateLimitConfig throttles the financial reporting endpoints. Statement
// building walks every order in the window, so unbounded polling from a
// dashboard tab is a real cost.
type ReportRateLimitConfig struct {
	Window  time.Duration `envconfig:"SOKOYETU_REPORT_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"SOKOYETU_REPORT_RATE_LIMIT_IP_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SOKOYETU_AUTO_MIGRATE" default:"false"`
}

// FinanceConfig carries the platform rate constants. The admin dashboard
// displays commission at a different rate than seller statements accrue it.
type FinanceConfig struct {
	SellerCommissionRate     string `envconfig:"SOKOYETU_SELLER_COMMISSION_RATE" default:"0.10"`
	SellerPayoutRate         string `envconfig:"SOKOYETU_SELLER_PAYOUT_RATE" default:"0.90"`
	AdminStatsCommissionRate string `envconfig:"SOKOYETU_ADMIN_STATS_COMMISSION_RATE" default:"0.15"`
	VATRate                  string `envconfig:"SOKOYETU_VAT_RATE" default:"0.18"`
}
