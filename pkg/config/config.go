package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "VAXTRACK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App       AppConfig
	Service   ServiceConfig
	DB        DBConfig
	Redis     RedisConfig
	Inventory InventoryConfig
	Cron      CronConfig
	Seed      SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VAXTRACK_APP_ENV" default:"dev"`
	Port         string `envconfig:"VAXTRACK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"VAXTRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VAXTRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"VAXTRACK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	// Driver selects the backing store. The default in-memory SQLite keeps
	// the service self-contained; postgres is available for deployments
	// that want a durable store.
	Driver string `envconfig:"VAXTRACK_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"VAXTRACK_DB_DSN" default:"file::memory:?cache=shared"`

	MaxOpenConns    int           `envconfig:"VAXTRACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VAXTRACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VAXTRACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VAXTRACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

func (db DBConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case DBDriverSQLite, DBDriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	if db.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"VAXTRACK_REDIS_URL" default:"redis://localhost:6379/0"`
	Address      string        `envconfig:"VAXTRACK_REDIS_ADDR"`
	Password     string        `envconfig:"VAXTRACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"VAXTRACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VAXTRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VAXTRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VAXTRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VAXTRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VAXTRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// InventoryConfig carries the classification thresholds. Both are tunable so
// the engine contract stays free of hard-coded policy.
type InventoryConfig struct {
	ExpiringWindowDays int `envconfig:"VAXTRACK_EXPIRING_WINDOW_DAYS" default:"30"`
	LowStockThreshold  int `envconfig:"VAXTRACK_LOW_STOCK_THRESHOLD" default:"5"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"VAXTRACK_CRON_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"VAXTRACK_CRON_LOCK_TTL" default:"25h"`
}

type SeedConfig struct {
	Enabled bool `envconfig:"VAXTRACK_SEED_ON_BOOT" default:"true"`
}
