package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, etc.)
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// - DB_* values are only validated when STORE_DRIVER=postgres
// -----------------------------------------------------------------------------

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	NotifyDriverLog    = "log"
	NotifyDriverOutbox = "outbox"
	NotifyDriverRedis  = "redis"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Store   StoreConfig
	Ledger  LedgerConfig
	Notify  NotifyConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Metrics MetricsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Paris"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type StoreConfig struct {
	Driver   string `envconfig:"STORE_DRIVER" default:"postgres"`
	SeedFile string `envconfig:"CATALOG_SEED_FILE"`
}

type LedgerConfig struct {
	// Upper bound for reserve/cancel/resize including the wait for the partner lock.
	LockTimeout time.Duration `envconfig:"LEDGER_LOCK_TIMEOUT" default:"3s"`
}

type NotifyConfig struct {
	Driver       string        `envconfig:"NOTIFY_DRIVER" default:"log"`
	Audience     string        `envconfig:"NOTIFY_AUDIENCE" default:"admins"`
	QueueSize    int           `envconfig:"NOTIFY_QUEUE_SIZE" default:"256"`
	Timeout      time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"5s"`
	RedisAddr    string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisChannel string        `envconfig:"REDIS_CHANNEL" default:"reservations"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Paris"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"3600"` // 1*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.DB.User == "" || c.DB.Password == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_USER, DB_PASSWORD and DB_NAME are required when STORE_DRIVER=%s", StoreDriverPostgres)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Notify.Driver {
	case NotifyDriverLog, NotifyDriverRedis:
	case NotifyDriverOutbox:
		if c.Store.Driver != StoreDriverPostgres {
			return fmt.Errorf("NOTIFY_DRIVER=%s requires STORE_DRIVER=%s", NotifyDriverOutbox, StoreDriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported NOTIFY_DRIVER %q", c.Notify.Driver)
	}

	if c.Ledger.LockTimeout <= 0 {
		return fmt.Errorf("LEDGER_LOCK_TIMEOUT must be positive")
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Europe/Paris",
			MaxConns: 20,
		},
		Store: StoreConfig{
			Driver: StoreDriverMemory,
		},
		Ledger: LedgerConfig{
			LockTimeout: 3 * time.Second,
		},
		Notify: NotifyConfig{
			Driver:    NotifyDriverLog,
			Audience:  "admins",
			QueueSize: 16,
			Timeout:   time.Second,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Europe/Paris",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 3600,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
			ExposeHeaders:    []string{"Content-Length", "Location"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
	}
}
