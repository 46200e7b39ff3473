package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/fastygo/tasknotify/domain"
)

const (
	StoreBackendPostgres  = "postgres"
	StoreBackendDatastore = "datastore"

	LedgerBackendRedis = "redis"
	LedgerBackendBolt  = "bolt"

	EmailDriverSES = "ses"
	EmailDriverLog = "log"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Store       StoreConfig
	Database    DatabaseConfig
	Datastore   DatastoreConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Ledger      LedgerConfig
	Email       EmailConfig
	Sweep       SweepConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StoreConfig selects where tasks and accounts are read from.
type StoreConfig struct {
	Backend string
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type DatastoreConfig struct {
	ProjectID string
	Namespace string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type LedgerConfig struct {
	Backend string
	Path    string
	TTL     time.Duration
}

type EmailConfig struct {
	Driver string
	From   string
	Region string
	// Static credentials are optional; the default AWS chain is used when empty.
	AccessKeyID     string
	SecretAccessKey string
}

type SweepConfig struct {
	Schedule    string
	TimeZone    string
	Concurrency int
	Timeout     time.Duration
	Policy      domain.NotifyPolicy
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "tasknotify"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Minute),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Store: StoreConfig{
			Backend: getString("STORE_BACKEND", StoreBackendPostgres),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "tasks_db"),
			User:            getString("DB_USER", "tasks_user"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 2),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		Datastore: DatastoreConfig{
			ProjectID: os.Getenv("DATASTORE_PROJECT_ID"),
			Namespace: os.Getenv("DATASTORE_NAMESPACE"),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		Ledger: LedgerConfig{
			Backend: getString("LEDGER_BACKEND", LedgerBackendBolt),
			Path:    getString("LEDGER_PATH", "./data/ledger.db"),
			TTL:     getDuration("LEDGER_TTL", 30*24*time.Hour),
		},
		Email: EmailConfig{
			Driver:          getString("EMAIL_DRIVER", EmailDriverSES),
			From:            os.Getenv("EMAIL_FROM"),
			Region:          getString("AWS_REGION", "ap-southeast-2"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		Sweep: SweepConfig{
			Schedule:    getString("SWEEP_SCHEDULE", "0 0 * * *"),
			TimeZone:    getString("SWEEP_TIMEZONE", "UTC"),
			Concurrency: getInt("SWEEP_CONCURRENCY", 8),
			Timeout:     getDuration("SWEEP_TIMEOUT", 0),
			Policy:      domain.NotifyPolicy(getString("NOTIFY_POLICY", string(domain.NotifyEveryRun))),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Minute),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreBackendPostgres:
	case StoreBackendDatastore:
		if c.Datastore.ProjectID == "" {
			return fmt.Errorf("DATASTORE_PROJECT_ID is required for the datastore backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	switch c.Ledger.Backend {
	case LedgerBackendRedis, LedgerBackendBolt:
	default:
		return fmt.Errorf("unknown LEDGER_BACKEND %q", c.Ledger.Backend)
	}

	switch c.Email.Driver {
	case EmailDriverSES:
		if c.Email.From == "" {
			return fmt.Errorf("EMAIL_FROM is required for the ses driver")
		}
	case EmailDriverLog:
	default:
		return fmt.Errorf("unknown EMAIL_DRIVER %q", c.Email.Driver)
	}

	if !c.Sweep.Policy.Valid() {
		return fmt.Errorf("unknown NOTIFY_POLICY %q", c.Sweep.Policy)
	}
	if c.Sweep.Concurrency <= 0 {
		return fmt.Errorf("SWEEP_CONCURRENCY must be positive, got %d", c.Sweep.Concurrency)
	}
	if _, err := time.LoadLocation(c.Sweep.TimeZone); err != nil {
		return fmt.Errorf("invalid SWEEP_TIMEZONE: %w", err)
	}
	return nil
}

// Location returns the time zone the sweep schedule is evaluated in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Sweep.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UsesLedger reports whether notifications are deduplicated across runs.
func (c *Config) UsesLedger() bool {
	return c.Sweep.Policy == domain.NotifyOnce
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
