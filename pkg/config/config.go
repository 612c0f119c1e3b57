package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Import       ImportConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyLegacyFallbacks()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyLegacyFallbacks honours the variable names used by the first
// deployment of the importer and dashboard API.
func (c *Config) applyLegacyFallbacks() {
	if c.DB.File == "" {
		c.DB.File = os.Getenv(EnvLegacyDBFile)
	}
	if c.App.Port == "" {
		c.App.Port = os.Getenv(EnvLegacyAPIPort)
	}
	if c.App.Port == "" {
		c.App.Port = DefaultPort
	}
}

type AppConfig struct {
	Env          string `envconfig:"VENDAS_APP_ENV" default:"dev"`
	Port         string `envconfig:"VENDAS_APP_PORT" validate:"omitempty,numeric"`
	LogLevel     string `envconfig:"VENDAS_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"VENDAS_LOG_FORMAT" validate:"omitempty,oneof=json console"`
	LogWarnStack bool   `envconfig:"VENDAS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

// ConsoleLogs reports whether logs should be human readable. An explicit
// VENDAS_LOG_FORMAT wins; otherwise dev gets the console writer.
func (a AppConfig) ConsoleLogs() bool {
	switch a.LogFormat {
	case LogFormatConsole:
		return true
	case LogFormatJSON:
		return false
	}
	return a.IsDev()
}

type DBConfig struct {
	Driver   string `envconfig:"VENDAS_DB_DRIVER" default:"sqlite" validate:"oneof=sqlite postgres"`
	File     string `envconfig:"VENDAS_DB_FILE"`
	DSN      string `envconfig:"VENDAS_DB_DSN"`
	ReadOnly bool   `envconfig:"VENDAS_DB_READ_ONLY" default:"false"`

	LegacyHost     string `envconfig:"VENDAS_DB_HOST"`
	LegacyPort     int    `envconfig:"VENDAS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VENDAS_DB_USER"`
	LegacyPassword string `envconfig:"VENDAS_DB_PASSWORD"`
	LegacyName     string `envconfig:"VENDAS_DB_NAME"`
	LegacySSLMode  string `envconfig:"VENDAS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VENDAS_DB_MAX_OPEN_CONNS" default:"10" validate:"gte=0"`
	MaxIdleConns    int           `envconfig:"VENDAS_DB_MAX_IDLE_CONNS" default:"5" validate:"gte=0"`
	ConnMaxLifetime time.Duration `envconfig:"VENDAS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VENDAS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the store is a local SQLite file.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"VENDAS_REDIS_URL"`
	Address      string        `envconfig:"VENDAS_REDIS_ADDR"`
	Password     string        `envconfig:"VENDAS_REDIS_PASSWORD"`
	DB           int           `envconfig:"VENDAS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VENDAS_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"VENDAS_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"VENDAS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VENDAS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VENDAS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type ImportConfig struct {
	LockKey         string        `envconfig:"VENDAS_IMPORT_LOCK_KEY" default:"vendas:import:lock"`
	LockTTL         time.Duration `envconfig:"VENDAS_IMPORT_LOCK_TTL" default:"1h"`
	MetricsTextfile string        `envconfig:"VENDAS_IMPORT_METRICS_TEXTFILE"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VENDAS_AUTO_MIGRATE" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		if db.File == "" {
			return fmt.Errorf("either %s or %s is required for the sqlite driver", EnvDBFile, EnvDBDSN)
		}
		db.DSN = db.File
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
