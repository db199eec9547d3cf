package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "lotlister"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "LOTLISTER_DB_DSN"
	EnvDBHost = "LOTLISTER_DB_HOST"
	EnvDBUser = "LOTLISTER_DB_USER"
	EnvDBName = "LOTLISTER_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Export       ExportConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string   `envconfig:"LOTLISTER_APP_ENV" required:"true"`
	Port         string   `envconfig:"LOTLISTER_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"LOTLISTER_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"LOTLISTER_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"LOTLISTER_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LOTLISTER_DB_DSN"`
	Driver string `envconfig:"LOTLISTER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LOTLISTER_DB_HOST"`
	LegacyPort     int    `envconfig:"LOTLISTER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LOTLISTER_DB_USER"`
	LegacyPassword string `envconfig:"LOTLISTER_DB_PASSWORD"`
	LegacyName     string `envconfig:"LOTLISTER_DB_NAME"`
	LegacySSLMode  string `envconfig:"LOTLISTER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LOTLISTER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LOTLISTER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LOTLISTER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LOTLISTER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LOTLISTER_REDIS_URL"`
	Address      string        `envconfig:"LOTLISTER_REDIS_ADDRESS"`
	Password     string        `envconfig:"LOTLISTER_REDIS_PASSWORD"`
	DB           int           `envconfig:"LOTLISTER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LOTLISTER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LOTLISTER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LOTLISTER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LOTLISTER_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"LOTLISTER_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type ExportConfig struct {
	// ImageBaseURL prefixes storage-relative image paths in bulk-upload
	// files. Requests may override it; empty means raw paths are emitted.
	ImageBaseURL string        `envconfig:"LOTLISTER_EXPORT_IMAGE_BASE_URL"`
	LotLockTTL   time.Duration `envconfig:"LOTLISTER_EXPORT_LOT_LOCK_TTL" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LOTLISTER_AUTO_MIGRATE" default:"false"`
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
