package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Admin        AdminConfig
	Password     PasswordConfig
	Search       SearchConfig
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
	Env          string `envconfig:"CATALOG_APP_ENV" required:"true"`
	Port         string `envconfig:"CATALOG_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CATALOG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CATALOG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CATALOG_DB_DSN"`
	Driver string `envconfig:"CATALOG_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"CATALOG_DB_HOST"`
	Port     int    `envconfig:"CATALOG_DB_PORT" default:"5432"`
	User     string `envconfig:"CATALOG_DB_USER"`
	Password string `envconfig:"CATALOG_DB_PASSWORD"`
	Name     string `envconfig:"CATALOG_DB_NAME"`
	SSLMode  string `envconfig:"CATALOG_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CATALOG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CATALOG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CATALOG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CATALOG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either CATALOG_DB_DSN or CATALOG_DB_HOST/USER/NAME must be set")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"CATALOG_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CATALOG_REDIS_ADDR"`
	Password     string        `envconfig:"CATALOG_REDIS_PASSWORD"`
	DB           int           `envconfig:"CATALOG_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CATALOG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CATALOG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CATALOG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CATALOG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CATALOG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	Secret          string `envconfig:"CATALOG_SESSION_SECRET" required:"true"`
	Issuer          string `envconfig:"CATALOG_SESSION_ISSUER" default:"catalog-admin"`
	TTLMinutes      int    `envconfig:"CATALOG_SESSION_TTL_MINUTES" default:"120"`
	RememberTTLDays int    `envconfig:"CATALOG_SESSION_REMEMBER_TTL_DAYS" default:"30"`
	CookieName      string `envconfig:"CATALOG_SESSION_COOKIE" default:"catalog_session"`
	CookieSecure    bool   `envconfig:"CATALOG_SESSION_COOKIE_SECURE" default:"false"`
}

// TTL returns the session lifetime for a plain login.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

// RememberTTL returns the stretched lifetime used when remember is requested.
func (s SessionConfig) RememberTTL() time.Duration {
	if s.RememberTTLDays <= 0 {
		return s.TTL()
	}
	return time.Duration(s.RememberTTLDays) * 24 * time.Hour
}

type AdminConfig struct {
	Username     string `envconfig:"CATALOG_ADMIN_USERNAME" default:"admin"`
	PasswordHash string `envconfig:"CATALOG_ADMIN_PASSWORD_HASH"`
	// Password is a dev-only fallback when no hash is configured.
	Password string `envconfig:"CATALOG_ADMIN_PASSWORD"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CATALOG_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CATALOG_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CATALOG_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CATALOG_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CATALOG_ARGON_KEY_LEN" default:"32"`
}

type SearchConfig struct {
	CandidateCap    int           `envconfig:"CATALOG_SEARCH_CANDIDATE_CAP" default:"50"`
	OptionsCacheTTL time.Duration `envconfig:"CATALOG_OPTIONS_CACHE_TTL" default:"5m"`
	AdminPageSize   int           `envconfig:"CATALOG_ADMIN_PAGE_SIZE" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CATALOG_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CATALOG_AUTO_MIGRATE" default:"false"`
}
