package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "FMH"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv    = "FMH_APP_ENV"
	EnvPort      = "FMH_APP_PORT"
	EnvDBDSN     = "FMH_DB_DSN"
	EnvDBHost    = "FMH_DB_HOST"
	EnvDBUser    = "FMH_DB_USER"
	EnvDBName    = "FMH_DB_NAME"
	EnvRedisURL  = "FMH_REDIS_URL"
	EnvJWTSecret = "FMH_JWT_SECRET"
	EnvJWTIssuer = "FMH_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

// Config is the validated process configuration. Load fails fast when a
// required value is absent, so a misconfigured process never starts serving.
type Config struct {
	App           AppConfig
	DB            DBConfig
	Inventory     InventoryConfig
	Redis         RedisConfig
	JWT           JWTConfig
	AuthRateLimit AuthRateLimitConfig
	Codes         CodesConfig
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
	Env          string `envconfig:"FMH_APP_ENV" required:"true"`
	Port         string `envconfig:"FMH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FMH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FMH_LOG_WARN_STACK" default:"false"`
	CORSOrigins  string `envconfig:"FMH_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Origins splits the comma-separated CORS origin allowlist.
func (a AppConfig) Origins() []string {
	if strings.TrimSpace(a.CORSOrigins) == "" {
		return nil
	}
	parts := strings.Split(a.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

type DBConfig struct {
	DSN string `envconfig:"FMH_DB_DSN"`

	LegacyHost     string `envconfig:"FMH_DB_HOST"`
	LegacyPort     int    `envconfig:"FMH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FMH_DB_USER"`
	LegacyPassword string `envconfig:"FMH_DB_PASSWORD"`
	LegacyName     string `envconfig:"FMH_DB_NAME"`
	LegacySSLMode  string `envconfig:"FMH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FMH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FMH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FMH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FMH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// InventoryConfig points at the relational inventory database. It is a
// separate datasource from the entity store; when the DSN is empty the
// inventory endpoints report a dependency error instead of failing startup.
type InventoryConfig struct {
	DSN          string        `envconfig:"FMH_INVENTORY_DB_DSN"`
	MaxOpenConns int           `envconfig:"FMH_INVENTORY_DB_MAX_OPEN_CONNS" default:"5"`
	QueryTimeout time.Duration `envconfig:"FMH_INVENTORY_DB_QUERY_TIMEOUT" default:"5s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FMH_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FMH_REDIS_ADDR"`
	Password     string        `envconfig:"FMH_REDIS_PASSWORD"`
	DB           int           `envconfig:"FMH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FMH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FMH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FMH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FMH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FMH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FMH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FMH_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FMH_JWT_EXPIRATION_MINUTES" default:"15"`
	RefreshTTLMinutes int    `envconfig:"FMH_REFRESH_TOKEN_TTL_MINUTES" default:"20160"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTTLMinutes) * time.Minute
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"FMH_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"FMH_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"FMH_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"FMH_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"FMH_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"FMH_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// CodesConfig holds the defaults for business-code generation.
type CodesConfig struct {
	DefaultBranch string `envconfig:"FMH_CODE_BRANCH" default:"DVO"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FMH_AUTO_MIGRATE" default:"false"`
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
