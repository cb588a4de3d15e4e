package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Storage       StorageConfig
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
	Env          string `envconfig:"SCHAND_APP_ENV" required:"true"`
	Port         string `envconfig:"SCHAND_APP_PORT" default:"9090"`
	LogLevel     string `envconfig:"SCHAND_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SCHAND_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"SCHAND_DB_DSN"`

	Host     string `envconfig:"SCHAND_DB_HOST"`
	Port     int    `envconfig:"SCHAND_DB_PORT" default:"5432"`
	User     string `envconfig:"SCHAND_DB_USER"`
	Password string `envconfig:"SCHAND_DB_PASSWORD"`
	Name     string `envconfig:"SCHAND_DB_NAME"`
	SSLMode  string `envconfig:"SCHAND_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SCHAND_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SCHAND_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SCHAND_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SCHAND_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SCHAND_REDIS_URL"`
	Address      string        `envconfig:"SCHAND_REDIS_ADDR"`
	Password     string        `envconfig:"SCHAND_REDIS_PASSWORD"`
	DB           int           `envconfig:"SCHAND_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SCHAND_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SCHAND_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SCHAND_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SCHAND_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SCHAND_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SCHAND_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SCHAND_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SCHAND_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SCHAND_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SCHAND_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SCHAND_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SCHAND_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SCHAND_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"SCHAND_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"SCHAND_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"SCHAND_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"SCHAND_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"SCHAND_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"SCHAND_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type StorageConfig struct {
	RootDir     string `envconfig:"SCHAND_STORAGE_ROOT_DIR" default:"files"`
	MaxUploadMB int    `envconfig:"SCHAND_STORAGE_MAX_UPLOAD_MB" default:"50"`
	PublicBase  string `envconfig:"SCHAND_STORAGE_PUBLIC_BASE" default:"/files/"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SCHAND_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		"SCHAND_DB_HOST": db.Host,
		"SCHAND_DB_USER": db.User,
		"SCHAND_DB_NAME": db.Name,
	}
	for _, key := range []string{"SCHAND_DB_HOST", "SCHAND_DB_USER", "SCHAND_DB_NAME"} {
		if parts[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either SCHAND_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
