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
	Admin        AdminConfig
	Password     PasswordConfig
	RateLimit    RateLimitConfig
	Idempotency  IdempotencyConfig
	FeatureFlags FeatureFlagsConfig
	Storage      StorageConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TAILORLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"TAILORLINE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TAILORLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TAILORLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TAILORLINE_DB_DSN"`
	Driver string `envconfig:"TAILORLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TAILORLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"TAILORLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TAILORLINE_DB_USER"`
	LegacyPassword string `envconfig:"TAILORLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"TAILORLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"TAILORLINE_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"TAILORLINE_DB_SQLITE_PATH" default:"storefront.db"`

	MaxOpenConns    int           `envconfig:"TAILORLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TAILORLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TAILORLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TAILORLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	SlowQuery       time.Duration `envconfig:"TAILORLINE_DB_SLOW_QUERY" default:"500ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TAILORLINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TAILORLINE_REDIS_ADDR"`
	Password     string        `envconfig:"TAILORLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TAILORLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TAILORLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TAILORLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TAILORLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TAILORLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TAILORLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AdminConfig holds the shared admin credential and the token settings for
// the order management endpoints.
type AdminConfig struct {
	PasswordHash      string `envconfig:"TAILORLINE_ADMIN_PASSWORD_HASH" required:"true"`
	JWTSecret         string `envconfig:"TAILORLINE_ADMIN_JWT_SECRET" required:"true"`
	JWTIssuer         string `envconfig:"TAILORLINE_ADMIN_JWT_ISSUER" default:"tailorline"`
	ExpirationMinutes int    `envconfig:"TAILORLINE_ADMIN_JWT_EXPIRATION_MINUTES" default:"720"`
}

// TokenTTL returns the admin token lifetime.
func (a AdminConfig) TokenTTL() time.Duration {
	if a.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(a.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TAILORLINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TAILORLINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TAILORLINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TAILORLINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TAILORLINE_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	SubscribeWindow     time.Duration `envconfig:"TAILORLINE_RATE_LIMIT_SUBSCRIBE_WINDOW" default:"10m"`
	SubscribeIPLimit    int           `envconfig:"TAILORLINE_RATE_LIMIT_SUBSCRIBE_IP_LIMIT" default:"10"`
	SubscribeEmailLimit int           `envconfig:"TAILORLINE_RATE_LIMIT_SUBSCRIBE_EMAIL_LIMIT" default:"3"`
	ContactWindow       time.Duration `envconfig:"TAILORLINE_RATE_LIMIT_CONTACT_WINDOW" default:"10m"`
	ContactIPLimit      int           `envconfig:"TAILORLINE_RATE_LIMIT_CONTACT_IP_LIMIT" default:"5"`
	LoginWindow         time.Duration `envconfig:"TAILORLINE_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit        int           `envconfig:"TAILORLINE_RATE_LIMIT_LOGIN_IP_LIMIT" default:"5"`
	TrackWindow         time.Duration `envconfig:"TAILORLINE_RATE_LIMIT_TRACK_WINDOW" default:"1m"`
	TrackIPLimit        int           `envconfig:"TAILORLINE_RATE_LIMIT_TRACK_IP_LIMIT" default:"30"`
}

type IdempotencyConfig struct {
	OrderTTL time.Duration `envconfig:"TAILORLINE_IDEMPOTENCY_ORDER_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TAILORLINE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TAILORLINE_AUTO_MIGRATE" default:"false"`
}

type StorageConfig struct {
	UploadDir    string `envconfig:"TAILORLINE_STORAGE_UPLOAD_DIR" default:"storage/uploads"`
	PublicPrefix string `envconfig:"TAILORLINE_STORAGE_PUBLIC_PREFIX" default:"/storage"`
	MaxUploadMB  int    `envconfig:"TAILORLINE_MAX_UPLOAD_MB" default:"5"`
}

// MaxUploadBytes returns the upload ceiling in bytes.
func (s StorageConfig) MaxUploadBytes() int64 {
	if s.MaxUploadMB <= 0 {
		return 5 << 20
	}
	return int64(s.MaxUploadMB) << 20
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"TAILORLINE_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
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
