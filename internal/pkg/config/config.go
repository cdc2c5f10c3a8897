package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Quote     QuoteConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
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
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"2"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// JWTConfig holds the shared secret of the auth provider. Tokens are only
// verified here; issuing them is the provider's job. Empty disables the check.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET"`
}

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type QuoteConfig struct {
	Backend         string        `envconfig:"QUOTE_BACKEND" default:"postgres"`
	RefreshInterval time.Duration `envconfig:"QUOTE_REFRESH_INTERVAL" default:"1m"`
	PersistExpiry   bool          `envconfig:"QUOTE_PERSIST_EXPIRY" default:"false"`
	// optional: restricts the working set to a single deal
	ScopeDealID string `envconfig:"QUOTE_SCOPE_DEAL_ID"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Channel  string `envconfig:"REDIS_CHANNEL" default:"quotes.events"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type RateLimitConfig struct {
	RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst int     `envconfig:"RATE_LIMIT_BURST" default:"40"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	// envconfig treats PORT="" as set
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	switch c.Quote.Backend {
	case BackendMemory:
		return nil
	case BackendPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return errors.New("DB_USER and DB_NAME are required for the postgres quote backend")
		}
		return nil
	default:
		return fmt.Errorf("unknown QUOTE_BACKEND %q", c.Quote.Backend)
	}
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

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
			TimeZone: "UTC",
			MaxConns: 4,
			MinConns: 1,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Quote: QuoteConfig{
			Backend:         BackendMemory,
			RefreshInterval: time.Minute,
		},
		Redis: RedisConfig{
			Channel: "quotes.events",
		},
		RateLimit: RateLimitConfig{
			RPS:   1000,
			Burst: 1000,
		},
	}
}
