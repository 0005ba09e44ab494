package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Nested sections use split_words so that, e.g., DB.User reads DB_USER only
// and never falls back to the unprefixed USER variable.
type Config struct {
	HTTPPort     string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"debug"`
	ErrorLogPath string `envconfig:"ERROR_LOG_PATH" default:"errors.log"`

	API     APIConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	Amount  AmountConfig
	CORS    CORSConfig
}

type APIConfig struct {
	BaseURL string        `split_words:"true" required:"true"`
	Timeout time.Duration `split_words:"true" default:"15s"`
}

type StorageConfig struct {
	Driver        string        `split_words:"true" default:"file"`
	FilePath      string        `split_words:"true" default:"data/session.json"`
	FlushInterval time.Duration `split_words:"true" default:"1s"`
	MigrationsDir string        `split_words:"true" default:"migrations"`
}

type DBConfig struct {
	Host     string `split_words:"true" default:"127.0.0.1"`
	Port     string `split_words:"true" default:"5432"`
	User     string `split_words:"true" default:"user"`
	Password string `split_words:"true" default:"password"`
	Name     string `split_words:"true" default:"wallet_client"`
	SSLMode  string `split_words:"true" default:"disable"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c DBConfig) MigrationURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string `split_words:"true" default:"127.0.0.1:6379"`
	Password string `split_words:"true"`
	DB       int    `split_words:"true" default:"0"`
	Prefix   string `split_words:"true" default:"wallet_client:"`
}

type AmountConfig struct {
	Min      int64  `split_words:"true" default:"10000"`
	Max      int64  `split_words:"true" default:"2000000"`
	Locale   string `split_words:"true" default:"en"`
	Currency string `split_words:"true" default:"Rp"`
}

type CORSConfig struct {
	AllowedOrigins []string `split_words:"true" default:"*"`
}

// NewConfig reads .env when present, then the process environment.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid API_BASE_URL: %w", err)
	}
	switch c.Storage.Driver {
	case StorageFile, StorageRedis, StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Storage.FlushInterval <= 0 {
		return errors.New("STORAGE_FLUSH_INTERVAL must be positive")
	}
	if c.Amount.Min <= 0 || c.Amount.Max < c.Amount.Min {
		return fmt.Errorf("invalid amount bounds %d..%d", c.Amount.Min, c.Amount.Max)
	}
	return nil
}
