package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds the ingestion configuration
type Config struct {
	LogLevel    string `validate:"required"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string `validate:"required"`
	Version     string
	LogDir      string

	DBUser            string `validate:"required"`
	DBPassword        string
	DBHost            string `validate:"required"`
	DBPort            string `validate:"required,numeric"`
	DBName            string `validate:"required"`
	DBMaxConns        int    `validate:"min=1"`
	DBMaxConnIdle     time.Duration
	DBMaxConnLifetime time.Duration

	BNetClientID       string        `validate:"required"`
	BNetClientSecret   string        `validate:"required"`
	BNetRegion         string        `validate:"required,alpha,lowercase"`
	BNetLocale         string        `validate:"required"`
	BNetAPIBaseURL     string        `validate:"required,url"`
	BNetTokenURL       string        `validate:"required,url"`
	BNetRequestsPerSec float64       `validate:"gt=0"`
	BNetBurst          int           `validate:"min=1"`
	BNetMaxRetries     int           `validate:"min=0"`
	BNetRetryWait      time.Duration `validate:"gte=0"`
	BNetRetryMaxWait   time.Duration `validate:"gtefield=BNetRetryWait"`
	BNetTimeout        time.Duration `validate:"gt=0"`

	LoaderChunkSize  int `validate:"min=1"`
	AuctionChunkSize int `validate:"min=1"`
	RefdataPath      string

	MetricsPushURL    string        `validate:"omitempty,url"`
	MetricsAddr       string        `validate:"required"`
	AuctionInterval   time.Duration `validate:"gt=0"`
	RetentionInterval time.Duration `validate:"gt=0"`
	RetentionDays     int           `validate:"min=1"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	region := strings.ToLower(getEnv("BNET_REGION", DefaultBNetRegion))

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),
		LogDir:      getEnv("LOG_DIR", ""),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "freelunch"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
		DBMaxConnIdle:     getEnvAsDuration("DB_MAX_CONN_IDLE", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),

		BNetClientID:       getEnv("BNET_CLIENT_ID", ""),
		BNetClientSecret:   getEnv("BNET_CLIENT_SECRET", ""),
		BNetRegion:         region,
		BNetAPIBaseURL:     getEnv("BNET_API_BASE_URL", fmt.Sprintf(BNetAPIBaseURLPattern, region)),
		BNetTokenURL:       getEnv("BNET_TOKEN_URL", DefaultBNetTokenURL),
		BNetRequestsPerSec: getEnvAsFloat("BNET_REQUESTS_PER_SECOND", 50),
		BNetBurst:          getEnvAsInt("BNET_BURST", 10),
		BNetMaxRetries:     getEnvAsInt("BNET_MAX_RETRIES", 3),
		BNetRetryWait:      getEnvAsDuration("BNET_RETRY_WAIT", 500*time.Millisecond),
		BNetRetryMaxWait:   getEnvAsDuration("BNET_RETRY_MAX_WAIT", 5*time.Second),
		BNetTimeout:        getEnvAsDuration("BNET_TIMEOUT", 30*time.Second),

		LoaderChunkSize:  getEnvAsInt("LOADER_CHUNK_SIZE", 100),
		AuctionChunkSize: getEnvAsInt("AUCTION_CHUNK_SIZE", 1000),
		RefdataPath:      getEnv("REFDATA_PATH", ""),

		MetricsPushURL:    getEnv("METRICS_PUSH_URL", ""),
		MetricsAddr:       getEnv("METRICS_ADDR", ":9102"),
		AuctionInterval:   getEnvAsDuration("AUCTION_INTERVAL", time.Hour),
		RetentionInterval: getEnvAsDuration("RETENTION_INTERVAL", 24*time.Hour),
		RetentionDays:     getEnvAsInt("RETENTION_DAYS", 3),
	}

	locale, err := normalizeLocale(getEnv("BNET_LOCALE", DefaultBNetLocale))
	if err != nil {
		return nil, err
	}
	cfg.BNetLocale = locale

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}

	return cfg, nil
}

// normalizeLocale accepts en_US or en-US and returns the upstream form en_US
func normalizeLocale(raw string) (string, error) {
	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("%s %q: %w", ErrMsgInvalidLocale, raw, err)
	}
	base, _ := tag.Base()
	region, conf := tag.Region()
	if conf == language.No {
		return base.String(), nil
	}
	return base.String() + "_" + region.String(), nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns the default when the variable is unset or not an integer
func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDuration returns the default when the variable is unset or unparseable
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
