package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server   Server   `envconfig:"SERVER"`
	App      App      `envconfig:"APP"`
	Cache    Cache    `envconfig:"CACHE"`
	JWT      JWT      `envconfig:"JWT"`
	DB       DB       `envconfig:"DB"`
	Kafka    Kafka    `envconfig:"KAFKA"`
	Metrics  Metrics  `envconfig:"METRICS"`
	External External `envconfig:"EXTERNAL"`
}

type Server struct {
	Env      string `envconfig:"ENV"`
	LogLevel string `envconfig:"LOG_LEVEL"`
	Port     string `envconfig:"PORT"`
	Host     string `envconfig:"HOST"`
	Shutdown struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
	} `envconfig:"SHUTDOWN"`
}

type App struct {
	Name        string      `envconfig:"APP_NAME"`
	Timezone    string      `envconfig:"TIMEZONE"`
	Locale      string      `envconfig:"LOCALE" default:"en-US"`
	APIKey      string      `envconfig:"API_KEY"`
	CORS        CORS        `envconfig:"CORS"`
	RateLimiter RateLimiter `envconfig:"RATE_LIMITER"`
	Booking     Booking     `envconfig:"BOOKING"`
	Currency    Currency    `envconfig:"CURRENCY"`
}

type CORS struct {
	Enable           bool     `envconfig:"ENABLE"`
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
}

type RateLimiter struct {
	Enable        bool `envconfig:"ENABLE"`
	MaxRequests   int  `envconfig:"MAX_REQUESTS"`
	WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
}

// Booking holds the lifecycle policy knobs.
type Booking struct {
	DefaultCurrency            string `envconfig:"DEFAULT_CURRENCY" default:"USD"`
	AllowConfirmedCancellation bool   `envconfig:"ALLOW_CONFIRMED_CANCELLATION"`
}

// Currency bounds how long an idle user's conversion history is kept.
type Currency struct {
	HistoryTTLSeconds int `envconfig:"HISTORY_TTL_SECONDS" default:"86400"`
}

type Cache struct {
	TTL   int `envconfig:"TTL"`
	Redis struct {
		Primary RedisNode `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
}

type RedisNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET"`
}

type DB struct {
	Postgres Postgres `envconfig:"POSTGRES"`
}

type Postgres struct {
	MaxRetry       int          `envconfig:"MAX_RETRY"`
	RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME"`
	MigrationTable string       `envconfig:"MIGRATION_TABLE"`
	AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
	Prefix         string       `envconfig:"PREFIX"`
	Read           PostgresNode `envconfig:"READ"`
	Write          PostgresNode `envconfig:"WRITE"`
}

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

type Kafka struct {
	Enable  bool     `envconfig:"ENABLE"`
	Brokers []string `envconfig:"BROKERS"`
	Topic   string   `envconfig:"TOPIC" default:"booking.events"`
	SASL    struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
}

type Metrics struct {
	Enable bool `envconfig:"ENABLE"`
}

type External struct {
	Otel struct {
		Endpoint string `envconfig:"ENDPOINT"`
	} `envconfig:"OTEL"`
	Rates Rates `envconfig:"RATES"`
}

// Rates configures the exchange rate API and how long a snapshot is served before refresh.
type Rates struct {
	BaseURL            string `envconfig:"BASE_URL"`
	APIKey             string `envconfig:"API_KEY"`
	TimeoutSeconds     int    `envconfig:"TIMEOUT_SECONDS" default:"5"`
	SnapshotTTLSeconds int    `envconfig:"SNAPSHOT_TTL_SECONDS" default:"3600"`
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Init loads .env when present and reads the environment into the shared Config once.
func Init() error {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Warn().Err(err).Msg("No .env file loaded, reading configuration from the environment")
		}

		if err := envconfig.Process("", &conf); err != nil {
			loadErr = fmt.Errorf("processing environment: %w", err)

			return
		}

		log.Info().Msg("Service configuration initialized successfully")
	})

	return loadErr
}

func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize configuration")
	}

	return &conf
}
