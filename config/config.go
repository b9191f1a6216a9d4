package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Supported document store backends.
const (
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	Env               string        `mapstructure:"ENV"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`
	HandlerTimeout    time.Duration `mapstructure:"HANDLER_TIMEOUT"`

	// Firebase project used for messaging and, by default, as the document store.
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	PushDryRun              bool   `mapstructure:"PUSH_DRY_RUN"`

	// Document store selection. The mongo backend also runs the change stream feed.
	DocstoreBackend string `mapstructure:"DOCSTORE_BACKEND"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	MongoDatabase   string `mapstructure:"MONGO_DATABASE"`

	// Redis configuration. An empty address disables the delivery ledger.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisLedgerDB int           `mapstructure:"REDIS_LEDGER_DB"`
	RedisQueueDB  int           `mapstructure:"REDIS_QUEUE_DB"`
	LedgerTTL     time.Duration `mapstructure:"LEDGER_TTL"`

	QueueConcurrency int `mapstructure:"QUEUE_CONCURRENCY"`
	QueueMaxRetry    int `mapstructure:"QUEUE_MAX_RETRY"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 600)
	v.SetDefault("HANDLER_TIMEOUT", "60s")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("PUSH_DRY_RUN", false)
	v.SetDefault("DOCSTORE_BACKEND", BackendFirestore)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "hotel_booking")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_LEDGER_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("LEDGER_TTL", "24h")
	v.SetDefault("QUEUE_CONCURRENCY", 10)
	v.SetDefault("QUEUE_MAX_RETRY", 5)
}

// Load reads config.yaml from "." or "./config" when present, then the environment.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects combinations the service cannot start with.
func (c Config) Validate() error {
	switch c.DocstoreBackend {
	case BackendFirestore, BackendMongo:
	default:
		return fmt.Errorf("unknown DOCSTORE_BACKEND %q", c.DocstoreBackend)
	}
	if c.HandlerTimeout <= 0 {
		return fmt.Errorf("HANDLER_TIMEOUT must be positive, got %s", c.HandlerTimeout)
	}
	if c.DocstoreBackend == BackendMongo && c.RedisAddr == "" {
		return fmt.Errorf("DOCSTORE_BACKEND=mongo needs REDIS_ADDR for the trigger queue")
	}
	return nil
}

func LoadConfig() {
	cfg, err := Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
