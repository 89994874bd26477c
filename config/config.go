package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// Server
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"tripplanner"`
	ServiceVer  string `env:"SERVICE_VERSION" envDefault:"0.1.0"`

	// PostgreSQL
	PostgreSQLHost        string   `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort        string   `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser        string   `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword    string   `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase    string   `env:"POSTGRESQL_DATABASE" envDefault:"tripplanner"`
	PostgreSQLSchema      string   `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode     string   `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle     int      `env:"POSTGRESQL_MAX_IDLE" envDefault:"10"`
	PostgreSQLMaxOpen     int      `env:"POSTGRESQL_MAX_OPEN" envDefault:"50"`
	PostgreSQLReplicaDSNs []string `env:"POSTGRESQL_REPLICA_DSNS" envSeparator:","`

	// Redis
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"trip"`

	// RabbitMQ
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// Snowflake ids for event messages
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// Logger
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`
	// Per second and message: log the first LOGGER_SAMPLE_INITIAL entries, then every
	// LOGGER_SAMPLE_THEREAFTER-th. 0 disables sampling.
	LoggerSampleInitial    int `env:"LOGGER_SAMPLE_INITIAL" envDefault:"0"`
	LoggerSampleThereafter int `env:"LOGGER_SAMPLE_THEREAFTER" envDefault:"100"`

	// OpenTelemetry
	OTELEnabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTELSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1.0"`

	// Rate limiting on write endpoints
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"20"`

	// Currency. The expense form and the standalone calculator use separate rates.
	ExpenseTHBKRWRate    float64 `env:"EXPENSE_THB_KRW_RATE" envDefault:"43"`
	CalculatorTHBKRWRate float64 `env:"CALCULATOR_THB_KRW_RATE" envDefault:"38.5"`
	DefaultTripBudgetKRW int64   `env:"DEFAULT_TRIP_BUDGET_KRW" envDefault:"3000000"`

	// Feature switches
	CacheEnabled    bool          `env:"CACHE_ENABLED" envDefault:"true"`
	EventsEnabled   bool          `env:"EVENTS_ENABLED" envDefault:"true"`
	SummaryCacheTTL time.Duration `env:"SUMMARY_CACHE_TTL" envDefault:"10m"`
	ReorderLockTTL  time.Duration `env:"REORDER_LOCK_TTL" envDefault:"5s"`
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.ExpenseTHBKRWRate <= 0 {
		log.Fatal("EXPENSE_THB_KRW_RATE must be positive")
	}

	if Cfg.CalculatorTHBKRWRate <= 0 {
		log.Fatal("CALCULATOR_THB_KRW_RATE must be positive")
	}

	if Cfg.DefaultTripBudgetKRW < 0 {
		log.Fatal("DEFAULT_TRIP_BUDGET_KRW must not be negative")
	}

	if Cfg.OTELSampleRatio < 0 || Cfg.OTELSampleRatio > 1 {
		log.Printf("WARN: OTEL_SAMPLE_RATIO %.2f out of range, falling back to 1.0", Cfg.OTELSampleRatio)
		Cfg.OTELSampleRatio = 1.0
	}
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
