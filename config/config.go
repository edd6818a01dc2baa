package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Supported values for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	DB_DRIVER=postgres
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=salespulse
//	LOG_LEVEL=debug
//	SEED_ORDERS=50
type Config struct {
	Server   ServerConfig
	Driver   string // "postgres" or "mysql"
	Postgres PostgresConfig
	MySQL    MySQLConfig
	Log      LogConfig
	Seed     SeedConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration // per-request context deadline
	RateLimit      int           // requests per client IP per RateWindow
	RateWindow     time.Duration
}

// PostgresConfig defines connection details for PostgreSQL.
// URL is the computed DSN used by database/sql.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// MySQLConfig defines connection details for MySQL. Params must keep
// parseTime=True so DATETIME columns scan into time.Time.
type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Params   string
	DSN      string
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string
	Pretty bool
}

// SeedConfig is the fixed-size synthetic population written by the seeder.
type SeedConfig struct {
	Schema     string
	Customers  int
	Products   int
	Orders     int
	OrderItems int
	RandomSeed int64
}

// AppConfig is the globally accessible configuration instance, populated once via LoadConfig().
var AppConfig Config

// LoadConfig initializes the global AppConfig.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Missing required variables terminate the process (see validateConfig).
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT", 60)
	viper.SetDefault("RATE_WINDOW", "1m")

	viper.SetDefault("DB_DRIVER", DriverPostgres)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "salespulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("MYSQL_HOST", "127.0.0.1")
	viper.SetDefault("MYSQL_PORT", 3306)
	viper.SetDefault("MYSQL_USER", "root")
	viper.SetDefault("MYSQL_PASSWORD", "root")
	viper.SetDefault("MYSQL_DB", "salespulse")
	viper.SetDefault("MYSQL_PARAMS", "charset=utf8mb4&parseTime=True&loc=UTC")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	viper.SetDefault("SEED_SCHEMA", "public")
	viper.SetDefault("SEED_CUSTOMERS", 100)
	viper.SetDefault("SEED_PRODUCTS", 100)
	viper.SetDefault("SEED_ORDERS", 50)
	viper.SetDefault("SEED_ORDER_ITEMS", 100)
	viper.SetDefault("SEED_RANDOM_SEED", 42)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimit:      viper.GetInt("RATE_LIMIT"),
			RateWindow:     viper.GetDuration("RATE_WINDOW"),
		},
		Driver: viper.GetString("DB_DRIVER"),
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		MySQL: MySQLConfig{
			Host:     viper.GetString("MYSQL_HOST"),
			Port:     viper.GetInt("MYSQL_PORT"),
			User:     viper.GetString("MYSQL_USER"),
			Password: viper.GetString("MYSQL_PASSWORD"),
			DBName:   viper.GetString("MYSQL_DB"),
			Params:   viper.GetString("MYSQL_PARAMS"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
		Seed: SeedConfig{
			Schema:     viper.GetString("SEED_SCHEMA"),
			Customers:  viper.GetInt("SEED_CUSTOMERS"),
			Products:   viper.GetInt("SEED_PRODUCTS"),
			Orders:     viper.GetInt("SEED_ORDERS"),
			OrderItems: viper.GetInt("SEED_ORDER_ITEMS"),
			RandomSeed: viper.GetInt64("SEED_RANDOM_SEED"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DataSourceName()
	AppConfig.MySQL.DSN = AppConfig.MySQL.DataSourceName()

	validateConfig()
}

// DataSourceName builds the lib/pq URL from the individual fields.
func (p PostgresConfig) DataSourceName() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// DataSourceName builds the go-sql-driver/mysql DSN from the individual fields.
func (m MySQLConfig) DataSourceName() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s", m.User, m.Password, m.Host, m.Port, m.DBName, m.Params)
}

// missingFields lists the environment variables whose values are unusable.
func missingFields(c Config) []string {
	var missing []string
	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	switch c.Driver {
	case DriverPostgres:
		if c.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	case DriverMySQL:
		if c.MySQL.Host == "" {
			missing = append(missing, "MYSQL_HOST")
		}
		if c.MySQL.Port == 0 {
			missing = append(missing, "MYSQL_PORT")
		}
		if c.MySQL.User == "" {
			missing = append(missing, "MYSQL_USER")
		}
		if c.MySQL.DBName == "" {
			missing = append(missing, "MYSQL_DB")
		}
	default:
		missing = append(missing, "DB_DRIVER")
	}
	return missing
}

// validateConfig terminates the application when required variables are missing.
func validateConfig() {
	if missing := missingFields(AppConfig); len(missing) > 0 {
		log.Fatalf("missing or invalid required environment variables: %v\n", missing)
	}
}
