package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver    string
	DBDSN       string
	DBIsolation string

	RateLimitRPS   float64
	RateLimitBurst int

	LowStockThreshold    int
	StockMonitorInterval time.Duration

	RabbitMQURL string
	CORSOrigin  string
}

// Default returns the configuration used when no environment is set:
// a local sqlite file and permissive limits.
func Default() *Config {
	return &Config{
		Port:                 "8080",
		GinMode:              "debug",
		LogLevel:             "info",
		DBDriver:             DriverSQLite,
		DBDSN:                "pos.db",
		RateLimitRPS:         10,
		RateLimitBurst:       20,
		LowStockThreshold:    5,
		StockMonitorInterval: 30 * time.Second,
		CORSOrigin:           "*",
	}
}

// Load reads the environment on top of Default. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	cfg.Port = getenv("PORT", cfg.Port)
	cfg.GinMode = getenv("GIN_MODE", cfg.GinMode)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.DBDriver = strings.ToLower(getenv("DB_DRIVER", cfg.DBDriver))
	cfg.DBDSN = getenv("DB_DSN", cfg.DBDSN)
	cfg.DBIsolation = getenv("DB_ISOLATION", cfg.DBIsolation)
	cfg.RabbitMQURL = getenv("RABBITMQ_URL", cfg.RabbitMQURL)
	cfg.CORSOrigin = getenv("CORS_ORIGIN", cfg.CORSOrigin)

	var err error
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if cfg.RateLimitRPS, err = strconv.ParseFloat(v, 64); err != nil || cfg.RateLimitRPS <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q", v)
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if cfg.RateLimitBurst, err = strconv.Atoi(v); err != nil || cfg.RateLimitBurst <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST %q", v)
		}
	}
	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		if cfg.LowStockThreshold, err = strconv.Atoi(v); err != nil || cfg.LowStockThreshold < 0 {
			return nil, fmt.Errorf("invalid LOW_STOCK_THRESHOLD %q", v)
		}
	}
	if v := os.Getenv("STOCK_MONITOR_INTERVAL"); v != "" {
		if cfg.StockMonitorInterval, err = time.ParseDuration(v); err != nil || cfg.StockMonitorInterval <= 0 {
			return nil, fmt.Errorf("invalid STOCK_MONITOR_INTERVAL %q", v)
		}
	}

	switch cfg.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DBDriver != DriverSQLite && os.Getenv("DB_DSN") == "" {
		return nil, fmt.Errorf("DB_DSN is required for driver %s", cfg.DBDriver)
	}
	// locking reads must see the latest committed stock: postgres only does
	// that below repeatable read, innodb does it at any level
	if cfg.DBIsolation == "" {
		switch cfg.DBDriver {
		case DriverPostgres:
			cfg.DBIsolation = "read_committed"
		case DriverMySQL:
			cfg.DBIsolation = "repeatable_read"
		}
	}
	if _, err := cfg.TxOptions(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// TxOptions returns the options for checkout transactions, or nil when the
// driver default should be used.
func (c *Config) TxOptions() (*sql.TxOptions, error) {
	switch strings.ToLower(c.DBIsolation) {
	case "", "default":
		return nil, nil
	case "read_committed":
		return &sql.TxOptions{Isolation: sql.LevelReadCommitted}, nil
	case "repeatable_read":
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead}, nil
	case "serializable":
		return &sql.TxOptions{Isolation: sql.LevelSerializable}, nil
	default:
		return nil, fmt.Errorf("invalid DB_ISOLATION %q", c.DBIsolation)
	}
}

// InitDB opens the configured database.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverMySQL:
		dialector = mysql.Open(cfg.DBDSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DBDSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows one writer; a single connection keeps checkouts queued instead of failing with SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
