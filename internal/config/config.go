package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Переменные окружения с секретами (перекрывают значения из файла)
const (
	envDBPassword    = "DB_PASSWORD"
	envRedisPassword = "REDIS_PASSWORD"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Discovery DiscoveryConfig `toml:"discovery"`
	Redis     RedisConfig     `toml:"redis"`
	Jobs      JobsConfig      `toml:"jobs"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig параметры создания бронирований
type BookingConfig struct {
	LeadTimeMinutes int `toml:"lead_time_minutes"`
}

// DiscoveryConfig параметры поиска бизнесов
type DiscoveryConfig struct {
	MaxConcurrency int `toml:"max_concurrency"`
	FetchTimeoutMs int `toml:"fetch_timeout_ms"`
}

// FetchTimeout таймаут обращения к хранилищу при поиске
func (c DiscoveryConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

// RedisConfig параметры кэша поиска
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// TTL время жизни записи кэша
func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// JobsConfig параметры фоновых задач
type JobsConfig struct {
	CompleteBookingsCron string `toml:"complete_bookings_cron"`
	TimeoutSeconds       int    `toml:"timeout_seconds"`
	Timezone             string `toml:"timezone"`
}

// Location часовой пояс планировщика
func (c JobsConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "availability",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "availability_service",
		},
		Booking: BookingConfig{
			LeadTimeMinutes: domain.DefaultBookingLeadTimeMinutes,
		},
		Discovery: DiscoveryConfig{
			MaxConcurrency: 8,
			FetchTimeoutMs: 2000,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			TTLSeconds: 60,
		},
		Jobs: JobsConfig{
			CompleteBookingsCron: "*/5 * * * *",
			TimeoutSeconds:       30,
			Timezone:             "UTC",
		},
	}
}

// Load читает TOML файл поверх значений по умолчанию.
// .env рядом с файлом конфигурации подгружается, если существует.
func Load(path string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: load %s: %w", envPath, err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if v := os.Getenv(envDBPassword); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv(envRedisPassword); v != "" {
		cfg.Redis.Password = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Booking.LeadTimeMinutes < domain.MinLeadTimeMinutes || c.Booking.LeadTimeMinutes > domain.MaxLeadTimeMinutes {
		return fmt.Errorf("%w: booking.lead_time_minutes must be in [%d, %d]",
			ErrInvalidConfig, domain.MinLeadTimeMinutes, domain.MaxLeadTimeMinutes)
	}
	if c.Discovery.MaxConcurrency <= 0 {
		return fmt.Errorf("%w: discovery.max_concurrency must be positive", ErrInvalidConfig)
	}
	if c.Discovery.FetchTimeoutMs <= 0 {
		return fmt.Errorf("%w: discovery.fetch_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.Redis.Enabled && (c.Redis.Addr == "" || c.Redis.TTLSeconds <= 0) {
		return fmt.Errorf("%w: redis.addr and redis.ttl_seconds are required when redis is enabled", ErrInvalidConfig)
	}
	if c.Jobs.CompleteBookingsCron != "" {
		if _, err := cron.ParseStandard(c.Jobs.CompleteBookingsCron); err != nil {
			return fmt.Errorf("%w: jobs.complete_bookings_cron: %v", ErrInvalidConfig, err)
		}
	}
	if _, err := c.Jobs.Location(); err != nil {
		return fmt.Errorf("%w: jobs.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}
