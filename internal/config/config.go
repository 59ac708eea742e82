package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// EnvPrefix префикс переменных окружения, например COURTBOOKING_DATABASE_PASSWORD
const EnvPrefix = "COURTBOOKING"

// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
	Limits   LimitsConfig   `toml:"limits"`
	Events   EventsConfig   `toml:"events"`
	Tracing  TracingConfig  `toml:"tracing"`
}

// ServerConfig таймауты задаются в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" envconfig:"JWT_SECRET"`
}

// BookingConfig параметры расписания
type BookingConfig struct {
	// TimezoneOffsetHours смещение локального времени площадок от UTC
	TimezoneOffsetHours int `toml:"timezone_offset_hours" split_words:"true"`
}

// LimitsConfig лимиты бронирования; 0 отключает ограничение
type LimitsConfig struct {
	MaxActiveBookings  int `toml:"max_active_bookings" split_words:"true"`
	MaxBookingsPerDay  int `toml:"max_bookings_per_day" split_words:"true"`
	AdvanceBookingDays int `toml:"advance_booking_days" split_words:"true"`
}

// EventsConfig публикация событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type TracingConfig struct {
	Enabled     bool   `toml:"enabled"`
	Endpoint    string `toml:"endpoint"`
	ServiceName string `toml:"service_name" split_words:"true"`
	Environment string `toml:"environment"`
}

// Default конфигурация по умолчанию; файл и окружение переопределяют её
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "courtbooking"},
		Booking: BookingConfig{TimezoneOffsetHours: domain.DefaultTimezoneOffsetHours},
		Events:  EventsConfig{Exchange: "courtbooking.events"},
		Tracing: TracingConfig{ServiceName: "courtbooking", Environment: "dev"},
	}
}

// Load читает TOML файл, затем .env (если есть) и переменные окружения с префиксом COURTBOOKING
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch {
	case c.Database.Host == "":
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	case c.Database.DBName == "":
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	case c.Database.Port <= 0:
		return fmt.Errorf("%w: database.port must be positive", ErrInvalidConfig)
	case c.Server.HTTPPort <= 0:
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	case c.Auth.JWTSecret == "":
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	case c.Booking.TimezoneOffsetHours < -12 || c.Booking.TimezoneOffsetHours > 14:
		return fmt.Errorf("%w: booking.timezone_offset_hours must be in [-12, 14]", ErrInvalidConfig)
	case c.Limits.MaxActiveBookings < 0 || c.Limits.MaxBookingsPerDay < 0 || c.Limits.AdvanceBookingDays < 0:
		return fmt.Errorf("%w: limits must not be negative", ErrInvalidConfig)
	case c.Events.Enabled && c.Events.URL == "":
		return fmt.Errorf("%w: events.url is required when events are enabled", ErrInvalidConfig)
	case c.Tracing.Enabled && c.Tracing.Endpoint == "":
		return fmt.Errorf("%w: tracing.endpoint is required when tracing is enabled", ErrInvalidConfig)
	}
	return nil
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс площадок
func (b BookingConfig) Location() *time.Location {
	return domain.LocalZone(b.TimezoneOffsetHours)
}
