package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "SHOPBOOKING_"

var (
	// ErrLoad возвращается, если не удалось прочитать конфигурацию
	ErrLoad = errors.New("config: failed to load")

	// ErrInvalid возвращается, если конфигурация не прошла валидацию
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server" envPrefix:"SERVER_"`
	Database  DatabaseConfig  `toml:"database" envPrefix:"DATABASE_"`
	Logs      LogsConfig      `toml:"logs" envPrefix:"LOGS_"`
	Metrics   MetricsConfig   `toml:"metrics" envPrefix:"METRICS_"`
	Catalog   CatalogConfig   `toml:"catalog" envPrefix:"CATALOG_"`
	Auth      AuthConfig      `toml:"auth" envPrefix:"AUTH_"`
	Booking   BookingConfig   `toml:"booking" envPrefix:"BOOKING_"`
	RateLimit RateLimitConfig `toml:"rate_limit" envPrefix:"RATE_LIMIT_"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT" validate:"min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" env:"READ_TIMEOUT" validate:"min=1"`
	WriteTimeout    int `toml:"write_timeout" env:"WRITE_TIMEOUT" validate:"min=1"`
	IdleTimeout     int `toml:"idle_timeout" env:"IDLE_TIMEOUT" validate:"min=1"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" validate:"min=1"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"HOST" validate:"required"`
	Port            int    `toml:"port" env:"PORT" validate:"min=1,max=65535"`
	User            string `toml:"user" env:"USER" validate:"required"`
	Password        string `toml:"password" env:"PASSWORD"`
	DBName          string `toml:"dbname" env:"DBNAME" validate:"required"`
	SSLMode         string `toml:"sslmode" env:"SSLMODE" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"MAX_OPEN_CONNS" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"MAX_IDLE_CONNS" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME" validate:"min=0"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate" env:"AUTO_MIGRATE"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`
	File  string `toml:"file" env:"FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"ENABLED"`
	Path        string `toml:"path" env:"PATH" validate:"startswith=/"`
	ServiceName string `toml:"service_name" env:"SERVICE_NAME" validate:"required"`
}

type CatalogConfig struct {
	URL     string `toml:"url" env:"URL" validate:"required,url"`
	APIKey  string `toml:"api_key" env:"API_KEY" validate:"required"`
	Timeout int    `toml:"timeout" env:"TIMEOUT" validate:"min=1"` // секунды
}

type AuthConfig struct {
	// JWTSecret секрет HS256. Пустой - доверяем заголовку X-User-ID (только для локальной разработки).
	JWTSecret string `toml:"jwt_secret" env:"JWT_SECRET"`
}

type BookingConfig struct {
	AdvanceBookingDays int    `toml:"advance_booking_days" env:"ADVANCE_BOOKING_DAYS" validate:"min=0,max=365"`
	MinNoticeMinutes   int    `toml:"min_notice_minutes" env:"MIN_NOTICE_MINUTES" validate:"min=0,max=10080"`
	DefaultOpening     string `toml:"default_opening" env:"DEFAULT_OPENING" validate:"required"`
	DefaultClosing     string `toml:"default_closing" env:"DEFAULT_CLOSING" validate:"required"`
	Timezone           string `toml:"timezone" env:"TIMEZONE" validate:"required"`
}

// DefaultHours часы работы для магазинов без собственного расписания
func (b BookingConfig) DefaultHours() domain.ShopHours {
	return domain.ShopHours{
		Opening: types.TimeString(b.DefaultOpening),
		Closing: types.TimeString(b.DefaultClosing),
	}
}

// Location часовой пояс, в котором считаются "сегодня" и минимальное время до записи
func (b BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled" env:"ENABLED"`
	RPS     float64 `toml:"rps" env:"RPS" validate:"gt=0"`
	Burst   int     `toml:"burst" env:"BURST" validate:"min=1"`
}

// Default конфигурация по умолчанию, поверх которой применяется config.toml
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
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
			Path:        "/metrics",
			ServiceName: "shop-booking",
		},
		Catalog: CatalogConfig{
			Timeout: 5,
		},
		Booking: BookingConfig{
			AdvanceBookingDays: domain.DefaultAdvanceBookingDays,
			MinNoticeMinutes:   domain.DefaultMinNoticeMinutes,
			DefaultOpening:     string(domain.DefaultOpeningTime),
			DefaultClosing:     string(domain.DefaultClosingTime),
			Timezone:           "UTC",
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     1,
			Burst:   5,
		},
	}
}

// Load загружает конфигурацию:
// 1. .env (если есть) в окружение процесса
// 2. значения по умолчанию, поверх них config.toml
// 3. переопределения из переменных окружения SHOPBOOKING_*
// 4. валидация
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrLoad, err)
	}

	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoad, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	opening, err := types.NewTimeStringFromString(c.Booking.DefaultOpening)
	if err != nil {
		return fmt.Errorf("%w: booking.default_opening: %v", ErrInvalid, err)
	}
	closing, err := types.NewTimeStringFromString(c.Booking.DefaultClosing)
	if err != nil {
		return fmt.Errorf("%w: booking.default_closing: %v", ErrInvalid, err)
	}
	if !opening.IsBefore(closing) {
		return fmt.Errorf("%w: booking.default_opening must be before default_closing", ErrInvalid)
	}
	c.Booking.DefaultOpening = opening.String()
	c.Booking.DefaultClosing = closing.String()

	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalid, err)
	}

	return nil
}
