package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath переменная окружения с путём к файлу конфигурации
const EnvConfigPath = "CONFIG_PATH"

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация приложения
type Config struct {
	Server              ServerConfig              `toml:"server"`
	Database            DatabaseConfig            `toml:"database"`
	Logs                LogsConfig                `toml:"logs"`
	Metrics             MetricsConfig             `toml:"metrics"`
	Booking             BookingConfig             `toml:"booking"`
	HolidayService      HolidayServiceConfig      `toml:"holiday_service"`
	NotificationService NotificationServiceConfig `toml:"notification_service"`
	WeatherService      WeatherServiceConfig      `toml:"weather_service"`
	Redis               RedisConfig               `toml:"redis"`
	RateLimit           RateLimitConfig           `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к БД
type DatabaseConfig struct {
	Driver          string `toml:"driver"` // postgres | memory
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды

	// Пользователи для драйвера memory, в postgres их заводит сервис аутентификации
	SeedUsers []SeedUser `toml:"seed_users"`
}

// SeedUser пользователь, создаваемый при старте in-memory хранилища
type SeedUser struct {
	ID       int64  `toml:"id"`
	Username string `toml:"username"`
	FullName string `toml:"full_name"`
	Email    string `toml:"email"`
	Phone    string `toml:"phone"`
	Role     string `toml:"role"` // student | staff
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig правила бронирования
type BookingConfig struct {
	MaxReservationsPerDay int    `toml:"max_reservations_per_day"`
	MaxDurationMinutes    int    `toml:"max_duration_minutes"`
	PenaltyDays           int    `toml:"penalty_days"`
	InitialStatus         string `toml:"initial_status"` // confirmed | pending
	SlotStepMinutes       int    `toml:"slot_step_minutes"`
	Timezone              string `toml:"timezone"`
	NotificationWorkers   int    `toml:"notification_workers"`
	NotificationQueueSize int    `toml:"notification_queue_size"`
}

// Location возвращает часовой пояс, в котором считаются "сегодня" и "сейчас"
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// HolidayServiceConfig настройки Nager.Date
type HolidayServiceConfig struct {
	URL         string `toml:"url"`
	CountryCode string `toml:"country_code"`
	Timeout     int    `toml:"timeout"` // секунды
}

// NotificationServiceConfig настройки внешнего сервиса уведомлений
type NotificationServiceConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"` // секунды
}

// WeatherServiceConfig настройки Open-Meteo
type WeatherServiceConfig struct {
	URL             string `toml:"url"`
	Timeout         int    `toml:"timeout"`           // секунды
	CacheTTLMinutes int    `toml:"cache_ttl_minutes"` // время жизни кэша
}

// RedisConfig настройки Redis для кэша праздников
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTLHours int    `toml:"ttl_hours"`
}

// RateLimitConfig ограничение частоты запросов на клиента
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Load загружает конфигурацию из TOML файла.
// Если задана переменная CONFIG_PATH, путь берётся из неё.
func Load(path string) (*Config, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		path = envPath
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию
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
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "studyrooms",
		},
		Booking: BookingConfig{
			MaxReservationsPerDay: 3,
			MaxDurationMinutes:    120,
			PenaltyDays:           3,
			InitialStatus:         "confirmed",
			SlotStepMinutes:       30,
			Timezone:              "UTC",
			NotificationWorkers:   4,
			NotificationQueueSize: 100,
		},
		HolidayService: HolidayServiceConfig{
			URL:         "https://date.nager.at/api/v3",
			CountryCode: "GR",
			Timeout:     5,
		},
		NotificationService: NotificationServiceConfig{
			Timeout: 5,
		},
		WeatherService: WeatherServiceConfig{
			URL:             "https://api.open-meteo.com/v1",
			Timeout:         5,
			CacheTTLMinutes: 45,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			TTLHours: 24,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
		},
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Database.Driver != DriverPostgres && c.Database.Driver != DriverMemory {
		return fmt.Errorf("%w: database.driver must be %q or %q", ErrInvalidConfig, DriverPostgres, DriverMemory)
	}
	for _, u := range c.Database.SeedUsers {
		if u.ID <= 0 {
			return fmt.Errorf("%w: database.seed_users id must be positive", ErrInvalidConfig)
		}
		if u.Role != "student" && u.Role != "staff" {
			return fmt.Errorf("%w: database.seed_users role must be student or staff, got %q", ErrInvalidConfig, u.Role)
		}
	}
	if c.Booking.InitialStatus != "confirmed" && c.Booking.InitialStatus != "pending" {
		return fmt.Errorf("%w: booking.initial_status must be confirmed or pending", ErrInvalidConfig)
	}
	if c.Booking.MaxReservationsPerDay <= 0 || c.Booking.MaxDurationMinutes <= 0 {
		return fmt.Errorf("%w: booking limits must be positive", ErrInvalidConfig)
	}
	if c.Booking.PenaltyDays < 0 {
		return fmt.Errorf("%w: booking.penalty_days must not be negative", ErrInvalidConfig)
	}
	if c.Booking.SlotStepMinutes <= 0 {
		return fmt.Errorf("%w: booking.slot_step_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.NotificationWorkers <= 0 || c.Booking.NotificationQueueSize <= 0 {
		return fmt.Errorf("%w: notification workers and queue size must be positive", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.NotificationService.Enabled && c.NotificationService.URL == "" {
		return fmt.Errorf("%w: notification_service.url is required when enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}
	return nil
}
