package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	LockDriverMemory = "memory"
	LockDriverRedis  = "redis"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Storage       StorageConfig       `toml:"storage"`
	Lock          LockConfig          `toml:"lock"`
	Redis         RedisConfig         `toml:"redis"`
	ClientService ClientServiceConfig `toml:"client_service"`
	Schedule      ScheduleConfig      `toml:"schedule"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

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
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения для golang-migrate
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | memory
}

type LockConfig struct {
	Driver           string `toml:"driver"`             // memory | redis
	AcquireTimeoutMs int    `toml:"acquire_timeout_ms"` // ожидание блокировки дня
	TTLMs            int    `toml:"ttl_ms"`             // только redis
	RetryIntervalMs  int    `toml:"retry_interval_ms"`  // только redis
	KeyPrefix        string `toml:"key_prefix"`         // только redis
}

func (c LockConfig) AcquireTimeout() time.Duration {
	return time.Duration(c.AcquireTimeoutMs) * time.Millisecond
}

func (c LockConfig) TTL() time.Duration {
	return time.Duration(c.TTLMs) * time.Millisecond
}

func (c LockConfig) RetryInterval() time.Duration {
	return time.Duration(c.RetryIntervalMs) * time.Millisecond
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type ClientServiceConfig struct {
	URL     string `toml:"url"` // пустой URL: клиенты не проверяются во внешнем сервисе
	Timeout int    `toml:"timeout"`
}

type ScheduleConfig struct {
	Open        string `toml:"open"`
	Close       string `toml:"close"`
	SlotStepMin int    `toml:"slot_step_min"`
}

// WorkingHours рабочие часы для сетки свободных слотов
func (c ScheduleConfig) WorkingHours() domain.WorkingHours {
	return domain.WorkingHours{
		Open:  types.TimeString(c.Open),
		Close: types.TimeString(c.Close),
		Step:  c.SlotStepMin,
	}
}

// Load читает TOML файл, подставляет значения по умолчанию и переменные окружения
// Переменные окружения можно положить в .env рядом с бинарником
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "barber_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "barber_booking",
		},
		Storage: StorageConfig{
			Driver: StorageDriverPostgres,
		},
		Lock: LockConfig{
			Driver:           LockDriverMemory,
			AcquireTimeoutMs: 3000,
			TTLMs:            10000,
			RetryIntervalMs:  25,
			KeyPrefix:        "barber:lock:",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		ClientService: ClientServiceConfig{
			Timeout: 5,
		},
		Schedule: ScheduleConfig{
			Open:        string(domain.DefaultOpenTime),
			Close:       string(domain.DefaultCloseTime),
			SlotStepMin: domain.DefaultSlotStepMin,
		},
	}
}

func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Logs.Level, "LOG_LEVEL")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Server.HTTPPort, "HTTP_PORT"); err != nil {
		return err
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be a valid TCP port, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Lock.Driver {
	case LockDriverMemory:
	case LockDriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for redis lock", ErrInvalidConfig)
		}
		if c.Lock.TTLMs <= c.Lock.AcquireTimeoutMs {
			return fmt.Errorf("%w: lock.ttl_ms must exceed lock.acquire_timeout_ms", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown lock.driver %q", ErrInvalidConfig, c.Lock.Driver)
	}

	if c.Lock.AcquireTimeoutMs <= 0 {
		return fmt.Errorf("%w: lock.acquire_timeout_ms must be positive", ErrInvalidConfig)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	return c.validateSchedule()
}

func (c *Config) validateSchedule() error {
	hours := c.Schedule.WorkingHours()

	open, err := hours.Open.Minutes()
	if err != nil || hours.Open.Validate() != nil {
		return fmt.Errorf("%w: schedule.open %q", ErrInvalidConfig, c.Schedule.Open)
	}
	closing, err := hours.Close.Minutes()
	if err != nil || hours.Close.Validate() != nil {
		return fmt.Errorf("%w: schedule.close %q", ErrInvalidConfig, c.Schedule.Close)
	}
	if open >= closing {
		return fmt.Errorf("%w: schedule.open must be before schedule.close", ErrInvalidConfig)
	}
	if hours.Step <= 0 {
		return fmt.Errorf("%w: schedule.slot_step_min must be positive", ErrInvalidConfig)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}
