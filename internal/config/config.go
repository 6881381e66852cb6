package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Site      SiteConfig      `toml:"site"`
	Mail      MailConfig      `toml:"mail"`
	Security  SecurityConfig  `toml:"security"`
	Scheduler SchedulerConfig `toml:"scheduler"`
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

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TimeSlotConfig слот из [[booking.time_slots]]
type TimeSlotConfig struct {
	Key   string `toml:"key"`   // "18:00"
	Label string `toml:"label"` // "6:00 PM", если пусто - вычисляется из key
}

type BookingConfig struct {
	BusinessName           string           `toml:"business_name"`
	BusinessEmail          string           `toml:"business_email"`
	MaxPartySize           int              `toml:"max_party_size"`
	BookingWindowDays      int              `toml:"booking_window_days"`
	MaxReservationsPerSlot int              `toml:"max_reservations_per_slot"`
	EditWindowHours        int              `toml:"edit_window_hours"`
	Timezone               string           `toml:"timezone"`
	FormFields             []string         `toml:"form_fields"`
	TimeSlots              []TimeSlotConfig `toml:"time_slots"`
}

type SiteConfig struct {
	PublicURL string `toml:"public_url"` // ссылка для самостоятельного управления бронью
	AdminURL  string `toml:"admin_url"`  // ссылка на карточку брони в админке
}

type MailConfig struct {
	Enabled   bool   `toml:"enabled"`
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	FromEmail string `toml:"from_email"`
	FromName  string `toml:"from_name"`
	Timeout   int    `toml:"timeout"` // секунды
}

type SecurityConfig struct {
	AdminUsername         string `toml:"admin_username"`
	AdminPasswordHash     string `toml:"admin_password_hash"` // bcrypt
	TokenSecret           string `toml:"token_secret"`
	ActionTokenTTLMinutes int    `toml:"action_token_ttl_minutes"`
	BulkTokenTTLMinutes   int    `toml:"bulk_token_ttl_minutes"`
	FormTokenTTLMinutes   int    `toml:"form_token_ttl_minutes"`
	SubmitRatePerMinute   int    `toml:"submit_rate_per_minute"`
	SubmitBurst           int    `toml:"submit_burst"`
	TrustProxy            bool   `toml:"trust_proxy"` // сервис за reverse proxy, доверять X-Forwarded-For
}

type SchedulerConfig struct {
	Enabled              bool `toml:"enabled"`
	CleanupIntervalHours int  `toml:"cleanup_interval_hours"`
	ReminderWorkers      int  `toml:"reminder_workers"`
	ReminderQueueSize    int  `toml:"reminder_queue_size"`
}

// Load читает .env (если есть), затем TOML-файл, применяет значения по умолчанию
// и переменные окружения для секретов
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "reservation_service"
	}

	if c.Booking.BusinessName == "" {
		c.Booking.BusinessName = domain.DefaultBusinessName
	}
	setDefault(&c.Booking.MaxPartySize, domain.DefaultMaxPartySize)
	setDefault(&c.Booking.BookingWindowDays, domain.DefaultBookingWindowDays)
	setDefault(&c.Booking.MaxReservationsPerSlot, domain.DefaultMaxReservationsPerSlot)
	setDefault(&c.Booking.EditWindowHours, domain.DefaultEditWindowHours)
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = domain.DefaultTimezone
	}
	if len(c.Booking.TimeSlots) == 0 {
		c.Booking.TimeSlots = defaultTimeSlots()
	}
	if len(c.Booking.FormFields) == 0 {
		c.Booking.FormFields = []string{"name", "email", "phone", "date", "time", "party_size", "special_requests"}
	}

	setDefault(&c.Mail.Port, 587)
	setDefault(&c.Mail.Timeout, 10)
	if c.Mail.FromEmail == "" {
		c.Mail.FromEmail = c.Booking.BusinessEmail
	}
	if c.Mail.FromName == "" {
		c.Mail.FromName = c.Booking.BusinessName
	}

	if c.Security.AdminUsername == "" {
		c.Security.AdminUsername = "admin"
	}
	setDefault(&c.Security.ActionTokenTTLMinutes, 15)
	setDefault(&c.Security.BulkTokenTTLMinutes, 15)
	setDefault(&c.Security.FormTokenTTLMinutes, 12*60)
	setDefault(&c.Security.SubmitRatePerMinute, 10)
	setDefault(&c.Security.SubmitBurst, 5)

	setDefault(&c.Scheduler.CleanupIntervalHours, 24)
	setDefault(&c.Scheduler.ReminderWorkers, 2)
	setDefault(&c.Scheduler.ReminderQueueSize, 100)
}

// applyEnv секреты можно не хранить в config.toml
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.Mail.Password = v
	}
	if v := os.Getenv("TOKEN_SECRET"); v != "" {
		c.Security.TokenSecret = v
	}
	if v := os.Getenv("ADMIN_PASSWORD_HASH"); v != "" {
		c.Security.AdminPasswordHash = v
	}
}

// Validate проверяет значения, без которых сервис не может работать
func (c *Config) Validate() error {
	if c.Booking.MaxPartySize < domain.MinPartySize {
		return fmt.Errorf("%w: booking.max_party_size must be positive", ErrInvalidConfig)
	}
	if c.Booking.MaxReservationsPerSlot < 1 {
		return fmt.Errorf("%w: booking.max_reservations_per_slot must be positive", ErrInvalidConfig)
	}
	if c.Booking.EditWindowHours < 0 {
		return fmt.Errorf("%w: booking.edit_window_hours must not be negative", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if _, err := parseTimeSlots(c.Booking.TimeSlots); err != nil {
		return err
	}
	if strings.TrimSpace(c.Security.TokenSecret) == "" {
		return fmt.Errorf("%w: security.token_secret is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Security.AdminPasswordHash) == "" {
		return fmt.Errorf("%w: security.admin_password_hash is required", ErrInvalidConfig)
	}
	if _, err := bcrypt.Cost([]byte(c.Security.AdminPasswordHash)); err != nil {
		return fmt.Errorf("%w: security.admin_password_hash is not a bcrypt hash: %v", ErrInvalidConfig, err)
	}
	return nil
}

// BookingSettings настройки ресторана для бизнес-логики
func (c *Config) BookingSettings() (*domain.BookingSettings, error) {
	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}

	slots, err := parseTimeSlots(c.Booking.TimeSlots)
	if err != nil {
		return nil, err
	}

	return &domain.BookingSettings{
		BusinessName:           c.Booking.BusinessName,
		BusinessEmail:          c.Booking.BusinessEmail,
		MaxPartySize:           c.Booking.MaxPartySize,
		BookingWindowDays:      c.Booking.BookingWindowDays,
		TimeSlots:              slots,
		MaxReservationsPerSlot: c.Booking.MaxReservationsPerSlot,
		EditWindowHours:        c.Booking.EditWindowHours,
		FormFields:             c.Booking.FormFields,
		Location:               loc,
	}, nil
}

func parseTimeSlots(raw []TimeSlotConfig) ([]domain.TimeSlot, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: booking.time_slots is empty", ErrInvalidConfig)
	}

	seen := make(map[types.TimeString]struct{}, len(raw))
	slots := make([]domain.TimeSlot, 0, len(raw))
	for _, s := range raw {
		key, err := types.NewTimeStringFromString(s.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: booking.time_slots key %q: %v", ErrInvalidConfig, s.Key, err)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: booking.time_slots duplicate key %q", ErrInvalidConfig, s.Key)
		}
		seen[key] = struct{}{}

		label := s.Label
		if label == "" {
			label = key.Label()
		}
		slots = append(slots, domain.TimeSlot{Key: key, Label: label})
	}
	return slots, nil
}

// defaultTimeSlots 17:00-21:00 с шагом 30 минут
func defaultTimeSlots() []TimeSlotConfig {
	start := time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC)
	end := time.Date(0, 1, 1, 21, 0, 0, 0, time.UTC)

	var slots []TimeSlotConfig
	for t := start; !t.After(end); t = t.Add(domain.DefaultTimeSlotDuration * time.Minute) {
		slots = append(slots, TimeSlotConfig{Key: t.Format(domain.TimeFormat), Label: t.Format(domain.EmailTimeFormat)})
	}
	return slots
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
