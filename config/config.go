// File: /config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port    string
	GinMode string

	DatabaseDriver string
	DatabaseURL    string

	JWTSecret string
	JWTTTL    time.Duration

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	FrontendURL  string

	// Reminder job
	ReminderCheckEnabled  bool
	ReminderCheckInterval time.Duration
	UpcomingWindow        time.Duration
	NotifyThrottle        time.Duration

	// Optional MQTT push channel, disabled when the broker URL is empty
	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTTopicPrefix string

	LogLevel  string
	LogFormat string

	RateLimitPerMinute int
	RateLimitBurst     int
}

// fileConfig mirrors Config for the optional TOML file. Durations are kept as
// strings so they can be written as "24h" or "72h".
type fileConfig struct {
	Server struct {
		Port    string `toml:"port"`
		GinMode string `toml:"gin_mode"`
	} `toml:"server"`
	Database struct {
		Driver string `toml:"driver"`
		URL    string `toml:"url"`
	} `toml:"database"`
	Auth struct {
		JWTSecret string `toml:"jwt_secret"`
		JWTTTL    string `toml:"jwt_ttl"`
	} `toml:"auth"`
	Mail struct {
		Host        string `toml:"host"`
		Port        int    `toml:"port"`
		Username    string `toml:"username"`
		Password    string `toml:"password"`
		FromEmail   string `toml:"from_email"`
		FromName    string `toml:"from_name"`
		FrontendURL string `toml:"frontend_url"`
	} `toml:"mail"`
	Reminders struct {
		Enabled        *bool  `toml:"enabled"`
		CheckInterval  string `toml:"check_interval"`
		UpcomingWindow string `toml:"upcoming_window"`
		NotifyThrottle string `toml:"notify_throttle"`
	} `toml:"reminders"`
	MQTT struct {
		BrokerURL   string `toml:"broker_url"`
		ClientID    string `toml:"client_id"`
		TopicPrefix string `toml:"topic_prefix"`
	} `toml:"mqtt"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
	RateLimit struct {
		PerMinute int `toml:"per_minute"`
		Burst     int `toml:"burst"`
	} `toml:"rate_limit"`
}

// Default returns the built-in configuration used before any file or
// environment overrides are applied.
func Default() *Config {
	return &Config{
		Port:    "8080",
		GinMode: "debug",

		DatabaseDriver: "mysql",
		DatabaseURL:    "user:password@tcp(localhost:3306)/carservice?charset=utf8mb4&parseTime=True&loc=UTC",

		JWTSecret: "your-secret-key",
		JWTTTL:    7 * 24 * time.Hour,

		SMTPHost:    "localhost",
		SMTPPort:    2525,
		FromEmail:   "noreply@carservice.local",
		FromName:    "Car Service",
		FrontendURL: "http://localhost:3000",

		ReminderCheckEnabled:  true,
		ReminderCheckInterval: 24 * time.Hour,
		UpcomingWindow:        3 * 24 * time.Hour,
		NotifyThrottle:        24 * time.Hour,

		MQTTClientID:    "carservice-api",
		MQTTTopicPrefix: "carservice",

		LogLevel:  "info",
		LogFormat: "text",

		RateLimitPerMinute: 30,
		RateLimitBurst:     10,
	}
}

// Load builds the configuration from defaults, an optional TOML file, a .env
// file in the working directory and finally the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Warn("Could not parse .env file")
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects durations the scheduler and token issuer cannot work with.
func (c *Config) validate() error {
	durations := []struct {
		value time.Duration
		key   string
	}{
		{c.JWTTTL, "jwt ttl"},
		{c.ReminderCheckInterval, "reminder check interval"},
		{c.UpcomingWindow, "reminder upcoming window"},
		{c.NotifyThrottle, "reminder notify throttle"},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("invalid %s %s: must be positive", d.key, d.value)
		}
	}
	return nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	setString(&c.Port, fc.Server.Port)
	setString(&c.GinMode, fc.Server.GinMode)
	setString(&c.DatabaseDriver, fc.Database.Driver)
	setString(&c.DatabaseURL, fc.Database.URL)
	setString(&c.JWTSecret, fc.Auth.JWTSecret)
	setString(&c.SMTPHost, fc.Mail.Host)
	setString(&c.SMTPUsername, fc.Mail.Username)
	setString(&c.SMTPPassword, fc.Mail.Password)
	setString(&c.FromEmail, fc.Mail.FromEmail)
	setString(&c.FromName, fc.Mail.FromName)
	setString(&c.FrontendURL, fc.Mail.FrontendURL)
	setString(&c.MQTTBrokerURL, fc.MQTT.BrokerURL)
	setString(&c.MQTTClientID, fc.MQTT.ClientID)
	setString(&c.MQTTTopicPrefix, fc.MQTT.TopicPrefix)
	setString(&c.LogLevel, fc.Log.Level)
	setString(&c.LogFormat, fc.Log.Format)

	if fc.Mail.Port != 0 {
		c.SMTPPort = fc.Mail.Port
	}
	if fc.RateLimit.PerMinute != 0 {
		c.RateLimitPerMinute = fc.RateLimit.PerMinute
	}
	if fc.RateLimit.Burst != 0 {
		c.RateLimitBurst = fc.RateLimit.Burst
	}
	if fc.Reminders.Enabled != nil {
		c.ReminderCheckEnabled = *fc.Reminders.Enabled
	}

	durations := []struct {
		raw string
		dst *time.Duration
		key string
	}{
		{fc.Auth.JWTTTL, &c.JWTTTL, "auth.jwt_ttl"},
		{fc.Reminders.CheckInterval, &c.ReminderCheckInterval, "reminders.check_interval"},
		{fc.Reminders.UpcomingWindow, &c.UpcomingWindow, "reminders.upcoming_window"},
		{fc.Reminders.NotifyThrottle, &c.NotifyThrottle, "reminders.notify_throttle"},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.key, d.raw, err)
		}
		*d.dst = parsed
	}

	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.DatabaseDriver = getEnv("DATABASE_DRIVER", c.DatabaseDriver)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)

	c.SMTPHost = getEnv("SMTP_HOST", c.SMTPHost)
	c.SMTPUsername = getEnv("SMTP_USERNAME", c.SMTPUsername)
	c.SMTPPassword = getEnv("SMTP_PASSWORD", c.SMTPPassword)
	c.FromEmail = getEnv("FROM_EMAIL", c.FromEmail)
	c.FromName = getEnv("FROM_NAME", c.FromName)
	c.FrontendURL = getEnv("FRONTEND_URL", c.FrontendURL)

	c.MQTTBrokerURL = getEnv("MQTT_BROKER_URL", c.MQTTBrokerURL)
	c.MQTTClientID = getEnv("MQTT_CLIENT_ID", c.MQTTClientID)
	c.MQTTTopicPrefix = getEnv("MQTT_TOPIC_PREFIX", c.MQTTTopicPrefix)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	var err error
	if c.SMTPPort, err = getEnvInt("SMTP_PORT", c.SMTPPort); err != nil {
		return err
	}
	if c.RateLimitPerMinute, err = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute); err != nil {
		return err
	}
	if c.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", c.RateLimitBurst); err != nil {
		return err
	}
	if c.ReminderCheckEnabled, err = getEnvBool("REMINDER_CHECK_ENABLED", c.ReminderCheckEnabled); err != nil {
		return err
	}
	if c.JWTTTL, err = getEnvDuration("JWT_TTL", c.JWTTTL); err != nil {
		return err
	}
	if c.ReminderCheckInterval, err = getEnvDuration("REMINDER_CHECK_INTERVAL", c.ReminderCheckInterval); err != nil {
		return err
	}
	if c.UpcomingWindow, err = getEnvDuration("REMINDER_UPCOMING_WINDOW", c.UpcomingWindow); err != nil {
		return err
	}
	if c.NotifyThrottle, err = getEnvDuration("REMINDER_NOTIFY_THROTTLE", c.NotifyThrottle); err != nil {
		return err
	}
	return nil
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}
