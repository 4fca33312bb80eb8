package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/freshcrate/freshcrate/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment   DeploymentConfig `validate:"required"`
	Server       ServerConfig     `validate:"required"`
	Logging      LoggingConfig    `validate:"required"`
	Postgres     PostgresConfig
	Notification NotificationConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NotificationConfig configures the operations-staff notification sink.
// Skip-commit notifications are published to Topic and delivered to
// OpsWebhookURL by the notifier consumer; an empty URL disables delivery.
type NotificationConfig struct {
	Topic         string
	OpsWebhookURL string
	Timeout       time.Duration
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/freshcrate")

	v.SetEnvPrefix("FRESHCRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func applyDefaults(c *Configuration) {
	if c.Deployment.Mode == "" {
		c.Deployment.Mode = types.ModeLocal
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = types.LogLevelInfo
	}
	if c.Notification.Topic == "" {
		c.Notification.Topic = "subscription.skipped"
	}
	if c.Notification.Timeout == 0 {
		c.Notification.Timeout = 10 * time.Second
	}
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// DSN returns the Postgres connection string
func (p PostgresConfig) DSN() string {
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, sslMode,
	)
}

// GetDefaultConfig returns a default configuration for local development
// and tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Notification: NotificationConfig{
			Topic:   "subscription.skipped",
			Timeout: 10 * time.Second,
		},
	}
}
