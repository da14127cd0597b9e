package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"coursepay"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"coursepay"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Gateway struct {
		BaseURL       string        `envconfig:"GATEWAY_BASE_URL" default:"https://api.gateway.test"`
		APIKey        string        `envconfig:"GATEWAY_API_KEY"`
		WebhookSecret string        `envconfig:"GATEWAY_WEBHOOK_SECRET"`
		Timeout       time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"15s"`
		SuccessURL    string        `envconfig:"GATEWAY_SUCCESS_URL" default:"http://localhost:3000/checkout/success"`
		CancelURL     string        `envconfig:"GATEWAY_CANCEL_URL" default:"http://localhost:3000/checkout/cancel"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
	}

	Kafka struct {
		BootstrapServers string `envconfig:"KAFKA_BOOTSTRAP_SERVERS"`
		EnrollmentTopic  string `envconfig:"KAFKA_ENROLLMENT_TOPIC" default:"successful_payments"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
