package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	WhatsApp WhatsAppConfig `envPrefix:"WHATSAPP_"`
	Catalog  CatalogConfig  `envPrefix:"CATALOG_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
}

type ServerConfig struct {
	Addr string `env:"ADDR" envDefault:"0.0.0.0:8080"`
}

// WhatsAppConfig holds the Cloud API credentials for the outbound
// message client and the webhook verify handshake.
type WhatsAppConfig struct {
	BaseURL       string `env:"BASE_URL" envDefault:"https://graph.facebook.com/v20.0"`
	AccessToken   string `env:"ACCESS_TOKEN,required"`
	PhoneNumberID string `env:"PHONE_NUMBER_ID,required"`
	VerifyToken   string `env:"VERIFY_TOKEN,required"`
}

type CatalogConfig struct {
	BaseURL      string        `env:"BASE_URL" envDefault:"https://graph.facebook.com/v20.0"`
	AccessToken  string        `env:"ACCESS_TOKEN,required"`
	CatalogID    string        `env:"CATALOG_ID,required"`
	PageSize     int           `env:"PAGE_SIZE" envDefault:"100"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"60m"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"5s"`
}

type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Brokers []string `env:"BROKERS" envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"whatsapp-events"`
	GroupID string   `env:"GROUP_ID" envDefault:"todomarket-bot"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
