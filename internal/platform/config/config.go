package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Fixed keep-alive timings. The threshold is deliberately shorter than the
// ping interval so an idle process is pinged on the first cycle after it
// crosses the threshold.
const (
	InactivityThreshold   = 5 * time.Minute
	KeepAlivePingInterval = 10 * time.Minute
)

// Config holds all configuration for the notification service.
type Config struct {
	ServerPort int    `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	// Shared secret used to verify Shopify webhook signatures.
	ShopifyWebhookSecret string `mapstructure:"SHOPIFY_WEBHOOK_SECRET"`

	// WhatsApp Cloud API credentials.
	WhatsAppPhoneNumberID string `mapstructure:"WHATSAPP_PHONE_NUMBER_ID"`
	WhatsAppAccessToken   string `mapstructure:"WHATSAPP_ACCESS_TOKEN"`
	WhatsAppAPIBaseURL    string `mapstructure:"WHATSAPP_API_BASE_URL"`

	// Admin roster. AdminPhoneNumbers/Names/Contacts are parallel
	// comma-separated lists; AdminPhoneNumber is the single-admin fallback
	// used when the list is empty.
	AdminPhoneNumber  string `mapstructure:"ADMIN_PHONE_NUMBER"`
	AdminPhoneNumbers string `mapstructure:"ADMIN_PHONE_NUMBERS"`
	AdminNames        string `mapstructure:"ADMIN_NAMES"`
	AdminContacts     string `mapstructure:"ADMIN_CONTACTS"`

	// Keep-alive self-ping target (the service's own public base URL).
	KeepAliveURL     string `mapstructure:"KEEPALIVE_URL"`
	KeepAliveEnabled bool   `mapstructure:"KEEPALIVE_ENABLED"`
}

// Load reads configuration from config.defaults.yaml (if present) and the
// environment. Environment variables use the APP prefix, e.g. APP_SERVER_PORT.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP")

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHOPIFY_WEBHOOK_SECRET", "")
	v.SetDefault("WHATSAPP_PHONE_NUMBER_ID", "")
	v.SetDefault("WHATSAPP_ACCESS_TOKEN", "")
	v.SetDefault("WHATSAPP_API_BASE_URL", "https://graph.facebook.com/v19.0")
	v.SetDefault("ADMIN_PHONE_NUMBER", "")
	v.SetDefault("ADMIN_PHONE_NUMBERS", "")
	v.SetDefault("ADMIN_NAMES", "")
	v.SetDefault("ADMIN_CONTACTS", "")
	v.SetDefault("KEEPALIVE_URL", "")
	v.SetDefault("KEEPALIVE_ENABLED", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Configuration file 'config.defaults.yaml' not found; using defaults and environment variables.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
