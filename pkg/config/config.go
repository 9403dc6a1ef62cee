package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServiceName string
	LogLevel    string

	ServerPort int

	DatabaseURL string

	JWTAccessSecret []byte
	AuthHTTPURL     string

	KafkaBrokers []string

	Gateway GatewayConfig
}

// GatewayConfig holds the payment gateway credentials. WebhookSecret falls
// back to KeySecret, which is how the gateway signs webhooks unless a
// dedicated secret is configured in its dashboard.
type GatewayConfig struct {
	BaseURL       string
	KeyID         string
	KeySecret     string
	WebhookSecret string
	Currency      string
	Timeout       time.Duration
}

func Load() Config {
	keySecret := os.Getenv("GATEWAY_KEY_SECRET")

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", ""),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret: []byte(os.Getenv("JWT_SECRET")),
		AuthHTTPURL:     os.Getenv("AUTH_URL"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		Gateway: GatewayConfig{
			BaseURL:       EnvDefault("GATEWAY_BASE_URL", "https://api.razorpay.com"),
			KeyID:         os.Getenv("GATEWAY_KEY_ID"),
			KeySecret:     keySecret,
			WebhookSecret: EnvDefault("GATEWAY_WEBHOOK_SECRET", keySecret),
			Currency:      strings.ToUpper(EnvDefault("PAYMENT_CURRENCY", "INR")),
			Timeout:       time.Duration(EnvIntDefault("GATEWAY_TIMEOUT_SECONDS", 10)) * time.Second,
		},
	}
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
