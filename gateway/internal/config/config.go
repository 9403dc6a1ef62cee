package config

import (
	"os"

	"github.com/Skotchmaster/shop_checkout/pkg/config"
)

type Config struct {
	ListenAddr string
	LogLevel   string

	// AuthURL is optional; when set, /api/v1/auth/* is proxied to it.
	AuthURL    string
	CartURL    string
	OrderURL   string
	PaymentURL string

	JWTSecret    []byte
	SecureCookie bool
}

func Load() *Config {
	cfg := &Config{
		ListenAddr:   config.EnvDefault("GATEWAY_ADDR", ":8080"),
		LogLevel:     config.EnvDefault("LOG_LEVEL", "info"),
		AuthURL:      os.Getenv("AUTH_URL"),
		CartURL:      os.Getenv("CART_URL"),
		OrderURL:     os.Getenv("ORDER_URL"),
		PaymentURL:   os.Getenv("PAYMENT_URL"),
		JWTSecret:    []byte(os.Getenv("JWT_SECRET")),
		SecureCookie: config.EnvDefault("COOKIE_SECURE", "false") == "true",
	}

	config.MustNonEmpty(cfg.CartURL, "CART_URL")
	config.MustNonEmpty(cfg.OrderURL, "ORDER_URL")
	config.MustNonEmpty(cfg.PaymentURL, "PAYMENT_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	return cfg
}
