package config

import "github.com/Skotchmaster/shop_checkout/pkg/config"

type ServiceConfig struct {
	config.Config
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "payment"
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.AuthHTTPURL, "AUTH_URL")
	config.MustNonEmpty(cfg.Gateway.BaseURL, "GATEWAY_BASE_URL")
	config.MustNonEmpty(cfg.Gateway.KeyID, "GATEWAY_KEY_ID")
	config.MustNonEmpty(cfg.Gateway.KeySecret, "GATEWAY_KEY_SECRET")

	return ServiceConfig{Config: cfg}
}
