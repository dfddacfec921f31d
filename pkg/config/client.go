package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	CartBackendFile  = "file"
	CartBackendRedis = "redis"
)

// ClientConfig configures the storefront CLI and admin screen.
type ClientConfig struct {
	APIBaseURL       string        `envconfig:"TAILORLINE_API_BASE_URL" default:"http://localhost:8080"`
	LogLevel         string        `envconfig:"TAILORLINE_LOG_LEVEL" default:"warn"`
	CartBackend      string        `envconfig:"TAILORLINE_CART_BACKEND" default:"file"`
	CartDir          string        `envconfig:"TAILORLINE_CART_DIR" default:".tailorline"`
	CartKey          string        `envconfig:"TAILORLINE_CART_KEY" default:"cart"`
	RedisURL         string        `envconfig:"TAILORLINE_REDIS_URL"`
	OrderTimeout     time.Duration `envconfig:"TAILORLINE_ORDER_TIMEOUT" default:"10s"`
	SubscribeTimeout time.Duration `envconfig:"TAILORLINE_SUBSCRIBE_TIMEOUT" default:"5s"`
	AdminToken       string        `envconfig:"TAILORLINE_ADMIN_TOKEN"`
}

func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process(EnvClientPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing client config: %w", err)
	}
	cfg.CartBackend = strings.ToLower(strings.TrimSpace(cfg.CartBackend))
	if cfg.CartBackend == "" {
		cfg.CartBackend = CartBackendFile
	}
	switch cfg.CartBackend {
	case CartBackendFile:
	case CartBackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("%s is required when %s=%s", EnvRedisURL, EnvCartBackend, CartBackendRedis)
		}
	default:
		return nil, fmt.Errorf("unsupported %s %q", EnvCartBackend, cfg.CartBackend)
	}
	return &cfg, nil
}
