package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string   `env:"PORT,             default=8080"`
	Env            string   `env:"ENV,              default=development"`
	JWTSecret      string   `env:"JWT_SECRET"`
	LogLevel       string   `env:"LOG_LEVEL,        default=info"`
	ChatServiceURL string   `env:"CHAT_SERVICE_URL, default=http://chat-service:8000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`
	RateLimitMax   int64    `env:"RATE_LIMIT_MAX"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=chat_gateway"`
}

type RedisConfig struct {
	// Addr is optional: when empty the rate limiter keeps its window
	// counters in process memory instead of Redis.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// RateLimitCeiling returns the per-address request ceiling for the 15-minute
// window. Production deployments run with the lower ceiling unless
// RATE_LIMIT_MAX overrides it.
func (c *Config) RateLimitCeiling() int64 {
	if c.RateLimitMax > 0 {
		return c.RateLimitMax
	}
	if c.IsProduction() {
		return 50
	}
	return 100
}

// fallbackOrigin is the production origin used when ALLOWED_ORIGINS is not
// configured. A misconfigured production deployment stays closed to cross
// origin traffic instead of degrading to the wildcard.
const fallbackOrigin = "https://your-production-domain.com"

// CORSOrigins returns the allowed origins: the configured allowlist in
// production (falling back to a fixed placeholder when unset), wildcard
// everywhere else.
func (c *Config) CORSOrigins() []string {
	if c.IsProduction() {
		if len(c.AllowedOrigins) > 0 {
			return c.AllowedOrigins
		}
		return []string{fallbackOrigin}
	}
	return []string{"*"}
}
