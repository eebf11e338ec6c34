package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Discovery dispatch modes.
const (
	DiscoveryModeQueue    = "queue"
	DiscoveryModeHTTP     = "http"
	DiscoveryModeDisabled = "disabled"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Valkey    ValkeyConfig    `yaml:"valkey"`
	LLM       LLMConfig       `yaml:"llm"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Seed      SeedConfig      `yaml:"seed"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
	CORS            CORSConfig      `yaml:"cors"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// AuthConfig configures bearer verification.
type AuthConfig struct {
	JWTSecret  string        `yaml:"jwtSecret"`
	Audience   string        `yaml:"audience"`
	TokenTTL   time.Duration `yaml:"tokenTtl"`
	ServiceKey string        `yaml:"serviceKey"`
}

// PostgresConfig contains DSN and pooling settings. An empty DSN selects the
// in-memory repositories.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the job queue and rule cache.
type ValkeyConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Addr        string        `yaml:"addr"`
	QueueKey    string        `yaml:"queueKey"`
	CachePrefix string        `yaml:"cachePrefix"`
	CacheTTL    time.Duration `yaml:"cacheTtl"`
}

// LLMConfig contains OpenAI compatible settings for rule synthesis.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// DiscoveryConfig controls how unmatched ingredients are sent for synthesis.
type DiscoveryConfig struct {
	Mode            string        `yaml:"mode"`
	BatchSize       int           `yaml:"batchSize"`
	Endpoint        string        `yaml:"endpoint"`
	ServiceKey      string        `yaml:"serviceKey"`
	DispatchTimeout time.Duration `yaml:"dispatchTimeout"`
}

// SeedConfig points at a YAML fixture loaded into the in-memory repositories.
type SeedConfig struct {
	Path string `yaml:"path"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.HTTP.Address, "HTTP_ADDRESS")
	setBool(&cfg.HTTP.RateLimit.Enabled, "HTTP_RATE_LIMIT_ENABLED")
	setInt(&cfg.HTTP.RateLimit.RequestsPerMinute, "HTTP_RATE_LIMIT_RPM")
	setInt(&cfg.HTTP.RateLimit.Burst, "HTTP_RATE_LIMIT_BURST")
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowedOrigins = splitList(v)
	}

	setString(&cfg.Auth.JWTSecret, "AUTH_JWT_SECRET")
	setString(&cfg.Auth.Audience, "AUTH_AUDIENCE")
	setDuration(&cfg.Auth.TokenTTL, "AUTH_TOKEN_TTL")
	setString(&cfg.Auth.ServiceKey, "AUTH_SERVICE_KEY")

	setString(&cfg.Postgres.DSN, "POSTGRES_DSN")
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}

	setBool(&cfg.Valkey.Enabled, "VALKEY_ENABLED")
	setString(&cfg.Valkey.Addr, "VALKEY_ADDR")
	setString(&cfg.Valkey.QueueKey, "VALKEY_QUEUE_KEY")
	setString(&cfg.Valkey.CachePrefix, "VALKEY_CACHE_PREFIX")
	setDuration(&cfg.Valkey.CacheTTL, "VALKEY_CACHE_TTL")

	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	setDuration(&cfg.LLM.Timeout, "LLM_TIMEOUT")

	setString(&cfg.Discovery.Mode, "DISCOVERY_MODE")
	setInt(&cfg.Discovery.BatchSize, "DISCOVERY_BATCH_SIZE")
	setString(&cfg.Discovery.Endpoint, "DISCOVERY_ENDPOINT")
	setString(&cfg.Discovery.ServiceKey, "DISCOVERY_SERVICE_KEY")
	setDuration(&cfg.Discovery.DispatchTimeout, "DISCOVERY_DISPATCH_TIMEOUT")

	setString(&cfg.Seed.Path, "SEED_PATH")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			CORS: CORSConfig{
				AllowedOrigins: []string{"http://localhost:5173"},
			},
		},
		Auth: AuthConfig{
			Audience: "authenticated",
			TokenTTL: time.Hour,
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
		},
		Valkey: ValkeyConfig{
			QueueKey:    "hairmatch:jobs",
			CachePrefix: "hairmatch:rule:",
			CacheTTL:    10 * time.Minute,
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
			Timeout:     60 * time.Second,
		},
		Discovery: DiscoveryConfig{
			Mode:            DiscoveryModeQueue,
			BatchSize:       20,
			DispatchTimeout: 10 * time.Second,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwtSecret cannot be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.tokenTtl must be positive")
	}
	if c.Postgres.MaxConns < 0 || c.Postgres.MinConns < 0 {
		return errors.New("postgres pool sizes cannot be negative")
	}
	if c.Valkey.Enabled {
		if strings.TrimSpace(c.Valkey.Addr) == "" {
			return errors.New("valkey.addr cannot be empty when valkey is enabled")
		}
		if strings.TrimSpace(c.Valkey.QueueKey) == "" {
			return errors.New("valkey.queueKey cannot be empty when valkey is enabled")
		}
	}
	if c.Valkey.CacheTTL < 0 {
		return errors.New("valkey.cacheTtl cannot be negative")
	}
	switch c.Discovery.Mode {
	case DiscoveryModeQueue, DiscoveryModeDisabled:
	case DiscoveryModeHTTP:
		if strings.TrimSpace(c.Discovery.Endpoint) == "" {
			return errors.New("discovery.endpoint cannot be empty in http mode")
		}
		if strings.TrimSpace(c.Discovery.ServiceKey) == "" {
			return errors.New("discovery.serviceKey cannot be empty in http mode")
		}
	default:
		return fmt.Errorf("discovery.mode %q is not one of queue, http, disabled", c.Discovery.Mode)
	}
	if c.Discovery.BatchSize <= 0 {
		return errors.New("discovery.batchSize must be positive")
	}
	if c.Discovery.DispatchTimeout <= 0 {
		return errors.New("discovery.dispatchTimeout must be positive")
	}
	return nil
}
