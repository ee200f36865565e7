package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"supervault_dashboard/internal/domain/entity"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	devPricingBaseURL  = "https://pricing-dev.superform.xyz"
	prodPricingBaseURL = "https://pricing.superform.xyz"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                   string `yaml:"port"`
	ReadTimeoutSeconds     int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds    int    `yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds     int    `yaml:"idleTimeoutSeconds"`
	ShutdownTimeoutSeconds int    `yaml:"shutdownTimeoutSeconds"`
	EnablePprof            bool   `yaml:"enablePprof"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PricingAPIConfig holds SuperVault pricing API specific configurations.
type PricingAPIConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	MaxRetries           int     `yaml:"maxRetries"`
	RetryDelayMillis     int64   `yaml:"retryDelayMillis"`
	RateLimit            float64 `yaml:"rateLimit"`
	Burst                int     `yaml:"burst"`
}

// CacheConfig holds configuration for the response cache.
type CacheConfig struct {
	Backend                string `yaml:"backend"`
	TTLSeconds             int    `yaml:"ttlSeconds"`
	CleanupIntervalSeconds int    `yaml:"cleanupIntervalSeconds"`
	RedisURL               string `yaml:"redisURL"`
	KeyPrefix              string `yaml:"keyPrefix"`
}

// DashboardConfig holds UI behaviour settings.
type DashboardConfig struct {
	RefreshIntervalSeconds int    `yaml:"refreshIntervalSeconds"`
	AutoRefresh            bool   `yaml:"autoRefresh"`
	DefaultChainID         string `yaml:"defaultChainID"`
	WatchlistFile          string `yaml:"watchlistFile"`
	WarmupConcurrency      int    `yaml:"warmupConcurrency"`
	WarmupTimeoutSeconds   int    `yaml:"warmupTimeoutSeconds"`
	HeadCacheSeconds       int    `yaml:"headCacheSeconds"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecPath string `yaml:"specPath"`
}

// Config is the top-level configuration structure.
type Config struct {
	Env        string                   `yaml:"env"`
	Server     ServerConfig             `yaml:"server"`
	Logging    LoggingConfig            `yaml:"logging"`
	PricingAPI PricingAPIConfig         `yaml:"pricingApi"`
	Cache      CacheConfig              `yaml:"cache"`
	Dashboard  DashboardConfig          `yaml:"dashboard"`
	Chains     []entity.ChainDefinition `yaml:"chains"`
	Swagger    SwaggerConfig            `yaml:"swagger"`
}

// IsDevelopment reports whether the service runs against the dev pricing API.
func (c *Config) IsDevelopment() bool {
	return c.Env != EnvProduction
}

// Load reads the YAML configuration file from the given path, applies
// environment overrides and fills in defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.Infof("Config file %s not found, using defaults and environment", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("API_BASE_URL"); v != "" {
		cfg.PricingAPI.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
		if cfg.Cache.Backend == "" {
			cfg.Cache.Backend = CacheBackendRedis
		}
	}
	envInt("CACHE_TTL", &cfg.Cache.TTLSeconds)
	envInt("REFRESH_INTERVAL", &cfg.Dashboard.RefreshIntervalSeconds)

	rpcByChain := map[string]string{
		"1":    os.Getenv("ETHEREUM_RPC_URL"),
		"8453": os.Getenv("BASE_RPC_URL"),
	}
	for chainID, rpcURL := range rpcByChain {
		if rpcURL == "" {
			continue
		}
		found := false
		for i := range cfg.Chains {
			if cfg.Chains[i].ChainID == chainID {
				cfg.Chains[i].RPCURL = rpcURL
				found = true
			}
		}
		if !found && chainID == "1" {
			cfg.Chains = append(cfg.Chains, entity.ChainDefinition{ChainID: chainID, RPCURL: rpcURL})
		}
	}
}

func envInt(name string, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("Ignoring %s=%q: not an integer", name, v)
		return
	}
	*dst = n
}

func applyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = EnvDevelopment
	}
	// Anything other than development targets production.
	if cfg.Env = strings.ToLower(cfg.Env); cfg.Env != EnvDevelopment {
		cfg.Env = EnvProduction
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8050"
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		cfg.Server.WriteTimeoutSeconds = 60
	}
	if cfg.Server.IdleTimeoutSeconds <= 0 {
		cfg.Server.IdleTimeoutSeconds = 120
	}
	if cfg.Server.ShutdownTimeoutSeconds <= 0 {
		cfg.Server.ShutdownTimeoutSeconds = 5
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
		if cfg.IsDevelopment() {
			cfg.Logging.Level = "debug"
		}
	}

	if cfg.PricingAPI.BaseURL == "" {
		cfg.PricingAPI.BaseURL = devPricingBaseURL
		if !cfg.IsDevelopment() {
			cfg.PricingAPI.BaseURL = prodPricingBaseURL
		}
		logrus.Infof("PricingAPI.BaseURL not set, defaulting to %s for env %s", cfg.PricingAPI.BaseURL, cfg.Env)
	}
	cfg.PricingAPI.BaseURL = strings.TrimRight(cfg.PricingAPI.BaseURL, "/")
	if cfg.PricingAPI.RequestTimeoutMillis <= 0 {
		cfg.PricingAPI.RequestTimeoutMillis = 10000
	}
	if cfg.PricingAPI.MaxRetries <= 0 {
		cfg.PricingAPI.MaxRetries = 3
	}
	if cfg.PricingAPI.RetryDelayMillis <= 0 {
		cfg.PricingAPI.RetryDelayMillis = 500
	}
	if cfg.PricingAPI.RateLimit > 0 && cfg.PricingAPI.Burst <= 0 {
		cfg.PricingAPI.Burst = 1
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheBackendMemory
	}
	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 60
		logrus.Infof("Cache.TTLSeconds not set, defaulting to %d seconds", cfg.Cache.TTLSeconds)
	}
	if cfg.Cache.CleanupIntervalSeconds <= 0 {
		cfg.Cache.CleanupIntervalSeconds = 10 * cfg.Cache.TTLSeconds
	}
	if cfg.Cache.KeyPrefix == "" {
		cfg.Cache.KeyPrefix = "supervault:"
	}

	if cfg.Dashboard.RefreshIntervalSeconds <= 0 {
		cfg.Dashboard.RefreshIntervalSeconds = 60
	}
	if cfg.Dashboard.DefaultChainID == "" {
		cfg.Dashboard.DefaultChainID = "1"
	}
	if cfg.Dashboard.WarmupConcurrency <= 0 {
		cfg.Dashboard.WarmupConcurrency = 4
	}
	if cfg.Dashboard.WarmupTimeoutSeconds <= 0 {
		cfg.Dashboard.WarmupTimeoutSeconds = 60
	}
	if cfg.Dashboard.HeadCacheSeconds <= 0 {
		cfg.Dashboard.HeadCacheSeconds = 12
	}

	if cfg.Swagger.SpecPath == "" {
		cfg.Swagger.SpecPath = "docs/swagger.yaml"
	}
}

func validate(cfg *Config) error {
	if cfg.Cache.Backend != CacheBackendMemory && cfg.Cache.Backend != CacheBackendRedis {
		return fmt.Errorf("invalid cache backend %q", cfg.Cache.Backend)
	}
	if cfg.Cache.Backend == CacheBackendRedis && cfg.Cache.RedisURL == "" {
		return fmt.Errorf("cache backend %q requires redisURL", CacheBackendRedis)
	}
	for i, chain := range cfg.Chains {
		if chain.ChainID == "" {
			return fmt.Errorf("chains[%d]: chainId is required", i)
		}
	}
	return nil
}
