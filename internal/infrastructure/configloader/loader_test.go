package configloader

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ENV", "API_BASE_URL", "CACHE_TTL", "REFRESH_INTERVAL", "PORT",
		"ETHEREUM_RPC_URL", "BASE_RPC_URL", "REDIS_URL", "LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.PricingAPI.BaseURL != devPricingBaseURL {
		t.Errorf("BaseURL = %q", cfg.PricingAPI.BaseURL)
	}
	if cfg.Server.Port != "8050" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if cfg.Cache.TTLSeconds != 60 || cfg.Dashboard.RefreshIntervalSeconds != 60 {
		t.Errorf("ttl/refresh = %d/%d", cfg.Cache.TTLSeconds, cfg.Dashboard.RefreshIntervalSeconds)
	}
	if cfg.PricingAPI.MaxRetries != 3 || cfg.PricingAPI.RetryDelayMillis != 500 || cfg.PricingAPI.RequestTimeoutMillis != 10000 {
		t.Errorf("pricing defaults = %+v", cfg.PricingAPI)
	}
	if cfg.Cache.Backend != CacheBackendMemory {
		t.Errorf("Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Dashboard.AutoRefresh {
		t.Error("AutoRefresh should be off by default")
	}
}

func TestLoadProductionSelectsProdURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "Production")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production")
	}
	if cfg.PricingAPI.BaseURL != prodPricingBaseURL {
		t.Errorf("BaseURL = %q", cfg.PricingAPI.BaseURL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
}

func TestLoadUnknownEnvMapsToProduction(t *testing.T) {
	for _, env := range []string{"staging", "prod", "PRODUCTION"} {
		t.Run(env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("ENV", env)

			cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Env != EnvProduction {
				t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
			}
			if cfg.PricingAPI.BaseURL != prodPricingBaseURL {
				t.Errorf("BaseURL = %q", cfg.PricingAPI.BaseURL)
			}
		})
	}
}

func TestLoadFileWithEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
env: development
server:
  port: "9000"
pricingApi:
  baseURL: https://pricing.example.org/
  maxRetries: 5
cache:
  ttlSeconds: 30
chains:
  - chainId: "8453"
    name: Base
    shortName: BASE
    blockExplorerUrl: https://basescan.org
`)
	t.Setenv("CACHE_TTL", "15")
	t.Setenv("PORT", "7000")
	t.Setenv("BASE_RPC_URL", "https://base.rpc")
	t.Setenv("ETHEREUM_RPC_URL", "https://eth.rpc")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PricingAPI.BaseURL != "https://pricing.example.org" {
		t.Errorf("BaseURL = %q", cfg.PricingAPI.BaseURL)
	}
	if cfg.PricingAPI.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d", cfg.PricingAPI.MaxRetries)
	}
	if cfg.Cache.TTLSeconds != 15 {
		t.Errorf("TTLSeconds = %d", cfg.Cache.TTLSeconds)
	}
	if cfg.Server.Port != "7000" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if len(cfg.Chains) != 2 {
		t.Fatalf("Chains = %+v", cfg.Chains)
	}
	if cfg.Chains[0].RPCURL != "https://base.rpc" {
		t.Errorf("base rpc = %q", cfg.Chains[0].RPCURL)
	}
	if cfg.Chains[1].ChainID != "1" || cfg.Chains[1].RPCURL != "https://eth.rpc" {
		t.Errorf("ethereum chain = %+v", cfg.Chains[1])
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "unknown backend", body: "cache:\n  backend: memcached\n"},
		{name: "redis without url", body: "cache:\n  backend: redis\n"},
		{name: "chain without id", body: "chains:\n  - name: Nowhere\n"},
		{name: "malformed yaml", body: "server: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRedisURLEnablesRedisBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("Backend = %q", cfg.Cache.Backend)
	}
}
