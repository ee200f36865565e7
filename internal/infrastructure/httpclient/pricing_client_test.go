package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"supervault_dashboard/internal/infrastructure/cache"
)

const testVault = "0x1111111111111111111111111111111111111111"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*PricingClient, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	c := NewPricingClient(PricingClientOptions{
		BaseURL:    server.URL + "/",
		Timeout:    2 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	}, cache.NewMemoryCache(time.Minute, time.Hour, nil), nil)
	return c, &hits
}

func TestGetAllVaultsCachesResponse(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/vaults" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("chain_id"); got != "1" {
			t.Errorf("chain_id = %q", got)
		}
		_, _ = w.Write([]byte(`{"vaults":["` + testVault + `"],"names":["Alpha"],"symbols":["svALPHA"]}`))
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		list, err := c.GetAllVaults(ctx, "1")
		if err != nil {
			t.Fatalf("GetAllVaults: %v", err)
		}
		if len(list.Vaults) != 1 || list.Names[0] != "Alpha" {
			t.Fatalf("list = %+v", list)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("upstream hits = %d, want 1", n)
	}
}

func TestGetPPSBlockQueryAndCacheKeys(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("vault") != testVault {
			t.Errorf("vault = %q", q.Get("vault"))
		}
		_, _ = w.Write([]byte(`{"chain_id":"1","current_pps":"1000000000000000000","block_number":` + orDefault(q.Get("block_number"), "0") + `}`))
	})

	ctx := context.Background()
	block := uint64(19000000)
	zero := uint64(0)

	pps, err := c.GetPPS(ctx, "1", testVault, &block)
	if err != nil {
		t.Fatalf("GetPPS at block: %v", err)
	}
	if pps.BlockNumber != block || pps.CurrentPPS != "1000000000000000000" {
		t.Errorf("pps = %+v", pps)
	}
	if _, err := c.GetPPS(ctx, "1", testVault, nil); err != nil {
		t.Fatalf("GetPPS latest: %v", err)
	}
	// Block 0 shares the latest entry.
	latest, err := c.GetPPS(ctx, "1", testVault, &zero)
	if err != nil {
		t.Fatalf("GetPPS block 0: %v", err)
	}
	if latest.BlockNumber != 0 {
		t.Errorf("block 0 served %d", latest.BlockNumber)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("upstream hits = %d, want 2", n)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func TestGetVaultRetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/vault/"+testVault {
			t.Errorf("path = %s", r.URL.Path)
		}
		switch calls.Add(1) {
		case 1:
			http.Error(w, "boom", http.StatusInternalServerError)
		case 2:
			_, _ = w.Write([]byte(`{not json`))
		default:
			_, _ = w.Write([]byte(`{"vault":{"name":"Alpha","total_assets":12345},"status":{"is_paused":true}}`))
		}
	})

	details, err := c.GetVault(context.Background(), "1", testVault, nil)
	if err != nil {
		t.Fatalf("GetVault: %v", err)
	}
	if details.Vault.Name != "Alpha" || details.Vault.TotalAssets != "12345" || !details.Status.IsPaused {
		t.Errorf("details = %+v", details)
	}
	if n := hits.Load(); n != 3 {
		t.Errorf("upstream hits = %d, want 3", n)
	}
}

func TestExhaustedRetriesReturnStatusError(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	_, err := c.GetAllVaults(context.Background(), "1")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusServiceUnavailable {
		t.Errorf("Code = %d", statusErr.Code)
	}
	if n := hits.Load(); n != 3 {
		t.Errorf("upstream hits = %d, want 3", n)
	}

	// Failures are not cached.
	_, _ = c.GetAllVaults(context.Background(), "1")
	if n := hits.Load(); n != 6 {
		t.Errorf("upstream hits after second call = %d, want 6", n)
	}
}

func TestClearVaultCacheForcesRefetch(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"vault":{"name":"Alpha"}}`))
	})
	ctx := context.Background()

	if _, err := c.GetVault(ctx, "1", testVault, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetVault(ctx, "1", testVault, nil); err != nil {
		t.Fatal(err)
	}
	c.ClearVaultCache(ctx, "1", testVault)
	if _, err := c.GetVault(ctx, "1", testVault, nil); err != nil {
		t.Fatal(err)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("upstream hits = %d, want 2", n)
	}

	c.ClearCache(ctx)
	if _, err := c.GetVault(ctx, "1", testVault, nil); err != nil {
		t.Fatal(err)
	}
	if n := hits.Load(); n != 3 {
		t.Errorf("upstream hits after ClearCache = %d, want 3", n)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{name: "ok", status: http.StatusOK, want: true},
		{name: "no content", status: http.StatusNoContent, want: true},
		{name: "server error", status: http.StatusInternalServerError, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("path = %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			})
			if got := c.HealthCheck(context.Background()); got != tt.want {
				t.Errorf("HealthCheck = %v, want %v", got, tt.want)
			}
			if n := hits.Load(); n != 1 {
				t.Errorf("upstream hits = %d, want 1", n)
			}
		})
	}
}

func TestHealthCheckUnreachable(t *testing.T) {
	c := NewPricingClient(PricingClientOptions{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond},
		cache.NewMemoryCache(time.Minute, time.Hour, nil), nil)
	if c.HealthCheck(context.Background()) {
		t.Error("HealthCheck against closed port should be false")
	}
}

func TestCacheKeys(t *testing.T) {
	block := uint64(42)
	zero := uint64(0)
	tests := []struct {
		got, want string
	}{
		{vaultsCacheKey("1"), "vaults_1"},
		{ppsCacheKey("1", "0xabc", nil), "pps_1_0xabc_latest"},
		{ppsCacheKey("1", "0xabc", &zero), "pps_1_0xabc_latest"},
		{ppsCacheKey("1", "0xabc", &block), "pps_1_0xabc_42"},
		{vaultCacheKey("8453", "0xabc", &block), "vault_8453_0xabc_42"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}
