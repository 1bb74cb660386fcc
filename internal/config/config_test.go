package config

import (
	"testing"
	"time"
)

func TestParseMethods(t *testing.T) {
	m := parseMethods(" get, POST ,, head")
	for _, want := range []string{"GET", "POST", "HEAD"} {
		if !m[want] {
			t.Errorf("expected %s in method set %v", want, m)
		}
	}
	if len(m) != 3 {
		t.Errorf("method set = %v, want 3 entries", m)
	}
}

func TestParseDurFallsBack(t *testing.T) {
	if d := parseDur("nonsense"); d != time.Second {
		t.Errorf("parseDur(nonsense) = %v, want 1s", d)
	}
	if d := parseDur("45s"); d != 45*time.Second {
		t.Errorf("parseDur(45s) = %v", d)
	}
}

func TestLoadRateLimitConfigNormalizes(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("RefillTokens = %d, want 1", cfg.RefillTokens)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Errorf("TTL = %v, want at least %v", cfg.TTL, 5*cfg.RefillInterval)
	}
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Methods["GET"] {
		t.Error("GET should be cacheable by default")
	}
	if cfg.Prefix == "" {
		t.Error("prefix should have a default")
	}
	if cfg.TTL <= 0 {
		t.Error("TTL should have a positive default")
	}
}
