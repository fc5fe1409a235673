package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "CACHE_DRIVER", "CACHE_TTL", "JWT_EXPIRES_IN", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.DBDriver != "postgres" || cfg.CacheDriver != "memory" {
		t.Errorf("drivers = %q / %q", cfg.DBDriver, cfg.CacheDriver)
	}
	if cfg.CacheTTL != 5*time.Minute || cfg.JWTExpirationDur != 15*time.Minute {
		t.Errorf("durations = %v / %v", cfg.CacheTTL, cfg.JWTExpirationDur)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if Get() != cfg {
		t.Error("Get should return the loaded config")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, _ := Load()
	if cfg.DBDriver != "sqlite" {
		t.Errorf("driver = %q", cfg.DBDriver)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("ttl = %v", cfg.CacheTTL)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("redis db = %d", cfg.RedisDB)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("REDIS_DB", "x1")

	cfg, _ := Load()
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("ttl = %v", cfg.CacheTTL)
	}
	if cfg.RedisDB != 0 {
		t.Errorf("redis db = %d", cfg.RedisDB)
	}
}
