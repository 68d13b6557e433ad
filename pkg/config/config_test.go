package config

import (
	"strings"
	"testing"
	"time"

	"smartoffice/pkg/logger"
)

func validConfig() *Config {
	return &Config{
		StoreBackend:      StoreBackendMongo,
		MongoURI:          DefaultMongoURI,
		MongoDatabaseName: DefaultMongoDatabaseName,
		MongoConnTimeout:  DefaultMongoConnTimeout,
		Port:              DefaultPort,
		JWTSecret:         strings.Repeat("s", MinJWTSecretLength),
		RateLimitRequests: DefaultRateLimitRequests,
		RateLimitWindow:   DefaultRateLimitWindow,
		RequestTimeout:    DefaultRequestTimeout,
		IdempotencyTTL:    DefaultIdempotencyTTL,
		MaxRequestSize:    DefaultMaxRequestSize,
		ReadTimeout:       DefaultReadTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
		Log:               logger.Discard(),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "valid mongo config",
			mutate: func(cfg *Config) {},
		},
		{
			name: "memory backend ignores mongo settings",
			mutate: func(cfg *Config) {
				cfg.StoreBackend = StoreBackendMemory
				cfg.MongoURI = ""
				cfg.MongoDatabaseName = ""
			},
		},
		{
			name:    "unknown backend",
			mutate:  func(cfg *Config) { cfg.StoreBackend = "redis" },
			wantErr: "StoreBackend must be",
		},
		{
			name:    "bad port",
			mutate:  func(cfg *Config) { cfg.Port = "70000" },
			wantErr: "Port must be between 1 and 65535",
		},
		{
			name:    "bad mongo scheme",
			mutate:  func(cfg *Config) { cfg.MongoURI = "postgres://localhost" },
			wantErr: "MongoURI must start with",
		},
		{
			name:    "short jwt secret",
			mutate:  func(cfg *Config) { cfg.JWTSecret = "short" },
			wantErr: "JWTSecret must be at least",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(cfg *Config) { cfg.WriteTimeout = 0 },
			wantErr: "WriteTimeout must be positive",
		},
		{
			name:    "non-positive rate limit",
			mutate:  func(cfg *Config) { cfg.RateLimitRequests = 0 },
			wantErr: "RateLimitRequests must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.ReadTimeout = -time.Second

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "1. ") || !strings.Contains(err.Error(), "2. ") {
		t.Errorf("expected two numbered errors, got %q", err.Error())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvStoreBackend, "MEMORY")
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvReadTimeout, "3s")
	t.Setenv(EnvRateLimitRequests, "not-a-number")
	t.Setenv(EnvCORSAllowedOrigins, " http://a.test , ,http://b.test")
	t.Setenv(EnvSeedDemoAssets, "true")

	cfg := FromEnv("test")

	if cfg.StoreBackend != StoreBackendMemory {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, StoreBackendMemory)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.ReadTimeout != 3*time.Second {
		t.Errorf("ReadTimeout = %s, want 3s", cfg.ReadTimeout)
	}
	if cfg.RateLimitRequests != DefaultRateLimitRequests {
		t.Errorf("RateLimitRequests = %d, want fallback %d", cfg.RateLimitRequests, DefaultRateLimitRequests)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.SeedDemoAssets {
		t.Error("SeedDemoAssets = false, want true")
	}
}

func TestRedactMongoURI(t *testing.T) {
	got := redactMongoURI("mongodb://admin:hunter2@db:27017/smartoffice")
	if strings.Contains(got, "hunter2") {
		t.Errorf("credentials leaked: %s", got)
	}
	if got != "mongodb://***:***@db:27017/smartoffice" {
		t.Errorf("unexpected redaction: %s", got)
	}
}

func TestNormalizePagination(t *testing.T) {
	if got := NormalizePaginationLimit(0); got != FallbackPageLimit {
		t.Errorf("limit 0 -> %d, want %d", got, FallbackPageLimit)
	}
	if got := NormalizePaginationLimit(500); got != DefaultPaginationLimit {
		t.Errorf("limit 500 -> %d, want %d", got, DefaultPaginationLimit)
	}
	if got := NormalizePaginationLimit(25); got != 25 {
		t.Errorf("limit 25 -> %d", got)
	}
	if got := NormalizeOffset(-4); got != 0 {
		t.Errorf("offset -4 -> %d", got)
	}
}
