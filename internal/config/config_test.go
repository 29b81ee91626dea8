package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.HeartbeatInterval != 30*time.Second {
		t.Errorf("expected 30s sweep interval, got %s", cfg.HeartbeatInterval)
	}
	if cfg.HeartbeatTimeout != 60*time.Second {
		t.Errorf("expected 60s heartbeat timeout, got %s", cfg.HeartbeatTimeout)
	}
	if cfg.HistoryCapacity != 100 {
		t.Errorf("expected history capacity 100, got %d", cfg.HistoryCapacity)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected addr :8080, got %s", cfg.Addr())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("HEARTBEAT_INTERVAL", "5s")
	t.Setenv("HEARTBEAT_TIMEOUT", "12s")
	t.Setenv("HISTORY_CAPACITY", "25")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000,https://dash.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.Port)
	}
	if cfg.HeartbeatInterval != 5*time.Second {
		t.Errorf("expected 5s interval, got %s", cfg.HeartbeatInterval)
	}
	if cfg.HeartbeatTimeout != 12*time.Second {
		t.Errorf("expected 12s timeout, got %s", cfg.HeartbeatTimeout)
	}
	if cfg.HistoryCapacity != 25 {
		t.Errorf("expected capacity 25, got %d", cfg.HistoryCapacity)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("expected 2 allowed origins, got %v", cfg.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero interval", func(c *Config) { c.HeartbeatInterval = 0 }, true},
		{"zero timeout", func(c *Config) { c.HeartbeatTimeout = 0 }, true},
		{"timeout shorter than interval", func(c *Config) {
			c.HeartbeatInterval = time.Minute
			c.HeartbeatTimeout = time.Second
		}, true},
		{"zero history capacity", func(c *Config) { c.HistoryCapacity = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Port:              "8080",
				HeartbeatInterval: 30 * time.Second,
				HeartbeatTimeout:  60 * time.Second,
				HistoryCapacity:   100,
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
