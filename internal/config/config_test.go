package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AMBIENT_STORE_DIR", "/tmp/ambient-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("http.addr = %q, want %q", cfg.HTTP.Addr, ":8080")
	}
	if cfg.Client.Timeout != 10*time.Second {
		t.Errorf("client.timeout = %v, want 10s", cfg.Client.Timeout)
	}
	if cfg.Store.Driver != "file" {
		t.Errorf("store.driver = %q, want file", cfg.Store.Driver)
	}
	if cfg.Generator.Provider != "template" {
		t.Errorf("generator.provider = %q, want template", cfg.Generator.Provider)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	t.Setenv("AMBIENT_STORE_DIR", dir)
	t.Setenv("AMBIENT_STORE_DRIVER", "sqlite3")
	t.Setenv("AMBIENT_CLIENT_TIMEOUT", "250ms")
	t.Setenv("AMBIENT_CLIENT_BASE_URL", "http://prompts.local:9000/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Client.Timeout != 250*time.Millisecond {
		t.Errorf("client.timeout = %v, want 250ms", cfg.Client.Timeout)
	}
	if cfg.Client.BaseURL != "http://prompts.local:9000" {
		t.Errorf("client.base_url = %q, want trailing slash trimmed", cfg.Client.BaseURL)
	}
	if want := filepath.Join(dir, "state.db"); cfg.Store.DSN != want {
		t.Errorf("store.dsn = %q, want %q", cfg.Store.DSN, want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "bad timeout",
			env:     map[string]string{"AMBIENT_CLIENT_TIMEOUT": "soon"},
			wantErr: "AMBIENT_CLIENT_TIMEOUT",
		},
		{
			name:    "zero timeout",
			env:     map[string]string{"AMBIENT_CLIENT_TIMEOUT": "0s"},
			wantErr: "must be positive",
		},
		{
			name:    "unknown store driver",
			env:     map[string]string{"AMBIENT_STORE_DRIVER": "redis"},
			wantErr: "AMBIENT_STORE_DRIVER",
		},
		{
			name:    "postgres without dsn",
			env:     map[string]string{"AMBIENT_STORE_DRIVER": "postgres"},
			wantErr: "AMBIENT_STORE_DSN",
		},
		{
			name:    "llm provider without key",
			env:     map[string]string{"AMBIENT_GENERATOR_PROVIDER": "anthropic"},
			wantErr: "AMBIENT_GENERATOR_API_KEY",
		},
		{
			name:    "unknown provider",
			env:     map[string]string{"AMBIENT_GENERATOR_PROVIDER": "markov"},
			wantErr: "AMBIENT_GENERATOR_PROVIDER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("AMBIENT_STORE_DIR", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatalf("Load() = nil error, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
