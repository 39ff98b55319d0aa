package config

import (
	"testing"
	"time"
)

func TestLoadStoreConfig(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     bool
		wantBase    string
		wantHead    bool
		wantTimeout time.Duration
	}{
		{
			name:        "minimal config",
			env:         map[string]string{"STORE_BASE_URL": "https://shop.example.com"},
			wantBase:    "https://shop.example.com",
			wantHead:    true,
			wantTimeout: 10 * time.Second,
		},
		{
			name: "headed browser and custom timeout",
			env: map[string]string{
				"STORE_BASE_URL": "https://shop.example.com",
				"HEADLESS":       "false",
				"POLL_TIMEOUT":   "30s",
			},
			wantBase:    "https://shop.example.com",
			wantHead:    false,
			wantTimeout: 30 * time.Second,
		},
		{
			name:    "missing base URL",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "malformed timeout",
			env: map[string]string{
				"STORE_BASE_URL": "https://shop.example.com",
				"POLL_TIMEOUT":   "soon",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(key string) string { return tt.env[key] }

			got, err := LoadStoreConfig(getenv)
			if tt.wantErr {
				if err == nil {
					t.Fatal("LoadStoreConfig succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStoreConfig: %v", err)
			}
			if got.BaseURL != tt.wantBase {
				t.Errorf("BaseURL = %q, want %q", got.BaseURL, tt.wantBase)
			}
			if got.Headless != tt.wantHead {
				t.Errorf("Headless = %v, want %v", got.Headless, tt.wantHead)
			}
			if got.PollTimeout != tt.wantTimeout {
				t.Errorf("PollTimeout = %v, want %v", got.PollTimeout, tt.wantTimeout)
			}
		})
	}
}
