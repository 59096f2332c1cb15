package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hubview.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `{
		"listen_addr": ":8080",
		"health_addr": ":50052",
		"db_path": "/tmp/hubview.db",
		"api_token": "secret",
		"collect_interval": "1m",
		"status_interval": "30s",
		"event_backlog": 128
	}`)

	var cfg ServerConfig
	require.NoError(t, LoadAndValidate(path, &cfg))

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, ":50052", cfg.HealthAddr)
	assert.Equal(t, "/tmp/hubview.db", cfg.DBPath)
	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, time.Minute, time.Duration(cfg.CollectInterval))
	assert.Equal(t, 30*time.Second, time.Duration(cfg.StatusInterval))
	assert.Equal(t, 128, cfg.EventBacklog)
}

func TestLoadAndValidateDefaults(t *testing.T) {
	path := writeConfig(t, `{"listen_addr": ":8080", "db_path": "/tmp/hubview.db"}`)

	var cfg ServerConfig
	require.NoError(t, LoadAndValidate(path, &cfg))

	assert.Equal(t, 30*time.Second, time.Duration(cfg.CollectInterval))
	assert.Equal(t, 15*time.Second, time.Duration(cfg.StatusInterval))
	assert.Equal(t, 64, cfg.EventBacklog)
}

func TestLoadAndValidateMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing listen addr", content: `{"db_path": "/tmp/hubview.db"}`},
		{name: "missing db path", content: `{"listen_addr": ":8080"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg ServerConfig
			assert.Error(t, LoadAndValidate(writeConfig(t, tt.content), &cfg))
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	var cfg ServerConfig

	assert.Error(t, LoadFile("/nonexistent/hubview.json", &cfg))
	assert.Error(t, LoadFile(writeConfig(t, `{not json`), &cfg))
}

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"45s"`, want: 45 * time.Second},
		{name: "numeric nanoseconds", input: `1000000000`, want: time.Second},
		{name: "bad string", input: `"forever"`, wantErr: true},
		{name: "wrong type", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}
