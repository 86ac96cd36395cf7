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
	path := filepath.Join(t.TempDir(), "comobject-mcp-server.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, 30*time.Second, c.CallTimeout)
	assert.True(t, c.AttachRunning)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
call_timeout = "2m"
allowed_prog_ids = []
attach_running = false
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		LogLevel:       "debug",
		CallTimeout:    2 * time.Minute,
		AllowedProgIDs: []string{},
		AttachRunning:  false,
	}, c)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `log_level = "warn"`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, Default().AllowedProgIDs, c.AllowedProgIDs)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "syntax", content: `log_level = `, want: "parse error"},
		{name: "unknown key", content: `log_levle = "info"`, want: "unknown key"},
		{name: "log level", content: `log_level = "loud"`, want: "unknown log_level"},
		{name: "timeout", content: `call_timeout = "-1s"`, want: "call_timeout must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "cannot read")
}
