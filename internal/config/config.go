// Package config handles comobject-mcp-server.toml settings.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"
)

// Config is the server configuration.
type Config struct {
	LogLevel string `toml:"log_level"`
	// CallTimeout bounds each tool call; zero disables the limit.
	CallTimeout    time.Duration `toml:"call_timeout"`
	AllowedProgIDs []string      `toml:"allowed_prog_ids"`
	AttachRunning  bool          `toml:"attach_running"`
}

func Default() *Config {
	return &Config{
		LogLevel:    "info",
		CallTimeout: 30 * time.Second,
		AllowedProgIDs: []string{
			"Word.Application",
			"Excel.Application",
			"com.sun.star.ServiceManager",
		},
		AttachRunning: true,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key in %s: %s", path, undecoded[0])
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("unknown log_level: %q", c.LogLevel)
	}
	if c.CallTimeout < 0 {
		return fmt.Errorf("call_timeout must not be negative: %s", c.CallTimeout)
	}
	return nil
}
