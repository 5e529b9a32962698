// Package config loads runtime settings for the Presence CLI. Values are
// layered: defaults, then the JSON config file (if any), then command-line
// flags; later sources take precedence.
package config

import "time"

// Config holds runtime settings for the Presence CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend REST API.
//   - RequestTimeout: client-side bound on every request.
//   - DatabasePath: sqlite file holding the persisted session.
//   - CaptureCommand: argv of the external command producing an MJPEG stream.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	DatabasePath       string
	CaptureCommand     []string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8000/api/v1"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "presence.db"
	c.CaptureCommand = nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
