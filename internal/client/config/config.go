package config

import "time"

// Config holds runtime settings for the blog CLI.
//
// Fields:
//   - ServerURL: base URL of the blog HTTP API.
//   - RequestTimeout: upper bound for a single API call.
//   - StateDir: directory holding the local session database. Relative
//     paths are resolved against the working directory.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	StateDir       string
}

// StateFile is the SQLite file created inside StateDir.
const StateFile = "session.db"

// LoadDefaults populates c with defaults matching a locally running server.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 10 * time.Second
	c.StateDir = ".gophblog"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
