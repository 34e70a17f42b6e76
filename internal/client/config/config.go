package config

import "time"

// Config holds runtime settings for the CareerKey CLI.
//
// Fields:
//   - BaseURL: root URL of the backend REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - ScanFrameRate: frames per second sampled while scanning.
//   - DataFile: path to the local sqlite data file.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	ScanFrameRate  int
	DataFile       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.ScanFrameRate = 10
	c.DataFile = "careerkey.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from a .env file (if present), JSON (if present) and command-line flags
// (if present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
