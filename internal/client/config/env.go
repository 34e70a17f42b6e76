package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by parseEnv.
const (
	EnvBaseURL        = "CAREERKEY_BASE_URL"
	EnvRequestTimeout = "CAREERKEY_REQUEST_TIMEOUT"
	EnvScanFrameRate  = "CAREERKEY_SCAN_FRAME_RATE"
	EnvDataFile       = "CAREERKEY_DATA_FILE"
)

// parseEnv overlays Config with values from the environment, after loading
// a .env file from the working directory when one exists. Variables already
// set in the process environment win over the .env file.
//
// CAREERKEY_REQUEST_TIMEOUT accepts time.ParseDuration syntax ("10s").
// Malformed values are ignored, keeping the earlier stage's value.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv(EnvScanFrameRate); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ScanFrameRate = n
		}
	}
	if v := os.Getenv(EnvDataFile); v != "" {
		cfg.DataFile = v
	}
}
