// Package config loads runtime configuration for the CareerKey CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional .env file in the working directory (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the CareerKey backend API
//	-t int      request timeout (seconds)
//	-f int      scan frame sampling rate (frames per second)
//	-d string   path to the local data file (sqlite)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so the value can be
// either a string like "10s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://api.careerkey.example",
//	  "request_timeout": "10s",
//	  "scan_frame_rate": 10,
//	  "data_file": "careerkey.db"
//	}
package config
