// Package config loads runtime configuration for the QR Studio CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), QRSTUDIO_* prefixed.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-t int      request timeout (seconds)
//	-s string   state directory for the session token and theme
//	-d string   downloads directory for saved QR images
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:8080",
//	  "request_timeout": "30s",
//	  "state_dir": "/var/lib/qrstudio",
//	  "downloads_dir": "/tmp/qr"
//	}
package config
