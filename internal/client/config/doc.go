// Package config loads runtime configuration for the blog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config (or the CONFIG variable).
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the blog API
//	-t int      request timeout (seconds)
//	-s string   directory for the local session database
//
// # JSON schema
//
// Timeouts use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "request_timeout": "10s",
//	  "state_dir": ".gophblog"
//	}
package config
