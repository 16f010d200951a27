// Package config loads runtime configuration for the midpoint client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config or MIDPOINT_CONFIG.
//  3. Environment variables with the MIDPOINT_ prefix.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the midpoint API
//	-t int      request timeout (seconds)
//	-s string   storage backend: sqlite or redis
//	-d string   path of the local SQLite database
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://api.midpoint.place/v1",
//	  "request_timeout": "15s",
//	  "storage_backend": "sqlite",
//	  "database_path": ".midpoint/midpoint.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "analytics_host": "https://us.i.posthog.com",
//	  "analytics_key": "",
//	  "log_format": "text",
//	  "log_level": "info",
//	  "metrics_addr": ""
//	}
//
// Keys missing from the file keep their previous value.
package config
