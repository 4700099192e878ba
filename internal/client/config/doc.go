// Package config loads runtime configuration for the contacts CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: CONTACTS_API_URL and CONTACTS_SESSION_DB.
//  3. Optional JSON file selected with -c or --config.
//  4. Command-line flags the user set explicitly.
//
// Supported flags
//
//	-a, --api-url string      base URL of the contacts API
//	    --timeout duration    timeout for a single API request
//	    --session-db string   path to the local session database
//	    --ephemeral           keep the session in memory only
//	    --log-level string    debug, info, warn, error
//	    --log-format string   text or json
//
// # JSON schema
//
// request_timeout can be either a string like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:5000/api",
//	  "request_timeout": "10s",
//	  "session_db": "/home/me/.config/contacts/session.db",
//	  "log_level": "info",
//	  "log_format": "json"
//	}
//
// Unreadable files, malformed JSON and invalid values are returned as
// errors from LoadConfig.
package config
