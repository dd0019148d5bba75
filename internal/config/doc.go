// Package config loads runtime configuration for the userconsole CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (json, yaml or toml, read with viper) selected via
//     -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the upstream user API
//	-k string   upstream API key (sent as x-api-key)
//	-s string   session store backend: sqlite, redis or memory
//	-d string   sqlite database path
//	-r string   redis address host:port
//	-S string   session id to resume
//	-t int      request timeout (seconds, 0 disables)
//	-l string   log level
//
// # File schema
//
// Durations accept Go duration strings:
//
//	api_base_url: https://reqres.in/api
//	store_backend: redis
//	redis_addr: 127.0.0.1:6379
//	session_ttl: 12h
//	request_timeout: 10s
package config
