// Package config handles configuration management for tubesort.
// Values are layered: embedded defaults, then the user config file (TOML or
// YAML), then TUBESORT_ environment variables, then command-line overrides.
package config
