package config

import "errors"

var (
	// ErrConfigNotFound is returned when an explicitly named file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrUnsupportedFormat is returned for config files that are not YAML,
	// TOML or JSON.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")

	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")
)
