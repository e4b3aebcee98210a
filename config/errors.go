package config

import "errors"

var (
	// ErrLoadEnvFile indicates a .env file exists but could not be read.
	ErrLoadEnvFile = errors.New("config: failed to load .env file")

	// ErrParse indicates an environment variable has an invalid value.
	ErrParse = errors.New("config: failed to parse environment")
)
