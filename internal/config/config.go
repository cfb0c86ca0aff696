// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Petrenko

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the shroud
// backend. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters and
	// credential policy.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Push holds the push-notification gateway settings used to reach the
	// registered device.
	Push Push `envPrefix:"PUSH_"`

	// SMS holds the SMS gateway settings used to deliver verification codes.
	SMS SMS `envPrefix:"SMS_"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// populated via the CONFIG environment variable or the -c / -config flag.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// lifecycle and credential handling.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token,
	// validated on every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// BcryptCost is the bcrypt work factor applied when hashing account
	// passwords and PINs. Zero selects the library default.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DBConfig `envPrefix:"DB_"`
}

// DBConfig holds the relational database connection settings.
type DBConfig struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network settings for the HTTP server.
type Server struct {
	// HTTPAddress is the listen address in host:port form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the total handling time of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Push holds the push-notification gateway settings.
type Push struct {
	// GatewayURL is the base URL of the push delivery provider.
	// Env: PUSH_GATEWAY_URL
	GatewayURL string `env:"GATEWAY_URL"`

	// APIKey authenticates the backend against the push provider.
	// Env: PUSH_API_KEY
	APIKey string `env:"API_KEY"`
}

// SMS holds the SMS gateway settings for verification-code delivery.
type SMS struct {
	// GatewayURL is the base URL of the SMS provider.
	// Env: SMS_GATEWAY_URL
	GatewayURL string `env:"GATEWAY_URL"`

	// APIKey authenticates the backend against the SMS provider.
	// Env: SMS_API_KEY
	APIKey string `env:"API_KEY"`

	// Sender is the originating number or alphanumeric sender id.
	// Env: SMS_SENDER
	Sender string `env:"SENDER"`
}

// GetStructuredConfig builds the application configuration by merging, in
// priority order: environment variables, command-line flags, and the optional
// JSON file named by either of the first two sources. The merged result is
// validated before being returned.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
