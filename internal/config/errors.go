// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Petrenko

package config

import "errors"

var (
	// ErrNoDatabaseDSN is returned by validation when no PostgreSQL DSN was
	// provided via env, flags, or the JSON file.
	ErrNoDatabaseDSN = errors.New("database DSN is not specified")

	// ErrNoTokenSignKey is returned by validation when the JWT signing key
	// is missing. The server refuses to start with an empty key.
	ErrNoTokenSignKey = errors.New("token sign key is not specified")
)
