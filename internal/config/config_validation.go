// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Petrenko

package config

import (
	"errors"
	"time"
)

// Defaults applied by validate when the merged configuration leaves a field
// unset.
const (
	defaultHTTPAddress    = "localhost:8080"
	defaultTokenIssuer    = "shroud"
	defaultTokenDuration  = 24 * time.Hour
	defaultRequestTimeout = 30 * time.Second
)

// validate fills in defaults and rejects configurations the server cannot
// run with. The database DSN and the token signing key have no safe
// defaults and must be provided explicitly.
func (c *StructuredConfig) validate() error {
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = defaultHTTPAddress
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	if c.App.TokenIssuer == "" {
		c.App.TokenIssuer = defaultTokenIssuer
	}
	if c.App.TokenDuration == 0 {
		c.App.TokenDuration = defaultTokenDuration
	}

	var err error
	if c.Storage.DB.DSN == "" {
		err = errors.Join(err, ErrNoDatabaseDSN)
	}
	if c.App.TokenSignKey == "" {
		err = errors.Join(err, ErrNoTokenSignKey)
	}

	return err
}
