// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Petrenko

// Package push talks to the push-notification provider that reaches the
// user's registered device. It distinguishes silent data messages (remote
// commands the device executes in the background) from visible notifications
// (alerts shown to the owner).
//
// The dispatcher's only guarantee is acceptance by the provider; whether the
// device received or executed anything is unknowable at this layer.
package push

import (
	"context"
	"errors"
)

// ErrTokenUnregistered is returned when the provider reports the target
// token invalid or no longer registered. Callers react by clearing the
// stored token (self-healing).
var ErrTokenUnregistered = errors.New("push token is not registered with the provider")

// Message is one push delivery request.
type Message struct {
	// Token targets the device's delivery channel.
	Token string

	// Title and Body are shown to the user for visible notifications.
	// Both are empty for silent data messages.
	Title string
	Body  string

	// Data is the opaque payload handed to the device application.
	Data map[string]any

	// Silent requests a data-only message with no user-visible surface.
	Silent bool
}

// Sender delivers push messages. Implementations must return
// [ErrTokenUnregistered] (possibly wrapped) when the provider rejects the
// token as unknown, and any other error for transport or provider failures.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
