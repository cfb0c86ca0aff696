// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Petrenko

// Package sms talks to the SMS gateway that delivers phone-verification
// codes. Delivery is best-effort from the caller's point of view: the OTP
// service logs a failed send but still stores the challenge.
package sms

import "context"

// Sender delivers one text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phoneNumber, text string) error
}
