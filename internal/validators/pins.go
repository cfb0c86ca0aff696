// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Petrenko

package validators

import (
	"context"
	"fmt"

	"github.com/mpetrenko/shroud/models"
)

// PIN policy bounds. Enforced at provisioning time only; verification
// accepts whatever is submitted and simply fails to match.
const (
	MinPinLength = 4
	MaxPinLength = 6
)

// PinPairValidator enforces the PIN provisioning policy: both PINs present,
// 4–6 characters, digits only, and distinct from each other.
type PinPairValidator struct {
}

// NewPinPairValidator constructs a [Validator] for PIN pairs.
func NewPinPairValidator() Validator {
	return &PinPairValidator{}
}

// Validate accepts a [models.SavePinsRequest] (by value or pointer) and
// returns the first policy violation found.
func (v *PinPairValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SavePinsRequest:
		return v.validatePinPair(ctx, value)
	case *models.SavePinsRequest:
		return v.validatePinPair(ctx, *value)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, obj)
	}
}

func (v *PinPairValidator) validatePinPair(_ context.Context, req models.SavePinsRequest) error {
	if req.NormalPin == "" || req.SecurityPin == "" {
		return ErrBothPinsRequired
	}

	for _, pin := range []string{req.NormalPin, req.SecurityPin} {
		if len(pin) < MinPinLength || len(pin) > MaxPinLength {
			return ErrPinLength
		}
		for _, c := range pin {
			if c < '0' || c > '9' {
				return ErrPinNotDigits
			}
		}
	}

	if req.NormalPin == req.SecurityPin {
		return ErrPinsMustDiffer
	}

	return nil
}
