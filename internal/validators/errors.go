// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Petrenko

package validators

import "errors"

var (
	// ErrBothPinsRequired is returned when either of the two PINs is missing:
	// they are always provisioned as a pair.
	ErrBothPinsRequired = errors.New("both normal and security pins are required")

	// ErrPinLength is returned when a PIN is shorter than 4 or longer than
	// 6 characters.
	ErrPinLength = errors.New("pin must be 4 to 6 digits long")

	// ErrPinNotDigits is returned when a PIN contains non-digit characters.
	ErrPinNotDigits = errors.New("pin must contain digits only")

	// ErrPinsMustDiffer is returned when the two PINs are equal. The
	// verifier compares the normal hash first, so equal PINs would make the
	// security PIN unreachable.
	ErrPinsMustDiffer = errors.New("normal and security pins must differ")

	// ErrUnsupportedValue is returned when a validator receives a value type
	// it does not know how to validate.
	ErrUnsupportedValue = errors.New("unsupported value for validation")
)
