// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidWidth is returned for a prefix length outside [0, family bits].
	ErrInvalidWidth = errors.New("invalid prefix width")

	// ErrInvalidAddress is returned for an address without a family,
	// e.g. the zero netip.Addr.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrUnsupportedKeyType is matched by every *KeyTypeError.
	ErrUnsupportedKeyType = errors.New("unsupported key type")
)

// KeyTypeError is returned by [KeyOf] for values that are neither an
// address nor a subnet.
type KeyTypeError struct {
	Type string
}

func (e *KeyTypeError) Error() string {
	return "unsupported key type " + e.Type
}

// Is reports whether target is ErrUnsupportedKeyType.
func (e *KeyTypeError) Is(target error) bool {
	return target == ErrUnsupportedKeyType
}

// errReason maps a key error to a short label for metrics.
func errReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidWidth):
		return "invalid_width"
	case errors.Is(err, ErrInvalidAddress):
		return "invalid_address"
	case errors.Is(err, ErrUnsupportedKeyType):
		return "unsupported_type"
	default:
		return "unknown"
	}
}
