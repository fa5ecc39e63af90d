// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"fmt"
	"net/netip"
)

// Subnet is an address with an explicit prefix length. Unlike netip.Prefix
// it can carry an out of range length, which [KeyOf] rejects with
// ErrInvalidWidth.
type Subnet struct {
	Addr netip.Addr
	Len  int
}

// KeyOf classifies v and returns its key.
//
// Accepted are netip.Addr (a host route, /32 or /128), netip.Prefix,
// [Subnet] and [Key]. A []any with exactly one element is unwrapped first.
// Any other value results in a *KeyTypeError, KeyOf never panics.
func KeyOf(v any) (Key, error) {
	// [elem] -> elem
	if list, ok := v.([]any); ok && len(list) == 1 {
		v = list[0]
	}

	switch x := v.(type) {
	case netip.Addr:
		return MakeKey(x, familyOf(x).Bits())
	case netip.Prefix:
		return MakeKey(x.Addr(), x.Bits())
	case Subnet:
		return MakeKey(x.Addr, x.Len)
	case Key:
		if !x.IsValid() {
			return Key{}, ErrInvalidAddress
		}
		return x, nil
	default:
		return Key{}, &KeyTypeError{Type: fmt.Sprintf("%T", v)}
	}
}
