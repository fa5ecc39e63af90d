// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package random generates addresses and prefixes from a caller supplied
// PRNG, so that tests are reproducible.
package random

import (
	"math/rand/v2"
	"net/netip"
)

// Prefix returns a random masked IPv4 or IPv6 prefix.
func Prefix(prng *rand.Rand) netip.Prefix {
	if prng.IntN(2) == 1 {
		return Prefix4(prng)
	}
	return Prefix6(prng)
}

func Prefix4(prng *rand.Rand) netip.Prefix {
	bits := prng.IntN(33)
	pfx, err := IP4(prng).Prefix(bits)
	if err != nil {
		panic(err)
	}
	return pfx
}

func Prefix6(prng *rand.Rand) netip.Prefix {
	bits := prng.IntN(129)
	pfx, err := IP6(prng).Prefix(bits)
	if err != nil {
		panic(err)
	}
	return pfx
}

func IP4(prng *rand.Rand) netip.Addr {
	var b [4]byte
	for i := range b {
		b[i] = byte(prng.Uint32() & 0xff)
	}
	return netip.AddrFrom4(b)
}

func IP6(prng *rand.Rand) netip.Addr {
	var b [16]byte
	for i := range b {
		b[i] = byte(prng.Uint32() & 0xff)
	}
	return netip.AddrFrom16(b)
}

// IP returns a random IPv4 or IPv6 address.
func IP(prng *rand.Rand) netip.Addr {
	if prng.IntN(2) == 1 {
		return IP4(prng)
	}
	return IP6(prng)
}

// NestedPrefixes returns n distinct prefixes, many of them nested
// within each other like in real routing tables. Every prefix is
// derived by shortening or lengthening a few random seeds.
func NestedPrefixes(prng *rand.Rand, n int) []netip.Prefix {
	seen := make(map[netip.Prefix]bool, n)
	out := make([]netip.Prefix, 0, n)

	for len(out) < n {
		ip := IP(prng)
		maxBits := ip.BitLen()

		// a chain of prefixes along the same address
		for range 1 + prng.IntN(4) {
			pfx, err := ip.Prefix(prng.IntN(maxBits + 1))
			if err != nil {
				panic(err)
			}
			if seen[pfx] {
				continue
			}
			seen[pfx] = true
			out = append(out, pfx)
			if len(out) == n {
				break
			}
		}
	}

	return out
}
