// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"math/bits"
	"net/netip"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Family is the address family of a [Key].
type Family uint8

const (
	invalidFamily Family = iota
	IPv4
	IPv6
)

// Bits returns the address width of the family, 32 or 128.
// The width of an invalid family is 0.
func (f Family) Bits() int {
	switch f {
	case IPv4:
		return 32
	case IPv6:
		return 128
	default:
		return 0
	}
}

func (f Family) String() string {
	switch f {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	default:
		return "invalid"
	}
}

// rootIdx, index of the family root in the trie.
func (f Family) rootIdx() int {
	return int(f) - 1
}

func familyOf(ip netip.Addr) Family {
	switch {
	case ip.Is4():
		return IPv4
	case ip.Is6():
		return IPv6
	default:
		return invalidFamily
	}
}

// Key is a CIDR prefix: address family, address bits in network byte order
// and prefix length. The address is always masked to the prefix length,
// so two keys designate the same prefix iff they are ==.
//
// The zero Key is invalid.
type Key struct {
	addr   [16]byte // IPv4 uses addr[:4]
	bits   uint8
	family Family
}

// MakeKey returns the key for ip/width. Host bits of ip are cleared and
// a zone is ignored.
//
// It returns ErrInvalidAddress for the zero netip.Addr and ErrInvalidWidth
// if width is negative or exceeds the bit size of the address family.
func MakeKey(ip netip.Addr, width int) (Key, error) {
	fam := familyOf(ip)
	if fam == invalidFamily {
		return Key{}, errors.Wrapf(ErrInvalidAddress, "%v", ip)
	}

	if width < 0 || width > fam.Bits() {
		return Key{}, errors.Wrapf(ErrInvalidWidth, "/%d for %s address %v", width, fam, ip)
	}

	k := Key{family: fam, bits: uint8(width)}
	if fam == IPv4 {
		a4 := ip.As4()
		copy(k.addr[:], a4[:])
	} else {
		k.addr = ip.As16()
	}
	k.mask()

	return k, nil
}

// KeyFromPrefix returns the key for pfx, see [MakeKey].
func KeyFromPrefix(pfx netip.Prefix) (Key, error) {
	return MakeKey(pfx.Addr(), pfx.Bits())
}

// mask clears all bits behind the prefix length.
func (k *Key) mask() {
	i := int(k.bits) / 8
	if i >= len(k.addr) {
		return
	}
	if r := k.bits % 8; r != 0 {
		k.addr[i] &^= 0xff >> r
		i++
	}
	clear(k.addr[i:])
}

// truncate returns k shortened to n bits, n <= k.bits.
func (k Key) truncate(n int) Key {
	k.bits = uint8(n)
	k.mask()
	return k
}

// bit returns the address bit at position i, counted from the MSB.
func (k *Key) bit(i int) byte {
	return (k.addr[i>>3] >> (7 - (i & 7))) & 1
}

// commonBits returns the number of equal leading bits of a and b,
// at most limit.
func commonBits(a, b *[16]byte, limit int) int {
	for i := 0; i*8 < limit; i++ {
		if x := a[i] ^ b[i]; x != 0 {
			return min(i*8+bits.LeadingZeros8(x), limit)
		}
	}
	return limit
}

// IsValid reports whether k was built by MakeKey or KeyFromPrefix.
func (k Key) IsValid() bool {
	return k.family != invalidFamily
}

// Family returns the address family of k.
func (k Key) Family() Family {
	return k.family
}

// Bits returns the prefix length.
func (k Key) Bits() int {
	return int(k.bits)
}

// Addr returns the masked prefix address.
func (k Key) Addr() netip.Addr {
	switch k.family {
	case IPv4:
		return netip.AddrFrom4([4]byte(k.addr[:4]))
	case IPv6:
		return netip.AddrFrom16(k.addr)
	default:
		return netip.Addr{}
	}
}

// Prefix returns k as netip.Prefix, the zero value for an invalid key.
func (k Key) Prefix() netip.Prefix {
	if !k.IsValid() {
		return netip.Prefix{}
	}
	return netip.PrefixFrom(k.Addr(), k.Bits())
}

func (k Key) String() string {
	if !k.IsValid() {
		return "invalid Key"
	}
	return k.Prefix().String()
}

// Contains reports whether o is equal to or more specific than k,
// within the same address family.
func (k Key) Contains(o Key) bool {
	if !k.IsValid() || k.family != o.family || k.bits > o.bits {
		return false
	}
	n := k.Bits()
	return commonBits(&k.addr, &o.addr, n) == n
}

// Overlaps reports whether k and o share any address.
func (k Key) Overlaps(o Key) bool {
	return k.Contains(o) || o.Contains(k)
}

// ParseKey parses "addr" or "addr/len". A bare address is a host route.
// Unlike netip.ParsePrefix, host bits may be set, they are cleared.
func ParseKey(s string) (Key, error) {
	addr, length, hasLen := strings.Cut(s, "/")

	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return Key{}, errors.Wrap(ErrInvalidAddress, err.Error())
	}

	width := familyOf(ip).Bits()
	if hasLen {
		if width, err = strconv.Atoi(length); err != nil {
			return Key{}, errors.Wrapf(ErrInvalidWidth, "%q", length)
		}
	}

	return MakeKey(ip, width)
}

// MustParseKey calls [ParseKey] and panics on error.
// It is intended for use in tests with hard-coded strings.
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}
