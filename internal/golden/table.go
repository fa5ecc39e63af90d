// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package golden provides a simple and slow prefix table as reference
// for the trie based implementation.
package golden

import (
	"cmp"
	"fmt"
	"net/netip"
	"slices"
)

// Table is a slice of prefixes and values, every operation is a
// linear scan.
type Table[V any] []Item[V]

type Item[V any] struct {
	Pfx netip.Prefix
	Val V
}

func (g Item[V]) String() string {
	return fmt.Sprintf("(%s, %v)", g.Pfx, g.Val)
}

// Insert adds or replaces pfx, it returns the previous value.
func (t *Table[V]) Insert(pfx netip.Prefix, val V) (prev V, exists bool) {
	pfx = pfx.Masked()
	for i, item := range *t {
		if item.Pfx == pfx {
			prev = item.Val
			(*t)[i].Val = val // de-dupe
			return prev, true
		}
	}
	*t = append(*t, Item[V]{pfx, val})
	return prev, false
}

// Delete removes pfx, it returns the previous value.
func (t *Table[V]) Delete(pfx netip.Prefix) (prev V, exists bool) {
	pfx = pfx.Masked()
	for i, item := range *t {
		if item.Pfx == pfx {
			*t = slices.Delete(*t, i, i+1)
			return item.Val, true
		}
	}
	return prev, false
}

func (t Table[V]) Get(pfx netip.Prefix) (val V, ok bool) {
	pfx = pfx.Masked()
	for _, item := range t {
		if item.Pfx == pfx {
			return item.Val, true
		}
	}
	return val, false
}

// LookupPrefixLPM returns the longest prefix covering pfx.
func (t Table[V]) LookupPrefixLPM(pfx netip.Prefix) (lpm netip.Prefix, val V, ok bool) {
	pfx = pfx.Masked()
	bestLen := -1

	for _, item := range t {
		if item.Pfx.Overlaps(pfx) && item.Pfx.Bits() <= pfx.Bits() && item.Pfx.Bits() > bestLen {
			val = item.Val
			lpm = item.Pfx
			ok = true
			bestLen = item.Pfx.Bits()
		}
	}
	return lpm, val, ok
}

// Subnets returns all prefixes covered by pfx, sorted.
func (t Table[V]) Subnets(pfx netip.Prefix) []netip.Prefix {
	pfx = pfx.Masked()
	var result []netip.Prefix

	for _, item := range t {
		if pfx.Overlaps(item.Pfx) && pfx.Bits() <= item.Pfx.Bits() {
			result = append(result, item.Pfx)
		}
	}
	slices.SortFunc(result, CmpPrefix)
	return result
}

// Supernets returns all prefixes covering pfx, shortest first.
func (t Table[V]) Supernets(pfx netip.Prefix) []netip.Prefix {
	pfx = pfx.Masked()
	var result []netip.Prefix

	for _, item := range t {
		if item.Pfx.Overlaps(pfx) && item.Pfx.Bits() <= pfx.Bits() {
			result = append(result, item.Pfx)
		}
	}
	slices.SortFunc(result, CmpPrefix)
	return result
}

// Overlapping returns all prefixes overlapping pfx, sorted.
func (t Table[V]) Overlapping(pfx netip.Prefix) []netip.Prefix {
	pfx = pfx.Masked()
	var result []netip.Prefix

	for _, item := range t {
		if item.Pfx.Overlaps(pfx) {
			result = append(result, item.Pfx)
		}
	}
	slices.SortFunc(result, CmpPrefix)
	return result
}

func (t Table[V]) AllSorted() []netip.Prefix {
	var result []netip.Prefix

	for _, item := range t {
		result = append(result, item.Pfx)
	}
	slices.SortFunc(result, CmpPrefix)
	return result
}

// CmpPrefix, helper function, compare func for prefix sort,
// all cidrs are already normalized
func CmpPrefix(a, b netip.Prefix) int {
	if cmpAddr := a.Addr().Compare(b.Addr()); cmpAddr != 0 {
		return cmpAddr
	}

	return cmp.Compare(a.Bits(), b.Bits())
}
