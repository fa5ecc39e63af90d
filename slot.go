// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

// State tells whether a prefix is present and whether it holds a payload.
type State uint8

const (
	// Absent means there is no such prefix.
	Absent State = iota

	// Marked means the prefix is present but was inserted without payload.
	Marked

	// Valued means the prefix is present with a payload.
	Valued
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Marked:
		return "marked"
	case Valued:
		return "valued"
	default:
		return "unknown"
	}
}

// Slot is the payload cell of a prefix.
// Val is only meaningful if State is Valued.
type Slot[V any] struct {
	Val   V
	State State
}

// Ok reports whether the prefix is present, with or without payload.
func (s Slot[V]) Ok() bool {
	return s.State != Absent
}

// Value returns the payload and whether there is one.
func (s Slot[V]) Value() (V, bool) {
	return s.Val, s.State == Valued
}

func valued[V any](val V) Slot[V] {
	return Slot[V]{Val: val, State: Valued}
}

func marked[V any]() Slot[V] {
	return Slot[V]{State: Marked}
}

// Entry is a prefix with its payload slot, as returned by [Trie.FindAll].
type Entry[V any] struct {
	Key  Key
	Slot Slot[V]
}
