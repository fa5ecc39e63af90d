// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"iter"
)

// Table is a [Trie] with loosely typed keys, see [KeyOf] for the accepted
// key types. A key that cannot be classified is reported through the
// Reporter and the operation returns no result.
//
// The zero value is ready to use and reports to the logrus standard logger.
// A Table is not safe for concurrent use.
type Table[V any] struct {
	trie     Trie[V]
	reporter Reporter
	metrics  *Metrics
}

// Option configures a Table.
type Option func(*options)

type options struct {
	reporter Reporter
	metrics  *Metrics
}

// WithReporter sets the Reporter for unusable keys.
func WithReporter(r Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithMetrics makes the Table update m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// New returns an empty Table.
func New[V any](opts ...Option) *Table[V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Table[V]{reporter: o.reporter, metrics: o.metrics}
}

// key classifies v, reporting a failure for operation op.
func (t *Table[V]) key(op string, v any) (Key, bool) {
	k, err := KeyOf(v)
	if err == nil {
		return k, true
	}

	t.metrics.keyError(op, err)

	r := t.reporter
	if r == nil {
		r = LogReporter{}
	}
	r.InternalWarning("%s: wrong index type for prefix table: %v", op, err)

	return k, false
}

// Insert adds key with payload val and returns the previous slot.
func (t *Table[V]) Insert(key any, val V) Slot[V] {
	k, ok := t.key("insert", key)
	if !ok {
		return Slot[V]{}
	}

	prev := t.trie.Insert(k, val)
	t.metrics.observe("insert", prev.State)
	t.metrics.setSize(t.trie.Size4(), t.trie.Size6())

	return prev
}

// InsertMarker adds key without payload and returns the previous slot.
func (t *Table[V]) InsertMarker(key any) Slot[V] {
	k, ok := t.key("insert", key)
	if !ok {
		return Slot[V]{}
	}

	prev := t.trie.InsertMarker(k)
	t.metrics.observe("insert", prev.State)
	t.metrics.setSize(t.trie.Size4(), t.trie.Size6())

	return prev
}

// Lookup returns the slot of key if exact, else the slot of the longest
// prefix covering key.
func (t *Table[V]) Lookup(key any, exact bool) Slot[V] {
	if exact {
		return t.LookupExact(key)
	}

	_, s := t.LookupBest(key)
	return s
}

// LookupExact returns the slot of key.
func (t *Table[V]) LookupExact(key any) Slot[V] {
	k, ok := t.key("lookup_exact", key)
	if !ok {
		return Slot[V]{}
	}

	s := t.trie.LookupExact(k)
	t.metrics.observe("lookup_exact", s.State)

	return s
}

// LookupBest returns the longest prefix covering key and its slot.
func (t *Table[V]) LookupBest(key any) (Key, Slot[V]) {
	k, ok := t.key("lookup_best", key)
	if !ok {
		return Key{}, Slot[V]{}
	}

	lpm, s := t.trie.LookupBest(k)
	t.metrics.observe("lookup_best", s.State)

	return lpm, s
}

// FindAll returns all prefixes overlapping key, see [Trie.FindAll].
func (t *Table[V]) FindAll(key any) []Entry[V] {
	k, ok := t.key("find_all", key)
	if !ok {
		return nil
	}

	return t.trie.FindAll(k)
}

// Remove deletes key and returns its previous slot.
func (t *Table[V]) Remove(key any) Slot[V] {
	k, ok := t.key("remove", key)
	if !ok {
		return Slot[V]{}
	}

	prev := t.trie.Remove(k)
	t.metrics.observe("remove", prev.State)
	t.metrics.setSize(t.trie.Size4(), t.trie.Size6())

	return prev
}

// Iterator returns an Iterator over all prefixes, see [Trie.Iterator].
func (t *Table[V]) Iterator() *Iterator[V] {
	return t.trie.Iterator()
}

// All returns an iterator over all prefixes and their slots.
func (t *Table[V]) All() iter.Seq2[Key, Slot[V]] {
	return t.trie.All()
}

// Size returns the number of prefixes.
func (t *Table[V]) Size() int {
	return t.trie.Size()
}

// Trie returns the underlying trie.
func (t *Table[V]) Trie() *Trie[V] {
	return &t.trie
}

func (t *Table[V]) String() string {
	return t.trie.String()
}
