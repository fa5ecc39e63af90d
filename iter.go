// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"iter"
)

// Iterator walks all prefixes of a [Trie], IPv4 before IPv6, each family
// depth-first in pre-order. Glue nodes are traversed but not returned.
//
// The trie must not be modified while an Iterator is in use, the result
// of Next is undefined afterwards. Reset the Iterator, or get a new one,
// after any Insert or Remove.
type Iterator[V any] struct {
	t     *Trie[V]
	stack []ref // pending right subtrees, at most the trie height
	cur   ref
	fam   int // next family root to start with
}

// Iterator returns a new Iterator positioned before the first prefix.
func (t *Trie[V]) Iterator() *Iterator[V] {
	return &Iterator[V]{t: t}
}

// Reset restarts the iteration from the beginning.
func (it *Iterator[V]) Reset() {
	it.stack = it.stack[:0]
	it.cur = nilRef
	it.fam = 0
}

// Next returns the next prefix and its slot, ok is false at the end.
func (it *Iterator[V]) Next() (k Key, s Slot[V], ok bool) {
	for {
		if it.cur == nilRef {
			switch {
			case len(it.stack) > 0:
				it.cur = it.stack[len(it.stack)-1]
				it.stack = it.stack[:len(it.stack)-1]
			case it.fam < len(it.t.root):
				it.cur = it.t.root[it.fam]
				it.fam++
				continue
			default:
				return k, s, false
			}
		}

		n := &it.t.nodes[it.cur]

		// advance: left first and remember right, else right, else pop
		switch left, right := n.child[0], n.child[1]; {
		case left != nilRef:
			if right != nilRef {
				it.stack = append(it.stack, right)
			}
			it.cur = left
		case right != nilRef:
			it.cur = right
		default:
			it.cur = nilRef
		}

		if !n.isGlue() {
			return n.key, n.slot, true
		}
	}
}

// All returns an iterator over all prefixes and their slots,
// in the order of [Iterator].
func (t *Trie[V]) All() iter.Seq2[Key, Slot[V]] {
	return func(yield func(Key, Slot[V]) bool) {
		it := t.Iterator()
		for k, s, ok := it.Next(); ok; k, s, ok = it.Next() {
			if !yield(k, s) {
				return
			}
		}
	}
}
