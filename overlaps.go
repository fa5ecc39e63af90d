// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"iter"
)

// FindAll returns all stored prefixes overlapping k, together with their
// slots: first the prefixes shorter than k covering it, from the root
// down, then k itself if present and all prefixes covered by k in
// pre-order.
func (t *Trie[V]) FindAll(k Key) []Entry[V] {
	var out []Entry[V]
	collect := func(r ref) bool {
		out = append(out, Entry[V]{Key: t.nodes[r].key, Slot: t.nodes[r].slot})
		return true
	}

	t.eachAncestor(k, false, collect)
	t.eachPreorder(t.coveredRoot(k), collect)

	return out
}

// Overlaps reports whether any stored prefix overlaps k.
func (t *Trie[V]) Overlaps(k Key) bool {
	found := false
	stop := func(ref) bool {
		found = true
		return false
	}

	t.eachAncestor(k, false, stop)
	if found {
		return true
	}
	t.eachPreorder(t.coveredRoot(k), stop)

	return found
}

// Supernets returns an iterator over all stored prefixes covering k,
// including k itself, from the shortest to the longest.
func (t *Trie[V]) Supernets(k Key) iter.Seq2[Key, Slot[V]] {
	return func(yield func(Key, Slot[V]) bool) {
		t.eachAncestor(k, true, func(r ref) bool {
			return yield(t.nodes[r].key, t.nodes[r].slot)
		})
	}
}

// Subnets returns an iterator over all stored prefixes covered by k,
// including k itself, in pre-order.
func (t *Trie[V]) Subnets(k Key) iter.Seq2[Key, Slot[V]] {
	return func(yield func(Key, Slot[V]) bool) {
		t.eachPreorder(t.coveredRoot(k), func(r ref) bool {
			return yield(t.nodes[r].key, t.nodes[r].slot)
		})
	}
}

// eachAncestor calls yield for the keyed nodes on the path to k whose
// prefix covers k, root first. With inclusive, a node equal to k is
// part of the path.
func (t *Trie[V]) eachAncestor(k Key, inclusive bool, yield func(ref) bool) bool {
	if !k.IsValid() {
		return true
	}

	kbits := k.Bits()
	for r := t.root[k.family.rootIdx()]; r != nilRef; {
		n := &t.nodes[r]
		d := n.depth()

		if d > kbits || (d == kbits && !inclusive) {
			break
		}
		if commonBits(&n.key.addr, &k.addr, d) < d {
			break
		}

		next := nilRef
		if d < kbits {
			next = n.child[k.bit(d)]
		}

		if !n.isGlue() && !yield(r) {
			return false
		}
		r = next
	}

	return true
}

// coveredRoot returns the topmost node at or below the depth of k
// within the range of k, or nilRef.
func (t *Trie[V]) coveredRoot(k Key) ref {
	if !k.IsValid() {
		return nilRef
	}

	kbits := k.Bits()
	for r := t.root[k.family.rootIdx()]; r != nilRef; {
		n := &t.nodes[r]
		d := n.depth()

		if d >= kbits {
			if commonBits(&n.key.addr, &k.addr, kbits) == kbits {
				return r
			}
			return nilRef
		}

		if commonBits(&n.key.addr, &k.addr, d) < d {
			return nilRef
		}
		r = n.child[k.bit(d)]
	}

	return nilRef
}

// eachPreorder calls yield for all keyed nodes of the subtree at r,
// depth-first, left before right. It uses an explicit stack, the depth
// of the trie is bounded but not balanced.
func (t *Trie[V]) eachPreorder(r ref, yield func(ref) bool) bool {
	if r == nilRef {
		return true
	}

	stack := make([]ref, 1, 32)
	stack[0] = r

	for len(stack) > 0 {
		r = stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[r]
		if c := n.child[1]; c != nilRef {
			stack = append(stack, c)
		}
		if c := n.child[0]; c != nilRef {
			stack = append(stack, c)
		}

		if !n.isGlue() && !yield(r) {
			return false
		}
	}

	return true
}
