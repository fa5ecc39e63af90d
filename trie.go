// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

// ref addresses a node in the arena, 0 is the nil reference.
type ref uint32

const nilRef ref = 0

// node of the binary trie. A node with an absent slot is a glue node,
// it only exists to branch and always has two children.
//
// The key of a node is its path from the root, masked to the node depth.
// For a glue node this is the common prefix of its subtree.
type node[V any] struct {
	key    Key
	slot   Slot[V]
	parent ref
	child  [2]ref
}

func (n *node[V]) isGlue() bool {
	return n.slot.State == Absent
}

func (n *node[V]) depth() int {
	return int(n.key.bits)
}

// Trie is a path-compressed binary trie of IPv4 and IPv6 prefixes
// with payload V. The zero value is ready to use.
//
// All nodes live in an arena owned by the Trie and are linked by index.
// Removed nodes are recycled through a free list.
//
// A Trie is not safe for concurrent use.
type Trie[V any] struct {
	nodes []node[V] // nodes[0] is the unused nil node
	free  []ref

	root [2]ref // by Family.rootIdx
	size [2]int
}

// alloc returns a fresh node, reusing released ones first.
// Node pointers into the arena are invalid after alloc.
func (t *Trie[V]) alloc(k Key, s Slot[V], parent ref) ref {
	if len(t.nodes) == 0 {
		t.nodes = append(t.nodes, node[V]{})
	}

	var r ref
	if n := len(t.free); n > 0 {
		r = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.nodes = append(t.nodes, node[V]{})
		r = ref(len(t.nodes) - 1)
	}

	t.nodes[r] = node[V]{key: k, slot: s, parent: parent}
	return r
}

// release puts the node back to the free list, the payload is dropped.
func (t *Trie[V]) release(r ref) {
	t.nodes[r] = node[V]{}
	t.free = append(t.free, r)
}

// relink replaces the child old of parent by c, or the family root
// if parent is nil.
func (t *Trie[V]) relink(fam int, parent, old, c ref) {
	if parent == nilRef {
		t.root[fam] = c
		return
	}

	p := &t.nodes[parent]
	if p.child[0] == old {
		p.child[0] = c
	} else {
		p.child[1] = c
	}
}

// Size returns the number of prefixes in the trie.
func (t *Trie[V]) Size() int {
	return t.size[0] + t.size[1]
}

// Size4 returns the number of IPv4 prefixes.
func (t *Trie[V]) Size4() int {
	return t.size[IPv4.rootIdx()]
}

// Size6 returns the number of IPv6 prefixes.
func (t *Trie[V]) Size6() int {
	return t.size[IPv6.rootIdx()]
}

// Clear removes all prefixes and releases the arena.
func (t *Trie[V]) Clear() {
	*t = Trie[V]{}
}

// Insert adds k with payload val. If k is already present, its payload
// is replaced. The previous slot is returned, Absent if k is new.
//
// An invalid key is ignored.
func (t *Trie[V]) Insert(k Key, val V) Slot[V] {
	return t.insert(k, valued(val))
}

// InsertMarker adds k without payload, LookupExact(k) then reports a
// Marked slot. An existing payload of k is dropped.
func (t *Trie[V]) InsertMarker(k Key) Slot[V] {
	return t.insert(k, marked[V]())
}

func (t *Trie[V]) insert(k Key, s Slot[V]) (prev Slot[V]) {
	if !k.IsValid() {
		return prev
	}

	fam := k.family.rootIdx()
	kbits := k.Bits()

	r := t.root[fam]
	if r == nilRef {
		t.root[fam] = t.alloc(k, s, nilRef)
		t.size[fam]++
		return prev
	}

	// go down along the key bits until a keyed node at or below the key
	// depth, or a missing child. Glue nodes always have two children,
	// so this ends in a keyed node.
	for {
		n := &t.nodes[r]
		if n.depth() >= kbits && !n.isGlue() {
			break
		}
		next := n.child[k.bit(n.depth())]
		if next == nilRef {
			break
		}
		r = next
	}

	// first bit where the key differs from the path to r
	check := min(t.nodes[r].depth(), kbits)
	differ := commonBits(&k.addr, &t.nodes[r].key.addr, check)

	// back up to the topmost node at or below the divergence
	for p := t.nodes[r].parent; p != nilRef && t.nodes[p].depth() >= differ; p = t.nodes[r].parent {
		r = p
	}

	n := &t.nodes[r]

	// exact position, overwrite or promote a glue node
	if differ == kbits && n.depth() == kbits {
		prev = n.slot
		if !prev.Ok() {
			t.size[fam]++
		}
		n.key = k
		n.slot = s
		return prev
	}

	t.size[fam]++

	// new leaf below r
	if n.depth() == differ {
		leaf := t.alloc(k, s, r)
		t.nodes[r].child[k.bit(differ)] = leaf
		return prev
	}

	parent := n.parent

	// k is a prefix of the path to r, split the edge above r
	if differ == kbits {
		side := n.key.bit(kbits)
		mid := t.alloc(k, s, parent)
		t.nodes[mid].child[side] = r
		t.relink(fam, parent, r, mid)
		t.nodes[r].parent = mid
		return prev
	}

	// diverging paths, branch with a glue node
	leaf := t.alloc(k, s, nilRef)
	glue := t.alloc(k.truncate(differ), Slot[V]{}, parent)

	side := k.bit(differ)
	t.nodes[glue].child[side] = leaf
	t.nodes[glue].child[1-side] = r
	t.nodes[leaf].parent = glue

	t.relink(fam, parent, r, glue)
	t.nodes[r].parent = glue

	return prev
}

// find returns the node with key k, or nilRef.
func (t *Trie[V]) find(k Key) ref {
	if !k.IsValid() {
		return nilRef
	}

	kbits := k.Bits()
	r := t.root[k.family.rootIdx()]

	for r != nilRef && t.nodes[r].depth() < kbits {
		n := &t.nodes[r]
		r = n.child[k.bit(n.depth())]
	}

	if r == nilRef {
		return nilRef
	}

	n := &t.nodes[r]
	if n.isGlue() || n.key != k {
		return nilRef
	}
	return r
}

// LookupExact returns the slot of k. Only a prefix with identical family,
// length and bits matches.
func (t *Trie[V]) LookupExact(k Key) Slot[V] {
	if r := t.find(k); r != nilRef {
		return t.nodes[r].slot
	}
	return Slot[V]{}
}

// LookupBest returns the longest prefix covering k and its slot.
// The slot is Absent if no stored prefix covers k.
func (t *Trie[V]) LookupBest(k Key) (lpm Key, s Slot[V]) {
	if !k.IsValid() {
		return lpm, s
	}

	kbits := k.Bits()
	best := nilRef

	for r := t.root[k.family.rootIdx()]; r != nilRef; {
		n := &t.nodes[r]
		d := n.depth()

		// the path left the key, no deeper node can cover it
		if d > kbits || commonBits(&n.key.addr, &k.addr, d) < d {
			break
		}

		if !n.isGlue() {
			best = r
		}

		if d == kbits {
			break
		}
		r = n.child[k.bit(d)]
	}

	if best == nilRef {
		return lpm, s
	}
	return t.nodes[best].key, t.nodes[best].slot
}

// Contains reports whether any stored prefix covers k.
func (t *Trie[V]) Contains(k Key) bool {
	_, s := t.LookupBest(k)
	return s.Ok()
}

// Remove deletes k and returns its previous slot, Absent if k was not
// present.
//
// Nodes left without a prefix are removed if they have fewer than two
// children, and glue nodes left with a single child are collapsed,
// up the chain of ancestors.
func (t *Trie[V]) Remove(k Key) (prev Slot[V]) {
	r := t.find(k)
	if r == nilRef {
		return prev
	}

	fam := k.family.rootIdx()
	prev = t.nodes[r].slot

	t.nodes[r].slot = Slot[V]{}
	t.size[fam]--
	t.compact(fam, r)

	return prev
}

// compact removes the unkeyed node r if it no longer branches and
// continues with its parent.
func (t *Trie[V]) compact(fam int, r ref) {
	for r != nilRef {
		n := &t.nodes[r]
		if !n.isGlue() {
			return
		}

		left, right := n.child[0], n.child[1]
		if left != nilRef && right != nilRef {
			return
		}

		c := left
		if c == nilRef {
			c = right
		}

		parent := n.parent
		if c != nilRef {
			t.nodes[c].parent = parent
		}
		t.relink(fam, parent, r, c)
		t.release(r)

		r = parent
	}
}
