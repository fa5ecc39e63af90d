// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"fmt"
	"math/rand/v2"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

// this file contains helpers for other test functions

// abbreviation
var mpa = netip.MustParseAddr

// abbreviation, panics on non masked input
var mpp = func(s string) netip.Prefix {
	pfx := netip.MustParsePrefix(s)
	if pfx == pfx.Masked() {
		return pfx
	}
	panic(fmt.Sprintf("%s is not canonicalized as %s", s, pfx.Masked()))
}

// abbreviation
var mk = MustParseKey

// workLoadN to adjust loops for tests with -short
func workLoadN() int {
	if testing.Short() {
		return 100
	}
	return 1_000
}

func newPRNG() *rand.Rand {
	return rand.New(rand.NewPCG(42, 42))
}

// keysOf returns the keys of the entries, in order.
func keysOf[V any](entries []Entry[V]) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Key.String())
	}
	return out
}

// checkInvariants verifies the structure of the arena and the trie.
func checkInvariants[V any](t *testing.T, tr *Trie[V]) {
	t.Helper()

	reachable := 0
	var keyed [2]int

	for fam, root := range tr.root {
		if root == nilRef {
			continue
		}
		require.Equal(t, nilRef, tr.nodes[root].parent, "root with parent")

		tr.eachNode(root, func(r ref) bool {
			reachable++
			n := &tr.nodes[r]

			require.Equal(t, fam, n.key.family.rootIdx(), "%v in wrong family", n.key)
			require.Equal(t, n.key, n.key.truncate(n.depth()), "%v not masked", n.key)

			if n.isGlue() {
				require.NotEqual(t, nilRef, n.child[0], "glue %v without left child", n.key)
				require.NotEqual(t, nilRef, n.child[1], "glue %v without right child", n.key)
			} else {
				keyed[fam]++
			}

			for side, c := range n.child {
				if c == nilRef {
					continue
				}
				cn := &tr.nodes[c]
				require.Equal(t, r, cn.parent, "broken parent link at %v", cn.key)
				require.Greater(t, cn.depth(), n.depth(), "child %v not below %v", cn.key, n.key)
				require.True(t, n.key.Contains(cn.key), "child %v not covered by %v", cn.key, n.key)
				require.Equal(t, byte(side), cn.key.bit(n.depth()), "child %v on wrong side", cn.key)
			}
			return true
		})
	}

	require.Equal(t, tr.size, keyed, "size mismatch")
	if len(tr.nodes) > 0 {
		require.Equal(t, len(tr.nodes)-1, reachable+len(tr.free), "leaked nodes")
	}
}
