// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// MarshalText implements the [encoding.TextMarshaler] interface,
// just a wrapper for [Trie.Fprint].
func (t *Trie[V]) MarshalText() ([]byte, error) {
	w := new(bytes.Buffer)
	if err := t.Fprint(w); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// String returns the trie structure as diagram, see [Trie.Fprint].
// If Fprint returns an error, String panics.
func (t *Trie[V]) String() string {
	w := new(strings.Builder)
	if err := t.Fprint(w); err != nil {
		panic(err)
	}

	return w.String()
}

// Fprint writes the trie structure as diagram to w, one family after
// the other. Glue nodes are part of the diagram, the shape only depends
// on the set of stored prefixes.
//
//	▼ IPv4 size(3) nodes(4)
//	└─ 10.0.0.0/8 (A)
//	   └─ 10.0.0.0/11 (glue)
//	      ├─ 10.0.0.0/16 (B)
//	      └─ 10.16.0.0/16 (C)
func (t *Trie[V]) Fprint(w io.Writer) error {
	for _, fam := range [...]Family{IPv4, IPv6} {
		r := t.root[fam.rootIdx()]
		if r == nilRef {
			continue
		}

		nodes := 0
		_ = t.eachNode(r, func(ref) bool { nodes++; return true })

		if _, err := fmt.Fprintf(w, "▼ %s size(%d) nodes(%d)\n", fam, t.size[fam.rootIdx()], nodes); err != nil {
			return err
		}
		if err := t.fprintRec(w, r, "", true); err != nil {
			return err
		}
	}

	return nil
}

// fprintRec, rec-descent, the depth is bounded by the address width.
func (t *Trie[V]) fprintRec(w io.Writer, r ref, pad string, last bool) error {
	glyphe, spacer := "├─ ", "│  "
	if last {
		glyphe, spacer = "└─ ", "   "
	}

	n := &t.nodes[r]
	if _, err := fmt.Fprintf(w, "%s%s%s (%s)\n", pad, glyphe, n.key, slotString(n.slot)); err != nil {
		return err
	}

	kids := make([]ref, 0, 2)
	for _, c := range n.child {
		if c != nilRef {
			kids = append(kids, c)
		}
	}

	for i, c := range kids {
		if err := t.fprintRec(w, c, pad+spacer, i == len(kids)-1); err != nil {
			return err
		}
	}

	return nil
}

func slotString[V any](s Slot[V]) string {
	switch s.State {
	case Valued:
		return fmt.Sprintf("%v", s.Val)
	case Marked:
		return "marked"
	default:
		return "glue"
	}
}

// eachNode calls yield for all nodes of the subtree at r, glue included.
func (t *Trie[V]) eachNode(r ref, yield func(ref) bool) bool {
	stack := []ref{r}
	for len(stack) > 0 {
		r = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if r == nilRef {
			continue
		}
		if !yield(r) {
			return false
		}
		stack = append(stack, t.nodes[r].child[1], t.nodes[r].child[0])
	}
	return true
}
