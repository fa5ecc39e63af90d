// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFprint(t *testing.T) {
	t.Parallel()

	var tr Trie[string]
	tr.Insert(mk("10.0.0.0/16"), "B")
	tr.InsertMarker(mk("::/0"))
	tr.Insert(mk("10.16.0.0/16"), "C")
	tr.Insert(mk("10.0.0.0/8"), "A")

	want := `▼ IPv4 size(3) nodes(4)
└─ 10.0.0.0/8 (A)
   └─ 10.0.0.0/11 (glue)
      ├─ 10.0.0.0/16 (B)
      └─ 10.16.0.0/16 (C)
▼ IPv6 size(1) nodes(1)
└─ ::/0 (marked)
`
	assert.Equal(t, want, tr.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestFprintError(t *testing.T) {
	t.Parallel()

	var tr Trie[int]
	tr.Insert(mk("10.0.0.0/8"), 1)

	assert.Error(t, tr.Fprint(failWriter{}))

	text, err := tr.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, tr.String(), string(text))
}
