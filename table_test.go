// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects reported warnings
type recorder []string

func (r *recorder) InternalWarning(format string, args ...any) {
	*r = append(*r, fmt.Sprintf(format, args...))
}

func TestTableKeyTypes(t *testing.T) {
	t.Parallel()

	var rec recorder
	tbl := New[string](WithReporter(&rec))

	assert.Equal(t, Absent, tbl.Insert(mpp("10.0.0.0/8"), "A").State)
	assert.Equal(t, Absent, tbl.Insert(Subnet{Addr: mpa("10.10.0.0"), Len: 16}, "B").State)
	assert.Equal(t, Absent, tbl.Insert([]any{mpa("10.10.10.10")}, "host").State)
	assert.Equal(t, Absent, tbl.InsertMarker(mk("2001:db8::/32")).State)
	assert.Empty(t, rec)
	assert.Equal(t, 4, tbl.Size())

	assert.Equal(t, "host", tbl.LookupExact(mpa("10.10.10.10")).Val)
	assert.Equal(t, "host", tbl.Lookup([]any{mpa("10.10.10.10")}, true).Val)
	assert.False(t, tbl.Lookup(mpa("10.10.10.11"), true).Ok())
	assert.Equal(t, "B", tbl.Lookup(mpa("10.10.10.11"), false).Val)
	assert.Equal(t, Marked, tbl.Lookup(mpa("2001:db8::1"), false).State)

	lpm, s := tbl.LookupBest(Subnet{Addr: mpa("10.200.0.0"), Len: 16})
	assert.Equal(t, "A", s.Val)
	assert.Equal(t, mk("10.0.0.0/8"), lpm)

	assert.Equal(t, []string{"10.0.0.0/8", "10.10.0.0/16", "10.10.10.10/32"}, keysOf(tbl.FindAll(mpp("10.10.0.0/16"))))

	assert.Equal(t, "host", tbl.Remove([]any{mpa("10.10.10.10")}).Val)
	assert.Equal(t, 3, tbl.Size())
	checkInvariants(t, tbl.Trie())
}

func TestTableReportsBadKeys(t *testing.T) {
	t.Parallel()

	var rec recorder
	tbl := New[int](WithReporter(&rec))
	tbl.Insert(mpp("10.0.0.0/8"), 1)

	bad := []any{
		"10.0.0.0/8",
		nil,
		[]any{},
		Subnet{Addr: mpa("10.0.0.0"), Len: 33},
		Subnet{Addr: mpa("::"), Len: -1},
	}

	for _, key := range bad {
		require.NotPanics(t, func() {
			assert.False(t, tbl.Insert(key, 2).Ok())
			assert.False(t, tbl.InsertMarker(key).Ok())
			assert.False(t, tbl.LookupExact(key).Ok())
			_, s := tbl.LookupBest(key)
			assert.False(t, s.Ok())
			assert.Nil(t, tbl.FindAll(key))
			assert.False(t, tbl.Remove(key).Ok())
		}, "%v", key)
	}

	assert.Len(t, rec, 6*len(bad))
	assert.Contains(t, rec[0], "insert: wrong index type for prefix table: unsupported key type string")
	assert.Contains(t, rec[len(rec)-1], "remove:")
	assert.Contains(t, rec[len(rec)-1], ErrInvalidWidth.Error())

	assert.Equal(t, 1, tbl.Size(), "bad keys must not modify the table")
}

func TestTableLogReporter(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()
	tbl := New[int](WithReporter(LogReporter{Entry: logrus.NewEntry(logger)}))

	tbl.LookupExact(42)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "pfxtable", entry.Data["component"])
	assert.Equal(t, "lookup_exact: wrong index type for prefix table: unsupported key type int", entry.Message)
}

func TestTableZeroValue(t *testing.T) {
	t.Parallel()

	var tbl Table[int]
	tbl.Insert(mpa("192.0.2.1"), 1)

	n := 0
	for k, s := range tbl.All() {
		assert.Equal(t, "192.0.2.1/32", k.String())
		assert.Equal(t, 1, s.Val)
		n++
	}
	assert.Equal(t, 1, n)

	it := tbl.Iterator()
	k, _, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, mk("192.0.2.1"), k)

	assert.Contains(t, tbl.String(), "192.0.2.1/32 (1)")
}

func TestReporterFunc(t *testing.T) {
	t.Parallel()

	var got string
	r := ReporterFunc(func(format string, args ...any) {
		got = fmt.Sprintf(format, args...)
	})
	r.InternalWarning("%s-%d", "a", 1)
	assert.Equal(t, "a-1", got)
}
