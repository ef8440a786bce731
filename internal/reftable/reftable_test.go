package reftable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTable_ReserveAndLookup(t *testing.T) {
	tbl := NewEncodeTable()

	type node struct{ n int }
	a := &node{1}
	b := &node{2}

	_, ok := tbl.Lookup(a)
	assert.False(t, ok)

	idxA := tbl.Reserve(a)
	assert.Equal(t, 0, idxA)

	idxB := tbl.Reserve(b)
	assert.Equal(t, 1, idxB)

	got, ok := tbl.Lookup(a)
	require.True(t, ok)
	assert.Equal(t, 0, got)

	assert.Equal(t, 2, tbl.Len())
}

func TestEncodeTable_DistinctPointersNeverCollide(t *testing.T) {
	tbl := NewEncodeTable()

	type node struct{ n int }
	a := &node{1}
	b := &node{1} // same content, distinct identity

	tbl.Reserve(a)
	_, ok := tbl.Lookup(b)
	assert.False(t, ok, "distinct pointers with equal content must not collide")
}

func TestDecodeTable_AppendAndGet(t *testing.T) {
	tbl := NewDecodeTable()

	idx0 := tbl.Append("first")
	idx1 := tbl.Append("second")

	assert.Equal(t, 0, idx0)
	assert.Equal(t, 1, idx1)
	assert.Equal(t, 2, tbl.Len())

	v, ok := tbl.Get(0)
	require.True(t, ok)
	assert.Equal(t, "first", v)

	_, ok = tbl.Get(5)
	assert.False(t, ok)

	_, ok = tbl.Get(-1)
	assert.False(t, ok)
}

func TestDecodeTable_ShellFirstAllowsSelfReference(t *testing.T) {
	tbl := NewDecodeTable()

	type node struct {
		self any
	}
	n := &node{}
	idx := tbl.Append(n)

	// Simulate decoding a child that is a back-reference to the
	// not-yet-fully-populated shell.
	self, ok := tbl.Get(idx)
	require.True(t, ok)
	n.self = self

	assert.Same(t, n, n.self)
}
