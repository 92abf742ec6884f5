// SPDX-License-Identifier: MIT

package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jrmesh/approval"
	"github.com/katalvlaran/jrmesh/search"
	"github.com/katalvlaran/jrmesh/store"
)

func matrix(t *testing.T) *approval.Matrix {
	t.Helper()
	mx, err := approval.FromRows([][]int{{1, 1, 0}, {1, 1, 0}, {0, 0, 1}, {0, 0, 1}})
	require.NoError(t, err)

	return mx
}

func TestDigest(t *testing.T) {
	mx := matrix(t)
	assert.Equal(t, store.Digest(mx, 2), store.Digest(mx, 2))
	assert.NotEqual(t, store.Digest(mx, 2), store.Digest(mx, 3))

	other, err := approval.FromRows([][]int{{1, 1, 0}, {1, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	require.NoError(t, err)
	assert.NotEqual(t, store.Digest(mx, 2), store.Digest(other, 2))
}

func TestStore_InMemory(t *testing.T) {
	s, err := store.Open("")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	key := store.Key{Digest: store.Digest(matrix(t), 2), Rule: "jr", Cell: [4]int{3, 4, 1, 2}}
	_, found, err := s.Get(key)
	require.NoError(t, err)
	assert.False(t, found)

	want := search.Outcome{Found: true, Objective: 2, Committee: approval.Committee{0, 2}, Coverage: 4, Approval: 4}
	require.NoError(t, s.Put(key, want))
	require.NoError(t, s.Put(store.Key{Digest: key.Digest, Rule: "pjr", Cell: key.Cell}, search.Outcome{}))

	got, found, err := s.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, got)

	got, found, err = s.Get(store.Key{Digest: key.Digest, Rule: "pjr", Cell: key.Cell})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, search.Outcome{}, got)

	n, err := s.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	key := store.Key{Digest: 42, Rule: "ejr", Cell: [4]int{1, 1, 1, 1}}

	s, err := store.Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(key, search.Outcome{Found: true, Objective: 1, Committee: approval.Committee{7}}))
	require.NoError(t, s.Close())

	s, err = store.Open(dir)
	require.NoError(t, err)
	got, found, err := s.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, approval.Committee{7}, got.Committee)
	require.NoError(t, s.Close())

	_, _, err = s.Get(key)
	require.ErrorIs(t, err, store.ErrClosed)
	require.ErrorIs(t, s.Close(), store.ErrClosed)
}
