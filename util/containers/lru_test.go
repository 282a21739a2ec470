// Copyright 2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package containers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLruCacheEvictsOldest(t *testing.T) {
	var evicted []int
	cache := NewLruCacheWithOnEvict[int, string](2, func(key int, _ string) {
		evicted = append(evicted, key)
	})
	cache.Add(1, "one")
	cache.Add(2, "two")
	_, ok := cache.Get(1)
	require.True(t, ok)
	cache.Add(3, "three")
	require.Equal(t, []int{2}, evicted)
	require.False(t, cache.Contains(2))
	require.Equal(t, 2, cache.Len())

	cache.Resize(1)
	require.Equal(t, 1, cache.Len())
	cache.Resize(0)
	require.Equal(t, 0, cache.Len())
	cache.Add(4, "four")
	require.False(t, cache.Contains(4))
	cache.Resize(3)
	cache.Add(4, "four")
	value, ok := cache.Get(4)
	require.True(t, ok)
	require.Equal(t, "four", value)
	cache.Remove(4)
	require.False(t, cache.Contains(4))
}

func TestZeroSizeLruCache(t *testing.T) {
	cache := NewLruCache[string, int](0)
	cache.Add("a", 1)
	_, ok := cache.Get("a")
	require.False(t, ok)
	require.Zero(t, cache.Len())
	cache.Clear()
}
