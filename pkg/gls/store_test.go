// Copyright 2026 The glstest Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package gls

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreInitAndClear(t *testing.T) {
	store := New(func() int { return 42 })

	require.Equal(t, 42, store.Get())
	require.Equal(t, 1, store.Len())

	store.Set(100)
	require.Equal(t, 100, store.Get())

	store.Clear()
	require.Equal(t, 0, store.Len())

	// A cleared slot re-initializes on the next Get.
	require.Equal(t, 42, store.Get())
	store.Clear()
}

func TestStoreSetBeforeGet(t *testing.T) {
	calls := 0
	store := New(func() string {
		calls++
		return "initial"
	})

	store.Set("explicit")
	require.Equal(t, "explicit", store.Get())
	require.Zero(t, calls)
	store.Clear()
}

func TestStoreNilInitPanics(t *testing.T) {
	require.Panics(t, func() { New[int](nil) })
}

func TestStoreIsolation(t *testing.T) {
	const seed int32 = 0x12345678
	const n = 16

	store := New(func() int32 { return seed })

	type observation struct {
		first  int32
		second int32
	}
	obs := make(chan observation, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(k int32) {
			defer wg.Done()
			first := store.Get()
			store.Set(first + 1 + k)
			obs <- observation{first: first, second: store.Get()}
			store.Clear()
		}(int32(i))
	}
	wg.Wait()
	close(obs)

	// Every goroutine must see the pristine seed first, then exactly its
	// own mutation, no matter how the others interleave.
	seen := make(map[int32]struct{}, n)
	for o := range obs {
		require.Equal(t, seed, o.first)
		require.Greater(t, o.second, seed)
		seen[o.second] = struct{}{}
	}
	require.Len(t, seen, n)

	// All slots were cleared on the way out.
	require.Equal(t, 0, store.Len())

	// The main goroutine never touched the store, so its slot is fresh.
	require.Equal(t, seed, store.Get())
	store.Clear()
}
