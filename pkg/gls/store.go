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

// Package gls provides goroutine-local storage: each goroutine touching a
// Store gets its own independent slot, invisible to every other goroutine.
package gls

import "sync"

// Store holds one value per goroutine. A slot is created lazily on the
// first Get from a goroutine and lives until that goroutine calls Clear.
// All methods are safe for concurrent use; slots themselves never need
// synchronization because exactly one goroutine can reach each slot.
type Store[T any] struct {
	init   func() T
	values sync.Map // goroutine ID (int64) -> T
}

// New returns a Store whose slots start at the value produced by init.
// init is called once per goroutine, on that goroutine's first Get.
func New[T any](init func() T) *Store[T] {
	if init == nil {
		panic("gls: Store requires an init function")
	}
	return &Store[T]{init: init}
}

// Get returns the calling goroutine's value, initializing the slot if the
// goroutine has not touched this Store before (or cleared its slot).
func (s *Store[T]) Get() T {
	gid := GoroutineID()
	if v, ok := s.values.Load(gid); ok {
		return v.(T)
	}
	v := s.init()
	s.values.Store(gid, v)
	return v
}

// Set replaces the calling goroutine's value.
func (s *Store[T]) Set(v T) {
	s.values.Store(GoroutineID(), v)
}

// Clear drops the calling goroutine's slot. A later Get re-initializes it.
// Goroutines that use a Store should Clear on exit; slots are keyed by
// goroutine ID and IDs are never reused, so an uncleared slot is leaked.
func (s *Store[T]) Clear() {
	s.values.Delete(GoroutineID())
}

// Len reports the number of live slots across all goroutines.
func (s *Store[T]) Len() int {
	n := 0
	s.values.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
