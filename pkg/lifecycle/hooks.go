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

// Package lifecycle delivers thread attach/detach notifications to
// registered observers. It replaces the loader-invoked callback of native
// TLS directories with an explicit registry: the code spawning a worker
// fires Notify at the same points the loader would.
package lifecycle

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zilo555/glstest/pkg/gls"
)

// Reason identifies the lifecycle event a callback observes. The numeric
// values follow the loader notification convention (process detach is 0).
type Reason int

const (
	ReasonProcessDetach Reason = iota
	ReasonProcessAttach
	ReasonThreadAttach
	ReasonThreadDetach

	reasonCount
)

func (r Reason) String() string {
	switch r {
	case ReasonProcessDetach:
		return "process-detach"
	case ReasonProcessAttach:
		return "process-attach"
	case ReasonThreadAttach:
		return "thread-attach"
	case ReasonThreadDetach:
		return "thread-detach"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Callback observes a lifecycle event. It runs on the goroutine the event
// belongs to, in registration order. Callbacks are passive: they must not
// block and have no way to veto or alter the event.
type Callback func(goroutineID int64, reason Reason)

// Registry fans lifecycle notifications out to registered callbacks and
// counts how often each reason fired.
type Registry struct {
	mu        sync.RWMutex
	callbacks []Callback

	counts [reasonCount]atomic.Int64
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends cb to the notification list. Nil callbacks are ignored.
func (r *Registry) Register(cb Callback) {
	if cb == nil {
		return
	}
	r.mu.Lock()
	r.callbacks = append(r.callbacks, cb)
	r.mu.Unlock()
}

// Notify invokes every registered callback on the calling goroutine,
// passing that goroutine's ID and the reason.
func (r *Registry) Notify(reason Reason) {
	if reason >= 0 && reason < reasonCount {
		r.counts[reason].Add(1)
	}

	gid := gls.GoroutineID()
	r.mu.RLock()
	callbacks := r.callbacks
	r.mu.RUnlock()
	for _, cb := range callbacks {
		cb(gid, reason)
	}
}

// Count reports how many times the given reason has been notified.
func (r *Registry) Count(reason Reason) int64 {
	if reason < 0 || reason >= reasonCount {
		return 0
	}
	return r.counts[reason].Load()
}
