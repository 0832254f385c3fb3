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

package runner

import (
	"sync/atomic"

	"github.com/zilo555/glstest/pkg/lifecycle"
)

// Stats aggregates worker counters across a run. Workers update it
// concurrently.
type Stats struct {
	WorkersStarted atomic.Int64
	WorkersExited  atomic.Int64
	WorkerPanics   atomic.Int64
}

// Snapshot is a point-in-time copy of the run counters, including the
// lifecycle notification counts, for reporting.
type Snapshot struct {
	WorkersStarted int64
	WorkersExited  int64
	WorkerPanics   int64
	ThreadAttaches int64
	ThreadDetaches int64
}

func (s *Stats) snapshot(hooks *lifecycle.Registry) Snapshot {
	return Snapshot{
		WorkersStarted: s.WorkersStarted.Load(),
		WorkersExited:  s.WorkersExited.Load(),
		WorkerPanics:   s.WorkerPanics.Load(),
		ThreadAttaches: hooks.Count(lifecycle.ReasonThreadAttach),
		ThreadDetaches: hooks.Count(lifecycle.ReasonThreadDetach),
	}
}
