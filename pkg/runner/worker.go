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
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/zilo555/glstest/pkg/gls"
)

// workerMain is the worker routine: read the local counter, log it,
// increment it, log it again, log the local message, and return the worker
// index as the result code. Every observation goes into the WorkerResult
// so a run can be checked for per-worker isolation after the fact.
func (r *Runner) workerMain(index int) WorkerResult {
	gid := gls.GoroutineID()

	first := r.counter.Get()
	log.Info("worker counter",
		zap.Int64("goroutine", gid),
		zap.Int("worker", index),
		zap.Int32("counter", first))

	r.counter.Set(first + 1)
	second := r.counter.Get()
	log.Info("worker counter",
		zap.Int64("goroutine", gid),
		zap.Int("worker", index),
		zap.Int32("counter", second))

	msg := r.message.Get()
	log.Info("worker message",
		zap.Int64("goroutine", gid),
		zap.Int("worker", index),
		zap.String("message", msg))

	return WorkerResult{
		Worker:        index,
		GoroutineID:   gid,
		CounterFirst:  first,
		CounterSecond: second,
		Message:       msg,
		Code:          index,
	}
}
