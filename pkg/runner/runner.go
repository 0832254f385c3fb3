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

// Package runner spawns a configurable number of worker goroutines, each
// exercising its own goroutine-local counter and message while lifecycle
// callbacks observe every attach and detach. It is a diagnostic fixture
// for validating that per-goroutine storage and lifecycle notifications
// hold up under concurrent worker creation.
package runner

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/zilo555/glstest/pkg/gls"
	"github.com/zilo555/glstest/pkg/lifecycle"
)

// Runner owns the goroutine-local stores, the lifecycle registry, and the
// run counters. A Runner is good for a single Run.
type Runner struct {
	cfg   *Config
	runID string

	hooks   *lifecycle.Registry
	counter *gls.Store[int32]
	message *gls.Store[string]

	stats Stats

	// body is the worker routine; tests substitute it to exercise the
	// panic path.
	body func(index int) WorkerResult
}

// WorkerResult records what one worker observed in its local slots.
type WorkerResult struct {
	Worker        int
	GoroutineID   int64
	CounterFirst  int32
	CounterSecond int32
	Message       string
	// Code is the worker's result code: its index on success, -1 if the
	// worker panicked.
	Code int
}

// Report describes a completed run.
type Report struct {
	RunID   string
	Workers []WorkerResult
	Stats   Snapshot
}

func New(cfg *Config) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("runner requires a config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}

	seed := cfg.CounterSeed
	msg := cfg.Message
	r := &Runner{
		cfg:     cfg,
		runID:   uuid.NewString(),
		hooks:   lifecycle.NewRegistry(),
		counter: gls.New(func() int32 { return seed }),
		message: gls.New(func() string { return msg }),
	}
	r.body = r.workerMain
	r.hooks.Register(logNotification)
	return r, nil
}

// Hooks exposes the lifecycle registry so additional observers can be
// registered before Run.
func (r *Runner) Hooks() *lifecycle.Registry {
	return r.hooks
}

// Run fires the process attach notification, spawns the configured number
// of workers, and blocks until every worker has exited. The join has no
// timeout; ctx is consulted only before any worker starts.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Annotate(err, "run aborted before spawning workers")
	}

	log.Info("starting workers",
		zap.String("runID", r.runID),
		zap.Int("workers", r.cfg.Workers),
		zap.Int32("counterSeed", r.cfg.CounterSeed))

	r.hooks.Notify(lifecycle.ReasonProcessAttach)

	results := make([]WorkerResult, r.cfg.Workers)
	var wg sync.WaitGroup
	wg.Add(r.cfg.Workers)
	for i := 0; i < r.cfg.Workers; i++ {
		go func(index int) {
			defer wg.Done()
			results[index] = r.runWorker(index)
		}(i)
	}
	wg.Wait()

	r.hooks.Notify(lifecycle.ReasonProcessDetach)

	snap := r.stats.snapshot(r.hooks)
	log.Info("all workers finished",
		zap.String("runID", r.runID),
		zap.Int64("started", snap.WorkersStarted),
		zap.Int64("exited", snap.WorkersExited),
		zap.Int64("attaches", snap.ThreadAttaches),
		zap.Int64("detaches", snap.ThreadDetaches))

	return &Report{RunID: r.runID, Workers: results, Stats: snap}, nil
}

// runWorker pins the goroutine to an OS thread for its lifetime, brackets
// the worker body with attach/detach notifications, and recovers panics so
// the join can never be left short. Detach always fires after the local
// slots are cleared, mirroring the order a loader tears down native TLS.
func (r *Runner) runWorker(index int) (res WorkerResult) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	r.stats.WorkersStarted.Add(1)
	r.hooks.Notify(lifecycle.ReasonThreadAttach)

	defer func() {
		r.counter.Clear()
		r.message.Clear()
		r.hooks.Notify(lifecycle.ReasonThreadDetach)
		r.stats.WorkersExited.Add(1)
	}()
	defer func() {
		if p := recover(); p != nil {
			r.stats.WorkerPanics.Add(1)
			log.Error("worker panicked",
				zap.Int("worker", index),
				zap.Any("panic", p))
			res = WorkerResult{Worker: index, Code: -1}
		}
	}()

	return r.body(index)
}

// logNotification is the default lifecycle observer. It reports the same
// facts a loader-invoked TLS callback would print: the thread's identity
// and the reason it was called.
func logNotification(gid int64, reason lifecycle.Reason) {
	log.Info("lifecycle callback",
		zap.Int64("goroutine", gid),
		zap.Int("reason", int(reason)),
		zap.Stringer("event", reason))
}
