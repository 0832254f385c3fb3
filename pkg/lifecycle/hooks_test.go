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

package lifecycle

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zilo555/glstest/pkg/gls"
)

func TestRegistryNotifyOrder(t *testing.T) {
	reg := NewRegistry()

	var order []string
	reg.Register(func(_ int64, _ Reason) { order = append(order, "first") })
	reg.Register(func(_ int64, _ Reason) { order = append(order, "second") })

	reg.Notify(ReasonThreadAttach)
	require.Equal(t, []string{"first", "second"}, order)
}

func TestRegistryCallerGoroutineID(t *testing.T) {
	reg := NewRegistry()

	var (
		mu   sync.Mutex
		gids []int64
	)
	reg.Register(func(gid int64, _ Reason) {
		mu.Lock()
		gids = append(gids, gid)
		mu.Unlock()
	})

	self := gls.GoroutineID()
	reg.Notify(ReasonProcessAttach)

	done := make(chan struct{})
	go func() {
		defer close(done)
		reg.Notify(ReasonThreadAttach)
	}()
	<-done

	require.Len(t, gids, 2)
	require.Equal(t, self, gids[0])
	require.NotEqual(t, self, gids[1])
}

func TestRegistryCounts(t *testing.T) {
	reg := NewRegistry()

	reg.Notify(ReasonProcessAttach)
	reg.Notify(ReasonThreadAttach)
	reg.Notify(ReasonThreadAttach)
	reg.Notify(ReasonThreadDetach)

	require.Equal(t, int64(1), reg.Count(ReasonProcessAttach))
	require.Equal(t, int64(2), reg.Count(ReasonThreadAttach))
	require.Equal(t, int64(1), reg.Count(ReasonThreadDetach))
	require.Equal(t, int64(0), reg.Count(ReasonProcessDetach))
	require.Equal(t, int64(0), reg.Count(Reason(99)))
}

func TestRegistryNilCallbackIgnored(t *testing.T) {
	reg := NewRegistry()
	reg.Register(nil)
	require.NotPanics(t, func() { reg.Notify(ReasonThreadAttach) })
}

func TestReasonString(t *testing.T) {
	require.Equal(t, "process-detach", ReasonProcessDetach.String())
	require.Equal(t, "process-attach", ReasonProcessAttach.String())
	require.Equal(t, "thread-attach", ReasonThreadAttach.String())
	require.Equal(t, "thread-detach", ReasonThreadDetach.String())
	require.Equal(t, "reason(7)", Reason(7).String())
}
