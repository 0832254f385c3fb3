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
	"bytes"
	"runtime"
	"strconv"
)

// GoroutineID returns the identifier of the calling goroutine.
//
// The ID is parsed from the first line of the goroutine's stack trace,
// which has the form "goroutine N [running]:". The cost is roughly a
// microsecond per call, negligible next to spawning the goroutine.
func GoroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGID(buf[:n])
}

// parseGID extracts the goroutine ID from a stack trace header.
// Returns 0 if the trace does not start with the expected header.
func parseGID(trace []byte) int64 {
	const prefix = "goroutine "
	if !bytes.HasPrefix(trace, []byte(prefix)) {
		return 0
	}
	trace = trace[len(prefix):]
	end := bytes.IndexByte(trace, ' ')
	if end <= 0 {
		return 0
	}
	id, err := strconv.ParseInt(string(trace[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
