// Copyright 2026 The qalloc Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package qalloc

import (
	"fmt"

	"github.com/intuitivelabs/slog"
)

// Log is the generic log used throughout this package.
var Log slog.Log = slog.New(slog.LDBG, slog.LbackTraceS|slog.LlocInfoS,
	slog.LStdErr)

// DBG is a shorthand for logging a debug message, gated by Debug option
// checks at the call sites.
func DBG(f string, a ...interface{}) {
	Log.LLog(slog.LDBG, 1, "DBG: qalloc: ", f, a...)
}

// WARN is a shorthand for logging a warning message, used for conditions
// that are reported to the caller without an error value (a heap
// extension request that fails, after which Allocate returns nil).
func WARN(f string, a ...interface{}) {
	Log.LLog(slog.LWARN, 1, "WARNING: qalloc: ", f, a...)
}

// ERR is a shorthand for logging an error message, used for a Check
// violation just before it is returned as an error to the caller.
func ERR(f string, a ...interface{}) {
	Log.LLog(slog.LERR, 1, "ERROR: qalloc: ", f, a...)
}

// BUG is a shorthand for logging a bug message, used when the allocator
// itself cannot satisfy an invariant it is responsible for maintaining.
func BUG(f string, a ...interface{}) {
	Log.LLog(slog.LBUG, 1, "BUG: qalloc: ", f, a...)
}

// PANIC logs a bug-level message and panics with it, used for
// unrecoverable caller misuse (double-release, out-of-range pointers).
func PANIC(f string, a ...interface{}) {
	s := fmt.Sprintf("qalloc: "+f, a...)
	Log.LLog(slog.LBUG, 1, "", "%s", s)
	panic(s)
}
