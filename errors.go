// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vqueue

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For a push: the deque or slot array is full (backpressure).
// For a pop: the deque is empty, or no data is available.
//
// ErrWouldBlock is a control flow signal, not a failure. The caller's
// payload is untouched (for deque pushes — the queue stores by pointer
// copy, the original is never consumed) and the caller is expected to
// retry at its own pace; this package never blocks waiting for space
// or data.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrNotFound indicates a routing table lookup or removal found no
// matching entry. Returned by [PerProcess.GetNtf] and
// [PerProcess.PopRoute] — the "none" signal of spec §7's error
// taxonomy.
var ErrNotFound = errors.New("vqueue: route not found")

// ErrUninitialized is the diagnostic panic message used when an
// operation is attempted before the shared anchor was set via
// [SetQueueArrayAddr] or [SetQueueArrayAddrAndInit]. This is a
// contract violation, not a recoverable condition — unlike
// [ErrWouldBlock] and [ErrNotFound] it is never returned as a value;
// callers must establish the anchor exactly once before any other
// operation or the package aborts.
var ErrUninitialized = errors.New("vqueue: queue array address not initialized")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a
// failure). Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil or ErrWouldBlock. Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
