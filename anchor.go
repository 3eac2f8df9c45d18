// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vqueue

import (
	"sync"
	"sync/atomic"
)

// ProcessID identifies a row of the process-wide queue array. It is an
// erased SlotRef index, transiently reconstructed via FromID and
// re-erased via IntoID around each operation.
type ProcessID uint32

var (
	anchorOnce sync.Once
	anchor     atomic.Pointer[SlotArray[PerProcess]]
)

// SetQueueArrayAddr attaches the shared anchor to an externally
// constructed array — the Go analog of a process discovering an
// already-mapped shared-memory region. Must be called exactly once,
// before any other operation in this package; a second call is a
// contract violation and panics with a "vqueue: queue array address
// already initialized" message.
func SetQueueArrayAddr(arr *SlotArray[PerProcess]) error {
	if arr == nil {
		panic("vqueue: SetQueueArrayAddr: nil array")
	}
	called := true
	anchorOnce.Do(func() {
		called = false
		anchor.Store(arr)
	})
	if called {
		panic("vqueue: queue array address already initialized")
	}
	return nil
}

// SetQueueArrayAddrAndInit constructs a fresh queue array with the
// given capacity and attaches it as the shared anchor, returning the
// array so the caller can pass its address on to other processes. Must
// be called exactly once, before any other operation in this package.
func SetQueueArrayAddrAndInit(capacity int) (*SlotArray[PerProcess], error) {
	arr := NewSlotArray[PerProcess](capacity)
	if err := SetQueueArrayAddr(arr); err != nil {
		return nil, err
	}
	return arr, nil
}

// queueArray returns the process-wide queue array. Panics with
// ErrUninitialized's message if neither SetQueueArrayAddr nor
// SetQueueArrayAddrAndInit has run yet — consulting the anchor before
// it exists is a caller-side contract violation, not a recoverable
// condition, so it aborts rather than returning an error.
func queueArray() *SlotArray[PerProcess] {
	arr := anchor.Load()
	if arr == nil {
		panic(ErrUninitialized.Error())
	}
	return arr
}
