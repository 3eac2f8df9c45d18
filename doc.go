// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package vqueue implements the core data structures of a shared-memory
// IPC substrate: a fixed-capacity array of per-process mailboxes, each
// holding a bounded lock-free double-ended queue of fixed-size
// messages, plus a per-process routing table mapping message types to
// notification targets.
//
// The substrate is designed to live in a memory region mapped into
// multiple address spaces, so that processes on the same host can
// exchange messages without a kernel round trip on the fast path.
// Mapping the region itself, ELF/relocation handling, and any
// peer-notification transport are outside this package's scope — it
// provides the data structures and their operations, not the plumbing
// that gets a pointer to a shared page in the first place.
//
// # Quick Start
//
//	arr, err := vqueue.SetQueueArrayAddrAndInit(256)
//	id, err := vqueue.RegisterProcess()
//	vqueue.SetPid(id, uint64(os.Getpid()))
//
//	msg := vqueue.Message{Sender: uint64(id), MsgType: 7}
//	err = vqueue.DequePush(id, &msg)
//
//	received, err := vqueue.DequePop(id)
//	if vqueue.IsWouldBlock(err) {
//	    // mailbox empty
//	}
//
// # Basic Usage
//
// The lowest layer is a deque of fixed-size messages:
//
//	q := vqueue.NewLockFreeDeque[vqueue.Message](1024)
//	err := q.PushBack(&msg)
//	if vqueue.IsWouldBlock(err) {
//	    // full
//	}
//	v, err := q.PopFront()
//
// A SlotArray is a fixed-capacity pool of reference-counted cells:
//
//	pool := vqueue.NewSlotArray[vqueue.RouteEntry](64)
//	ref, err := pool.Push(vqueue.RouteEntry{MsgType: 7, NtfID: 100})
//	id := ref.IntoID()          // erase to a bare index
//	ref2 := vqueue.FromID(pool, id)  // reconstruct
//	ref2.Get().NtfID
//	ref2.Drop()
//
// PerProcess composes a mailbox with a routing table:
//
//	pp := vqueue.NewPerProcess(64, 16)
//	pp.AddRoute(7, 100)
//	pp.AddRoute(vqueue.SentinelAny, 999)
//	ntf, _ := pp.GetNtf(7)   // 100: matched at index 0 before the scan reaches the wildcard
//	ntf, _ = pp.GetNtf(42)   // 999: index 0 doesn't match 42, index 1 is the wildcard
//
// The external operation set (RegisterProcess, SetPid, DequePush,
// DequePop, MapAddEntry, MapGetNtfID, MapPopNtfID) operates on a single
// process-wide SlotArray[PerProcess] reached through ProcessID, an
// erased SlotRef index rather than a live handle — the shape an IPC
// peer on the other side of a shared page would actually receive.
//
// # Shared-Memory Composition
//
// Before any other operation, the process-wide anchor must be
// established exactly once, with [SetQueueArrayAddr] (attach to an
// array another process already placed in the shared region) or
// [SetQueueArrayAddrAndInit] (construct a fresh one). A second call to
// either, or any other operation before the first call, panics — this
// package has nothing to fall back to and no diagnostic short of that.
//
// # Error Handling
//
// Operations return [ErrWouldBlock] when a deque or slot array is at
// capacity, and [ErrNotFound] when a routing lookup or removal finds no
// match. [ErrWouldBlock] is sourced from [code.hybscloud.com/iox] for
// ecosystem consistency with [IsWouldBlock], [IsSemantic] and
// [IsNonFailure]. Contract violations — an out-of-range id, an
// operation before the anchor is set, a second anchor setup — panic
// with a "vqueue: "-prefixed message rather than returning an error;
// these are caller bugs, not runtime conditions to recover from.
// Unpaired id erasure (an id reconstructed twice, or one that was never
// erased) is not detected by [FromID].
//
// # Thread Safety
//
// LockFreeDeque supports any number of concurrent producer and
// consumer goroutines. SlotArray supports any number of concurrent
// Push/Clone/Drop callers. A PerProcess's pid and routes are
// independent of its mailbox; no ordering between the three is
// promised or required.
//
// # Known Failure Mode
//
// Under fully saturated multi-producer multi-consumer churn, the
// deque's retry/backoff protocol can livelock: a cell stuck in a
// transient state prevents the opposing end from making progress. This
// package documents the failure mode rather than working around it —
// callers operating at or near capacity must not assume
// starvation-freedom.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives, not
// the acquire/release orderings on plain fields that this package's
// algorithms rely on for correctness. Stress tests that saturate the
// deque or slot array are gated behind [RaceEnabled] and skipped under
// -race to avoid false positives; they still run, and still matter,
// without it.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions during CAS backoff.
package vqueue
