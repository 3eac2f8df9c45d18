// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vqueue

import "code.hybscloud.com/atomix"

// Per-cell state machine for a slot array entry.
// EMPTY -> PENDING -> READY -> PENDING -> EMPTY. PENDING is used on
// both legs: before the first READY (construction) and after rc drops
// to zero, before the stored value is dropped (destruction).
const (
	slotEmpty uint32 = iota
	slotReady
	slotPending
)

type slotCell[T any] struct {
	state atomix.Uint32
	rc    atomix.Int32
	value T
}

// SlotArray is a fixed-capacity pool of cells, each either empty or
// holding one value of T together with a reference count. Pushing a
// value returns a SlotRef, a handle sharing ownership of the cell; the
// cell is reclaimed when the last SlotRef referencing it is dropped.
//
// Push does a bounded linear scan from index 0, so the lowest empty
// index always wins — placement is deterministic and early-registered
// entries get low, stable ids.
type SlotArray[T any] struct {
	slots []slotCell[T]
}

// NewSlotArray creates a slot array with room for n entries. Panics if
// n < 1.
func NewSlotArray[T any](n int) *SlotArray[T] {
	if n < 1 {
		panic("vqueue: slot array capacity must be >= 1")
	}
	return &SlotArray[T]{slots: make([]slotCell[T], n)}
}

// Cap returns the slot array's fixed capacity.
func (a *SlotArray[T]) Cap() int {
	return len(a.slots)
}

// Push inserts v into the first empty cell and returns a SlotRef to it.
// Returns ErrWouldBlock if every cell is occupied.
func (a *SlotArray[T]) Push(v T) (SlotRef[T], error) {
	for i := range a.slots {
		cell := &a.slots[i]
		if !cell.state.CompareAndSwapAcqRel(slotEmpty, slotPending) {
			continue
		}
		cell.value = v
		cell.state.StoreRelease(slotReady)
		if prev := cell.rc.AddAcqRel(1) - 1; prev != 0 {
			panic("vqueue: slot array cell had nonzero rc before first reference")
		}
		return SlotRef[T]{array: a, index: uint32(i)}, nil
	}
	var zero SlotRef[T]
	return zero, ErrWouldBlock
}

// get returns a pointer to the stored value if the cell at index is
// READY, or nil otherwise. The READY check is double-checked around
// the read to catch a concurrent transition into PENDING.
func (a *SlotArray[T]) get(index uint32) *T {
	cell := &a.slots[index]
	if cell.state.LoadAcquire() != slotReady {
		return nil
	}
	v := &cell.value
	if cell.state.LoadAcquire() != slotReady {
		return nil
	}
	return v
}

// delete performs the destruction leg of a cell whose rc has reached
// zero: it requires the cell already be in PENDING (set by the caller
// in SlotRef.Drop immediately after observing rc hit zero) and resets
// it to EMPTY.
func (a *SlotArray[T]) delete(index uint32) {
	cell := &a.slots[index]
	var zero T
	cell.value = zero
	cell.state.StoreRelease(slotEmpty)
}

// SlotRef is a reference-counted handle to a SlotArray cell. Cloning
// increments the cell's rc; dropping decrements it; when the count
// falls to zero the dropping party reclaims the cell in place.
type SlotRef[T any] struct {
	array *SlotArray[T]
	index uint32
}

// Get returns a pointer to the referenced value. Safe for as long as
// this SlotRef (or any clone of it) is held: the rc contribution
// guarantees the cell stays READY.
func (r SlotRef[T]) Get() *T {
	v := r.array.get(r.index)
	if v == nil {
		panic("vqueue: SlotRef referenced a cell that is not READY")
	}
	return v
}

// Clone increments the cell's reference count and returns a new
// SlotRef sharing ownership of the same cell.
func (r SlotRef[T]) Clone() SlotRef[T] {
	prev := r.array.slots[r.index].rc.AddAcqRel(1) - 1
	if prev < 1 {
		panic("vqueue: SlotRef.Clone on a cell with no prior owner")
	}
	return SlotRef[T]{array: r.array, index: r.index}
}

// Drop releases this SlotRef's ownership contribution. When the last
// reference is dropped, the cell's value is destroyed and the cell is
// returned to the EMPTY state, available for a future Push.
func (r SlotRef[T]) Drop() {
	cell := &r.array.slots[r.index]
	prev := cell.rc.AddAcqRel(-1) + 1
	if prev == 1 {
		if !cell.state.CompareAndSwapAcqRel(slotReady, slotPending) {
			panic("vqueue: SlotRef.Drop observed a cell not in READY state")
		}
		r.array.delete(r.index)
	}
}

// IntoID erases this SlotRef to its bare integer index, preserving its
// rc contribution so an equal-and-opposite FromID restores it without
// net change. The caller must not use this SlotRef value again; it is
// the Go-native reading of a Rust `mem::forget` — there is no
// destructor to suppress, so IntoID is simply the last use of the
// value.
func (r SlotRef[T]) IntoID() uint32 {
	return r.index
}

// FromID reconstructs a SlotRef at the given index within array,
// without touching rc. id must have come from a prior IntoID call on a
// SlotRef over the same array, and each id must be reconstructed at
// most once per IntoID — reconstructing an id that was never erased,
// or erasing the same SlotRef twice, is a caller-side contract
// violation this package cannot detect.
func FromID[T any](array *SlotArray[T], id uint32) SlotRef[T] {
	if int(id) >= len(array.slots) {
		panic("vqueue: FromID: id out of bounds")
	}
	return SlotRef[T]{array: array, index: id}
}
