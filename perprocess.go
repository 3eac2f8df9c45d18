// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vqueue

import "code.hybscloud.com/atomix"

// DefaultMailboxCapacity and DefaultRoutesCapacity size the mailbox and
// routing table of a PerProcess allocated via RegisterProcess. The
// original source fixes these as const generics (QUEUE_CAPACITY,
// ARRAY_LEN); this package exposes the equivalent as package-level
// constants since RegisterProcess takes no per-call sizing argument.
const (
	DefaultMailboxCapacity = 64
	DefaultRoutesCapacity  = 16
)

// PerProcess is one row of the process-wide queue array: a mailbox plus
// a routing table, indexed by a ProcessID erased from a SlotRef into
// the root array.
type PerProcess struct {
	Mailbox LockFreeDeque[Message]
	pid     atomix.Uint64
	_       padShort // keep pid off the cache line holding the Routes header
	Routes  SlotArray[RouteEntry]
}

// NewPerProcess builds a PerProcess with the given mailbox and routing
// table capacities.
func NewPerProcess(mailboxCapacity, routesCapacity int) *PerProcess {
	return &PerProcess{
		Mailbox: *NewLockFreeDeque[Message](mailboxCapacity),
		Routes:  *NewSlotArray[RouteEntry](routesCapacity),
	}
}

// Pid returns the OS process id registered via SetPid, or 0 if none has
// been set yet.
func (p *PerProcess) Pid() uint64 {
	return p.pid.LoadAcquire()
}

// SetPid records the OS process id owning this mailbox.
func (p *PerProcess) SetPid(pid uint64) {
	p.pid.StoreRelease(pid)
}

// Push enqueues msg at the back of the mailbox. Returns ErrWouldBlock
// if the mailbox is full.
func (p *PerProcess) Push(msg *Message) error {
	return p.Mailbox.PushBack(msg)
}

// Pop removes and returns the message at the front of the mailbox.
// Returns ErrWouldBlock if the mailbox is empty.
func (p *PerProcess) Pop() (Message, error) {
	return p.Mailbox.PopFront()
}

// AddRoute inserts a mapping from msgType to ntfID into the routing
// table. Returns ErrWouldBlock if the routing table is full.
func (p *PerProcess) AddRoute(msgType, ntfID uint64) error {
	ref, err := p.Routes.Push(RouteEntry{MsgType: msgType, NtfID: ntfID})
	if err != nil {
		return err
	}
	ref.IntoID()
	return nil
}

// GetNtf returns the notification target registered for msgType. A
// RouteEntry carrying SentinelAny matches any msgType and is returned
// immediately if encountered first — scan order is preserved as
// written, there is no preference for an exact match over an
// earlier-indexed wildcard. Returns ErrNotFound if no entry matches.
func (p *PerProcess) GetNtf(msgType uint64) (uint64, error) {
	for i := 0; i < p.Routes.Cap(); i++ {
		v := p.Routes.get(uint32(i))
		if v == nil {
			continue
		}
		if v.MsgType == SentinelAny || v.MsgType == msgType {
			return v.NtfID, nil
		}
	}
	return 0, ErrNotFound
}

// PopRoute removes and returns the notification target registered for
// msgType, via the first exact match (SentinelAny entries do not
// satisfy PopRoute — only an exact MsgType match is removable).
// Returns ErrNotFound if no entry matches.
func (p *PerProcess) PopRoute(msgType uint64) (uint64, error) {
	for i := 0; i < p.Routes.Cap(); i++ {
		index := uint32(i)
		v := p.Routes.get(index)
		if v == nil || v.MsgType != msgType {
			continue
		}
		ntfID := v.NtfID
		ref := FromID[RouteEntry](&p.Routes, index)
		ref.Drop()
		return ntfID, nil
	}
	return 0, ErrNotFound
}
