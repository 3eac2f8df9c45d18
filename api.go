// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vqueue

// RegisterProcess allocates a new row in the shared queue array and
// returns its erased id. Returns ErrWouldBlock if the array is full.
// Panics if the anchor has not been set.
func RegisterProcess() (ProcessID, error) {
	arr := queueArray()
	ref, err := arr.Push(*NewPerProcess(DefaultMailboxCapacity, DefaultRoutesCapacity))
	if err != nil {
		return 0, err
	}
	return ProcessID(ref.IntoID()), nil
}

// SetPid records the OS process id owning the mailbox identified by id.
func SetPid(id ProcessID, pid uint64) error {
	arr := queueArray()
	ref := FromID[PerProcess](arr, uint32(id))
	ref.Get().SetPid(pid)
	ref.IntoID()
	return nil
}

// DequePush enqueues msg into the mailbox identified by id. Returns
// ErrWouldBlock if the mailbox is full.
func DequePush(id ProcessID, msg *Message) error {
	arr := queueArray()
	ref := FromID[PerProcess](arr, uint32(id))
	err := ref.Get().Push(msg)
	ref.IntoID()
	return err
}

// DequePop removes and returns the oldest message from the mailbox
// identified by id. Returns ErrWouldBlock if the mailbox is empty.
func DequePop(id ProcessID) (Message, error) {
	arr := queueArray()
	ref := FromID[PerProcess](arr, uint32(id))
	msg, err := ref.Get().Pop()
	ref.IntoID()
	return msg, err
}

// MapAddEntry inserts a route from msgType to ntfID into the routing
// table of the process identified by id. Returns ErrWouldBlock if the
// routing table is full.
func MapAddEntry(id ProcessID, msgType, ntfID uint64) error {
	arr := queueArray()
	ref := FromID[PerProcess](arr, uint32(id))
	err := ref.Get().AddRoute(msgType, ntfID)
	ref.IntoID()
	return err
}

// MapGetNtfID looks up the notification target registered for msgType
// in the routing table of the process identified by id. Returns
// ErrNotFound if no entry matches.
func MapGetNtfID(id ProcessID, msgType uint64) (uint64, error) {
	arr := queueArray()
	ref := FromID[PerProcess](arr, uint32(id))
	ntfID, err := ref.Get().GetNtf(msgType)
	ref.IntoID()
	return ntfID, err
}

// MapPopNtfID removes and returns the notification target registered
// for msgType in the routing table of the process identified by id.
// Returns ErrNotFound if no entry matches.
func MapPopNtfID(id ProcessID, msgType uint64) (uint64, error) {
	arr := queueArray()
	ref := FromID[PerProcess](arr, uint32(id))
	ntfID, err := ref.Get().PopRoute(msgType)
	ref.IntoID()
	return ntfID, err
}
