// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vqueue

// Message is the fixed-size payload carried by a PerProcess mailbox.
// Trivially copyable: no pointers, no variable-length fields.
type Message struct {
	Sender    uint64
	MsgType   uint64
	ReplyType uint64
	Data      [8]uint64
}

// RouteEntry maps one message type to a notification target. Stored in
// a PerProcess's Routes slot array.
type RouteEntry struct {
	MsgType uint64
	NtfID   uint64
}

// SentinelAny is the wildcard MsgType: a RouteEntry carrying it matches
// any lookup, regardless of the requested message type.
const SentinelAny uint64 = ^uint64(0)
