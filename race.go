// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package vqueue

// RaceEnabled is true when the race detector is active.
// Used by tests to skip saturated MPMC stress scenarios on the deque
// and slot array, which trigger false positives: the race detector
// tracks explicit synchronization primitives, not the acquire/release
// orderings on the state words that actually establish happens-before
// here.
const RaceEnabled = true
