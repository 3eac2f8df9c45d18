// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vqueue

// pad is cache line padding to prevent false sharing between
// independently-contended atomic fields (e.g. a deque's head and tail
// indices, which are written by disjoint sets of goroutines).
type pad [64]byte

// padShort is padding to fill a cache line after an 8-byte field.
type padShort [64 - 8]byte
