// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"sync"

	"github.com/holiman/uint256"
)

// pool holds reusable Memory instances. The interpreter does not draw from
// it: Run allocates each frame's Memory with NewMemory.
var pool = sync.Pool{
	New: func() interface{} { return NewMemory() },
}

// Memory is the byte-addressable, word-expandable linear memory a frame
// executes against. It grows only in whole 32-byte words and never shrinks
// within a frame; expansion cost is billed by the gas table, not here.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

// NewMemory returns an empty Memory pre-sized to avoid the first few
// reallocations most frames incur.
func NewMemory() *Memory {
	return &Memory{
		store: make([]byte, 0, 4*1024),
	}
}

// Len returns the current size in bytes.
func (m *Memory) Len() int { return len(m.store) }

// Resize grows the memory to size bytes if it is currently smaller. size
// must already be word-aligned by the caller (see toWordSize in the gas
// table); Resize itself never shrinks.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) >= size {
		return
	}
	m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
}

// Set writes data into memory at offset, for size bytes. A short data slice
// is zero-padded; size 0 is a no-op regardless of data's length.
func (m *Memory) Set(offset, size uint64, data []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		return
	}
	n := copy(m.store[offset:offset+size], data)
	for ; uint64(n) < size; n++ {
		m.store[offset+uint64(n)] = 0
	}
}

// Set32 writes val as a 32-byte big-endian word at offset, used by PUSH-like
// opcodes that place a full word (MSTORE).
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		return
	}
	var buf [32]byte
	val.WriteToSlice(buf[:])
	copy(m.store[offset:offset+32], buf[:])
}

// GetCopy returns an independent copy of size bytes from offset, or nil if
// size is 0 or the range lies entirely beyond the current memory.
func (m *Memory) GetCopy(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if int64(len(m.store)) <= offset {
		return nil
	}
	end := offset + size
	if end > int64(len(m.store)) {
		end = int64(len(m.store))
	}
	cp := make([]byte, size)
	copy(cp, m.store[offset:end])
	return cp
}

// GetPtr returns a slice aliasing the underlying storage directly; callers
// must not retain it across a later Resize, which may reallocate.
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Data returns the full backing slice.
func (m *Memory) Data() []byte { return m.store }

// Copy moves length bytes from src to dst within the same memory, correctly
// handling overlap (Go's builtin copy already does, front-to-back).
func (m *Memory) Copy(dst, src, length uint64) {
	if length == 0 {
		return
	}
	copy(m.store[dst:dst+length], m.store[src:src+length])
}

// Reset empties the memory and clears the cached expansion gas cost,
// returning it to a freshly-allocated-looking state for pooled reuse.
func (m *Memory) Reset() {
	m.store = m.store[:0]
	m.lastGasCost = 0
}
