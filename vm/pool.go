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

// Uint256Pool reduces uint256.Int allocations in opcode hot paths.
var Uint256Pool = &sync.Pool{
	New: func() interface{} {
		return new(uint256.Int)
	},
}

func GetUint256() *uint256.Int {
	return Uint256Pool.Get().(*uint256.Int)
}

func PutUint256(v *uint256.Int) {
	if v != nil {
		v.Clear()
		Uint256Pool.Put(v)
	}
}

// MemoryPool provides reusable byte slices for memory expansion, bucketed
// into power-of-two size classes so PutMemory only recycles exact-fit
// buffers.
type MemoryPool struct {
	pools []*sync.Pool
}

var memPool = &MemoryPool{
	pools: make([]*sync.Pool, 20), // 2^0 .. 2^19 (1B .. 512KB)
}

func init() {
	for i := range memPool.pools {
		size := 1 << uint(i)
		memPool.pools[i] = &sync.Pool{
			New: func() interface{} {
				b := make([]byte, size)
				return &b
			},
		}
	}
}

func sizeClass(size int) int {
	if size <= 0 {
		return 0
	}
	class := 0
	s := size - 1
	for s > 0 {
		s >>= 1
		class++
	}
	if class >= len(memPool.pools) {
		return -1
	}
	return class
}

// GetMemory returns a byte slice of at least size bytes, from a pool when
// the size fits a tracked class.
func GetMemory(size int) []byte {
	class := sizeClass(size)
	if class < 0 {
		return make([]byte, size)
	}
	bp := memPool.pools[class].Get().(*[]byte)
	return (*bp)[:size]
}

// PutMemory returns b to its size-class pool if its capacity exactly
// matches a class; otherwise it is left for the garbage collector.
func PutMemory(b []byte) {
	class := sizeClass(cap(b))
	if class >= 0 && class < len(memPool.pools) && cap(b) == 1<<uint(class) {
		bp := b[:cap(b)]
		memPool.pools[class].Put(&bp)
	}
}
