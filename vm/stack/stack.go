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

// Package stack implements the 256-bit-word operand stack the frame
// interpreter evaluates against, capped at 1024 entries.
package stack

import (
	"sync"

	"github.com/holiman/uint256"
)

// Stack is a 256-bit-word LIFO with a fixed maximum depth of 1024, enforced
// by callers (the interpreter checks before Push/PushN, not Stack itself).
type Stack struct {
	data []uint256.Int
}

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// New returns an empty Stack, reused from a pool when possible.
func New() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnNormalStack resets s and returns it to the pool.
func ReturnNormalStack(s *Stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}

func (s *Stack) Push(d *uint256.Int) {
	s.data = append(s.data, *d)
}

func (s *Stack) PushN(ds ...uint256.Int) {
	s.data = append(s.data, ds...)
}

func (s *Stack) Pop() uint256.Int {
	n := len(s.data) - 1
	v := s.data[n]
	s.data = s.data[:n]
	return v
}

func (s *Stack) Len() int { return len(s.data) }

func (s *Stack) Cap() int { return cap(s.data) }

// Swap exchanges the top element with the n-th element below it (Swap(1)
// swaps top and second-from-top, matching SWAP1's semantics).
func (s *Stack) Swap(n int) {
	top := len(s.data) - 1
	s.data[top], s.data[top-n] = s.data[top-n], s.data[top]
}

// Dup pushes a copy of the n-th element from the top (Dup(1) duplicates the
// current top, matching DUP1's semantics).
func (s *Stack) Dup(n int) {
	s.data = append(s.data, s.data[len(s.data)-n])
}

// Peek returns a pointer to the top element without popping it.
func (s *Stack) Peek() *uint256.Int {
	return &s.data[len(s.data)-1]
}

// Back returns a pointer to the n-th element from the top; Back(0) is the
// same element Peek returns.
func (s *Stack) Back(n int) *uint256.Int {
	return &s.data[len(s.data)-1-n]
}

// Reset empties the stack without releasing its backing array.
func (s *Stack) Reset() {
	s.data = s.data[:0]
}

// Data exposes the underlying slice, bottom-to-top, for tracers and tests.
func (s *Stack) Data() []uint256.Int {
	return s.data
}

// ReturnStack holds PC values for the call-frame-local JUMP/RETURN bookkeeping
// EOF-style subroutines would use; kept as a plain uint32 LIFO so callers
// needing valid-jump-destination bookkeeping can build on it without pulling
// in the full word stack.
type ReturnStack struct {
	data []uint32
}

var returnStackPool = sync.Pool{
	New: func() interface{} {
		return &ReturnStack{data: make([]uint32, 0, 10)}
	},
}

func NewReturnStack() *ReturnStack {
	return returnStackPool.Get().(*ReturnStack)
}

func ReturnRStack(rs *ReturnStack) {
	rs.data = rs.data[:0]
	returnStackPool.Put(rs)
}

func (rs *ReturnStack) Push(d uint32) {
	rs.data = append(rs.data, d)
}

func (rs *ReturnStack) Pop() uint32 {
	n := len(rs.data) - 1
	v := rs.data[n]
	rs.data = rs.data[:n]
	return v
}

func (rs *ReturnStack) Data() []uint32 {
	return rs.data
}
