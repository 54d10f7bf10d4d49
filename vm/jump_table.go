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
	"github.com/n42blockchain/n42evm/params"
	"github.com/n42blockchain/n42evm/vm/stack"
)

type (
	executionFunc  func(pc *uint64, interp *EVMInterpreter, scope *ScopeContext) ([]byte, error)
	gasFunc        func(interp *EVMInterpreter, contract *Contract, stack *stack.Stack, mem *Memory, memorySize uint64) (uint64, error)
	memorySizeFunc func(stack *stack.Stack) (size uint64, overflow bool)
)

// operation is one opcode's full behavior: how to execute it, what it costs,
// how much stack it needs, and how much memory it touches. constantGas is
// billed unconditionally; dynamicGas (when set) is billed on top of it after
// memory has been sized by memorySize.
type operation struct {
	execute     executionFunc
	constantGas uint64
	dynamicGas  gasFunc

	minStack int
	maxStack int

	memorySize memorySizeFunc
}

// JumpTable is a 256-entry dispatch table indexed directly by opcode byte.
// It is immutable once constructed; each hardfork gets its own table built
// by copying the prior fork's and layering changes on top.
type JumpTable [256]*operation

// copyJumpTable returns an independent copy of jt, so a later fork can
// overwrite individual entries without mutating the table it was derived
// from.
func copyJumpTable(jt *JumpTable) *JumpTable {
	var out JumpTable
	for i, op := range jt {
		if op == nil {
			continue
		}
		cp := *op
		out[i] = &cp
	}
	return &out
}

func minStack(pops, pushes int) int { return pops }
func maxStack(pops, pushes int) int { return params.StackLimit - pushes + pops }
