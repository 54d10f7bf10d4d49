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
	n42errors "github.com/n42blockchain/n42evm/errors"
	"github.com/n42blockchain/n42evm/vm/stack"
)

// ScopeContext bundles the three pieces of mutable state one frame's
// dispatch loop threads through every instruction: its operand stack, its
// linear memory, and the Contract it is executing.
type ScopeContext struct {
	Memory   *Memory
	Stack    *stack.Stack
	Contract *Contract
}

// VM holds the read-only flag STATICCALL propagates down the call tree.
// It is a separate, small type (rather than a field directly on
// EVMInterpreter) so the get/set/restore pattern below is unit-testable in
// isolation from the rest of the interpreter.
type VM struct {
	readOnly bool
}

func (in *VM) getReadonly() bool { return in.readOnly }

// setReadonly sets the flag to b and returns a closure that restores the
// previous value — callers defer the closure so nested nested calls can
// raise the flag for their own subtree without leaking it back up.
func (in *VM) setReadonly(b bool) func() {
	prev := in.readOnly
	in.readOnly = b
	return func() { in.readOnly = prev }
}

// disableReadonly sets the flag to false and returns the restore closure;
// nothing in the package calls it.
func (in *VM) disableReadonly() func() { return in.setReadonly(false) }

// noop returns a no-op restore closure, used when a call path needs the
// same call shape as setReadonly but isn't actually changing the flag.
func (in *VM) noop() func() { return func() {} }

// EVMInterpreter runs one call frame's bytecode against a JumpTable until it
// halts, reverts, or faults.
type EVMInterpreter struct {
	VM

	evm   *EVM
	table *JumpTable

	returnData []byte
}

// NewEVMInterpreter builds the interpreter for evm, selecting the dispatch
// table for evm's active rules.
func NewEVMInterpreter(evm *EVM) *EVMInterpreter {
	return &EVMInterpreter{evm: evm, table: GetCachedJumpTable(evm.chainRules)}
}

// Run executes contract's code against input, returning its output and
// halting reason. readOnly, once true anywhere on the call stack, disables
// every state-mutating opcode for the remainder of this frame and everything
// it calls.
func (in *EVMInterpreter) Run(contract *Contract, input []byte, readOnly bool) (ret []byte, err error) {
	in.evm.depth++
	defer func() { in.evm.depth-- }()

	if readOnly && !in.readOnly {
		defer in.setReadonly(true)()
	}

	in.returnData = nil

	if tracer := in.evm.config.Tracer; tracer != nil && in.evm.depth == 1 {
		var toAddr [20]byte
		copy(toAddr[:], contract.Address().Bytes())
		var fromAddr [20]byte
		copy(fromAddr[:], contract.Caller().Bytes())
		var valBytes []byte
		if contract.Value() != nil {
			vb := contract.Value().Bytes32()
			valBytes = vb[:]
		}
		tracer.CaptureStart(fromAddr, toAddr, len(contract.Code) > 0 && contract.CodeAddr == nil, input, contract.Gas, valBytes)
		defer func() { tracer.CaptureEnd(ret, contract.Gas, err) }()
	}

	if len(contract.Code) == 0 {
		return nil, nil
	}

	var (
		op          OpCode
		mem         = NewMemory()
		locStack    = stack.New()
		callContext = &ScopeContext{Memory: mem, Stack: locStack, Contract: contract}
		pc          = uint64(0)
		cost        uint64
	)
	contract.Input = input

	defer func() {
		stack.ReturnNormalStack(locStack)
	}()

	for {
		if in.evm.Cancelled() {
			return nil, n42errors.ErrExecutionReverted
		}

		op = contract.GetOp(pc)
		operation := in.table[op]
		if operation == nil {
			return nil, n42errors.ErrInvalidOpcode
		}

		if sLen := locStack.Len(); sLen < operation.minStack {
			return nil, n42errors.ErrStackUnderflow
		} else if sLen > operation.maxStack {
			return nil, n42errors.ErrStackOverflow
		}

		if in.readOnly && isStateModifyingOp(op) {
			return nil, n42errors.ErrWriteProtection
		}

		cost = operation.constantGas
		if !contract.UseGas(cost) {
			return nil, n42errors.ErrOutOfGas
		}

		var memorySize uint64
		if operation.memorySize != nil {
			size, overflow := operation.memorySize(locStack)
			if overflow {
				return nil, n42errors.ErrGasUintOverflow
			}
			words := toWordSize(size)
			if memSize, overflow := safeMul(words, 32); overflow {
				return nil, n42errors.ErrGasUintOverflow
			} else {
				memorySize = memSize
			}
		}

		if operation.dynamicGas != nil {
			var dynCost uint64
			dynCost, err = operation.dynamicGas(in, contract, locStack, mem, memorySize)
			cost += dynCost
			if err != nil || !contract.UseGas(dynCost) {
				if err == nil {
					err = n42errors.ErrOutOfGas
				}
				return nil, err
			}
		}
		if memorySize > 0 {
			mem.Resize(memorySize)
		}

		if tracer := in.evm.config.Tracer; tracer != nil {
			tracer.CaptureState(pc, op, contract.Gas, cost, callContext, in.returnData, in.evm.depth, nil)
		}

		res, err := operation.execute(&pc, in, callContext)
		if err != nil {
			if tracer := in.evm.config.Tracer; tracer != nil {
				tracer.CaptureFault(pc, op, contract.Gas, cost, callContext, in.evm.depth, err)
			}
			return res, err
		}
		pc++

		if res != nil {
			return res, nil
		}
		if op == STOP || op == RETURN || op == REVERT || op == SELFDESTRUCT {
			return res, nil
		}
	}
}

// isStateModifyingOp reports whether op is forbidden under STATICCALL's
// static-context restriction.
func isStateModifyingOp(op OpCode) bool {
	switch op {
	case SSTORE, TSTORE, LOG0, LOG1, LOG2, LOG3, LOG4, CREATE, CREATE2, SELFDESTRUCT:
		return true
	}
	return false
}
