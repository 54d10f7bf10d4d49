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
	"github.com/holiman/uint256"

	"github.com/n42blockchain/n42evm/common/types"
	"github.com/n42blockchain/n42evm/vm/evmtypes"
)

// VMInterpreter is the dispatch-loop surface the Orchestrator drives: run
// one frame's bytecode to completion (halt, revert, or exceptional error).
type VMInterpreter interface {
	Run(contract *Contract, input []byte, readOnly bool) (ret []byte, err error)
}

// VMCaller is the nested-call surface: CALL/CALLCODE/DELEGATECALL/
// STATICCALL, each returning leftover gas and the call's return data.
type VMCaller interface {
	Call(caller ContractRef, addr types.Address, input []byte, gas uint64, value *uint256.Int) (ret []byte, leftOverGas uint64, err error)
	CallCode(caller ContractRef, addr types.Address, input []byte, gas uint64, value *uint256.Int) (ret []byte, leftOverGas uint64, err error)
	DelegateCall(caller ContractRef, addr types.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error)
	StaticCall(caller ContractRef, addr types.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error)
}

// VMContext exposes the block/tx/state context nested calls and opcodes read.
type VMContext interface {
	StateDB() evmtypes.IntraBlockState
	Context() evmtypes.BlockContext
	TxContext() evmtypes.TxContext
	Depth() int
}

// VMExecutor is the top-level entry points the Orchestrator (transaction
// processor) calls to run a message: Create for contract creation, Call for
// everything else.
type VMExecutor interface {
	Create(caller ContractRef, code []byte, gas uint64, value *uint256.Int) (ret []byte, contractAddr types.Address, leftOverGas uint64, err error)
	Create2(caller ContractRef, code []byte, gas uint64, endowment *uint256.Int, salt *uint256.Int) (ret []byte, contractAddr types.Address, leftOverGas uint64, err error)
}

// VMResetter lets a host reuse one EVM value across multiple messages in
// the same block, avoiding a fresh allocation per transaction.
type VMResetter interface {
	Reset(txCtx evmtypes.TxContext, statedb evmtypes.IntraBlockState)
}

// VMCanceller lets a host abort a long-running call from another goroutine
// (an RPC timeout, for instance); checked at the top of every interpreter
// loop iteration.
type VMCanceller interface {
	Cancel()
	Cancelled() bool
}

// FullVM is every interface above, the contract *EVM satisfies in full.
type FullVM interface {
	VMCaller
	VMContext
	VMExecutor
	VMResetter
	VMCanceller
}

var (
	_ VMCaller    = (*EVM)(nil)
	_ VMContext   = (*EVM)(nil)
	_ VMExecutor  = (*EVM)(nil)
	_ VMResetter  = (*EVM)(nil)
	_ VMCanceller = (*EVM)(nil)
	_ FullVM      = (*EVM)(nil)

	_ VMInterpreter = (*EVMInterpreter)(nil)
)
