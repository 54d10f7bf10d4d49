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
)

// ContractRef is anything that can stand in for an account on one side of a
// call: a live Contract frame, or a bare AccountRef for addresses that don't
// have code (the transaction sender, a plain value transfer's recipient).
type ContractRef interface {
	Address() types.Address
}

// AccountRef implements ContractRef for an address with no associated
// Contract frame.
type AccountRef types.Address

func (ar AccountRef) Address() types.Address { return (types.Address)(ar) }

// Contract is the running state of one frame: its code, remaining gas, and
// the caller/value/input it was invoked with. CALL, DELEGATECALL, and
// CALLCODE each construct one per nested invocation.
type Contract struct {
	CallerAddress types.Address
	caller        ContractRef
	self          ContractRef

	jumpdests map[types.Hash][]uint64 // JUMPDEST analysis cache, shared with the calling frame
	analysis  []uint64                // this contract's own analysis, computed lazily

	Code     []byte
	CodeHash types.Hash
	CodeAddr *types.Address
	Input    []byte

	Gas   uint64
	value *uint256.Int

	skipAnalysis bool
}

// NewContract builds a fresh frame. skipAnalysis disables JUMPDEST caching,
// used by gas-estimation callers that never actually execute the code.
func NewContract(caller, object ContractRef, value *uint256.Int, gas uint64, skipAnalysis bool) *Contract {
	c := &Contract{caller: caller, self: object, Gas: gas, value: value, skipAnalysis: skipAnalysis}

	if parent, ok := caller.(*Contract); ok && parent.jumpdests != nil {
		c.jumpdests = parent.jumpdests
	} else {
		c.jumpdests = make(map[types.Hash][]uint64)
	}
	c.CallerAddress = caller.Address()
	return c
}

// AsDelegate reconfigures c to execute with the calling frame's sender and
// value, implementing DELEGATECALL's storage/context-inheriting semantics.
func (c *Contract) AsDelegate() *Contract {
	parent := c.caller.(*Contract)
	c.CallerAddress = parent.CallerAddress
	c.value = parent.value
	return c
}

// GetOp returns the opcode at position n, or STOP past the end of Code (the
// implicit halt every EVM program has beyond its last byte).
func (c *Contract) GetOp(n uint64) OpCode {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n])
	}
	return STOP
}

// Caller returns the address that invoked this frame.
func (c *Contract) Caller() types.Address { return c.CallerAddress }

// UseGas deducts gas from the frame's remaining balance, reporting false
// (without deducting) if that would drive it negative.
func (c *Contract) UseGas(gas uint64) bool {
	if c.Gas < gas {
		return false
	}
	c.Gas -= gas
	return true
}

// Address returns the account this frame's code is executing as (`this`,
// i.e. ADDRESS and SLOAD/SSTORE's implicit account).
func (c *Contract) Address() types.Address { return c.self.Address() }

// Value returns the ether value this frame was invoked with (CALLVALUE).
func (c *Contract) Value() *uint256.Int { return c.value }

// SetCallCode sets the code a frame executes, distinct from Address when a
// DELEGATECALL/CALLCODE's code address differs from the storage context.
func (c *Contract) SetCallCode(addr *types.Address, hash types.Hash, code []byte) {
	c.Code = code
	c.CodeHash = hash
	c.CodeAddr = addr
}

// validJumpdest reports whether dest is both in-bounds and a JUMPDEST,
// lazily running (and caching, unless skipAnalysis) the linear bytecode
// scan PUSH-immediate bytes must be excluded from.
func (c *Contract) validJumpdest(dest *uint256.Int) bool {
	udest, overflow := dest.Uint64WithOverflow()
	if overflow || udest >= uint64(len(c.Code)) {
		return false
	}
	if OpCode(c.Code[udest]) != JUMPDEST {
		return false
	}
	return c.isCode(udest)
}

// isCode reports whether position udest in Code is a genuine instruction
// boundary rather than a byte embedded in a preceding PUSH's immediate.
func (c *Contract) isCode(udest uint64) bool {
	if c.skipAnalysis {
		return isInstructionBoundary(codeBitmap(c.Code), udest)
	}
	if c.analysis == nil {
		if cached, ok := c.jumpdests[c.CodeHash]; ok {
			c.analysis = cached
		} else {
			c.analysis = codeBitmap(c.Code)
			if c.CodeHash != (types.Hash{}) {
				c.jumpdests[c.CodeHash] = c.analysis
			}
		}
	}
	return isInstructionBoundary(c.analysis, udest)
}
