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
	n42errors "github.com/n42blockchain/n42evm/errors"
	"github.com/n42blockchain/n42evm/params"
	"github.com/n42blockchain/n42evm/vm/stack"
)

// This file bridges the pure functions in gas_table.go (which take plain
// values so they're easy to unit test in isolation) to the gasFunc shape
// jump_table.go's operations actually call: read the live stack/state,
// bill EIP-2929 warm/cold where relevant, then defer to the pure helper.

func gasMemoryExpansion(_ *EVMInterpreter, _ *Contract, _ *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(mem, memorySize)
}

func gasKeccak256(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	size := st.Back(1)
	words := toWordSize(size.Uint64())
	wordGas, overflow := safeMul(words, params.Keccak256WordGas)
	if overflow {
		return 0, n42errors.ErrGasUintOverflow
	}
	return safeAddErr(gas, wordGas)
}

func safeAddErr(a, b uint64) (uint64, error) {
	sum, overflow := safeAdd(a, b)
	if overflow {
		return 0, n42errors.ErrGasUintOverflow
	}
	return sum, nil
}

func addressFromStack(v *uint256.Int) types.Address { return types.BytesToAddress(v.Bytes()) }

// warmColdAccessCost applies EIP-2929's warm/cold split (Berlin+) to any
// account access, shared by every access-cost helper below.
func warmColdAccessCost(in *EVMInterpreter, addr types.Address) uint64 {
	if in.evm.StateDB().AddAddressToAccessList(addr) {
		return params.ColdAccountAccessCostEIP2929
	}
	return params.WarmStorageReadCostEIP2929
}

// accessCost resolves a pre-Berlin account-access cost across the two
// earlier repricings (EIP-150 at Tangerine Whistle, nothing since until
// Berlin folds everything into warm/cold), given the opcode's Frontier and
// post-EIP-150 flat fees. Berlin+ ignores both and uses the warm/cold split.
func accessCost(in *EVMInterpreter, addr types.Address, frontier, eip150 uint64) uint64 {
	rules := in.evm.chainRules
	if rules.IsBerlin {
		return warmColdAccessCost(in, addr)
	}
	if rules.IsTangerineWhistle {
		return eip150
	}
	return frontier
}

// balanceAccessCost is accessCost's BALANCE-specific schedule: EIP-150
// raised it to 400, independently of CALL/EXTCODE*'s 700, then EIP-1884
// (Istanbul) raised it again to 700 ahead of Berlin's warm/cold split.
func balanceAccessCost(in *EVMInterpreter, addr types.Address) uint64 {
	rules := in.evm.chainRules
	if rules.IsBerlin {
		return warmColdAccessCost(in, addr)
	}
	if rules.IsIstanbul {
		return 700
	}
	if rules.IsTangerineWhistle {
		return 400
	}
	return 20
}

// extCodeHashAccessCost is EXTCODEHASH's schedule: the opcode was
// introduced at Constantinople (400 flat), repriced to 700 by EIP-1884, then
// folded into Berlin's warm/cold split. It never existed pre-Constantinople,
// so there is no Frontier/Tangerine-Whistle branch to resolve.
func extCodeHashAccessCost(in *EVMInterpreter, addr types.Address) uint64 {
	rules := in.evm.chainRules
	if rules.IsBerlin {
		return warmColdAccessCost(in, addr)
	}
	if rules.IsIstanbul {
		return 700
	}
	return 400
}

func gasBalance(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := addressFromStack(st.Back(0))
	return balanceAccessCost(in, addr), nil
}

func gasExtCodeSize(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := addressFromStack(st.Back(0))
	return accessCost(in, addr, 20, 700), nil
}

func gasExtCodeHash(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := addressFromStack(st.Back(0))
	return extCodeHashAccessCost(in, addr), nil
}

func gasExtCodeCopy(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	length := st.Back(3)
	words := toWordSize(length.Uint64())
	wordGas, overflow := safeMul(words, params.CopyGas)
	if overflow {
		return 0, n42errors.ErrGasUintOverflow
	}
	gas, err = safeAddErr(gas, wordGas)
	if err != nil {
		return 0, err
	}
	addr := addressFromStack(st.Back(0))
	cost := accessCost(in, addr, 20, 700)
	return safeAddErr(gas, cost)
}

func gasCallDataCopy(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	words := toWordSize(st.Back(2).Uint64())
	wordGas, overflow := safeMul(words, params.CopyGas)
	if overflow {
		return 0, n42errors.ErrGasUintOverflow
	}
	return safeAddErr(gas, wordGas)
}

func gasCodeCopy(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCallDataCopy(in, c, st, mem, memorySize)
}

func gasReturnDataCopy(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCallDataCopy(in, c, st, mem, memorySize)
}

func gasMcopyDyn(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	dst, src, length := st.Back(0), st.Back(1), st.Back(2)
	return gasMcopy(mem, dst.Uint64(), src.Uint64(), length.Uint64())
}

func gasSload(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if !in.evm.chainRules.IsBerlin {
		return 0, nil
	}
	loc := st.Back(0)
	key := types.Hash(loc.Bytes32())
	_, slotWarm := in.evm.StateDB().SlotInAccessList(c.Address(), key)
	if !slotWarm {
		in.evm.StateDB().AddSlotToAccessList(c.Address(), key)
		return params.ColdSloadCostEIP2929, nil
	}
	return params.WarmStorageReadCostEIP2929, nil
}

func gasSstoreDyn(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if c.Gas <= params.SstoreSentryGasEIP2200 && in.evm.chainRules.IsIstanbul {
		return 0, n42errors.ErrOutOfGas
	}
	loc, newVal := st.Back(0), st.Back(1)
	key := types.Hash(loc.Bytes32())
	addr := c.Address()
	current := in.evm.StateDB().GetState(addr, key)

	_, slotWarm := in.evm.StateDB().SlotInAccessList(addr, key)
	if in.evm.chainRules.IsBerlin && !slotWarm {
		in.evm.StateDB().AddSlotToAccessList(addr, key)
	}

	original := in.evm.StateDB().GetCommittedState(addr, key)
	cost := gasSStore(in.evm.chainRules, original, current, *newVal, slotWarm)
	refund := sstoreRefund(in.evm.chainRules, original, current, *newVal)
	if refund > 0 {
		in.evm.StateDB().AddRefund(uint64(refund))
	} else if refund < 0 {
		in.evm.StateDB().SubRefund(uint64(-refund))
	}
	return cost, nil
}

func gasTload(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return params.WarmStorageReadCostEIP2929, nil
}

func gasTstore(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return params.WarmStorageReadCostEIP2929, nil
}

func gasExp(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	exponent := st.Back(1)
	return expGasCost(in.evm.chainRules, exponent), nil
}

func gasLog(n int) gasFunc {
	return func(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
		gas, err := memoryGasCost(mem, memorySize)
		if err != nil {
			return 0, err
		}
		gas, err = safeAddErr(gas, uint64(n)*params.LogTopicGas)
		if err != nil {
			return 0, err
		}
		size := st.Back(1)
		dataGas, overflow := safeMul(size.Uint64(), params.LogDataGas)
		if overflow {
			return 0, n42errors.ErrGasUintOverflow
		}
		return safeAddErr(gas, dataGas)
	}
}

func gasCreate(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	if in.evm.config.HasEip3860(in.evm.chainRules) {
		size := st.Back(2)
		words := toWordSize(size.Uint64())
		initGas, overflow := safeMul(words, params.InitCodeWordGasEIP3860)
		if overflow {
			return 0, n42errors.ErrGasUintOverflow
		}
		return safeAddErr(gas, initGas)
	}
	return gas, nil
}

func gasCreate2(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasCreate(in, c, st, mem, memorySize)
	if err != nil {
		return 0, err
	}
	size := st.Back(2)
	words := toWordSize(size.Uint64())
	hashGas, overflow := safeMul(words, params.Keccak256WordGas)
	if overflow {
		return 0, n42errors.ErrGasUintOverflow
	}
	return safeAddErr(gas, hashGas)
}

// gasCall bills memory expansion, the value-transfer premium, the new
// -account premium, and EIP-2929 cold-access cost, then derives how much of
// the caller's remaining gas the nested call actually gets to keep via the
// 63/64 rule. The forwarded amount is folded into the billed total (so it is
// deducted from the caller) and stashed in callGasTemp so the opcode's
// execute function knows exactly how much to hand the callee.
func gasCall(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}

	addr := addressFromStack(st.Back(1))
	value := st.Back(2)

	cost := accessCost(in, addr, 40, 700)
	gas, err = safeAddErr(gas, cost)
	if err != nil {
		return 0, err
	}

	if !value.IsZero() {
		gas, err = safeAddErr(gas, params.CallValueTransferGas)
		if err != nil {
			return 0, err
		}
		if in.evm.StateDB().Empty(addr) {
			gas, err = safeAddErr(gas, params.CallNewAccountGas)
			if err != nil {
				return 0, err
			}
		}
	}

	callCost := st.Back(0)
	forwarded, err := callGas(in.evm.chainRules.IsTangerineWhistle, c.Gas, gas, callCost)
	if err != nil {
		return 0, err
	}
	in.evm.callGasTemp = forwarded
	return safeAddErr(gas, forwarded)
}

func gasCallCode(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	addr := addressFromStack(st.Back(1))
	value := st.Back(2)
	cost := accessCost(in, addr, 40, 700)
	gas, err = safeAddErr(gas, cost)
	if err != nil {
		return 0, err
	}
	if !value.IsZero() {
		gas, err = safeAddErr(gas, params.CallValueTransferGas)
		if err != nil {
			return 0, err
		}
	}
	callCost := st.Back(0)
	forwarded, err := callGas(in.evm.chainRules.IsTangerineWhistle, c.Gas, gas, callCost)
	if err != nil {
		return 0, err
	}
	in.evm.callGasTemp = forwarded
	return safeAddErr(gas, forwarded)
}

func gasDelegateStaticCall(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	addr := addressFromStack(st.Back(1))
	cost := accessCost(in, addr, 40, 700)
	gas, err = safeAddErr(gas, cost)
	if err != nil {
		return 0, err
	}
	callCost := st.Back(0)
	forwarded, err := callGas(in.evm.chainRules.IsTangerineWhistle, c.Gas, gas, callCost)
	if err != nil {
		return 0, err
	}
	in.evm.callGasTemp = forwarded
	return safeAddErr(gas, forwarded)
}

func gasSelfdestruct(in *EVMInterpreter, c *Contract, st *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var gas uint64
	if in.evm.chainRules.IsTangerineWhistle {
		gas += params.SelfdestructGasEIP150
		beneficiary := addressFromStack(st.Back(0))
		if in.evm.StateDB().Empty(beneficiary) && !in.evm.StateDB().GetBalance(c.Address()).IsZero() {
			gas += params.CallNewAccountGas
		}
	}
	if in.evm.chainRules.IsBerlin {
		beneficiary := addressFromStack(st.Back(0))
		if in.evm.StateDB().AddAddressToAccessList(beneficiary) {
			gas += params.ColdAccountAccessCostEIP2929
		}
	}
	return gas, nil
}
