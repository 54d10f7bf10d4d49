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

// Package vm implements the bytecode interpreter: the operand stack and
// memory, the opcode dispatch table, the gas table, and the EVM type that
// drives CALL/CREATE-family nested execution.
package vm

import (
	"sync/atomic"

	"github.com/holiman/uint256"

	"github.com/n42blockchain/n42evm/common/types"
	"github.com/n42blockchain/n42evm/crypto"
	n42errors "github.com/n42blockchain/n42evm/errors"
	"github.com/n42blockchain/n42evm/params"
	"github.com/n42blockchain/n42evm/vm/evmtypes"
)

// Log re-exports evmtypes.Log for callers that only import vm.
type Log = evmtypes.Log

// EVM is the Orchestrator: it owns the active BlockContext/TxContext/rules
// and drives every nested CALL/CREATE, enforcing the depth limit, static
// restrictions, and the 63/64 forwarding rule along the way. One EVM value
// is built per transaction (or reused via Reset for back-to-back calls in
// the same block).
type EVM struct {
	context    evmtypes.BlockContext
	txContext  evmtypes.TxContext
	statedb    evmtypes.IntraBlockState
	chainRules *params.Rules

	config Config

	interpreter *EVMInterpreter

	depth int

	abort atomic.Bool

	// callGasTemp carries the 63/64-capped gas a CALL-family dynamicGas
	// function computed for the forthcoming nested call, since that amount
	// is earmarked for the callee rather than billed to the caller up
	// front; the opcode's execute function reads it back immediately after.
	callGasTemp uint64
}

// NewEVM builds an Orchestrator for one block/transaction context.
func NewEVM(blockCtx evmtypes.BlockContext, txCtx evmtypes.TxContext, statedb evmtypes.IntraBlockState, rules *params.Rules, config Config) *EVM {
	evm := &EVM{
		context:    blockCtx,
		txContext:  txCtx,
		statedb:    statedb,
		chainRules: rules,
		config:     config,
	}
	evm.interpreter = NewEVMInterpreter(evm)
	return evm
}

func (evm *EVM) StateDB() evmtypes.IntraBlockState { return evm.statedb }
func (evm *EVM) Context() evmtypes.BlockContext    { return evm.context }
func (evm *EVM) TxContext() evmtypes.TxContext     { return evm.txContext }
func (evm *EVM) Depth() int                        { return evm.depth }
func (evm *EVM) ChainRules() *params.Rules         { return evm.chainRules }
func (evm *EVM) Config() Config                    { return evm.config }

// Reset rebinds evm to a new transaction within the same block, letting a
// host reuse one EVM value across every transaction in a block.
func (evm *EVM) Reset(txCtx evmtypes.TxContext, statedb evmtypes.IntraBlockState) {
	evm.txContext = txCtx
	evm.statedb = statedb
}

// Cancel aborts the running call tree at the next interpreter-loop check.
func (evm *EVM) Cancel() { evm.abort.Store(true) }

// Cancelled reports whether Cancel has been called.
func (evm *EVM) Cancelled() bool { return evm.abort.Load() }

// isPrecompileAddress reports whether addr falls in the fixed-address
// dispatch range 0x01..0x11 (standard precompiles through Prague's BLS12-381
// additions) or at 0x100 (the EIP-7212 P-256 verifier); CALL/STATICCALL
// route to the precompiles package rather than the interpreter when it does.
// Forks that haven't activated an address yet still route it here — the
// precompiles package itself gates liveness by chain rules and reports
// absent, which Call/CallCode/DelegateCall/StaticCall treat as no code.
func isPrecompileAddress(addr types.Address) bool {
	for i := 0; i < types.AddressLength-2; i++ {
		if addr[i] != 0 {
			return false
		}
	}
	hi, lo := addr[types.AddressLength-2], addr[types.AddressLength-1]
	if hi == 0 {
		return lo >= 1 && lo <= 0x11
	}
	return hi == 1 && lo == 0
}

// ActivePrecompiles returns the addresses live under rules, for the
// transaction entry point to pre-warm at intrinsic-gas time (EIP-2929).
func ActivePrecompiles(rules *params.Rules) []types.Address {
	addrs := []types.Address{
		types.BytesToAddress([]byte{0x01}),
		types.BytesToAddress([]byte{0x02}),
		types.BytesToAddress([]byte{0x03}),
		types.BytesToAddress([]byte{0x04}),
	}
	if rules.IsByzantium {
		addrs = append(addrs,
			types.BytesToAddress([]byte{0x05}),
			types.BytesToAddress([]byte{0x06}),
			types.BytesToAddress([]byte{0x07}),
			types.BytesToAddress([]byte{0x08}),
		)
	}
	if rules.IsIstanbul {
		addrs = append(addrs, types.BytesToAddress([]byte{0x09}))
	}
	if rules.IsCancun {
		addrs = append(addrs, types.BytesToAddress([]byte{0x0a}))
	}
	if rules.IsPrague {
		for b := byte(0x0b); b <= 0x11; b++ {
			addrs = append(addrs, types.BytesToAddress([]byte{b}))
		}
		addrs = append(addrs, types.BytesToAddress([]byte{0x01, 0x00}))
	}
	return addrs
}

// Call executes the code at addr's account in its own storage context,
// transferring value from caller first.
func (evm *EVM) Call(caller ContractRef, addr types.Address, input []byte, gas uint64, value *uint256.Int) (ret []byte, leftOverGas uint64, err error) {
	if evm.config.NoRecursion && evm.depth > 0 {
		return nil, gas, nil
	}
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, n42errors.ErrDepth
	}
	if !value.IsZero() && !evm.canTransfer(caller.Address(), value) {
		return nil, gas, n42errors.ErrInsufficientBalance
	}

	snapshot := evm.statedb.Snapshot()
	defer func() {
		if err != nil {
			evm.statedb.RevertToSnapshot(snapshot)
		}
	}()

	isPrecompile := isPrecompileAddress(addr)
	if !evm.statedb.Exist(addr) {
		if !isPrecompile && evm.chainRules.IsSpuriousDragon && value.IsZero() {
			// Calling a non-existing account with no value transfer touches
			// nothing: don't materialize it, matching EIP-158's "don't create
			// empty accounts" rule.
			return nil, gas, nil
		}
		evm.statedb.CreateAccount(addr, false)
	}
	evm.transfer(caller.Address(), addr, value)

	if isPrecompile {
		ret, leftOverGas, err = evm.runPrecompile(addr, input, gas)
		return ret, leftOverGas, err
	}

	codeAddr, code, codeHash := evm.resolveDelegatedCode(addr)
	if len(code) == 0 {
		return nil, gas, nil
	}
	contract := NewContract(caller, AccountRef(addr), value, gas, evm.config.SkipAnalysis)
	contract.SetCallCode(&codeAddr, codeHash, code)

	ret, err = evm.interpreter.Run(contract, input, false)
	return ret, contract.Gas, err
}

// CallCode is like Call but executes addr's code against caller's own
// storage context rather than addr's.
func (evm *EVM) CallCode(caller ContractRef, addr types.Address, input []byte, gas uint64, value *uint256.Int) (ret []byte, leftOverGas uint64, err error) {
	if evm.config.NoRecursion && evm.depth > 0 {
		return nil, gas, nil
	}
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, n42errors.ErrDepth
	}
	if !value.IsZero() && !evm.canTransfer(caller.Address(), value) {
		return nil, gas, n42errors.ErrInsufficientBalance
	}

	snapshot := evm.statedb.Snapshot()
	defer func() {
		if err != nil {
			evm.statedb.RevertToSnapshot(snapshot)
		}
	}()

	if isPrecompileAddress(addr) {
		return evm.runPrecompile(addr, input, gas)
	}

	codeAddr, code, codeHash := evm.resolveDelegatedCode(addr)
	contract := NewContract(caller, AccountRef(caller.Address()), value, gas, evm.config.SkipAnalysis)
	contract.SetCallCode(&codeAddr, codeHash, code)

	ret, err = evm.interpreter.Run(contract, input, false)
	return ret, contract.Gas, err
}

// DelegateCall executes addr's code against the calling frame's own
// storage context, inheriting its sender and value.
func (evm *EVM) DelegateCall(caller ContractRef, addr types.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	if evm.config.NoRecursion && evm.depth > 0 {
		return nil, gas, nil
	}
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, n42errors.ErrDepth
	}

	snapshot := evm.statedb.Snapshot()
	defer func() {
		if err != nil {
			evm.statedb.RevertToSnapshot(snapshot)
		}
	}()

	if isPrecompileAddress(addr) {
		return evm.runPrecompile(addr, input, gas)
	}

	codeAddr, code, codeHash := evm.resolveDelegatedCode(addr)
	contract := NewContract(caller, AccountRef(caller.Address()), nil, gas, evm.config.SkipAnalysis).AsDelegate()
	contract.SetCallCode(&codeAddr, codeHash, code)

	ret, err = evm.interpreter.Run(contract, input, false)
	return ret, contract.Gas, err
}

// StaticCall is Call with the read-only flag forced on for the whole
// subtree: SSTORE/TSTORE/CREATE/CREATE2/SELFDESTRUCT/LOGn and value-bearing
// CALLs all become exceptional halts.
func (evm *EVM) StaticCall(caller ContractRef, addr types.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	if evm.config.NoRecursion && evm.depth > 0 {
		return nil, gas, nil
	}
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, n42errors.ErrDepth
	}

	snapshot := evm.statedb.Snapshot()
	defer func() {
		if err != nil {
			evm.statedb.RevertToSnapshot(snapshot)
		}
	}()

	if isPrecompileAddress(addr) {
		return evm.runPrecompile(addr, input, gas)
	}

	codeAddr, code, codeHash := evm.resolveDelegatedCode(addr)
	contract := NewContract(caller, AccountRef(addr), new(uint256.Int), gas, evm.config.SkipAnalysis)
	contract.SetCallCode(&codeAddr, codeHash, code)

	ret, err = evm.interpreter.Run(contract, input, true)
	return ret, contract.Gas, err
}

// Create deploys the contract whose init code is code, at the address
// keccak256(rlp([sender, nonce]))[12:].
func (evm *EVM) Create(caller ContractRef, code []byte, gas uint64, value *uint256.Int) ([]byte, types.Address, uint64, error) {
	nonce := evm.statedb.GetNonce(caller.Address())
	contractAddr := crypto.CreateAddress(caller.Address(), nonce)
	return evm.create(caller, code, gas, value, contractAddr)
}

// Create2 deploys at a salt-derived, pre-computable address (EIP-1014).
func (evm *EVM) Create2(caller ContractRef, code []byte, gas uint64, endowment *uint256.Int, salt *uint256.Int) ([]byte, types.Address, uint64, error) {
	codeHash := crypto.Keccak256(code)
	saltBytes := salt.Bytes32()
	contractAddr := crypto.CreateAddress2(caller.Address(), saltBytes, codeHash)
	return evm.create(caller, code, gas, endowment, contractAddr)
}

func (evm *EVM) create(caller ContractRef, code []byte, gas uint64, value *uint256.Int, contractAddr types.Address) (ret []byte, addr types.Address, leftOverGas uint64, err error) {
	if evm.depth > int(params.CallCreateDepth) {
		return nil, types.Address{}, gas, n42errors.ErrDepth
	}
	if !evm.canTransfer(caller.Address(), value) {
		return nil, types.Address{}, gas, n42errors.ErrInsufficientBalance
	}
	if evm.config.HasEip3860(evm.chainRules) && uint64(len(code)) > params.MaxInitCodeSize {
		return nil, types.Address{}, gas, n42errors.ErrMaxInitCodeSizeExceeded
	}

	nonce := evm.statedb.GetNonce(caller.Address())
	if nonce+1 < nonce {
		return nil, types.Address{}, gas, n42errors.ErrNonceUintOverflow
	}
	if err := evm.statedb.IncrementNonce(caller.Address()); err != nil {
		return nil, types.Address{}, gas, err
	}

	if evm.statedb.GetNonce(contractAddr) != 0 || evm.statedb.GetCodeSize(contractAddr) != 0 {
		// A collision consumes all gas forwarded to the attempt, same as
		// any other exceptional halt reaching this point after the nonce
		// increment: the attempt already happened, only its outcome failed.
		return nil, types.Address{}, 0, n42errors.ErrContractAddressCollision
	}

	snapshot := evm.statedb.Snapshot()
	evm.statedb.CreateAccount(contractAddr, true)
	if evm.chainRules.IsSpuriousDragon {
		evm.statedb.SetNonce(contractAddr, 1)
	}
	evm.transfer(caller.Address(), contractAddr, value)

	contract := NewContract(caller, AccountRef(contractAddr), value, gas, evm.config.SkipAnalysis)
	contract.Code = code

	ret, err = evm.interpreter.Run(contract, nil, false)

	if err == nil && evm.chainRules.IsLondon && len(ret) > 0 && ret[0] == 0xef {
		err = n42errors.ErrInvalidCodeEntry
	}
	if err == nil {
		maxCodeSize := params.MaxCodeSize
		if uint64(len(ret)) > maxCodeSize && evm.chainRules.IsSpuriousDragon {
			err = n42errors.ErrMaxCodeSizeExceeded
		}
	}
	if err == nil {
		createDataGas := uint64(len(ret)) * params.CreateDataGas
		if !contract.UseGas(createDataGas) {
			err = n42errors.ErrCodeStoreOutOfGas
		} else {
			if setErr := evm.statedb.SetCode(contractAddr, ret, evm.chainRules.IsLondon); setErr != nil {
				err = setErr
			}
		}
	}

	if err != nil {
		evm.statedb.RevertToSnapshot(snapshot)
		if err != n42errors.ErrExecutionReverted {
			contract.Gas = 0
		}
	}
	return ret, contractAddr, contract.Gas, err
}

func (evm *EVM) canTransfer(addr types.Address, amount *uint256.Int) bool {
	if evm.context.CanTransfer != nil {
		return evm.context.CanTransfer(evm.statedb, addr, amount)
	}
	return evm.statedb.GetBalance(addr).Cmp(amount) >= 0
}

func (evm *EVM) transfer(from, to types.Address, amount *uint256.Int) {
	if amount == nil || amount.IsZero() {
		return
	}
	if evm.context.Transfer != nil {
		evm.context.Transfer(evm.statedb, from, to, amount, false)
		return
	}
	evm.statedb.SubBalance(from, amount)
	evm.statedb.AddBalance(to, amount)
}

// runPrecompile is overridden at init by the precompiles package via
// RegisterPrecompileRunner; by default every precompile address is
// treated as absent (empty return, full gas refund) so the vm package has
// no import-cycle dependency on precompiles.
var runPrecompileFn = func(addr types.Address, input []byte, gas uint64, rules *params.Rules) ([]byte, uint64, bool, error) {
	return nil, gas, false, nil
}

// RegisterPrecompileRunner installs the precompiles package's dispatcher.
// Called once from the precompiles package's init().
func RegisterPrecompileRunner(fn func(addr types.Address, input []byte, gas uint64, rules *params.Rules) ([]byte, uint64, bool, error)) {
	runPrecompileFn = fn
}

func (evm *EVM) runPrecompile(addr types.Address, input []byte, gas uint64) ([]byte, uint64, error) {
	ret, remaining, ok, err := runPrecompileFn(addr, input, gas, evm.chainRules)
	if !ok {
		return nil, gas, nil
	}
	return ret, remaining, err
}
