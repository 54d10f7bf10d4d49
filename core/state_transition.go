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

// Package core is the transaction-level entry point above the VM:
// intrinsic gas accounting, nonce and balance pre-checks, EIP-7702
// authorization application, and refund/floor-gas finalization, all wired
// through to a single vm.EVM.Call or vm.EVM.Create.
package core

import (
	"math"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/n42blockchain/n42evm/common/transaction"
	"github.com/n42blockchain/n42evm/common/types"
	n42errors "github.com/n42blockchain/n42evm/errors"
	"github.com/n42blockchain/n42evm/params"
	"github.com/n42blockchain/n42evm/state"
	"github.com/n42blockchain/n42evm/vm"
	"github.com/n42blockchain/n42evm/vm/evmtypes"
)

// ExecutionResult is everything ApplyMessage produces, regardless of
// whether the message's own execution succeeded: a failed CALL/CREATE is
// still a valid state transition and charges gas normally; only a
// consensus-level error (bad nonce, insufficient funds, ...) makes
// ApplyMessage itself return a non-nil error and a nil result.
type ExecutionResult struct {
	UsedGas     uint64
	RefundedGas uint64
	Err         error
	ReturnData  []byte
}

// Unwrap exposes the underlying VM error for errors.Is/As chaining.
func (r *ExecutionResult) Unwrap() error { return r.Err }

// Failed reports whether the call/create itself reverted or halted
// exceptionally.
func (r *ExecutionResult) Failed() bool { return r.Err != nil }

// Return is the function return value, nil if the message failed.
func (r *ExecutionResult) Return() []byte {
	if r.Err != nil {
		return nil
	}
	return copyBytes(r.ReturnData)
}

// Revert is the REVERT reason, nil unless the message failed via REVERT
// specifically (as opposed to any other exceptional halt).
func (r *ExecutionResult) Revert() []byte {
	if r.Err != n42errors.ErrExecutionReverted {
		return nil
	}
	return copyBytes(r.ReturnData)
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

// toWordSize rounds size up to the next 32-byte word, saturating rather
// than overflowing.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// IntrinsicGas computes the gas a transaction owes before the EVM executes
// a single instruction: the flat per-transaction base cost, the cost of its
// calldata (zero and non-zero bytes priced separately), its EIP-2930 access
// list, its EIP-3860 init-code word cost on contract creation, and its
// EIP-7702 authorization list.
func IntrinsicGas(data []byte, accessList transaction.AccessList, authList transaction.AuthorizationList, isContractCreation, isHomestead, isEIP2028, isEIP3860 bool) (uint64, error) {
	var gas uint64
	if isContractCreation && isHomestead {
		gas = params.TxGasContractCreation
	} else {
		gas = params.TxGas
	}

	dataLen := uint64(len(data))
	if dataLen > 0 {
		var z uint64
		for _, b := range data {
			if b == 0 {
				z++
			}
		}
		nz := dataLen - z

		nonZeroGas := uint64(params.TxDataNonZeroGasFrontier)
		if isEIP2028 {
			nonZeroGas = params.TxDataNonZeroGasEIP2028
		}
		if (math.MaxUint64-gas)/nonZeroGas < nz {
			return 0, n42errors.ErrGasUintOverflow
		}
		gas += nz * nonZeroGas

		if (math.MaxUint64-gas)/params.TxDataZeroGas < z {
			return 0, n42errors.ErrGasUintOverflow
		}
		gas += z * params.TxDataZeroGas

		if isContractCreation && isEIP3860 {
			words := toWordSize(dataLen)
			if (math.MaxUint64-gas)/params.InitCodeWordGasEIP3860 < words {
				return 0, n42errors.ErrGasUintOverflow
			}
			gas += words * params.InitCodeWordGasEIP3860
		}
	}
	if accessList != nil {
		gas += uint64(len(accessList)) * params.TxAccessListAddressGas
		gas += uint64(accessList.StorageKeys()) * params.TxAccessListStorageKeyGas
	}
	if authList != nil {
		gas += uint64(len(authList)) * params.PerEmptyAccountCostEIP7702
	}
	return gas, nil
}

// FloorDataGas computes the EIP-7623 minimum gas a transaction owes based
// on its calldata token count, independent of how much gas its execution
// actually consumes. A data-heavy, compute-light transaction pays this
// floor even if intrinsic-plus-execution gas would have been cheaper.
func FloorDataGas(data []byte) (uint64, error) {
	var z uint64
	for _, b := range data {
		if b == 0 {
			z++
		}
	}
	nz := uint64(len(data)) - z
	tokens := nz*4 + z

	if (math.MaxUint64-params.TxCalldataFloorGasBaseEIP7623)/params.TxCalldataFloorGasEIP7623 < tokens {
		return 0, n42errors.ErrGasUintOverflow
	}
	return params.TxCalldataFloorGasBaseEIP7623 + tokens*params.TxCalldataFloorGasEIP7623, nil
}

// NewEVMTxContext builds the per-transaction context ApplyMessage installs
// on evm before running msg.
func NewEVMTxContext(msg *transaction.Message) evmtypes.TxContext {
	return evmtypes.TxContext{
		Origin:     msg.From,
		GasPrice:   msg.GasPrice,
		BlobHashes: msg.BlobHashes,
	}
}

// ApplyMessage runs msg against evm's current state, charging and
// refunding gas from gp, and returns the outcome. A non-nil error return
// means msg could never be included in a block against this state (bad
// nonce, insufficient balance, malformed fee fields, ...); a non-nil
// result.Err instead means msg's own execution reverted or halted, which is
// a normal, chargeable outcome.
func ApplyMessage(evm *vm.EVM, msg *transaction.Message, gp *GasPool) (*ExecutionResult, error) {
	evm.Reset(NewEVMTxContext(msg), evm.StateDB())
	return newStateTransition(evm, msg, gp).execute()
}

// stateTransition is the scratch state one ApplyMessage call threads
// through its pre-checks, execution, and gas settlement.
type stateTransition struct {
	gp           *GasPool
	msg          *transaction.Message
	gasRemaining uint64
	initialGas   uint64
	state        state.StateDB
	evm          *vm.EVM
}

func newStateTransition(evm *vm.EVM, msg *transaction.Message, gp *GasPool) *stateTransition {
	return &stateTransition{
		gp:    gp,
		evm:   evm,
		msg:   msg,
		state: evm.StateDB(),
	}
}

func (st *stateTransition) to() types.Address {
	if st.msg.To == nil {
		return types.Address{}
	}
	return *st.msg.To
}

// buyGas debits the sender's balance for gasLimit*gasPrice (plus any blob
// gas owed) up front, against gp's block-level allowance.
func (st *stateTransition) buyGas() error {
	mgval := new(uint256.Int).SetUint64(st.msg.GasLimit)
	mgval.Mul(mgval, st.msg.GasPrice)

	balanceCheck := new(uint256.Int).Set(mgval)
	if st.msg.GasFeeCap != nil {
		balanceCheck.SetUint64(st.msg.GasLimit)
		balanceCheck.Mul(balanceCheck, st.msg.GasFeeCap)
	}
	balanceCheck.Add(balanceCheck, st.msg.Value)

	if st.evm.ChainRules().IsCancun {
		if blobGas := st.blobGasUsed(); blobGas > 0 {
			blobBalanceCheck := new(uint256.Int).SetUint64(blobGas)
			blobBalanceCheck.Mul(blobBalanceCheck, st.msg.BlobGasFeeCap)
			balanceCheck.Add(balanceCheck, blobBalanceCheck)

			blobFee := new(uint256.Int).SetUint64(blobGas)
			blobFee.Mul(blobFee, st.evm.Context().BlobBaseFee)
			mgval.Add(mgval, blobFee)
		}
	}

	if have := st.state.GetBalance(st.msg.From); have.Cmp(balanceCheck) < 0 {
		return errors.Wrapf(n42errors.ErrInsufficientFunds, "address %x have %v want %v", st.msg.From, have, balanceCheck)
	}
	if err := st.gp.SubGas(st.msg.GasLimit); err != nil {
		return err
	}

	st.gasRemaining = st.msg.GasLimit
	st.initialGas = st.msg.GasLimit
	if err := st.state.SubBalance(st.msg.From, mgval); err != nil {
		return err
	}
	return nil
}

// preCheck validates everything that must hold before a single unit of gas
// is spent: nonce, sender-is-EOA-or-delegated, fee-cap/base-fee ordering,
// blob-hash well-formedness, and the set-code authorization list shape.
func (st *stateTransition) preCheck() error {
	msg := st.msg
	rules := st.evm.ChainRules()

	if !msg.SkipNonceCheck {
		stNonce := st.state.GetNonce(msg.From)
		switch {
		case stNonce < msg.Nonce:
			return errors.Wrapf(n42errors.ErrNonceTooHigh, "address %x, tx: %d state: %d", msg.From, msg.Nonce, stNonce)
		case stNonce > msg.Nonce:
			return errors.Wrapf(n42errors.ErrNonceTooLow, "address %x, tx: %d state: %d", msg.From, msg.Nonce, stNonce)
		case stNonce+1 < stNonce:
			return errors.Wrapf(n42errors.ErrNonceMax, "address %x, nonce: %d", msg.From, stNonce)
		}
	}

	if !msg.SkipFromEOACheck {
		code := st.state.GetCode(msg.From)
		_, delegated := vm.ParseDelegation(code)
		if len(code) > 0 && !delegated {
			return errors.Wrapf(n42errors.ErrSenderNoEOA, "address %x, len(code): %d", msg.From, len(code))
		}
	}

	if rules.IsLondon {
		skipCheck := noBaseFeeAllowed(st.evm) && msg.GasFeeCap.IsZero() && msg.GasTipCap.IsZero()
		if !skipCheck {
			if l := msg.GasFeeCap.BitLen(); l > 256 {
				return errors.Wrapf(n42errors.ErrFeeCapVeryHigh, "address %x, maxFeePerGas bit length: %d", msg.From, l)
			}
			if l := msg.GasTipCap.BitLen(); l > 256 {
				return errors.Wrapf(n42errors.ErrTipVeryHigh, "address %x, maxPriorityFeePerGas bit length: %d", msg.From, l)
			}
			if msg.GasFeeCap.Cmp(msg.GasTipCap) < 0 {
				return errors.Wrapf(n42errors.ErrTipAboveFeeCap, "address %x, tip %v, cap %v", msg.From, msg.GasTipCap, msg.GasFeeCap)
			}
			if msg.GasFeeCap.Cmp(st.evm.Context().BaseFee) < 0 {
				return errors.Wrapf(n42errors.ErrFeeCapTooLow, "address %x, maxFeePerGas %v, baseFee %v", msg.From, msg.GasFeeCap, st.evm.Context().BaseFee)
			}
		}
	}

	if msg.BlobHashes != nil {
		if msg.To == nil {
			return n42errors.ErrBlobTxCreate
		}
		if len(msg.BlobHashes) == 0 {
			return n42errors.ErrMissingBlobHashes
		}
	}

	if msg.AuthList != nil && msg.To == nil {
		return errors.Wrap(n42errors.ErrInvalidAuthorization, "set-code transaction must not be a create")
	}

	return st.buyGas()
}

// noBaseFeeAllowed reports whether evm's Config opts out of the base-fee
// floor check, used by tools like eth_call that simulate against zero fee
// fields.
func noBaseFeeAllowed(evm *vm.EVM) bool {
	return evm.Config().NoBaseFee
}

// execute runs the pre-checked message to completion and settles gas:
// intrinsic and floor-gas deduction, the CALL or CREATE itself, refund
// calculation, and the coinbase tip / sender refund.
func (st *stateTransition) execute() (*ExecutionResult, error) {
	if err := st.preCheck(); err != nil {
		return nil, err
	}

	var (
		msg              = st.msg
		rules            = st.evm.ChainRules()
		contractCreation = msg.To == nil
		floorDataGas     uint64
	)

	gas, err := IntrinsicGas(msg.Data, msg.AccessList, msg.AuthList, contractCreation, rules.IsHomestead, rules.IsIstanbul, rules.IsShanghai)
	if err != nil {
		return nil, err
	}
	if st.gasRemaining < gas {
		return nil, errors.Wrapf(n42errors.ErrIntrinsicGas, "have %d, want %d", st.gasRemaining, gas)
	}
	if rules.IsPrague {
		floorDataGas, err = FloorDataGas(msg.Data)
		if err != nil {
			return nil, err
		}
		if msg.GasLimit < floorDataGas {
			return nil, errors.Wrapf(n42errors.ErrFloorDataGas, "have %d, want %d", msg.GasLimit, floorDataGas)
		}
	}
	st.gasRemaining -= gas

	if !msg.Value.IsZero() && st.evm.Context().CanTransfer != nil && !st.evm.Context().CanTransfer(st.state, msg.From, msg.Value) {
		return nil, errors.Wrapf(n42errors.ErrInsufficientFundsForTransfer, "address %x", msg.From)
	}

	if rules.IsShanghai && contractCreation && uint64(len(msg.Data)) > params.MaxInitCodeSize {
		return nil, errors.Wrapf(n42errors.ErrMaxInitCodeSizeExceeded, "code size %d limit %d", len(msg.Data), params.MaxInitCodeSize)
	}

	st.state.PrepareAccessList(msg.From, msg.To, vm.ActivePrecompiles(rules), msg.AccessList)

	var (
		ret   []byte
		vmerr error
	)
	if contractCreation {
		ret, _, st.gasRemaining, vmerr = st.evm.Create(vm.AccountRef(msg.From), msg.Data, st.gasRemaining, msg.Value)
	} else {
		if err := st.state.IncrementNonce(msg.From); err != nil {
			return nil, err
		}

		for i := range msg.AuthList {
			st.applyAuthorization(&msg.AuthList[i])
		}

		if addr, ok := vm.ParseDelegation(st.state.GetCode(*msg.To)); ok {
			st.state.AddAddressToAccessList(addr)
		}

		ret, st.gasRemaining, vmerr = st.evm.Call(vm.AccountRef(msg.From), st.to(), msg.Data, st.gasRemaining, msg.Value)
	}

	gasRefund := st.calcRefund()
	st.gasRemaining += gasRefund
	if rules.IsPrague && st.gasUsed() < floorDataGas {
		st.gasRemaining = st.initialGas - floorDataGas
	}

	st.returnGas()

	effectiveTip := new(uint256.Int).Set(st.msg.GasPrice)
	if rules.IsLondon {
		effectiveTip = new(uint256.Int).Sub(st.msg.GasFeeCap, st.evm.Context().BaseFee)
		if effectiveTip.Cmp(st.msg.GasTipCap) > 0 {
			effectiveTip.Set(st.msg.GasTipCap)
		}
	}
	fee := new(uint256.Int).SetUint64(st.gasUsed())
	fee.Mul(fee, effectiveTip)
	st.state.AddBalance(st.evm.Context().Coinbase, fee)

	st.state.Finalise()
	st.state.ClearTransientStorage()

	return &ExecutionResult{
		UsedGas:     st.gasUsed(),
		RefundedGas: gasRefund,
		Err:         vmerr,
		ReturnData:  ret,
	}, nil
}

// applyAuthorization installs or clears an EIP-7702 delegation designator
// for a single authorization tuple. Invalid authorizations are skipped
// rather than aborting the transaction — only the authorization itself
// fails, not the call it decorates.
func (st *stateTransition) applyAuthorization(auth *transaction.Authorization) {
	if auth.ChainID != 0 && auth.ChainID != st.evm.ChainRules().ChainID {
		return
	}
	if auth.Nonce+1 < auth.Nonce {
		return
	}

	authority := auth.Authority
	st.state.AddAddressToAccessList(authority)

	code := st.state.GetCode(authority)
	if _, delegated := vm.ParseDelegation(code); len(code) != 0 && !delegated {
		return
	}
	if st.state.GetNonce(authority) != auth.Nonce {
		return
	}

	if st.state.Exist(authority) {
		st.state.AddRefund(params.PerEmptyAccountCostEIP7702 - params.PerAuthBaseCostEIP7702)
	}

	st.state.SetNonce(authority, auth.Nonce+1)
	if auth.Address == (types.Address{}) {
		st.state.SetCode(authority, nil, st.evm.ChainRules().IsLondon)
		return
	}
	st.state.SetCode(authority, vm.AddressToDelegation(auth.Address), st.evm.ChainRules().IsLondon)
}

// calcRefund computes the capped refund: pre-London a transaction could
// recover up to half its gas used, EIP-3529 tightened that to a fifth.
func (st *stateTransition) calcRefund() uint64 {
	var refund uint64
	if !st.evm.ChainRules().IsLondon {
		refund = st.gasUsed() / params.RefundQuotient
	} else {
		refund = st.gasUsed() / params.RefundQuotientEIP3529
	}
	if cap := st.state.GetRefund(); refund > cap {
		refund = cap
	}
	return refund
}

// returnGas credits the sender for unspent gas at the original purchase
// price and hands it back to the block's gas pool for later transactions.
func (st *stateTransition) returnGas() {
	remaining := new(uint256.Int).SetUint64(st.gasRemaining)
	remaining.Mul(remaining, st.msg.GasPrice)
	st.state.AddBalance(st.msg.From, remaining)
	st.gp.AddGas(st.gasRemaining)
}

func (st *stateTransition) gasUsed() uint64 {
	return st.initialGas - st.gasRemaining
}

func (st *stateTransition) blobGasUsed() uint64 {
	return uint64(len(st.msg.BlobHashes)) * params.BlobTxBlobGasPerBlob
}
