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

package core

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/n42blockchain/n42evm/common/transaction"
	"github.com/n42blockchain/n42evm/common/types"
	"github.com/n42blockchain/n42evm/params"
	"github.com/n42blockchain/n42evm/state"
	"github.com/n42blockchain/n42evm/vm"
	"github.com/n42blockchain/n42evm/vm/evmtypes"
)

func TestIntrinsicGasBaseTransfer(t *testing.T) {
	gas, err := IntrinsicGas(nil, nil, nil, false, true, true, true)
	require.NoError(t, err)
	require.Equal(t, uint64(params.TxGas), gas)
}

func TestIntrinsicGasContractCreationHomestead(t *testing.T) {
	gas, err := IntrinsicGas(nil, nil, nil, true, true, true, true)
	require.NoError(t, err)
	require.Equal(t, uint64(params.TxGasContractCreation), gas)
}

func TestIntrinsicGasCalldataPricing(t *testing.T) {
	data := []byte{0x00, 0x00, 0x01, 0x02}
	gas, err := IntrinsicGas(data, nil, nil, false, true, true, true)
	require.NoError(t, err)
	want := uint64(params.TxGas) + 2*params.TxDataZeroGas + 2*params.TxDataNonZeroGasEIP2028
	require.Equal(t, want, gas)
}

func TestIntrinsicGasAccessList(t *testing.T) {
	al := transaction.AccessList{
		{Address: types.Address{1}, StorageKeys: []types.Hash{{1}, {2}}},
	}
	gas, err := IntrinsicGas(nil, al, nil, false, true, true, true)
	require.NoError(t, err)
	want := uint64(params.TxGas) + params.TxAccessListAddressGas + 2*params.TxAccessListStorageKeyGas
	require.Equal(t, want, gas)
}

func TestFloorDataGasAllZero(t *testing.T) {
	data := make([]byte, 10)
	gas, err := FloorDataGas(data)
	require.NoError(t, err)
	require.Equal(t, uint64(params.TxCalldataFloorGasBaseEIP7623)+10*params.TxCalldataFloorGasEIP7623, gas)
}

func TestFloorDataGasMixed(t *testing.T) {
	data := []byte{0x00, 0x01, 0x00, 0x02}
	gas, err := FloorDataGas(data)
	require.NoError(t, err)
	tokens := uint64(2) + uint64(2)*4 // 2 zero bytes + 2 nonzero bytes weighted 4x
	require.Equal(t, uint64(params.TxCalldataFloorGasBaseEIP7623)+tokens*params.TxCalldataFloorGasEIP7623, gas)
}

func newTestEVM(t *testing.T, rules *params.Rules, statedb state.StateDB) *vm.EVM {
	t.Helper()
	blockCtx := evmtypes.BlockContext{
		GetHash:     func(uint64) types.Hash { return types.Hash{} },
		Coinbase:    types.Address{0xc0},
		GasLimit:    30_000_000,
		BlockNumber: 1,
		Time:        1,
		BaseFee:     uint256.NewInt(1),
	}
	return vm.NewEVM(blockCtx, evmtypes.TxContext{}, statedb, rules, vm.Config{})
}

func TestApplyMessageSimpleTransfer(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Cancun)
	db := state.New(state.NewMemoryDatabase())

	sender := types.HexToAddress("0x1000000000000000000000000000000000000001")
	recipient := types.HexToAddress("0x2000000000000000000000000000000000000002")
	db.AddBalance(sender, uint256.NewInt(1_000_000_000))

	evm := newTestEVM(t, rules, db)
	gp := GasPool(1_000_000)

	msg := &transaction.Message{
		From:             sender,
		To:               &recipient,
		Nonce:            0,
		Value:            uint256.NewInt(1000),
		GasLimit:         100_000,
		GasPrice:         uint256.NewInt(1),
		GasFeeCap:        uint256.NewInt(1),
		GasTipCap:        uint256.NewInt(1),
		SkipNonceCheck:   false,
		SkipFromEOACheck: false,
	}

	result, err := ApplyMessage(evm, msg, &gp)
	require.NoError(t, err)
	require.NoError(t, result.Err)
	require.Equal(t, uint256.NewInt(1000), db.GetBalance(recipient))
	require.Equal(t, uint64(1), db.GetNonce(sender))
}

func TestApplyMessageRejectsLowNonce(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Cancun)
	db := state.New(state.NewMemoryDatabase())

	sender := types.HexToAddress("0x1000000000000000000000000000000000000001")
	db.AddBalance(sender, uint256.NewInt(1_000_000_000))
	db.SetNonce(sender, 5)

	evm := newTestEVM(t, rules, db)
	gp := GasPool(1_000_000)

	recipient := types.HexToAddress("0x2000000000000000000000000000000000000002")
	msg := &transaction.Message{
		From:      sender,
		To:        &recipient,
		Nonce:     1,
		Value:     uint256.NewInt(0),
		GasLimit:  100_000,
		GasPrice:  uint256.NewInt(1),
		GasFeeCap: uint256.NewInt(1),
		GasTipCap: uint256.NewInt(1),
	}

	_, err := ApplyMessage(evm, msg, &gp)
	require.Error(t, err)
}

// TestApplyMessageSimpleAdd reproduces the spec's canonical "ADD and
// return" scenario bit-for-bit: PUSH1 1, PUSH1 2, ADD, PUSH1 0, MSTORE,
// PUSH1 32, PUSH1 0, RETURN, at 100000 gas against a fresh Cancun state.
func TestApplyMessageSimpleAdd(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Cancun)
	db := state.New(state.NewMemoryDatabase())

	sender := types.HexToAddress("0x1000000000000000000000000000000000000001")
	target := types.HexToAddress("0x2000000000000000000000000000000000000002")
	db.AddBalance(sender, uint256.NewInt(1_000_000_000))

	code := []byte{
		0x60, 0x01, // PUSH1 1
		0x60, 0x02, // PUSH1 2
		0x01,       // ADD
		0x60, 0x00, // PUSH1 0
		0x52,       // MSTORE
		0x60, 0x20, // PUSH1 32
		0x60, 0x00, // PUSH1 0
		0xf3, // RETURN
	}
	require.NoError(t, db.SetCode(target, code, rules.IsLondon))

	evm := newTestEVM(t, rules, db)
	gp := GasPool(1_000_000)

	msg := &transaction.Message{
		From:      sender,
		To:        &target,
		Nonce:     0,
		Value:     uint256.NewInt(0),
		GasLimit:  100_000,
		GasPrice:  uint256.NewInt(1),
		GasFeeCap: uint256.NewInt(1),
		GasTipCap: uint256.NewInt(1),
	}

	result, err := ApplyMessage(evm, msg, &gp)
	require.NoError(t, err)
	require.NoError(t, result.Err)

	want := make([]byte, 32)
	want[31] = 3
	require.Equal(t, want, result.ReturnData)
	require.Equal(t, uint64(21_000+3+3+3+3+3+3+3+0+3), result.UsedGas, "21000 intrinsic + 5 PUSH1s@3 + ADD@3 + MSTORE@3 + RETURN@0 + memory expansion@3")
}

// TestApplyMessageSstoreSetFromZero reproduces the spec's SSTORE-set-from-a
// -cold-zero-slot scenario: gas_used must land on exactly 43106, and the
// refund counter must stay at zero since nothing clears a slot here.
func TestApplyMessageSstoreSetFromZero(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Cancun)
	db := state.New(state.NewMemoryDatabase())

	sender := types.HexToAddress("0x1000000000000000000000000000000000000001")
	target := types.HexToAddress("0x2000000000000000000000000000000000000002")
	db.AddBalance(sender, uint256.NewInt(1_000_000_000))

	code := []byte{
		0x60, 0x2a, // PUSH1 42
		0x60, 0x00, // PUSH1 0
		0x55, // SSTORE
		0x00, // STOP
	}
	require.NoError(t, db.SetCode(target, code, rules.IsLondon))

	evm := newTestEVM(t, rules, db)
	gp := GasPool(1_000_000)

	msg := &transaction.Message{
		From:      sender,
		To:        &target,
		Nonce:     0,
		Value:     uint256.NewInt(0),
		GasLimit:  100_000,
		GasPrice:  uint256.NewInt(1),
		GasFeeCap: uint256.NewInt(1),
		GasTipCap: uint256.NewInt(1),
	}

	result, err := ApplyMessage(evm, msg, &gp)
	require.NoError(t, err)
	require.NoError(t, result.Err)
	require.Equal(t, uint64(43_106), result.UsedGas)
	require.Equal(t, uint64(0), result.RefundedGas)
	stored := db.GetState(target, types.Hash{})
	require.Equal(t, uint256.NewInt(42), &stored)
}

// TestApplyMessageStaticCallSstoreFails reproduces the spec's scenario 3:
// an outer contract STATICCALLs an inner contract that attempts SSTORE.
// The inner call must halt with StateModificationInStaticContext, consuming
// everything forwarded to it, while the outer call observes only a pushed
// zero and otherwise continues and succeeds.
func TestApplyMessageStaticCallSstoreFails(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Cancun)
	db := state.New(state.NewMemoryDatabase())

	sender := types.HexToAddress("0x1000000000000000000000000000000000000001")
	outer := types.HexToAddress("0x2000000000000000000000000000000000000002")
	inner := types.HexToAddress("0x3000000000000000000000000000000000000003")
	db.AddBalance(sender, uint256.NewInt(1_000_000_000))

	innerCode := []byte{
		0x60, 0x01, // PUSH1 1
		0x60, 0x00, // PUSH1 0
		0x55, // SSTORE
		0x00, // STOP
	}
	require.NoError(t, db.SetCode(inner, innerCode, rules.IsLondon))

	outerCode := []byte{
		0x60, 0x00, // PUSH1 0   (retSize)
		0x60, 0x00, // PUSH1 0   (retOffset)
		0x60, 0x00, // PUSH1 0   (argsSize)
		0x60, 0x00, // PUSH1 0   (argsOffset)
	}
	outerCode = append(outerCode, 0x73) // PUSH20 <inner address>
	outerCode = append(outerCode, inner.Bytes()...)
	outerCode = append(outerCode,
		0x62, 0x03, 0x0d, 0x40, // PUSH3 200000 (gas forwarded)
		0xfa,       // STATICCALL
		0x60, 0x00, // PUSH1 0
		0x52,       // MSTORE
		0x60, 0x20, // PUSH1 32
		0x60, 0x00, // PUSH1 0
		0xf3, // RETURN
	)
	require.NoError(t, db.SetCode(outer, outerCode, rules.IsLondon))

	evm := newTestEVM(t, rules, db)
	gp := GasPool(1_000_000)

	msg := &transaction.Message{
		From:      sender,
		To:        &outer,
		Nonce:     0,
		Value:     uint256.NewInt(0),
		GasLimit:  500_000,
		GasPrice:  uint256.NewInt(1),
		GasFeeCap: uint256.NewInt(1),
		GasTipCap: uint256.NewInt(1),
	}

	result, err := ApplyMessage(evm, msg, &gp)
	require.NoError(t, err)
	require.NoError(t, result.Err, "the outer call itself must succeed")

	want := make([]byte, 32) // STATICCALL pushed 0: the inner call failed
	require.Equal(t, want, result.ReturnData)

	stored := db.GetState(inner, types.Hash{})
	require.True(t, stored.IsZero(), "the inner SSTORE must never have taken effect")
}

// TestCreate2CollisionConsumesAllForwardedGas reproduces the spec's scenario
// 4: a second CREATE2 at an address that already holds code fails the
// collision check, consumes all the gas forwarded to it, and pushes the
// zero address — while the caller's nonce increment from the attempt is not
// undone.
func TestCreate2CollisionConsumesAllForwardedGas(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Cancun)
	db := state.New(state.NewMemoryDatabase())

	sender := types.HexToAddress("0x1000000000000000000000000000000000000001")
	db.AddBalance(sender, uint256.NewInt(1_000_000_000))

	initCode := []byte{
		0x60, 0x00, // PUSH1 0  (size)
		0x60, 0x00, // PUSH1 0  (offset)
		0xf3, // RETURN empty code
	}
	salt := uint256.NewInt(42)

	evm := newTestEVM(t, rules, db)

	_, addrA, gasLeftA, errA := evm.Create2(vm.AccountRef(sender), initCode, 200_000, uint256.NewInt(0), salt)
	require.NoError(t, errA)
	require.NotZero(t, gasLeftA)
	require.NotEqual(t, types.Address{}, addrA)
	require.Equal(t, uint64(1), db.GetNonce(sender))

	nonceBefore := db.GetNonce(sender)
	_, addrB, gasLeftB, errB := evm.Create2(vm.AccountRef(sender), initCode, 50_000, uint256.NewInt(0), salt)
	require.Error(t, errB)
	require.Equal(t, types.Address{}, addrB, "a creation that fails the collision check reports the zero address")
	require.Equal(t, uint64(0), gasLeftB, "a collision consumes all gas forwarded to the attempt")
	require.Equal(t, nonceBefore+1, db.GetNonce(sender), "the nonce increment from the failed attempt is not undone")
}

// TestTransientStorageIsolatedAcrossTransactions reproduces the spec's
// scenario 6: TSTORE in one transaction must not be visible to TLOAD in the
// next, since transient storage is wiped at transaction end regardless of
// what happened inside the transaction that wrote it.
func TestTransientStorageIsolatedAcrossTransactions(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Cancun)
	db := state.New(state.NewMemoryDatabase())

	sender := types.HexToAddress("0x1000000000000000000000000000000000000001")
	target := types.HexToAddress("0x2000000000000000000000000000000000000002")
	db.AddBalance(sender, uint256.NewInt(1_000_000_000))

	tstoreCode := []byte{
		0x60, 0x63, // PUSH1 0x63 (99)
		0x60, 0x01, // PUSH1 1
		0x5d, // TSTORE
		0x00, // STOP
	}
	require.NoError(t, db.SetCode(target, tstoreCode, rules.IsLondon))

	evm := newTestEVM(t, rules, db)
	gp := GasPool(1_000_000)

	msg1 := &transaction.Message{
		From:      sender,
		To:        &target,
		Nonce:     0,
		Value:     uint256.NewInt(0),
		GasLimit:  100_000,
		GasPrice:  uint256.NewInt(1),
		GasFeeCap: uint256.NewInt(1),
		GasTipCap: uint256.NewInt(1),
	}
	result1, err := ApplyMessage(evm, msg1, &gp)
	require.NoError(t, err)
	require.NoError(t, result1.Err)

	tloadCode := []byte{
		0x60, 0x01, // PUSH1 1
		0x5c,       // TLOAD
		0x60, 0x00, // PUSH1 0
		0x52,       // MSTORE
		0x60, 0x20, // PUSH1 32
		0x60, 0x00, // PUSH1 0
		0xf3, // RETURN
	}
	require.NoError(t, db.SetCode(target, tloadCode, rules.IsLondon))

	msg2 := &transaction.Message{
		From:      sender,
		To:        &target,
		Nonce:     1,
		Value:     uint256.NewInt(0),
		GasLimit:  100_000,
		GasPrice:  uint256.NewInt(1),
		GasFeeCap: uint256.NewInt(1),
		GasTipCap: uint256.NewInt(1),
	}
	result2, err := ApplyMessage(evm, msg2, &gp)
	require.NoError(t, err)
	require.NoError(t, result2.Err)

	want := make([]byte, 32)
	require.Equal(t, want, result2.ReturnData, "transaction 2 must read 0: transient storage does not survive across transactions")
}

// TestCallToNonexistentAddressWithZeroValueTouchesNothing reproduces the
// spec's §8 boundary: a CALL to an address with no code, no balance and no
// nonce, carrying zero value, must succeed without leaving any trace in
// state — no empty account gets materialized for the reaper to later evict.
func TestCallToNonexistentAddressWithZeroValueTouchesNothing(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Cancun)
	db := state.New(state.NewMemoryDatabase())

	sender := types.HexToAddress("0x1000000000000000000000000000000000000001")
	ghost := types.HexToAddress("0x9000000000000000000000000000000000000009")
	db.AddBalance(sender, uint256.NewInt(1_000_000_000))

	evm := newTestEVM(t, rules, db)
	require.False(t, db.Exist(ghost))

	ret, leftOverGas, err := evm.Call(vm.AccountRef(sender), ghost, nil, 100_000, uint256.NewInt(0))
	require.NoError(t, err)
	require.Nil(t, ret)
	require.Equal(t, uint64(100_000), leftOverGas, "a call to an empty account touches nothing and costs no gas beyond what the caller already paid intrinsically")
	require.False(t, db.Exist(ghost), "a zero-value call to a nonexistent address under EIP-158 must not materialize an empty account")
}
