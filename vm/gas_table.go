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
	"math"

	"github.com/holiman/uint256"

	n42errors "github.com/n42blockchain/n42evm/errors"
	"github.com/n42blockchain/n42evm/params"
)

// Fixed-step costs, re-exported unqualified for callers inside this package.
const (
	GasQuickStep   = params.GasQuickStep
	GasFastestStep = params.GasFastestStep
	GasFastStep    = params.GasFastStep
	GasMidStep     = params.GasMidStep
	GasSlowStep    = params.GasSlowStep
	GasExtStep     = params.GasExtStep
)

// safeAdd adds a and b, reporting overflow rather than wrapping silently.
func safeAdd(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum < a
}

// safeMul multiplies a and b, reporting overflow rather than wrapping.
func safeMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	prod := a * b
	return prod, prod/a != b
}

// toWordSize rounds size up to the next 32-byte word count, saturating
// instead of wrapping when size is within 31 of the uint64 maximum.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// ToWordSize is toWordSize exposed for callers outside the package (the gas
// estimator in cmd/n42evm, for instance).
func ToWordSize(size uint64) uint64 { return toWordSize(size) }

// memoryGasCost computes the quadratic memory-expansion cost of growing to
// newMemSize bytes: words + words^2/512, word count rounded up from byte
// size.
func memoryGasCost(mem *Memory, newMemSize uint64) (uint64, error) {
	if newMemSize == 0 {
		return 0, nil
	}
	if newMemSize > math.MaxUint64-31 {
		return 0, n42errors.ErrGasUintOverflow
	}
	newMemSizeWords := toWordSize(newMemSize)
	newMemSize = newMemSizeWords * 32

	if newMemSize > uint64(mem.Len()) {
		square := newMemSizeWords * newMemSizeWords
		linCoef := newMemSizeWords * params.MemoryGas
		quadCoef := square / params.QuadCoeffDiv
		newTotalFee := linCoef + quadCoef

		fee := newTotalFee - mem.lastGasCost
		mem.lastGasCost = newTotalFee
		return fee, nil
	}
	return 0, nil
}

// calcMemSize64 converts an (offset, length) pair expressed as uint256 words
// into the uint64 byte count memory must grow to, reporting overflow.
func calcMemSize64(off, l *uint256.Int) (uint64, bool) {
	if l.IsZero() {
		return 0, false
	}
	if !l.IsUint64() {
		return 0, true
	}
	return calcMemSize64WithUint(off, l.Uint64())
}

// calcMemSize64WithUint is calcMemSize64 for callers that already have the
// length as a plain uint64 (copy opcodes compute it from a fixed word size).
func calcMemSize64WithUint(off *uint256.Int, length64 uint64) (uint64, bool) {
	if length64 == 0 {
		return 0, false
	}
	if !off.IsUint64() {
		return 0, true
	}
	return safeAdd(off.Uint64(), length64)
}

// callGas derives the gas actually forwarded to a nested call. Pre-Tangerine
// Whistle the full requested cost is forwarded (or rejected if it doesn't
// fit in a uint64); EIP-150+ caps it at all-but-1/64th of what's left after
// the call's own base cost.
func callGas(isEip150 bool, availableGas, base uint64, callCost *uint256.Int) (uint64, error) {
	if isEip150 {
		availableGas -= base
		gas := availableGas - availableGas/64
		if !callCost.IsUint64() || gas < callCost.Uint64() {
			return gas, nil
		}
	}
	if !callCost.IsUint64() {
		return 0, n42errors.ErrGasUintOverflow
	}
	return callCost.Uint64(), nil
}

// getData returns size bytes starting at start, zero-padding past the end
// of data; used by CALLDATACOPY/CODECOPY/RETURNDATACOPY-family opcodes.
func getData(data []byte, start, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	result := make([]byte, size)
	copy(result, data[start:end])
	return result
}

// getDataBig is getData for a uint256 start offset, treating any start that
// doesn't fit in a uint64 as entirely past the end of data.
func getDataBig(data []byte, start *uint256.Int, size uint64) []byte {
	if !start.IsUint64() {
		return make([]byte, size)
	}
	return getData(data, start.Uint64(), size)
}

// allZero reports whether every byte in data is zero. No code in this
// package calls it.
func allZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}

// ---- SSTORE ----
//
// gasSStore dispatches the slot's cost across four consensus eras. It is the
// thorniest single opcode in the gas table: from Constantinople on, cost and
// refund both depend on the slot's original (transaction-start), current,
// and new values, not just current vs new, so that writing a slot back to
// its original value within one frame is cheap instead of paying twice.
//
//   - Frontier..Byzantium, and Petersburg (EIP-1283 reverted before its
//     Constantinople launch and Petersburg restored this scheme): a flat
//     fee keyed only on current vs new, no net-metering, refunded
//     unconditionally for every clearing write regardless of prior writes
//     to the same slot in the same transaction.
//   - Constantinople only: EIP-1283's net-metering formula, SLOAD priced at
//     200 (never activated on mainnet, but a real consensus rule this core
//     must reproduce bit-for-bit for a Constantinople-selected fork).
//   - Istanbul..Berlin-1: EIP-2200, the same formula with SLOAD repriced to
//     800 by EIP-1884, plus the EIP-1706 gas-stipend sentry.
//   - Berlin+: EIP-2929 layers warm/cold on top of the EIP-2200 formula —
//     cold access adds a flat surcharge to the cost but never touches the
//     refund math, and the per-slot access list additionally gates whether
//     the 100/2100 split or the already-resident 100 applies.
func gasSStore(rules *params.Rules, original, current, newVal uint256.Int, slotWarm bool) uint64 {
	switch {
	case rules.IsBerlin:
		var cold uint64
		if !slotWarm {
			cold = params.ColdSloadCostEIP2929
		}
		return cold + sstoreCostNetMetered(original, current, newVal,
			params.WarmStorageReadCostEIP2929, params.SstoreSetGasEIP2200, params.SstoreResetGasEIP2200)
	case rules.IsIstanbul:
		return sstoreCostNetMetered(original, current, newVal,
			params.SloadGasEIP1884, params.SstoreSetGasEIP2200, params.SstoreResetGasEIP2200)
	case rules.IsConstantinople && !rules.IsPetersburg:
		return sstoreCostNetMetered(original, current, newVal,
			params.NetSstoreNoopGas, params.SstoreSetGasEIP2200, params.SstoreResetGasEIP2200)
	default:
		return gasSStoreFrontier(current, newVal)
	}
}

func gasSStoreFrontier(current, newVal uint256.Int) uint64 {
	if current.IsZero() && !newVal.IsZero() {
		return params.SstoreSetGasFrontier
	}
	if !current.IsZero() && newVal.IsZero() {
		return params.SstoreResetGasFrontier
	}
	return params.SstoreResetGasFrontier
}

// sstoreCostNetMetered is the cost half of the net-metering formula shared
// by EIP-1283, EIP-2200, and EIP-2929 (the latter adding its cold surcharge
// separately): a no-op write to the slot's current value costs only a read,
// and the first write since the transaction started pays the full create or
// reset price; every later write in the same frame, having already paid
// that price once, costs only a read regardless of what it writes.
func sstoreCostNetMetered(original, current, newVal uint256.Int, noopGas, setGas, resetGas uint64) uint64 {
	if current.Eq(&newVal) {
		return noopGas
	}
	if original.Eq(&current) {
		if original.IsZero() {
			return setGas
		}
		return resetGas
	}
	return noopGas
}

// sstoreRefund computes the refund delta gasSStore's caller should apply
// given the slot's original, current, and new values, dispatching to the
// same four eras as gasSStore (EIP-2200 Table 1 / EIP-3529's reduced
// clear-refund for the net-metered tiers).
func sstoreRefund(rules *params.Rules, original, current, newVal uint256.Int) int64 {
	switch {
	case rules.IsBerlin:
		clearRefund := int64(params.SstoreClearsScheduleEIP2200)
		if rules.IsLondon {
			clearRefund = int64(params.SstoreClearsScheduleEIP3529)
		}
		return sstoreRefundNetMetered(original, current, newVal,
			params.SstoreSetGasEIP2200, params.SstoreResetGasEIP2200, params.WarmStorageReadCostEIP2929,
			params.ColdSloadCostEIP2929, clearRefund)
	case rules.IsIstanbul:
		return sstoreRefundNetMetered(original, current, newVal,
			params.SstoreSetGasEIP2200, params.SstoreResetGasEIP2200, params.SloadGasEIP1884, 0,
			int64(params.SstoreClearsScheduleEIP2200))
	case rules.IsConstantinople && !rules.IsPetersburg:
		return sstoreRefundNetMetered(original, current, newVal,
			params.SstoreSetGasEIP2200, params.SstoreResetGasEIP2200, params.NetSstoreNoopGas, 0,
			int64(params.NetSstoreDirtyClearRefund))
	default:
		// Classic pre-net-metering refund: clearing a nonzero slot always
		// refunds 15000, with no original-value tracking or cancellation,
		// since that bookkeeping didn't exist before EIP-1283.
		if !current.IsZero() && newVal.IsZero() {
			return int64(params.SstoreClearRefundFrontier)
		}
		return 0
	}
}

// sstoreRefundNetMetered is the refund half of the net-metering formula:
// reconciling a dirty write against the slot's original value, including
// cancelling out a refund a still-pending write in the same frame had
// already earned or spent. coldDiscount is the cold-access surcharge
// already billed by gasSStore's cost half (EIP-2929's ColdSloadCostEIP2929,
// zero pre-Berlin) that the reset-to-original reconciliation must also
// subtract, since that surcharge was never part of resetGas itself.
func sstoreRefundNetMetered(original, current, newVal uint256.Int, setGas, resetGas, noopGas, coldDiscount uint64, clearRefund int64) int64 {
	if current.Eq(&newVal) {
		return 0
	}
	var refund int64
	if original.Eq(&current) {
		if !original.IsZero() && newVal.IsZero() {
			refund += clearRefund
		}
		return refund
	}
	if !original.IsZero() {
		if current.IsZero() {
			refund -= clearRefund
		}
		if newVal.IsZero() {
			refund += clearRefund
		}
	}
	if original.Eq(&newVal) {
		if original.IsZero() {
			refund += int64(setGas) - int64(noopGas)
		} else {
			refund += int64(resetGas) - int64(coldDiscount) - int64(noopGas)
		}
	}
	return refund
}

// gasMcopy (EIP-5656, Cancun+) bills memory-expansion cost for the larger of
// the source and destination ranges, on top of a fixed per-word copy fee.
func gasMcopy(mem *Memory, dst, src, length uint64) (uint64, error) {
	words := toWordSize(length)
	gas, overflow := safeMul(words, params.CopyGas)
	if overflow {
		return 0, n42errors.ErrGasUintOverflow
	}

	need := dst
	if src > need {
		need = src
	}
	end, overflow := safeAdd(need, length)
	if overflow {
		return 0, n42errors.ErrGasUintOverflow
	}
	memCost, err := memoryGasCost(mem, end)
	if err != nil {
		return 0, err
	}
	total, overflow := safeAdd(gas, memCost)
	if overflow {
		return 0, n42errors.ErrGasUintOverflow
	}
	return total, nil
}

// expGasCost returns the EXP opcode's dynamic component: a fixed byte cost
// times the number of significant bytes in the exponent, per-fork byte
// price (EIP-160 raised it at Spurious Dragon).
func expGasCost(rules *params.Rules, exponent *uint256.Int) uint64 {
	expByte := uint64(params.ExpByteFrontier)
	if rules.IsSpuriousDragon {
		expByte = params.ExpByteEIP158
	}
	byteLen := uint64(exponent.ByteLen())
	return byteLen * expByte
}
