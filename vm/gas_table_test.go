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
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/n42blockchain/n42evm/params"
)

func u256(v uint64) uint256.Int { return *uint256.NewInt(v) }

// TestGasSStoreSetFromColdZeroSlot pins the spec's worked example #2: a
// cold, never-written slot set to a nonzero value on a Berlin+ fork costs
// the cold surcharge plus the full SSTORE_SET price, not the reset price —
// the cost depends on the original value, not just current vs new.
func TestGasSStoreSetFromColdZeroSlot(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Cancun)
	cost := gasSStore(rules, u256(0), u256(0), u256(42), false)
	require.Equal(t, uint64(params.ColdSloadCostEIP2929+params.SstoreSetGasEIP2200), cost)
	t.Logf("✓ SSTORE into a cold zero slot charges the cold surcharge plus the full set price")
}

func TestGasSStoreWarmNoopIsCheap(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Cancun)
	cost := gasSStore(rules, u256(5), u256(5), u256(5), true)
	require.Equal(t, uint64(params.WarmStorageReadCostEIP2929), cost)
	refund := sstoreRefund(rules, u256(5), u256(5), u256(5))
	require.Zero(t, refund)
	t.Logf("✓ writing a slot's current value back to itself is a warm-read-priced, refund-neutral no-op")
}

// TestGasSStoreReentrantRefundCancels pins the spec's worked example #5: a
// slot starts at original=5, an outer write clears it to 0 (earning the
// clear refund), and an inner write restores it to 5 — which must undo the
// clear refund and additionally apply the reset-to-original reconciliation
// (EIP-2200 Table 1's "dirty update, reset to original, nonzero" row), not
// cancel back to an exact zero net.
func TestGasSStoreReentrantRefundCancels(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Cancun)
	original := u256(5)

	clearRefund := sstoreRefund(rules, original, u256(5), u256(0))
	require.Equal(t, int64(params.SstoreClearsScheduleEIP3529), clearRefund)

	restoreRefund := sstoreRefund(rules, original, u256(0), u256(5))
	want := -(int64(params.SstoreClearsScheduleEIP3529)) + (int64(params.SstoreResetGasEIP2200) - int64(params.ColdSloadCostEIP2929) - int64(params.WarmStorageReadCostEIP2929))
	require.Equal(t, want, restoreRefund)
	require.Equal(t, int64(-2000), restoreRefund, "restoring original=5 after clearing it costs -4800 to cancel the clear plus +2800 reset-to-original reconciliation")

	t.Logf("✓ a reentrant SSTORE that undoes an earlier clear leaves a net -2000 refund, not a full cancellation")
}

// TestGasSStoreConstantinopleNeverMixesWithPetersburg asserts the historical
// carve-out: EIP-1283's net metering (SLOAD priced at 200) applied only to
// the brief Constantinople window before Petersburg reverted it, matching
// what actually happened to this EIP on mainnet.
func TestGasSStoreConstantinopleNeverMixesWithPetersburg(t *testing.T) {
	constantinople := params.RulesForHardfork(1, params.Constantinople)
	require.True(t, constantinople.IsConstantinople)
	require.False(t, constantinople.IsPetersburg)

	noop := gasSStore(constantinople, u256(1), u256(1), u256(1), false)
	require.Equal(t, uint64(params.NetSstoreNoopGas), noop)

	petersburg := params.RulesForHardfork(1, params.Petersburg)
	flatCost := gasSStore(petersburg, u256(1), u256(1), u256(2), false)
	require.Equal(t, uint64(params.SstoreResetGasFrontier), flatCost, "Petersburg reverts to the flat pre-net-metering schedule")
	t.Logf("✓ EIP-1283 net metering only ever applied to the Constantinople-only window")
}

// TestGasSStoreIstanbulReplaysEIP1283WithRepricedSload verifies Istanbul
// reinstates net metering (as EIP-2200) using SLOAD's EIP-1884 price of 800
// rather than Constantinople's original 200.
func TestGasSStoreIstanbulReplaysEIP1283WithRepricedSload(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Istanbul)
	cost := gasSStore(rules, u256(0), u256(0), u256(0), false)
	require.Equal(t, uint64(params.SloadGasEIP1884), cost)
	t.Logf("✓ Istanbul's net-metering no-op costs SLOAD_GAS=800, not Constantinople's 200")
}

func TestGasSStoreFrontierFlatSchedule(t *testing.T) {
	rules := params.RulesForHardfork(1, params.Frontier)
	require.Equal(t, uint64(params.SstoreSetGasFrontier), gasSStore(rules, u256(0), u256(0), u256(1), false))
	require.Equal(t, uint64(params.SstoreResetGasFrontier), gasSStore(rules, u256(0), u256(1), u256(0), false))
	require.Equal(t, int64(params.SstoreClearRefundFrontier), sstoreRefund(rules, u256(0), u256(1), u256(0)))
	t.Logf("✓ pre-Constantinople SSTORE uses the flat, non-net-metered schedule")
}

func TestMemoryGasCostQuadratic(t *testing.T) {
	mem := NewMemory()
	cost, err := memoryGasCost(mem, 32)
	require.NoError(t, err)
	require.Equal(t, uint64(3), cost, "growing from empty to one word costs 1*3 + 1*1/512 = 3")

	mem.lastGasCost = cost
	mem.Resize(32)
	cost2, err := memoryGasCost(mem, 64)
	require.NoError(t, err)
	require.Equal(t, uint64(3), cost2, "growing from one to two words costs (2*3+4/512) - 3 = 3")
}
