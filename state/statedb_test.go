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

package state

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/n42blockchain/n42evm/common/block"
	"github.com/n42blockchain/n42evm/common/types"
)

func TestSnapshotRevertRoundTrip(t *testing.T) {
	addr := types.HexToAddress("0x0000000000000000000000000000000000000001")
	s := New(NewMemoryDatabase())

	s.AddBalance(addr, uint256.NewInt(100))
	snap := s.Snapshot()

	s.AddBalance(addr, uint256.NewInt(50))
	s.SetNonce(addr, 7)
	s.SetState(addr, types.Hash{1}, *uint256.NewInt(9))
	require.Equal(t, uint256.NewInt(150), s.GetBalance(addr))

	s.RevertToSnapshot(snap)

	require.Equal(t, uint256.NewInt(100), s.GetBalance(addr))
	require.Equal(t, uint64(0), s.GetNonce(addr))
	got := s.GetState(addr, types.Hash{1})
	require.True(t, got.IsZero())
	t.Logf("✓ revert undid balance, nonce, and storage changes made after the snapshot")
}

func TestNestedSnapshotsUndoTogether(t *testing.T) {
	addr := types.HexToAddress("0x0000000000000000000000000000000000000002")
	s := New(NewMemoryDatabase())

	outer := s.Snapshot()
	s.AddBalance(addr, uint256.NewInt(10))
	_ = s.Snapshot() // inner, intentionally never reverted on its own
	s.AddBalance(addr, uint256.NewInt(20))

	s.RevertToSnapshot(outer)

	require.True(t, s.GetBalance(addr).IsZero())
	t.Logf("✓ reverting to an outer snapshot also undoes a never-committed inner snapshot's writes")
}

func TestAccessListWarmCold(t *testing.T) {
	addr := types.HexToAddress("0x0000000000000000000000000000000000000003")
	s := New(NewMemoryDatabase())

	require.False(t, s.AddressInAccessList(addr))
	wasCold := s.AddAddressToAccessList(addr)
	require.True(t, wasCold)
	require.True(t, s.AddressInAccessList(addr))

	wasCold = s.AddAddressToAccessList(addr)
	require.False(t, wasCold, "already-warm address is not cold on a second touch")
	t.Logf("✓ warm/cold transition behaves as EIP-2929 requires")
}

func TestAccessListRevertOnSnapshot(t *testing.T) {
	addr := types.HexToAddress("0x0000000000000000000000000000000000000004")
	slot := types.Hash{2}
	s := New(NewMemoryDatabase())

	snap := s.Snapshot()
	s.AddAddressToAccessList(addr)
	s.AddSlotToAccessList(addr, slot)
	addrOk, slotOk := s.SlotInAccessList(addr, slot)
	require.True(t, addrOk)
	require.True(t, slotOk)

	s.RevertToSnapshot(snap)

	addrOk, slotOk = s.SlotInAccessList(addr, slot)
	require.False(t, addrOk)
	require.False(t, slotOk)
	t.Logf("✓ access-list warming reverts along with snapshot rollback")
}

func TestOriginalStorageStableAcrossDirtyReads(t *testing.T) {
	addr := types.HexToAddress("0x0000000000000000000000000000000000000005")
	db := NewMemoryDatabase()
	db.SetState(addr, types.Hash{3}, *uint256.NewInt(5))
	s := New(db)

	first := s.GetCommittedState(addr, types.Hash{3})
	require.Equal(t, uint256.NewInt(5), &first)

	s.SetState(addr, types.Hash{3}, *uint256.NewInt(99))
	second := s.GetCommittedState(addr, types.Hash{3})
	require.Equal(t, uint256.NewInt(5), &second, "committed/original value must not move after a dirty write")
	t.Logf("✓ GetCommittedState stays pinned to the transaction-start value once first read")
}

func TestRefundAccounting(t *testing.T) {
	s := New(NewMemoryDatabase())

	s.AddRefund(100)
	s.AddRefund(50)
	require.Equal(t, uint64(150), s.GetRefund())

	snap := s.Snapshot()
	s.SubRefund(150)
	require.Equal(t, uint64(0), s.GetRefund())

	s.RevertToSnapshot(snap)
	require.Equal(t, uint64(150), s.GetRefund())
	t.Logf("✓ refund counter participates in snapshot/revert like any other mutation")
}

func TestSelfDestruct6780RequiresSameTxCreation(t *testing.T) {
	addr := types.HexToAddress("0x0000000000000000000000000000000000000006")
	s := New(NewMemoryDatabase())

	s.CreateAccount(addr, false)
	s.Selfdestruct6780(addr)
	require.False(t, s.HasSelfDestructed(addr), "not created this tx, so EIP-6780 selfdestruct must not mark it")

	s.MarkCreatedInTx(addr)
	s.Selfdestruct6780(addr)
	require.True(t, s.HasSelfDestructed(addr))
	t.Logf("✓ EIP-6780 restricts selfdestruct-deletes-account to same-transaction creations")
}

func TestTransientStorageWipedButJournaled(t *testing.T) {
	addr := types.HexToAddress("0x0000000000000000000000000000000000000007")
	s := New(NewMemoryDatabase())

	snap := s.Snapshot()
	s.SetTransientState(addr, types.Hash{4}, *uint256.NewInt(77))
	require.Equal(t, uint256.NewInt(77), func() *uint256.Int { v := s.GetTransientState(addr, types.Hash{4}); return &v }())

	s.RevertToSnapshot(snap)
	v := s.GetTransientState(addr, types.Hash{4})
	require.True(t, v.IsZero(), "transient writes must revert like any other journaled mutation")

	s.SetTransientState(addr, types.Hash{4}, *uint256.NewInt(1))
	s.ClearTransientStorage()
	v = s.GetTransientState(addr, types.Hash{4})
	require.True(t, v.IsZero(), "ClearTransientStorage wipes everything at transaction end")
	t.Logf("✓ transient storage is both journal-reverted mid-tx and wiped wholesale at tx end")
}

func TestLogsDiscardedOnRevert(t *testing.T) {
	addr := types.HexToAddress("0x0000000000000000000000000000000000000008")
	s := New(NewMemoryDatabase())

	snap := s.Snapshot()
	s.AddLog(&block.Log{Address: addr, Data: []byte("one")})
	require.Len(t, s.Logs(), 1)

	s.RevertToSnapshot(snap)
	require.Len(t, s.Logs(), 0)
	t.Logf("✓ logs emitted after a snapshot are discarded on revert")
}

func TestFinaliseDropsSelfDestructedAccounts(t *testing.T) {
	addr := types.HexToAddress("0x0000000000000000000000000000000000000009")
	s := New(NewMemoryDatabase())

	s.CreateAccount(addr, true)
	require.True(t, s.Exist(addr))
	s.SelfDestruct(addr)
	_, tracked := s.SelfDestructedAccounts()[addr]
	require.True(t, tracked)

	s.Finalise()
	require.False(t, s.Exist(addr))
	t.Logf("✓ Finalise removes accounts marked self-destructed")
}

func TestSelfDestructZeroesBalanceAndReverts(t *testing.T) {
	addr := types.HexToAddress("0x000000000000000000000000000000000000000a")
	s := New(NewMemoryDatabase())

	s.CreateAccount(addr, true)
	s.AddBalance(addr, uint256.NewInt(500))

	snap := s.Snapshot()
	s.SelfDestruct(addr)
	require.True(t, s.GetBalance(addr).IsZero(), "the self-destructing account's own balance is zeroed, not left behind")

	s.RevertToSnapshot(snap)
	require.Equal(t, uint256.NewInt(500), s.GetBalance(addr), "reverting a selfdestruct restores the pre-destruct balance")
	require.False(t, s.HasSelfDestructed(addr))
	t.Logf("✓ SelfDestruct zeroes the account's balance and the zeroing is journaled like any other mutation")
}

func TestSelfdestruct6780ZeroesBalanceWithoutDeletingOlderAccount(t *testing.T) {
	addr := types.HexToAddress("0x000000000000000000000000000000000000000b")
	s := New(NewMemoryDatabase())

	s.CreateAccount(addr, false) // not created in this transaction
	s.AddBalance(addr, uint256.NewInt(200))

	s.Selfdestruct6780(addr)
	require.False(t, s.HasSelfDestructed(addr), "EIP-6780: only same-tx creations are deleted")
	require.True(t, s.GetBalance(addr).IsZero(), "EIP-6780: the balance transfer still happens even when deletion does not")
	t.Logf("✓ EIP-6780 always zeroes the balance but only deletes same-transaction creations")
}
