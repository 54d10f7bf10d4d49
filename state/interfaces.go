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

// Package state holds per-transaction account/storage/log maps, the
// snapshot stack, warm-set bookkeeping, and the refund counter, backed by a
// caller-supplied persistent Database.
package state

import (
	"github.com/holiman/uint256"

	"github.com/n42blockchain/n42evm/common/block"
	"github.com/n42blockchain/n42evm/common/transaction"
	"github.com/n42blockchain/n42evm/common/types"
)

// StateDB is the interface the FrameInterpreter and Orchestrator use for
// all state access. *IntraBlockState implements it. Kept as a standalone
// interface (rather than a concrete type reference) so tests can supply a
// mock, and so the host boundary stays distinguishable from the EVM's own
// warm/cold and journaling bookkeeping layered above it.
type StateDB interface {
	// ---- Account management ----
	CreateAccount(addr types.Address, contractCreation bool)
	Exist(addr types.Address) bool
	Empty(addr types.Address) bool

	// ---- Balance ----
	SubBalance(addr types.Address, amount *uint256.Int) error
	AddBalance(addr types.Address, amount *uint256.Int)
	GetBalance(addr types.Address) *uint256.Int

	// ---- Nonce ----
	GetNonce(addr types.Address) uint64
	SetNonce(addr types.Address, nonce uint64)
	IncrementNonce(addr types.Address) error

	// ---- Code ----
	GetCodeHash(addr types.Address) types.Hash
	GetCode(addr types.Address) []byte
	SetCode(addr types.Address, code []byte, isLondon bool) error
	GetCodeSize(addr types.Address) int

	// ---- Refund ----
	AddRefund(gas uint64)
	SubRefund(gas uint64)
	GetRefund() uint64

	// ---- Storage ----
	GetCommittedState(addr types.Address, key types.Hash) uint256.Int
	GetState(addr types.Address, key types.Hash) uint256.Int
	SetState(addr types.Address, key types.Hash, value uint256.Int)

	// ---- Transient storage (EIP-1153, Cancun+) ----
	GetTransientState(addr types.Address, key types.Hash) uint256.Int
	SetTransientState(addr types.Address, key types.Hash, value uint256.Int)

	// ---- Self-destruct ----
	SelfDestruct(addr types.Address)
	Selfdestruct6780(addr types.Address) // EIP-6780: only if created this tx
	HasSelfDestructed(addr types.Address) bool

	// ---- Access lists (EIP-2929/2930, Berlin+) ----
	AddressInAccessList(addr types.Address) bool
	SlotInAccessList(addr types.Address, slot types.Hash) (addressOk, slotOk bool)
	AddAddressToAccessList(addr types.Address) (addrMod bool)
	AddSlotToAccessList(addr types.Address, slot types.Hash) (addrMod, slotMod bool)
	PrepareAccessList(sender types.Address, dst *types.Address, precompiles []types.Address, list transaction.AccessList)

	// ---- Snapshot / revert ----
	Snapshot() int
	RevertToSnapshot(id int)

	// ---- Logs ----
	AddLog(log *block.Log)
	Logs() []*block.Log

	// ---- Created-this-tx tracking (needed for EIP-6780) ----
	AddAddressToAccessListNoSnapshot(addr types.Address) // warm without journaling (tx setup)
	MarkCreatedInTx(addr types.Address)
	CreatedInTx(addr types.Address) bool

	// ---- End-of-transaction housekeeping ----
	Finalise()
	SelfDestructedAccounts() map[types.Address]types.Address // addr -> addr; the beneficiary is not recorded
	ClearTransientStorage()
}

// Database is the persistent backend that IntraBlockState layers its
// journaling and access-set bookkeeping above. Nested call execution never
// goes through this interface directly — it is handled internally by the
// EVM and IntraBlockState.
type Database interface {
	GetBalance(addr types.Address) *uint256.Int
	SetBalance(addr types.Address, balance *uint256.Int)
	GetNonce(addr types.Address) uint64
	SetNonce(addr types.Address, nonce uint64)
	GetCode(addr types.Address) []byte
	SetCode(addr types.Address, code []byte)
	GetCodeHash(addr types.Address) types.Hash
	GetState(addr types.Address, key types.Hash) uint256.Int
	SetState(addr types.Address, key types.Hash, value uint256.Int)
	Exist(addr types.Address) bool
}

// Storage is a slot->value map for one account.
type Storage map[types.Hash]uint256.Int

// Copy returns a deep copy of s.
func (s Storage) Copy() Storage {
	cp := make(Storage, len(s))
	for k, v := range s {
		cp[k] = v
	}
	return cp
}
