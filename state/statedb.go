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
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/n42blockchain/n42evm/common/block"
	"github.com/n42blockchain/n42evm/common/transaction"
	"github.com/n42blockchain/n42evm/common/types"
	"github.com/n42blockchain/n42evm/log"
)

var _ StateDB = (*IntraBlockState)(nil)

// IntraBlockState is the mutable, per-transaction working set of accounts,
// storage, logs, and access sets, backed by a caller-owned Database for
// anything it hasn't touched yet.
type IntraBlockState struct {
	db Database

	objects map[types.Address]*stateAccount

	access           *accessList
	transientStorage transientStorage

	journal *journal
	refund  uint64

	logs []*block.Log

	selfDestructs map[types.Address]types.Address // addr -> addr; the beneficiary is not recorded

	logger log.Logger
}

// New creates an IntraBlockState over db. db may be nil to run in pure
// in-memory mode, where every account starts empty.
func New(db Database) *IntraBlockState {
	return &IntraBlockState{
		db:               db,
		objects:          make(map[types.Address]*stateAccount),
		access:           newAccessList(),
		transientStorage: newTransientStorage(),
		journal:          newJournal(),
		selfDestructs:    make(map[types.Address]types.Address),
		logger:           log.New("module", "state"),
	}
}

func (s *IntraBlockState) getOrLoad(addr types.Address) *stateAccount {
	if obj, ok := s.objects[addr]; ok {
		return obj
	}
	obj := newStateAccount(addr)
	if s.db != nil && s.db.Exist(addr) {
		obj.balance = s.db.GetBalance(addr)
		obj.nonce = s.db.GetNonce(addr)
		obj.code = s.db.GetCode(addr)
		obj.codeHash = s.db.GetCodeHash(addr)
	}
	s.objects[addr] = obj
	return obj
}

// ---- Account management ----

func (s *IntraBlockState) CreateAccount(addr types.Address, contractCreation bool) {
	existing, had := s.objects[addr]
	obj := newStateAccount(addr)
	if had {
		// Preserve balance across re-creation (CREATE2 onto a
		// previously-sent-to-but-empty address keeps the ether it holds).
		obj.balance = existing.balance
	} else if s.db != nil && s.db.Exist(addr) {
		obj.balance = s.db.GetBalance(addr)
	}
	s.journal.append(createObjectChange{account: &addr})
	s.objects[addr] = obj
	if contractCreation {
		s.MarkCreatedInTx(addr)
	}
}

func (s *IntraBlockState) Exist(addr types.Address) bool {
	if obj, ok := s.objects[addr]; ok {
		return !obj.deleted
	}
	return s.db != nil && s.db.Exist(addr)
}

func (s *IntraBlockState) Empty(addr types.Address) bool {
	obj := s.getOrLoad(addr)
	return obj.empty()
}

// ---- Balance ----

func (s *IntraBlockState) SubBalance(addr types.Address, amount *uint256.Int) error {
	obj := s.getOrLoad(addr)
	s.journal.append(balanceChange{account: &addr, prev: new(uint256.Int).Set(obj.balance)})
	if err := obj.subBalance(amount); err != nil {
		return errors.Wrapf(err, "state: sub balance %s", addr.Hex())
	}
	return nil
}

func (s *IntraBlockState) AddBalance(addr types.Address, amount *uint256.Int) {
	obj := s.getOrLoad(addr)
	s.journal.append(balanceChange{account: &addr, prev: new(uint256.Int).Set(obj.balance)})
	obj.addBalance(amount)
}

func (s *IntraBlockState) GetBalance(addr types.Address) *uint256.Int {
	return new(uint256.Int).Set(s.getOrLoad(addr).balance)
}

// ---- Nonce ----

func (s *IntraBlockState) GetNonce(addr types.Address) uint64 {
	return s.getOrLoad(addr).nonce
}

func (s *IntraBlockState) SetNonce(addr types.Address, nonce uint64) {
	obj := s.getOrLoad(addr)
	s.journal.append(nonceChange{account: &addr, prev: obj.nonce})
	obj.nonce = nonce
}

func (s *IntraBlockState) IncrementNonce(addr types.Address) error {
	obj := s.getOrLoad(addr)
	s.journal.append(nonceChange{account: &addr, prev: obj.nonce})
	if err := obj.incrementNonce(); err != nil {
		return errors.Wrapf(err, "state: increment nonce %s", addr.Hex())
	}
	return nil
}

// ---- Code ----

func (s *IntraBlockState) GetCodeHash(addr types.Address) types.Hash {
	return s.getOrLoad(addr).codeHash
}

func (s *IntraBlockState) GetCode(addr types.Address) []byte {
	return s.getOrLoad(addr).code
}

func (s *IntraBlockState) SetCode(addr types.Address, code []byte, isLondon bool) error {
	obj := s.getOrLoad(addr)
	s.journal.append(codeChange{account: &addr, prevCode: obj.code, prevHash: obj.codeHash})
	if err := obj.setCode(code, isLondon); err != nil {
		return errors.Wrapf(err, "state: set code %s", addr.Hex())
	}
	return nil
}

func (s *IntraBlockState) GetCodeSize(addr types.Address) int {
	return len(s.getOrLoad(addr).code)
}

// ---- Refund ----
//
// The refund counter never goes negative: SubRefund clamps to zero
// immediately rather than deferring the clamp to end of transaction, so
// callers (the SSTORE gas algorithm) must never request more than
// GetRefund() currently holds.

func (s *IntraBlockState) AddRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	s.refund += gas
}

func (s *IntraBlockState) SubRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	if gas > s.refund {
		s.logger.Warn("refund counter below zero", "refund", s.refund, "sub", gas)
		s.refund = 0
		return
	}
	s.refund -= gas
}

func (s *IntraBlockState) GetRefund() uint64 { return s.refund }

// ---- Storage ----

func (s *IntraBlockState) GetCommittedState(addr types.Address, key types.Hash) uint256.Int {
	obj := s.getOrLoad(addr)
	var dbValue uint256.Int
	if s.db != nil {
		dbValue = s.db.GetState(addr, key)
	}
	return obj.getOriginStorage(key, dbValue)
}

func (s *IntraBlockState) GetState(addr types.Address, key types.Hash) uint256.Int {
	obj := s.getOrLoad(addr)
	if v, ok := obj.storage[key]; ok {
		return v
	}
	return s.GetCommittedState(addr, key)
}

func (s *IntraBlockState) SetState(addr types.Address, key types.Hash, value uint256.Int) {
	obj := s.getOrLoad(addr)
	prev, had := obj.storage[key]
	s.journal.append(storageChange{account: &addr, key: key, prevalue: prev, hadValue: had})
	obj.storage[key] = value
}

// ---- Transient storage ----

func (s *IntraBlockState) GetTransientState(addr types.Address, key types.Hash) uint256.Int {
	return s.transientStorage.Get(addr, key)
}

func (s *IntraBlockState) SetTransientState(addr types.Address, key types.Hash, value uint256.Int) {
	prev := s.transientStorage.Get(addr, key)
	s.journal.append(transientStorageChange{account: &addr, key: key, prevalue: prev})
	s.transientStorage.Set(addr, key, value)
}

func (s *IntraBlockState) ClearTransientStorage() {
	s.transientStorage = newTransientStorage()
}

// ---- Self-destruct ----

func (s *IntraBlockState) SelfDestruct(addr types.Address) {
	obj := s.getOrLoad(addr)
	s.journal.append(selfDestructChange{
		account:     &addr,
		prevDeleted: obj.deleted,
		prevBalance: new(uint256.Int).Set(obj.balance),
	})
	obj.deleted = true
	obj.balance = new(uint256.Int)
	s.selfDestructs[addr] = addr // keyed and valued by addr; opSelfdestruct credits the beneficiary directly
}

// Selfdestruct6780 applies EIP-6780 semantics (Cancun+): the balance
// transfer to the beneficiary always takes effect, so the account's own
// balance is always zeroed here, but the account is only marked for
// deletion if it was created earlier in the same transaction.
func (s *IntraBlockState) Selfdestruct6780(addr types.Address) {
	if !s.CreatedInTx(addr) {
		obj := s.getOrLoad(addr)
		s.journal.append(balanceChange{account: &addr, prev: new(uint256.Int).Set(obj.balance)})
		obj.balance = new(uint256.Int)
		return
	}
	s.SelfDestruct(addr)
}

func (s *IntraBlockState) HasSelfDestructed(addr types.Address) bool {
	if obj, ok := s.objects[addr]; ok {
		return obj.deleted
	}
	return false
}

func (s *IntraBlockState) SelfDestructedAccounts() map[types.Address]types.Address {
	return s.selfDestructs
}

// ---- Access lists ----

func (s *IntraBlockState) AddressInAccessList(addr types.Address) bool {
	return s.access.ContainsAddress(addr)
}

func (s *IntraBlockState) SlotInAccessList(addr types.Address, slot types.Hash) (bool, bool) {
	return s.access.Contains(addr, slot)
}

func (s *IntraBlockState) AddAddressToAccessList(addr types.Address) bool {
	if s.access.AddAddress(addr) {
		s.journal.append(accessListAddAccountChange{address: &addr})
		return true
	}
	return false
}

func (s *IntraBlockState) AddAddressToAccessListNoSnapshot(addr types.Address) {
	s.access.AddAddress(addr)
}

func (s *IntraBlockState) AddSlotToAccessList(addr types.Address, slot types.Hash) (bool, bool) {
	addrMod, slotMod := s.access.AddSlot(addr, slot)
	if addrMod {
		s.journal.append(accessListAddAccountChange{address: &addr})
	}
	if slotMod {
		s.journal.append(accessListAddSlotChange{address: &addr, slot: &slot})
	}
	return addrMod, slotMod
}

func (s *IntraBlockState) PrepareAccessList(sender types.Address, dst *types.Address, precompiles []types.Address, list transaction.AccessList) {
	s.access = newAccessList()
	s.access.AddAddress(sender)
	if dst != nil {
		s.access.AddAddress(*dst)
	}
	for _, p := range precompiles {
		s.access.AddAddress(p)
	}
	for _, tuple := range list {
		s.access.AddAddress(tuple.Address)
		for _, key := range tuple.StorageKeys {
			s.access.AddSlot(tuple.Address, key)
		}
	}
}

// ---- Logs ----

func (s *IntraBlockState) AddLog(log *block.Log) {
	log.Index = uint(len(s.logs))
	s.logs = append(s.logs, log)
	s.journal.append(addLogChange{})
}

func (s *IntraBlockState) Logs() []*block.Log { return s.logs }

// ---- Created-in-tx tracking (EIP-6780) ----

func (s *IntraBlockState) MarkCreatedInTx(addr types.Address) {
	obj := s.getOrLoad(addr)
	s.journal.append(createdInTxChange{account: &addr, prev: obj.createdThisTx})
	obj.createdThisTx = true
}

func (s *IntraBlockState) CreatedInTx(addr types.Address) bool {
	if obj, ok := s.objects[addr]; ok {
		return obj.createdThisTx
	}
	return false
}

// ---- Snapshot / revert ----

// Snapshot returns an opaque checkpoint identifier. Internally it is simply
// the journal length: reverting replays journal entries after this point in
// LIFO order, an O(1) checkpoint and an O(changes) revert rather than
// deep-cloning state on every call.
func (s *IntraBlockState) Snapshot() int {
	return s.journal.length()
}

// RevertToSnapshot rolls back all mutations recorded after id. Reverting to
// an outer snapshot also undoes anything a never-committed inner snapshot
// had done, since those entries sit after id in the journal.
func (s *IntraBlockState) RevertToSnapshot(id int) {
	s.journal.revertTo(s, id)
}

// Finalise drops accounts marked self-destructed from the working set once
// the EVM has resolved beneficiary transfers; call at transaction end, after
// self-destruct processing.
func (s *IntraBlockState) Finalise() {
	for addr, obj := range s.objects {
		if obj.deleted {
			delete(s.objects, addr)
		}
	}
}
