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

	"github.com/n42blockchain/n42evm/common/types"
)

// journalEntry is one undoable mutation. revert() restores the StateDB to
// the state it was in immediately before the mutation was applied. Entries
// are replayed in reverse (LIFO) order on revert, which is what makes
// snapshot creation O(1): only the deltas since the snapshot are recorded,
// never a deep clone of the whole state.
type journalEntry interface {
	revert(s *IntraBlockState)
	dirtied() *types.Address
}

type journal struct {
	entries []journalEntry
	dirties map[types.Address]int // address -> number of journal entries mentioning it
}

func newJournal() *journal {
	return &journal{dirties: make(map[types.Address]int)}
}

func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
	if addr := entry.dirtied(); addr != nil {
		j.dirties[*addr]++
	}
}

// length returns the number of entries, used as a lightweight alternative
// revert marker when a snapshot ID is not otherwise needed.
func (j *journal) length() int { return len(j.entries) }

// revertTo replays entries after snapshot (exclusive) in LIFO order.
func (j *journal) revertTo(s *IntraBlockState, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		j.entries[i].revert(s)
		if addr := j.entries[i].dirtied(); addr != nil {
			if j.dirties[*addr]--; j.dirties[*addr] == 0 {
				delete(j.dirties, *addr)
			}
		}
	}
	j.entries = j.entries[:snapshot]
}

// ---- concrete entries ----

type createObjectChange struct {
	account *types.Address
}

func (c createObjectChange) revert(s *IntraBlockState) {
	delete(s.objects, *c.account)
}
func (c createObjectChange) dirtied() *types.Address { return c.account }

type selfDestructChange struct {
	account     *types.Address
	prevDeleted bool
	prevBalance *uint256.Int
}

func (c selfDestructChange) revert(s *IntraBlockState) {
	if obj := s.objects[*c.account]; obj != nil {
		obj.deleted = c.prevDeleted
		obj.balance = c.prevBalance
	}
	delete(s.selfDestructs, *c.account)
}
func (c selfDestructChange) dirtied() *types.Address { return c.account }

type balanceChange struct {
	account *types.Address
	prev    *uint256.Int
}

func (c balanceChange) revert(s *IntraBlockState) {
	s.objects[*c.account].balance = c.prev
}
func (c balanceChange) dirtied() *types.Address { return c.account }

type nonceChange struct {
	account *types.Address
	prev    uint64
}

func (c nonceChange) revert(s *IntraBlockState) {
	s.objects[*c.account].nonce = c.prev
}
func (c nonceChange) dirtied() *types.Address { return c.account }

type codeChange struct {
	account            *types.Address
	prevCode           []byte
	prevHash           types.Hash
}

func (c codeChange) revert(s *IntraBlockState) {
	obj := s.objects[*c.account]
	obj.code = c.prevCode
	obj.codeHash = c.prevHash
}
func (c codeChange) dirtied() *types.Address { return c.account }

type storageChange struct {
	account  *types.Address
	key      types.Hash
	prevalue uint256.Int
	hadValue bool
}

func (c storageChange) revert(s *IntraBlockState) {
	obj := s.objects[*c.account]
	if c.hadValue {
		obj.storage[c.key] = c.prevalue
	} else {
		delete(obj.storage, c.key)
	}
}
func (c storageChange) dirtied() *types.Address { return c.account }

type transientStorageChange struct {
	account  *types.Address
	key      types.Hash
	prevalue uint256.Int
}

func (c transientStorageChange) revert(s *IntraBlockState) {
	s.transientStorage.Set(*c.account, c.key, c.prevalue)
}
func (c transientStorageChange) dirtied() *types.Address { return nil }

type refundChange struct {
	prev uint64
}

func (c refundChange) revert(s *IntraBlockState) { s.refund = c.prev }
func (c refundChange) dirtied() *types.Address   { return nil }

type addLogChange struct{}

func (c addLogChange) revert(s *IntraBlockState) {
	s.logs = s.logs[:len(s.logs)-1]
}
func (c addLogChange) dirtied() *types.Address { return nil }

type accessListAddAccountChange struct {
	address *types.Address
}

func (c accessListAddAccountChange) revert(s *IntraBlockState) {
	s.access.DeleteAddress(*c.address)
}
func (c accessListAddAccountChange) dirtied() *types.Address { return nil }

type accessListAddSlotChange struct {
	address *types.Address
	slot    *types.Hash
}

func (c accessListAddSlotChange) revert(s *IntraBlockState) {
	s.access.DeleteSlot(*c.address, *c.slot)
}
func (c accessListAddSlotChange) dirtied() *types.Address { return nil }

type createdInTxChange struct {
	account *types.Address
	prev    bool
}

func (c createdInTxChange) revert(s *IntraBlockState) {
	s.objects[*c.account].createdThisTx = c.prev
}
func (c createdInTxChange) dirtied() *types.Address { return c.account }
