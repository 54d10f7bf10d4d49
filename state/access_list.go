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

// EIP-2929/EIP-2930: warm/cold access-set bookkeeping (Berlin+)
// https://eips.ethereum.org/EIPS/eip-2929

package state

import "github.com/n42blockchain/n42evm/common/types"

// accessList tracks the warm set of addresses and (address, slot) pairs for
// one transaction. Once added, an entry is never removed by ordinary
// execution — only a snapshot revert removes entries added after that
// snapshot, so "once warm, always warm" holds within any surviving branch
// of execution.
type accessList struct {
	addresses map[types.Address]int // value = index into slots, or -1 if no slots tracked yet
	slots     []map[types.Hash]struct{}
}

func newAccessList() *accessList {
	return &accessList{
		addresses: make(map[types.Address]int),
	}
}

// ContainsAddress reports whether addr is warm.
func (al *accessList) ContainsAddress(addr types.Address) bool {
	_, ok := al.addresses[addr]
	return ok
}

// Contains reports whether addr and slot are each warm.
func (al *accessList) Contains(addr types.Address, slot types.Hash) (addressOk bool, slotOk bool) {
	idx, ok := al.addresses[addr]
	if !ok {
		return false, false
	}
	if idx == -1 {
		return true, false
	}
	_, slotOk = al.slots[idx][slot]
	return true, slotOk
}

// AddAddress warms addr. Returns true if it was cold (a real change).
func (al *accessList) AddAddress(addr types.Address) bool {
	if _, ok := al.addresses[addr]; ok {
		return false
	}
	al.addresses[addr] = -1
	return true
}

// AddSlot warms (addr, slot). Returns whether the address and/or the slot
// were newly warmed.
func (al *accessList) AddSlot(addr types.Address, slot types.Hash) (addrMod, slotMod bool) {
	idx, addrPresent := al.addresses[addr]
	if !addrPresent || idx == -1 {
		al.slots = append(al.slots, map[types.Hash]struct{}{slot: {}})
		al.addresses[addr] = len(al.slots) - 1
		return !addrPresent, true
	}
	if _, ok := al.slots[idx][slot]; ok {
		return false, false
	}
	al.slots[idx][slot] = struct{}{}
	return false, true
}

// DeleteSlot undoes AddSlot's warming of one slot (used by journal revert).
func (al *accessList) DeleteSlot(addr types.Address, slot types.Hash) {
	idx, ok := al.addresses[addr]
	if !ok || idx == -1 {
		return
	}
	delete(al.slots[idx], slot)
}

// DeleteAddress undoes AddAddress's warming of one address.
func (al *accessList) DeleteAddress(addr types.Address) {
	delete(al.addresses, addr)
}
