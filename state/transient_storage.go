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

// EIP-1153: Transient storage opcodes (Cancun+)
// https://eips.ethereum.org/EIPS/eip-1153

package state

import (
	"github.com/holiman/uint256"

	"github.com/n42blockchain/n42evm/common/types"
)

// transientStorage holds per-transaction scratch storage, wiped wholesale
// at transaction end. Writes are still journaled (see transientStorageChange
// in journal.go) since a revert within the same transaction must undo them.
type transientStorage map[types.Address]Storage

func newTransientStorage() transientStorage {
	return make(transientStorage)
}

func (t transientStorage) Set(addr types.Address, key types.Hash, value uint256.Int) {
	if _, ok := t[addr]; !ok {
		t[addr] = make(Storage)
	}
	t[addr][key] = value
}

func (t transientStorage) Get(addr types.Address, key types.Hash) uint256.Int {
	val, ok := t[addr]
	if !ok {
		return uint256.Int{}
	}
	return val[key]
}

func (t transientStorage) Copy() transientStorage {
	cp := make(transientStorage, len(t))
	for addr, storage := range t {
		cp[addr] = storage.Copy()
	}
	return cp
}
