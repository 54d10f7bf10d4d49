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

var _ Database = (*MemoryDatabase)(nil)

// MemoryDatabase is a trivial Database backed by plain Go maps, useful for
// standalone execution and tests that don't need a real persistence layer.
type MemoryDatabase struct {
	balances map[types.Address]*uint256.Int
	nonces   map[types.Address]uint64
	codes    map[types.Address][]byte
	storage  map[types.Address]Storage
}

// NewMemoryDatabase returns an empty in-memory Database.
func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{
		balances: make(map[types.Address]*uint256.Int),
		nonces:   make(map[types.Address]uint64),
		codes:    make(map[types.Address][]byte),
		storage:  make(map[types.Address]Storage),
	}
}

func (m *MemoryDatabase) GetBalance(addr types.Address) *uint256.Int {
	if b, ok := m.balances[addr]; ok {
		return new(uint256.Int).Set(b)
	}
	return new(uint256.Int)
}

func (m *MemoryDatabase) SetBalance(addr types.Address, balance *uint256.Int) {
	m.balances[addr] = new(uint256.Int).Set(balance)
}

func (m *MemoryDatabase) GetNonce(addr types.Address) uint64 { return m.nonces[addr] }

func (m *MemoryDatabase) SetNonce(addr types.Address, nonce uint64) { m.nonces[addr] = nonce }

func (m *MemoryDatabase) GetCode(addr types.Address) []byte { return m.codes[addr] }

func (m *MemoryDatabase) SetCode(addr types.Address, code []byte) {
	m.codes[addr] = append([]byte(nil), code...)
}

func (m *MemoryDatabase) GetCodeHash(addr types.Address) types.Hash {
	return codeHash(m.codes[addr])
}

func (m *MemoryDatabase) GetState(addr types.Address, key types.Hash) uint256.Int {
	if slots, ok := m.storage[addr]; ok {
		return slots[key]
	}
	return uint256.Int{}
}

func (m *MemoryDatabase) SetState(addr types.Address, key types.Hash, value uint256.Int) {
	slots, ok := m.storage[addr]
	if !ok {
		slots = make(Storage)
		m.storage[addr] = slots
	}
	slots[key] = value
}

func (m *MemoryDatabase) Exist(addr types.Address) bool {
	if _, ok := m.balances[addr]; ok {
		return true
	}
	if _, ok := m.nonces[addr]; ok {
		return true
	}
	if _, ok := m.codes[addr]; ok {
		return true
	}
	_, ok := m.storage[addr]
	return ok
}
