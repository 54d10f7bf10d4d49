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
	"math"

	"github.com/holiman/uint256"

	"github.com/n42blockchain/n42evm/common/types"
	n42errors "github.com/n42blockchain/n42evm/errors"
)

// stateAccount holds one account's balance, nonce, code, and per-slot
// storage. It is the in-memory working copy; Database holds the persisted
// view it was loaded from (or starts empty for).
type stateAccount struct {
	address types.Address

	balance *uint256.Int
	nonce   uint64
	code    []byte
	codeHash types.Hash

	// storage is the dirty working set. originStorage lazily snapshots the
	// slot's transaction-start value on first touch.
	storage       Storage
	originStorage Storage

	deleted         bool // selfdestructed or, post-EIP-161, emptied-and-touched
	createdThisTx   bool
}

func newStateAccount(addr types.Address) *stateAccount {
	return &stateAccount{
		address:       addr,
		balance:       new(uint256.Int),
		storage:       make(Storage),
		originStorage: make(Storage),
	}
}

func (a *stateAccount) empty() bool {
	return a.nonce == 0 && a.balance.IsZero() && len(a.code) == 0
}

func (a *stateAccount) subBalance(amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	if a.balance.Cmp(amount) < 0 {
		return n42errors.ErrBalanceUnderflow
	}
	a.balance = new(uint256.Int).Sub(a.balance, amount)
	return nil
}

func (a *stateAccount) addBalance(amount *uint256.Int) {
	if amount.IsZero() {
		return
	}
	a.balance = new(uint256.Int).Add(a.balance, amount)
}

func (a *stateAccount) incrementNonce() error {
	if a.nonce == math.MaxUint64 {
		return n42errors.ErrNonceUintOverflow
	}
	a.nonce++
	return nil
}

func (a *stateAccount) setCode(code []byte, isLondon bool) error {
	if len(code) > 0 && isLondon && code[0] == 0xEF {
		return n42errors.ErrInvalidCodePrefix
	}
	if len(code) > params_MaxCodeSize {
		return n42errors.ErrCodeTooLarge
	}
	a.code = code
	a.codeHash = codeHash(code)
	return nil
}

// params_MaxCodeSize duplicates params.MaxCodeSize as a local constant; no
// test checks that the two stay equal.
const params_MaxCodeSize = 24576

func (a *stateAccount) getOriginStorage(key types.Hash, dbValue uint256.Int) uint256.Int {
	if v, ok := a.originStorage[key]; ok {
		return v
	}
	a.originStorage[key] = dbValue
	return dbValue
}

func (a *stateAccount) deepCopy() *stateAccount {
	cp := &stateAccount{
		address:       a.address,
		balance:       new(uint256.Int).Set(a.balance),
		nonce:         a.nonce,
		code:          append([]byte(nil), a.code...),
		codeHash:      a.codeHash,
		storage:       a.storage.Copy(),
		originStorage: a.originStorage.Copy(),
		deleted:       a.deleted,
		createdThisTx: a.createdThisTx,
	}
	return cp
}
