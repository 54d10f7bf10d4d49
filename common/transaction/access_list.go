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

// EIP-2930: Optional access lists
// https://eips.ethereum.org/EIPS/eip-2930

package transaction

import "github.com/n42blockchain/n42evm/common/types"

// AccessTuple is a single (address, storage keys) pre-declaration.
type AccessTuple struct {
	Address     types.Address
	StorageKeys []types.Hash
}

// AccessList is an EIP-2930 access list: addresses and storage slots to
// pre-warm at transaction start, paid for via intrinsic gas.
type AccessList []AccessTuple

// StorageKeys returns the total number of storage keys across the list,
// used for intrinsic gas accounting.
func (al AccessList) StorageKeys() int {
	n := 0
	for _, tuple := range al {
		n += len(tuple.StorageKeys)
	}
	return n
}
