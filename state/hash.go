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
	"github.com/n42blockchain/n42evm/common/types"
	"github.com/n42blockchain/n42evm/crypto"
)

// Hasher computes the hash identifying a byte slice of code. The default
// installed below is the real keccak256 hosts need for consensus-correct
// code hashes; SetCodeHasher lets tests swap in a cheaper stand-in.
type Hasher func([]byte) types.Hash

var codeHasher Hasher = func(code []byte) types.Hash {
	if len(code) == 0 {
		return types.Hash{}
	}
	return crypto.Keccak256Hash(code)
}

// SetCodeHasher replaces the code hash function (keccak256 by default), for
// instance with a test stand-in.
func SetCodeHasher(h Hasher) { codeHasher = h }

func codeHash(code []byte) types.Hash { return codeHasher(code) }
