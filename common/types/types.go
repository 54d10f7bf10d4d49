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

// Package types defines the wire-level data types shared across the EVM
// core: 20-byte addresses and 32-byte hashes.
package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the expected length of an account address.
const AddressLength = 20

// HashLength is the expected length of a hash.
const HashLength = 32

// Address represents the 20-byte address of an Ethereum account.
type Address [AddressLength]byte

// Hash represents a 32-byte keccak256 hash or storage/topic slot.
type Hash [HashLength]byte

// BytesToAddress converts b to an Address, left-padding or truncating from
// the left as needed (mirrors go-ethereum's common.BytesToAddress).
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// HexToAddress converts a hex string (with or without 0x prefix) to an Address.
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s))
}

// Bytes returns the byte slice representation of a.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the "0x"-prefixed hex representation.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

func (a Address) String() string { return a.Hex() }

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool { return a == Address{} }

// Cmp orders addresses lexicographically, for use as map/tree keys.
func (a Address) Cmp(b Address) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// BytesToHash converts b to a Hash, left-padding or truncating as needed.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// HexToHash converts a hex string to a Hash.
func HexToHash(s string) Hash {
	return BytesToHash(fromHex(s))
}

// Bytes returns the byte slice representation of h.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the "0x"-prefixed hex representation.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

func (h Hash) String() string { return h.Hex() }

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool { return h == Hash{} }

func fromHex(s string) []byte {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(fmt.Sprintf("types: invalid hex string %q: %v", s, err))
	}
	return b
}
