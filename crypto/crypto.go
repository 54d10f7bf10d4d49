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

// Package crypto wraps the Keccak256 primitive the EVM uses for the
// KECCAK256 opcode, contract-address derivation, and code hashing.
package crypto

import (
	"golang.org/x/crypto/sha3"

	"github.com/n42blockchain/n42evm/common/types"
)

// Keccak256 hashes data, concatenating multiple slices before hashing (the
// common case of hashing an address+nonce pair without allocating a joined
// slice first).
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Keccak256Hash is Keccak256 returning a types.Hash directly.
func Keccak256Hash(data ...[]byte) types.Hash {
	return types.BytesToHash(Keccak256(data...))
}

// CreateAddress derives the address CREATE assigns a new contract:
// keccak256(rlp([sender, nonce]))[12:].
func CreateAddress(sender types.Address, nonce uint64) types.Address {
	return types.BytesToAddress(Keccak256(rlpSenderNonce(sender, nonce))[12:])
}

// rlpSenderNonce hand-rolls the one RLP shape CreateAddress needs: a
// two-element list of the 20-byte sender and the nonce's minimal big-endian
// encoding. A general RLP codec belongs to the wire-format layer outside
// this spec's scope; this is the one fragment the EVM core itself needs.
func rlpSenderNonce(sender types.Address, nonce uint64) []byte {
	nonceBytes := uint64Minimal(nonce)
	addrItem := rlpString(sender.Bytes())
	nonceItem := rlpString(nonceBytes)

	payload := append(append([]byte{}, addrItem...), nonceItem...)
	return append(rlpListHeader(len(payload)), payload...)
}

func uint64Minimal(n uint64) []byte {
	if n == 0 {
		return nil
	}
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(n)
		n >>= 8
	}
	i := 0
	for i < 8 && buf[i] == 0 {
		i++
	}
	return buf[i:]
}

func rlpString(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	if len(b) < 56 {
		return append([]byte{0x80 + byte(len(b))}, b...)
	}
	lenBytes := uint64Minimal(uint64(len(b)))
	return append(append([]byte{0xb7 + byte(len(lenBytes))}, lenBytes...), b...)
}

func rlpListHeader(payloadLen int) []byte {
	if payloadLen < 56 {
		return []byte{0xc0 + byte(payloadLen)}
	}
	lenBytes := uint64Minimal(uint64(payloadLen))
	return append([]byte{0xf7 + byte(len(lenBytes))}, lenBytes...)
}

// CreateAddress2 derives the address CREATE2 assigns a new contract:
// keccak256(0xff ++ sender ++ salt ++ keccak256(initCode))[12:] (EIP-1014).
func CreateAddress2(sender types.Address, salt [32]byte, initCodeHash []byte) types.Address {
	return types.BytesToAddress(Keccak256([]byte{0xff}, sender.Bytes(), salt[:], initCodeHash)[12:])
}
