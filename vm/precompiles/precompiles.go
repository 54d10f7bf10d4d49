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

// Package precompiles is the fixed-address dispatch table CALL/STATICCALL
// consult for addresses 0x01..0x11 (and the EIP-7212 P-256 address). It
// registers itself with the vm package's RegisterPrecompileRunner hook from
// init, so vm never imports precompiles directly and there is no import
// cycle.
//
// Every precompile below other than identity (0x04) and P-256 needs a
// cryptographic primitive (secp256k1 recovery, SHA-256/RIPEMD-160, BN254
// pairing, BLAKE2b compression, BLS12-381 group operations, KZG polynomial
// commitments) that this module does not implement; calling one reports
// absent rather than guessing at a result, which CALL treats as a bare value
// transfer that succeeds with empty return data. Identity is a plain copy,
// and the P-256 signature verifier (EIP-7212/7951) is built entirely from
// crypto/ecdsa and crypto/elliptic, so those two are real implementations.
package precompiles

import (
	"github.com/n42blockchain/n42evm/common/types"
	n42errors "github.com/n42blockchain/n42evm/errors"
	"github.com/n42blockchain/n42evm/params"
	"github.com/n42blockchain/n42evm/vm"
)

var errOutOfGas = n42errors.ErrOutOfGas

// PrecompiledContract is the interface every entry in the dispatch table
// implements: report the gas an input requires, then run it.
type PrecompiledContract interface {
	RequiredGas(input []byte) uint64
	Run(input []byte) ([]byte, error)
}

// unimplemented marks an address as occupied by a precompile whose
// cryptographic primitive is out of scope for this module. Dispatch reports
// it absent (ok=false) rather than fabricate output, which the caller
// treats as a no-op transfer.
type unimplemented struct{ name string }

func (unimplemented) RequiredGas([]byte) uint64 { return 0 }
func (u unimplemented) Run([]byte) ([]byte, error) {
	return nil, nil
}

// byteAddr builds the single-trailing-byte address precompiles occupy.
func byteAddr(b byte) types.Address {
	return types.BytesToAddress([]byte{b})
}

// p256Addr is the address EIP-7212/EIP-7951 assigns secp256r1 verification:
// 0x0000...0100, one byte past the 0x01..0x11 range every other precompile
// occupies.
var p256Addr = types.BytesToAddress([]byte{0x01, 0x00})

// registry maps an address to the contract active for a given set of rules.
// table holds every address this module ever dispatches to; forRules
// filters it down to what is live for a given hardfork, mirroring the
// teacher's per-fork registration blocks.
var table = map[types.Address]PrecompiledContract{
	byteAddr(0x01): unimplemented{"ECRECOVER"},
	byteAddr(0x02): unimplemented{"SHA256"},
	byteAddr(0x03): unimplemented{"RIPEMD160"},
	byteAddr(0x04): &identity{},
	byteAddr(0x05): unimplemented{"MODEXP"},
	byteAddr(0x06): unimplemented{"BN256ADD"},
	byteAddr(0x07): unimplemented{"BN256MUL"},
	byteAddr(0x08): unimplemented{"BN256PAIRING"},
	byteAddr(0x09): unimplemented{"BLAKE2F"},
	byteAddr(0x0a): unimplemented{"KZG_POINT_EVALUATION"},
	byteAddr(0x0b): unimplemented{"BLS12_G1ADD"},
	byteAddr(0x0c): unimplemented{"BLS12_G1MSM"},
	byteAddr(0x0d): unimplemented{"BLS12_G2ADD"},
	byteAddr(0x0e): unimplemented{"BLS12_G2MSM"},
	byteAddr(0x0f): unimplemented{"BLS12_PAIRING_CHECK"},
	byteAddr(0x10): unimplemented{"BLS12_MAP_FP_TO_G1"},
	byteAddr(0x11): unimplemented{"BLS12_MAP_FP2_TO_G2"},
	p256Addr:        &p256Verify{},
}

// forRules reports whether addr is a live precompile address under rules,
// gating each fork's additions the way the teacher's registry does.
func forRules(addr types.Address, rules *params.Rules) (PrecompiledContract, bool) {
	switch addr {
	case byteAddr(0x01), byteAddr(0x02), byteAddr(0x03), byteAddr(0x04):
		return table[addr], true
	case byteAddr(0x05), byteAddr(0x06), byteAddr(0x07), byteAddr(0x08):
		if rules.IsByzantium {
			return table[addr], true
		}
		return nil, false
	case byteAddr(0x09):
		if rules.IsIstanbul {
			return table[addr], true
		}
		return nil, false
	case byteAddr(0x0a):
		if rules.IsCancun {
			return table[addr], true
		}
		return nil, false
	case byteAddr(0x0b), byteAddr(0x0c), byteAddr(0x0d), byteAddr(0x0e),
		byteAddr(0x0f), byteAddr(0x10), byteAddr(0x11):
		if rules.IsPrague {
			return table[addr], true
		}
		return nil, false
	case p256Addr:
		if rules.IsPrague {
			return table[addr], true
		}
		return nil, false
	}
	return nil, false
}

// run is the entry point wired into vm.RegisterPrecompileRunner: charge the
// contract's required gas, execute it, and return success with whatever
// output it produced. Addresses not live under rules, and unimplemented
// ones, report ok=false so the caller falls back to its no-code-present path.
func run(addr types.Address, input []byte, gas uint64, rules *params.Rules) ([]byte, uint64, bool, error) {
	contract, ok := forRules(addr, rules)
	if !ok {
		return nil, gas, false, nil
	}
	if _, stub := contract.(unimplemented); stub {
		return nil, gas, false, nil
	}
	cost := contract.RequiredGas(input)
	if cost > gas {
		return nil, 0, true, errOutOfGas
	}
	out, err := contract.Run(input)
	return out, gas - cost, true, err
}

func init() {
	vm.RegisterPrecompileRunner(run)
}
