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

package precompiles

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"

	"github.com/n42blockchain/n42evm/params"
)

// EIP-7212/EIP-7951: secp256r1 (P-256) signature verification, implemented
// in full (as is identity) since it needs none of the curve/pairing/hash
// primitives the rest of the table is stubbed out for.
//
// Input is 160 bytes: [0:32] message hash, [32:64] r, [64:96] s,
// [96:128] pubkey x, [128:160] pubkey y. Output is a single 32-byte word,
// 1 for a valid signature, empty for an invalid one — verification failure
// is not an error, it's a defined result.
const p256InputLength = 160

var (
	p256Curve = elliptic.P256()
	p256N     = p256Curve.Params().N
)

type p256Verify struct{}

func (p256Verify) RequiredGas([]byte) uint64 { return params.PrecompileP256VerifyGas }

func (p256Verify) Run(input []byte) ([]byte, error) {
	if len(input) < p256InputLength {
		padded := make([]byte, p256InputLength)
		copy(padded, input)
		input = padded
	}

	hash := input[0:32]
	r := new(big.Int).SetBytes(input[32:64])
	s := new(big.Int).SetBytes(input[64:96])
	x := new(big.Int).SetBytes(input[96:128])
	y := new(big.Int).SetBytes(input[128:160])

	if r.Sign() <= 0 || r.Cmp(p256N) >= 0 {
		return nil, nil
	}
	if s.Sign() <= 0 || s.Cmp(p256N) >= 0 {
		return nil, nil
	}
	if !p256Curve.IsOnCurve(x, y) {
		return nil, nil
	}

	pub := &ecdsa.PublicKey{Curve: p256Curve, X: x, Y: y}
	if !ecdsa.Verify(pub, hash, r, s) {
		return nil, nil
	}

	out := make([]byte, 32)
	out[31] = 1
	return out, nil
}
