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

import "github.com/n42blockchain/n42evm/params"

// identity is the address-0x04 precompile: it needs no excluded
// cryptographic primitive, only a memcpy, so it is implemented for real
// rather than stubbed out like its neighbors.
type identity struct{}

// RequiredGas charges the flat base cost plus a per-word copy cost, per the
// original Frontier schedule (unchanged by any later fork).
func (identity) RequiredGas(input []byte) uint64 {
	words := (uint64(len(input)) + 31) / 32
	return params.PrecompileIdentityBaseGas + words*params.PrecompileIdentityWordGas
}

func (identity) Run(input []byte) ([]byte, error) {
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}
