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

// Prague/Pectra-specific helpers: EIP-7702 delegation designators and the
// EIP-2935 historical-block-hash system contract BLOCKHASH reads.
package vm

import (
	"bytes"

	"github.com/n42blockchain/n42evm/common/types"
)

// DelegationPrefix marks an account's code as an EIP-7702 delegation
// designator: 0xef0100 followed by the 20-byte delegate address. An account
// carrying exactly this 23-byte code executes the delegate's code while
// keeping its own storage, balance, and nonce.
var DelegationPrefix = []byte{0xef, 0x01, 0x00}

// HasDelegation reports whether code is shaped like a delegation designator.
func HasDelegation(code []byte) bool {
	return len(code) == 23 && bytes.HasPrefix(code, DelegationPrefix)
}

// ParseDelegation extracts the delegate address from a delegation
// designator, or reports false if code isn't one.
func ParseDelegation(code []byte) (types.Address, bool) {
	if !HasDelegation(code) {
		return types.Address{}, false
	}
	return types.BytesToAddress(code[3:23]), true
}

// AddressToDelegation builds the delegation designator code pointing at addr,
// installed on an authority's account by a Prague set-code authorization.
func AddressToDelegation(addr types.Address) []byte {
	code := make([]byte, 23)
	copy(code, DelegationPrefix)
	copy(code[3:], addr[:])
	return code
}

// resolveDelegatedCode returns the code the Orchestrator should actually
// execute for addr: addr's own code, unless it is a delegation designator, in
// which case the designated address's code (resolved one level only — a
// delegation chain does not itself chain further designators).
func (evm *EVM) resolveDelegatedCode(addr types.Address) (codeAddr types.Address, code []byte, codeHash types.Hash) {
	code = evm.statedb.GetCode(addr)
	codeHash = evm.statedb.GetCodeHash(addr)
	codeAddr = addr
	if !evm.chainRules.IsPrague {
		return
	}
	if delegate, ok := ParseDelegation(code); ok {
		codeAddr = delegate
		code = evm.statedb.GetCode(delegate)
		codeHash = evm.statedb.GetCodeHash(delegate)
	}
	return
}

// HistoryStorageAddress is the EIP-2935 system contract BLOCKHASH consults
// for block numbers older than the 256-block window the BLOCKHASH opcode
// otherwise serves directly.
var HistoryStorageAddress = types.HexToAddress("0x0aae40965e6800cd9b1f4b05ff21581047e3f91e")

// HistoryServeWindow is the number of historical hashes the system contract
// ring buffer retains.
const HistoryServeWindow = 8192
