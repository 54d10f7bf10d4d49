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

// EIP-7702: Set EOA account code (Pectra/Prague)
// https://eips.ethereum.org/EIPS/eip-7702
//
// Signature recovery (secp256k1) lives outside this package; it models the
// authorization tuple and expects the caller (the transaction decoder) to
// have already recovered Authority from the signature.

package transaction

import "github.com/n42blockchain/n42evm/common/types"

// Authorization is a single EIP-7702 authorization tuple: a signed statement
// by Authority that addr's code should be installed as a delegation
// designator on Authority's own account.
type Authorization struct {
	ChainID uint64        // 0 means "valid on any chain"
	Address types.Address // contract address to delegate to
	Nonce   uint64        // nonce the authorizing account must currently have

	// Authority is the recovered signer of this authorization. The core
	// does not verify signatures; it trusts this field was already
	// recovered and validated by the host's transaction decoder.
	Authority types.Address
}

// AuthorizationList is the authorization_list field of an EIP-7702
// set-code transaction.
type AuthorizationList []Authorization
