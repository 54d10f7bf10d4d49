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

package transaction

import (
	"github.com/holiman/uint256"

	"github.com/n42blockchain/n42evm/common/types"
)

// Message is a decoded, already-signature-verified transaction, the shape
// the EVM's transaction entry point consumes. RLP decoding and signature
// recovery happen upstream; by the time a Message reaches core it carries
// a trusted From address.
type Message struct {
	From      types.Address
	To        *types.Address // nil for contract creation
	Nonce     uint64
	Value     *uint256.Int
	GasLimit  uint64
	GasPrice  *uint256.Int // effective gas price charged to the sender
	GasFeeCap *uint256.Int
	GasTipCap *uint256.Int
	Data      []byte

	AccessList     AccessList
	AuthList       AuthorizationList // EIP-7702 (Prague+)
	BlobHashes     []types.Hash      // EIP-4844 (Cancun+)
	BlobGasFeeCap  *uint256.Int
	SkipNonceCheck bool
	SkipFromEOACheck bool
}

// IsContractCreation reports whether this message deploys a new contract.
func (m *Message) IsContractCreation() bool { return m.To == nil }
