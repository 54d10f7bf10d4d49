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

// Package evmtypes collects the small context structs the Orchestrator
// threads through every call: per-block data that never changes mid-block,
// per-transaction data that never changes mid-transaction, and the function
// types the host supplies for balance transfers and historical block hashes.
package evmtypes

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/n42blockchain/n42evm/common/block"
	"github.com/n42blockchain/n42evm/common/transaction"
	"github.com/n42blockchain/n42evm/common/types"
	"github.com/n42blockchain/n42evm/state"
)

// BlockContext carries the auxiliary block data opcodes like COINBASE,
// NUMBER, TIMESTAMP, BASEFEE, and PREVRANDAO read. It is fixed for the
// duration of a block.
type BlockContext struct {
	CanTransfer CanTransferFunc
	Transfer    TransferFunc
	GetHash     GetHashFunc

	Coinbase    types.Address
	GasLimit    uint64
	BlockNumber uint64
	Time        uint64
	Difficulty  *big.Int
	BaseFee     *uint256.Int
	PrevRanDao  *types.Hash

	// EIP-4844 (Cancun): excess blob gas and the fee it implies.
	BlobBaseFee   *uint256.Int
	ExcessBlobGas uint64
}

// TxContext carries the data that is fixed for one transaction: ORIGIN,
// GASPRICE, and the EIP-4844 versioned blob hashes BLOBHASH indexes into.
type TxContext struct {
	TxHash     types.Hash
	Origin     types.Address
	GasPrice   *uint256.Int
	BlobHashes []types.Hash
}

type (
	// CanTransferFunc reports whether addr can afford to send amount.
	CanTransferFunc func(state.StateDB, types.Address, *uint256.Int) bool
	// TransferFunc moves amount from sender to recipient. bailout suppresses
	// the balance check (used for gas refunds, which must never fail).
	TransferFunc func(db state.StateDB, sender, recipient types.Address, amount *uint256.Int, bailout bool)
	// GetHashFunc returns the hash of block number n, for BLOCKHASH/EIP-2935.
	GetHashFunc func(n uint64) types.Hash
)

// IntraBlockState is the state-access surface the interpreter and
// orchestrator use; state.IntraBlockState is the concrete implementation.
type IntraBlockState = state.StateDB

// Log re-exports block.Log so vm code doesn't need a second import alias.
type Log = block.Log

// AccessList re-exports transaction.AccessList for the same reason.
type AccessList = transaction.AccessList
