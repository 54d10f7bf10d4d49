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

package block

import "github.com/n42blockchain/n42evm/common/types"

// Log represents a single LOG0..LOG4 entry emitted during execution.
// Logs are append-only within a frame; they are inherited by the parent on
// commit and discarded wholesale on revert.
type Log struct {
	Address types.Address
	Topics  []types.Hash
	Data    []byte

	// Index is the log's position within the transaction, assigned when the
	// log is emitted. It is never reassigned, including across reverts of
	// sibling frames, which keeps indices monotone within a transaction.
	Index uint
}
