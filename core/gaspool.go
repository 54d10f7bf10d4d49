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

package core

import (
	"fmt"

	n42errors "github.com/n42blockchain/n42evm/errors"
)

// GasPool tracks the gas available to every transaction in a block. The
// same pool is shared and drawn down across the whole block, so ApplyMessage
// takes one in rather than a bare gas limit.
type GasPool uint64

// AddGas makes gas available for execution.
func (gp *GasPool) AddGas(amount uint64) *GasPool {
	if uint64(*gp)+amount < uint64(*gp) {
		panic("gas pool pushed above uint64")
	}
	*gp += GasPool(amount)
	return gp
}

// SubGas deducts the given amount from the pool if enough gas is available
// and returns an error otherwise.
func (gp *GasPool) SubGas(amount uint64) error {
	if uint64(*gp) < amount {
		return n42errors.ErrGasLimitReached
	}
	*gp -= GasPool(amount)
	return nil
}

// Gas returns the amount of gas remaining in the pool.
func (gp *GasPool) Gas() uint64 { return uint64(*gp) }

func (gp GasPool) String() string { return fmt.Sprintf("%d", uint64(gp)) }
