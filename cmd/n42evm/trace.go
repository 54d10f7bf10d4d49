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

package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/n42blockchain/n42evm/vm"
)

var traceCommand = &cli.Command{
	Name:      "trace",
	Usage:     "execute like run, emitting an EIP-3155 JSONL step trace on stdout",
	UsageText: "n42evm trace [options]",
	Flags: append(append([]cli.Flag{}, execFlags...), &cli.BoolFlag{
		Name:     "trace.memory",
		Usage:    "accepted but has no effect: trace entries report memSize only, not memory contents",
		Category: "TRACE",
	}),
	Action: func(c *cli.Context) error {
		logger := vm.NewStructLogger(os.Stdout, c.Bool("trace.memory"), nil)
		return runMessage(c, logger)
	},
}
