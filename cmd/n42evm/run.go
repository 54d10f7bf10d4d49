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

import "github.com/urfave/cli/v2"

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "execute bytecode or call an account through core.ApplyMessage",
	UsageText: "n42evm run [options]",
	Flags:     execFlags,
	Action: func(c *cli.Context) error {
		return runMessage(c, nil)
	},
}
