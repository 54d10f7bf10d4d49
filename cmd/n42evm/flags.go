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

// execFlags are shared between run and trace: both build the same message
// and block context, they only differ in whether a tracer is attached.
var execFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "code",
		Usage:    "hex-encoded init code to deploy and execute (mutually exclusive with --to)",
		Category: "EXECUTION",
	},
	&cli.StringFlag{
		Name:     "to",
		Usage:    "hex address of an already-deployed account to call (mutually exclusive with --code)",
		Category: "EXECUTION",
	},
	&cli.StringFlag{
		Name:     "input",
		Usage:    "hex-encoded calldata",
		Category: "EXECUTION",
	},
	&cli.StringFlag{
		Name:     "sender",
		Usage:    "hex address of the caller",
		Value:    "0x1000000000000000000000000000000000000001",
		Category: "EXECUTION",
	},
	&cli.Uint64Flag{
		Name:     "value",
		Usage:    "wei value sent with the call",
		Category: "EXECUTION",
	},
	&cli.Uint64Flag{
		Name:     "gas",
		Usage:    "gas limit for the call",
		Value:    1_000_000,
		Category: "EXECUTION",
	},
	&cli.Uint64Flag{
		Name:     "gasprice",
		Usage:    "gas price charged to the sender",
		Value:    1,
		Category: "EXECUTION",
	},
	&cli.Uint64Flag{
		Name:     "balance",
		Usage:    "wei balance to fund the sender with before executing",
		Value:    1_000_000_000_000_000_000,
		Category: "EXECUTION",
	},
	&cli.Uint64Flag{
		Name:     "nonce",
		Usage:    "sender nonce",
		Category: "EXECUTION",
	},
	&cli.StringFlag{
		Name:     "hardfork",
		Usage:    "hardfork selector (FRONTIER..OSAKA)",
		Value:    "CANCUN",
		Category: "CHAIN",
	},
	&cli.Uint64Flag{
		Name:     "chainid",
		Usage:    "chain id used for EIP-155/7702 domain separation",
		Value:    1,
		Category: "CHAIN",
	},
	&cli.Uint64Flag{
		Name:     "basefee",
		Usage:    "block base fee",
		Value:    1,
		Category: "CHAIN",
	},
	&cli.Uint64Flag{
		Name:     "blocknumber",
		Usage:    "block number seen by BLOCKHASH/NUMBER",
		Value:    1,
		Category: "CHAIN",
	},
}
