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
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const banner = `
 ███╗   ██╗██╗  ██╗██████╗ ███████╗██╗   ██╗███╗   ███╗
 ████╗  ██║██║  ██║╚════██╗██╔════╝██║   ██║████╗ ████║
 ██╔██╗ ██║███████║ █████╔╝█████╗  ██║   ██║██╔████╔██║
 ██║╚██╗██║╚════██║██╔═══╝ ██╔══╝  ╚██╗ ██╔╝██║╚██╔╝██║
 ██║ ╚████║     ██║███████╗███████╗ ╚████╔╝ ██║ ╚═╝ ██║
 ╚═╝  ╚═══╝     ╚═╝╚══════╝╚══════╝  ╚═══╝  ╚═╝     ╚═╝
`

const usageText = `n42evm [command] [options]

Quick start:
  n42evm run --code 6001600101 --gas 100000       run bytecode against an empty in-memory account
  n42evm run --to 0xabc... --input a9059cbb...    call an already-deployed account
  n42evm trace --code 6001600101 --gas 100000     run with an EIP-3155 step trace on stdout

Help:
  n42evm --help         all options
  n42evm run --help      run command options
  n42evm trace --help    trace command options`

func main() {
	fmt.Print(banner)

	app := &cli.App{
		Name:                   "n42evm",
		Usage:                  "standalone EVM core runner",
		UsageText:              usageText,
		Version:                "dev",
		Commands:               []*cli.Command{runCommand, traceCommand},
		UseShortOptionHandling: true,
		Suggest:                true,
		EnableBashCompletion:   true,
		Copyright:              "Copyright 2022-2026 The N42 Authors",
	}

	cli.AppHelpTemplate = `{{.Name}} - {{.Usage}}

version: {{.Version}}

{{.UsageText}}

commands:{{range .VisibleCommands}}
  {{.Name}}{{"\t"}}{{.Usage}}{{end}}

{{.Copyright}}
`

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
