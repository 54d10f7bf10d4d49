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
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/n42blockchain/n42evm/common/transaction"
	"github.com/n42blockchain/n42evm/common/types"
	"github.com/n42blockchain/n42evm/core"
	"github.com/n42blockchain/n42evm/log"
	"github.com/n42blockchain/n42evm/params"
	"github.com/n42blockchain/n42evm/state"
	"github.com/n42blockchain/n42evm/vm"
	"github.com/n42blockchain/n42evm/vm/evmtypes"
)

var runLog = log.New("module", "n42evm")

func decodeHexFlag(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}

// runMessage wires a --code/--to flag set into a state.IntraBlockState,
// a vm.EVM, and a transaction.Message, then drives core.ApplyMessage,
// printing a summary of the resulting ExecutionResult. tracer is attached
// to the EVM's Config when non-nil, so trace and run share every step of
// setup and only differ in observability.
func runMessage(c *cli.Context, tracer vm.Tracer) error {
	code, err := decodeHexFlag(c.String("code"))
	if err != nil {
		return fmt.Errorf("invalid --code: %w", err)
	}
	input, err := decodeHexFlag(c.String("input"))
	if err != nil {
		return fmt.Errorf("invalid --input: %w", err)
	}
	if len(code) > 0 && c.String("to") != "" {
		return fmt.Errorf("--code and --to are mutually exclusive")
	}

	fork, ok := params.ParseHardfork(strings.ToUpper(c.String("hardfork")))
	if !ok {
		return fmt.Errorf("unrecognized --hardfork %q", c.String("hardfork"))
	}
	rules := params.RulesForHardfork(c.Uint64("chainid"), fork)

	sender := types.HexToAddress(c.String("sender"))
	db := state.New(state.NewMemoryDatabase())
	db.CreateAccount(sender, false)
	db.AddBalance(sender, new(uint256.Int).SetUint64(c.Uint64("balance")))
	db.SetNonce(sender, c.Uint64("nonce"))

	var to *types.Address
	if s := c.String("to"); s != "" {
		addr := types.HexToAddress(s)
		to = &addr
	}
	if to != nil && len(code) > 0 {
		// The mutual-exclusion check above returns before this point
		// whenever both --code and --to are set, so this branch does not
		// run: --code is always executed as init code.
		db.CreateAccount(*to, false)
		if err := db.SetCode(*to, code, rules.IsLondon); err != nil {
			return fmt.Errorf("setting code at --to: %w", err)
		}
		code = nil
	}

	blockCtx := evmtypes.BlockContext{
		GetHash:     func(uint64) types.Hash { return types.Hash{} },
		Coinbase:    types.Address{0xc0},
		GasLimit:    c.Uint64("gas"),
		BlockNumber: c.Uint64("blocknumber"),
		Time:        1,
		BaseFee:     new(uint256.Int).SetUint64(c.Uint64("basefee")),
	}
	cfg := vm.Config{}
	if tracer != nil {
		cfg.Debug = true
		cfg.Tracer = tracer
	}
	evm := vm.NewEVM(blockCtx, evmtypes.TxContext{}, db, rules, cfg)

	gasPrice := new(uint256.Int).SetUint64(c.Uint64("gasprice"))
	msg := &transaction.Message{
		From:             sender,
		To:               to,
		Nonce:            c.Uint64("nonce"),
		Value:            new(uint256.Int).SetUint64(c.Uint64("value")),
		GasLimit:         c.Uint64("gas"),
		GasPrice:         gasPrice,
		GasFeeCap:        gasPrice,
		GasTipCap:        gasPrice,
		Data:             pickData(code, input),
		SkipFromEOACheck: true,
	}

	gp := core.GasPool(msg.GasLimit)
	result, err := core.ApplyMessage(evm, msg, &gp)
	if err != nil {
		return fmt.Errorf("message rejected: %w", err)
	}

	runLog.Info("execution finished", "gasUsed", result.UsedGas, "failed", result.Failed())
	fmt.Printf("gasUsed:    %d\n", result.UsedGas)
	fmt.Printf("returnData: 0x%s\n", hex.EncodeToString(result.ReturnData))
	if result.Failed() {
		fmt.Printf("error:      %v\n", result.Err)
	}
	return nil
}

// pickData returns the contract-creation init code when present, otherwise
// the calldata for a call into an existing account.
func pickData(code, input []byte) []byte {
	if len(code) > 0 {
		return code
	}
	return input
}
