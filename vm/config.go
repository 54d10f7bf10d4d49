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

package vm

import "github.com/n42blockchain/n42evm/params"

// Tracer receives per-step callbacks from the interpreter loop. A real
// implementation lives in vm/tracer.go (vm.StructLogger); tests and
// non-debug execution leave this nil.
type Tracer interface {
	CaptureStart(from, to [20]byte, create bool, input []byte, gas uint64, value []byte)
	CaptureState(pc uint64, op OpCode, gas, cost uint64, scope *ScopeContext, rData []byte, depth int, err error)
	CaptureEnd(output []byte, gasUsed uint64, err error)
	CaptureFault(pc uint64, op OpCode, gas, cost uint64, scope *ScopeContext, depth int, err error)
}

// Config bundles the knobs that vary execution without changing consensus
// semantics: debugging, recursion control, and opt-in future-EIP activation.
type Config struct {
	Debug        bool
	Tracer       Tracer
	NoRecursion  bool // nested Call/CallCode/DelegateCall/StaticCall (depth > 0) return at once; Create is unaffected
	NoBaseFee    bool // ignore BASEFEE floor when checking gas price (RPC simulation)
	SkipAnalysis bool // skip JUMPDEST analysis caching

	// ExtraEips lists EIP numbers to activate beyond what Rules implies,
	// e.g. testing EIP-3860 ahead of a chain's Shanghai activation.
	ExtraEips []int
}

// HasEip3860 reports whether EIP-3860 (init-code size limit and its gas
// cost) is active: automatically from Shanghai on, or opted in early via
// ExtraEips.
func (c *Config) HasEip3860(rules *params.Rules) bool {
	if rules != nil && rules.IsShanghai {
		return true
	}
	for _, eip := range c.ExtraEips {
		if eip == 3860 {
			return true
		}
	}
	return false
}
