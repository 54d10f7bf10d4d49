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

package params

// ChainConfig pins the block numbers / timestamps at which each hardfork's
// rules become active. Block-numbered forks predate the Merge; timestamp
// forks (Shanghai onward) follow it, matching mainnet's own switch.
type ChainConfig struct {
	ChainID uint64

	HomesteadBlock        uint64
	TangerineWhistleBlock uint64
	SpuriousDragonBlock   uint64
	ByzantiumBlock        uint64
	ConstantinopleBlock   uint64
	PetersburgBlock       uint64
	IstanbulBlock         uint64
	BerlinBlock           uint64
	LondonBlock           uint64
	MergeBlock            uint64

	ShanghaiTime uint64
	CancunTime   uint64
	PragueTime   uint64
	OsakaTime    uint64
}

// MainnetChainConfig mirrors Ethereum mainnet's own fork schedule.
var MainnetChainConfig = &ChainConfig{
	ChainID:               1,
	HomesteadBlock:        1_150_000,
	TangerineWhistleBlock: 2_463_000,
	SpuriousDragonBlock:   2_675_000,
	ByzantiumBlock:        4_370_000,
	ConstantinopleBlock:   7_280_000,
	PetersburgBlock:       7_280_000,
	IstanbulBlock:         9_069_000,
	BerlinBlock:           12_244_000,
	LondonBlock:           12_965_000,
	MergeBlock:            15_537_394,
	ShanghaiTime:          1_681_338_455,
	CancunTime:            1_710_338_135,
	PragueTime:            1_746_612_311,
	OsakaTime:             ^uint64(0), // not yet scheduled
}

// AllForksEnabled activates every hardfork from genesis, for unit tests that
// want the latest rule set without threading a real schedule through.
var AllForksEnabled = &ChainConfig{ChainID: 1337}

// Rules is the resolved, fork-indexed set of active rules for one block. It
// is a plain value (not an interface or a vtable), so fork-sensitive code is
// ordinary inline branches, never per-opcode dynamic dispatch.
type Rules struct {
	ChainID uint64

	IsHomestead        bool
	IsTangerineWhistle bool
	IsSpuriousDragon   bool
	IsByzantium        bool
	IsConstantinople   bool
	IsPetersburg       bool
	IsIstanbul         bool
	IsBerlin           bool
	IsLondon           bool
	IsMerge            bool
	IsShanghai         bool
	IsCancun           bool
	IsPrague           bool
	IsOsaka            bool

	// IsPectra is used interchangeably with IsPrague at some call sites;
	// kept as a distinct field so cache keys stay stable under either name.
	IsPectra bool

	// IsMoran / IsNano / IsIstanbulForBSC select precompile sets on chains
	// that fork their own precompile schedule away from mainnet Ethereum's.
	// Unset (false) on the mainnet-equivalent default config.
	IsMoran           bool
	IsNano            bool
	IsIstanbulForBSC bool
}

// Rules resolves the active rule set for a block identified by number and
// timestamp (timestamp only matters for Shanghai-and-later forks).
func (c *ChainConfig) Rules(blockNumber, blockTime uint64) *Rules {
	isLondon := blockNumber >= c.LondonBlock
	isShanghai := blockTime >= c.ShanghaiTime
	isCancun := blockTime >= c.CancunTime
	isPrague := blockTime >= c.PragueTime
	isOsaka := blockTime >= c.OsakaTime
	return &Rules{
		ChainID:            c.ChainID,
		IsHomestead:        blockNumber >= c.HomesteadBlock,
		IsTangerineWhistle: blockNumber >= c.TangerineWhistleBlock,
		IsSpuriousDragon:   blockNumber >= c.SpuriousDragonBlock,
		IsByzantium:        blockNumber >= c.ByzantiumBlock,
		IsConstantinople:   blockNumber >= c.ConstantinopleBlock,
		IsPetersburg:       blockNumber >= c.PetersburgBlock,
		IsIstanbul:         blockNumber >= c.IstanbulBlock,
		IsBerlin:           blockNumber >= c.BerlinBlock,
		IsLondon:           isLondon,
		IsMerge:            blockNumber >= c.MergeBlock,
		IsShanghai:         isLondon && isShanghai,
		IsCancun:           isLondon && isCancun,
		IsPrague:           isLondon && isPrague,
		IsPectra:           isLondon && isPrague,
		IsOsaka:            isLondon && isOsaka,
	}
}

// RulesForHardfork builds a Rules value directly from a Hardfork ordinal,
// for tests and tools that want to select a fork by name rather than by
// block schedule.
func RulesForHardfork(chainID uint64, fork Hardfork) *Rules {
	r := &Rules{ChainID: chainID}
	if fork >= Homestead {
		r.IsHomestead = true
	}
	if fork >= TangerineWhistle {
		r.IsTangerineWhistle = true
	}
	if fork >= SpuriousDragon {
		r.IsSpuriousDragon = true
	}
	if fork >= Byzantium {
		r.IsByzantium = true
	}
	if fork >= Constantinople {
		r.IsConstantinople = true
	}
	if fork >= Petersburg {
		r.IsPetersburg = true
	}
	if fork >= Istanbul {
		r.IsIstanbul = true
	}
	if fork >= Berlin {
		r.IsBerlin = true
	}
	if fork >= London {
		r.IsLondon = true
	}
	if fork >= Merge {
		r.IsMerge = true
	}
	if fork >= Shanghai {
		r.IsShanghai = true
	}
	if fork >= Cancun {
		r.IsCancun = true
	}
	if fork >= Prague {
		r.IsPrague = true
		r.IsPectra = true
	}
	if fork >= Osaka {
		r.IsOsaka = true
	}
	return r
}
