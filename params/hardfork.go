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

import "fmt"

// Hardfork is a totally ordered consensus-rule version selector. Rather than
// per-opcode virtual dispatch, fork-sensitive code holds a single Hardfork
// (or the Rules derived from it) and branches inline at decision points.
type Hardfork int

const (
	Frontier Hardfork = iota
	Homestead
	TangerineWhistle
	SpuriousDragon
	Byzantium
	Constantinople
	Petersburg
	Istanbul
	Berlin
	London
	Merge
	Shanghai
	Cancun
	Prague
	Osaka
)

// DefaultHardfork is the fork selected when none is configured; the CLI's
// --hardfork flag defaults to the same fork.
const DefaultHardfork = Cancun

var hardforkNames = map[Hardfork]string{
	Frontier:         "frontier",
	Homestead:        "homestead",
	TangerineWhistle: "tangerine",
	SpuriousDragon:   "spurious",
	Byzantium:        "byzantium",
	Constantinople:   "constantinople",
	Petersburg:       "petersburg",
	Istanbul:         "istanbul",
	Berlin:           "berlin",
	London:           "london",
	Merge:            "merge",
	Shanghai:         "shanghai",
	Cancun:           "cancun",
	Prague:           "prague",
	Osaka:            "osaka",
}

func (h Hardfork) String() string {
	if name, ok := hardforkNames[h]; ok {
		return name
	}
	return fmt.Sprintf("hardfork(%d)", int(h))
}

// IsAtLeast reports whether h is at or after other in fork order.
func (h Hardfork) IsAtLeast(other Hardfork) bool { return h >= other }

// IsBefore reports whether h strictly precedes other in fork order.
func (h Hardfork) IsBefore(other Hardfork) bool { return h < other }

// ParseHardfork recognizes case-sensitive hardfork selector strings, as used
// by the CLI's --hardfork flag.
func ParseHardfork(s string) (Hardfork, bool) {
	names := map[string]Hardfork{
		"FRONTIER":        Frontier,
		"HOMESTEAD":       Homestead,
		"TANGERINE":       TangerineWhistle,
		"SPURIOUS":        SpuriousDragon,
		"BYZANTIUM":       Byzantium,
		"CONSTANTINOPLE":  Constantinople,
		"PETERSBURG":      Petersburg,
		"ISTANBUL":        Istanbul,
		"BERLIN":          Berlin,
		"LONDON":          London,
		"MERGE":           Merge,
		"SHANGHAI":        Shanghai,
		"CANCUN":          Cancun,
		"PRAGUE":          Prague,
		"OSAKA":           Osaka,
	}
	h, ok := names[s]
	return h, ok
}
