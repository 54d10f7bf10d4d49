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

// codeBitmap scans code once and returns the sorted byte offsets of every
// genuine instruction boundary (i.e. every position that is not inside a
// preceding PUSH's immediate data). JUMP/JUMPI must only land on one of
// these, even if the byte value there happens to equal JUMPDEST.
func codeBitmap(code []byte) []uint64 {
	positions := make([]uint64, 0, len(code))
	for pc := uint64(0); pc < uint64(len(code)); {
		positions = append(positions, pc)
		op := OpCode(code[pc])
		if op.IsPush() {
			pc += uint64(op.PushSize()) + 1
		} else {
			pc++
		}
	}
	return positions
}

// isInstructionBoundary reports whether pos appears in positions, a sorted
// slice produced by codeBitmap.
func isInstructionBoundary(positions []uint64, pos uint64) bool {
	lo, hi := 0, len(positions)
	for lo < hi {
		mid := (lo + hi) / 2
		if positions[mid] < pos {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(positions) && positions[lo] == pos
}
