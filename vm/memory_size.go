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

import "github.com/n42blockchain/n42evm/vm/stack"

// The memorySizeFunc family reads the opcode's stack arguments (without
// popping them — the execute function still needs them) to compute how many
// bytes memory must grow to before execute runs.

func memorySingleOffsetSize(stack *stack.Stack) (uint64, bool) {
	return calcMemSize64WithUint(stack.Back(0), 32)
}

func memoryMstore8Size(stack *stack.Stack) (uint64, bool) {
	return calcMemSize64WithUint(stack.Back(0), 1)
}

func memoryOffsetSizePair(offsetIdx, sizeIdx int) memorySizeFunc {
	return func(stack *stack.Stack) (uint64, bool) {
		size := stack.Back(sizeIdx)
		if size.IsZero() {
			return 0, false
		}
		return calcMemSize64(stack.Back(offsetIdx), size)
	}
}

func memoryCallDataCopy(stack *stack.Stack) (uint64, bool) {
	return calcMemSize64(stack.Back(0), stack.Back(2))
}

func memoryCodeCopy(stack *stack.Stack) (uint64, bool) {
	return calcMemSize64(stack.Back(0), stack.Back(2))
}

func memoryExtCodeCopy(stack *stack.Stack) (uint64, bool) {
	return calcMemSize64(stack.Back(1), stack.Back(3))
}

func memoryReturnDataCopy(stack *stack.Stack) (uint64, bool) {
	return calcMemSize64(stack.Back(0), stack.Back(2))
}

func memoryLog(n int) memorySizeFunc {
	return func(stack *stack.Stack) (uint64, bool) {
		return calcMemSize64(stack.Back(0), stack.Back(1))
	}
}

func memoryCreate(stack *stack.Stack) (uint64, bool) {
	return calcMemSize64(stack.Back(1), stack.Back(2))
}

func memoryCreate2(stack *stack.Stack) (uint64, bool) {
	return calcMemSize64(stack.Back(1), stack.Back(2))
}

func memoryCall(inOffsetIdx, inSizeIdx, outOffsetIdx, outSizeIdx int) memorySizeFunc {
	return func(stack *stack.Stack) (uint64, bool) {
		in, overflow := calcMemSize64(stack.Back(inOffsetIdx), stack.Back(inSizeIdx))
		if overflow {
			return 0, true
		}
		out, overflow := calcMemSize64(stack.Back(outOffsetIdx), stack.Back(outSizeIdx))
		if overflow {
			return 0, true
		}
		if in > out {
			return in, false
		}
		return out, false
	}
}

func memoryMcopy(stack *stack.Stack) (uint64, bool) {
	dst, src, length := stack.Back(0), stack.Back(1), stack.Back(2)
	if length.IsZero() {
		return 0, false
	}
	dstEnd, overflow := calcMemSize64(dst, length)
	if overflow {
		return 0, true
	}
	srcEnd, overflow := calcMemSize64(src, length)
	if overflow {
		return 0, true
	}
	if dstEnd > srcEnd {
		return dstEnd, false
	}
	return srcEnd, false
}
