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

import (
	"github.com/holiman/uint256"

	"github.com/n42blockchain/n42evm/common/types"
	"github.com/n42blockchain/n42evm/crypto"
	n42errors "github.com/n42blockchain/n42evm/errors"
	"github.com/n42blockchain/n42evm/params"
)

// ---- Arithmetic ----

func opAdd(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	y.Add(&x, y)
	return nil, nil
}

func opSub(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	y.Sub(&x, y)
	return nil, nil
}

func opMul(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	y.Mul(&x, y)
	return nil, nil
}

func opDiv(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	y.Div(&x, y)
	return nil, nil
}

func opSdiv(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	y.SDiv(&x, y)
	return nil, nil
}

func opMod(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	y.Mod(&x, y)
	return nil, nil
}

func opSmod(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	y.SMod(&x, y)
	return nil, nil
}

func opAddmod(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y, z := scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Peek()
	z.AddMod(&x, &y, z)
	return nil, nil
}

func opMulmod(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y, z := scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Peek()
	z.MulMod(&x, &y, z)
	return nil, nil
}

func opExp(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	base, exponent := scope.Stack.Pop(), scope.Stack.Peek()
	exponent.Exp(&base, exponent)
	return nil, nil
}

func opSignExtend(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	back, num := scope.Stack.Pop(), scope.Stack.Peek()
	num.ExtendSign(num, &back)
	return nil, nil
}

// ---- Comparison and bitwise ----

func opLt(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIszero(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.Peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	y.And(&x, y)
	return nil, nil
}

func opOr(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	y.Or(&x, y)
	return nil, nil
}

func opXor(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.Pop(), scope.Stack.Peek()
	y.Xor(&x, y)
	return nil, nil
}

func opNot(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.Peek()
	x.Not(x)
	return nil, nil
}

func opByte(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	th, val := scope.Stack.Pop(), scope.Stack.Peek()
	val.Byte(&th)
	return nil, nil
}

func opShl(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	shift, value := scope.Stack.Pop(), scope.Stack.Peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opShr(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	shift, value := scope.Stack.Pop(), scope.Stack.Peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opSar(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	shift, value := scope.Stack.Pop(), scope.Stack.Peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil, nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return nil, nil
}

// opClz (EIP-7939, Osaka+): count leading zero bits of the top word.
func opClz(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.Peek()
	x.SetUint64(uint64(256 - x.BitLen()))
	return nil, nil
}

// ---- Hashing ----

func opKeccak256(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.Pop(), scope.Stack.Peek()
	data := scope.Memory.GetPtr(int64(offset.Uint64()), int64(size.Uint64()))
	hash := crypto.Keccak256(data)
	size.SetBytes(hash)
	return nil, nil
}

// ---- Environment ----

func opAddress(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetBytes(scope.Contract.Address().Bytes()))
	return nil, nil
}

func opBalance(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.Peek()
	addr := types.BytesToAddress(slot.Bytes())
	slot.Set(in.evm.StateDB().GetBalance(addr))
	return nil, nil
}

func opOrigin(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetBytes(in.evm.txContext.Origin.Bytes()))
	return nil, nil
}

func opCaller(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetBytes(scope.Contract.Caller().Bytes()))
	return nil, nil
}

func opCallValue(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).Set(scope.Contract.Value()))
	return nil, nil
}

func opCallDataLoad(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.Peek()
	data := getDataBig(scope.Contract.Input, x, 32)
	x.SetBytes(data)
	return nil, nil
}

func opCallDataSize(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(uint64(len(scope.Contract.Input))))
	return nil, nil
}

func opCallDataCopy(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	memOffset, dataOffset, length := scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()
	data := getDataBig(scope.Contract.Input, &dataOffset, length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opCodeSize(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(uint64(len(scope.Contract.Code))))
	return nil, nil
}

func opCodeCopy(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	memOffset, codeOffset, length := scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()
	data := getDataBig(scope.Contract.Code, &codeOffset, length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opExtCodeSize(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.Peek()
	slot.SetUint64(uint64(in.evm.StateDB().GetCodeSize(types.BytesToAddress(slot.Bytes()))))
	return nil, nil
}

func opExtCodeCopy(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	addr, memOffset, codeOffset, length := scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()
	code := in.evm.StateDB().GetCode(types.BytesToAddress(addr.Bytes()))
	data := getDataBig(code, &codeOffset, length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opExtCodeHash(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.Peek()
	addr := types.BytesToAddress(slot.Bytes())
	if !in.evm.StateDB().Exist(addr) || in.evm.StateDB().Empty(addr) {
		slot.Clear()
		return nil, nil
	}
	slot.SetBytes(in.evm.StateDB().GetCodeHash(addr).Bytes())
	return nil, nil
}

func opGasprice(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).Set(in.evm.txContext.GasPrice))
	return nil, nil
}

func opReturnDataSize(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(uint64(len(in.returnData))))
	return nil, nil
}

func opReturnDataCopy(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	memOffset, dataOffset, length := scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()

	offset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		return nil, n42errors.ErrReturnDataOutOfBounds
	}
	end, overflow := safeAdd(offset64, length.Uint64())
	if overflow || uint64(len(in.returnData)) < end {
		return nil, n42errors.ErrReturnDataOutOfBounds
	}
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), in.returnData[offset64:end])
	return nil, nil
}

// ---- Block context ----

func opBlockhash(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	num := scope.Stack.Peek()
	num64, overflow := num.Uint64WithOverflow()
	if overflow {
		num.Clear()
		return nil, nil
	}
	upper := in.evm.context.BlockNumber
	var lower uint64
	if upper > 256 {
		lower = upper - 256
	}
	if num64 >= lower && num64 < upper {
		num.SetBytes(in.evm.context.GetHash(num64).Bytes())
		return nil, nil
	}
	// EIP-2935 (Prague+): blocks outside the 256-block window are served
	// from the history storage system contract's ring buffer, if present.
	if in.evm.chainRules.IsPrague && num64 < upper {
		floor := uint64(0)
		if upper > HistoryServeWindow {
			floor = upper - HistoryServeWindow
		}
		if num64 >= floor {
			slot := types.BytesToHash(new(uint256.Int).Mod(num, uint256.NewInt(HistoryServeWindow)).Bytes())
			val := in.evm.StateDB().GetState(HistoryStorageAddress, slot)
			num.Set(&val)
			return nil, nil
		}
	}
	num.Clear()
	return nil, nil
}

func opCoinbase(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetBytes(in.evm.context.Coinbase.Bytes()))
	return nil, nil
}

func opTimestamp(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(in.evm.context.Time))
	return nil, nil
}

func opNumber(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(in.evm.context.BlockNumber))
	return nil, nil
}

func opDifficulty(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if in.evm.chainRules.IsMerge {
		if in.evm.context.PrevRanDao != nil {
			scope.Stack.Push(new(uint256.Int).SetBytes(in.evm.context.PrevRanDao.Bytes()))
		} else {
			scope.Stack.Push(new(uint256.Int))
		}
		return nil, nil
	}
	v, _ := uint256.FromBig(in.evm.context.Difficulty)
	scope.Stack.Push(v)
	return nil, nil
}

func opGasLimit(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(in.evm.context.GasLimit))
	return nil, nil
}

func opChainID(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(in.evm.chainRules.ChainID))
	return nil, nil
}

func opSelfBalance(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(in.evm.StateDB().GetBalance(scope.Contract.Address()))
	return nil, nil
}

func opBaseFee(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).Set(in.evm.context.BaseFee))
	return nil, nil
}

func opBlobHash(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	idx := scope.Stack.Peek()
	if i, overflow := idx.Uint64WithOverflow(); !overflow && i < uint64(len(in.evm.txContext.BlobHashes)) {
		idx.SetBytes(in.evm.txContext.BlobHashes[i].Bytes())
	} else {
		idx.Clear()
	}
	return nil, nil
}

func opBlobBaseFee(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).Set(in.evm.context.BlobBaseFee))
	return nil, nil
}

// ---- Stack, memory, storage, flow ----

func opPop(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Pop()
	return nil, nil
}

func opMload(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	v := scope.Stack.Peek()
	offset := v.Uint64()
	v.SetBytes(scope.Memory.GetPtr(int64(offset), 32))
	return nil, nil
}

func opMstore(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	mStart, val := scope.Stack.Pop(), scope.Stack.Pop()
	scope.Memory.Set32(mStart.Uint64(), &val)
	return nil, nil
}

func opMstore8(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	off, val := scope.Stack.Pop(), scope.Stack.Pop()
	scope.Memory.store[off.Uint64()] = byte(val.Uint64())
	return nil, nil
}

func opSload(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	loc := scope.Stack.Peek()
	hash := types.Hash(loc.Bytes32())
	val := in.evm.StateDB().GetState(scope.Contract.Address(), hash)
	loc.Set(&val)
	return nil, nil
}

func opSstore(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	loc, val := scope.Stack.Pop(), scope.Stack.Pop()
	in.evm.StateDB().SetState(scope.Contract.Address(), types.Hash(loc.Bytes32()), val)
	return nil, nil
}

func opJump(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	dest := scope.Stack.Pop()
	if !scope.Contract.validJumpdest(&dest) {
		return nil, n42errors.ErrInvalidJump
	}
	*pc = dest.Uint64() - 1
	return nil, nil
}

func opJumpi(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	dest, cond := scope.Stack.Pop(), scope.Stack.Pop()
	if !cond.IsZero() {
		if !scope.Contract.validJumpdest(&dest) {
			return nil, n42errors.ErrInvalidJump
		}
		*pc = dest.Uint64() - 1
	}
	return nil, nil
}

func opPc(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(*pc))
	return nil, nil
}

func opMsize(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(uint64(scope.Memory.Len())))
	return nil, nil
}

func opGas(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(scope.Contract.Gas))
	return nil, nil
}

func opJumpdest(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, nil
}

func opTload(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	loc := scope.Stack.Peek()
	hash := types.Hash(loc.Bytes32())
	val := in.evm.StateDB().GetTransientState(scope.Contract.Address(), hash)
	loc.Set(&val)
	return nil, nil
}

func opTstore(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	loc, val := scope.Stack.Pop(), scope.Stack.Pop()
	in.evm.StateDB().SetTransientState(scope.Contract.Address(), types.Hash(loc.Bytes32()), val)
	return nil, nil
}

func opMcopy(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	dst, src, length := scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()
	scope.Memory.Copy(dst.Uint64(), src.Uint64(), length.Uint64())
	return nil, nil
}

func opPush0(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int))
	return nil, nil
}

// makePush builds PUSH1..PUSH32's execute function: read size bytes of
// immediate data following the opcode and push them as a left-padded word.
func makePush(size uint64) executionFunc {
	return func(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		codeLen := uint64(len(scope.Contract.Code))
		start := *pc + 1
		var data []byte
		if start >= codeLen {
			data = nil
		} else {
			end := start + size
			if end > codeLen {
				end = codeLen
			}
			data = scope.Contract.Code[start:end]
		}
		var buf [32]byte
		copy(buf[32-size:], data)
		scope.Stack.Push(new(uint256.Int).SetBytes(buf[:]))
		*pc += size
		return nil, nil
	}
}

func makeDup(n int) executionFunc {
	return func(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		scope.Stack.Dup(n)
		return nil, nil
	}
}

func makeSwap(n int) executionFunc {
	return func(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		scope.Stack.Swap(n)
		return nil, nil
	}
}

// makeLog builds LOG0..LOG4's execute function: n topics, then the
// mem[offset:offset+size] data payload.
func makeLog(n int) executionFunc {
	return func(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		if in.readOnly {
			return nil, n42errors.ErrWriteProtection
		}
		mStart, mSize := scope.Stack.Pop(), scope.Stack.Pop()
		topics := make([]types.Hash, n)
		for i := 0; i < n; i++ {
			t := scope.Stack.Pop()
			topics[i] = types.Hash(t.Bytes32())
		}
		data := scope.Memory.GetCopy(int64(mStart.Uint64()), int64(mSize.Uint64()))
		in.evm.StateDB().AddLog(&evmLog{
			Address: scope.Contract.Address(),
			Topics:  topics,
			Data:    data,
		})
		return nil, nil
	}
}

func opCreate(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	value, offset, size := scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()
	input := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	gas := scope.Contract.Gas
	gas -= gas / 64
	scope.Contract.UseGas(gas)

	res, addr, returnGas, err := in.evm.Create(scope.Contract, input, gas, &value)
	return pushCreateResult(scope, res, addr, returnGas, err, in)
}

func opCreate2(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	endowment, offset, size, salt := scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()
	input := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	gas := scope.Contract.Gas
	gas -= gas / 64
	scope.Contract.UseGas(gas)

	res, addr, returnGas, err := in.evm.Create2(scope.Contract, input, gas, &endowment, &salt)
	return pushCreateResult(scope, res, addr, returnGas, err, in)
}

func pushCreateResult(scope *ScopeContext, res []byte, addr types.Address, returnGas uint64, err error, in *EVMInterpreter) ([]byte, error) {
	if err != nil && err != n42errors.ErrExecutionReverted {
		scope.Stack.Push(new(uint256.Int))
	} else {
		scope.Stack.Push(new(uint256.Int).SetBytes(addr.Bytes()))
	}
	scope.Contract.Gas += returnGas
	if err == n42errors.ErrExecutionReverted {
		in.returnData = res
		return nil, nil
	}
	in.returnData = nil
	return nil, nil
}

func opCall(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	_, addrInt, value, inOffset, inSize, retOffset, retSize :=
		scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()
	toAddr := types.BytesToAddress(addrInt.Bytes())
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))

	if in.readOnly && !value.IsZero() {
		return nil, n42errors.ErrWriteProtection
	}
	gas := in.evm.callGasTemp
	if !value.IsZero() {
		gas += params.CallStipend
	}
	ret, returnGas, err := in.evm.Call(scope.Contract, toAddr, args, gas, &value)
	return finishCall(scope, in, ret, returnGas, retOffset.Uint64(), retSize.Uint64(), err)
}

func opCallCode(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	_, addrInt, value, inOffset, inSize, retOffset, retSize :=
		scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()
	toAddr := types.BytesToAddress(addrInt.Bytes())
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))

	gas := in.evm.callGasTemp
	if !value.IsZero() {
		gas += params.CallStipend
	}
	ret, returnGas, err := in.evm.CallCode(scope.Contract, toAddr, args, gas, &value)
	return finishCall(scope, in, ret, returnGas, retOffset.Uint64(), retSize.Uint64(), err)
}

func opDelegateCall(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	_, addrInt, inOffset, inSize, retOffset, retSize :=
		scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()
	toAddr := types.BytesToAddress(addrInt.Bytes())
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))

	ret, returnGas, err := in.evm.DelegateCall(scope.Contract, toAddr, args, in.evm.callGasTemp)
	return finishCall(scope, in, ret, returnGas, retOffset.Uint64(), retSize.Uint64(), err)
}

func opStaticCall(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	_, addrInt, inOffset, inSize, retOffset, retSize :=
		scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop(), scope.Stack.Pop()
	toAddr := types.BytesToAddress(addrInt.Bytes())
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))

	ret, returnGas, err := in.evm.StaticCall(scope.Contract, toAddr, args, in.evm.callGasTemp)
	return finishCall(scope, in, ret, returnGas, retOffset.Uint64(), retSize.Uint64(), err)
}

func finishCall(scope *ScopeContext, in *EVMInterpreter, ret []byte, returnGas, retOffset, retSize uint64, err error) ([]byte, error) {
	if err != nil {
		scope.Stack.Push(new(uint256.Int))
	} else {
		scope.Stack.Push(new(uint256.Int).SetOne())
	}
	if err == nil || err == n42errors.ErrExecutionReverted {
		scope.Memory.Set(retOffset, uint64(min(int(retSize), len(ret))), ret)
	}
	scope.Contract.Gas += returnGas
	in.returnData = ret
	return nil, nil
}

func opReturn(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.Pop(), scope.Stack.Pop()
	ret := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, nil
}

func opRevert(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.Pop(), scope.Stack.Pop()
	ret := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	in.returnData = ret
	return ret, n42errors.ErrExecutionReverted
}

func opInvalid(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, n42errors.ErrInvalidOpcode
}

func opUndefined(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, n42errors.ErrInvalidOpcode
}

func opSelfdestruct(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if in.readOnly {
		return nil, n42errors.ErrWriteProtection
	}
	beneficiary := scope.Stack.Pop()
	beneficiaryAddr := types.BytesToAddress(beneficiary.Bytes())
	balance := in.evm.StateDB().GetBalance(scope.Contract.Address())
	in.evm.StateDB().AddBalance(beneficiaryAddr, balance)

	if in.evm.chainRules.IsCancun {
		in.evm.StateDB().Selfdestruct6780(scope.Contract.Address())
	} else {
		in.evm.StateDB().SelfDestruct(scope.Contract.Address())
	}
	return nil, nil
}

// evmLog is the concrete type AddLog expects (block.Log, re-exported as
// evmtypes.Log); declared here under a package-local name so instructions.go
// doesn't need a second import alias.
type evmLog = Log

