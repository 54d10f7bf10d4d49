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
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/n42blockchain/n42evm/params"
)

// This file builds one JumpTable per hardfork and caches them by
// params.Rules. Each builder copies its predecessor and layers only what
// that fork actually added or removed; most gas costs are already
// fork-aware inside the dynamicGas functions themselves (accessCost,
// gasSStore, expGasCost, ...), so the per-fork difference here is almost
// entirely which opcodes exist, plus the handful of opcodes
// (SLOAD) whose dynamic-gas function only covers Berlin+ and needs its
// pre-Berlin flat fee supplied as constantGas instead.

func newFrontierInstructionSet() *JumpTable {
	tbl := &JumpTable{
		STOP:       {execute: opStop, constantGas: 0, minStack: minStack(0, 0), maxStack: maxStack(0, 0)},
		ADD:        {execute: opAdd, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		MUL:        {execute: opMul, constantGas: GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		SUB:        {execute: opSub, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		DIV:        {execute: opDiv, constantGas: GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		SDIV:       {execute: opSdiv, constantGas: GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		MOD:        {execute: opMod, constantGas: GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		SMOD:       {execute: opSmod, constantGas: GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		ADDMOD:     {execute: opAddmod, constantGas: GasMidStep, minStack: minStack(3, 1), maxStack: maxStack(3, 1)},
		MULMOD:     {execute: opMulmod, constantGas: GasMidStep, minStack: minStack(3, 1), maxStack: maxStack(3, 1)},
		EXP:        {execute: opExp, constantGas: GasSlowStep, dynamicGas: gasExp, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		SIGNEXTEND: {execute: opSignExtend, constantGas: GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},

		LT:     {execute: opLt, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		GT:     {execute: opGt, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		SLT:    {execute: opSlt, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		SGT:    {execute: opSgt, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		EQ:     {execute: opEq, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		ISZERO: {execute: opIszero, constantGas: GasFastestStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)},
		AND:    {execute: opAnd, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		OR:     {execute: opOr, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		XOR:    {execute: opXor, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},
		NOT:    {execute: opNot, constantGas: GasFastestStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)},
		BYTE:   {execute: opByte, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)},

		KECCAK256: {execute: opKeccak256, constantGas: params.Keccak256Gas, dynamicGas: gasKeccak256, minStack: minStack(2, 1), maxStack: maxStack(2, 1), memorySize: memoryOffsetSizePair(0, 1)},

		ADDRESS:      {execute: opAddress, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		BALANCE:      {execute: opBalance, constantGas: 0, dynamicGas: gasBalance, minStack: minStack(1, 1), maxStack: maxStack(1, 1)},
		ORIGIN:       {execute: opOrigin, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		CALLER:       {execute: opCaller, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		CALLVALUE:    {execute: opCallValue, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		CALLDATALOAD: {execute: opCallDataLoad, constantGas: GasFastestStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)},
		CALLDATASIZE: {execute: opCallDataSize, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		CALLDATACOPY: {execute: opCallDataCopy, constantGas: GasFastestStep, dynamicGas: gasCallDataCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryCallDataCopy},
		CODESIZE:     {execute: opCodeSize, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		CODECOPY:     {execute: opCodeCopy, constantGas: GasFastestStep, dynamicGas: gasCodeCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryCodeCopy},
		GASPRICE:     {execute: opGasprice, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		EXTCODESIZE:  {execute: opExtCodeSize, constantGas: 0, dynamicGas: gasExtCodeSize, minStack: minStack(1, 1), maxStack: maxStack(1, 1)},
		EXTCODECOPY:  {execute: opExtCodeCopy, constantGas: 0, dynamicGas: gasExtCodeCopy, minStack: minStack(4, 0), maxStack: maxStack(4, 0), memorySize: memoryExtCodeCopy},

		BLOCKHASH:  {execute: opBlockhash, constantGas: GasExtStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)},
		COINBASE:   {execute: opCoinbase, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		TIMESTAMP:  {execute: opTimestamp, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		NUMBER:     {execute: opNumber, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		DIFFICULTY: {execute: opDifficulty, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		GASLIMIT:   {execute: opGasLimit, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},

		POP:      {execute: opPop, constantGas: GasQuickStep, minStack: minStack(1, 0), maxStack: maxStack(1, 0)},
		MLOAD:    {execute: opMload, constantGas: GasFastestStep, dynamicGas: gasMemoryExpansion, minStack: minStack(1, 1), maxStack: maxStack(1, 1), memorySize: memorySingleOffsetSize},
		MSTORE:   {execute: opMstore, constantGas: GasFastestStep, dynamicGas: gasMemoryExpansion, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memorySingleOffsetSize},
		MSTORE8:  {execute: opMstore8, constantGas: GasFastestStep, dynamicGas: gasMemoryExpansion, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryMstore8Size},
		SLOAD:    {execute: opSload, constantGas: params.SloadGasFrontier, minStack: minStack(1, 1), maxStack: maxStack(1, 1)},
		SSTORE:   {execute: opSstore, constantGas: 0, dynamicGas: gasSstoreDyn, minStack: minStack(2, 0), maxStack: maxStack(2, 0)},
		JUMP:     {execute: opJump, constantGas: GasMidStep, minStack: minStack(1, 0), maxStack: maxStack(1, 0)},
		JUMPI:    {execute: opJumpi, constantGas: GasSlowStep, minStack: minStack(2, 0), maxStack: maxStack(2, 0)},
		PC:       {execute: opPc, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		MSIZE:    {execute: opMsize, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		GAS:      {execute: opGas, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)},
		JUMPDEST: {execute: opJumpdest, constantGas: 1, minStack: minStack(0, 0), maxStack: maxStack(0, 0)},

		LOG0: {execute: makeLog(0), constantGas: params.LogGas, dynamicGas: gasLog(0), minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryLog(0)},
		LOG1: {execute: makeLog(1), constantGas: params.LogGas, dynamicGas: gasLog(1), minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryLog(1)},
		LOG2: {execute: makeLog(2), constantGas: params.LogGas, dynamicGas: gasLog(2), minStack: minStack(4, 0), maxStack: maxStack(4, 0), memorySize: memoryLog(2)},
		LOG3: {execute: makeLog(3), constantGas: params.LogGas, dynamicGas: gasLog(3), minStack: minStack(5, 0), maxStack: maxStack(5, 0), memorySize: memoryLog(3)},
		LOG4: {execute: makeLog(4), constantGas: params.LogGas, dynamicGas: gasLog(4), minStack: minStack(6, 0), maxStack: maxStack(6, 0), memorySize: memoryLog(4)},

		CREATE:   {execute: opCreate, constantGas: params.CreateGas, dynamicGas: gasCreate, minStack: minStack(3, 1), maxStack: maxStack(3, 1), memorySize: memoryCreate},
		CALL:     {execute: opCall, constantGas: 0, dynamicGas: gasCall, minStack: minStack(7, 1), maxStack: maxStack(7, 1), memorySize: memoryCall(3, 4, 5, 6)},
		CALLCODE: {execute: opCallCode, constantGas: 0, dynamicGas: gasCallCode, minStack: minStack(7, 1), maxStack: maxStack(7, 1), memorySize: memoryCall(3, 4, 5, 6)},
		RETURN:   {execute: opReturn, constantGas: 0, dynamicGas: gasMemoryExpansion, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryOffsetSizePair(0, 1)},
		INVALID:  {execute: opInvalid, constantGas: 0, minStack: minStack(0, 0), maxStack: maxStack(0, 0)},

		SELFDESTRUCT: {execute: opSelfdestruct, constantGas: 0, dynamicGas: gasSelfdestruct, minStack: minStack(1, 0), maxStack: maxStack(1, 0)},
	}
	addPushDupSwap(tbl)
	return tbl
}

// opStop is STOP's execution function: halt with no return data.
func opStop(pc *uint64, in *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, nil
}

// addPushDupSwap fills in PUSH1..PUSH32, DUP1..DUP16, SWAP1..SWAP16, common
// to every fork from Frontier on.
func addPushDupSwap(tbl *JumpTable) {
	for i := 0; i < 32; i++ {
		op := OpCode(int(PUSH1) + i)
		tbl[op] = &operation{execute: makePush(uint64(i + 1)), constantGas: GasFastestStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	}
	for i := 0; i < 16; i++ {
		dup := OpCode(int(DUP1) + i)
		tbl[dup] = &operation{execute: makeDup(i + 1), constantGas: GasFastestStep, minStack: minStack(i+1, i+2), maxStack: maxStack(i+1, i+2)}
		swap := OpCode(int(SWAP1) + i)
		tbl[swap] = &operation{execute: makeSwap(i + 1), constantGas: GasFastestStep, minStack: minStack(i+2, i+2), maxStack: maxStack(i+2, i+2)}
	}
}

func newHomesteadInstructionSet() *JumpTable {
	tbl := copyJumpTable(newFrontierInstructionSet())
	tbl[DELEGATECALL] = &operation{execute: opDelegateCall, constantGas: 0, dynamicGas: gasDelegateStaticCall, minStack: minStack(6, 1), maxStack: maxStack(6, 1), memorySize: memoryCall(2, 3, 4, 5)}
	return tbl
}

func newTangerineWhistleInstructionSet() *JumpTable {
	tbl := copyJumpTable(newHomesteadInstructionSet())
	tbl[SLOAD].constantGas = 200
	return tbl
}

func newSpuriousDragonInstructionSet() *JumpTable {
	return copyJumpTable(newTangerineWhistleInstructionSet())
}

func newByzantiumInstructionSet() *JumpTable {
	tbl := copyJumpTable(newSpuriousDragonInstructionSet())
	tbl[REVERT] = &operation{execute: opRevert, constantGas: 0, dynamicGas: gasMemoryExpansion, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryOffsetSizePair(0, 1)}
	tbl[RETURNDATASIZE] = &operation{execute: opReturnDataSize, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[RETURNDATACOPY] = &operation{execute: opReturnDataCopy, constantGas: GasFastestStep, dynamicGas: gasReturnDataCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryReturnDataCopy}
	tbl[STATICCALL] = &operation{execute: opStaticCall, constantGas: 0, dynamicGas: gasDelegateStaticCall, minStack: minStack(6, 1), maxStack: maxStack(6, 1), memorySize: memoryCall(2, 3, 4, 5)}
	return tbl
}

func newConstantinopleInstructionSet() *JumpTable {
	tbl := copyJumpTable(newByzantiumInstructionSet())
	tbl[SHL] = &operation{execute: opShl, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SHR] = &operation{execute: opShr, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SAR] = &operation{execute: opSar, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[EXTCODEHASH] = &operation{execute: opExtCodeHash, constantGas: 0, dynamicGas: gasExtCodeHash, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[CREATE2] = &operation{execute: opCreate2, constantGas: params.Create2Gas, dynamicGas: gasCreate2, minStack: minStack(4, 1), maxStack: maxStack(4, 1), memorySize: memoryCreate2}
	return tbl
}

func newPetersburgInstructionSet() *JumpTable {
	// Petersburg reverted Constantinople's EIP-1283 net-gas-metering SSTORE
	// (the reentrancy concern that delayed Constantinople); gasSStore and
	// sstoreRefund apply EIP-1283 only when IsConstantinople && !IsPetersburg,
	// so the revert needs no table change — the table is identical.
	return copyJumpTable(newConstantinopleInstructionSet())
}

func newIstanbulInstructionSet() *JumpTable {
	tbl := copyJumpTable(newPetersburgInstructionSet())
	tbl[SLOAD].constantGas = 800
	tbl[CHAINID] = &operation{execute: opChainID, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[SELFBALANCE] = &operation{execute: opSelfBalance, constantGas: GasFastStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	return tbl
}

func newBerlinInstructionSet() *JumpTable {
	tbl := copyJumpTable(newIstanbulInstructionSet())
	// From Berlin, SLOAD/BALANCE/EXTCODE*/CALL-family's constantGas is
	// folded entirely into their dynamicGas functions' warm/cold split.
	tbl[SLOAD] = &operation{execute: opSload, constantGas: 0, dynamicGas: gasSload, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	return tbl
}

func newLondonInstructionSet() *JumpTable {
	tbl := copyJumpTable(newBerlinInstructionSet())
	tbl[BASEFEE] = &operation{execute: opBaseFee, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	return tbl
}

func newMergeInstructionSet() *JumpTable {
	// DIFFICULTY's opcode byte is reinterpreted as PREVRANDAO post-Merge;
	// opDifficulty itself resolves which value to push from the block
	// context, so the table entry (and its 0x44 slot) is unchanged.
	return copyJumpTable(newLondonInstructionSet())
}

func newShanghaiInstructionSet() *JumpTable {
	tbl := copyJumpTable(newMergeInstructionSet())
	tbl[PUSH0] = &operation{execute: opPush0, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	return tbl
}

func newCancunInstructionSet() *JumpTable {
	tbl := copyJumpTable(newShanghaiInstructionSet())
	tbl[TLOAD] = &operation{execute: opTload, constantGas: 0, dynamicGas: gasTload, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[TSTORE] = &operation{execute: opTstore, constantGas: 0, dynamicGas: gasTstore, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	tbl[MCOPY] = &operation{execute: opMcopy, constantGas: GasFastestStep, dynamicGas: gasMcopyDyn, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryMcopy}
	tbl[BLOBHASH] = &operation{execute: opBlobHash, constantGas: GasFastestStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[BLOBBASEFEE] = &operation{execute: opBlobBaseFee, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	return tbl
}

func newPragueInstructionSet() *JumpTable {
	// EIP-7702 (set-code transactions) and EIP-2935 (historical BLOCKHASH)
	// are transaction-level and state-level respectively; neither adds a
	// new opcode byte, so Prague's table is Cancun's unchanged.
	return copyJumpTable(newCancunInstructionSet())
}

func newOsakaInstructionSet() *JumpTable {
	tbl := copyJumpTable(newPragueInstructionSet())
	tbl[CLZ] = &operation{execute: opClz, constantGas: GasFastestStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	return tbl
}

// instructionSetCacheKey identifies one fork's JumpTable for the LRU cache
// below. Plain struct-of-bools rather than the *params.Rules pointer itself,
// since two Rules values with identical fields (e.g. built for two different
// blocks both past Cancun) must hit the same cached table.
type instructionSetCacheKey struct {
	homestead, tangerine, spurious, byzantium, constantinople, petersburg,
	istanbul, berlin, london, merge, shanghai, cancun, prague, osaka bool
}

func keyFor(rules *params.Rules) instructionSetCacheKey {
	return instructionSetCacheKey{
		homestead:      rules.IsHomestead,
		tangerine:      rules.IsTangerineWhistle,
		spurious:       rules.IsSpuriousDragon,
		byzantium:      rules.IsByzantium,
		constantinople: rules.IsConstantinople,
		petersburg:     rules.IsPetersburg,
		istanbul:       rules.IsIstanbul,
		berlin:         rules.IsBerlin,
		london:         rules.IsLondon,
		merge:          rules.IsMerge,
		shanghai:       rules.IsShanghai,
		cancun:         rules.IsCancun,
		prague:         rules.IsPrague,
		osaka:          rules.IsOsaka,
	}
}

var (
	jumpTableCacheOnce sync.Once
	jumpTableCache     *lru.Cache[instructionSetCacheKey, *JumpTable]
)

func jumpTableCacheInit() {
	// 32 entries comfortably covers every hardfork combination any one
	// process will realistically build (one EVM per fork it actually runs
	// with, typically one or two across a test binary's lifetime).
	jumpTableCache, _ = lru.New[instructionSetCacheKey, *JumpTable](32)
}

// GetCachedJumpTable resolves rules to its JumpTable, building it once per
// distinct fork combination and reusing it thereafter. Constructing a
// fork's table walks and copies every earlier fork's table, which is
// wasted work to repeat on every transaction when a host runs many
// transactions at the same fork.
func GetCachedJumpTable(rules *params.Rules) *JumpTable {
	jumpTableCacheOnce.Do(jumpTableCacheInit)
	key := keyFor(rules)
	if tbl, ok := jumpTableCache.Get(key); ok {
		return tbl
	}
	tbl := buildInstructionSet(rules)
	jumpTableCache.Add(key, tbl)
	return tbl
}

// buildInstructionSet picks the latest fork rules activates, newest first so
// a chain config with every fork enabled (params.AllForksEnabled) resolves
// to the full Osaka table.
func buildInstructionSet(rules *params.Rules) *JumpTable {
	switch {
	case rules.IsOsaka:
		return newOsakaInstructionSet()
	case rules.IsPrague:
		return newPragueInstructionSet()
	case rules.IsCancun:
		return newCancunInstructionSet()
	case rules.IsShanghai:
		return newShanghaiInstructionSet()
	case rules.IsMerge:
		return newMergeInstructionSet()
	case rules.IsLondon:
		return newLondonInstructionSet()
	case rules.IsBerlin:
		return newBerlinInstructionSet()
	case rules.IsIstanbul:
		return newIstanbulInstructionSet()
	case rules.IsPetersburg:
		return newPetersburgInstructionSet()
	case rules.IsConstantinople:
		return newConstantinopleInstructionSet()
	case rules.IsByzantium:
		return newByzantiumInstructionSet()
	case rules.IsSpuriousDragon:
		return newSpuriousDragonInstructionSet()
	case rules.IsTangerineWhistle:
		return newTangerineWhistleInstructionSet()
	case rules.IsHomestead:
		return newHomesteadInstructionSet()
	default:
		return newFrontierInstructionSet()
	}
}
