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

// Gas cost constants shared between the FrameInterpreter and the
// Orchestrator. Fork-sensitive opcode base costs live in vm's jump tables;
// this table holds the cross-cutting constants consensus fixes by EIP.
const (
	// EIP-2929 / EIP-2930 (Berlin) warm/cold access costs.
	ColdAccountAccessCostEIP2929 = 2600
	ColdSloadCostEIP2929         = 2100
	WarmStorageReadCostEIP2929   = 100

	// SSTORE net-gas-metering constants, shared by EIP-1283 (Constantinople,
	// reverted before mainnet activation by Petersburg), EIP-2200 (Istanbul,
	// which reinstated EIP-1283 with a reentrancy sentry and EIP-1884's
	// repriced SLOAD), and EIP-2929 (Berlin, which layers warm/cold on top).
	SstoreSetGasEIP2200       = 20000
	SstoreResetGasEIP2200     = 5000
	SstoreClearsScheduleEIP2200 = 15000 // pre-London refund
	SstoreClearsScheduleEIP3529 = 4800  // London+ refund
	SstoreSentryGasEIP2200    = 2300

	// EIP-1283: Constantinople-only net metering (SLOAD_GAS == 200 at the
	// time), reverted by Petersburg before it ever activated on mainnet.
	// The set/clean refund deltas (originally 19800/4800) are derived at
	// call time from SstoreSetGasEIP2200/SstoreResetGasEIP2200 minus
	// NetSstoreNoopGas rather than named separately.
	NetSstoreNoopGas          = 200
	NetSstoreDirtyClearRefund = 15000

	// EIP-2200 / EIP-1884: Istanbul repriced SLOAD from 200 to 800, which
	// feeds into the same net-metering formula with different refund deltas
	// (derived the same way, using SloadGasEIP1884 as the noop price).
	SloadGasEIP1884 = 800

	SloadGasFrontier = 50
	SstoreSetGasFrontier   = 20000
	SstoreResetGasFrontier = 5000
	SstoreClearRefundFrontier = 15000

	// Refund divisor: pre-London 2, London+ 5.
	RefundQuotient        = 2
	RefundQuotientEIP3529 = 5

	// Call-family.
	CallGasFrontier        = 40
	CallGasEIP150          = 700
	CallValueTransferGas   = 9000
	CallNewAccountGas      = 25000
	CallStipend            = 2300
	QuadCoeffDiv           = 512
	CreateGas              = 32000
	Create2Gas             = 32000
	CallCreateDepth        = 1024
	ExpByteFrontier        = 10
	ExpByteEIP158          = 50

	// SelfdestructGasEIP150 is SELFDESTRUCT's base cost from Tangerine
	// Whistle onward (EIP-150); before that fork SELFDESTRUCT was free
	// beyond whatever cold/new-account surcharge applied.
	SelfdestructGasEIP150 = 5000

	// Memory expansion / copy.
	MemoryGas   = 3
	CopyGas     = 3
	Keccak256Gas     = 30
	Keccak256WordGas = 6
	LogGas      = 375
	LogTopicGas = 375
	LogDataGas  = 8

	// Code deposit / size limits.
	CreateDataGas            = 200
	MaxCodeSize               = 24576            // EIP-170, Spurious Dragon+
	MaxInitCodeSize           = 2 * MaxCodeSize   // EIP-3860, Shanghai+
	InitCodeWordGasEIP3860    = 2

	// Intrinsic gas.
	TxGas                   = 21000
	TxGasContractCreation   = 53000
	TxDataZeroGas           = 4
	TxDataNonZeroGasFrontier = 68
	TxDataNonZeroGasEIP2028 = 16 // Istanbul+
	TxAccessListAddressGas  = 2400
	TxAccessListStorageKeyGas = 1900
	// EIP-7623 (Prague): calldata floor-gas price per token, and the
	// base cost the floor starts from (equal to TxGas).
	TxCalldataFloorGasEIP7623 = 10
	TxCalldataFloorGasBaseEIP7623 = TxGas

	// EIP-7702 (Prague) set-code authorizations.
	PerEmptyAccountCostEIP7702 = 25000
	PerAuthBaseCostEIP7702     = 2500

	// EIP-4844 (Cancun) blob gas.
	BlobTxBlobGasPerBlob = 1 << 17
	BlobTxMinBlobGasPrice = 1
	BlobTxBlobGasPriceUpdateFraction = 3338477
	BlobTxTargetBlobGasPerBlock = 3 * BlobTxBlobGasPerBlob
	MaxBlobGasPerBlock = 6 * BlobTxBlobGasPerBlob

	// Stack / frame limits.
	StackLimit = 1024

	// Fixed-step costs.
	GasQuickStep   = 2
	GasFastestStep = 3
	GasFastStep    = 5
	GasMidStep     = 8
	GasSlowStep    = 10
	GasExtStep     = 20

	// Precompile gas costs (address 0x04 identity; EIP-7212 P-256 verify).
	PrecompileIdentityBaseGas = 15
	PrecompileIdentityWordGas = 3
	PrecompileP256VerifyGas   = 3450
)
