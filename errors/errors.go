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

// Package errors centralizes the error *kinds* used throughout the EVM
// core, so callers can compare with errors.Is rather than string-matching.
package errors

import "errors"

// ================================
// Frame-local (exceptional halt) errors
// ================================

var (
	ErrOutOfGas                        = errors.New("out of gas")
	ErrStackOverflow                   = errors.New("stack overflow")
	ErrStackUnderflow                  = errors.New("stack underflow")
	ErrInvalidOpcode                   = errors.New("invalid opcode")
	ErrInvalidJump                     = errors.New("invalid jump destination")
	ErrWriteProtection                 = errors.New("state modification in static context")
	ErrReturnDataOutOfBounds           = errors.New("return data out of bounds")
	ErrCodeStoreOutOfGas               = errors.New("contract creation code storage out of gas")
	ErrMaxCodeSizeExceeded             = errors.New("max code size exceeded")
	ErrMaxInitCodeSizeExceeded         = errors.New("max initcode size exceeded")
	ErrInvalidCodeEntry                = errors.New("invalid code: must not begin with 0xef")
	ErrExecutionReverted               = errors.New("execution reverted")
	ErrDepth                           = errors.New("max call depth exceeded")
	ErrInsufficientBalance             = errors.New("insufficient balance for transfer")
	ErrContractAddressCollision        = errors.New("contract address collision")
	ErrNonceUintOverflow               = errors.New("nonce uint64 overflow")
	ErrGasUintOverflow                 = errors.New("gas uint64 overflow")
)

// ================================
// Transaction-level (sender-validation) errors
// ================================

var (
	ErrNonceTooLow              = errors.New("nonce too low")
	ErrNonceTooHigh             = errors.New("nonce too high")
	ErrNonceMax                 = errors.New("nonce has max value")
	ErrInsufficientFunds        = errors.New("insufficient funds for gas * price + value")
	ErrInsufficientFundsForTransfer = errors.New("insufficient funds for transfer")
	ErrIntrinsicGas             = errors.New("intrinsic gas too low")
	ErrFloorDataGas             = errors.New("insufficient gas for floor data gas cost")
	ErrGasLimitReached          = errors.New("gas limit reached")
	ErrSenderNoEOA              = errors.New("sender not an eoa")
	ErrInvalidAuthorization     = errors.New("invalid EIP-7702 authorization")
	ErrAuthorizationWrongChainID      = errors.New("invalid EIP-7702 authorization chain ID")
	ErrAuthorizationNonceOverflow     = errors.New("EIP-7702 authorization nonce overflow")
	ErrAuthorizationNonceMismatch     = errors.New("EIP-7702 authorization nonce mismatch")
	ErrAuthorizationDestinationHasCode = errors.New("EIP-7702 authorization destination has code")
	ErrBlobGasLimitExceeded     = errors.New("blob gas limit exceeded")
	ErrInsufficientFundsForBlob = errors.New("insufficient funds for blob gas")
	ErrMissingBlobHashes        = errors.New("blob transaction missing blob hashes")
	ErrBlobTxCreate             = errors.New("blob transaction of type create")
	ErrFeeCapVeryHigh           = errors.New("max fee per gas higher than 2^256-1")
	ErrTipVeryHigh              = errors.New("max priority fee per gas higher than 2^256-1")
	ErrTipAboveFeeCap           = errors.New("max priority fee per gas higher than max fee per gas")
	ErrFeeCapTooLow             = errors.New("max fee per gas less than block base fee")
)

// ================================
// State-substrate errors
// ================================

var (
	ErrBalanceUnderflow = errors.New("state: balance underflow")
	ErrCodeTooLarge     = errors.New("state: code size exceeds maximum")
	ErrInvalidCodePrefix = errors.New("state: code may not start with 0xef")
	ErrUnknownSnapshot  = errors.New("state: unknown snapshot id")
)
