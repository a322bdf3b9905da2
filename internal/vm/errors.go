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

import "errors"

// Execution errors. An error from a frame's run rolls the frame back to
// its journal snapshot and consumes its remaining gas, except
// ErrExecutionReverted, which keeps the unused gas (see reverting).
// Errors raised before a frame starts (call depth, balance, address
// collision) leave the supplied gas untouched.
var (
	ErrOutOfGas                 = errors.New("out of gas")
	ErrStackUnderflow           = errors.New("stack underflow")
	ErrStackOverflow            = errors.New("stack overflow")
	ErrInvalidJump              = errors.New("invalid jump destination")
	ErrInvalidOpcode            = errors.New("invalid opcode")
	ErrWriteProtection          = errors.New("write protection")
	ErrCallDepthExceeded        = errors.New("max call depth exceeded")
	ErrMaxCodeSizeExceeded      = errors.New("max code size exceeded")
	ErrMaxInitCodeSizeExceeded  = errors.New("max initcode size exceeded")
	ErrOutOfOffset              = errors.New("out of bounds offset")
	ErrMemoryLimitExceeded      = errors.New("memory limit exceeded")
	ErrOutOfMemory              = errors.New("out of memory")
	ErrInsufficientBalance      = errors.New("insufficient balance for transfer")
	ErrContractAddressCollision = errors.New("contract address collision")
	ErrExecutionReverted        = errors.New("execution reverted")
	ErrReturnDataOutOfBounds    = errors.New("return data out of bounds")
	ErrGasUintOverflow          = errors.New("gas uint64 overflow")
	ErrInvalidCode              = errors.New("invalid code: must not begin with 0xef")
	ErrNonceUintOverflow        = errors.New("nonce uint64 overflow")
)

// reverting reports whether err is the user-initiated REVERT outcome, as
// opposed to any other error above. Used by the
// interpreter to decide whether unused gas is refunded (revert) or
// entirely consumed (exceptional).
func reverting(err error) bool {
	return err == ErrExecutionReverted
}
