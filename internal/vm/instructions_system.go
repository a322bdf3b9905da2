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

	"github.com/n42blockchain/N42/common/types"
	"github.com/n42blockchain/N42/internal/vm/stack"
	"github.com/n42blockchain/N42/params"
)

// =============================================================================
// CREATE / CREATE2
// =============================================================================

func opCreate(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	var (
		value  = scope.Stack.Pop()
		offset = scope.Stack.Pop()
		size   = scope.Stack.Pop()
	)
	input := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))

	gas := scope.Contract.Gas
	if interpreter.evm.ChainRules().IsTangerineWhistle {
		gas -= gas / 64
	}
	scope.Contract.UseGas(gas)

	_, addr, returnGas, err := interpreter.evm.Create(scope.Contract, input, gas, &value)
	return pushCreateResult(scope, addr, returnGas, err)
}

func opCreate2(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	var (
		endowment = scope.Stack.Pop()
		offset    = scope.Stack.Pop()
		size      = scope.Stack.Pop()
		salt      = scope.Stack.Pop()
	)
	input := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))

	gas := scope.Contract.Gas
	gas -= gas / 64
	scope.Contract.UseGas(gas)

	_, addr, returnGas, err := interpreter.evm.Create2(scope.Contract, input, gas, &endowment, &salt)
	return pushCreateResult(scope, addr, returnGas, err)
}

// pushCreateResult folds a CREATE/CREATE2 outcome onto the stack (the new
// address on success, zero on failure) and restores leftover gas, mirroring
// the convention CALL-family opcodes use for their success flag.
func pushCreateResult(scope *ScopeContext, addr types.Address, returnGas uint64, err error) ([]byte, error) {
	if err != nil {
		scope.Stack.Push(new(uint256.Int))
	} else {
		scope.Stack.Push(new(uint256.Int).SetBytes(addr.Bytes()))
	}
	scope.Contract.Gas += returnGas
	return nil, nil
}

// gasCreate charges the memory expansion cost (via memoryGasCost) plus,
// when EIP-3860 is active, the init-code word cost, on top of the table's
// flat CreateGas.
func gasCreate(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	if !evm.Config().HasEip3860(evm.ChainRules()) {
		return gas, nil
	}
	size := stk.Back(2)
	if !size.IsUint64() || size.Uint64() > params.MaxInitCodeSize {
		return 0, ErrMaxInitCodeSizeExceeded
	}
	wordGas, overflow := safeMul(toWordSize(size.Uint64()), params.InitCodeWordGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return addGas(gas, wordGas)
}

// gasCreate2 is gasCreate plus the per-word hashing cost CREATE2 pays to
// compute keccak256(initCode) for address derivation.
func gasCreate2(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasCreate(evm, contract, stk, mem, memorySize)
	if err != nil {
		return 0, err
	}
	size := stk.Back(2)
	wordGas, overflow := safeMul(toWordSize(size.Uint64()), params.Sha3WordGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return addGas(gas, wordGas)
}

func memoryCreate(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(1), stk.Back(2))
}

func memoryCreate2(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(1), stk.Back(2))
}

// =============================================================================
// CALL / CALLCODE / DELEGATECALL / STATICCALL
// =============================================================================

func opCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	stk := scope.Stack
	var (
		gas       = stk.Pop()
		addr      = types.Address(stk.Pop().Bytes20())
		value     = stk.Pop()
		inOffset  = stk.Pop()
		inSize    = stk.Pop()
		retOffset = stk.Pop()
		retSize   = stk.Pop()
	)
	if interpreter.readOnly && value.Sign() != 0 {
		return nil, ErrWriteProtection
	}

	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))

	var bigGas uint64
	if !gas.IsUint64() || gas.Uint64() > interpreter.evm.CallGasTemp() {
		bigGas = interpreter.evm.CallGasTemp()
	} else {
		bigGas = gas.Uint64()
	}
	if value.Sign() != 0 {
		bigGas += params.CallStipend
	}

	ret, returnGas, err := interpreter.evm.Call(scope.Contract, addr, args, bigGas, &value, false)
	return pushCallResult(scope, retOffset, retSize, ret, returnGas, err)
}

func opCallCode(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	stk := scope.Stack
	var (
		gas       = stk.Pop()
		addr      = types.Address(stk.Pop().Bytes20())
		value     = stk.Pop()
		inOffset  = stk.Pop()
		inSize    = stk.Pop()
		retOffset = stk.Pop()
		retSize   = stk.Pop()
	)
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))

	var bigGas uint64
	if !gas.IsUint64() || gas.Uint64() > interpreter.evm.CallGasTemp() {
		bigGas = interpreter.evm.CallGasTemp()
	} else {
		bigGas = gas.Uint64()
	}
	if value.Sign() != 0 {
		bigGas += params.CallStipend
	}

	ret, returnGas, err := interpreter.evm.CallCode(scope.Contract, addr, args, bigGas, &value)
	return pushCallResult(scope, retOffset, retSize, ret, returnGas, err)
}

func opDelegateCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	stk := scope.Stack
	var (
		gas       = stk.Pop()
		addr      = types.Address(stk.Pop().Bytes20())
		inOffset  = stk.Pop()
		inSize    = stk.Pop()
		retOffset = stk.Pop()
		retSize   = stk.Pop()
	)
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))

	var bigGas uint64
	if !gas.IsUint64() || gas.Uint64() > interpreter.evm.CallGasTemp() {
		bigGas = interpreter.evm.CallGasTemp()
	} else {
		bigGas = gas.Uint64()
	}

	ret, returnGas, err := interpreter.evm.DelegateCall(scope.Contract, addr, args, bigGas)
	return pushCallResult(scope, retOffset, retSize, ret, returnGas, err)
}

func opStaticCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	stk := scope.Stack
	var (
		gas       = stk.Pop()
		addr      = types.Address(stk.Pop().Bytes20())
		inOffset  = stk.Pop()
		inSize    = stk.Pop()
		retOffset = stk.Pop()
		retSize   = stk.Pop()
	)
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))

	var bigGas uint64
	if !gas.IsUint64() || gas.Uint64() > interpreter.evm.CallGasTemp() {
		bigGas = interpreter.evm.CallGasTemp()
	} else {
		bigGas = gas.Uint64()
	}

	ret, returnGas, err := interpreter.evm.StaticCall(scope.Contract, addr, args, bigGas)
	return pushCallResult(scope, retOffset, retSize, ret, returnGas, err)
}

// pushCallResult folds a CALL-family outcome onto the stack: 1 on success,
// 0 on REVERT or any exceptional error. On success or REVERT the return
// data is copied into the requested memory range (truncated if the range
// is shorter than what came back); it is also handed back to the
// interpreter loop, which stores it as interpreter.returnData so
// RETURNDATASIZE/RETURNDATACOPY see it on the next opcode.
func pushCallResult(scope *ScopeContext, retOffset, retSize uint256.Int, ret []byte, returnGas uint64, err error) ([]byte, error) {
	if err != nil {
		scope.Stack.Push(new(uint256.Int))
	} else {
		scope.Stack.Push(new(uint256.Int).SetOne())
	}
	if err == nil || err == ErrExecutionReverted {
		scope.Memory.Set(retOffset.Uint64(), retSize.Uint64(), ret)
	}
	scope.Contract.Gas += returnGas
	return ret, nil
}

// gasCall computes CALL's dynamic gas: memory expansion, the cold/warm
// address surcharge (Berlin+), the value-transfer fee, and (pre-EIP161,
// or for any value-bearing call after it) the new-account fee — then caps
// the amount actually forwarded to the callee via the 63/64 rule and
// stashes it on the EVM for opCall to read back as CallGasTemp.
func gasCall(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var memoryGas uint64
	if memorySize > 0 {
		var err error
		memoryGas, err = memoryGasCost(mem, memorySize)
		if err != nil {
			return 0, err
		}
	}

	var (
		gas  uint64
		rules = evm.ChainRules()
	)
	addr := types.Address(stk.Back(1).Bytes20())
	if rules.IsBerlin {
		gas = gasEip2929AccountCheck(evm, addr)
	} else if rules.IsTangerineWhistle {
		gas = params.CallGasEIP150
	}

	value := stk.Back(2)
	if !value.IsZero() {
		gas += params.CallValueTransferGas
	}
	transfersValue := !value.IsZero()
	if rules.IsSpuriousDragon {
		if transfersValue && evm.IntraBlockState().Empty(addr) {
			gas += params.CallNewAccountGas
		}
	} else if !evm.IntraBlockState().Exist(addr) {
		gas += params.CallNewAccountGas
	}

	total, overflow := safeAdd(gas, memoryGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}

	callCost, err := callGas(rules.IsTangerineWhistle, contract.Gas, total, stk.Back(0))
	if err != nil {
		return 0, err
	}
	evm.SetCallGasTemp(callCost)
	return total, nil
}

// gasCallCode is gasCall without the new-account fee: CALLCODE never
// creates the target account, since it only ever borrows its code.
func gasCallCode(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var memoryGas uint64
	if memorySize > 0 {
		var err error
		memoryGas, err = memoryGasCost(mem, memorySize)
		if err != nil {
			return 0, err
		}
	}

	var (
		gas   uint64
		rules = evm.ChainRules()
	)
	addr := types.Address(stk.Back(1).Bytes20())
	if rules.IsBerlin {
		gas = gasEip2929AccountCheck(evm, addr)
	} else if rules.IsTangerineWhistle {
		gas = params.CallGasEIP150
	}

	value := stk.Back(2)
	if !value.IsZero() {
		gas += params.CallValueTransferGas
	}

	total, overflow := safeAdd(gas, memoryGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}

	callCost, err := callGas(rules.IsTangerineWhistle, contract.Gas, total, stk.Back(0))
	if err != nil {
		return 0, err
	}
	evm.SetCallGasTemp(callCost)
	return total, nil
}

// gasDelegateCall and gasStaticCall have no value-transfer concept at all:
// only the cold/warm surcharge and the 63/64 forwarding cap apply.
func gasDelegateCall(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var memoryGas uint64
	if memorySize > 0 {
		var err error
		memoryGas, err = memoryGasCost(mem, memorySize)
		if err != nil {
			return 0, err
		}
	}

	var gas uint64
	rules := evm.ChainRules()
	if rules.IsBerlin {
		addr := types.Address(stk.Back(1).Bytes20())
		gas = gasEip2929AccountCheck(evm, addr)
	} else if rules.IsTangerineWhistle {
		gas = params.CallGasEIP150
	}

	total, overflow := safeAdd(gas, memoryGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}

	callCost, err := callGas(rules.IsTangerineWhistle, contract.Gas, total, stk.Back(0))
	if err != nil {
		return 0, err
	}
	evm.SetCallGasTemp(callCost)
	return total, nil
}

func gasStaticCall(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var memoryGas uint64
	if memorySize > 0 {
		var err error
		memoryGas, err = memoryGasCost(mem, memorySize)
		if err != nil {
			return 0, err
		}
	}

	var gas uint64
	rules := evm.ChainRules()
	if rules.IsBerlin {
		addr := types.Address(stk.Back(1).Bytes20())
		gas = gasEip2929AccountCheck(evm, addr)
	} else if rules.IsTangerineWhistle {
		gas = params.CallGasEIP150
	}

	total, overflow := safeAdd(gas, memoryGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}

	callCost, err := callGas(rules.IsTangerineWhistle, contract.Gas, total, stk.Back(0))
	if err != nil {
		return 0, err
	}
	evm.SetCallGasTemp(callCost)
	return total, nil
}

func memoryCall(stk *stack.Stack) (uint64, bool) {
	in, overflow1 := calcMemSize64(stk.Back(3), stk.Back(4))
	out, overflow2 := calcMemSize64(stk.Back(5), stk.Back(6))
	if overflow1 || overflow2 {
		return 0, true
	}
	if in > out {
		return in, false
	}
	return out, false
}

func memoryDelegateCall(stk *stack.Stack) (uint64, bool) {
	in, overflow1 := calcMemSize64(stk.Back(2), stk.Back(3))
	out, overflow2 := calcMemSize64(stk.Back(4), stk.Back(5))
	if overflow1 || overflow2 {
		return 0, true
	}
	if in > out {
		return in, false
	}
	return out, false
}

func memoryStaticCall(stk *stack.Stack) (uint64, bool) {
	return memoryDelegateCall(stk)
}

// =============================================================================
// RETURN / REVERT
// =============================================================================

func opReturn(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.Pop(), scope.Stack.Pop()
	ret := scope.Memory.GetPtr(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, nil
}

func memoryReturn(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(1))
}

func opRevert(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.Pop(), scope.Stack.Pop()
	ret := scope.Memory.GetPtr(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, ErrExecutionReverted
}

func memoryRevert(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(1))
}

// =============================================================================
// SELFDESTRUCT
// =============================================================================

// opSelfdestruct pays the contract's entire balance to the beneficiary and
// (pre-Cancun, unconditionally; from Cancun, only if the contract was
// created earlier in this same transaction, per EIP-6780) removes the
// account and its code/storage at the end of the transaction.
func opSelfdestruct(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	beneficiary := scope.Stack.Pop()
	ibs := interpreter.evm.IntraBlockState()
	balance := ibs.GetBalance(scope.Contract.Address())
	ibs.AddBalance(types.Address(beneficiary.Bytes20()), balance)

	rules := interpreter.evm.ChainRules()
	if !rules.IsCancun {
		deleted := ibs.Selfdestruct(scope.Contract.Address())
		if deleted && !rules.IsLondon {
			ibs.AddRefund(params.SelfdestructRefundGas)
		}
	} else if evm, ok := interpreter.evm.(*EVM); ok && evm.createdInCurrentTx(scope.Contract.Address()) {
		ibs.Selfdestruct(scope.Contract.Address())
	} else {
		// EIP-6780: outside of the creating transaction, SELFDESTRUCT only
		// pays out the balance (already credited to beneficiary above) —
		// the account, its code, and its storage all survive.
		ibs.SubBalance(scope.Contract.Address(), balance)
	}

	return nil, nil
}

// gasSelfdestruct charges, from TangerineWhistle on and on top of the
// table's flat SelfdestructGasEIP150 constantGas, a new-account fee when
// the beneficiary doesn't yet exist and
// the call carries a non-zero balance to it (mirroring CALL's own
// new-account surcharge, since SELFDESTRUCT behaves like an implicit
// value-transferring call to the beneficiary).
func gasSelfdestruct(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var gas uint64
	rules := evm.ChainRules()
	if rules.IsTangerineWhistle {
		beneficiary := types.Address(stk.Back(0).Bytes20())
		if rules.IsSpuriousDragon {
			if evm.IntraBlockState().Empty(beneficiary) && !evm.IntraBlockState().GetBalance(contract.Address()).IsZero() {
				gas += params.CreateBySelfdestructGas
			}
		} else if !evm.IntraBlockState().Exist(beneficiary) {
			gas += params.CreateBySelfdestructGas
		}
	}
	return gas, nil
}
