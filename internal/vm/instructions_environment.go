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

func opAddress(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetBytes(scope.Contract.Address().Bytes()))
	return nil, nil
}

func opCaller(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetBytes(scope.Contract.Caller().Bytes()))
	return nil, nil
}

func opCallValue(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).Set(scope.Contract.Value()))
	return nil, nil
}

func opOrigin(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	origin := interpreter.evm.TxContext().Origin
	scope.Stack.Push(new(uint256.Int).SetBytes(origin.Bytes()))
	return nil, nil
}

func opGasprice(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).Set(interpreter.evm.TxContext().GasPrice))
	return nil, nil
}

func opCallDataLoad(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.Peek()
	x.SetBytes(getDataBig(scope.Contract.Input, x, 32))
	return nil, nil
}

func opCallDataSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(uint64(len(scope.Contract.Input))))
	return nil, nil
}

func opCallDataCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	var (
		memOff  = scope.Stack.Pop()
		dataOff = scope.Stack.Pop()
		length  = scope.Stack.Pop()
	)
	dataOffU64, overflow := dataOff.Uint64WithOverflow()
	if overflow {
		dataOffU64 = 0xffffffffffffffff
	}
	scope.Memory.Set(memOff.Uint64(), length.Uint64(), getData(scope.Contract.Input, dataOffU64, length.Uint64()))
	return nil, nil
}

func opCodeSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(uint64(len(scope.Contract.Code))))
	return nil, nil
}

func opCodeCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	var (
		memOff  = scope.Stack.Pop()
		codeOff = scope.Stack.Pop()
		length  = scope.Stack.Pop()
	)
	codeOffU64, overflow := codeOff.Uint64WithOverflow()
	if overflow {
		codeOffU64 = 0xffffffffffffffff
	}
	scope.Memory.Set(memOff.Uint64(), length.Uint64(), getData(scope.Contract.Code, codeOffU64, length.Uint64()))
	return nil, nil
}

func opExtCodeSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.Peek()
	addr := types.Address(slot.Bytes20())
	slot.SetUint64(uint64(interpreter.evm.IntraBlockState().GetCodeSize(addr)))
	return nil, nil
}

func opExtCodeCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	var (
		a      = scope.Stack.Pop()
		memOff = scope.Stack.Pop()
		codeOff = scope.Stack.Pop()
		length = scope.Stack.Pop()
	)
	addr := types.Address(a.Bytes20())
	codeOffU64, overflow := codeOff.Uint64WithOverflow()
	if overflow {
		codeOffU64 = 0xffffffffffffffff
	}
	code := interpreter.evm.IntraBlockState().GetCode(addr)
	scope.Memory.Set(memOff.Uint64(), length.Uint64(), getData(code, codeOffU64, length.Uint64()))
	return nil, nil
}

func opExtCodeHash(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.Peek()
	addr := types.Address(slot.Bytes20())
	ibs := interpreter.evm.IntraBlockState()
	if ibs.Empty(addr) {
		slot.Clear()
		return nil, nil
	}
	h := ibs.GetCodeHash(addr)
	slot.SetBytes(h.Bytes())
	return nil, nil
}

func opReturnDataSize(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.Push(new(uint256.Int).SetUint64(uint64(len(interpreter.returnData))))
	return nil, nil
}

func opReturnDataCopy(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	var (
		memOff = scope.Stack.Pop()
		dataOff = scope.Stack.Pop()
		length = scope.Stack.Pop()
	)
	offU64, overflow := dataOff.Uint64WithOverflow()
	if overflow {
		return nil, ErrReturnDataOutOfBounds
	}
	end, overflow := safeAdd(offU64, length.Uint64())
	if overflow || uint64(len(interpreter.returnData)) < end {
		return nil, ErrReturnDataOutOfBounds
	}
	scope.Memory.Set(memOff.Uint64(), length.Uint64(), interpreter.returnData[offU64:end])
	return nil, nil
}

func opBalance(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.Peek()
	addr := types.Address(slot.Bytes20())
	balance := interpreter.evm.IntraBlockState().GetBalance(addr)
	slot.Set(balance)
	return nil, nil
}

func opSelfBalance(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	balance := interpreter.evm.IntraBlockState().GetBalance(scope.Contract.Address())
	scope.Stack.Push(new(uint256.Int).Set(balance))
	return nil, nil
}

func opChainID(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	chainID, _ := uint256.FromBig(interpreter.evm.ChainRules().ChainID)
	scope.Stack.Push(chainID)
	return nil, nil
}

func opBaseFee(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	baseFee := interpreter.evm.Context().BaseFee
	if baseFee == nil {
		scope.Stack.Push(new(uint256.Int))
	} else {
		scope.Stack.Push(new(uint256.Int).Set(baseFee))
	}
	return nil, nil
}

// gasEip2929AccountCheck charges the cold-access surcharge for an address
// the first time it's touched in this transaction, adding it to the
// warm-access cost already folded into constantGas.
func gasEip2929AccountCheck(evm VMInterpreter, addr types.Address) uint64 {
	ibs := evm.IntraBlockState()
	if ibs.AddressInAccessList(addr) {
		return 0
	}
	ibs.AddAddressToAccessList(addr)
	return params.ColdAccountAccessCostEIP2929 - params.WarmStorageReadCostEIP2929
}

func gasExtCodeHash(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if !evm.ChainRules().IsBerlin {
		return 0, nil
	}
	addr := types.Address(stk.Back(0).Bytes20())
	return gasEip2929AccountCheck(evm, addr), nil
}

func gasBalance(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if !evm.ChainRules().IsBerlin {
		return 0, nil
	}
	addr := types.Address(stk.Back(0).Bytes20())
	return gasEip2929AccountCheck(evm, addr), nil
}

func gasExtCodeSize(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if !evm.ChainRules().IsBerlin {
		return 0, nil
	}
	addr := types.Address(stk.Back(0).Bytes20())
	return gasEip2929AccountCheck(evm, addr), nil
}

func gasExtCodeCopy(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryCopierGas(3)(evm, contract, stk, mem, memorySize)
	if err != nil {
		return 0, err
	}
	if !evm.ChainRules().IsBerlin {
		return gas, nil
	}
	addr := types.Address(stk.Back(0).Bytes20())
	cold := gasEip2929AccountCheck(evm, addr)
	return addGas(gas, cold)
}

// memoryCopierGas returns a dynamicGas function for the *COPY family: base
// memory-expansion cost plus params.CopyGas per word copied, where
// lengthStackPos is the 0-indexed stack slot (from the top) holding the
// copy length.
func memoryCopierGas(lengthStackPos int) gasFunc {
	return func(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
		gas, err := memoryGasCost(mem, memorySize)
		if err != nil {
			return 0, err
		}
		words, overflow := stk.Back(lengthStackPos).Uint64WithOverflow()
		if overflow {
			return 0, ErrGasUintOverflow
		}
		wordGas, overflow := safeMul(toWordSize(words), params.CopyGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		return addGas(gas, wordGas)
	}
}

func memoryCallDataCopy(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(2))
}

func memoryCodeCopy(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(2))
}

func memoryExtCodeCopy(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(1), stk.Back(3))
}

func memoryReturnDataCopy(stk *stack.Stack) (uint64, bool) {
	return calcMemSize64(stk.Back(0), stk.Back(2))
}
