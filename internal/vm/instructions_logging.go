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
	"github.com/n42blockchain/N42/common/block"
	"github.com/n42blockchain/N42/common/types"
	"github.com/n42blockchain/N42/internal/vm/stack"
	"github.com/n42blockchain/N42/params"
)

// makeGasLog returns the dynamicGas function for LOGn: the memory
// expansion cost plus LogGas, LogTopicGas per topic and LogDataGas per
// byte of logged data.
func makeGasLog(topicCount uint64) gasFunc {
	return func(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
		requestedSize := stk.Back(1)

		gas, err := memoryGasCost(mem, memorySize)
		if err != nil {
			return 0, err
		}
		if gas, err = addGas(gas, params.LogGas); err != nil {
			return 0, err
		}
		if gas, err = addGas(gas, topicCount*params.LogTopicGas); err != nil {
			return 0, err
		}

		if !requestedSize.IsUint64() {
			return 0, ErrGasUintOverflow
		}
		sizeGas, overflow := safeMul(requestedSize.Uint64(), params.LogDataGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		return addGas(gas, sizeGas)
	}
}

func addGas(a, b uint64) (uint64, error) {
	sum, overflow := safeAdd(a, b)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return sum, nil
}

// makeLog returns the executionFunc for LOG0..LOG4: it pops the memory
// range then topicCount topics (in that stack order), and appends a log
// entry to the state. Disallowed in a read-only (STATICCALL) context.
func makeLog(topicCount int) executionFunc {
	return func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
		if interpreter.readOnly {
			return nil, ErrWriteProtection
		}
		mStart, mSize := scope.Stack.Pop(), scope.Stack.Pop()

		topics := make([]types.Hash, topicCount)
		for i := 0; i < topicCount; i++ {
			t := scope.Stack.Pop()
			topics[i] = types.Hash(t.Bytes32())
		}

		data := scope.Memory.GetCopy(int64(mStart.Uint64()), int64(mSize.Uint64()))

		ibs := interpreter.evm.IntraBlockState()
		ibs.AddLog(&block.Log{
			Address: scope.Contract.Address(),
			Topics:  topics,
			Data:    data,
		})
		return nil, nil
	}
}

// memoryLog computes the memory range LOGn touches, from its first two
// stack arguments (offset, size) regardless of topic count.
func memoryLog(stk *stack.Stack) (uint64, bool) {
	mStart := stk.Back(0)
	mSize := stk.Back(1)
	return calcMemSize64(mStart, mSize)
}
