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

func opSload(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	loc := scope.Stack.Peek()
	hash := types.Hash(loc.Bytes32())
	interpreter.evm.IntraBlockState().GetState(scope.Contract.Address(), &hash, loc)
	return nil, nil
}

func opSstore(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	loc, val := scope.Stack.Pop(), scope.Stack.Pop()
	hash := types.Hash(loc.Bytes32())
	interpreter.evm.IntraBlockState().SetState(scope.Contract.Address(), &hash, val)
	return nil, nil
}

// gasSLoad charges the EIP-2929 cold/warm surcharge on top of SLOAD's
// warm-tier constantGas, tracking first-touch-in-transaction per slot.
func gasSLoad(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if !evm.ChainRules().IsBerlin {
		return 0, nil
	}
	loc := stk.Back(0)
	slot := types.Hash(loc.Bytes32())
	ibs := evm.IntraBlockState()
	addr := contract.Address()
	if _, slotWarm := ibs.SlotInAccessList(addr, slot); slotWarm {
		return 0, nil
	}
	ibs.AddSlotToAccessList(addr, slot)
	return params.ColdSloadCostEIP2929 - params.WarmStorageReadCostEIP2929, nil
}

// gasSStore implements the EIP-2200/EIP-2929/EIP-3529 net-metering rules for
// SSTORE: cost and refund depend on the relationship between the slot's
// original (pre-transaction), current, and new values, plus whether this is
// the first access to the slot in the current transaction.
func gasSStore(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error) {
	rules := evm.ChainRules()
	if !rules.IsIstanbul {
		// Pre-Istanbul: flat SstoreSetGas/SstoreResetGas based only on
		// current vs. new value, with a flat refund for clearing a slot.
		addr := contract.Address()
		loc := stk.Back(0)
		slot := types.Hash(loc.Bytes32())
		var current uint256.Int
		ibs := evm.IntraBlockState()
		ibs.GetState(addr, &slot, &current)
		val := stk.Back(1)
		switch {
		case current.IsZero() && !val.IsZero():
			return params.SstoreSetGas, nil
		case !current.IsZero() && val.IsZero():
			ibs.AddRefund(params.SstoreRefundGas)
			return params.SstoreResetGas, nil
		default:
			return params.SstoreResetGas, nil
		}
	}

	addr := contract.Address()
	loc := stk.Back(0)
	slot := types.Hash(loc.Bytes32())
	newVal := stk.Back(1)
	ibs := evm.IntraBlockState()

	if contract.Gas <= params.SstoreSentryGasEIP2200 {
		return 0, ErrOutOfGas
	}

	var current, original uint256.Int
	ibs.GetState(addr, &slot, &current)
	ibs.GetCommittedState(addr, &slot, &original)

	cost := uint64(0)
	if rules.IsBerlin {
		if _, slotWarm := ibs.SlotInAccessList(addr, slot); !slotWarm {
			cost = params.ColdSloadCostEIP2929
			ibs.AddSlotToAccessList(addr, slot)
		}
	}

	clearRefund := params.SstoreClearRefund
	if !rules.IsLondon {
		clearRefund = params.SstoreRefundGas
	}

	warmRead := params.WarmStorageReadCostEIP2929
	if current.Eq(newVal) {
		return cost + warmRead, nil
	}
	if original.Eq(&current) {
		if original.IsZero() {
			return cost + params.SstoreSetGas, nil
		}
		if newVal.IsZero() {
			ibs.AddRefund(clearRefund)
		}
		return cost + params.SstoreResetGas - warmRead, nil
	}
	if !original.IsZero() {
		if current.IsZero() {
			ibs.SubRefund(clearRefund)
		}
		if newVal.IsZero() {
			ibs.AddRefund(clearRefund)
		}
	}
	if original.Eq(newVal) {
		if original.IsZero() {
			ibs.AddRefund(params.SstoreSetGas - warmRead)
		} else {
			ibs.AddRefund(params.SstoreResetGas - warmRead)
		}
	}
	return cost + warmRead, nil
}
