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
	"github.com/n42blockchain/N42/common/transaction"
	"github.com/n42blockchain/N42/params"
)

// IntrinsicGas computes the gas a transaction owes before a single opcode
// runs: the flat per-transaction base, the per-byte calldata charge (the
// EIP-2028 rate from Istanbul on, the Frontier rate before), the EIP-2930
// access-list charge, and, for contract creation from Shanghai on, the
// EIP-3860 per-word init-code charge. This is the caller-side counterpart
// to gas.go's per-opcode dynamic gas functions: it runs once, before the
// interpreter's loop starts, to produce the gas_remaining the first Call
// or Create is invoked with.
func IntrinsicGas(data []byte, accessList transaction.AccessList, isContractCreation bool, rules *params.Rules) (uint64, error) {
	var gas uint64
	if isContractCreation {
		gas = params.TxGasContractCreation
	} else {
		gas = params.TxGas
	}

	dataGas, err := calldataGas(data, rules.IsIstanbul)
	if err != nil {
		return 0, err
	}
	gas, overflow := safeAdd(gas, dataGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}

	if accessGas, overflow := accessListGas(accessList); overflow {
		return 0, ErrGasUintOverflow
	} else if gas, overflow = safeAdd(gas, accessGas); overflow {
		return 0, ErrGasUintOverflow
	}

	if isContractCreation && rules.IsShanghai {
		initCodeGas, overflow := safeMul(toWordSize(uint64(len(data))), params.InitCodeWordGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		if gas, overflow = safeAdd(gas, initCodeGas); overflow {
			return 0, ErrGasUintOverflow
		}
	}

	return gas, nil
}

// calldataGas prices data's zero and non-zero bytes separately, per
// EIP-2028's rate from Istanbul on and the original Frontier rate before.
func calldataGas(data []byte, isEIP2028 bool) (uint64, error) {
	var zeroBytes, nonZeroBytes uint64
	for _, b := range data {
		if b == 0 {
			zeroBytes++
		} else {
			nonZeroBytes++
		}
	}

	nonZeroGas := params.TxDataNonZeroGasFrontier
	if isEIP2028 {
		nonZeroGas = params.TxDataNonZeroGasEIP2028
	}

	nonZeroCost, overflow := safeMul(nonZeroBytes, nonZeroGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	zeroCost, overflow := safeMul(zeroBytes, params.TxDataZeroGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	total, overflow := safeAdd(nonZeroCost, zeroCost)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return total, nil
}

// accessListGas prices an EIP-2930 access list: a flat charge per address
// plus a flat charge per storage key across all its tuples.
func accessListGas(accessList transaction.AccessList) (uint64, bool) {
	if len(accessList) == 0 {
		return 0, false
	}
	addrCost, overflow := safeMul(uint64(len(accessList)), params.TxAccessListAddressGas)
	if overflow {
		return 0, true
	}
	slotCost, overflow := safeMul(uint64(accessList.StorageKeys()), params.TxAccessListStorageKeyGas)
	if overflow {
		return 0, true
	}
	return safeAdd(addrCost, slotCost)
}

// TransactionIntrinsicGas is IntrinsicGas's convenience form for a fully
// formed transaction, used by cmd/evmrun and any future transaction-pool
// admission check.
func TransactionIntrinsicGas(tx *transaction.Transaction, rules *params.Rules) (uint64, error) {
	return IntrinsicGas(tx.Data(), tx.AccessList(), tx.To() == nil, rules)
}
