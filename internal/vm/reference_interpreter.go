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
	"github.com/n42blockchain/N42/internal/vm/stack"
)

// ReferenceInterpreter is spec.md §4.7's "second, simpler interpreter": it
// dispatches through the exact same JumpTable handler set as
// EVMInterpreter (so a REVERT, an out-of-gas, or a return value means the
// same thing in both), but skips every optimization EVMInterpreter.Run
// carries for production use — there is no tracer, no pooled Memory, and
// no fast pre-check of a whole basic block's worst-case stack bounds
// before running it. It exists purely so ShadowComparator (runtime/
// shadow.go) has a second, independently-simple execution path to diff
// the main interpreter against.
type ReferenceInterpreter struct {
	evm   VMInterpreter
	table *JumpTable

	// Checkpoint, if set, is called at every JUMPDEST this run passes
	// through, with the gas remaining and the live stack/memory — just
	// enough for runtime.ShadowComparator's per_block mode to diff against
	// the main interpreter's own checkpoints. It is not a Tracer: there is
	// no CaptureStart/CaptureEnd/CaptureEnter/CaptureExit bookkeeping to
	// implement, just this one hook.
	Checkpoint func(pc uint64, gas uint64, scope *ScopeContext)
}

// NewReferenceInterpreter builds a reference interpreter bound to evm. It
// deliberately does not consult GetCachedJumpTable's process-wide cache:
// every reference run builds its own table, so a bug in the cache can
// never hide itself from the comparison.
func NewReferenceInterpreter(evm VMInterpreter) *ReferenceInterpreter {
	table := newJumpTableForRules(evm.ChainRules())
	return &ReferenceInterpreter{evm: evm, table: &table}
}

// Run executes contract's code against input, one instruction at a time,
// stopping at RETURN/REVERT/STOP/SELFDESTRUCT or the first error.
func (in *ReferenceInterpreter) Run(contract *Contract, input []byte, readOnly bool) ([]byte, error) {
	contract.Input = input
	if len(contract.Code) == 0 {
		return nil, nil
	}

	mem := NewMemory()
	st := stack.New()
	defer stack.ReturnNormalStack(st)

	scope := &ScopeContext{Memory: mem, Stack: st, Contract: contract}
	host := &EVMInterpreter{evm: in.evm, table: in.table}
	host.readOnly = readOnly

	var (
		pc  = uint64(0)
		res []byte
		err error
	)

	for {
		op := contract.GetOp(pc)
		opPtr := in.table[op]
		if opPtr == nil {
			return nil, ErrInvalidOpcode
		}
		if sLen := st.Len(); sLen < opPtr.minStack {
			return nil, ErrStackUnderflow
		} else if sLen > opPtr.maxStack {
			return nil, ErrStackOverflow
		}

		var memSize uint64
		if opPtr.memorySize != nil {
			size, overflow := opPtr.memorySize(st)
			if overflow {
				return nil, ErrGasUintOverflow
			}
			memSize = ToWordSize(size) * 32
		}

		cost := opPtr.constantGas
		if !contract.UseGas(cost) {
			return nil, ErrOutOfGas
		}

		if memSize > 0 {
			mem.Resize(memSize)
		}

		if opPtr.dynamicGas != nil {
			var dynCost uint64
			dynCost, err = opPtr.dynamicGas(in.evm, contract, st, mem, memSize)
			if err != nil {
				return nil, err
			}
			if !contract.UseGas(dynCost) {
				return nil, ErrOutOfGas
			}
		}

		if in.Checkpoint != nil && op == JUMPDEST {
			in.Checkpoint(pc, contract.Gas, scope)
		}

		res, err = opPtr.execute(&pc, host, scope)
		if err != nil {
			break
		}
		if res != nil {
			host.returnData = res
		}
		if op != JUMP && op != JUMPI {
			pc++
		}
		if op == RETURN || op == REVERT || op == STOP || op == SELFDESTRUCT {
			break
		}
	}

	return res, err
}
