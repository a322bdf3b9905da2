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
	"fmt"

	"github.com/n42blockchain/N42/internal/vm/stack"
)

// executionFunc implements an opcode's runtime semantics: it mutates the
// scope (stack/memory) and optionally returns output data (RETURN/REVERT).
type executionFunc func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error)

// gasFunc computes an opcode's dynamic gas component given the already
// resized memory. Most opcodes have none; memory-touching and
// storage-touching ones do.
type gasFunc func(evm VMInterpreter, contract *Contract, stk *stack.Stack, mem *Memory, memorySize uint64) (uint64, error)

// memorySizeFunc computes the memory size (in bytes) an opcode requires
// before it executes, from the stack arguments it is about to consume.
type memorySizeFunc func(stk *stack.Stack) (uint64, bool)

// operation is one entry of a JumpTable: everything the interpreter's main
// loop needs to validate and execute a single opcode.
type operation struct {
	execute     executionFunc
	constantGas uint64
	dynamicGas  gasFunc
	memorySize  memorySizeFunc

	numPop  int
	numPush int

	// minStack/maxStack are derived from numPop/numPush by
	// validateAndFillMaxStack and consulted by the interpreter's hot loop
	// instead of recomputing the arithmetic on every step.
	minStack int
	maxStack int
}

// stackLimit is the maximum number of elements the operand stack may hold,
// mirrored from stack.maxStackDepth (unexported there, so restated here as
// the single source of truth for dispatch-table validation).
const stackLimit = 1024

// validateAndFillMaxStack derives minStack/maxStack for every defined
// opcode in jt from its numPop/numPush, so the interpreter can reject an
// over/underflowing opcode before executing it with one bounds check.
func validateAndFillMaxStack(jt *JumpTable) {
	for _, op := range jt {
		if op == nil {
			continue
		}
		op.minStack = op.numPop
		op.maxStack = stackLimit + op.numPop - op.numPush
	}
}

// JumpTable is a hardfork's complete opcode dispatch table: 256 slots,
// nil where the opcode is undefined for that fork.
type JumpTable [256]*operation

// activators maps an EIP number to the function that patches it into a
// jump table. Config.ExtraEips drives which of these apply on top of a
// fork's base table, in addition to the per-hardfork constructors below.
var activators = map[int]func(*JumpTable){}

// validEip reports whether eip has a registered activator.
func validEip(eip int) bool {
	_, ok := activators[eip]
	return ok
}

// EnableEIP patches jt in place to apply the given EIP's opcode changes,
// on top of whatever hardfork base table jt already holds.
func EnableEIP(eip int, jt *JumpTable) error {
	enable, ok := activators[eip]
	if !ok {
		return fmt.Errorf("undefined eip %d", eip)
	}
	enable(jt)
	return nil
}

// copyJumpTable returns a deep copy of original: every non-nil *operation
// slot is duplicated so that EIP activators can mutate the copy (e.g. to
// patch in dynamicGas) without affecting the shared base table.
func copyJumpTable(original *JumpTable) *JumpTable {
	cpy := *original
	for i, op := range original {
		if op == nil {
			continue
		}
		opCopy := *op
		cpy[i] = &opCopy
	}
	return &cpy
}
