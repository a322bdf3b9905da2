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

// Package stack implements the EVM's two stacks: the 1024-deep operand
// stack of 256-bit words, and the return-address stack used by the
// EIP-2315 static jump opcodes.
package stack

import (
	"sync"

	"github.com/holiman/uint256"
)

// maxStackDepth is the maximum number of elements the operand stack may
// hold at once; pushing past it is a stack-overflow error.
const maxStackDepth = 1024

// Stack is the operand stack: a LIFO of 256-bit words.
type Stack struct {
	data []uint256.Int
}

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// New returns an operand stack, reused from the pool where possible.
func New() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnNormalStack resets s and returns it to the pool.
func ReturnNormalStack(s *Stack) {
	s.Reset()
	stackPool.Put(s)
}

// Reset empties the stack without releasing its backing array.
func (s *Stack) Reset() {
	s.data = s.data[:0]
}

// Len returns the number of elements currently on the stack.
func (s *Stack) Len() int {
	return len(s.data)
}

// Cap returns the stack's current backing-array capacity.
func (s *Stack) Cap() int {
	return cap(s.data)
}

// Push pushes val onto the stack. The caller retains ownership of val; the
// stack stores a copy.
func (s *Stack) Push(val *uint256.Int) {
	s.data = append(s.data, *val)
}

// PushN pushes a sequence of values, in order, so the last vals element ends
// up on top.
func (s *Stack) PushN(vals ...uint256.Int) {
	s.data = append(s.data, vals...)
}

// Pop removes and returns the top element.
func (s *Stack) Pop() uint256.Int {
	n := len(s.data) - 1
	v := s.data[n]
	s.data = s.data[:n]
	return v
}

// Peek returns a pointer to the top element without removing it. The
// pointer is invalidated by any subsequent push that reallocates the
// backing array, so callers must not retain it past the current opcode.
func (s *Stack) Peek() *uint256.Int {
	return &s.data[len(s.data)-1]
}

// Back returns a pointer to the n-th element from the top; Back(0) is
// equivalent to Peek().
func (s *Stack) Back(n int) *uint256.Int {
	return &s.data[len(s.data)-1-n]
}

// Swap exchanges the top element with the n-th element from the top.
func (s *Stack) Swap(n int) {
	top := len(s.data) - 1
	s.data[top], s.data[top-n] = s.data[top-n], s.data[top]
}

// Dup pushes a copy of the n-th element from the top (Dup(1) duplicates the
// current top).
func (s *Stack) Dup(n int) {
	top := len(s.data) - 1
	s.data = append(s.data, s.data[top-n+1])
}

// Data exposes the backing slice, top element last. Used by tracers that
// need a read-only snapshot of the full stack.
func (s *Stack) Data() []uint256.Int {
	return s.data
}

// ReturnStack is the EIP-2315 subroutine return-address stack: a LIFO of
// PC values pushed by CALLF/JUMPSUB-style instructions.
type ReturnStack struct {
	data []uint32
}

var returnStackPool = sync.Pool{
	New: func() interface{} {
		return &ReturnStack{data: make([]uint32, 0, 16)}
	},
}

// NewReturnStack returns a return-address stack, reused from the pool
// where possible.
func NewReturnStack() *ReturnStack {
	return returnStackPool.Get().(*ReturnStack)
}

// ReturnRStack resets rs and returns it to the pool.
func ReturnRStack(rs *ReturnStack) {
	rs.data = rs.data[:0]
	returnStackPool.Put(rs)
}

// Push pushes a return PC.
func (rs *ReturnStack) Push(pc uint32) {
	rs.data = append(rs.data, pc)
}

// Pop removes and returns the top return PC.
func (rs *ReturnStack) Pop() uint32 {
	n := len(rs.data) - 1
	v := rs.data[n]
	rs.data = rs.data[:n]
	return v
}

// Data exposes the backing slice, top element last.
func (rs *ReturnStack) Data() []uint32 {
	return rs.data
}
