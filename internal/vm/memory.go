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
)

// memoryInitialCapacity is the backing array size a fresh Memory starts
// with, to avoid repeated small reallocations during the first few
// expansions of a typical call frame.
const memoryInitialCapacity = 4 * 1024

// Memory implements the EVM's byte-addressable, word-expanding memory
// space. It always holds a whole number of 32-byte words; Resize grows it
// to the next word boundary and never shrinks it.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

// NewMemory returns an empty Memory with its backing array pre-allocated.
func NewMemory() *Memory {
	return &Memory{
		store: make([]byte, 0, memoryInitialCapacity),
	}
}

// Len returns the number of bytes currently allocated.
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns the full backing slice. Callers may read or write through
// it directly; it is never copied.
func (m *Memory) Data() []byte {
	return m.store
}

// Resize grows memory to hold at least size bytes, rounded up to the
// nearest word boundary by the caller's gas-cost computation; it never
// shrinks existing memory.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) >= size {
		return
	}
	if need := int(size) - cap(m.store); need > 0 {
		m.store = append(m.store[:cap(m.store)], make([]byte, need)...)
	}
	m.store = m.store[:size]
}

// Set copies val into memory at offset. A zero size is a no-op, even if
// offset is out of the currently allocated range.
func (m *Memory) Set(offset, size uint64, val []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		return
	}
	copy(m.store[offset:offset+size], val)
}

// Set32 writes val as a big-endian 32-byte word at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		return
	}
	val.WriteToSlice(m.store[offset : offset+32])
}

// GetCopy returns an independent copy of size bytes starting at offset, or
// nil if size is zero.
func (m *Memory) GetCopy(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if int64(len(m.store)) < offset+size {
		return nil
	}
	cpy := make([]byte, size)
	copy(cpy, m.store[offset:offset+size])
	return cpy
}

// GetPtr returns a slice aliasing the backing array for size bytes starting
// at offset, or nil if size is zero. Writes through the returned slice
// modify memory directly.
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Copy performs an in-memory copy of size bytes from src to dst, correctly
// handling overlapping ranges (as MCOPY/identity-precompile semantics
// require).
func (m *Memory) Copy(dst, src, size uint64) {
	if size == 0 {
		return
	}
	copy(m.store[dst:dst+size], m.store[src:src+size])
}

// Reset empties memory and clears the cached gas cost, ready for reuse on
// the next call frame.
func (m *Memory) Reset() {
	m.store = m.store[:0]
	m.lastGasCost = 0
}
