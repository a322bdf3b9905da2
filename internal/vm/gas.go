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
	"math"
	"math/bits"

	"github.com/holiman/uint256"

	"github.com/n42blockchain/N42/params"
)

// Fixed per-step gas costs named by the Yellow Paper's tier names; used
// directly as constantGas for the simplest opcodes.
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20
)

// safeAdd adds a and b, reporting overflow instead of wrapping.
func safeAdd(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum < a
}

// safeMul multiplies a and b, reporting overflow instead of wrapping.
func safeMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(a, b)
	return lo, hi != 0
}

// toWordSize rounds size up to the nearest number of 32-byte words.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// ToWordSize is the exported form of toWordSize, used by handlers outside
// this file's package-private gas helpers (e.g. the shadow interpreter).
func ToWordSize(size uint64) uint64 {
	return toWordSize(size)
}

// memoryGasCost returns the incremental quadratic memory-expansion charge
// for growing mem to newMemSize bytes: cost(w) = 3w + floor(w*w/512),
// billed only for the delta over whatever total was already charged
// (tracked in mem.lastGasCost). A newMemSize that doesn't grow memory
// costs nothing.
func memoryGasCost(mem *Memory, newMemSize uint64) (uint64, error) {
	if newMemSize == 0 {
		return 0, nil
	}
	if newMemSize > math.MaxUint64-31 {
		return 0, ErrGasUintOverflow
	}
	words := toWordSize(newMemSize)
	square := words * words
	linCoef := words * params.MemoryGas
	quadCoef := square / params.QuadCoeffDiv
	newTotal, overflow := safeAdd(linCoef, quadCoef)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if newTotal <= mem.lastGasCost {
		return 0, nil
	}
	fee := newTotal - mem.lastGasCost
	mem.lastGasCost = newTotal
	return fee, nil
}

// calcMemSize64 computes off+l as a uint64, reporting overflow. A zero
// length always yields a zero size regardless of offset, since no bytes
// are touched.
func calcMemSize64(off, l *uint256.Int) (uint64, bool) {
	if l.IsZero() {
		return 0, false
	}
	return calcMemSize64WithUint(off, l.Uint64())
}

// calcMemSize64WithUint computes off+length64 as a uint64, reporting
// overflow either in interpreting off as a uint64 or in the sum.
func calcMemSize64WithUint(off *uint256.Int, length64 uint64) (uint64, bool) {
	if !off.IsUint64() {
		return 0, true
	}
	return safeAdd(off.Uint64(), length64)
}

// callGas computes the gas to forward to a child call. Pre-EIP150, the
// full requested cost is forwarded verbatim (erroring if it doesn't fit
// in a uint64). From EIP150 on, the 63/64 rule caps the forwarded amount.
func callGas(isEip150 bool, availableGas, base uint64, callCost *uint256.Int) (uint64, error) {
	if !isEip150 {
		if !callCost.IsUint64() {
			return 0, ErrGasUintOverflow
		}
		return callCost.Uint64(), nil
	}
	availableGas -= base
	gas := availableGas - availableGas/64
	if !callCost.IsUint64() || gas < callCost.Uint64() {
		return gas, nil
	}
	return callCost.Uint64(), nil
}

// getData returns size bytes of data starting at start, zero-padded past
// the end of data.
func getData(data []byte, start, size uint64) []byte {
	result := make([]byte, size)
	if start >= uint64(len(data)) {
		return result
	}
	end := start + size
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(result, data[start:end])
	return result
}

// getDataBig is getData with a uint256 start offset; a start that doesn't
// fit in a uint64 is treated as entirely past the end of data.
func getDataBig(data []byte, start *uint256.Int, size uint64) []byte {
	if !start.IsUint64() {
		return make([]byte, size)
	}
	return getData(data, start.Uint64(), size)
}

// allZero reports whether every byte of b is zero.
func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
