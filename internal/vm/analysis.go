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
	"sync"

	"github.com/holiman/uint256"
)

// bitvec is a bit vector with one bit per code byte: set when that byte
// starts an instruction (PUSH opcodes and JUMPDEST included), clear when it
// is PUSH immediate data. Only JUMPDEST bytes whose bit is set (i.e. reached as an instruction, not as PUSH data) are
// valid jump targets.
type bitvec []byte

func newBitvec(codeLen int) bitvec {
	return make(bitvec, codeLen/8+1+4)
}

func (bits bitvec) set1(pos uint64) {
	bits[pos/8] |= 0x80 >> (pos % 8)
}

func (bits bitvec) setN(flag uint16, pos uint64) {
	a := flag << (pos % 8)
	bits[pos/8] |= byte(a >> 8)
	if b := byte(a); b != 0 {
		bits[pos/8+1] = b
	}
}

func (bits bitvec) codeSegment(pos uint64) bool {
	return (bits[pos/8] & (0x80 >> (pos % 8))) != 0
}

// codeBitmap computes the instruction/push-data bitmap for code: JUMPDEST
// bytes land with their bit SET only when they are reached as an
// instruction opcode, never when they fall inside a PUSH's immediate data.
// It backs the mini reference interpreter's independent jump-validity path
// (validJumpdest/lookupJumpdests below): §4.7 wants that path built on a
// different data structure than the main interpreter's CodeAnalysis, not
// merely a different loop shape, so the two genuinely disagree if either
// has a bug.
func codeBitmap(code []byte) bitvec {
	bits := newBitvec(len(code))
	for pc := uint64(0); pc < uint64(len(code)); {
		op := OpCode(code[pc])
		if op.IsPush() {
			numbits := uint64(op - PUSH1 + 1)
			bits.set1(pc)
			pc += 1 + numbits
			continue
		}
		bits.set1(pc)
		pc++
	}
	return bits
}

// jumpdestPositions extracts the sorted list of valid JUMPDEST offsets
// from code, for the per-contract jumpdest cache (map[types.Hash][]uint64).
func jumpdestPositions(code []byte) []uint64 {
	bits := codeBitmap(code)
	var positions []uint64
	for pc := uint64(0); pc < uint64(len(code)); pc++ {
		if OpCode(code[pc]) == JUMPDEST && bits.codeSegment(pc) {
			positions = append(positions, pc)
		}
	}
	return positions
}

// validJumpdest reports whether dest is an in-bounds, instruction-aligned
// JUMPDEST in c's code, computing and caching the contract's jumpdest list
// by code hash on first use. This is the mini reference interpreter's own
// jump-validity check (a sorted-position binary search); the main
// interpreter never calls it — see CodeAnalysis.resolveJumpDest below.
func (c *Contract) validJumpdest(dest *uint256.Int) bool {
	if !dest.IsUint64() {
		return false
	}
	udest := dest.Uint64()
	if udest >= uint64(len(c.Code)) {
		return false
	}
	if OpCode(c.Code[udest]) != JUMPDEST {
		return false
	}
	positions := c.lookupJumpdests()
	lo, hi := 0, len(positions)
	for lo < hi {
		mid := (lo + hi) / 2
		if positions[mid] < udest {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(positions) && positions[lo] == udest
}

var jumpdestCacheMu sync.Mutex

func (c *Contract) lookupJumpdests() []uint64 {
	if c.jumpdests == nil {
		return cachedJumpdestPositions(c.CodeHash, c.Hardfork, c.Code)
	}
	jumpdestCacheMu.Lock()
	defer jumpdestCacheMu.Unlock()
	if positions, ok := c.jumpdests[c.CodeHash]; ok {
		return positions
	}
	positions := cachedJumpdestPositions(c.CodeHash, c.Hardfork, c.Code)
	c.jumpdests[c.CodeHash] = positions
	return positions
}

// instrKind distinguishes the three instruction-stream entries spec.md
// §4.1 step 4 describes.
type instrKind uint8

const (
	// instrBlockInfo carries a basic block's pre-summed (gas_cost,
	// stack_req, stack_max_growth); the main loop processes one before
	// running the block's first real instruction.
	instrBlockInfo instrKind = iota
	// instrExec is a plain opcode whose cost is entirely the constant gas
	// already folded into its block's gas_cost.
	instrExec
	// instrDynamicGas is an opcode whose handler must additionally compute
	// and subtract a variable gas cost (memory expansion, copy length,
	// SSTORE/ CALL pricing, ...) before it runs.
	instrDynamicGas
	// instrPush carries a PUSH's immediate operand, decoded once at
	// analysis time so the main loop never re-reads it from code.
	instrPush
)

// instruction is one entry of a CodeAnalysis's instruction stream.
type instruction struct {
	kind   instrKind
	pc     uint64       // byte offset this instruction starts at
	opcode OpCode       // the raw opcode (0 / unused for instrBlockInfo)
	op     *operation   // nil for instrBlockInfo, and for an undefined opcode
	word   *uint256.Int // instrPush only: the decoded immediate

	// Set only on instrBlockInfo entries; the block this entry opens runs
	// from the following entry up to (but not including) the next
	// instrBlockInfo entry, or the end of the stream.
	gasCost        uint64
	stackReq       int
	stackMaxGrowth int
}

// CodeAnalysis is the immutable, cacheable product of spec.md §4.1: a
// JUMPDEST bitset, a byte-pc-to-instruction-stream index, and the
// instruction stream itself. It lets the main interpreter (§4.2) validate
// an entire basic block's gas and stack requirements in one check at block
// entry instead of one check per opcode, and never re-decode a PUSH's
// immediate bytes.
type CodeAnalysis struct {
	jumpdests bitvec  // one bit per code byte, set only at real JUMPDEST opcodes
	pcToBlock []int32 // byte pc -> index into instructions of its block's block_info; -1 (sentinel) for non-instruction bytes

	instructions []instruction
}

// pcToBlockSentinel marks a byte offset that is not the start of any real
// instruction (PUSH immediate data, or past the end of code).
const pcToBlockSentinel int32 = -1

// isTerminator reports whether op ends a basic block: spec.md §4.1 step 3
// starts a new block at the instruction following any of these.
func isTerminator(op OpCode) bool {
	switch op {
	case STOP, RETURN, REVERT, INVALID, SELFDESTRUCT, JUMP, JUMPI:
		return true
	}
	return false
}

// analyzeCode partitions code into basic blocks against table and builds
// the instruction stream described by spec.md §4.1 steps 1-5. It never
// fails: an undefined opcode becomes an instruction with a nil op, which
// the main interpreter turns into ErrInvalidOpcode at dispatch time rather
// than analysis time, matching §4.2's "undefined opcode bytes immediately
// fail InvalidOpcode" tie-break (the failure belongs to execution, not to
// the deterministic, total transform that builds CodeAnalysis).
func analyzeCode(code []byte, table *JumpTable) *CodeAnalysis {
	if len(code) == 0 {
		// A single trivial block containing only an implicit STOP.
		return &CodeAnalysis{
			instructions: []instruction{
				{kind: instrBlockInfo},
				{kind: instrExec, opcode: STOP, op: table[STOP]},
			},
		}
	}

	jumpdests := newBitvec(len(code))
	pcToBlock := make([]int32, len(code))
	for i := range pcToBlock {
		pcToBlock[i] = pcToBlockSentinel
	}

	var instructions []instruction
	pc := uint64(0)
	for pc < uint64(len(code)) {
		blockIdx := len(instructions)
		blockStart := pc
		instructions = append(instructions, instruction{kind: instrBlockInfo, pc: pc})

		var gasCost uint64
		var stackReq, stackMaxGrowth, net int

		for pc < uint64(len(code)) {
			opcode := OpCode(code[pc])

			// A JUMPDEST always opens a fresh block (spec.md §4.1 step 3),
			// even when reached by straight-line fallthrough rather than a
			// jump: it is the only way a valid jump target's pc can line up
			// with a block's first instruction, which is what lets
			// resolveJumpDest below hand back a ready-to-validate block
			// index instead of an offset into the middle of one.
			if opcode == JUMPDEST && pc != blockStart {
				break
			}

			opPtr := table[opcode]
			instrPC := pc
			pcToBlock[instrPC] = int32(blockIdx)

			if opcode == JUMPDEST {
				jumpdests.set1(instrPC)
			}

			if opcode.IsPush() {
				n := uint64(opcode - PUSH1 + 1)
				start := min(uint64(len(code)), pc+1)
				end := min(uint64(len(code)), start+n)
				word := new(uint256.Int).SetBytes(code[start:end])
				if padding := n - (end - start); padding > 0 {
					word.Lsh(word, uint(8*padding))
				}
				instructions = append(instructions, instruction{kind: instrPush, pc: instrPC, opcode: opcode, op: opPtr, word: word})
				if opPtr != nil {
					gasCost += opPtr.constantGas
					net, stackReq, stackMaxGrowth = foldStackEffect(net, stackReq, stackMaxGrowth, opPtr.numPop, opPtr.numPush)
				}
				pc = pc + 1 + n
				if pc > uint64(len(code)) {
					pc = uint64(len(code))
				}
				continue
			}

			kind := instrExec
			if opPtr != nil && opPtr.dynamicGas != nil {
				kind = instrDynamicGas
			}
			instructions = append(instructions, instruction{kind: kind, pc: instrPC, opcode: opcode, op: opPtr})
			pc++

			if opPtr == nil {
				// Undefined opcode: its own block ends here: nothing past it
				// in this stretch of code is reachable without first
				// failing InvalidOpcode.
				break
			}
			gasCost += opPtr.constantGas
			net, stackReq, stackMaxGrowth = foldStackEffect(net, stackReq, stackMaxGrowth, opPtr.numPop, opPtr.numPush)

			if isTerminator(opcode) {
				break
			}
		}

		bi := &instructions[blockIdx]
		bi.gasCost = gasCost
		bi.stackReq = stackReq
		bi.stackMaxGrowth = stackMaxGrowth
	}

	return &CodeAnalysis{jumpdests: jumpdests, pcToBlock: pcToBlock, instructions: instructions}
}

// foldStackEffect folds one instruction's (pops, pushes) into a block's
// running stack bookkeeping. net is the cumulative (pushes - pops) since
// the block's entry; stackReq tracks the deepest the block ever needs to
// reach below its entry point (the most-negative running total of
// pops-pushes, spec.md §4.1 step 3, restated here as the non-negative
// shortfall against entry depth); stackMaxGrowth tracks the highest net
// ever reached (the most-positive running total of pushes-pops).
func foldStackEffect(net, stackReq, stackMaxGrowth, pops, pushes int) (int, int, int) {
	if needed := pops - net; needed > stackReq {
		stackReq = needed
	}
	net += pushes - pops
	if net > stackMaxGrowth {
		stackMaxGrowth = net
	}
	return net, stackReq, stackMaxGrowth
}

// resolveJumpDest implements spec.md §4.2's JUMP/JUMPI destination check:
// valid iff (a) dest fits in 64 bits (any in-range EVM word implies it
// also fits in 32, since code can never exceed the init-code size limit),
// (b) pcToBlock[dest] isn't the sentinel, and (c) dest itself is a real
// JUMPDEST opcode, not a byte that merely has the same value inside a
// PUSH's immediate data (already excluded by (b), since analyzeCode never
// assigns a non-sentinel pcToBlock entry to an immediate-data byte — the
// jumpdests bitset is the authoritative, independently-stored record of
// which bytes satisfy (c)). On success it returns the index into
// instructions of that destination's block_info, ready to resume the main
// loop's block-entry validation.
func (a *CodeAnalysis) resolveJumpDest(dest *uint256.Int) (int, bool) {
	if !dest.IsUint64() {
		return 0, false
	}
	udest := dest.Uint64()
	if udest >= uint64(len(a.pcToBlock)) {
		return 0, false
	}
	if !a.jumpdests.codeSegment(udest) {
		return 0, false
	}
	idx := a.pcToBlock[udest]
	if idx == pcToBlockSentinel {
		return 0, false
	}
	return int(idx), true
}

// codeAnalysis returns c's CodeAnalysis, built against table and cached
// process-wide by (CodeHash, Hardfork) — see analysis_cache.go.
// ExtraEips-patched tables are not part of the cache key: the handful of
// opt-in EIPs this module ever registered never changed a base opcode's
// stack shape, only its gas function, so sharing the cache across them is
// a deliberate simplification rather than an oversight.
func (c *Contract) codeAnalysis(table *JumpTable) *CodeAnalysis {
	return cachedCodeAnalysis(c.CodeHash, c.Hardfork, c.Code, table)
}
