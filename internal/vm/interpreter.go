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

	"github.com/n42blockchain/N42/internal/vm/stack"
	"github.com/n42blockchain/N42/params"
)

// Config holds the tunables of a single interpreter run: tracing, gas
// accounting shortcuts, analysis bypass, and opt-in EIPs beyond the active
// hardfork's base instruction set.
type Config struct {
	Debug        bool
	Tracer       Tracer
	NoRecursion  bool
	NoBaseFee    bool
	SkipAnalysis bool
	ExtraEips    []int

	// NoReceipts tells the caller (not the interpreter itself) to skip
	// receipt generation for the transactions this EVM executes.
	NoReceipts bool

	// ReadOnly forces every call through this EVM into STATICCALL-style
	// write protection from the outermost frame, rather than only when a
	// STATICCALL opcode is actually encountered.
	ReadOnly bool
}

// HasEip3860 reports whether EIP-3860 (bounded & metered init code) is
// active: either because the fork is Shanghai or later, or because it was
// requested explicitly via ExtraEips.
func (cfg Config) HasEip3860(rules *params.Rules) bool {
	if rules != nil && rules.IsShanghai {
		return true
	}
	for _, eip := range cfg.ExtraEips {
		if eip == 3860 {
			return true
		}
	}
	return false
}

// pool recycles *Memory instances between call frames.
var pool = sync.Pool{
	New: func() interface{} { return NewMemory() },
}

// ScopeContext groups the mutable state scoped to a single call frame: its
// stack, memory, and the Contract being executed.
type ScopeContext struct {
	Memory   *Memory
	Stack    *stack.Stack
	Contract *Contract
}

// VM carries cross-frame interpreter state that must nest correctly across
// recursive calls — currently just the STATICCALL read-only flag.
type VM struct {
	readOnly bool
}

// getReadonly reports whether the interpreter is currently in a read-only
// (STATICCALL) context.
func (vm *VM) getReadonly() bool {
	return vm.readOnly
}

// setReadonly enters read-only mode if outer is true and the interpreter
// isn't already read-only, returning a cleanup closure that restores the
// prior state. Nested calls (already read-only) get a no-op cleanup: only
// the call that actually flipped the flag may flip it back.
func (vm *VM) setReadonly(outer bool) func() {
	if outer && !vm.readOnly {
		vm.readOnly = true
		return func() { vm.readOnly = false }
	}
	return vm.noop
}

// disableReadonly force-clears read-only mode regardless of nesting.
func (vm *VM) disableReadonly() {
	vm.readOnly = false
}

// noop is the cleanup returned by setReadonly when nesting means this call
// isn't the one that should restore the flag.
func (vm *VM) noop() {}

// Interpreter is the contract bytecode execution engine: given a prepared
// Contract and input, it runs to completion (or revert, or exceptional
// abort) and returns the output data.
type Interpreter interface {
	Run(contract *Contract, input []byte, readOnly bool) ([]byte, error)
}

// EVMInterpreter is the analysis-based interpreter described by spec.md
// §4.2: it dispatches through a per-hardfork JumpTable, tracks gas via the
// operation's constant/dynamic gas functions, and reports REVERT and
// exceptional aborts as plain Go errors to its caller (evm.go), which maps
// them onto the call's success/failure outcome and journal rollback.
type EVMInterpreter struct {
	VM

	evm   VMInterpreter
	table *JumpTable

	returnData []byte

	// depth is the current call-stack nesting level, maintained by evm.go
	// around every Call/CallCode/DelegateCall/StaticCall/Create/Create2,
	// and read by InstrumentedVM to track the deepest call chain observed.
	depth int
}

// Depth returns the interpreter's current call nesting level (0 at the
// transaction's outermost frame).
func (in *EVMInterpreter) Depth() int {
	return in.depth
}

// NewEVMInterpreter returns an interpreter bound to evm, with a jump table
// selected for the chain rules evm is currently executing under and
// patched with any ExtraEips the Config requests.
func NewEVMInterpreter(evm VMInterpreter) *EVMInterpreter {
	cfg := evm.Config()
	table := GetCachedJumpTable(0, evm.ChainRules())
	if len(cfg.ExtraEips) > 0 {
		tbl := copyJumpTable(&table)
		for _, eip := range cfg.ExtraEips {
			if err := EnableEIP(eip, tbl); err != nil {
				continue
			}
		}
		validateAndFillMaxStack(tbl)
		return &EVMInterpreter{evm: evm, table: tbl}
	}
	return &EVMInterpreter{evm: evm, table: &table}
}

// Run executes contract's code against input until it returns, reverts, or
// hits an exceptional condition. readOnly additionally forces (or
// preserves, if already set by an outer STATICCALL) write protection for
// the whole call, restored to its prior value on return.
//
// Unlike ReferenceInterpreter (the mini, PC-walking implementation — see
// reference_interpreter.go), Run is the block-analysis interpreter
// spec.md §4.2 describes: it dispatches through contract.codeAnalysis's
// pre-partitioned instruction stream by index, not by re-reading pc out of
// contract.Code each step, and it validates and pays for an entire basic
// block's gas and stack requirements in one check at the block's first
// instruction rather than one check per opcode. The two interpreters are
// deliberately built on different data structures (pcToBlock array
// indexing here, a sorted-position binary search in the mini interpreter)
// so runtime/shadow.go's differential comparison can actually catch a bug
// unique to either one.
func (in *EVMInterpreter) Run(contract *Contract, input []byte, readOnly bool) ([]byte, error) {
	cleanup := in.setReadonly(readOnly)
	defer cleanup()

	in.returnData = nil
	contract.Input = input
	if len(contract.Code) == 0 {
		return nil, nil
	}

	mem := pool.Get().(*Memory)
	mem.Reset()
	defer func() {
		mem.Reset()
		pool.Put(mem)
	}()

	st := stack.New()
	defer stack.ReturnNormalStack(st)

	scope := &ScopeContext{Memory: mem, Stack: st, Contract: contract}
	tracer := in.evm.Config().Tracer

	analysis := contract.codeAnalysis(in.table)
	instrs := analysis.instructions

	var (
		res []byte
		err error
	)

	ip := 0
runLoop:
	for {
		bi := instrs[ip]
		if sLen := st.Len(); sLen < bi.stackReq {
			err = ErrStackUnderflow
			break runLoop
		} else if sLen+bi.stackMaxGrowth > stackLimit {
			err = ErrStackOverflow
			break runLoop
		}
		if !contract.UseGas(bi.gasCost) {
			err = ErrOutOfGas
			break runLoop
		}
		ip++

		for ip < len(instrs) && instrs[ip].kind != instrBlockInfo {
			instr := instrs[ip]
			op := instr.opcode
			opPtr := instr.op
			pc := instr.pc

			if opPtr == nil {
				err = ErrInvalidOpcode
				break runLoop
			}

			if instr.kind == instrPush {
				st.Push(instr.word)
				ip++
				continue
			}

			if op == JUMP || op == JUMPI {
				var dest uint256.Int
				var cond uint256.Int
				if op == JUMP {
					dest = st.Pop()
				} else {
					dest, cond = st.Pop(), st.Pop()
				}
				if op == JUMPI && cond.IsZero() {
					ip++
					continue
				}
				target, ok := analysis.resolveJumpDest(&dest)
				if !ok {
					err = ErrInvalidJump
					break runLoop
				}
				if tracer != nil {
					tracer.CaptureState(pc, op, contract.Gas, 0, scope, in.returnData, contract.Depth, nil)
				}
				ip = target
				continue runLoop
			}

			gasBefore := contract.Gas

			var memSize uint64
			if opPtr.memorySize != nil {
				size, overflow := opPtr.memorySize(st)
				if overflow {
					err = ErrGasUintOverflow
					break runLoop
				}
				memSize = ToWordSize(size) * 32
			}
			if memSize > 0 {
				mem.Resize(memSize)
			}

			var cost uint64
			if instr.kind == instrDynamicGas {
				var dynCost uint64
				dynCost, err = opPtr.dynamicGas(in.evm, contract, st, mem, memSize)
				cost = dynCost
				if err != nil {
					if tracer != nil {
						tracer.CaptureFault(pc, op, gasBefore, cost, scope, contract.Depth, err)
					}
					break runLoop
				}
				if !contract.UseGas(dynCost) {
					err = ErrOutOfGas
					if tracer != nil {
						tracer.CaptureFault(pc, op, gasBefore, cost, scope, contract.Depth, err)
					}
					break runLoop
				}
			}

			if tracer != nil {
				tracer.CaptureState(pc, op, gasBefore, cost, scope, in.returnData, contract.Depth, nil)
			}

			pcVar := pc
			res, err = opPtr.execute(&pcVar, in, scope)
			if err != nil {
				if tracer != nil {
					tracer.CaptureFault(pc, op, gasBefore, cost, scope, contract.Depth, err)
				}
				break runLoop
			}
			if op == CALL || op == CALLCODE || op == DELEGATECALL || op == STATICCALL {
				in.returnData = res
			}

			if op == RETURN || op == REVERT || op == STOP || op == SELFDESTRUCT {
				break runLoop
			}
			ip++
		}

		if ip >= len(instrs) {
			break runLoop
		}
	}

	if res != nil {
		in.returnData = res
	}
	return res, err
}
