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

package runtime

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/n42blockchain/N42/common/types"
	"github.com/n42blockchain/N42/internal/vm"
	"github.com/n42blockchain/N42/log"
)

// ShadowMode selects how much of spec.md §4.7's differential validation
// runs alongside a call. It is off by default: shadow execution roughly
// doubles the work of a call, so a caller opts in deliberately.
type ShadowMode int

const (
	// ShadowOff runs only the main interpreter.
	ShadowOff ShadowMode = iota
	// ShadowPerCall re-runs the whole call through the reference
	// interpreter and compares (success, return_data, gas_used).
	ShadowPerCall
	// ShadowPerBlock additionally compares (gas_remaining, stack top N,
	// memory size) at every basic-block boundary the two interpreters
	// pass through.
	ShadowPerBlock
)

// String renders m the way Config's --enable-shadow-style flags spell it.
func (m ShadowMode) String() string {
	switch m {
	case ShadowPerCall:
		return "per_call"
	case ShadowPerBlock:
		return "per_block"
	default:
		return "off"
	}
}

// Mismatch is one divergence spec.md §4.7 asks to be recorded as
// (pc, field_name, main_summary, mini_summary).
type Mismatch struct {
	PC          uint64
	Field       string
	MainSummary string
	MiniSummary string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("pc=%d field=%s main=%q mini=%q", m.PC, m.Field, m.MainSummary, m.MiniSummary)
}

// ShadowComparator runs vm.ReferenceInterpreter alongside a call and
// records where it disagrees with the main interpreter. Debug builds
// (FailFast) treat the first mismatch as fatal, matching spec.md's "Debug
// builds surface the first mismatch as a fatal error; release builds log
// and continue."
type ShadowComparator struct {
	Mode       ShadowMode
	FailFast   bool
	Mismatches []Mismatch
}

// record appends a mismatch, logging it (release mode) or panicking
// (FailFast, for debug builds that want to stop at the first divergence).
func (c *ShadowComparator) record(m Mismatch) {
	c.Mismatches = append(c.Mismatches, m)
	if c.FailFast {
		panic("shadow mismatch: " + m.String())
	}
	log.Error("shadow interpreter mismatch", "pc", m.PC, "field", m.Field, "main", m.MainSummary, "mini", m.MiniSummary)
}

// blockCheckpoint is one basic-block boundary's snapshot of interpreter
// state: spec.md §4.7's per_block mode compares these, pc by pc, between
// the main and reference interpreters.
type blockCheckpoint struct {
	pc       uint64
	gas      uint64
	stackTop []string
	memSize  int
}

// checkpointStackWindow bounds how much of the stack per_block compares at
// each JUMPDEST — the same "top few words" depth a human would check by
// eye, not the whole stack.
const checkpointStackWindow = 4

// checkpointTracer is a vm.Tracer that records a blockCheckpoint at every
// JUMPDEST the main interpreter passes through. It ignores every other
// hook: per_block only cares about basic-block boundaries.
type checkpointTracer struct {
	checkpoints []blockCheckpoint
}

func (t *checkpointTracer) CaptureStart(from, to types.Address, create bool, input []byte, gas uint64, value *uint256.Int) {
}
func (t *checkpointTracer) CaptureEnd(output []byte, gasUsed uint64, err error) {}
func (t *checkpointTracer) CaptureFault(pc uint64, op vm.OpCode, gas, cost uint64, scope *vm.ScopeContext, depth int, err error) {
}
func (t *checkpointTracer) CaptureEnter(op vm.OpCode, from, to types.Address, input []byte, gas uint64, value *uint256.Int) {
}
func (t *checkpointTracer) CaptureExit(output []byte, gasUsed uint64, err error) {}

func (t *checkpointTracer) CaptureState(pc uint64, op vm.OpCode, gas, cost uint64, scope *vm.ScopeContext, rData []byte, depth int, err error) {
	if op != vm.JUMPDEST {
		return
	}
	t.checkpoints = append(t.checkpoints, blockCheckpoint{
		pc:       pc,
		gas:      gas,
		stackTop: stackTopStrings(scope),
		memSize:  scope.Memory.Len(),
	})
}

// stackTopStrings renders the top few stack words for comparison; shared
// by checkpointTracer and the reference interpreter's own Checkpoint hook
// so both sides format identically.
func stackTopStrings(scope *vm.ScopeContext) []string {
	n := scope.Stack.Len()
	if n > checkpointStackWindow {
		n = checkpointStackWindow
	}
	top := make([]string, n)
	for i := 0; i < n; i++ {
		top[i] = scope.Stack.Back(i).String()
	}
	return top
}

// compareCall runs (addr, input) a second time through the reference
// interpreter — and, in ShadowPerBlock mode, a third time through the main
// interpreter with a checkpointTracer attached — against the state
// exactly as it stood before cfg's real call, then restores that pre-call
// state so none of this diagnostic work leaks into what the caller
// observes. Both comparison runs happen BEFORE the real one: RevertToSnapshot
// discards every journal entry newer than the snapshot it's given, so
// there is no way to replay the real call's own effects afterward once
// something has been layered on top of them — running the diagnostic
// runs first and letting the real call go last (and stand) avoids needing
// to.
func (c *ShadowComparator) compareCall(cfg *Config, addr types.Address, input []byte, gas uint64) {
	if c.Mode == ShadowOff {
		return
	}

	snap := cfg.State.Snapshot()
	defer func() { cfg.State.RevertToSnapshot(snap) }()

	code := cfg.State.GetCode(addr)
	codeHash := cfg.State.GetCodeHash(addr)

	var mainTrace *checkpointTracer
	var refCheckpoints []blockCheckpoint
	if c.Mode == ShadowPerBlock {
		mainTrace = &checkpointTracer{}
	}

	mainCfg := *cfg
	if mainTrace != nil {
		// Only override the tracer when per_block needs its own: assigning
		// a nil *checkpointTracer here would still produce a non-nil
		// Tracer interface value, and the interpreter only nil-checks the
		// interface itself.
		mainCfg.EVMConfig.Tracer = mainTrace
		mainCfg.EVMConfig.Debug = true
	}
	mainEvm := newEVM(&mainCfg)
	mainRet, mainLeftover, mainErr := mainEvm.Call(vm.AccountRef(cfg.Origin), addr, input, gas, cfg.Value, false)
	mainGasUsed := gas - mainLeftover

	// Undo the main run so the reference run starts from the same state.
	cfg.State.RevertToSnapshot(snap)
	snap = cfg.State.Snapshot()

	refEvm := newEVM(cfg)
	refContract := vm.NewContract(vm.AccountRef(cfg.Origin), vm.AccountRef(addr), cfg.Value, gas, true)
	refContract.Hardfork = refEvm.ChainRules().Hardfork()
	refContract.SetCallCode(&addr, codeHash, code)

	ref := vm.NewReferenceInterpreter(refEvm)
	if c.Mode == ShadowPerBlock {
		ref.Checkpoint = func(pc uint64, refGas uint64, scope *vm.ScopeContext) {
			refCheckpoints = append(refCheckpoints, blockCheckpoint{
				pc:       pc,
				gas:      refGas,
				stackTop: stackTopStrings(scope),
				memSize:  scope.Memory.Len(),
			})
		}
	}
	refRet, refErr := ref.Run(refContract, input, false)
	refGasUsed := gas - refContract.Gas

	c.compareOutcome(mainErr, mainRet, mainGasUsed, refErr, refRet, refGasUsed)

	if mainTrace != nil {
		c.compareCheckpoints(mainTrace.checkpoints, refCheckpoints)
	}
}

// compareOutcome implements per_call's triple: (success, return_data,
// gas_used). success is whether the call returned without an error at
// all — a REVERT is already a distinct, reported error
// (vm.ErrExecutionReverted), so it counts as a mismatch if only one side
// hit it.
func (c *ShadowComparator) compareOutcome(mainErr error, mainRet []byte, mainGasUsed uint64, refErr error, refRet []byte, refGasUsed uint64) {
	mainOK := mainErr == nil
	refOK := refErr == nil
	if mainOK != refOK {
		c.record(Mismatch{Field: "success", MainSummary: fmt.Sprintf("%v (err=%v)", mainOK, mainErr), MiniSummary: fmt.Sprintf("%v (err=%v)", refOK, refErr)})
		return
	}
	if string(mainRet) != string(refRet) {
		c.record(Mismatch{Field: "return_data", MainSummary: fmt.Sprintf("%x", mainRet), MiniSummary: fmt.Sprintf("%x", refRet)})
	}
	if mainGasUsed != refGasUsed {
		c.record(Mismatch{Field: "gas_used", MainSummary: fmt.Sprintf("%d", mainGasUsed), MiniSummary: fmt.Sprintf("%d", refGasUsed)})
	}
}

// compareCheckpoints diffs two basic-block checkpoint traces index by
// index. This is a post-hoc diff rather than true interleaved lockstep
// execution: the interpreter/tracer machinery has no pause-resume
// mechanism to drive the two runs one instruction apart, so both run to
// completion independently first. A checkpoint count mismatch (one side
// took a different control-flow path entirely) is itself reported as a
// single divergence rather than compared field by field past that point.
func (c *ShadowComparator) compareCheckpoints(main, mini []blockCheckpoint) {
	n := len(main)
	if len(mini) < n {
		n = len(mini)
	}
	for i := 0; i < n; i++ {
		m, r := main[i], mini[i]
		if m.pc != r.pc {
			c.record(Mismatch{PC: m.pc, Field: "block_pc", MainSummary: fmt.Sprintf("%d", m.pc), MiniSummary: fmt.Sprintf("%d", r.pc)})
			return
		}
		if m.gas != r.gas {
			c.record(Mismatch{PC: m.pc, Field: "gas_remaining", MainSummary: fmt.Sprintf("%d", m.gas), MiniSummary: fmt.Sprintf("%d", r.gas)})
		}
		if m.memSize != r.memSize {
			c.record(Mismatch{PC: m.pc, Field: "mem_size", MainSummary: fmt.Sprintf("%d", m.memSize), MiniSummary: fmt.Sprintf("%d", r.memSize)})
		}
		if !equalStrings(m.stackTop, r.stackTop) {
			c.record(Mismatch{PC: m.pc, Field: "stack_top", MainSummary: fmt.Sprintf("%v", m.stackTop), MiniSummary: fmt.Sprintf("%v", r.stackTop)})
		}
	}
	if len(main) != len(mini) {
		c.record(Mismatch{Field: "block_count", MainSummary: fmt.Sprintf("%d", len(main)), MiniSummary: fmt.Sprintf("%d", len(mini))})
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
