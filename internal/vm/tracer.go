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
)

// Tracer observes interpreter execution without influencing it: every hook
// is called synchronously from the interpreter's hot loop, so
// implementations must be cheap or buffer work for later draining. A nil
// Config.Tracer disables tracing entirely; the interpreter never
// nil-checks individual hooks, only the Tracer value itself.
type Tracer interface {
	// CaptureStart is called once when a top-level call begins.
	CaptureStart(from, to types.Address, create bool, input []byte, gas uint64, value *uint256.Int)

	// CaptureEnd is called once when the top-level call returns.
	CaptureEnd(output []byte, gasUsed uint64, err error)

	// CaptureState is called before executing each opcode.
	CaptureState(pc uint64, op OpCode, gas, cost uint64, scope *ScopeContext, rData []byte, depth int, err error)

	// CaptureFault is called when execution hits an exceptional error.
	CaptureFault(pc uint64, op OpCode, gas, cost uint64, scope *ScopeContext, depth int, err error)

	// CaptureEnter is called when entering a nested call (CALL, CREATE, ...).
	CaptureEnter(op OpCode, from, to types.Address, input []byte, gas uint64, value *uint256.Int)

	// CaptureExit is called when a nested call returns.
	CaptureExit(output []byte, gasUsed uint64, err error)
}
