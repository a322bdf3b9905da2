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
	"github.com/n42blockchain/N42/params"
)

// ContractRef is a reference to an account, either an actual running
// contract (*Contract) or a plain account address (AccountRef) used by
// the outermost call of a transaction.
type ContractRef interface {
	Address() types.Address
}

// AccountRef wraps an address into a ContractRef, for the initial
// sender of a transaction which has no associated bytecode.
type AccountRef types.Address

// Address casts AccountRef back to an Address.
func (ar AccountRef) Address() types.Address { return types.Address(ar) }

// Contract is the per-call execution context: caller, contract address,
// code, input, value, gas, and the per-code-hash JUMPDEST cache. It is
// the concrete realization of spec.md's Frame for one call/create level.
type Contract struct {
	// CallerAddress is the address of the account that initiated this
	// call; it is NOT the caller's Contract, since a Contract doesn't
	// necessarily exist for the caller (e.g. the outermost EOA sender).
	CallerAddress types.Address
	caller        ContractRef
	self          ContractRef

	jumpdests map[types.Hash][]uint64 // shared analysis cache, keyed by code hash

	// Hardfork is the rule set this call is executing under, set by evm.go
	// after construction from its chainRules. It keys the process-wide
	// analysis cache (analysis_cache.go); left at its zero value
	// (Frontier) it still produces correct results, only a coarser cache
	// key, so tests that build a Contract directly need not set it.
	Hardfork params.Hardfork

	Code     []byte
	CodeHash types.Hash
	CodeAddr *types.Address
	Input    []byte

	Gas   uint64
	value *uint256.Int

	skipAnalysis bool

	// Depth is this frame's position in the call stack (0 for the
	// transaction's outermost call), stamped by evm.go on creation and
	// consulted only by tracer hooks.
	Depth int
}

// NewContract returns a new Contract for executing the given object's
// code on behalf of caller. skipAnalysis bypasses the JUMPDEST/basic-block
// pre-analysis pipeline, used by the mini reference interpreter (§4.7),
// which walks code by PC directly.
func NewContract(caller ContractRef, object ContractRef, value *uint256.Int, gas uint64, skipAnalysis bool) *Contract {
	c := &Contract{CallerAddress: caller.Address(), caller: caller, self: object}

	if parent, ok := caller.(*Contract); ok {
		c.jumpdests = parent.jumpdests
	} else {
		c.jumpdests = make(map[types.Hash][]uint64)
	}

	if value == nil {
		value = new(uint256.Int)
	}
	c.value = value
	c.Gas = gas
	c.skipAnalysis = skipAnalysis
	return c
}

// AsDelegate marks the contract as a delegate call, inheriting the value
// and caller address of the parent contract's call, per DELEGATECALL
// semantics (the code runs in the delegating contract's identity).
func (c *Contract) AsDelegate() *Contract {
	parent := c.caller.(*Contract)
	c.CallerAddress = parent.CallerAddress
	c.value = parent.value
	return c
}

// GetOp returns the opcode at position n, or STOP past the end of code.
func (c *Contract) GetOp(n uint64) OpCode {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n])
	}
	return STOP
}

// Caller returns the address that initiated the current call.
func (c *Contract) Caller() types.Address {
	return c.CallerAddress
}

// UseGas deducts gas from the contract's available gas, reporting false
// (and leaving Gas unchanged) if that would underflow.
func (c *Contract) UseGas(gas uint64) bool {
	if c.Gas < gas {
		return false
	}
	c.Gas -= gas
	return true
}

// Address returns the address of the contract's code/storage owner.
func (c *Contract) Address() types.Address {
	return c.self.Address()
}

// Value returns the value associated with this call.
func (c *Contract) Value() *uint256.Int {
	return c.value
}

// SetCallCode sets the code to execute, its address (for EXTCODE*-style
// introspection) and its hash (for analysis caching).
func (c *Contract) SetCallCode(addr *types.Address, codeHash types.Hash, code []byte) {
	c.Code = code
	c.CodeHash = codeHash
	c.CodeAddr = addr
}
