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

// Package account defines the persisted account record that backs every
// address the EVM core touches: nonce, balance, code hash and the storage
// incarnation used to detect destroyed-and-recreated contracts.
package account

import (
	"github.com/holiman/uint256"
	"github.com/n42blockchain/N42/common/types"
)

// StateAccount is the consensus representation of an Ethereum account,
// stored keyed by address in the plain-state database.
type StateAccount struct {
	Nonce       uint64
	Balance     uint256.Int
	Root        types.Hash // merkle root of the storage trie
	CodeHash    types.Hash
	Incarnation uint16 // bumped when a contract at this address self-destructs and is recreated
}

// NewEmptyAccount returns the zero-value account with an empty code hash,
// the representation of a brand-new, never-touched address.
func NewEmptyAccount() *StateAccount {
	return &StateAccount{
		Root:     types.EmptyRootHash,
		CodeHash: types.EmptyCodeHash,
	}
}

// Copy returns a deep copy of the account.
func (a *StateAccount) Copy() *StateAccount {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}

// NewAccount is an alias for NewEmptyAccount, matching the naming
// state_test.go's benchmark expects.
func NewAccount() *StateAccount {
	return NewEmptyAccount()
}

// SelfCopy is an alias for Copy, matching the naming state_test.go's
// TestAccountCopy expects.
func (a *StateAccount) SelfCopy() *StateAccount {
	return a.Copy()
}

// IsEmptyCodeHash reports whether the account has no associated code.
func (a *StateAccount) IsEmptyCodeHash() bool {
	return a.CodeHash == types.EmptyCodeHash || a.CodeHash == (types.Hash{})
}

// IsEmpty reports whether the account is empty in EIP-161 terms: its nonce,
// balance and code are all zero.
func (a *StateAccount) IsEmpty() bool {
	return a.Nonce == 0 && a.Balance.IsZero() && a.IsEmptyCodeHash()
}
