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

package state

import (
	"github.com/holiman/uint256"
	"github.com/n42blockchain/N42/common/types"
)

// journalEntry is a single reversible state modification. revert undoes it
// against the given IntraBlockState; dirtied reports the address it
// touched, or nil for changes that aren't scoped to one account.
type journalEntry interface {
	revert(*IntraBlockState)
	dirtied() *types.Address
}

// journal is the ordered list of state modifications applied since the
// state object's creation, used to unwind everything done after a given
// Snapshot() on RevertToSnapshot. Mirrors go-ethereum's core/state journal,
// trimmed to the entry kinds this module's StateDB surface needs.
type journal struct {
	entries []journalEntry
	dirties map[types.Address]int
}

// newJournal creates a new, empty journal.
func newJournal() *journal {
	return &journal{
		dirties: make(map[types.Address]int),
	}
}

// append adds entry to the journal, bumping the dirty-count for its
// touched address (if any).
func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
	if addr := entry.dirtied(); addr != nil {
		j.dirties[*addr]++
	}
}

// revert undoes every entry recorded since snapshot, in reverse order.
func (j *journal) revert(state *IntraBlockState, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		j.entries[i].revert(state)
		if addr := j.entries[i].dirtied(); addr != nil {
			if j.dirties[*addr]--; j.dirties[*addr] == 0 {
				delete(j.dirties, *addr)
			}
		}
	}
	j.entries = j.entries[:snapshot]
}

// length returns the number of entries currently recorded.
func (j *journal) length() int {
	return len(j.entries)
}

type (
	createObjectChange struct {
		account *types.Address
	}
	selfDestructChange struct {
		account     *types.Address
		prev        bool
		prevbalance *uint256.Int
	}
	balanceChange struct {
		account *types.Address
		prev    *uint256.Int
	}
	nonceChange struct {
		account *types.Address
		prev    uint64
	}
	storageChange struct {
		account  *types.Address
		key      types.Hash
		prevalue uint256.Int
		hadValue bool
	}
	codeChange struct {
		account  *types.Address
		prevcode []byte
	}
	refundChange struct {
		prev uint64
	}
	addLogChange struct{}

	accessListAddAccountChange struct {
		address *types.Address
	}
	accessListAddSlotChange struct {
		address *types.Address
		slot    *types.Hash
	}
	transientStorageChange struct {
		account  types.Address
		key      types.Hash
		prevalue uint256.Int
	}
)

func (ch createObjectChange) revert(s *IntraBlockState) {
	delete(s.stateObjects, *ch.account)
}
func (ch createObjectChange) dirtied() *types.Address { return ch.account }

func (ch selfDestructChange) revert(s *IntraBlockState) {
	obj := s.getStateObject(*ch.account)
	if obj != nil {
		obj.selfdestructed = ch.prev
		obj.data.Balance = *ch.prevbalance
	}
}
func (ch selfDestructChange) dirtied() *types.Address { return ch.account }

func (ch balanceChange) revert(s *IntraBlockState) {
	s.getStateObject(*ch.account).data.Balance = *ch.prev
}
func (ch balanceChange) dirtied() *types.Address { return ch.account }

func (ch nonceChange) revert(s *IntraBlockState) {
	s.getStateObject(*ch.account).data.Nonce = ch.prev
}
func (ch nonceChange) dirtied() *types.Address { return ch.account }

func (ch storageChange) revert(s *IntraBlockState) {
	obj := s.getStateObject(*ch.account)
	if ch.hadValue {
		obj.dirtyStorage[ch.key] = ch.prevalue
	} else {
		delete(obj.dirtyStorage, ch.key)
	}
}
func (ch storageChange) dirtied() *types.Address { return ch.account }

func (ch codeChange) revert(s *IntraBlockState) {
	obj := s.getStateObject(*ch.account)
	obj.code = ch.prevcode
	obj.data.CodeHash = types.BytesToHash(hashOrEmpty(ch.prevcode))
}
func (ch codeChange) dirtied() *types.Address { return ch.account }

func (ch refundChange) revert(s *IntraBlockState) {
	s.refund = ch.prev
}
func (ch refundChange) dirtied() *types.Address { return nil }

func (ch addLogChange) revert(s *IntraBlockState) {
	s.logs = s.logs[:len(s.logs)-1]
}
func (ch addLogChange) dirtied() *types.Address { return nil }

func (ch accessListAddAccountChange) revert(s *IntraBlockState) {
	s.accessList.DeleteAddress(*ch.address)
}
func (ch accessListAddAccountChange) dirtied() *types.Address { return nil }

func (ch accessListAddSlotChange) revert(s *IntraBlockState) {
	s.accessList.DeleteSlot(*ch.address, *ch.slot)
}
func (ch accessListAddSlotChange) dirtied() *types.Address { return nil }

func (ch transientStorageChange) revert(s *IntraBlockState) {
	s.transientStorage.Set(ch.account, ch.key, ch.prevalue)
}
func (ch transientStorageChange) dirtied() *types.Address { return nil }
