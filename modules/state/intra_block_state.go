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

	"github.com/n42blockchain/N42/common"
	"github.com/n42blockchain/N42/common/account"
	"github.com/n42blockchain/N42/common/block"
	"github.com/n42blockchain/N42/common/hash"
	"github.com/n42blockchain/N42/common/transaction"
	"github.com/n42blockchain/N42/common/types"
)

// IntraBlockState implements common.StateDB; internal/vm/evmtypes.IntraBlockState
// is a type alias for that interface, so this is what the interpreter runs
// against wherever it calls for one.
var _ common.StateDB = (*IntraBlockState)(nil)

// Storage is an account's in-memory key/value slot map.
type Storage map[types.Hash]uint256.Int

// stateObject is the in-memory cache entry for one address: its account
// record, code, and the storage slots touched so far this execution.
// originStorage holds values as last read from the backing StateReader;
// dirtyStorage holds everything SetState has written since, so GetState
// can serve the latest value without re-reading the backing store and
// SetState's caller can still learn the previous value for the journal.
type stateObject struct {
	address types.Address
	data    account.StateAccount

	code  []byte
	fresh bool // created by this execution (no backing record existed)

	originStorage Storage
	dirtyStorage  Storage

	selfdestructed bool
}

func newStateObject(addr types.Address) *stateObject {
	return &stateObject{
		address:       addr,
		data:          *account.NewEmptyAccount(),
		originStorage: make(Storage),
		dirtyStorage:  make(Storage),
		fresh:         true,
	}
}

// hashOrEmpty returns EmptyCodeHash for nil/empty code, else Keccak256(code).
func hashOrEmpty(code []byte) []byte {
	if len(code) == 0 {
		return types.EmptyCodeHash.Bytes()
	}
	return hash.Keccak256(code)
}

// revision is a snapshot identifier: its id and the journal length at the
// moment Snapshot() was called.
type revision struct {
	id          int
	journalSize int
}

// IntraBlockState is the journaled, per-transaction view of account state
// that the interpreter executes against: every mutating StateDB method
// records a journal entry before applying its change, so RevertToSnapshot
// can undo an arbitrary suffix of calls (REVERT, an exceptional abort, or a
// failed nested CALL/CREATE) without disturbing anything committed before
// the matching Snapshot().
//
// Reads that miss the in-memory cache fall through to reader, a
// StateReader over whatever backing store the caller configured (the
// in-memory memory_state.go default, or nothing at all for a harness that
// only ever creates fresh accounts).
type IntraBlockState struct {
	reader StateReader

	stateObjects map[types.Address]*stateObject

	journal    *journal
	accessList *accessList

	transientStorage transientStorage

	logs   []*block.Log
	refund uint64

	nextRevisionID int
	revisions      []revision
}

// New returns an IntraBlockState reading through to reader for anything not
// yet in its in-memory cache. A nil reader is valid: every account is then
// treated as nonexistent until CreateAccount is called for it, which is
// exactly what a from-genesis harness run (runtime.Execute, cmd/evmrun)
// wants.
func New(reader StateReader) *IntraBlockState {
	return &IntraBlockState{
		reader:           reader,
		stateObjects:     make(map[types.Address]*stateObject),
		journal:          newJournal(),
		accessList:       newAccessList(),
		transientStorage: newTransientStorage(),
	}
}

// getStateObject returns the cached stateObject for addr, loading it from
// reader on first access. Returns nil if the account doesn't exist and
// reader has nothing for it either.
func (s *IntraBlockState) getStateObject(addr types.Address) *stateObject {
	if obj, ok := s.stateObjects[addr]; ok {
		return obj
	}
	if s.reader == nil {
		return nil
	}
	acct, err := s.reader.ReadAccountData(addr)
	if err != nil || acct == nil {
		return nil
	}
	obj := &stateObject{
		address:       addr,
		data:          *acct,
		originStorage: make(Storage),
		dirtyStorage:  make(Storage),
	}
	if code, err := s.reader.ReadAccountCode(addr, acct.Incarnation, acct.CodeHash); err == nil {
		obj.code = code
	}
	s.stateObjects[addr] = obj
	return obj
}

// getOrNewStateObject returns addr's stateObject, creating an empty one
// (and recording the creation in the journal) if none exists yet.
func (s *IntraBlockState) getOrNewStateObject(addr types.Address) *stateObject {
	obj := s.getStateObject(addr)
	if obj != nil {
		return obj
	}
	obj = newStateObject(addr)
	s.journal.append(createObjectChange{account: &addr})
	s.stateObjects[addr] = obj
	return obj
}

// ========== Account Management ==========

func (s *IntraBlockState) CreateAccount(addr types.Address, contractCreation bool) {
	existing := s.getStateObject(addr)
	var prevBalance uint256.Int
	if existing != nil {
		prevBalance = existing.data.Balance
	}
	if existing != nil && !existing.fresh {
		// Re-creating over a live account (CREATE2 redeploy after
		// self-destruct, or a plain non-contract account receiving its
		// first contract): replace the account record but preserve the
		// existing balance, matching EIP-161/go-ethereum CreateAccount
		// semantics.
		delete(s.stateObjects, addr)
	}
	obj := s.getOrNewStateObject(addr)
	obj.data.Balance = prevBalance
	if contractCreation {
		obj.data.Incarnation++
		if obj.data.Incarnation == 0 {
			obj.data.Incarnation = FirstContractIncarnation
		}
	}
}

func (s *IntraBlockState) Exist(addr types.Address) bool {
	return s.getStateObject(addr) != nil
}

func (s *IntraBlockState) Empty(addr types.Address) bool {
	obj := s.getStateObject(addr)
	return obj == nil || obj.data.IsEmpty()
}

// ========== Balance Operations ==========

func (s *IntraBlockState) SubBalance(addr types.Address, amount *uint256.Int) {
	if amount.IsZero() {
		return
	}
	obj := s.getOrNewStateObject(addr)
	s.journal.append(balanceChange{account: &addr, prev: obj.data.Balance.Clone()})
	obj.data.Balance.Sub(&obj.data.Balance, amount)
}

func (s *IntraBlockState) AddBalance(addr types.Address, amount *uint256.Int) {
	obj := s.getOrNewStateObject(addr)
	if amount.IsZero() {
		// Touching via a zero-value transfer still matters for EIP-161
		// empty-account pruning, but there is no balance change to
		// journal.
		return
	}
	s.journal.append(balanceChange{account: &addr, prev: obj.data.Balance.Clone()})
	obj.data.Balance.Add(&obj.data.Balance, amount)
}

func (s *IntraBlockState) GetBalance(addr types.Address) *uint256.Int {
	obj := s.getStateObject(addr)
	if obj == nil {
		return new(uint256.Int)
	}
	return obj.data.Balance.Clone()
}

// ========== Nonce Operations ==========

func (s *IntraBlockState) GetNonce(addr types.Address) uint64 {
	obj := s.getStateObject(addr)
	if obj == nil {
		return 0
	}
	return obj.data.Nonce
}

func (s *IntraBlockState) SetNonce(addr types.Address, nonce uint64) {
	obj := s.getOrNewStateObject(addr)
	s.journal.append(nonceChange{account: &addr, prev: obj.data.Nonce})
	obj.data.Nonce = nonce
}

// ========== Code Operations ==========

func (s *IntraBlockState) GetCodeHash(addr types.Address) types.Hash {
	obj := s.getStateObject(addr)
	if obj == nil {
		return types.Hash{}
	}
	return obj.data.CodeHash
}

func (s *IntraBlockState) GetCode(addr types.Address) []byte {
	obj := s.getStateObject(addr)
	if obj == nil {
		return nil
	}
	return obj.code
}

func (s *IntraBlockState) SetCode(addr types.Address, code []byte) {
	obj := s.getOrNewStateObject(addr)
	s.journal.append(codeChange{account: &addr, prevcode: obj.code})
	obj.code = code
	obj.data.CodeHash = types.BytesToHash(hashOrEmpty(code))
}

func (s *IntraBlockState) GetCodeSize(addr types.Address) int {
	return len(s.GetCode(addr))
}

// ========== Refund Operations ==========

func (s *IntraBlockState) AddRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	s.refund += gas
}

func (s *IntraBlockState) SubRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	if gas > s.refund {
		panic("refund counter below zero")
	}
	s.refund -= gas
}

func (s *IntraBlockState) GetRefund() uint64 {
	return s.refund
}

// ========== Storage Operations ==========

func (s *IntraBlockState) GetCommittedState(addr types.Address, key *types.Hash, outValue *uint256.Int) {
	obj := s.getStateObject(addr)
	if obj == nil {
		outValue.Clear()
		return
	}
	if v, ok := obj.originStorage[*key]; ok {
		*outValue = v
		return
	}
	if s.reader != nil {
		if raw, err := s.reader.ReadAccountStorage(addr, obj.data.Incarnation, key); err == nil && len(raw) > 0 {
			outValue.SetBytes(raw)
			obj.originStorage[*key] = *outValue
			return
		}
	}
	outValue.Clear()
	obj.originStorage[*key] = *outValue
}

func (s *IntraBlockState) GetState(addr types.Address, key *types.Hash, outValue *uint256.Int) {
	obj := s.getStateObject(addr)
	if obj == nil {
		outValue.Clear()
		return
	}
	if v, ok := obj.dirtyStorage[*key]; ok {
		*outValue = v
		return
	}
	s.GetCommittedState(addr, key, outValue)
}

func (s *IntraBlockState) SetState(addr types.Address, key *types.Hash, value uint256.Int) {
	obj := s.getOrNewStateObject(addr)
	prev, had := obj.dirtyStorage[*key]
	s.journal.append(storageChange{account: &addr, key: *key, prevalue: prev, hadValue: had})
	obj.dirtyStorage[*key] = value
}

// ========== Self-destruct Operations ==========

func (s *IntraBlockState) Selfdestruct(addr types.Address) bool {
	obj := s.getStateObject(addr)
	if obj == nil {
		return false
	}
	s.journal.append(selfDestructChange{
		account:     &addr,
		prev:        obj.selfdestructed,
		prevbalance: obj.data.Balance.Clone(),
	})
	obj.selfdestructed = true
	obj.data.Balance.Clear()
	return true
}

func (s *IntraBlockState) HasSelfdestructed(addr types.Address) bool {
	obj := s.getStateObject(addr)
	return obj != nil && obj.selfdestructed
}

// ========== Access List (EIP-2930) ==========

func (s *IntraBlockState) PrepareAccessList(sender types.Address, dest *types.Address, precompiles []types.Address, txAccesses transaction.AccessList) {
	s.AddAddressToAccessList(sender)
	if dest != nil {
		s.AddAddressToAccessList(*dest)
	}
	for _, addr := range precompiles {
		s.AddAddressToAccessList(addr)
	}
	for _, el := range txAccesses {
		s.AddAddressToAccessList(el.Address)
		for _, key := range el.StorageKeys {
			s.AddSlotToAccessList(el.Address, key)
		}
	}
}

func (s *IntraBlockState) AddressInAccessList(addr types.Address) bool {
	return s.accessList.ContainsAddress(addr)
}

func (s *IntraBlockState) SlotInAccessList(addr types.Address, slot types.Hash) (addressOk bool, slotOk bool) {
	return s.accessList.Contains(addr, slot)
}

func (s *IntraBlockState) AddAddressToAccessList(addr types.Address) {
	if s.accessList.AddAddress(addr) {
		s.journal.append(accessListAddAccountChange{address: &addr})
	}
}

func (s *IntraBlockState) AddSlotToAccessList(addr types.Address, slot types.Hash) {
	addrChange, slotChange := s.accessList.AddSlot(addr, slot)
	if addrChange {
		s.journal.append(accessListAddAccountChange{address: &addr})
	}
	if slotChange {
		s.journal.append(accessListAddSlotChange{address: &addr, slot: &slot})
	}
}

// ========== Snapshot/Revert ==========

func (s *IntraBlockState) Snapshot() int {
	id := s.nextRevisionID
	s.nextRevisionID++
	s.revisions = append(s.revisions, revision{id: id, journalSize: s.journal.length()})
	return id
}

func (s *IntraBlockState) RevertToSnapshot(revisionID int) {
	idx := len(s.revisions)
	for idx > 0 && s.revisions[idx-1].id > revisionID {
		idx--
	}
	if idx == 0 || s.revisions[idx-1].id != revisionID {
		panic("state: invalid revision id")
	}
	snapshot := s.revisions[idx-1].journalSize
	s.journal.revert(s, snapshot)
	s.revisions = s.revisions[:idx-1]
}

// ========== Logging ==========

func (s *IntraBlockState) AddLog(log *block.Log) {
	s.journal.append(addLogChange{})
	s.logs = append(s.logs, log)
}

// Logs returns every log recorded so far.
func (s *IntraBlockState) Logs() []*block.Log {
	return s.logs
}

// ========== Transient Storage (EIP-1153) ==========

func (s *IntraBlockState) GetTransientState(addr types.Address, key types.Hash) uint256.Int {
	return s.transientStorage.Get(addr, key)
}

func (s *IntraBlockState) SetTransientState(addr types.Address, key types.Hash, value uint256.Int) {
	prev := s.transientStorage.Get(addr, key)
	s.journal.append(transientStorageChange{account: addr, key: key, prevalue: prev})
	s.transientStorage.Set(addr, key, value)
}
