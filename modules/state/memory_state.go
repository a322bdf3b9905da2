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

//nolint:scopelint
package state

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/n42blockchain/N42/common/account"
	"github.com/n42blockchain/N42/common/types"
)

// storageKey identifies one storage slot of one account incarnation.
type storageKey struct {
	address     types.Address
	incarnation uint16
	slot        types.Hash
}

// memoryState is the map-backed store shared by PlainStateReader and
// PlainStateWriter. The real persistent backend (a Merkle-trie database) is
// out of scope: this is only the in-memory double the interpreter's own
// unit tests and cmd/evmrun run against.
type memoryState struct {
	mu sync.RWMutex

	accounts map[types.Address]*account.StateAccount
	code     map[types.Hash][]byte
	storage  map[storageKey]*uint256.Int
}

func newMemoryState() *memoryState {
	return &memoryState{
		accounts: make(map[types.Address]*account.StateAccount),
		code:     make(map[types.Hash][]byte),
		storage:  make(map[storageKey]*uint256.Int),
	}
}

// PlainStateReader reads un-hashed "plain state" (the latest committed
// state, as opposed to a historical view) from an in-memory store.
type PlainStateReader struct {
	db *memoryState
}

// NewPlainStateReader returns a PlainStateReader backed by a fresh, empty
// in-memory store of its own. PlainStateWriter.Reader returns a reader that
// shares a writer's store instead.
func NewPlainStateReader() *PlainStateReader {
	return &PlainStateReader{db: newMemoryState()}
}

func (r *PlainStateReader) ReadAccountData(address types.Address) (*account.StateAccount, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	a, ok := r.db.accounts[address]
	if !ok {
		return nil, nil
	}
	return a.Copy(), nil
}

func (r *PlainStateReader) ReadAccountStorage(address types.Address, incarnation uint16, key *types.Hash) ([]byte, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	v, ok := r.db.storage[storageKey{address, incarnation, *key}]
	if !ok || v.IsZero() {
		return nil, nil
	}
	return v.Bytes(), nil
}

func (r *PlainStateReader) ReadAccountCode(address types.Address, incarnation uint16, codeHash types.Hash) ([]byte, error) {
	if codeHash == types.EmptyCodeHash || codeHash == (types.Hash{}) {
		return nil, nil
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.code[codeHash], nil
}

func (r *PlainStateReader) ReadAccountCodeSize(address types.Address, incarnation uint16, codeHash types.Hash) (int, error) {
	code, err := r.ReadAccountCode(address, incarnation, codeHash)
	if err != nil {
		return 0, err
	}
	return len(code), nil
}

func (r *PlainStateReader) ReadAccountIncarnation(address types.Address) (uint16, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	a, ok := r.db.accounts[address]
	if !ok {
		return NonContractIncarnation, nil
	}
	return a.Incarnation, nil
}

// PlainStateWriter writes to the same plain-state store a PlainStateReader
// reads from, tracking the change sets (touched addresses and storage
// slots) accumulated since the last WriteChangeSets call.
type PlainStateWriter struct {
	db *memoryState

	changedAccounts map[types.Address]struct{}
	changedStorage  map[storageKey]struct{}
}

// NewPlainStateWriter returns a PlainStateWriter over a fresh in-memory
// store. Use Reader to obtain a PlainStateReader sharing the same store.
func NewPlainStateWriter() *PlainStateWriter {
	return &PlainStateWriter{
		db:              newMemoryState(),
		changedAccounts: make(map[types.Address]struct{}),
		changedStorage:  make(map[storageKey]struct{}),
	}
}

// Reader returns a PlainStateReader over this writer's backing store, so
// reads observe every write made so far.
func (w *PlainStateWriter) Reader() *PlainStateReader {
	return &PlainStateReader{db: w.db}
}

func (w *PlainStateWriter) UpdateAccountData(address types.Address, original, acct *account.StateAccount) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	w.db.accounts[address] = acct.Copy()
	w.changedAccounts[address] = struct{}{}
	return nil
}

func (w *PlainStateWriter) UpdateAccountCode(address types.Address, incarnation uint16, codeHash types.Hash, code []byte) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	w.db.code[codeHash] = code
	return nil
}

func (w *PlainStateWriter) DeleteAccount(address types.Address, original *account.StateAccount) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	delete(w.db.accounts, address)
	w.changedAccounts[address] = struct{}{}
	return nil
}

func (w *PlainStateWriter) WriteAccountStorage(address types.Address, incarnation uint16, key *types.Hash, original, value *uint256.Int) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	k := storageKey{address, incarnation, *key}
	if value == nil || value.IsZero() {
		delete(w.db.storage, k)
	} else {
		w.db.storage[k] = value.Clone()
	}
	w.changedStorage[k] = struct{}{}
	return nil
}

func (w *PlainStateWriter) CreateContract(address types.Address) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	w.changedAccounts[address] = struct{}{}
	return nil
}

// WriteChangeSets clears the accumulated change sets. The in-memory double
// has nowhere to persist them to; this only resets the bookkeeping so
// repeated calls don't grow unboundedly across many transactions.
func (w *PlainStateWriter) WriteChangeSets() error {
	w.changedAccounts = make(map[types.Address]struct{})
	w.changedStorage = make(map[storageKey]struct{})
	return nil
}

// WriteHistory is a no-op: the in-memory double keeps only the latest
// state, not a historical series. HistoryStateReader reads through to the
// same latest-state store.
func (w *PlainStateWriter) WriteHistory() error {
	return nil
}

// HistoryStateReader reads state as of a specific historical block number.
// The in-memory double does not retain history, so every block number
// resolves to the current state of the shared store; a real backend would
// instead replay or look up change sets to reconstruct the state as it
// stood at blockNumber.
type HistoryStateReader struct {
	db          *memoryState
	blockNumber uint64
}

// NewHistoryStateReader returns a HistoryStateReader over reader's backing
// store, fixed to the given historical block number.
func NewHistoryStateReader(reader *PlainStateReader, blockNumber uint64) *HistoryStateReader {
	return &HistoryStateReader{db: reader.db, blockNumber: blockNumber}
}

func (r *HistoryStateReader) ReadAccountData(address types.Address) (*account.StateAccount, error) {
	return (&PlainStateReader{db: r.db}).ReadAccountData(address)
}

func (r *HistoryStateReader) ReadAccountStorage(address types.Address, incarnation uint16, key *types.Hash) ([]byte, error) {
	return (&PlainStateReader{db: r.db}).ReadAccountStorage(address, incarnation, key)
}

func (r *HistoryStateReader) ReadAccountCode(address types.Address, incarnation uint16, codeHash types.Hash) ([]byte, error) {
	return (&PlainStateReader{db: r.db}).ReadAccountCode(address, incarnation, codeHash)
}

func (r *HistoryStateReader) ReadAccountCodeSize(address types.Address, incarnation uint16, codeHash types.Hash) (int, error) {
	return (&PlainStateReader{db: r.db}).ReadAccountCodeSize(address, incarnation, codeHash)
}

func (r *HistoryStateReader) ReadAccountIncarnation(address types.Address) (uint16, error) {
	return (&PlainStateReader{db: r.db}).ReadAccountIncarnation(address)
}
