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

// Package transaction defines the EVM-visible shape of a transaction: the
// per-type envelopes (legacy, EIP-2930 access-list, EIP-1559 dynamic-fee,
// EIP-4844 blob, EIP-7702 set-code) the interpreter's TxContext is built
// from. Transaction-pool admission and networking are out of scope here;
// besides the fields execution needs, the package holds only EIP-7702
// authorization signer recovery, the SetCodeTx RLP encoder and object
// pools for envelopes.
package transaction

import (
	"github.com/holiman/uint256"
	"github.com/n42blockchain/N42/common/hash"
	"github.com/n42blockchain/N42/common/types"
)

// Transaction type identifiers (EIP-2718).
const (
	LegacyTxType     = 0x00
	AccessListTxType = 0x01
	DynamicFeeTxType = 0x02
	// BlobTxType = 0x03 (blob_tx.go)
	// SetCodeTxType = 0x04 (setcode_tx.go)
)

// AccessTuple is the element of an EIP-2930 access list: an address and the
// storage slots within it that are pre-warmed for the transaction.
type AccessTuple struct {
	Address     types.Address `json:"address"`
	StorageKeys []types.Hash  `json:"storageKeys"`
}

// AccessList is an EIP-2930 access list.
type AccessList []AccessTuple

// StorageKeys returns the total number of storage keys in the access list.
func (al AccessList) StorageKeys() int {
	sum := 0
	for _, tuple := range al {
		sum += len(tuple.StorageKeys)
	}
	return sum
}

// TxData is the underlying data of a transaction, independent of its
// signature. Each transaction type (legacy, access-list, dynamic-fee, blob,
// set-code) implements this interface.
type TxData interface {
	txType() byte
	copy() TxData

	chainID() *uint256.Int
	accessList() AccessList
	data() []byte
	gas() uint64
	gasPrice() *uint256.Int
	gasTipCap() *uint256.Int
	gasFeeCap() *uint256.Int
	value() *uint256.Int
	nonce() uint64
	to() *types.Address
	from() *types.Address
	sign() []byte

	hash() types.Hash
	rawSignatureValues() (v, r, s *uint256.Int)
	setSignatureValues(chainID, v, r, s *uint256.Int)
}

// Transaction is the outer wrapper around a concrete TxData envelope.
// It holds no cache of its own; Hash delegates to the envelope.
type Transaction struct {
	inner TxData
}

// NewTx creates a new transaction from the given inner data.
func NewTx(inner TxData) *Transaction {
	return &Transaction{inner: inner}
}

// Type returns the transaction type byte (EIP-2718).
func (tx *Transaction) Type() byte { return tx.inner.txType() }

// Hash returns the transaction hash.
func (tx *Transaction) Hash() types.Hash { return tx.inner.hash() }

// ChainId returns the transaction's chain ID, or nil for legacy transactions
// that predate EIP-155 replay protection.
func (tx *Transaction) ChainId() *uint256.Int { return tx.inner.chainID() }

// Nonce returns the sender account nonce of the transaction.
func (tx *Transaction) Nonce() uint64 { return tx.inner.nonce() }

// Gas returns the gas limit of the transaction.
func (tx *Transaction) Gas() uint64 { return tx.inner.gas() }

// GasPrice returns the gas price of the transaction.
func (tx *Transaction) GasPrice() *uint256.Int { return tx.inner.gasPrice() }

// GasTipCap returns the gasTipCap per gas of the transaction.
func (tx *Transaction) GasTipCap() *uint256.Int { return tx.inner.gasTipCap() }

// GasFeeCap returns the fee cap per gas of the transaction.
func (tx *Transaction) GasFeeCap() *uint256.Int { return tx.inner.gasFeeCap() }

// Value returns the ether amount of the transaction.
func (tx *Transaction) Value() *uint256.Int { return tx.inner.value() }

// Data returns the input data of the transaction.
func (tx *Transaction) Data() []byte { return tx.inner.data() }

// AccessList returns the access list of the transaction.
func (tx *Transaction) AccessList() AccessList { return tx.inner.accessList() }

// To returns the recipient address of the transaction. Nil for contract
// creation transactions.
func (tx *Transaction) To() *types.Address { return tx.inner.to() }

// BlobHashes returns the versioned blob hashes of a blob transaction, or nil
// for any other transaction type.
func (tx *Transaction) BlobHashes() []types.Hash {
	if blobTx, ok := tx.inner.(*BlobTx); ok {
		return blobTx.BlobHashes
	}
	return nil
}

// BlobGasFeeCap returns the max fee per blob gas of a blob transaction, or
// nil for any other transaction type.
func (tx *Transaction) BlobGasFeeCap() *uint256.Int {
	if blobTx, ok := tx.inner.(*BlobTx); ok {
		return blobTx.BlobFeeCap
	}
	return nil
}

// RawSignatureValues returns the V, R, S signature values of the transaction.
func (tx *Transaction) RawSignatureValues() (v, r, s *uint256.Int) {
	return tx.inner.rawSignatureValues()
}

// copyAddressPtr copies an address, returning nil if the input is nil.
func copyAddressPtr(a *types.Address) *types.Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}

// =============================================================================
// LegacyTx
// =============================================================================

// LegacyTx is the pre-EIP-2718 transaction envelope.
type LegacyTx struct {
	Nonce    uint64
	GasPrice *uint256.Int
	Gas      uint64
	To       *types.Address
	Value    *uint256.Int
	Data     []byte

	V, R, S *uint256.Int

	chainIDCache *uint256.Int // derived from V for EIP-155 replay protection
	fromCache    *types.Address
}

func (tx *LegacyTx) txType() byte { return LegacyTxType }

func (tx *LegacyTx) copy() TxData {
	cpy := &LegacyTx{
		Nonce: tx.Nonce,
		Gas:   tx.Gas,
		Data:  append([]byte(nil), tx.Data...),
		To:    copyAddressPtr(tx.To),
	}
	if tx.GasPrice != nil {
		cpy.GasPrice = new(uint256.Int).Set(tx.GasPrice)
	}
	if tx.Value != nil {
		cpy.Value = new(uint256.Int).Set(tx.Value)
	}
	if tx.V != nil {
		cpy.V = new(uint256.Int).Set(tx.V)
	}
	if tx.R != nil {
		cpy.R = new(uint256.Int).Set(tx.R)
	}
	if tx.S != nil {
		cpy.S = new(uint256.Int).Set(tx.S)
	}
	return cpy
}

func (tx *LegacyTx) chainID() *uint256.Int   { return tx.chainIDCache }
func (tx *LegacyTx) accessList() AccessList  { return nil }
func (tx *LegacyTx) data() []byte            { return tx.Data }
func (tx *LegacyTx) gas() uint64             { return tx.Gas }
func (tx *LegacyTx) gasPrice() *uint256.Int  { return tx.GasPrice }
func (tx *LegacyTx) gasTipCap() *uint256.Int { return tx.GasPrice }
func (tx *LegacyTx) gasFeeCap() *uint256.Int { return tx.GasPrice }
func (tx *LegacyTx) value() *uint256.Int     { return tx.Value }
func (tx *LegacyTx) nonce() uint64           { return tx.Nonce }
func (tx *LegacyTx) to() *types.Address      { return tx.To }
func (tx *LegacyTx) from() *types.Address    { return tx.fromCache }
func (tx *LegacyTx) sign() []byte            { return nil }

func (tx *LegacyTx) rawSignatureValues() (v, r, s *uint256.Int) { return tx.V, tx.R, tx.S }

func (tx *LegacyTx) setSignatureValues(chainID, v, r, s *uint256.Int) {
	tx.chainIDCache, tx.V, tx.R, tx.S = chainID, v, r, s
}

func (tx *LegacyTx) hash() types.Hash {
	return hash.RlpHash([]interface{}{
		tx.Nonce, tx.GasPrice, tx.Gas, tx.To, tx.Value, tx.Data, tx.V, tx.R, tx.S,
	})
}

// =============================================================================
// AccessListTx (EIP-2930)
// =============================================================================

// AccessListTx is the EIP-2930 transaction envelope: a legacy transaction
// plus an access list.
type AccessListTx struct {
	ChainID    *uint256.Int
	Nonce      uint64
	GasPrice   *uint256.Int
	Gas        uint64
	To         *types.Address
	From       *types.Address
	Value      *uint256.Int
	Data       []byte
	AccessList AccessList

	V, R, S *uint256.Int
}

func (tx *AccessListTx) txType() byte { return AccessListTxType }

func (tx *AccessListTx) copy() TxData {
	cpy := &AccessListTx{
		Nonce:      tx.Nonce,
		Gas:        tx.Gas,
		To:         copyAddressPtr(tx.To),
		From:       copyAddressPtr(tx.From),
		Data:       append([]byte(nil), tx.Data...),
		AccessList: copyAccessList(tx.AccessList),
	}
	if tx.ChainID != nil {
		cpy.ChainID = new(uint256.Int).Set(tx.ChainID)
	}
	if tx.GasPrice != nil {
		cpy.GasPrice = new(uint256.Int).Set(tx.GasPrice)
	}
	if tx.Value != nil {
		cpy.Value = new(uint256.Int).Set(tx.Value)
	}
	if tx.V != nil {
		cpy.V = new(uint256.Int).Set(tx.V)
	}
	if tx.R != nil {
		cpy.R = new(uint256.Int).Set(tx.R)
	}
	if tx.S != nil {
		cpy.S = new(uint256.Int).Set(tx.S)
	}
	return cpy
}

func (tx *AccessListTx) chainID() *uint256.Int   { return tx.ChainID }
func (tx *AccessListTx) accessList() AccessList  { return tx.AccessList }
func (tx *AccessListTx) data() []byte            { return tx.Data }
func (tx *AccessListTx) gas() uint64             { return tx.Gas }
func (tx *AccessListTx) gasPrice() *uint256.Int  { return tx.GasPrice }
func (tx *AccessListTx) gasTipCap() *uint256.Int { return tx.GasPrice }
func (tx *AccessListTx) gasFeeCap() *uint256.Int { return tx.GasPrice }
func (tx *AccessListTx) value() *uint256.Int     { return tx.Value }
func (tx *AccessListTx) nonce() uint64           { return tx.Nonce }
func (tx *AccessListTx) to() *types.Address      { return tx.To }
func (tx *AccessListTx) from() *types.Address    { return tx.From }
func (tx *AccessListTx) sign() []byte            { return nil }

func (tx *AccessListTx) rawSignatureValues() (v, r, s *uint256.Int) { return tx.V, tx.R, tx.S }

func (tx *AccessListTx) setSignatureValues(chainID, v, r, s *uint256.Int) {
	tx.ChainID, tx.V, tx.R, tx.S = chainID, v, r, s
}

func (tx *AccessListTx) hash() types.Hash {
	return hash.PrefixedRlpHash(AccessListTxType, []interface{}{
		tx.ChainID, tx.Nonce, tx.GasPrice, tx.Gas, tx.To, tx.Value, tx.Data, tx.AccessList,
		tx.V, tx.R, tx.S,
	})
}

// =============================================================================
// DynamicFeeTx (EIP-1559)
// =============================================================================

// DynamicFeeTx is the EIP-1559 transaction envelope with a base-fee-aware
// tip/fee-cap pair.
type DynamicFeeTx struct {
	ChainID    *uint256.Int
	Nonce      uint64
	GasTipCap  *uint256.Int
	GasFeeCap  *uint256.Int
	Gas        uint64
	To         *types.Address
	From       *types.Address
	Value      *uint256.Int
	Data       []byte
	AccessList AccessList

	V, R, S *uint256.Int
}

func (tx *DynamicFeeTx) txType() byte { return DynamicFeeTxType }

func (tx *DynamicFeeTx) copy() TxData {
	cpy := &DynamicFeeTx{
		Nonce:      tx.Nonce,
		Gas:        tx.Gas,
		To:         copyAddressPtr(tx.To),
		From:       copyAddressPtr(tx.From),
		Data:       append([]byte(nil), tx.Data...),
		AccessList: copyAccessList(tx.AccessList),
	}
	if tx.ChainID != nil {
		cpy.ChainID = new(uint256.Int).Set(tx.ChainID)
	}
	if tx.GasTipCap != nil {
		cpy.GasTipCap = new(uint256.Int).Set(tx.GasTipCap)
	}
	if tx.GasFeeCap != nil {
		cpy.GasFeeCap = new(uint256.Int).Set(tx.GasFeeCap)
	}
	if tx.Value != nil {
		cpy.Value = new(uint256.Int).Set(tx.Value)
	}
	if tx.V != nil {
		cpy.V = new(uint256.Int).Set(tx.V)
	}
	if tx.R != nil {
		cpy.R = new(uint256.Int).Set(tx.R)
	}
	if tx.S != nil {
		cpy.S = new(uint256.Int).Set(tx.S)
	}
	return cpy
}

func (tx *DynamicFeeTx) chainID() *uint256.Int   { return tx.ChainID }
func (tx *DynamicFeeTx) accessList() AccessList  { return tx.AccessList }
func (tx *DynamicFeeTx) data() []byte            { return tx.Data }
func (tx *DynamicFeeTx) gas() uint64             { return tx.Gas }
func (tx *DynamicFeeTx) gasPrice() *uint256.Int  { return tx.GasFeeCap }
func (tx *DynamicFeeTx) gasTipCap() *uint256.Int { return tx.GasTipCap }
func (tx *DynamicFeeTx) gasFeeCap() *uint256.Int { return tx.GasFeeCap }
func (tx *DynamicFeeTx) value() *uint256.Int     { return tx.Value }
func (tx *DynamicFeeTx) nonce() uint64           { return tx.Nonce }
func (tx *DynamicFeeTx) to() *types.Address      { return tx.To }
func (tx *DynamicFeeTx) from() *types.Address    { return tx.From }
func (tx *DynamicFeeTx) sign() []byte            { return nil }

func (tx *DynamicFeeTx) rawSignatureValues() (v, r, s *uint256.Int) { return tx.V, tx.R, tx.S }

func (tx *DynamicFeeTx) setSignatureValues(chainID, v, r, s *uint256.Int) {
	tx.ChainID, tx.V, tx.R, tx.S = chainID, v, r, s
}

func (tx *DynamicFeeTx) hash() types.Hash {
	return hash.PrefixedRlpHash(DynamicFeeTxType, []interface{}{
		tx.ChainID, tx.Nonce, tx.GasTipCap, tx.GasFeeCap, tx.Gas, tx.To, tx.Value, tx.Data,
		tx.AccessList, tx.V, tx.R, tx.S,
	})
}
