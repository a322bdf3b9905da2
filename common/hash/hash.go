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

// Package hash provides the Keccak256 primitive and the RLP-hashing helpers
// used to derive transaction and authorization signing hashes.
package hash

import (
	"sync"

	"github.com/n42blockchain/N42/common/rlp"
	"github.com/n42blockchain/N42/common/types"
	"golang.org/x/crypto/sha3"
)

var hasherPool = sync.Pool{
	New: func() interface{} { return sha3.NewLegacyKeccak256() },
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	h := hasherPool.Get().(KeccakState)
	defer hasherPool.Put(h)
	h.Reset()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h types.Hash) {
	d := hasherPool.Get().(KeccakState)
	defer hasherPool.Put(d)
	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// KeccakState wraps sha3.state with Read in order to get a variable-length
// hash, without using the underlying hash.Hash interface.
type KeccakState interface {
	Write(p []byte) (n int, err error)
	Read(p []byte) (n int, err error)
	Sum(b []byte) []byte
	Reset()
}

// Hash is a convenience alias for Keccak256Hash, used where call sites read
// more naturally as "hash.Hash(data)" than "hash.Keccak256Hash(data)".
func Hash(data ...[]byte) types.Hash { return Keccak256Hash(data...) }

// RlpHash encodes val via RLP and returns the Keccak256 hash of the result.
func RlpHash(val interface{}) (h types.Hash) {
	b, err := rlp.EncodeToBytes(val)
	if err != nil {
		return types.Hash{}
	}
	return Keccak256Hash(b)
}

// PrefixedRlpHash writes the prefix into the hash before the RLP encoding of
// val. This matches the typed-transaction and EIP-7702 authorization
// signing-hash scheme: keccak256(type || rlp(fields)).
func PrefixedRlpHash(prefix byte, val interface{}) (h types.Hash) {
	b, err := rlp.EncodeToBytes(val)
	if err != nil {
		return types.Hash{}
	}
	return Keccak256Hash([]byte{prefix}, b)
}
