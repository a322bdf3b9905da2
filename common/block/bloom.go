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

// Package block holds the receipt-side data the EVM core emits during
// execution: logs, the per-receipt bloom filter, and the block nonce type
// used by proof-of-work headers. Header/body/transaction-envelope assembly
// is out of scope; only the pieces the interpreter itself produces live
// here.
package block

import (
	"encoding/hex"
	"math/big"

	"github.com/n42blockchain/N42/common/hash"
	"github.com/n42blockchain/N42/common/types"
)

// BloomByteLength is the number of bytes used in a header log bloom.
const BloomByteLength = 256

// BloomBitLength is the number of bits used in a header log bloom.
const BloomBitLength = 8 * BloomByteLength

// Bloom represents a 2048 bit bloom filter.
type Bloom [BloomByteLength]byte

// BytesToBloom converts a byte slice to a bloom filter.
// It panics if b is not of suitable size.
func BytesToBloom(b []byte) Bloom {
	var bloom Bloom
	bloom.SetBytes(b)
	return bloom
}

// SetBytes sets the content of b to the given bytes.
// It panics if d is not of suitable size.
func (b *Bloom) SetBytes(d []byte) {
	if len(b) < len(d) {
		panic("bloom bytes too big")
	}
	copy(b[BloomByteLength-len(d):], d)
}

// Add adds d to the filter. Future calls of Test(d) will return true.
func (b *Bloom) Add(d []byte) {
	b.add(d, make([]byte, 6))
}

// add is the internal version of Add, which takes a scratch buffer for
// reuse (needed for performance).
func (b *Bloom) add(d []byte, buf []byte) {
	i1, v1, i2, v2, i3, v3 := bloomValues(d, buf)
	b[i1] |= v1
	b[i2] |= v2
	b[i3] |= v3
}

// Big converts b to a big integer.
func (b Bloom) Big() *big.Int {
	return new(big.Int).SetBytes(b[:])
}

// Bytes returns the backing byte slice of the bloom.
func (b Bloom) Bytes() []byte {
	return b[:]
}

// Test checks if the given topic is present in the bloom filter.
func (b Bloom) Test(topic []byte) bool {
	i1, v1, i2, v2, i3, v3 := bloomValues(topic, make([]byte, 6))
	return v1 == v1&b[i1] && v2 == v2&b[i2] && v3 == v3&b[i3]
}

// MarshalText encodes b as a hex string with 0x prefix.
func (b Bloom) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(b[:])), nil
}

// bloomValues returns the bytes (index-value pairs) to set for the given
// data, and the three indices into the bloom filter that correspond to
// those bytes.
func bloomValues(data []byte, hashbuf []byte) (uint, byte, uint, byte, uint, byte) {
	sum := hash.Keccak256(data)
	copy(hashbuf, sum)
	v1 := byte(1 << (hashbuf[1] & 0x7))
	v2 := byte(1 << (hashbuf[3] & 0x7))
	v3 := byte(1 << (hashbuf[5] & 0x7))
	i1 := BloomBitLength - uint((binaryBigEndianUint16(hashbuf[0:2]))&0x7ff) - 1
	i2 := BloomBitLength - uint((binaryBigEndianUint16(hashbuf[2:4]))&0x7ff) - 1
	i3 := BloomBitLength - uint((binaryBigEndianUint16(hashbuf[4:6]))&0x7ff) - 1
	return i1 / 8, v1, i2 / 8, v2, i3 / 8, v3
}

func binaryBigEndianUint16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

// CreateBloom creates a bloom filter out of the give Receipts (+Logs).
func CreateBloom(receipts Receipts) Bloom {
	buf := make([]byte, 6)
	var bin Bloom
	for _, receipt := range receipts {
		for _, log := range receipt.Logs {
			bin.add(log.Address.Bytes(), buf)
			for _, b := range log.Topics {
				bin.add(b.Bytes(), buf)
			}
		}
	}
	return bin
}

// LogsBloom returns the bloom filter bytes for a set of logs, without
// requiring them to be wrapped in Receipts.
func LogsBloom(logs []*Log) []byte {
	buf := make([]byte, 6)
	var bin Bloom
	for _, log := range logs {
		bin.add(log.Address.Bytes(), buf)
		for _, b := range log.Topics {
			bin.add(b.Bytes(), buf)
		}
	}
	return bin.Bytes()
}

// Bloom9 returns the bloom filter for the given data.
func Bloom9(data []byte) []byte {
	var b Bloom
	b.Add(data)
	return b.Bytes()
}

// BloomLookup is a convenience helper used to check presence of a topic.
func BloomLookup(bin Bloom, topic types.Hash) bool {
	return bin.Test(topic.Bytes())
}
