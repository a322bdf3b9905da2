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

package block

import (
	"github.com/holiman/uint256"
	"github.com/n42blockchain/N42/common/types"
)

// Log represents a contract log event emitted by the LOG0-LOG4 opcodes.
// These events are generated by the LOG opcode and stored/indexed by the
// node.
type Log struct {
	// Consensus fields, produced by the EVM itself.
	Address types.Address
	Topics  []types.Hash
	Data    []byte

	// Derived fields, filled in once the transaction has been mined and is
	// part of a block.
	BlockNumber *uint256.Int
	TxHash      types.Hash
	TxIndex     uint
	BlockHash   types.Hash
	Index       uint

	// Removed is true if this log was reverted due to a chain reorganisation.
	// Always false when emitted synchronously during execution.
	Removed bool
}

// LogProto is the minimal wire representation used when logs are shipped to
// RPC/indexing consumers outside the interpreter itself.
type LogProto struct {
	Address     []byte
	Topics      [][]byte
	Data        []byte
	BlockNumber uint64
	TxHash      []byte
	TxIndex     uint32
	BlockHash   []byte
	Index       uint32
	Removed     bool
}

// ToProtoMessage converts the log to its wire representation.
func (l *Log) ToProtoMessage() *LogProto {
	topics := make([][]byte, len(l.Topics))
	for i, t := range l.Topics {
		topics[i] = t.Bytes()
	}
	var blockNumber uint64
	if l.BlockNumber != nil {
		blockNumber = l.BlockNumber.Uint64()
	}
	return &LogProto{
		Address:     l.Address.Bytes(),
		Topics:      topics,
		Data:        l.Data,
		BlockNumber: blockNumber,
		TxHash:      l.TxHash.Bytes(),
		TxIndex:     uint32(l.TxIndex),
		BlockHash:   l.BlockHash.Bytes(),
		Index:       uint32(l.Index),
		Removed:     l.Removed,
	}
}

// Logs is a slice of logs, typically all those emitted by one transaction.
type Logs []*Log
