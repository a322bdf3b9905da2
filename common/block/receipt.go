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

import "github.com/n42blockchain/N42/common/types"

// Receipt status codes, as defined by EIP-658.
const (
	ReceiptStatusFailed    = uint64(0)
	ReceiptStatusSuccessful = uint64(1)
)

// Receipt represents the results of a transaction, as produced by the state
// transition after running it through the interpreter: status, gas used,
// the bloom filter over its logs, and the logs themselves.
type Receipt struct {
	Type              uint8
	PostState         []byte
	Status            uint64
	CumulativeGasUsed uint64
	Bloom             Bloom
	Logs              []*Log

	TxHash          types.Hash
	ContractAddress types.Address
	GasUsed         uint64

	// EIP-4844 blob fields, set only for blob transactions.
	BlobGasUsed  uint64
	BlobGasPrice uint64

	BlockHash   types.Hash
	BlockNumber uint64
	TransactionIndex uint
}

// NewReceipt creates a receipt for a failed or successful transaction,
// setting the consensus fields based on the EIP-658 status code.
func NewReceipt(failed bool, cumulativeGasUsed uint64) *Receipt {
	r := &Receipt{CumulativeGasUsed: cumulativeGasUsed}
	if failed {
		r.Status = ReceiptStatusFailed
	} else {
		r.Status = ReceiptStatusSuccessful
	}
	return r
}

// Receipts is a list of receipts, as consumed by CreateBloom.
type Receipts []*Receipt

// SetBloom computes and sets the bloom filter for the receipt's logs.
func (r *Receipt) SetBloom() {
	r.Bloom = CreateBloom(Receipts{r})
}
