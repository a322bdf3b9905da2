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

package params

// Protocol-level gas costs referenced by the interpreter's dynamic gas
// functions. Opcode base costs (GasQuickStep..GasExtStep) live alongside the
// jump tables in internal/vm, since they're purely an interpreter dispatch
// concern; these constants are the ones shared with intrinsic-gas
// computation and precompile pricing, so they belong to the chain
// configuration layer.
const (
	TxGas                 uint64 = 21000 // base gas for a non-contract-creation transaction
	TxGasContractCreation uint64 = 53000 // base gas for a contract-creation transaction
	TxDataZeroGas         uint64 = 4     // gas per zero byte of transaction data
	TxDataNonZeroGasFrontier uint64 = 68 // gas per non-zero byte, pre-Istanbul
	TxDataNonZeroGasEIP2028  uint64 = 16 // gas per non-zero byte, EIP-2028 (Istanbul)
	TxAccessListAddressGas   uint64 = 2400
	TxAccessListStorageKeyGas uint64 = 1900

	CallValueTransferGas uint64 = 9000  // paid when CALL transfers value
	CallNewAccountGas    uint64 = 25000 // paid when CALL creates a new account
	CallStipend          uint64 = 2300  // free gas given to the callee when value is transferred

	CreateGas      uint64 = 32000
	Create2Gas     uint64 = 32000
	CreateDataGas  uint64 = 200 // per byte of deployed code
	InitCodeWordGas uint64 = 2  // EIP-3860, per 32-byte word of init code
	MaxInitCodeSize        = 2 * MaxCodeSize
	MaxCodeSize             = 24576

	SstoreSetGas       uint64 = 20000
	SstoreResetGas     uint64 = 5000
	SstoreClearRefund  uint64 = 4800 // EIP-3529 (post-London)
	SstoreRefundGas    uint64 = 15000
	SstoreSentryGasEIP2200 uint64 = 2300

	SloadGasFrontier uint64 = 50
	SloadGasEIP150   uint64 = 200
	SloadGasEIP1884  uint64 = 800 // also used from Istanbul through pre-Berlin

	CallGasFrontier uint64 = 40
	CallGasEIP150   uint64 = 700

	ExtcodeSizeGasFrontier uint64 = 20
	ExtcodeSizeGasEIP150   uint64 = 700

	ExtcodeCopyBaseFrontier uint64 = 20
	ExtcodeCopyBaseEIP150   uint64 = 700

	ExtcodeHashGasConstantinople uint64 = 400

	BalanceGasFrontier uint64 = 20
	BalanceGasEIP150   uint64 = 400
	BalanceGasEIP1884  uint64 = 700

	JumpdestGas uint64 = 1
	LogGas      uint64 = 375
	LogDataGas  uint64 = 8
	LogTopicGas uint64 = 375

	Sha3Gas     uint64 = 30
	Sha3WordGas uint64 = 6

	CopyGas       uint64 = 3
	MemoryGas     uint64 = 3
	QuadCoeffDiv  uint64 = 512

	ExpGasFrontier uint64 = 10
	ExpByteFrontier uint64 = 10
	ExpByteEIP158   uint64 = 50

	SelfdestructRefundGas uint64 = 24000
	SelfdestructGasEIP150 uint64 = 5000
	CreateBySelfdestructGas uint64 = 25000

	ColdAccountAccessCostEIP2929 uint64 = 2600
	ColdSloadCostEIP2929         uint64 = 2100
	WarmStorageReadCostEIP2929   uint64 = 100

	RefundQuotient        uint64 = 2 // pre-London: max refund = gasUsed/2
	RefundQuotientEIP3529 uint64 = 5 // post-London: max refund = gasUsed/5

	// BlobTxPointEvaluationPrecompileGas is the fixed cost of the EIP-4844
	// point-evaluation precompile at address 0x0a.
	BlobTxPointEvaluationPrecompileGas uint64 = 50000

	// Precompiled contract gas costs (addresses 0x01-0x09).
	EcrecoverGas            uint64 = 3000
	Sha256BaseGas           uint64 = 60
	Sha256PerWordGas        uint64 = 12
	Ripemd160BaseGas        uint64 = 600
	Ripemd160PerWordGas     uint64 = 120
	IdentityBaseGas         uint64 = 15
	IdentityPerWordGas      uint64 = 3
	ModExpQuadCoeffDiv      uint64 = 20   // EIP-198, pre-Berlin
	ModExpQuadCoeffDivEIP2565 uint64 = 3  // EIP-2565
	Bn256AddGasByzantium          uint64 = 500
	Bn256AddGasIstanbul           uint64 = 150
	Bn256ScalarMulGasByzantium    uint64 = 40000
	Bn256ScalarMulGasIstanbul     uint64 = 6000
	Bn256PairingBaseGasByzantium  uint64 = 100000
	Bn256PairingPerPointGasByzantium uint64 = 80000
	Bn256PairingBaseGasIstanbul      uint64 = 45000
	Bn256PairingPerPointGasIstanbul  uint64 = 34000
	Blake2FPerRoundGas uint64 = 1
)
