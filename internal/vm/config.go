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

package vm

import "github.com/n42blockchain/N42/params"

// newFrontierInstructionSet returns the original 1.0 instruction set.
func newFrontierInstructionSet() JumpTable {
	tbl := JumpTable{
		STOP:       {execute: opStop, constantGas: 0, numPop: 0, numPush: 0},
		ADD:        {execute: opAdd, constantGas: GasFastestStep, numPop: 2, numPush: 1},
		MUL:        {execute: opMul, constantGas: GasFastStep, numPop: 2, numPush: 1},
		SUB:        {execute: opSub, constantGas: GasFastestStep, numPop: 2, numPush: 1},
		DIV:        {execute: opDiv, constantGas: GasFastStep, numPop: 2, numPush: 1},
		SDIV:       {execute: opSdiv, constantGas: GasFastStep, numPop: 2, numPush: 1},
		MOD:        {execute: opMod, constantGas: GasFastStep, numPop: 2, numPush: 1},
		SMOD:       {execute: opSmod, constantGas: GasFastStep, numPop: 2, numPush: 1},
		ADDMOD:     {execute: opAddmod, constantGas: GasMidStep, numPop: 3, numPush: 1},
		MULMOD:     {execute: opMulmod, constantGas: GasMidStep, numPop: 3, numPush: 1},
		EXP:        {execute: opExp, constantGas: GasSlowStep, dynamicGas: gasExpFrontier, numPop: 2, numPush: 1},
		SIGNEXTEND: {execute: opSignExtend, constantGas: GasFastStep, numPop: 2, numPush: 1},

		LT:     {execute: opLt, constantGas: GasFastestStep, numPop: 2, numPush: 1},
		GT:     {execute: opGt, constantGas: GasFastestStep, numPop: 2, numPush: 1},
		SLT:    {execute: opSlt, constantGas: GasFastestStep, numPop: 2, numPush: 1},
		SGT:    {execute: opSgt, constantGas: GasFastestStep, numPop: 2, numPush: 1},
		EQ:     {execute: opEq, constantGas: GasFastestStep, numPop: 2, numPush: 1},
		ISZERO: {execute: opIszero, constantGas: GasFastestStep, numPop: 1, numPush: 1},
		AND:    {execute: opAnd, constantGas: GasFastestStep, numPop: 2, numPush: 1},
		OR:     {execute: opOr, constantGas: GasFastestStep, numPop: 2, numPush: 1},
		XOR:    {execute: opXor, constantGas: GasFastestStep, numPop: 2, numPush: 1},
		NOT:    {execute: opNot, constantGas: GasFastestStep, numPop: 1, numPush: 1},
		BYTE:   {execute: opByte, constantGas: GasFastestStep, numPop: 2, numPush: 1},

		KECCAK256: {execute: opSha3, constantGas: params.Sha3Gas, dynamicGas: gasSha3, numPop: 2, numPush: 1, memorySize: memorySha3},

		ADDRESS:        {execute: opAddress, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		BALANCE:        {execute: opBalance, constantGas: GasExtStep, numPop: 1, numPush: 1},
		ORIGIN:         {execute: opOrigin, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		CALLER:         {execute: opCaller, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		CALLVALUE:      {execute: opCallValue, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		CALLDATALOAD:   {execute: opCallDataLoad, constantGas: GasFastestStep, numPop: 1, numPush: 1},
		CALLDATASIZE:   {execute: opCallDataSize, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		CALLDATACOPY:   {execute: opCallDataCopy, constantGas: GasFastestStep, dynamicGas: memoryCopierGas(2), numPop: 3, numPush: 0, memorySize: memoryCallDataCopy},
		CODESIZE:       {execute: opCodeSize, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		CODECOPY:       {execute: opCodeCopy, constantGas: GasFastestStep, dynamicGas: memoryCopierGas(2), numPop: 3, numPush: 0, memorySize: memoryCodeCopy},
		GASPRICE:       {execute: opGasprice, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		EXTCODESIZE:    {execute: opExtCodeSize, constantGas: params.ExtcodeSizeGasFrontier, numPop: 1, numPush: 1},
		EXTCODECOPY:    {execute: opExtCodeCopy, constantGas: params.ExtcodeCopyBaseFrontier, dynamicGas: memoryCopierGas(3), numPop: 4, numPush: 0, memorySize: memoryExtCodeCopy},
		RETURNDATASIZE: nil,
		RETURNDATACOPY: nil,
		EXTCODEHASH:    nil,

		BLOCKHASH:  {execute: opBlockhash, constantGas: GasExtStep, numPop: 1, numPush: 1},
		COINBASE:   {execute: opCoinbase, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		TIMESTAMP:  {execute: opTimestamp, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		NUMBER:     {execute: opNumber, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		DIFFICULTY: {execute: opDifficulty, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		GASLIMIT:   {execute: opGasLimit, constantGas: GasQuickStep, numPop: 0, numPush: 1},

		POP:      {execute: opPop, constantGas: GasQuickStep, numPop: 1, numPush: 0},
		MLOAD:    {execute: opMload, constantGas: GasFastestStep, dynamicGas: gasMLoad, numPop: 1, numPush: 1, memorySize: memoryMLoad},
		MSTORE:   {execute: opMstore, constantGas: GasFastestStep, dynamicGas: gasMStore, numPop: 2, numPush: 0, memorySize: memoryMStore},
		MSTORE8:  {execute: opMstore8, constantGas: GasFastestStep, dynamicGas: gasMStore8, numPop: 2, numPush: 0, memorySize: memoryMStore8},
		SLOAD:    {execute: opSload, constantGas: params.SloadGasFrontier, numPop: 1, numPush: 1},
		SSTORE:   {execute: opSstore, dynamicGas: gasSStore, numPop: 2, numPush: 0},
		JUMP:     {execute: opJump, constantGas: GasMidStep, numPop: 1, numPush: 0},
		JUMPI:    {execute: opJumpi, constantGas: GasSlowStep, numPop: 2, numPush: 0},
		PC:       {execute: opPc, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		MSIZE:    {execute: opMsize, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		GAS:      {execute: opGas, constantGas: GasQuickStep, numPop: 0, numPush: 1},
		JUMPDEST: {execute: opJumpdest, constantGas: params.JumpdestGas, numPop: 0, numPush: 0},

		CREATE:       {execute: opCreate, constantGas: params.CreateGas, dynamicGas: gasCreate, numPop: 3, numPush: 1, memorySize: memoryCreate},
		CALL:         {execute: opCall, constantGas: params.CallGasFrontier, dynamicGas: gasCall, numPop: 7, numPush: 1, memorySize: memoryCall},
		CALLCODE:     {execute: opCallCode, constantGas: params.CallGasFrontier, dynamicGas: gasCallCode, numPop: 7, numPush: 1, memorySize: memoryCall},
		RETURN:       {execute: opReturn, numPop: 2, numPush: 0, memorySize: memoryReturn},
		INVALID:      {execute: opInvalid, numPop: 0, numPush: 0},
		SELFDESTRUCT: {execute: opSelfdestruct, dynamicGas: gasSelfdestruct, numPop: 1, numPush: 0},
	}

	for i := 1; i <= 32; i++ {
		tbl[int(PUSH1)+i-1] = &operation{execute: makePush(uint64(i)), constantGas: GasFastestStep, numPop: 0, numPush: 1}
	}
	for i := 1; i <= 16; i++ {
		tbl[int(DUP1)+i-1] = &operation{execute: makeDup(i), constantGas: GasFastestStep, numPop: i, numPush: i + 1}
		tbl[int(SWAP1)+i-1] = &operation{execute: makeSwap(i), constantGas: GasFastestStep, numPop: i + 1, numPush: i + 1}
	}
	for i := 0; i <= 4; i++ {
		tbl[int(LOG0)+i] = &operation{execute: makeLog(i), dynamicGas: makeGasLog(uint64(i)), numPop: uint64(i) + 2, numPush: 0, memorySize: memoryLog}
	}

	validateAndFillMaxStack(&tbl)
	return tbl
}

// newHomesteadInstructionSet adds DELEGATECALL (EIP-7).
func newHomesteadInstructionSet() JumpTable {
	tbl := newFrontierInstructionSet()
	tbl[DELEGATECALL] = &operation{execute: opDelegateCall, constantGas: params.CallGasFrontier, dynamicGas: gasDelegateCall, numPop: 6, numPush: 1, memorySize: memoryDelegateCall}
	validateAndFillMaxStack(&tbl)
	return tbl
}

// newTangerineWhistleInstructionSet applies EIP-150 (repricing of IO-heavy
// opcodes ahead of the DoS attacks addressed by that hardfork).
func newTangerineWhistleInstructionSet() JumpTable {
	tbl := newHomesteadInstructionSet()
	tbl[BALANCE].constantGas = params.BalanceGasEIP150
	tbl[EXTCODESIZE].constantGas = params.ExtcodeSizeGasEIP150
	tbl[EXTCODECOPY].constantGas = params.ExtcodeCopyBaseEIP150
	tbl[SLOAD].constantGas = params.SloadGasEIP150
	tbl[CALL].constantGas = params.CallGasEIP150
	tbl[CALLCODE].constantGas = params.CallGasEIP150
	tbl[DELEGATECALL].constantGas = params.CallGasEIP150
	tbl[SELFDESTRUCT].constantGas = params.SelfdestructGasEIP150
	validateAndFillMaxStack(&tbl)
	return tbl
}

// newSpuriousDragonInstructionSet applies EIP-160 (EXP repricing) and
// EIP-170 (contract code size limit, enforced in CREATE, not the table).
func newSpuriousDragonInstructionSet() JumpTable {
	tbl := newTangerineWhistleInstructionSet()
	tbl[EXP].dynamicGas = gasExpEIP158
	validateAndFillMaxStack(&tbl)
	return tbl
}

// newByzantiumInstructionSet adds REVERT, RETURNDATASIZE, RETURNDATACOPY,
// and STATICCALL.
func newByzantiumInstructionSet() JumpTable {
	tbl := newSpuriousDragonInstructionSet()
	tbl[REVERT] = &operation{execute: opRevert, numPop: 2, numPush: 0, memorySize: memoryRevert}
	tbl[RETURNDATASIZE] = &operation{execute: opReturnDataSize, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	tbl[RETURNDATACOPY] = &operation{execute: opReturnDataCopy, constantGas: GasFastestStep, dynamicGas: memoryCopierGas(2), numPop: 3, numPush: 0, memorySize: memoryReturnDataCopy}
	tbl[STATICCALL] = &operation{execute: opStaticCall, constantGas: params.CallGasEIP150, dynamicGas: gasStaticCall, numPop: 6, numPush: 1, memorySize: memoryStaticCall}
	validateAndFillMaxStack(&tbl)
	return tbl
}

// newConstantinopleInstructionSet adds SHL, SHR, SAR (EIP-145), EXTCODEHASH
// (EIP-1052), and CREATE2 (EIP-1014).
func newConstantinopleInstructionSet() JumpTable {
	tbl := newByzantiumInstructionSet()
	tbl[SHL] = &operation{execute: opShl, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	tbl[SHR] = &operation{execute: opShr, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	tbl[SAR] = &operation{execute: opSar, constantGas: GasFastestStep, numPop: 2, numPush: 1}
	tbl[EXTCODEHASH] = &operation{execute: opExtCodeHash, constantGas: params.ExtcodeHashGasConstantinople, numPop: 1, numPush: 1}
	tbl[CREATE2] = &operation{execute: opCreate2, constantGas: params.Create2Gas, dynamicGas: gasCreate2, numPop: 4, numPush: 1, memorySize: memoryCreate2}
	validateAndFillMaxStack(&tbl)
	return tbl
}

// newPetersburgInstructionSet reverts EIP-1283 (net-metered SSTORE) which
// constantinopleFix (Petersburg) disabled again after a reentrancy concern;
// gas accounting here is otherwise identical to Constantinople.
func newPetersburgInstructionSet() JumpTable {
	tbl := newConstantinopleInstructionSet()
	validateAndFillMaxStack(&tbl)
	return tbl
}

// newIstanbulInstructionSet applies EIP-1884 (repricing of SLOAD,
// BALANCE, EXTCODEHASH) and EIP-2200 (SSTORE net-metering with sentry gas),
// and adds CHAINID and SELFBALANCE (EIP-1344 / EIP-1884).
func newIstanbulInstructionSet() JumpTable {
	tbl := newPetersburgInstructionSet()
	tbl[CHAINID] = &operation{execute: opChainID, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	tbl[SELFBALANCE] = &operation{execute: opSelfBalance, constantGas: GasFastStep, numPop: 0, numPush: 1}
	tbl[BALANCE].constantGas = params.SloadGasEIP1884
	tbl[EXTCODEHASH].constantGas = params.SloadGasEIP1884
	tbl[SLOAD].constantGas = params.SloadGasEIP1884
	tbl[SSTORE] = &operation{execute: opSstore, dynamicGas: gasSStore, numPop: 2, numPush: 0}
	validateAndFillMaxStack(&tbl)
	return tbl
}

// newBerlinInstructionSet applies EIP-2929 (cold/warm account and storage
// access costs), folded into the dynamicGas of every opcode that touches
// external state.
func newBerlinInstructionSet() JumpTable {
	tbl := newIstanbulInstructionSet()
	tbl[SLOAD] = &operation{execute: opSload, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasSLoad, numPop: 1, numPush: 1}
	tbl[EXTCODESIZE] = &operation{execute: opExtCodeSize, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasExtCodeSize, numPop: 1, numPush: 1}
	tbl[EXTCODECOPY] = &operation{execute: opExtCodeCopy, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasExtCodeCopy, numPop: 4, numPush: 0, memorySize: memoryExtCodeCopy}
	tbl[EXTCODEHASH] = &operation{execute: opExtCodeHash, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasExtCodeHash, numPop: 1, numPush: 1}
	tbl[BALANCE] = &operation{execute: opBalance, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasBalance, numPop: 1, numPush: 1}
	tbl[CALL] = &operation{execute: opCall, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasCall, numPop: 7, numPush: 1, memorySize: memoryCall}
	tbl[CALLCODE] = &operation{execute: opCallCode, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasCallCode, numPop: 7, numPush: 1, memorySize: memoryCall}
	tbl[DELEGATECALL] = &operation{execute: opDelegateCall, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasDelegateCall, numPop: 6, numPush: 1, memorySize: memoryDelegateCall}
	tbl[STATICCALL] = &operation{execute: opStaticCall, constantGas: params.WarmStorageReadCostEIP2929, dynamicGas: gasStaticCall, numPop: 6, numPush: 1, memorySize: memoryStaticCall}
	validateAndFillMaxStack(&tbl)
	return tbl
}

// newLondonInstructionSet applies EIP-3529 (reduced refunds, dropped
// SELFDESTRUCT refund) and adds BASEFEE (EIP-3198).
func newLondonInstructionSet() JumpTable {
	tbl := newBerlinInstructionSet()
	tbl[BASEFEE] = &operation{execute: opBaseFee, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	validateAndFillMaxStack(&tbl)
	return tbl
}

// newShanghaiInstructionSet adds PUSH0 (EIP-3855) and enables EIP-3860
// (bounded & metered init code) in CREATE/CREATE2 gas accounting.
func newShanghaiInstructionSet() JumpTable {
	tbl := newLondonInstructionSet()
	tbl[PUSH0] = &operation{execute: opPush0, constantGas: GasQuickStep, numPop: 0, numPush: 1}
	validateAndFillMaxStack(&tbl)
	return tbl
}

// newCancunInstructionSet adds transient storage (EIP-1153), MCOPY
// (EIP-5656), blob opcodes (EIP-4844/EIP-7516), and same-transaction-only
// SELFDESTRUCT semantics (EIP-6780), each wired through its activator so
// the per-EIP enable function stays the single source of truth.
func newCancunInstructionSet() JumpTable {
	tbl := newShanghaiInstructionSet()
	enable1153(&tbl)
	enable5656(&tbl)
	enable4844(&tbl)
	enable7516(&tbl)
	enable6780(&tbl)
	validateAndFillMaxStack(&tbl)
	return tbl
}
