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

import (
	"math/big"
	"sync/atomic"

	"github.com/holiman/uint256"

	"github.com/n42blockchain/N42/common/crypto"
	"github.com/n42blockchain/N42/common/rlp"
	"github.com/n42blockchain/N42/common/types"
	"github.com/n42blockchain/N42/internal/vm/evmtypes"
	"github.com/n42blockchain/N42/params"
)

// maxCallDepth is the deepest a chain of CALL/CALLCODE/DELEGATECALL/
// STATICCALL/CREATE/CREATE2 may nest, per the Yellow Paper.
const maxCallDepth = 1024

// EVM is the concrete execution engine: it owns the block/transaction
// context, the journaled state, and the analysis-based interpreter
// (interpreter.go), and implements every call/create opcode's state
// transition (account creation, value transfer, snapshot/revert,
// contract-address derivation) that the interpreter itself delegates to
// it rather than performing directly.
type EVM struct {
	context evmtypes.BlockContext
	txCtx   evmtypes.TxContext
	state   evmtypes.IntraBlockState

	chainConfig *params.ChainConfig
	chainRules  params.Rules
	vmConfig    Config

	interpreter *EVMInterpreter

	callGasTemp uint64

	// createdThisTx tracks contract addresses created earlier in the
	// current transaction, consulted by opSelfdestruct under EIP-6780:
	// SELFDESTRUCT only deletes the account (instead of merely paying out
	// its balance) when the account was created in the same transaction.
	createdThisTx map[types.Address]struct{}

	abort int32 // atomic: set by Cancel
}

// NewEVM returns an EVM ready to execute transactions in blockCtx against
// state, under chainConfig's rules as of blockCtx's number/time.
func NewEVM(blockCtx evmtypes.BlockContext, txCtx evmtypes.TxContext, state evmtypes.IntraBlockState, chainConfig *params.ChainConfig, vmConfig Config) *EVM {
	evm := &EVM{
		context:       blockCtx,
		txCtx:         txCtx,
		state:         state,
		chainConfig:   chainConfig,
		vmConfig:      vmConfig,
		createdThisTx: make(map[types.Address]struct{}),
	}
	evm.chainRules = *chainConfig.Rules(new(big.Int).SetUint64(blockCtx.BlockNumber), blockCtx.Time)
	evm.interpreter = NewEVMInterpreter(evm)
	return evm
}

// =============================================================================
// VMContext
// =============================================================================

func (evm *EVM) ChainRules() *params.Rules                    { return &evm.chainRules }
func (evm *EVM) ChainConfig() *params.ChainConfig              { return evm.chainConfig }
func (evm *EVM) IntraBlockState() evmtypes.IntraBlockState     { return evm.state }
func (evm *EVM) Context() evmtypes.BlockContext                { return evm.context }
func (evm *EVM) TxContext() evmtypes.TxContext                 { return evm.txCtx }
func (evm *EVM) Config() Config                                { return evm.vmConfig }
func (evm *EVM) SetCallGasTemp(gas uint64)                     { evm.callGasTemp = gas }
func (evm *EVM) CallGasTemp() uint64                           { return evm.callGasTemp }

// =============================================================================
// VMCanceller
// =============================================================================

// Cancel signals the interpreter's main loop to abort at its next
// iteration boundary. Safe to call from another goroutine.
func (evm *EVM) Cancel() {
	atomic.StoreInt32(&evm.abort, 1)
}

// Cancelled reports whether Cancel has been called.
func (evm *EVM) Cancelled() bool {
	return atomic.LoadInt32(&evm.abort) == 1
}

// =============================================================================
// VMResetter
// =============================================================================

// Reset rebinds the EVM to a new transaction context and state, for reuse
// across transactions within the same block without re-deriving chain
// rules or rebuilding the interpreter's jump table.
func (evm *EVM) Reset(txCtx evmtypes.TxContext, ibs evmtypes.IntraBlockState) {
	evm.txCtx = txCtx
	evm.state = ibs
	evm.createdThisTx = make(map[types.Address]struct{})
}

// ResetBetweenBlocks rebinds the EVM to a new block, transaction, and
// state, re-deriving chain rules (a fork boundary may fall inside this
// block) and rebuilding the interpreter's jump table accordingly.
func (evm *EVM) ResetBetweenBlocks(blockCtx evmtypes.BlockContext, txCtx evmtypes.TxContext, ibs evmtypes.IntraBlockState, vmConfig Config, chainRules *params.Rules) {
	evm.context = blockCtx
	evm.txCtx = txCtx
	evm.state = ibs
	evm.vmConfig = vmConfig
	if chainRules != nil {
		evm.chainRules = *chainRules
	} else {
		evm.chainRules = *evm.chainConfig.Rules(new(big.Int).SetUint64(blockCtx.BlockNumber), blockCtx.Time)
	}
	evm.createdThisTx = make(map[types.Address]struct{})
	evm.interpreter = NewEVMInterpreter(evm)
}

// =============================================================================
// Precompile dispatch
// =============================================================================

// precompile returns the precompiled contract bound at addr under the
// EVM's active rules, if any.
func (evm *EVM) precompile(addr types.Address) (PrecompiledContract, bool) {
	p := GetPrecompiledContract(addr, &evm.chainRules)
	return p, p != nil
}

// runPrecompiled charges the precompile's required gas from suppliedGas
// and runs it, returning its output and the gas left over.
func runPrecompiled(p PrecompiledContract, input []byte, suppliedGas uint64) (ret []byte, remainingGas uint64, err error) {
	gasCost := p.RequiredGas(input)
	if suppliedGas < gasCost {
		return nil, 0, ErrOutOfGas
	}
	suppliedGas -= gasCost
	output, err := p.Run(input)
	return output, suppliedGas, err
}

// =============================================================================
// VMCaller: Call / CallCode / DelegateCall / StaticCall
// =============================================================================

// Call executes the code at addr with input as a brand-new call frame:
// caller's balance is debited value and addr's credited it (unless
// bailout suppresses the transfer-failure revert), then the target's code
// (or precompile) runs against a fresh, empty memory/stack.
func (evm *EVM) Call(caller ContractRef, addr types.Address, input []byte, gas uint64, value *uint256.Int, bailout bool) (ret []byte, leftOverGas uint64, err error) {
	if evm.vmConfig.NoRecursion && evm.interpreter.depth > 0 {
		return nil, gas, nil
	}
	if evm.interpreter.depth > maxCallDepth {
		return nil, gas, ErrCallDepthExceeded
	}
	if value.Sign() != 0 && !evm.context.CanTransfer(evm.state, caller.Address(), value) {
		return nil, gas, ErrInsufficientBalance
	}

	snapshot := evm.state.Snapshot()
	p, isPrecompile := evm.precompile(addr)

	if !isPrecompile {
		if evm.chainRules.IsSpuriousDragon && value.Sign() == 0 && evm.state.Empty(addr) {
			// EIP-161: calling an empty account with zero value is a no-op,
			// not an (uncharged) account creation.
			return nil, gas, nil
		}
		if !evm.state.Exist(addr) {
			evm.state.CreateAccount(addr, false)
		}
	}
	evm.context.Transfer(evm.state, caller.Address(), addr, value, bailout)

	tracer := evm.vmConfig.Tracer
	depth := evm.interpreter.depth
	if tracer != nil {
		if depth == 0 {
			tracer.CaptureStart(caller.Address(), addr, false, input, gas, value)
		} else {
			tracer.CaptureEnter(CALL, caller.Address(), addr, input, gas, value)
		}
	}

	if isPrecompile {
		ret, leftOverGas, err = runPrecompiled(p, input, gas)
	} else {
		code := evm.state.GetCode(addr)
		if len(code) == 0 {
			ret, leftOverGas, err = nil, gas, nil
		} else {
			contract := NewContract(caller, AccountRef(addr), value, gas, evm.vmConfig.SkipAnalysis)
			contract.Hardfork = evm.chainRules.Hardfork()
			contract.SetCallCode(&addr, evm.state.GetCodeHash(addr), code)
			contract.Depth = depth

			evm.interpreter.depth++
			ret, err = evm.interpreter.Run(contract, input, evm.vmConfig.ReadOnly)
			evm.interpreter.depth--
			leftOverGas = contract.Gas
		}
	}

	if err != nil {
		evm.state.RevertToSnapshot(snapshot)
		if !reverting(err) {
			leftOverGas = 0
		}
	}

	if tracer != nil {
		if depth == 0 {
			tracer.CaptureEnd(ret, gas-leftOverGas, err)
		} else {
			tracer.CaptureExit(ret, gas-leftOverGas, err)
		}
	}

	return ret, leftOverGas, err
}

// CallCode executes addr's code, like Call, but keeps the caller's address
// and storage as execution context — only the code is borrowed.
func (evm *EVM) CallCode(caller ContractRef, addr types.Address, input []byte, gas uint64, value *uint256.Int) (ret []byte, leftOverGas uint64, err error) {
	if evm.vmConfig.NoRecursion && evm.interpreter.depth > 0 {
		return nil, gas, nil
	}
	if evm.interpreter.depth > maxCallDepth {
		return nil, gas, ErrCallDepthExceeded
	}
	if value.Sign() != 0 && !evm.context.CanTransfer(evm.state, caller.Address(), value) {
		return nil, gas, ErrInsufficientBalance
	}

	snapshot := evm.state.Snapshot()
	p, isPrecompile := evm.precompile(addr)

	// CallCode still pays the transfer fee, but to the caller's own
	// account, since the callee's storage is never touched.
	evm.context.Transfer(evm.state, caller.Address(), caller.Address(), value, true)

	tracer := evm.vmConfig.Tracer
	depth := evm.interpreter.depth
	if tracer != nil {
		if depth == 0 {
			tracer.CaptureStart(caller.Address(), addr, false, input, gas, value)
		} else {
			tracer.CaptureEnter(CALLCODE, caller.Address(), addr, input, gas, value)
		}
	}

	if isPrecompile {
		ret, leftOverGas, err = runPrecompiled(p, input, gas)
	} else {
		code := evm.state.GetCode(addr)
		if len(code) == 0 {
			ret, leftOverGas, err = nil, gas, nil
		} else {
			contract := NewContract(caller, AccountRef(caller.Address()), value, gas, evm.vmConfig.SkipAnalysis)
			contract.Hardfork = evm.chainRules.Hardfork()
			contract.SetCallCode(&addr, evm.state.GetCodeHash(addr), code)
			contract.Depth = depth

			evm.interpreter.depth++
			ret, err = evm.interpreter.Run(contract, input, evm.vmConfig.ReadOnly)
			evm.interpreter.depth--
			leftOverGas = contract.Gas
		}
	}

	if err != nil {
		evm.state.RevertToSnapshot(snapshot)
		if !reverting(err) {
			leftOverGas = 0
		}
	}
	if tracer != nil {
		if depth == 0 {
			tracer.CaptureEnd(ret, gas-leftOverGas, err)
		} else {
			tracer.CaptureExit(ret, gas-leftOverGas, err)
		}
	}
	return ret, leftOverGas, err
}

// DelegateCall executes addr's code with the calling contract's own
// storage, balance, and msg.sender/msg.value (inherited via
// Contract.AsDelegate), per EIP-7.
func (evm *EVM) DelegateCall(caller ContractRef, addr types.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	if evm.vmConfig.NoRecursion && evm.interpreter.depth > 0 {
		return nil, gas, nil
	}
	if evm.interpreter.depth > maxCallDepth {
		return nil, gas, ErrCallDepthExceeded
	}

	snapshot := evm.state.Snapshot()
	p, isPrecompile := evm.precompile(addr)

	tracer := evm.vmConfig.Tracer
	depth := evm.interpreter.depth
	if tracer != nil {
		if depth == 0 {
			tracer.CaptureStart(caller.Address(), addr, false, input, gas, nil)
		} else {
			tracer.CaptureEnter(DELEGATECALL, caller.Address(), addr, input, gas, nil)
		}
	}

	if isPrecompile {
		ret, leftOverGas, err = runPrecompiled(p, input, gas)
	} else {
		code := evm.state.GetCode(addr)
		if len(code) == 0 {
			ret, leftOverGas, err = nil, gas, nil
		} else {
			contract := NewContract(caller, AccountRef(caller.Address()), nil, gas, evm.vmConfig.SkipAnalysis).AsDelegate()
			contract.Hardfork = evm.chainRules.Hardfork()
			contract.SetCallCode(&addr, evm.state.GetCodeHash(addr), code)
			contract.Depth = depth

			evm.interpreter.depth++
			ret, err = evm.interpreter.Run(contract, input, evm.vmConfig.ReadOnly)
			evm.interpreter.depth--
			leftOverGas = contract.Gas
		}
	}

	if err != nil {
		evm.state.RevertToSnapshot(snapshot)
		if !reverting(err) {
			leftOverGas = 0
		}
	}
	if tracer != nil {
		if depth == 0 {
			tracer.CaptureEnd(ret, gas-leftOverGas, err)
		} else {
			tracer.CaptureExit(ret, gas-leftOverGas, err)
		}
	}
	return ret, leftOverGas, err
}

// StaticCall executes addr's code under the same read-only enforcement as
// the calling frame, plus its own: any SSTORE/LOG/CREATE/SELFDESTRUCT
// (or value-bearing CALL) attempted anywhere in its subtree fails with
// ErrWriteProtection.
func (evm *EVM) StaticCall(caller ContractRef, addr types.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	if evm.vmConfig.NoRecursion && evm.interpreter.depth > 0 {
		return nil, gas, nil
	}
	if evm.interpreter.depth > maxCallDepth {
		return nil, gas, ErrCallDepthExceeded
	}

	snapshot := evm.state.Snapshot()
	p, isPrecompile := evm.precompile(addr)

	tracer := evm.vmConfig.Tracer
	depth := evm.interpreter.depth
	zero := new(uint256.Int)
	if tracer != nil {
		if depth == 0 {
			tracer.CaptureStart(caller.Address(), addr, false, input, gas, zero)
		} else {
			tracer.CaptureEnter(STATICCALL, caller.Address(), addr, input, gas, zero)
		}
	}

	if isPrecompile {
		ret, leftOverGas, err = runPrecompiled(p, input, gas)
	} else {
		code := evm.state.GetCode(addr)
		if len(code) == 0 {
			ret, leftOverGas, err = nil, gas, nil
		} else {
			contract := NewContract(caller, AccountRef(addr), zero, gas, evm.vmConfig.SkipAnalysis)
			contract.Hardfork = evm.chainRules.Hardfork()
			contract.SetCallCode(&addr, evm.state.GetCodeHash(addr), code)
			contract.Depth = depth

			evm.interpreter.depth++
			ret, err = evm.interpreter.Run(contract, input, true)
			evm.interpreter.depth--
			leftOverGas = contract.Gas
		}
	}

	if err != nil {
		evm.state.RevertToSnapshot(snapshot)
		if !reverting(err) {
			leftOverGas = 0
		}
	}
	if tracer != nil {
		if depth == 0 {
			tracer.CaptureEnd(ret, gas-leftOverGas, err)
		} else {
			tracer.CaptureExit(ret, gas-leftOverGas, err)
		}
	}
	return ret, leftOverGas, err
}

// =============================================================================
// VMCaller: Create / Create2
// =============================================================================

// createAddress derives the CREATE target address: keccak256(rlp([sender,
// nonce]))[12:].
func createAddress(sender types.Address, nonce uint64) types.Address {
	data, _ := rlp.EncodeToBytes([]interface{}{sender, nonce})
	hash := crypto.Keccak256(data)
	return types.BytesToAddress(hash[12:])
}

// create2Address derives the CREATE2 target address: keccak256(0xff ++
// sender ++ salt ++ keccak256(initCode))[12:], per EIP-1014.
func create2Address(sender types.Address, salt *uint256.Int, initCodeHash []byte) types.Address {
	saltBytes := salt.Bytes32()
	input := make([]byte, 0, 1+len(sender)+len(saltBytes)+len(initCodeHash))
	input = append(input, 0xff)
	input = append(input, sender.Bytes()...)
	input = append(input, saltBytes[:]...)
	input = append(input, initCodeHash...)
	hash := crypto.Keccak256(input)
	return types.BytesToAddress(hash[12:])
}

// Create deploys code as the init code of a new contract owned by caller,
// at the address createAddress derives from caller's address and nonce.
func (evm *EVM) Create(caller ContractRef, code []byte, gas uint64, value *uint256.Int) (ret []byte, contractAddr types.Address, leftOverGas uint64, err error) {
	contractAddr = createAddress(caller.Address(), evm.state.GetNonce(caller.Address()))
	return evm.create(caller, code, gas, value, contractAddr, CREATE)
}

// Create2 deploys code as the init code of a new contract at the
// deterministic address create2Address derives from caller, salt, and the
// init code's hash, per EIP-1014.
func (evm *EVM) Create2(caller ContractRef, code []byte, gas uint64, value *uint256.Int, salt *uint256.Int) (ret []byte, contractAddr types.Address, leftOverGas uint64, err error) {
	initCodeHash := crypto.Keccak256(code)
	contractAddr = create2Address(caller.Address(), salt, initCodeHash)
	return evm.create(caller, code, gas, value, contractAddr, CREATE2)
}

// create is the shared CREATE/CREATE2 state transition: nonce bump,
// collision check, account creation, value transfer, init-code execution,
// and (on success) the deployed-code size/prefix checks and per-byte
// storage charge. EIP-3860's init-code size/gas bound is enforced earlier,
// by gasCreate/gasCreate2 before evm.Create/Create2 is even called.
func (evm *EVM) create(caller ContractRef, code []byte, gas uint64, value *uint256.Int, contractAddr types.Address, op OpCode) (ret []byte, createdAddr types.Address, leftOverGas uint64, err error) {
	if evm.interpreter.depth > maxCallDepth {
		return nil, types.Address{}, gas, ErrCallDepthExceeded
	}
	if value.Sign() != 0 && !evm.context.CanTransfer(evm.state, caller.Address(), value) {
		return nil, types.Address{}, gas, ErrInsufficientBalance
	}

	callerNonce := evm.state.GetNonce(caller.Address())
	if callerNonce+1 < callerNonce {
		return nil, types.Address{}, gas, ErrNonceUintOverflow
	}
	evm.state.SetNonce(caller.Address(), callerNonce+1)

	if evm.state.GetNonce(contractAddr) != 0 || len(evm.state.GetCode(contractAddr)) > 0 {
		return nil, types.Address{}, gas, ErrContractAddressCollision
	}

	snapshot := evm.state.Snapshot()
	evm.state.CreateAccount(contractAddr, true)
	if evm.chainRules.IsSpuriousDragon {
		evm.state.SetNonce(contractAddr, 1)
	}
	evm.context.Transfer(evm.state, caller.Address(), contractAddr, value, false)

	contract := NewContract(caller, AccountRef(contractAddr), value, gas, evm.vmConfig.SkipAnalysis)
	contract.Hardfork = evm.chainRules.Hardfork()
	contract.SetCallCode(&contractAddr, types.BytesToHash(crypto.Keccak256(code)), code)
	contract.Depth = evm.interpreter.depth

	tracer := evm.vmConfig.Tracer
	depth := evm.interpreter.depth
	if tracer != nil {
		if depth == 0 {
			tracer.CaptureStart(caller.Address(), contractAddr, true, code, gas, value)
		} else {
			tracer.CaptureEnter(op, caller.Address(), contractAddr, code, gas, value)
		}
	}

	evm.interpreter.depth++
	ret, err = evm.interpreter.Run(contract, nil, evm.vmConfig.ReadOnly)
	evm.interpreter.depth--

	if err == nil {
		if evm.chainRules.IsSpuriousDragon && len(ret) > params.MaxCodeSize {
			err = ErrMaxCodeSizeExceeded
		} else if evm.chainRules.IsLondon && len(ret) > 0 && ret[0] == 0xef {
			err = ErrInvalidCode
		}
	}
	if err == nil {
		createGas := uint64(len(ret)) * params.CreateDataGas
		if contract.UseGas(createGas) {
			evm.state.SetCode(contractAddr, ret)
			evm.createdThisTx[contractAddr] = struct{}{}
		} else {
			err = ErrOutOfGas
		}
	}

	leftOverGas = contract.Gas
	if err != nil {
		evm.state.RevertToSnapshot(snapshot)
		if !reverting(err) {
			leftOverGas = 0
		}
	}

	if tracer != nil {
		if depth == 0 {
			tracer.CaptureEnd(ret, gas-leftOverGas, err)
		} else {
			tracer.CaptureExit(ret, gas-leftOverGas, err)
		}
	}

	return ret, contractAddr, leftOverGas, err
}

// createdInCurrentTx reports whether addr was deployed by a CREATE/CREATE2
// earlier in the transaction currently executing — the gate EIP-6780
// places on SELFDESTRUCT actually deleting an account (opSelfdestruct, in
// instructions_system.go), rather than just paying out its balance.
func (evm *EVM) createdInCurrentTx(addr types.Address) bool {
	_, ok := evm.createdThisTx[addr]
	return ok
}

// =============================================================================
// Compile-time interface compliance
// =============================================================================

var (
	_ VMCaller     = (*EVM)(nil)
	_ VMContext    = (*EVM)(nil)
	_ VMExecutor   = (*EVM)(nil)
	_ VMResetter   = (*EVM)(nil)
	_ VMCanceller  = (*EVM)(nil)
	_ FullVM       = (*EVM)(nil)
	_ VMInterpreter = (*EVM)(nil)
)
