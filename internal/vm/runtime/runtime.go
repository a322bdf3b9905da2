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

// Package runtime is a thin harness for running EVM bytecode directly
// against a caller-supplied state, without a surrounding block or
// transaction pipeline. It exists for tests, fuzzers, and cmd/evmrun:
// anywhere that wants "execute this code with this input" rather than
// "process this block".
package runtime

import (
	"math/big"
	"time"

	"github.com/holiman/uint256"

	"github.com/n42blockchain/N42/common/hash"
	"github.com/n42blockchain/N42/common/types"
	"github.com/n42blockchain/N42/internal/vm"
	"github.com/n42blockchain/N42/internal/vm/evmtypes"
	"github.com/n42blockchain/N42/params"
)

// Config bundles every piece of block/transaction context Execute, Create,
// and Call need, so callers don't have to build a BlockContext/TxContext by
// hand for a one-off run. State is the only field with no default: it must
// be supplied by the caller (a journaled IntraBlockState), since there is no
// sensible empty implementation to fall back to.
type Config struct {
	ChainConfig *params.ChainConfig
	Difficulty  *big.Int
	Origin      types.Address
	Coinbase    types.Address
	BlockNumber *big.Int
	Time        *big.Int
	GasLimit    uint64
	GasPrice    *uint256.Int
	Value       *uint256.Int
	BaseFee     *uint256.Int
	State       evmtypes.IntraBlockState
	GetHashFn   func(n uint64) types.Hash

	EVMConfig vm.Config

	// Shadow, if non-nil and not ShadowOff, re-runs Execute/Call's top-level
	// call through vm.ReferenceInterpreter before the real call and records
	// any divergence spec.md §4.7 asks for. It is scoped to the outermost
	// call only: wiring it into every nested frame evm.go runs would
	// compound the extra work geometrically with call depth, which is a
	// poor tradeoff for what is already an opt-in diagnostic feature.
	Shadow *ShadowComparator
}

// setDefaults fills every nil/zero field of cfg with a sensible default,
// preserving anything the caller already set. ChainConfig is defaulted
// field-by-field rather than wholesale, so a caller who only cares about
// pinning ChainID still gets every fork enabled at genesis.
func setDefaults(cfg *Config) {
	if cfg.ChainConfig == nil {
		cfg.ChainConfig = &params.ChainConfig{}
	}
	if cfg.ChainConfig.ChainID == nil {
		cfg.ChainConfig.ChainID = big.NewInt(1)
	}
	zero := big.NewInt(0)
	forkBlocks := []**big.Int{
		&cfg.ChainConfig.HomesteadBlock,
		&cfg.ChainConfig.DAOForkBlock,
		&cfg.ChainConfig.TangerineWhistleBlock,
		&cfg.ChainConfig.SpuriousDragonBlock,
		&cfg.ChainConfig.ByzantiumBlock,
		&cfg.ChainConfig.ConstantinopleBlock,
		&cfg.ChainConfig.PetersburgBlock,
		&cfg.ChainConfig.IstanbulBlock,
		&cfg.ChainConfig.MuirGlacierBlock,
		&cfg.ChainConfig.BerlinBlock,
		&cfg.ChainConfig.LondonBlock,
		&cfg.ChainConfig.ArrowGlacierBlock,
		&cfg.ChainConfig.GrayGlacierBlock,
		&cfg.ChainConfig.MergeNetsplitBlock,
		&cfg.ChainConfig.ShanghaiBlock,
		&cfg.ChainConfig.CancunBlock,
		&cfg.ChainConfig.PragueTime,
	}
	for _, f := range forkBlocks {
		if *f == nil {
			*f = zero
		}
	}

	if cfg.Difficulty == nil {
		cfg.Difficulty = new(big.Int)
	}
	if cfg.Time == nil {
		cfg.Time = big.NewInt(time.Now().Unix())
	}
	if cfg.GasLimit == 0 {
		cfg.GasLimit = 30_000_000
	}
	if cfg.GasPrice == nil {
		cfg.GasPrice = uint256.NewInt(0)
	}
	if cfg.Value == nil {
		cfg.Value = uint256.NewInt(0)
	}
	if cfg.BlockNumber == nil {
		cfg.BlockNumber = new(big.Int)
	}
	if cfg.GetHashFn == nil {
		cfg.GetHashFn = defaultGetHashFn
	}
}

// defaultGetHashFn derives a deterministic, content-free block hash from
// the block number alone — adequate for a harness with no real chain
// behind it, where BLOCKHASH only needs to be stable and distinct per
// height, not correct.
func defaultGetHashFn(n uint64) types.Hash {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(n >> (56 - 8*i))
	}
	return types.BytesToHash(hash.Keccak256(buf[:]))
}

// Execute runs code with input against cfg.State and returns its output,
// the address it ran at (always BytesToAddress("contract")), the gas left
// over, and any execution error (including ErrExecutionReverted).
func Execute(code, input []byte, cfg *Config) ([]byte, types.Address, uint64, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	evm := newEVM(cfg)

	address := types.BytesToAddress([]byte("contract"))
	cfg.State.CreateAccount(address, false)
	cfg.State.SetCode(address, code)

	if cfg.Shadow != nil {
		cfg.Shadow.compareCall(cfg, address, input, cfg.GasLimit)
	}

	ret, leftOverGas, err := evm.Call(vm.AccountRef(cfg.Origin), address, input, cfg.GasLimit, cfg.Value, false)
	return ret, address, leftOverGas, err
}

// Create runs code as init code via CREATE, returning the deployed
// contract's runtime code, its address, leftover gas, and any error.
func Create(input []byte, cfg *Config) ([]byte, types.Address, uint64, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	evm := newEVM(cfg)

	ret, address, leftOverGas, err := evm.Create(vm.AccountRef(cfg.Origin), input, cfg.GasLimit, cfg.Value)
	return ret, address, leftOverGas, err
}

// Call invokes the already-deployed contract at address with input against
// cfg.State, returning its output, leftover gas, and any error.
func Call(address types.Address, input []byte, cfg *Config) ([]byte, uint64, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	evm := newEVM(cfg)

	if cfg.Shadow != nil {
		cfg.Shadow.compareCall(cfg, address, input, cfg.GasLimit)
	}

	return evm.Call(vm.AccountRef(cfg.Origin), address, input, cfg.GasLimit, cfg.Value, false)
}

// newEVM builds an *vm.EVM wired to cfg's block/tx context. Transfer and
// CanTransfer are the plain balance-check/move pair every pack repo's EVM
// constructor wires by default; a harness run has no separate mempool
// validation stage to rely on instead.
func newEVM(cfg *Config) *vm.EVM {
	blockCtx := evmtypes.BlockContext{
		CanTransfer: canTransfer,
		Transfer:    transfer,
		GetHash:     cfg.GetHashFn,
		Coinbase:    cfg.Coinbase,
		GasLimit:    cfg.GasLimit,
		BlockNumber: cfg.BlockNumber.Uint64(),
		Time:        cfg.Time.Uint64(),
		Difficulty:  cfg.Difficulty,
		BaseFee:     cfg.BaseFee,
	}
	txCtx := evmtypes.TxContext{
		Origin:   cfg.Origin,
		GasPrice: cfg.GasPrice,
	}
	return vm.NewEVM(blockCtx, txCtx, cfg.State, cfg.ChainConfig, cfg.EVMConfig)
}

func canTransfer(state evmtypes.IntraBlockState, addr types.Address, amount *uint256.Int) bool {
	return state.GetBalance(addr).Cmp(amount) >= 0
}

func transfer(state evmtypes.IntraBlockState, sender, recipient types.Address, amount *uint256.Int, _ bool) {
	state.SubBalance(sender, amount)
	state.AddBalance(recipient, amount)
}
