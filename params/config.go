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

// Package params carries the hardfork-activation schedule and protocol gas
// constants the interpreter is parameterized over. ChainConfig captures
// "when does each fork activate", Rules is its point-in-time projection for
// a given (block number, block time) pair, and the jump-table cache keys
// off Rules to pick the right dispatch table.
package params

import "math/big"

// Hardfork enumerates the Ethereum mainnet hardforks the interpreter knows
// how to execute, from Frontier through Cancun. Forks after Cancun (Prague,
// Osaka, and beyond) are out of scope: their opcodes, gas schedules and
// precompiles are not modeled.
type Hardfork int

const (
	Frontier Hardfork = iota
	Homestead
	DAO
	TangerineWhistle
	SpuriousDragon
	Byzantium
	Constantinople
	Petersburg
	Istanbul
	MuirGlacier
	Berlin
	London
	ArrowGlacier
	GrayGlacier
	Merge
	Shanghai
	Cancun
)

// String returns the canonical name of the hardfork.
func (h Hardfork) String() string {
	switch h {
	case Frontier:
		return "Frontier"
	case Homestead:
		return "Homestead"
	case DAO:
		return "DAO"
	case TangerineWhistle:
		return "TangerineWhistle"
	case SpuriousDragon:
		return "SpuriousDragon"
	case Byzantium:
		return "Byzantium"
	case Constantinople:
		return "Constantinople"
	case Petersburg:
		return "Petersburg"
	case Istanbul:
		return "Istanbul"
	case MuirGlacier:
		return "MuirGlacier"
	case Berlin:
		return "Berlin"
	case London:
		return "London"
	case ArrowGlacier:
		return "ArrowGlacier"
	case GrayGlacier:
		return "GrayGlacier"
	case Merge:
		return "Merge"
	case Shanghai:
		return "Shanghai"
	case Cancun:
		return "Cancun"
	default:
		return "Unknown"
	}
}

// ChainConfig is the consensus configuration for a chain: the block number
// at which each hardfork activates (Shanghai and Cancun included).
// A nil field means "never activated".
type ChainConfig struct {
	ChainID *big.Int

	HomesteadBlock        *big.Int
	DAOForkBlock          *big.Int
	DAOForkSupport        bool
	TangerineWhistleBlock *big.Int // EIP-150
	SpuriousDragonBlock   *big.Int // EIP-155/EIP-158
	ByzantiumBlock        *big.Int
	ConstantinopleBlock   *big.Int
	PetersburgBlock       *big.Int
	IstanbulBlock         *big.Int
	MuirGlacierBlock      *big.Int
	BerlinBlock           *big.Int
	LondonBlock           *big.Int
	ArrowGlacierBlock     *big.Int
	GrayGlacierBlock      *big.Int
	MergeNetsplitBlock    *big.Int
	ShanghaiBlock         *big.Int
	CancunBlock           *big.Int

	// PragueTime is carried for schema completeness with upstream
	// go-ethereum configs; Prague itself is out of scope (see Hardfork's
	// doc comment) and Rules never reads this field.
	PragueTime *big.Int
}

// MainnetChainConfig is the configuration for the Ethereum mainnet, with
// every fork through Cancun activated at its historical block/time.
var MainnetChainConfig = &ChainConfig{
	ChainID:               big.NewInt(1),
	HomesteadBlock:        big.NewInt(1_150_000),
	DAOForkBlock:          big.NewInt(1_920_000),
	DAOForkSupport:        true,
	TangerineWhistleBlock: big.NewInt(2_463_000),
	SpuriousDragonBlock:   big.NewInt(2_675_000),
	ByzantiumBlock:        big.NewInt(4_370_000),
	ConstantinopleBlock:   big.NewInt(7_280_000),
	PetersburgBlock:       big.NewInt(7_280_000),
	IstanbulBlock:         big.NewInt(9_069_000),
	MuirGlacierBlock:      big.NewInt(9_200_000),
	BerlinBlock:           big.NewInt(12_244_000),
	LondonBlock:           big.NewInt(12_965_000),
	ArrowGlacierBlock:     big.NewInt(13_773_000),
	GrayGlacierBlock:      big.NewInt(15_050_000),
	MergeNetsplitBlock:    big.NewInt(15_537_394),
	ShanghaiBlock:         big.NewInt(17_034_870),
	CancunBlock:           big.NewInt(19_426_587),
}

// AllCancunChainConfig activates every known fork at genesis; convenient for
// tests and for cmd/evmrun, which derives its per-fork configs from it.
var AllCancunChainConfig = &ChainConfig{
	ChainID:               big.NewInt(1337),
	HomesteadBlock:        big.NewInt(0),
	DAOForkBlock:          big.NewInt(0),
	TangerineWhistleBlock: big.NewInt(0),
	SpuriousDragonBlock:   big.NewInt(0),
	ByzantiumBlock:        big.NewInt(0),
	ConstantinopleBlock:   big.NewInt(0),
	PetersburgBlock:       big.NewInt(0),
	IstanbulBlock:         big.NewInt(0),
	MuirGlacierBlock:      big.NewInt(0),
	BerlinBlock:           big.NewInt(0),
	LondonBlock:           big.NewInt(0),
	ArrowGlacierBlock:     big.NewInt(0),
	GrayGlacierBlock:      big.NewInt(0),
	MergeNetsplitBlock:    big.NewInt(0),
	ShanghaiBlock:         big.NewInt(0),
	CancunBlock:           big.NewInt(0),
}

func isActivated(n, at *big.Int) bool {
	if at == nil || n == nil {
		return false
	}
	return at.Cmp(n) <= 0
}

// Rules is the point-in-time, struct-of-bools projection of ChainConfig at a
// given (block number, timestamp) pair. The interpreter's jump-table cache
// keys off Rules rather than ChainConfig because Rules is comparable and
// stable for the lifetime of one block's execution.
type Rules struct {
	ChainID                                                 *big.Int
	IsHomestead, IsTangerineWhistle, IsSpuriousDragon        bool
	IsByzantium, IsConstantinople, IsPetersburg, IsIstanbul  bool
	IsBerlin, IsLondon                                       bool
	IsMerge, IsShanghai, IsCancun                            bool
}

// Rules returns the Rules in effect at the given block number. blockTime is
// accepted (rather than dropped from the signature) so a future fork keyed
// off timestamp rather than block number — the real post-merge convention,
// simplified away here since this module's configs gate every fork by
// block number — has somewhere to land without another signature change.
func (c *ChainConfig) Rules(blockNumber *big.Int, blockTime uint64) *Rules {
	_ = blockTime
	chainID := c.ChainID
	if chainID == nil {
		chainID = new(big.Int)
	}
	return &Rules{
		ChainID:            chainID,
		IsHomestead:        isActivated(blockNumber, c.HomesteadBlock),
		IsTangerineWhistle: isActivated(blockNumber, c.TangerineWhistleBlock),
		IsSpuriousDragon:   isActivated(blockNumber, c.SpuriousDragonBlock),
		IsByzantium:        isActivated(blockNumber, c.ByzantiumBlock),
		IsConstantinople:   isActivated(blockNumber, c.ConstantinopleBlock),
		IsPetersburg:       isActivated(blockNumber, c.PetersburgBlock),
		IsIstanbul:         isActivated(blockNumber, c.IstanbulBlock),
		IsBerlin:           isActivated(blockNumber, c.BerlinBlock),
		IsLondon:           isActivated(blockNumber, c.LondonBlock),
		IsMerge:            isActivated(blockNumber, c.MergeNetsplitBlock),
		IsShanghai:         isActivated(blockNumber, c.ShanghaiBlock),
		IsCancun:           isActivated(blockNumber, c.CancunBlock),
	}
}

// Hardfork returns the named hardfork implied by the rule set, i.e. the
// latest fork whose Is* flag is set.
func (r *Rules) Hardfork() Hardfork {
	switch {
	case r.IsCancun:
		return Cancun
	case r.IsShanghai:
		return Shanghai
	case r.IsMerge:
		return Merge
	case r.IsLondon:
		return London
	case r.IsBerlin:
		return Berlin
	case r.IsIstanbul:
		return Istanbul
	case r.IsPetersburg:
		return Petersburg
	case r.IsConstantinople:
		return Constantinople
	case r.IsByzantium:
		return Byzantium
	case r.IsSpuriousDragon:
		return SpuriousDragon
	case r.IsTangerineWhistle:
		return TangerineWhistle
	case r.IsHomestead:
		return Homestead
	default:
		return Frontier
	}
}
