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
	"crypto/sha256"
	"math/big"
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD160 precompile needs this exact algorithm

	"github.com/n42blockchain/N42/common/crypto"
	"github.com/n42blockchain/N42/common/types"
	"github.com/n42blockchain/N42/params"
)

// PrecompiledContract is the interface every precompiled contract
// implements: given its call input, report the gas it requires and, if
// enough was supplied, run it to completion. Precompiles never consume
// variable amounts of gas mid-execution the way interpreted bytecode does;
// RequiredGas must be computable from the input alone.
type PrecompiledContract interface {
	RequiredGas(input []byte) uint64
	Run(input []byte) ([]byte, error)
}

// =============================================================================
// 0x01 ECRECOVER
// =============================================================================

type ecrecover struct{}

func (c *ecrecover) RequiredGas(input []byte) uint64 { return params.EcrecoverGas }

func (c *ecrecover) Run(input []byte) ([]byte, error) {
	const inputLength = 128
	input = getData(input, 0, inputLength)

	r := new(big.Int).SetBytes(input[64:96])
	s := new(big.Int).SetBytes(input[96:128])
	v := input[63]

	if !allZero(input[32:63]) || v < 27 || v > 28 {
		return nil, nil
	}
	if r.Sign() == 0 || s.Sign() == 0 {
		return nil, nil
	}

	sig := make([]byte, 65)
	copy(sig[0:32], input[64:96])
	copy(sig[32:64], input[96:128])
	sig[64] = v - 27

	pubKey, err := crypto.Ecrecover(input[:32], sig)
	if err != nil {
		return nil, nil
	}
	addr, err := crypto.PubkeyToAddress(pubKey)
	if err != nil {
		return nil, nil
	}
	return getData(addr[:], 0, 32), nil
}

// =============================================================================
// 0x02 SHA256
// =============================================================================

type sha256hash struct{}

func (c *sha256hash) RequiredGas(input []byte) uint64 {
	return params.Sha256BaseGas + toWordSize(uint64(len(input)))*params.Sha256PerWordGas
}

func (c *sha256hash) Run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

// =============================================================================
// 0x03 RIPEMD160
// =============================================================================

type ripemd160hash struct{}

func (c *ripemd160hash) RequiredGas(input []byte) uint64 {
	return params.Ripemd160BaseGas + toWordSize(uint64(len(input)))*params.Ripemd160PerWordGas
}

func (c *ripemd160hash) Run(input []byte) ([]byte, error) {
	h := ripemd160.New()
	h.Write(input)
	return getData(h.Sum(nil), 0, 32), nil
}

// =============================================================================
// 0x04 IDENTITY (data copy)
// =============================================================================

type dataCopy struct{}

func (c *dataCopy) RequiredGas(input []byte) uint64 {
	return params.IdentityBaseGas + toWordSize(uint64(len(input)))*params.IdentityPerWordGas
}

func (c *dataCopy) Run(input []byte) ([]byte, error) {
	return input, nil
}

// =============================================================================
// 0x05 MODEXP (EIP-198, repriced by EIP-2565)
// =============================================================================

type bigModExp struct {
	eip2565 bool
}

func (c *bigModExp) modExpMultComplexity(x uint64) uint64 {
	if c.eip2565 {
		words := (x + 7) / 8
		return words * words
	}
	switch {
	case x <= 64:
		return x * x
	case x <= 1024:
		return x*x/4 + 96*x - 3072
	default:
		return x*x/16 + 480*x - 199680
	}
}

func (c *bigModExp) RequiredGas(input []byte) uint64 {
	var (
		baseLen = new(big.Int).SetBytes(getData(input, 0, 32))
		expLen  = new(big.Int).SetBytes(getData(input, 32, 32))
		modLen  = new(big.Int).SetBytes(getData(input, 64, 32))
	)
	if len(input) > 96 {
		input = input[96:]
	} else {
		input = input[:0]
	}

	var expHead *big.Int
	if uint64(len(input)) <= baseLen.Uint64() {
		expHead = new(big.Int)
	} else {
		if expLen.Cmp(big.NewInt(32)) > 0 {
			expHead = new(big.Int).SetBytes(getData(input, baseLen.Uint64(), 32))
		} else {
			expHead = new(big.Int).SetBytes(getData(input, baseLen.Uint64(), expLen.Uint64()))
		}
	}

	var msb int
	if bitlen := expHead.BitLen(); bitlen > 0 {
		msb = bitlen - 1
	}
	adjExpLen := new(big.Int)
	if expLen.Cmp(big.NewInt(32)) > 0 {
		adjExpLen.Sub(expLen, big.NewInt(32))
		adjExpLen.Mul(big.NewInt(8), adjExpLen)
	}
	adjExpLen.Add(adjExpLen, big.NewInt(int64(msb)))

	maxLen := baseLen
	if modLen.Cmp(maxLen) > 0 {
		maxLen = modLen
	}
	gas := new(big.Int).SetUint64(c.modExpMultComplexity(maxLen.Uint64()))
	if adjExpLen.Cmp(big.NewInt(1)) < 0 {
		adjExpLen = big.NewInt(1)
	}
	gas.Mul(gas, adjExpLen)
	divisor := params.ModExpQuadCoeffDiv
	if c.eip2565 {
		divisor = params.ModExpQuadCoeffDivEIP2565
	}
	gas.Div(gas, new(big.Int).SetUint64(divisor))
	if !gas.IsUint64() || gas.Uint64() < 200 {
		return 200
	}
	return gas.Uint64()
}

func (c *bigModExp) Run(input []byte) ([]byte, error) {
	var (
		baseLen = new(big.Int).SetBytes(getData(input, 0, 32)).Uint64()
		expLen  = new(big.Int).SetBytes(getData(input, 32, 32)).Uint64()
		modLen  = new(big.Int).SetBytes(getData(input, 64, 32)).Uint64()
	)
	if len(input) > 96 {
		input = input[96:]
	} else {
		input = input[:0]
	}
	if baseLen == 0 && modLen == 0 {
		return []byte{}, nil
	}

	base := new(big.Int).SetBytes(getData(input, 0, baseLen))
	exp := new(big.Int).SetBytes(getData(input, baseLen, expLen))
	mod := new(big.Int).SetBytes(getData(input, baseLen+expLen, modLen))

	out := make([]byte, modLen)
	if mod.BitLen() == 0 {
		return out, nil
	}
	return base.Exp(base, exp, mod).FillBytes(out), nil
}

// =============================================================================
// 0x06/0x07/0x08 BN254 (alt_bn128) curve operations
// =============================================================================

func bn256G1ToBytes(p *bn254.G1Affine) []byte {
	out := make([]byte, 64)
	xBytes := p.X.Bytes()
	yBytes := p.Y.Bytes()
	copy(out[32-len(xBytes):32], xBytes[:])
	copy(out[64-len(yBytes):64], yBytes[:])
	return out
}

func bn256G1FromInput(input []byte) (*bn254.G1Affine, error) {
	p := new(bn254.G1Affine)
	p.X.SetBytes(getData(input, 0, 32))
	p.Y.SetBytes(getData(input, 32, 32))
	if p.X.IsZero() && p.Y.IsZero() {
		return p, nil // point at infinity
	}
	if !p.IsOnCurve() {
		return nil, errInvalidCurvePoint
	}
	return p, nil
}

var errInvalidCurvePoint = errBadInput("invalid curve point")

type errBadInput string

func (e errBadInput) Error() string { return string(e) }

type bn256Add struct{ istanbul bool }

func (c *bn256Add) RequiredGas(input []byte) uint64 {
	if c.istanbul {
		return params.Bn256AddGasIstanbul
	}
	return params.Bn256AddGasByzantium
}

func (c *bn256Add) Run(input []byte) ([]byte, error) {
	p1, err := bn256G1FromInput(getData(input, 0, 64))
	if err != nil {
		return nil, err
	}
	p2, err := bn256G1FromInput(getData(input, 64, 64))
	if err != nil {
		return nil, err
	}
	res := new(bn254.G1Affine).Add(p1, p2)
	return bn256G1ToBytes(res), nil
}

type bn256ScalarMul struct{ istanbul bool }

func (c *bn256ScalarMul) RequiredGas(input []byte) uint64 {
	if c.istanbul {
		return params.Bn256ScalarMulGasIstanbul
	}
	return params.Bn256ScalarMulGasByzantium
}

func (c *bn256ScalarMul) Run(input []byte) ([]byte, error) {
	p, err := bn256G1FromInput(getData(input, 0, 64))
	if err != nil {
		return nil, err
	}
	scalar := new(big.Int).SetBytes(getData(input, 64, 32))
	res := new(bn254.G1Affine).ScalarMultiplication(p, scalar)
	return bn256G1ToBytes(res), nil
}

type bn256Pairing struct{ istanbul bool }

func (c *bn256Pairing) RequiredGas(input []byte) uint64 {
	points := uint64(len(input) / 192)
	if c.istanbul {
		return params.Bn256PairingBaseGasIstanbul + points*params.Bn256PairingPerPointGasIstanbul
	}
	return params.Bn256PairingBaseGasByzantium + points*params.Bn256PairingPerPointGasByzantium
}

func (c *bn256Pairing) Run(input []byte) ([]byte, error) {
	if len(input)%192 > 0 {
		return nil, errBadInput("invalid pairing input length")
	}
	var (
		g1s []bn254.G1Affine
		g2s []bn254.G2Affine
	)
	for i := 0; i < len(input); i += 192 {
		g1, err := bn256G1FromInput(input[i : i+64])
		if err != nil {
			return nil, err
		}
		g2 := new(bn254.G2Affine)
		g2.X.A1.SetBytes(input[i+64 : i+96])
		g2.X.A0.SetBytes(input[i+96 : i+128])
		g2.Y.A1.SetBytes(input[i+128 : i+160])
		g2.Y.A0.SetBytes(input[i+160 : i+192])
		if !(g2.X.IsZero() && g2.Y.IsZero()) && !g2.IsOnCurve() {
			return nil, errInvalidCurvePoint
		}
		g1s = append(g1s, *g1)
		g2s = append(g2s, *g2)
	}

	out := make([]byte, 32)
	if len(g1s) == 0 {
		out[31] = 1
		return out, nil
	}
	ok, err := bn254.PairingCheck(g1s, g2s)
	if err != nil {
		return nil, err
	}
	if ok {
		out[31] = 1
	}
	return out, nil
}

// =============================================================================
// 0x09 BLAKE2F (EIP-152)
// =============================================================================

type blake2F struct{}

const blake2FInputLength = 213

func (c *blake2F) RequiredGas(input []byte) uint64 {
	if len(input) != blake2FInputLength {
		return 0
	}
	return uint64(getUint32BE(input[0:4])) * params.Blake2FPerRoundGas
}

func getUint32BE(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func (c *blake2F) Run(input []byte) ([]byte, error) {
	if len(input) != blake2FInputLength {
		return nil, errBadInput("invalid blake2f input length")
	}
	if input[212] != 0 && input[212] != 1 {
		return nil, errBadInput("invalid blake2f final block flag")
	}
	rounds := getUint32BE(input[0:4])

	var h [8]uint64
	for i := 0; i < 8; i++ {
		h[i] = leUint64(input[4+i*8:])
	}
	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = leUint64(input[68+i*8:])
	}
	var t [2]uint64
	t[0] = leUint64(input[196:])
	t[1] = leUint64(input[204:])
	final := input[212] == 1

	blake2b.F(rounds, &h, &m, t, final)

	out := make([]byte, 64)
	for i, v := range h {
		putLeUint64(out[i*8:], v)
	}
	return out, nil
}

func leUint64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func putLeUint64(b []byte, v uint64) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}

// =============================================================================
// Factory functions, for the precompiles registry subpackage
// =============================================================================

func GetEcrecover() PrecompiledContract       { return &ecrecover{} }
func GetSha256() PrecompiledContract          { return &sha256hash{} }
func GetRipemd160() PrecompiledContract       { return &ripemd160hash{} }
func GetDataCopy() PrecompiledContract        { return &dataCopy{} }
func GetBigModExp(eip2565 bool) PrecompiledContract {
	return &bigModExp{eip2565: eip2565}
}
func GetBn256Add(istanbul bool) PrecompiledContract       { return &bn256Add{istanbul: istanbul} }
func GetBn256ScalarMul(istanbul bool) PrecompiledContract { return &bn256ScalarMul{istanbul: istanbul} }
func GetBn256Pairing(istanbul bool) PrecompiledContract   { return &bn256Pairing{istanbul: istanbul} }
func GetBlake2F() PrecompiledContract                     { return &blake2F{} }

// =============================================================================
// Per-hardfork precompile sets
// =============================================================================

var PrecompiledContractsHomestead = map[types.Address]PrecompiledContract{
	types.BytesToAddress([]byte{1}): &ecrecover{},
	types.BytesToAddress([]byte{2}): &sha256hash{},
	types.BytesToAddress([]byte{3}): &ripemd160hash{},
	types.BytesToAddress([]byte{4}): &dataCopy{},
}

var PrecompiledContractsByzantium = map[types.Address]PrecompiledContract{
	types.BytesToAddress([]byte{1}): &ecrecover{},
	types.BytesToAddress([]byte{2}): &sha256hash{},
	types.BytesToAddress([]byte{3}): &ripemd160hash{},
	types.BytesToAddress([]byte{4}): &dataCopy{},
	types.BytesToAddress([]byte{5}): &bigModExp{eip2565: false},
	types.BytesToAddress([]byte{6}): &bn256Add{istanbul: false},
	types.BytesToAddress([]byte{7}): &bn256ScalarMul{istanbul: false},
	types.BytesToAddress([]byte{8}): &bn256Pairing{istanbul: false},
}

var PrecompiledContractsIstanbul = map[types.Address]PrecompiledContract{
	types.BytesToAddress([]byte{1}): &ecrecover{},
	types.BytesToAddress([]byte{2}): &sha256hash{},
	types.BytesToAddress([]byte{3}): &ripemd160hash{},
	types.BytesToAddress([]byte{4}): &dataCopy{},
	types.BytesToAddress([]byte{5}): &bigModExp{eip2565: false},
	types.BytesToAddress([]byte{6}): &bn256Add{istanbul: true},
	types.BytesToAddress([]byte{7}): &bn256ScalarMul{istanbul: true},
	types.BytesToAddress([]byte{8}): &bn256Pairing{istanbul: true},
	types.BytesToAddress([]byte{9}): &blake2F{},
}

var PrecompiledContractsBerlin = map[types.Address]PrecompiledContract{
	types.BytesToAddress([]byte{1}): &ecrecover{},
	types.BytesToAddress([]byte{2}): &sha256hash{},
	types.BytesToAddress([]byte{3}): &ripemd160hash{},
	types.BytesToAddress([]byte{4}): &dataCopy{},
	types.BytesToAddress([]byte{5}): &bigModExp{eip2565: true},
	types.BytesToAddress([]byte{6}): &bn256Add{istanbul: true},
	types.BytesToAddress([]byte{7}): &bn256ScalarMul{istanbul: true},
	types.BytesToAddress([]byte{8}): &bn256Pairing{istanbul: true},
	types.BytesToAddress([]byte{9}): &blake2F{},
}

// PrecompiledContractsCancun additionally wires the EIP-4844 point
// evaluation precompile at 0x0a; Cancun makes no other precompile changes.
var PrecompiledContractsCancun = map[types.Address]PrecompiledContract{
	types.BytesToAddress([]byte{1}):  &ecrecover{},
	types.BytesToAddress([]byte{2}):  &sha256hash{},
	types.BytesToAddress([]byte{3}):  &ripemd160hash{},
	types.BytesToAddress([]byte{4}):  &dataCopy{},
	types.BytesToAddress([]byte{5}):  &bigModExp{eip2565: true},
	types.BytesToAddress([]byte{6}):  &bn256Add{istanbul: true},
	types.BytesToAddress([]byte{7}):  &bn256ScalarMul{istanbul: true},
	types.BytesToAddress([]byte{8}):  &bn256Pairing{istanbul: true},
	types.BytesToAddress([]byte{9}):  &blake2F{},
	types.BytesToAddress([]byte{10}): &pointEvaluationPrecompile{},
}

var (
	PrecompiledAddressesHomestead []types.Address
	PrecompiledAddressesByzantium []types.Address
	PrecompiledAddressesIstanbul  []types.Address
	PrecompiledAddressesBerlin    []types.Address
	PrecompiledAddressesCancun    []types.Address
)

func sortedAddresses(m map[types.Address]PrecompiledContract) []types.Address {
	addrs := make([]types.Address, 0, len(m))
	for addr := range m {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Hash().Big().Cmp(addrs[j].Hash().Big()) < 0
	})
	return addrs
}

func init() {
	PrecompiledAddressesHomestead = sortedAddresses(PrecompiledContractsHomestead)
	PrecompiledAddressesByzantium = sortedAddresses(PrecompiledContractsByzantium)
	PrecompiledAddressesIstanbul = sortedAddresses(PrecompiledContractsIstanbul)
	PrecompiledAddressesBerlin = sortedAddresses(PrecompiledContractsBerlin)
	PrecompiledAddressesCancun = sortedAddresses(PrecompiledContractsCancun)
}

// ActivePrecompiles returns the precompiled contract address set active
// under rules, latest applicable fork first.
func ActivePrecompiles(rules *params.Rules) []types.Address {
	switch {
	case rules.IsCancun:
		return PrecompiledAddressesCancun
	case rules.IsBerlin:
		return PrecompiledAddressesBerlin
	case rules.IsIstanbul:
		return PrecompiledAddressesIstanbul
	case rules.IsByzantium:
		return PrecompiledAddressesByzantium
	default:
		return PrecompiledAddressesHomestead
	}
}
