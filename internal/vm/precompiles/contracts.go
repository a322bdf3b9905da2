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

package precompiles

import (
	"github.com/n42blockchain/N42/internal/vm"
)

// =============================================================================
// Precompile Factory Functions
//
// These functions create precompiled contract instances.
// They wrap the existing implementations in internal/vm/contracts.go
// to avoid code duplication during the migration period.
// =============================================================================

// NewEcrecover creates an ecrecover precompile (address 0x01).
// Recovers the address associated with the public key from elliptic curve signature.
func NewEcrecover() PrecompiledContract {
	return vm.GetEcrecover()
}

// NewSha256 creates a SHA256 precompile (address 0x02).
func NewSha256() PrecompiledContract {
	return vm.GetSha256()
}

// NewRipemd160 creates a RIPEMD160 precompile (address 0x03).
func NewRipemd160() PrecompiledContract {
	return vm.GetRipemd160()
}

// NewDataCopy creates a data copy precompile (address 0x04).
// Simply copies input data to output (identity function).
func NewDataCopy() PrecompiledContract {
	return vm.GetDataCopy()
}

// NewBigModExp creates a big integer modular exponentiation precompile (address 0x05).
// eip2565 enables the EIP-2565 gas repricing.
func NewBigModExp(eip2565 bool) PrecompiledContract {
	return vm.GetBigModExp(eip2565)
}

// NewBn256Add creates a BN256 curve point addition precompile (address 0x06).
// istanbul uses Istanbul gas costs (reduced from Byzantium).
func NewBn256Add(istanbul bool) PrecompiledContract {
	return vm.GetBn256Add(istanbul)
}

// NewBn256ScalarMul creates a BN256 scalar multiplication precompile (address 0x07).
// istanbul uses Istanbul gas costs.
func NewBn256ScalarMul(istanbul bool) PrecompiledContract {
	return vm.GetBn256ScalarMul(istanbul)
}

// NewBn256Pairing creates a BN256 pairing check precompile (address 0x08).
// istanbul uses Istanbul gas costs.
func NewBn256Pairing(istanbul bool) PrecompiledContract {
	return vm.GetBn256Pairing(istanbul)
}

// NewBlake2F creates a BLAKE2b F compression function precompile (address 0x09).
// Added in Istanbul (EIP-152).
func NewBlake2F() PrecompiledContract {
	return vm.GetBlake2F()
}

// NewPointEvaluation creates the KZG point evaluation precompile (address
// 0x0a), added in Cancun (EIP-4844).
func NewPointEvaluation() PrecompiledContract {
	return vm.GetPointEvaluationPrecompile()
}

