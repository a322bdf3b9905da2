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

// Package crypto collects the signature-recovery primitive the EVM core
// needs for the ECRECOVER precompile and EIP-7702 authorization tuples.
// Keccak256 itself lives in common/hash; this package re-exports it so
// callers that think in terms of "crypto.Keccak256" (the go-ethereum idiom)
// and callers that think in terms of "hash.Keccak256" both work.
package crypto

import (
	"errors"

	"github.com/ledgerwatch/secp256k1"
	"github.com/n42blockchain/N42/common/hash"
)

// DigestLength is the expected length of a Keccak256 digest used as a
// signing hash.
const DigestLength = 32

// SignatureLength is the byte length of an [R || S || V] recoverable
// signature.
const SignatureLength = 64 + 1

var (
	// ErrInvalidRecoveryID is returned when the V value of a signature does
	// not encode a recoverable recovery id.
	ErrInvalidRecoveryID = errors.New("invalid signature recovery id")
	// ErrInvalidSignatureLen is returned when a signature is not exactly
	// SignatureLength bytes.
	ErrInvalidSignatureLen = errors.New("invalid signature length")
)

// Keccak256 re-exports hash.Keccak256 for callers written in the
// go-ethereum idiom of "crypto.Keccak256(...)".
func Keccak256(data ...[]byte) []byte { return hash.Keccak256(data...) }

// Ecrecover returns the uncompressed public key that created the given
// signature over digest. Used by the ECRECOVER precompile and by EIP-7702
// authorization-tuple signer recovery.
func Ecrecover(digest, sig []byte) ([]byte, error) {
	if len(digest) != DigestLength {
		return nil, errors.New("invalid digest length")
	}
	if len(sig) != SignatureLength {
		return nil, ErrInvalidSignatureLen
	}
	if sig[64] >= 4 {
		return nil, ErrInvalidRecoveryID
	}
	return secp256k1.RecoverPubkey(digest, sig)
}

// SigToPub returns the public key, as an uncompressed point, that produced
// the given signature.
func SigToPub(digest, sig []byte) ([]byte, error) {
	return Ecrecover(digest, sig)
}

// PubkeyToAddress derives the 20-byte Ethereum address from an uncompressed
// secp256k1 public key (65 bytes, 0x04 prefix).
func PubkeyToAddress(pub []byte) ([20]byte, error) {
	var addr [20]byte
	if len(pub) != 65 || pub[0] != 4 {
		return addr, errors.New("invalid public key")
	}
	digest := hash.Keccak256(pub[1:])
	copy(addr[:], digest[12:])
	return addr, nil
}

// VerifySignature checks that sig is a valid 64-byte [R || S] signature by
// pubkey over digest. Delegates to libsecp256k1 directly because EVM
// precompiles never need malleability-checked verification beyond what the
// curve library already provides.
func VerifySignature(pubkey, digest, sig []byte) bool {
	if len(sig) < 64 {
		return false
	}
	return secp256k1.VerifySignature(pubkey, digest, sig[:64])
}
