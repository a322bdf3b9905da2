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

// Package rlp implements the subset of the Ethereum Recursive Length Prefix
// encoding that the EVM core needs: hashing transactions, authorizations and
// ad-hoc tuples. It is not a general purpose codec and does not implement
// decoding; wire parsing belongs to the transaction-pool/networking layers
// that are out of scope here.
package rlp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
)

// Encoder is implemented by types that know how to RLP-encode themselves.
type Encoder interface {
	EncodeRLP() ([]byte, error)
}

// Encode writes the RLP encoding of val to w.
func Encode(w *bytes.Buffer, val interface{}) error {
	b, err := encodeToBytes(val)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// EncodeToBytes returns the RLP encoding of val.
func EncodeToBytes(val interface{}) ([]byte, error) {
	return encodeToBytes(val)
}

func encodeToBytes(val interface{}) ([]byte, error) {
	if val == nil {
		return encodeString(nil), nil
	}
	switch v := val.(type) {
	case Encoder:
		return v.EncodeRLP()
	case []byte:
		return encodeString(v), nil
	case string:
		return encodeString([]byte(v)), nil
	case bool:
		if v {
			return encodeString([]byte{1}), nil
		}
		return encodeString(nil), nil
	case byte:
		return encodeUint(uint64(v)), nil
	case uint64:
		return encodeUint(v), nil
	case uint32:
		return encodeUint(uint64(v)), nil
	case uint16:
		return encodeUint(uint64(v)), nil
	case int:
		return encodeUint(uint64(v)), nil
	case *big.Int:
		if v == nil {
			return encodeString(nil), nil
		}
		return encodeString(asMinimalBigEndian(v.Bytes())), nil
	case *uint256.Int:
		if v == nil {
			return encodeString(nil), nil
		}
		return encodeString(asMinimalBigEndian(v.Bytes())), nil
	case nil:
		return encodeString(nil), nil
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return encodeString(nil), nil
		}
		return encodeToBytes(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		// Fixed byte arrays such as Address/Hash encode as strings.
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			buf := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(buf), rv)
			return encodeString(buf), nil
		}
		items := make([][]byte, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			b, err := encodeToBytes(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			items[i] = b
		}
		return encodeList(items), nil
	case reflect.Struct:
		items := make([][]byte, rv.NumField())
		for i := 0; i < rv.NumField(); i++ {
			if !rv.Field(i).CanInterface() {
				continue
			}
			b, err := encodeToBytes(rv.Field(i).Interface())
			if err != nil {
				return nil, err
			}
			items[i] = b
		}
		return encodeList(items), nil
	}
	return nil, fmt.Errorf("rlp: unsupported type %T", val)
}

func asMinimalBigEndian(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:]
}

func encodeUint(i uint64) []byte {
	if i == 0 {
		return encodeString(nil)
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], i)
	return encodeString(asMinimalBigEndian(buf[:]))
}

func encodeString(s []byte) []byte {
	if len(s) == 1 && s[0] < 0x80 {
		return []byte{s[0]}
	}
	head := encodeLength(len(s), 0x80)
	return append(head, s...)
}

func encodeList(items [][]byte) []byte {
	var body bytes.Buffer
	for _, it := range items {
		body.Write(it)
	}
	head := encodeLength(body.Len(), 0xc0)
	return append(head, body.Bytes()...)
}

func encodeLength(l int, offset byte) []byte {
	if l < 56 {
		return []byte{offset + byte(l)}
	}
	lenBytes := asMinimalBigEndian(big.NewInt(int64(l)).Bytes())
	return append([]byte{offset + 55 + byte(len(lenBytes))}, lenBytes...)
}
