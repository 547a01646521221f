// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/fpowd/fault"
)

// miscellaneous constants
const (
	AddressLength  = 32
	checksumLength = 4
)

// Address - the 32 byte identity of an authority or of the
// application itself
type Address [AddressLength]byte

// Zero - the empty address, never a valid admin
var Zero Address

// FromBytes - convert a raw 32 byte buffer to an address
func FromBytes(buffer []byte) (Address, error) {
	a := Address{}
	if AddressLength != len(buffer) {
		return a, fault.ErrInvalidAccountLength
	}
	copy(a[:], buffer)
	return a, nil
}

// FromBase58 - convert a base58 string with checksum to an address
func FromBase58(s string) (Address, error) {
	a := Address{}
	decoded, err := base58.Decode(s)
	if nil != err || 0 == len(decoded) {
		return a, fault.ErrInvalidAccount
	}
	if AddressLength+checksumLength != len(decoded) {
		return a, fault.ErrInvalidAccountLength
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return a, fault.ErrInvalidAccountChecksum
	}
	copy(a[:], decoded[:checksumStart])
	return a, nil
}

// IsZero - true for the empty address
func (a Address) IsZero() bool {
	return a == Zero
}

// Bytes - byte slice copy of the address
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

// String - base58 encoding of address and checksum
func (a Address) String() string {
	checksum := sha3.Sum256(a[:])
	buffer := append(a.Bytes(), checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// GoString - hex form for debug output
func (a Address) GoString() string {
	return "<address:" + hex.EncodeToString(a[:]) + ">"
}

// MarshalText - convert an address to its base58 JSON form
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert a base58 JSON string to an address
func (a *Address) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
