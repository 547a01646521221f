// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"

	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/fault"
)

// record sizes
const (
	ConfigSize     = 168
	TreasurySize   = 128
	BoardSize      = BitmapSize
	MinerSize      = 512
	StakeSize      = 256
	RoundSize      = 512
	AutomationSize = 128
	VarSize        = 128
	OutboundSize   = 96
)

// a record buffer being packed or unpacked
type layout []byte

func newLayout(size int) layout {
	return make(layout, size)
}

func checkLayout(buffer []byte, size int) (layout, error) {
	if size != len(buffer) {
		return nil, fault.ErrInvalidRecordSize
	}
	return layout(buffer), nil
}

func (l layout) putUint64(offset int, n uint64) {
	binary.BigEndian.PutUint64(l[offset:offset+8], n)
}

func (l layout) uint64(offset int) uint64 {
	return binary.BigEndian.Uint64(l[offset : offset+8])
}

func (l layout) putAddress(offset int, a account.Address) {
	copy(l[offset:offset+account.AddressLength], a[:])
}

func (l layout) address(offset int) account.Address {
	a := account.Address{}
	copy(a[:], l[offset:offset+account.AddressLength])
	return a
}

func (l layout) putBitmap(offset int, b Bitmap) {
	copy(l[offset:offset+BitmapSize], b[:])
}

func (l layout) bitmap(offset int) Bitmap {
	b := Bitmap{}
	copy(b[:], l[offset:offset+BitmapSize])
	return b
}

// Uint64 - decode a big endian field read directly from a record
func Uint64(buffer []byte) uint64 {
	return binary.BigEndian.Uint64(buffer)
}

// PutUint64 - encode a field to be written directly into a record
func PutUint64(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}

// IDKey - key of a record addressed by a numeric id
func IDKey(id uint64) []byte {
	return PutUint64(id)
}
