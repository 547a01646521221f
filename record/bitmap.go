// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"
	"encoding/hex"
	"math/bits"
)

// board dimensions
const (
	Squares    = 256
	BitmapSize = Squares / 8
)

// Bitmap - one bit per board square, bit b is byte b/8 mask 1<<(b%8)
type Bitmap [BitmapSize]byte

// BitmapFromUint32 - squares 0..31 from a compact mask
func BitmapFromUint32(mask uint32) Bitmap {
	b := Bitmap{}
	binary.LittleEndian.PutUint32(b[:4], mask)
	return b
}

// BitmapFromUint64 - squares 0..63 from a compact mask
func BitmapFromUint64(mask uint64) Bitmap {
	b := Bitmap{}
	binary.LittleEndian.PutUint64(b[:8], mask)
	return b
}

// Set - mark a square
func (b *Bitmap) Set(square int) {
	b[square/8] |= 1 << uint(square%8)
}

// Clear - unmark a square
func (b *Bitmap) Clear(square int) {
	b[square/8] &^= 1 << uint(square%8)
}

// IsSet - test a square
func (b Bitmap) IsSet(square int) bool {
	return 0 != b[square/8]&(1<<uint(square%8))
}

// Count - number of marked squares
func (b Bitmap) Count() int {
	n := 0
	for _, v := range b {
		n += bits.OnesCount8(v)
	}
	return n
}

// IsEmpty - no square marked
func (b Bitmap) IsEmpty() bool {
	return b == Bitmap{}
}

// Union - squares in either
func (b Bitmap) Union(other Bitmap) Bitmap {
	for i := range b {
		b[i] |= other[i]
	}
	return b
}

// Intersect - squares in both
func (b Bitmap) Intersect(other Bitmap) Bitmap {
	for i := range b {
		b[i] &= other[i]
	}
	return b
}

// Without - squares of b not in other
func (b Bitmap) Without(other Bitmap) Bitmap {
	for i := range b {
		b[i] &^= other[i]
	}
	return b
}

// Squares - indices of the marked squares in ascending order
func (b Bitmap) Squares() []int {
	squares := make([]int, 0, b.Count())
	for i := 0; i < Squares; i += 1 {
		if b.IsSet(i) {
			squares = append(squares, i)
		}
	}
	return squares
}

// MarshalText - hex form for JSON
func (b Bitmap) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(BitmapSize))
	hex.Encode(buffer, b[:])
	return buffer, nil
}

// UnmarshalText - from the hex form
func (b *Bitmap) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	*b = Bitmap{}
	copy(b[:], buffer[:n])
	return nil
}
