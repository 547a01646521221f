// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math"
	"math/bits"

	"github.com/bitmark-inc/fpowd/fault"
)

// add with overflow detection
func add(a uint64, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if 0 != carry {
		return 0, fault.ErrArithmeticOverflow
	}
	return sum, nil
}

// subtract, failing on an insufficient balance
func sub(a uint64, b uint64) (uint64, error) {
	if b > a {
		return 0, fault.ErrInsufficientBalance
	}
	return a - b, nil
}

// subtract clamped at zero
func saturatingSub(a uint64, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// multiply clamped at the maximum value
func saturatingMul(a uint64, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if 0 != hi {
		return math.MaxUint64
	}
	return lo
}

// a*b/d with a 128 bit intermediate, clamped at the maximum value
func mulDiv(a uint64, b uint64, d uint64) uint64 {
	if 0 == d {
		return 0
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= d {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, d)
	return q
}

func min(a uint64, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
