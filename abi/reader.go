// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package abi

import (
	"encoding/binary"

	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/fault"
)

// sequential argument reader, the first error sticks
type reader struct {
	args [][]byte
	n    int
	err  error
}

// next argument, size < 0 accepts any length
func (r *reader) next(size int) []byte {
	if nil != r.err {
		return nil
	}
	if r.n >= len(r.args) {
		r.err = fault.ErrMissingParameters
		return nil
	}
	arg := r.args[r.n]
	r.n += 1
	if size >= 0 && len(arg) != size {
		r.err = fault.ErrInvalidArgumentLength
		return nil
	}
	return arg
}

func (r *reader) uint8() uint8 {
	b := r.next(1)
	if nil == b {
		return 0
	}
	return b[0]
}

func (r *reader) uint32() uint32 {
	b := r.next(4)
	if nil == b {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *reader) uint64() uint64 {
	b := r.next(8)
	if nil == b {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func (r *reader) bytes32() [32]byte {
	result := [32]byte{}
	b := r.next(32)
	if nil != b {
		copy(result[:], b)
	}
	return result
}

func (r *reader) address() account.Address {
	return account.Address(r.bytes32())
}

func (r *reader) string() string {
	b := r.next(-1)
	if nil == b {
		return ""
	}
	if len(b) < 2 || int(binary.BigEndian.Uint16(b))+2 != len(b) {
		r.err = fault.ErrInvalidArgumentLength
		return ""
	}
	return string(b[2:])
}

// all arguments consumed
func (r *reader) finish() error {
	if nil == r.err && r.n != len(r.args) {
		r.err = fault.ErrInvalidArgumentLength
	}
	return r.err
}
