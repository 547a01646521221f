// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/hex"

	"github.com/bitmark-inc/fpowd/account"
)

// CommitmentSize - bytes in an entropy commitment
const CommitmentSize = 32

const (
	varID           = 0
	varCommitment   = 8
	varSampleCount  = 40
	varCreatedRound = 48
	varCreatedAt    = 56
	varCreator      = 64
)

// Commitment - opaque hash committed by the admin
type Commitment [CommitmentSize]byte

// MarshalText - hex form for JSON
func (c Commitment) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(CommitmentSize))
	hex.Encode(buffer, c[:])
	return buffer, nil
}

// Var - an admin managed entropy commitment
type Var struct {
	ID           uint64          `json:"id"`
	Commitment   Commitment      `json:"commitment"`
	SampleCount  uint64          `json:"sampleCount"`
	CreatedRound uint64          `json:"createdRound"`
	CreatedAt    uint64          `json:"createdAt"`
	Creator      account.Address `json:"creator"`
}

// Pack - fixed size binary form
func (v *Var) Pack() []byte {
	l := newLayout(VarSize)
	l.putUint64(varID, v.ID)
	copy(l[varCommitment:varCommitment+CommitmentSize], v.Commitment[:])
	l.putUint64(varSampleCount, v.SampleCount)
	l.putUint64(varCreatedRound, v.CreatedRound)
	l.putUint64(varCreatedAt, v.CreatedAt)
	l.putAddress(varCreator, v.Creator)
	return l
}

// UnpackVar - decode the binary form
func UnpackVar(buffer []byte) (*Var, error) {
	l, err := checkLayout(buffer, VarSize)
	if nil != err {
		return nil, err
	}
	v := &Var{
		ID:           l.uint64(varID),
		SampleCount:  l.uint64(varSampleCount),
		CreatedRound: l.uint64(varCreatedRound),
		CreatedAt:    l.uint64(varCreatedAt),
		Creator:      l.address(varCreator),
	}
	copy(v.Commitment[:], l[varCommitment:varCommitment+CommitmentSize])
	return v, nil
}
