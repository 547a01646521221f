// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/fpowd/account"
)

const (
	roundID         = 0
	roundExists     = 8
	roundBoard      = 16
	roundOpenedAt   = 48
	roundAlgoRate   = 56
	roundFpowRate   = 64
	roundFeeBps     = 72
	roundOccupied   = 80
	roundMiningPool = 88
	roundOpenedBy   = 96
)

// Round - archive of the board and distribution parameters at round open
type Round struct {
	ID         uint64          `json:"id"`
	Exists     bool            `json:"exists"`
	Board      Bitmap          `json:"board"`
	OpenedAt   uint64          `json:"openedAt"`
	AlgoRate   uint64          `json:"algoRate"`
	FpowRate   uint64          `json:"fpowRate"`
	FeeBps     uint64          `json:"feeBps"`
	Occupied   uint64          `json:"occupied"`
	MiningPool uint64          `json:"miningPool"`
	OpenedBy   account.Address `json:"openedBy"`
}

// Pack - fixed size binary form
func (r *Round) Pack() []byte {
	l := newLayout(RoundSize)
	l.putUint64(roundID, r.ID)
	if r.Exists {
		l.putUint64(roundExists, 1)
	}
	l.putBitmap(roundBoard, r.Board)
	l.putUint64(roundOpenedAt, r.OpenedAt)
	l.putUint64(roundAlgoRate, r.AlgoRate)
	l.putUint64(roundFpowRate, r.FpowRate)
	l.putUint64(roundFeeBps, r.FeeBps)
	l.putUint64(roundOccupied, r.Occupied)
	l.putUint64(roundMiningPool, r.MiningPool)
	l.putAddress(roundOpenedBy, r.OpenedBy)
	return l
}

// UnpackRound - decode the binary form
func UnpackRound(buffer []byte) (*Round, error) {
	l, err := checkLayout(buffer, RoundSize)
	if nil != err {
		return nil, err
	}
	return &Round{
		ID:         l.uint64(roundID),
		Exists:     0 != l.uint64(roundExists),
		Board:      l.bitmap(roundBoard),
		OpenedAt:   l.uint64(roundOpenedAt),
		AlgoRate:   l.uint64(roundAlgoRate),
		FpowRate:   l.uint64(roundFpowRate),
		FeeBps:     l.uint64(roundFeeBps),
		Occupied:   l.uint64(roundOccupied),
		MiningPool: l.uint64(roundMiningPool),
		OpenedBy:   l.address(roundOpenedBy),
	}, nil
}
