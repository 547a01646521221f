// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/fpowd/account"
)

const (
	stakeAuthority       = 0
	stakeBalance         = 32
	stakeAccruedYield    = 40
	stakeLastUpdateRound = 48
	stakeLastUpdateTime  = 56
	stakeLastDepositAt   = 64
	stakeLastWithdrawAt  = 72
	stakeLastClaimAt     = 80
	stakeLifetimeYield   = 88
)

// Stake - per authority staking record
type Stake struct {
	Authority       account.Address `json:"authority"`
	Balance         uint64          `json:"balance"`
	AccruedYield    uint64          `json:"accruedYield"`
	LastUpdateRound uint64          `json:"lastUpdateRound"`
	LastUpdateTime  uint64          `json:"lastUpdateTime"`
	LastDepositAt   uint64          `json:"lastDepositAt"`
	LastWithdrawAt  uint64          `json:"lastWithdrawAt"`
	LastClaimAt     uint64          `json:"lastClaimAt"`
	LifetimeYield   uint64          `json:"lifetimeYield"`
}

// Pack - fixed size binary form
func (s *Stake) Pack() []byte {
	l := newLayout(StakeSize)
	l.putAddress(stakeAuthority, s.Authority)
	l.putUint64(stakeBalance, s.Balance)
	l.putUint64(stakeAccruedYield, s.AccruedYield)
	l.putUint64(stakeLastUpdateRound, s.LastUpdateRound)
	l.putUint64(stakeLastUpdateTime, s.LastUpdateTime)
	l.putUint64(stakeLastDepositAt, s.LastDepositAt)
	l.putUint64(stakeLastWithdrawAt, s.LastWithdrawAt)
	l.putUint64(stakeLastClaimAt, s.LastClaimAt)
	l.putUint64(stakeLifetimeYield, s.LifetimeYield)
	return l
}

// UnpackStake - decode the binary form
func UnpackStake(buffer []byte) (*Stake, error) {
	l, err := checkLayout(buffer, StakeSize)
	if nil != err {
		return nil, err
	}
	return &Stake{
		Authority:       l.address(stakeAuthority),
		Balance:         l.uint64(stakeBalance),
		AccruedYield:    l.uint64(stakeAccruedYield),
		LastUpdateRound: l.uint64(stakeLastUpdateRound),
		LastUpdateTime:  l.uint64(stakeLastUpdateTime),
		LastDepositAt:   l.uint64(stakeLastDepositAt),
		LastWithdrawAt:  l.uint64(stakeLastWithdrawAt),
		LastClaimAt:     l.uint64(stakeLastClaimAt),
		LifetimeYield:   l.uint64(stakeLifetimeYield),
	}, nil
}
