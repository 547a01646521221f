// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/record"
	"github.com/bitmark-inc/fpowd/settlement"
)

// the caller's stake with its yield brought up to date
func (e *Engine) stake(s *state) (*record.Stake, error) {
	st, err := s.readStake(s.call.Sender)
	if nil != err {
		return nil, err
	}
	if err := e.settleYield(s, st); nil != err {
		return nil, err
	}
	return st, nil
}

// settleYield - accrue yield for the rounds since the last update
func (e *Engine) settleYield(s *state, st *record.Stake) error {
	c := s.config
	t := s.treasury

	elapsed := saturatingSub(c.RoundID, st.LastUpdateRound)
	y := uint64(0)
	if 0 != elapsed && 0 != st.Balance {
		y = e.yield.Accrue(st.Balance, c.YieldRateBps, elapsed)
	}
	y = min(y, saturatingSub(c.SupplyCap, t.FpowEmitted))

	var err error
	if st.AccruedYield, err = add(st.AccruedYield, y); nil != err {
		return err
	}
	if t.YieldUnclaimed, err = add(t.YieldUnclaimed, y); nil != err {
		return err
	}
	t.FpowEmitted += y
	st.LifetimeYield += y

	st.LastUpdateRound = c.RoundID
	st.LastUpdateTime = s.call.Timestamp
	return nil
}

// staked tokens plus unclaimed mining rewards must stay within the supply cap
func (s *state) stakeWithinCap(increase uint64) error {
	t := s.treasury
	held, err := add(t.TotalStaked, t.FpowUnclaimed)
	if nil == err {
		held, err = add(held, increase)
	}
	if nil != err || held > s.config.SupplyCap {
		return fault.ErrSupplyCapExceeded
	}
	return nil
}

// deposit - stake the attached tokens
func (e *Engine) deposit(s *state, op Deposit) error {
	if 0 == op.Amount {
		return fault.ErrInvalidAmount
	}
	credited, err := s.inbound(settlement.AssetTransfer, op.Amount)
	if nil != err {
		return err
	}
	if err := s.stakeWithinCap(credited); nil != err {
		return err
	}

	authority := s.call.Sender
	var st *record.Stake
	if s.trx.Exists(s.pools.Stake, authority.Bytes()) {
		st, err = e.stake(s)
		if nil != err {
			return err
		}
	} else {
		st = &record.Stake{
			Authority:       authority,
			LastUpdateRound: s.config.RoundID,
			LastUpdateTime:  s.call.Timestamp,
		}
		if err := s.trx.Create(s.pools.Stake, authority.Bytes(), record.StakeSize); nil != err {
			return err
		}
	}

	st.Balance += credited
	st.LastDepositAt = s.call.Timestamp
	s.treasury.TotalStaked += credited

	return s.writeStake(st)
}

// withdraw - unstake tokens back to the caller
func (e *Engine) withdraw(s *state, op Withdraw) error {
	if 0 == op.Amount {
		return fault.ErrInvalidAmount
	}
	st, err := e.stake(s)
	if nil != err {
		return err
	}
	if st.Balance, err = sub(st.Balance, op.Amount); nil != err {
		return err
	}
	if s.treasury.TotalStaked, err = sub(s.treasury.TotalStaked, op.Amount); nil != err {
		return err
	}
	st.LastWithdrawAt = s.call.Timestamp

	s.payToken(st.Authority, op.Amount)
	return s.writeStake(st)
}

// claimYield - pay accrued yield to the caller
func (e *Engine) claimYield(s *state, op ClaimYield) error {
	if 0 == op.Amount {
		return fault.ErrInvalidAmount
	}
	st, err := e.stake(s)
	if nil != err {
		return err
	}
	if st.AccruedYield, err = sub(st.AccruedYield, op.Amount); nil != err {
		return err
	}
	if s.treasury.YieldUnclaimed, err = sub(s.treasury.YieldUnclaimed, op.Amount); nil != err {
		return err
	}
	st.LastClaimAt = s.call.Timestamp

	s.payToken(st.Authority, op.Amount)
	return s.writeStake(st)
}

// compoundYield - move the whole accrued yield into the staked balance
func (e *Engine) compoundYield(s *state) error {
	st, err := e.stake(s)
	if nil != err {
		return err
	}

	y := st.AccruedYield
	if 0 != y {
		if err := s.stakeWithinCap(y); nil != err {
			return err
		}
		st.AccruedYield = 0
		st.Balance += y
		s.treasury.TotalStaked += y
		s.treasury.YieldUnclaimed -= y
	}
	return s.writeStake(st)
}
