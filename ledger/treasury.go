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

// wrap - take the attached native currency into custody
func (e *Engine) wrap(s *state, op Wrap) error {
	if 0 == op.Amount {
		return fault.ErrInvalidAmount
	}
	credited, err := s.inbound(settlement.Payment, op.Amount)
	if nil != err {
		return err
	}
	t := s.treasury
	if t.Wrapped, err = add(t.Wrapped, credited); nil != err {
		return err
	}
	t.NativeDeposited, err = add(t.NativeDeposited, credited)
	return err
}

// bury - take the attached tokens out of supply for good
func (e *Engine) bury(s *state, op Bury) error {
	if err := s.requireAdmin(); nil != err {
		return err
	}
	if 0 == op.Amount {
		return fault.ErrInvalidAmount
	}
	credited, err := s.inbound(settlement.AssetTransfer, op.Amount)
	if nil != err {
		return err
	}
	t := s.treasury
	if t.Burned, err = add(t.Burned, credited); nil != err {
		return err
	}
	t.BuryCount += 1
	e.log.Infof("bury: %d  total: %d", credited, t.Burned)
	return nil
}

// buyback - release buyback funds to the admin
func (e *Engine) buyback(s *state) error {
	amount, err := e.release(s, e.strategy.Buyback)
	if nil != err {
		return err
	}
	s.treasury.BuybackTotal += amount
	e.log.Infof("buyback: %d", amount)
	return nil
}

// liq - release the liquidity reserve to the admin
func (e *Engine) liq(s *state) error {
	amount, err := e.release(s, e.strategy.Liquidity)
	if nil != err {
		return err
	}
	s.treasury.LiquidityTotal += amount
	e.log.Infof("liquidity: %d", amount)
	return nil
}

// run a treasury strategy and pay its result to the admin
//
// the strategy must remove from custody exactly what it returns
func (e *Engine) release(s *state, strategy func(*record.Treasury) uint64) (uint64, error) {
	if err := s.requireAdmin(); nil != err {
		return 0, err
	}

	before := s.treasury.NativeHeld()
	amount := strategy(s.treasury)
	after := s.treasury.NativeHeld()

	if after > before || before-after != amount {
		return 0, fault.ErrUnbalancedTreasury
	}
	if 0 == amount {
		return 0, fault.ErrInsufficientBalance
	}
	return amount, s.payNative(s.config.Admin, amount)
}
