// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/record"
	"github.com/bitmark-inc/fpowd/settlement"
)

// the low byte of the mask is the square count for the random strategy
const randomCountMask = 0xff

// all parameters zero is the request to close the record
func (op Automate) isClose() bool {
	return 0 == op.Amount && 0 == op.DepositAmount && 0 == op.Fee &&
		0 == op.Mask && 0 == op.Strategy && 0 == op.Reload
}

// automate - create, overwrite or close the caller's automation
//
// an optional companion payment is added to the balance
func (e *Engine) automate(s *state, op Automate) error {
	authority := s.call.Sender
	key := authority.Bytes()

	funding, err := s.optionalInbound(settlement.Payment)
	if nil != err {
		return err
	}
	if s.treasury.NativeDeposited, err = add(s.treasury.NativeDeposited, funding); nil != err {
		return err
	}

	if op.isClose() {
		a, err := s.readAutomation(authority)
		if nil != err {
			return err
		}
		if err := s.trx.Delete(s.pools.Automation, key); nil != err {
			return err
		}
		refund, err := add(a.Balance, funding)
		if nil != err {
			return err
		}
		e.log.Debugf("automation closed: %s  refund: %d", authority, refund)
		return s.payNative(authority, refund)
	}

	if !op.Strategy.IsValid() {
		return fault.ErrInvalidStrategy
	}

	a := &record.Automation{
		Authority: authority,
	}
	if s.trx.Exists(s.pools.Automation, key) {
		previous, err := s.readAutomation(authority)
		if nil != err {
			return err
		}
		a.Balance = previous.Balance
		a.ReloadedTotal = previous.ReloadedTotal
	} else if err := s.trx.Create(s.pools.Automation, key, record.AutomationSize); nil != err {
		return err
	}

	a.Amount = op.Amount
	a.DepositAmount = op.DepositAmount
	a.Fee = op.Fee
	a.Mask = op.Mask
	a.Strategy = op.Strategy
	a.Reload = op.Reload
	a.UpdatedAt = s.call.Timestamp

	if a.Balance, err = add(a.Balance, funding); nil != err {
		return err
	}

	return s.writeAutomation(a)
}

// executeAutomation - deploy for an automated authority out of its
// balance; the fee goes to the caller and the record is closed, with the
// remainder refunded, once it cannot pay for another square
func (e *Engine) executeAutomation(s *state, op Execute) error {
	authority := s.call.authority()

	a, err := s.readAutomation(authority)
	if nil != err {
		return err
	}
	if 0 == a.Amount {
		return fault.ErrInvalidAmount
	}

	board, err := s.loadBoard()
	if nil != err {
		return err
	}

	m, err := e.enlist(s, authority)
	if nil != err {
		return err
	}

	var selected record.Bitmap
	switch a.Strategy {
	case record.StrategyPreferred:
		selected = record.BitmapFromUint64(a.Mask).Without(*board)
	case record.StrategyRandom:
		selected = randomSquares(authority, s.config.RoundID, *board, int(a.Mask&randomCountMask))
	case record.StrategyDiscretionary:
		if op.Mask.IsEmpty() {
			return fault.ErrEmptyMask
		}
		selected = op.Mask.Without(*board)
	default:
		return fault.ErrInvalidStrategy
	}
	if selected.IsEmpty() {
		return fault.ErrSquareConflict
	}

	// lowest squares first while the balance covers them and the fee
	total := uint64(0)
	for _, square := range selected.Squares() {
		cost, err := add(total, a.Amount)
		if nil == err {
			cost, err = add(cost, a.Fee)
		}
		if nil != err || cost > a.Balance {
			selected.Clear(square)
			continue
		}
		total += a.Amount
	}
	if 0 == total {
		return fault.ErrInsufficientBalance
	}

	if err := e.occupy(s, m, selected, total); nil != err {
		return err
	}
	if err := e.distribute(s, total); nil != err {
		return err
	}
	if err := s.writeMiner(m); nil != err {
		return err
	}

	a.Balance -= total + a.Fee
	if 0 != a.Fee {
		if err := s.payNative(s.call.Sender, a.Fee); nil != err {
			return err
		}
	}

	e.log.Debugf("execute: %s  squares: %d  amount: %d  balance: %d", authority, selected.Count(), total, a.Balance)

	next, err := add(a.Amount, a.Fee)
	if nil != err || a.Balance < next {
		if err := s.trx.Delete(s.pools.Automation, authority.Bytes()); nil != err {
			return err
		}
		e.log.Debugf("automation closed: %s  refund: %d", authority, a.Balance)
		return s.payNative(authority, a.Balance)
	}

	a.UpdatedAt = s.call.Timestamp
	return s.writeAutomation(a)
}

// randomSquares - pick up to count free squares from a seed of the
// authority and round
//
// each free square is taken when its byte of the seed, scaled by the
// squares still to be visited, falls below the number still needed;
// this always yields exactly min(count, free) squares
func randomSquares(authority account.Address, round uint64, board record.Bitmap, count int) record.Bitmap {
	var seed [record.Squares]byte
	sha3.ShakeSum256(seed[:], append(authority.Bytes(), record.IDKey(round)...))

	free := make([]int, 0, record.Squares)
	for square := 0; square < record.Squares; square++ {
		if !board.IsSet(square) {
			free = append(free, square)
		}
	}

	needed := count
	if needed > len(free) {
		needed = len(free)
	}

	selected := record.Bitmap{}
	for i, square := range free {
		if 0 == needed {
			break
		}
		remaining := len(free) - i
		if int(seed[i])*remaining < needed*256 {
			selected.Set(square)
			needed--
		}
	}
	return selected
}

// reloadAlgo - top up the automation balance from the miner's rewards
// when it has fallen below the reload threshold
func (e *Engine) reloadAlgo(s *state) error {
	authority := s.call.authority()

	a, err := s.readAutomation(authority)
	if nil != err {
		return err
	}
	if 0 == a.Reload {
		return fault.ErrReloadDisabled
	}
	m, err := s.readMiner(authority)
	if nil != err {
		return err
	}

	if a.Balance >= a.DepositAmount || 0 == m.RewardsAlgo {
		return nil
	}

	amount := m.RewardsAlgo
	if a.Balance, err = add(a.Balance, amount); nil != err {
		return err
	}
	a.ReloadedTotal += amount
	a.UpdatedAt = s.call.Timestamp
	m.RewardsAlgo = 0

	e.log.Debugf("reload: %s  amount: %d  balance: %d", authority, amount, a.Balance)
	if err := s.writeMiner(m); nil != err {
		return err
	}
	return s.writeAutomation(a)
}
