// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"

	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/record"
	"github.com/bitmark-inc/fpowd/settlement"
)

var zeroReward = make([]byte, 8)

// deploy - claim squares for the authority against a native payment
func (e *Engine) deploy(s *state, op Deploy) error {
	if 0 == op.Amount {
		return fault.ErrInvalidAmount
	}
	if op.Mask.IsEmpty() {
		return fault.ErrEmptyMask
	}

	credited, err := s.inbound(settlement.Payment, op.Amount)
	if nil != err {
		return err
	}

	authority := s.call.authority()
	m, err := e.enlist(s, authority)
	if nil != err {
		return err
	}

	if err := e.occupy(s, m, op.Mask, credited); nil != err {
		return err
	}
	if err := e.collect(s, credited); nil != err {
		return err
	}

	e.log.Debugf("deploy: %s  amount: %d  squares: %d", authority, credited, m.Owned.Count())
	return s.writeMiner(m)
}

// enlist - fetch and accrue an existing miner or create a new one
func (e *Engine) enlist(s *state, authority account.Address) (*record.Miner, error) {
	key := authority.Bytes()
	if s.trx.Exists(s.pools.Miner, key) {
		m, err := s.readMiner(authority)
		if nil != err {
			return nil, err
		}
		if err := e.accrue(s, m); nil != err {
			return nil, err
		}
		return m, nil
	}

	if err := s.trx.Create(s.pools.Miner, key, record.MinerSize); nil != err {
		return nil, err
	}
	return &record.Miner{
		Authority:       authority,
		CheckpointRound: s.config.RoundID,
	}, nil
}

// occupy - place the miner on the board for the current round
func (e *Engine) occupy(s *state, m *record.Miner, mask record.Bitmap, amount uint64) error {
	board, err := s.loadBoard()
	if nil != err {
		return err
	}

	// first come: a square held by anyone else cannot be taken
	conflict := mask.Intersect(*board).Without(m.Owned)
	if !conflict.IsEmpty() {
		return fault.ErrSquareConflict
	}

	m.Owned = m.Owned.Union(mask)
	m.Checkpoint = m.Owned
	*board = board.Union(mask)
	s.boardChanged = true

	if m.Deployed, err = add(m.Deployed, amount); nil != err {
		return err
	}
	if s.config.TotalDeployed, err = add(s.config.TotalDeployed, amount); nil != err {
		return err
	}
	m.LastRound = s.config.RoundID
	return nil
}

// collect - take in a native payment and distribute it
func (e *Engine) collect(s *state, amount uint64) error {
	var err error
	if s.treasury.NativeDeposited, err = add(s.treasury.NativeDeposited, amount); nil != err {
		return err
	}
	return e.distribute(s, amount)
}

// distribute - split native funds already held between the fee reserves
// and the mining pool
func (e *Engine) distribute(s *state, amount uint64) error {
	t := s.treasury

	fee := mulDiv(amount, s.config.FeeBps, record.DenominatorBps)
	buyback := mulDiv(fee, s.config.BuybackBps, record.DenominatorBps)

	var err error
	if t.BuybackReserve, err = add(t.BuybackReserve, buyback); nil != err {
		return err
	}
	if t.LiquidityReserve, err = add(t.LiquidityReserve, fee-buyback); nil != err {
		return err
	}
	if t.MiningPool, err = add(t.MiningPool, amount-fee); nil != err {
		return err
	}
	t.AdminFees, err = add(t.AdminFees, fee)
	return err
}

// checkpoint - convert elapsed rounds into pending rewards
func (e *Engine) checkpoint(s *state) error {
	m, err := s.readMiner(s.call.authority())
	if nil != err {
		return err
	}
	if err := e.accrue(s, m); nil != err {
		return err
	}
	return s.writeMiner(m)
}

// accrue - credit the rewards for squares held since the last checkpoint
//
// squares are held for the round they were deployed in and expire at
// the next reset. algo is bounded by the funded mining pool, fpow by the
// remaining supply; a second call in the same round finds zero elapsed
// rounds
func (e *Engine) accrue(s *state, m *record.Miner) error {
	c := s.config
	t := s.treasury

	expiry := c.RoundID
	if m.LastRound < c.RoundID {
		expiry = m.LastRound + 1
	}
	elapsed := saturatingSub(expiry, m.CheckpointRound)
	squares := uint64(m.Checkpoint.Count())

	algo, fpow := uint64(0), uint64(0)
	if 0 != elapsed && 0 != squares {
		algo, fpow = e.emission.Accrue(Emission{
			Squares:  squares,
			Elapsed:  elapsed,
			AlgoRate: c.AlgoRate,
			FpowRate: c.FpowRate,
		})
	}

	held, err := add(t.TotalStaked, t.FpowUnclaimed)
	if nil != err {
		return err
	}
	algo = min(algo, t.MiningPool)
	fpow = min(fpow, saturatingSub(c.SupplyCap, t.FpowEmitted))
	fpow = min(fpow, saturatingSub(c.SupplyCap, held))

	if m.RewardsAlgo, err = add(m.RewardsAlgo, algo); nil != err {
		return err
	}
	if m.RewardsFpow, err = add(m.RewardsFpow, fpow); nil != err {
		return err
	}
	if m.LifetimeAlgo, err = add(m.LifetimeAlgo, algo); nil != err {
		return err
	}
	if m.LifetimeFpow, err = add(m.LifetimeFpow, fpow); nil != err {
		return err
	}
	if m.HashWeight, err = add(m.HashWeight, saturatingMul(squares, elapsed)); nil != err {
		return err
	}

	t.MiningPool -= algo
	t.FpowEmitted += fpow
	t.FpowUnclaimed += fpow

	if m.LastRound != c.RoundID {
		m.Owned = record.Bitmap{}
	}
	m.CheckpointRound = c.RoundID
	m.Checkpoint = m.Owned

	if 0 != algo || 0 != fpow {
		e.log.Debugf("accrue: %s  rounds: %d  squares: %d  algo: %d  fpow: %d", m.Authority, elapsed, squares, algo, fpow)
	}
	return nil
}

// take a pending reward: read and zero the field in one step
func (s *state) takeReward(offset int) (uint64, error) {
	key := s.call.Sender.Bytes()
	if !s.trx.Exists(s.pools.Miner, key) {
		return 0, fault.ErrRecordNotFound
	}
	buffer, err := s.trx.Read(s.pools.Miner, key, offset, len(zeroReward))
	if nil != err {
		return 0, err
	}
	if bytes.Equal(zeroReward, buffer) {
		return 0, nil
	}
	if err := s.trx.Write(s.pools.Miner, key, offset, zeroReward); nil != err {
		return 0, err
	}
	return record.Uint64(buffer), nil
}

// claimAlgo - pay the caller's pending native rewards
func (e *Engine) claimAlgo(s *state) error {
	amount, err := s.takeReward(record.MinerRewardsAlgoOffset)
	if nil != err || 0 == amount {
		return err
	}
	return s.payNative(s.call.Sender, amount)
}

// claimFpow - transfer the caller's pending token rewards
func (e *Engine) claimFpow(s *state) error {
	amount, err := s.takeReward(record.MinerRewardsFpowOffset)
	if nil != err || 0 == amount {
		return err
	}
	if s.treasury.FpowUnclaimed, err = sub(s.treasury.FpowUnclaimed, amount); nil != err {
		return err
	}
	s.payToken(s.call.Sender, amount)
	return nil
}
