// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fpowd/record"
)

// reset - open the next round
//
// the board is snapshot into the round record and then cleared; the
// squares deployed in the closing round are credited on the next
// checkpoint of each miner
func (e *Engine) reset(s *state) error {
	if err := s.requireAdmin(); nil != err {
		return err
	}

	id, err := add(s.config.RoundID, 1)
	if nil != err {
		return err
	}

	board, err := s.loadBoard()
	if nil != err {
		return err
	}

	r := &record.Round{
		ID:         id,
		Exists:     true,
		Board:      *board,
		OpenedAt:   s.call.Timestamp,
		AlgoRate:   s.config.AlgoRate,
		FpowRate:   s.config.FpowRate,
		FeeBps:     s.config.FeeBps,
		Occupied:   uint64(board.Count()),
		MiningPool: s.treasury.MiningPool,
		OpenedBy:   s.call.Sender,
	}
	if err := s.create(s.pools.Round, record.IDKey(id), r.Pack()); nil != err {
		return err
	}

	*board = record.Bitmap{}
	s.boardChanged = true

	s.config.RoundID = id
	s.config.LastResetAt = s.call.Timestamp

	e.log.Infof("round: %d  occupied: %d  pool: %d", id, r.Occupied, r.MiningPool)
	return nil
}

// close - destroy a round record
func (e *Engine) close(s *state, op Close) error {
	if err := s.requireAdmin(); nil != err {
		return err
	}
	if err := s.trx.Delete(s.pools.Round, record.IDKey(op.RoundID)); nil != err {
		return err
	}
	e.log.Infof("round: %d closed", op.RoundID)
	return nil
}
