// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fpowd/record"
)

// newVar - store an entropy commitment
func (e *Engine) newVar(s *state, op NewVar) error {
	if err := s.requireAdmin(); nil != err {
		return err
	}

	v := &record.Var{
		ID:           op.ID,
		Commitment:   op.Commitment,
		SampleCount:  op.SampleCount,
		CreatedRound: s.config.RoundID,
		CreatedAt:    s.call.Timestamp,
		Creator:      s.call.Sender,
	}
	if err := s.create(s.pools.Var, record.IDKey(op.ID), v.Pack()); nil != err {
		return err
	}
	s.config.VarCount += 1

	e.log.Infof("var: %d  samples: %d  commitment: %x", v.ID, v.SampleCount, v.Commitment)
	return nil
}
