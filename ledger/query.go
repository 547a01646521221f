// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/record"
)

// read only access to committed state

// Config - the global configuration
func (e *Engine) Config() (*record.Config, error) {
	buffer, err := e.store.Pool.Config.Get(singletonKey)
	if fault.ErrRecordNotFound == err {
		return nil, fault.ErrNotInitialised
	}
	if nil != err {
		return nil, err
	}
	return record.UnpackConfig(buffer)
}

// Treasury - the treasury balances
func (e *Engine) Treasury() (*record.Treasury, error) {
	buffer, err := e.store.Pool.Treasury.Get(singletonKey)
	if fault.ErrRecordNotFound == err {
		return nil, fault.ErrNotInitialised
	}
	if nil != err {
		return nil, err
	}
	return record.UnpackTreasury(buffer)
}

// Board - the occupancy bitmap
func (e *Engine) Board() (record.Bitmap, error) {
	board := record.Bitmap{}
	buffer, err := e.store.Pool.Board.Get(singletonKey)
	if fault.ErrRecordNotFound == err {
		return board, fault.ErrNotInitialised
	}
	if nil != err {
		return board, err
	}
	if record.BoardSize != len(buffer) {
		return board, fault.ErrInvalidRecordSize
	}
	copy(board[:], buffer)
	return board, nil
}

// Miner - an authority's mining record
func (e *Engine) Miner(authority account.Address) (*record.Miner, error) {
	buffer, err := e.store.Pool.Miner.Get(authority.Bytes())
	if nil != err {
		return nil, err
	}
	return record.UnpackMiner(buffer)
}

// Stake - an authority's staking record
func (e *Engine) Stake(authority account.Address) (*record.Stake, error) {
	buffer, err := e.store.Pool.Stake.Get(authority.Bytes())
	if nil != err {
		return nil, err
	}
	return record.UnpackStake(buffer)
}

// Automation - an authority's automation record
func (e *Engine) Automation(authority account.Address) (*record.Automation, error) {
	buffer, err := e.store.Pool.Automation.Get(authority.Bytes())
	if nil != err {
		return nil, err
	}
	return record.UnpackAutomation(buffer)
}

// Round - an open round
func (e *Engine) Round(id uint64) (*record.Round, error) {
	buffer, err := e.store.Pool.Round.Get(record.IDKey(id))
	if nil != err {
		return nil, err
	}
	return record.UnpackRound(buffer)
}

// Var - an entropy commitment
func (e *Engine) Var(id uint64) (*record.Var, error) {
	buffer, err := e.store.Pool.Var.Get(record.IDKey(id))
	if nil != err {
		return nil, err
	}
	return record.UnpackVar(buffer)
}
