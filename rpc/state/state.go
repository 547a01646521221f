// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/record"
	"github.com/bitmark-inc/fpowd/rpc/ratelimit"
)

const (
	rateLimitState = 500
	rateBurstState = 200
)

// State - read only access to committed records
type State struct {
	Log     *logger.L
	Limiter *ratelimit.Limiter
	Engine  *ledger.Engine
}

// New - create the state query service
func New(log *logger.L, engine *ledger.Engine) *State {
	return &State{
		Log:     log,
		Limiter: ratelimit.New(rateLimitState, rateBurstState, 1),
		Engine:  engine,
	}
}

// ---

// Arguments - empty arguments for singleton records
type Arguments struct{}

// AccountArguments - select a per-authority record
type AccountArguments struct {
	Account account.Address `json:"account"`
}

// IDArguments - select a round or an entropy commitment
type IDArguments struct {
	ID uint64 `json:"id,string"`
}

// BoardReply - occupancy bitmap and the occupied squares
type BoardReply struct {
	Board   record.Bitmap `json:"board"`
	Squares []int         `json:"squares"`
}

// Config - global configuration
func (state *State) Config(_ *Arguments, reply *record.Config) error {
	if err := state.Limiter.Limit(); nil != err {
		return err
	}
	c, err := state.Engine.Config()
	if nil != err {
		return err
	}
	*reply = *c
	return nil
}

// Treasury - treasury balances
func (state *State) Treasury(_ *Arguments, reply *record.Treasury) error {
	if err := state.Limiter.Limit(); nil != err {
		return err
	}
	t, err := state.Engine.Treasury()
	if nil != err {
		return err
	}
	*reply = *t
	return nil
}

// Board - current occupancy
func (state *State) Board(_ *Arguments, reply *BoardReply) error {
	if err := state.Limiter.Limit(); nil != err {
		return err
	}
	board, err := state.Engine.Board()
	if nil != err {
		return err
	}
	reply.Board = board
	reply.Squares = board.Squares()
	return nil
}

// Miner - mining record of an authority
func (state *State) Miner(arguments *AccountArguments, reply *record.Miner) error {
	if err := state.Limiter.Limit(); nil != err {
		return err
	}
	m, err := state.Engine.Miner(arguments.Account)
	if nil != err {
		return err
	}
	*reply = *m
	return nil
}

// Stake - staking record of an authority
func (state *State) Stake(arguments *AccountArguments, reply *record.Stake) error {
	if err := state.Limiter.Limit(); nil != err {
		return err
	}
	s, err := state.Engine.Stake(arguments.Account)
	if nil != err {
		return err
	}
	*reply = *s
	return nil
}

// Automation - automation record of an authority
func (state *State) Automation(arguments *AccountArguments, reply *record.Automation) error {
	if err := state.Limiter.Limit(); nil != err {
		return err
	}
	a, err := state.Engine.Automation(arguments.Account)
	if nil != err {
		return err
	}
	*reply = *a
	return nil
}

// Round - an opened round
func (state *State) Round(arguments *IDArguments, reply *record.Round) error {
	if err := state.Limiter.Limit(); nil != err {
		return err
	}
	r, err := state.Engine.Round(arguments.ID)
	if nil != err {
		return err
	}
	*reply = *r
	return nil
}

// Var - an entropy commitment
func (state *State) Var(arguments *IDArguments, reply *record.Var) error {
	if err := state.Limiter.Limit(); nil != err {
		return err
	}
	v, err := state.Engine.Var(arguments.ID)
	if nil != err {
		return err
	}
	*reply = *v
	return nil
}
