// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/record"
	"github.com/bitmark-inc/fpowd/settlement"
	"github.com/bitmark-inc/fpowd/storage"
)

// key of the config, treasury and board records within their pools
var singletonKey = []byte{}

// state - everything one call reads and writes
//
// the singleton records are decoded once and written back by flush,
// per-authority records go straight through the transaction
type state struct {
	trx   storage.Transaction
	pools *storage.Pools

	call *Call

	config   *record.Config
	treasury *record.Treasury
	board    *record.Bitmap

	boardChanged bool

	batch settlement.Batch
	logs  []string
}

func newState(trx storage.Transaction, pools *storage.Pools, call *Call) *state {
	return &state{
		trx:   trx,
		pools: pools,
		call:  call,
		batch: settlement.Batch{
			Timestamp: call.Timestamp,
		},
	}
}

// load the config and treasury; fails if the system was never created
func (s *state) load() error {
	if !s.trx.Exists(s.pools.Config, singletonKey) {
		return fault.ErrNotInitialised
	}

	buffer, err := s.trx.ReadAll(s.pools.Config, singletonKey)
	if nil != err {
		return err
	}
	s.config, err = record.UnpackConfig(buffer)
	if nil != err {
		return err
	}

	buffer, err = s.trx.ReadAll(s.pools.Treasury, singletonKey)
	if nil != err {
		return err
	}
	s.treasury, err = record.UnpackTreasury(buffer)
	return err
}

// the board is only read by operations that need it
func (s *state) loadBoard() (*record.Bitmap, error) {
	if nil != s.board {
		return s.board, nil
	}
	buffer, err := s.trx.ReadAll(s.pools.Board, singletonKey)
	if nil != err {
		return nil, err
	}
	if record.BoardSize != len(buffer) {
		return nil, fault.ErrInvalidRecordSize
	}
	board := record.Bitmap{}
	copy(board[:], buffer)
	s.board = &board
	return s.board, nil
}

// write back the singleton records
func (s *state) flush() error {
	if nil == s.config {
		return nil
	}
	if err := s.trx.Write(s.pools.Config, singletonKey, 0, s.config.Pack()); nil != err {
		return err
	}
	if err := s.trx.Write(s.pools.Treasury, singletonKey, 0, s.treasury.Pack()); nil != err {
		return err
	}
	if s.boardChanged {
		return s.trx.Write(s.pools.Board, singletonKey, 0, s.board[:])
	}
	return nil
}

// the companion transfer of the call
func (s *state) inbound(kind settlement.Kind, minimum uint64) (uint64, error) {
	assetID := uint64(0)
	if settlement.AssetTransfer == kind {
		assetID = s.config.TokenAssetID
	}
	entry, err := settlement.RequireInbound(s.call.Group, s.call.GroupIndex, kind, s.config.Application, assetID, minimum)
	if nil != err {
		return 0, err
	}
	return entry.Amount, nil
}

// an optional companion transfer, zero when the call carries none
func (s *state) optionalInbound(kind settlement.Kind) (uint64, error) {
	if s.call.GroupIndex < 1 || s.call.GroupIndex >= len(s.call.Group) {
		return 0, nil
	}
	if s.call.Group[s.call.GroupIndex-1].Kind != kind {
		return 0, nil
	}
	return s.inbound(kind, 0)
}

// pay native currency out of treasury custody
func (s *state) payNative(receiver account.Address, amount uint64) error {
	paid, err := add(s.treasury.NativePaid, amount)
	if nil != err {
		return err
	}
	s.treasury.NativePaid = paid
	s.batch.Issue(settlement.Payment, receiver, amount, 0)
	return nil
}

// transfer tokens out of application custody
func (s *state) payToken(receiver account.Address, amount uint64) {
	s.batch.Issue(settlement.AssetTransfer, receiver, amount, s.config.TokenAssetID)
}

// per-authority record access

func (s *state) readMiner(authority account.Address) (*record.Miner, error) {
	buffer, err := s.trx.ReadAll(s.pools.Miner, authority.Bytes())
	if nil != err {
		return nil, err
	}
	return record.UnpackMiner(buffer)
}

func (s *state) writeMiner(m *record.Miner) error {
	return s.trx.Write(s.pools.Miner, m.Authority.Bytes(), 0, m.Pack())
}

func (s *state) readStake(authority account.Address) (*record.Stake, error) {
	buffer, err := s.trx.ReadAll(s.pools.Stake, authority.Bytes())
	if nil != err {
		return nil, err
	}
	return record.UnpackStake(buffer)
}

func (s *state) writeStake(st *record.Stake) error {
	return s.trx.Write(s.pools.Stake, st.Authority.Bytes(), 0, st.Pack())
}

func (s *state) readAutomation(authority account.Address) (*record.Automation, error) {
	buffer, err := s.trx.ReadAll(s.pools.Automation, authority.Bytes())
	if nil != err {
		return nil, err
	}
	return record.UnpackAutomation(buffer)
}

func (s *state) writeAutomation(a *record.Automation) error {
	return s.trx.Write(s.pools.Automation, a.Authority.Bytes(), 0, a.Pack())
}

// create and write a new record in one step
func (s *state) create(pool *storage.PoolHandle, key []byte, buffer []byte) error {
	if err := s.trx.Create(pool, key, len(buffer)); nil != err {
		return err
	}
	return s.trx.Write(pool, key, 0, buffer)
}
