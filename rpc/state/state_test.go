// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/record"
	"github.com/bitmark-inc/fpowd/rpc/fixtures"
	"github.com/bitmark-inc/fpowd/rpc/state"
	"github.com/bitmark-inc/fpowd/settlement"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func TestSingletons(t *testing.T) {
	engine, _, store, err := fixtures.Engine()
	require.Nil(t, err, "engine")
	defer store.Close()

	s := state.New(logger.New(fixtures.LogCategory), engine)

	config := record.Config{}
	err = s.Config(&state.Arguments{}, &config)
	require.Nil(t, err, "config")
	assert.Equal(t, fixtures.Admin, config.Admin, "admin")
	assert.Equal(t, uint64(fixtures.TokenAssetID), config.TokenAssetID, "asset")

	treasury := record.Treasury{}
	err = s.Treasury(&state.Arguments{}, &treasury)
	require.Nil(t, err, "treasury")
	assert.Equal(t, uint64(0), treasury.NativeDeposited, "nothing deposited")

	board := state.BoardReply{}
	err = s.Board(&state.Arguments{}, &board)
	require.Nil(t, err, "board")
	assert.True(t, board.Board.IsEmpty(), "empty board")
	assert.Equal(t, 0, len(board.Squares), "no squares")
}

func TestRecords(t *testing.T) {
	engine, _, store, err := fixtures.Engine()
	require.Nil(t, err, "engine")
	defer store.Close()

	s := state.New(logger.New(fixtures.LogCategory), engine)

	miner := record.Miner{}
	err = s.Miner(&state.AccountArguments{Account: fixtures.Alice}, &miner)
	assert.Equal(t, fault.ErrRecordNotFound, err, "no miner yet")

	_, err = engine.Apply(context.Background(), &ledger.Call{
		Sender: fixtures.Alice,
		Group: settlement.Group{
			{Kind: settlement.Payment, Sender: fixtures.Alice, Receiver: fixtures.Application, Amount: 5000},
			{Kind: settlement.ApplicationCall, Sender: fixtures.Alice, Receiver: fixtures.Application},
		},
		GroupIndex: 1,
		Operation:  ledger.Deploy{Amount: 5000, Mask: record.BitmapFromUint32(0x09)},
	})
	require.Nil(t, err, "deploy")

	err = s.Miner(&state.AccountArguments{Account: fixtures.Alice}, &miner)
	require.Nil(t, err, "miner")
	assert.Equal(t, uint64(5000), miner.Deployed, "deployed")

	board := state.BoardReply{}
	err = s.Board(&state.Arguments{}, &board)
	require.Nil(t, err, "board")
	assert.Equal(t, []int{0, 3}, board.Squares, "occupied squares")

	_, err = engine.Apply(context.Background(), &ledger.Call{Sender: fixtures.Admin, Operation: ledger.Reset{}})
	require.Nil(t, err, "reset")

	round := record.Round{}
	err = s.Round(&state.IDArguments{ID: 1}, &round)
	require.Nil(t, err, "round")
	assert.Equal(t, uint64(1), round.ID, "id")
	assert.Equal(t, uint64(2), round.Occupied, "occupied")

	err = s.Round(&state.IDArguments{ID: 2}, &round)
	assert.Equal(t, fault.ErrRecordNotFound, err, "unknown round")

	stake := record.Stake{}
	err = s.Stake(&state.AccountArguments{Account: fixtures.Alice}, &stake)
	assert.Equal(t, fault.ErrRecordNotFound, err, "no stake")

	automation := record.Automation{}
	err = s.Automation(&state.AccountArguments{Account: fixtures.Alice}, &automation)
	assert.Equal(t, fault.ErrRecordNotFound, err, "no automation")

	v := record.Var{}
	err = s.Var(&state.IDArguments{ID: 1}, &v)
	assert.Equal(t, fault.ErrRecordNotFound, err, "no var")
}
