// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/messagebus"
	"github.com/bitmark-inc/fpowd/record"
	"github.com/bitmark-inc/fpowd/settlement"
	"github.com/bitmark-inc/fpowd/settlement/mocks"
	"github.com/bitmark-inc/fpowd/storage"
	"github.com/bitmark-inc/logger"
)

func TestCreate(t *testing.T) {
	e, s := setupEngine(t)
	defer s.Close()

	c, err := e.Config()
	require.Nil(t, err, "config")
	assert.Equal(t, admin, c.Admin, "admin")
	assert.Equal(t, application, c.Application, "application")
	assert.Equal(t, uint64(tokenAssetID), c.TokenAssetID, "token")
	assert.Equal(t, uint64(0), c.RoundID, "round")
	assert.Equal(t, uint64(record.MaxSupply), c.SupplyCap, "default cap")

	board, err := e.Board()
	require.Nil(t, err, "board")
	assert.True(t, board.IsEmpty(), "empty board")

	err = applyError(e, call(alice, ledger.Create{Application: application}))
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second create")

	c, err = e.Config()
	require.Nil(t, err, "config")
	assert.Equal(t, admin, c.Admin, "admin unchanged")
}

func TestNotInitialised(t *testing.T) {
	s, err := storage.OpenMemory(0)
	require.Nil(t, err, "open")
	defer s.Close()

	e := ledger.New(s, settlement.NewJournal(logger.New("journal"), s.Pool.Outbound))

	_, err = e.Config()
	assert.Equal(t, fault.ErrNotInitialised, err, "config")

	err = applyError(e, call(alice, ledger.Checkpoint{}))
	assert.Equal(t, fault.ErrNotInitialised, err, "checkpoint")

	err = applyError(e, call(alice, ledger.Create{}))
	assert.Equal(t, fault.ErrInvalidAccount, err, "no application")

	// opting in needs no state
	_, err = e.Apply(context.Background(), &ledger.Call{Sender: alice, OnCompletion: ledger.OptIn})
	assert.Nil(t, err, "opt in")
}

func TestLifecycle(t *testing.T) {
	e, s := setupEngine(t)
	defer s.Close()

	for _, action := range []ledger.OnCompletion{ledger.OptIn, ledger.CloseOut, ledger.ClearState} {
		receipt, err := e.Apply(context.Background(), &ledger.Call{Sender: alice, OnCompletion: action})
		assert.Nil(t, err, action.String())
		assert.Equal(t, action.String(), receipt.Operation, "receipt")
	}

	for _, action := range []ledger.OnCompletion{ledger.UpdateApplication, ledger.DeleteApplication} {
		_, err := e.Apply(context.Background(), &ledger.Call{Sender: alice, OnCompletion: action})
		assert.Equal(t, fault.ErrUnauthorised, err, action.String())

		_, err = e.Apply(context.Background(), &ledger.Call{Sender: admin, OnCompletion: action})
		assert.Nil(t, err, action.String())
	}

	_, err := e.Apply(context.Background(), &ledger.Call{Sender: admin, OnCompletion: ledger.OnCompletion(9)})
	assert.Equal(t, fault.ErrInvalidOnCompletion, err, "unknown action")
}

func TestApplyCancelled(t *testing.T) {
	e, s := setupEngine(t)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Apply(ctx, call(admin, ledger.Reset{}))
	assert.Equal(t, context.Canceled, err, "cancelled")

	c, err := e.Config()
	require.Nil(t, err, "config")
	assert.Equal(t, uint64(0), c.RoundID, "round unchanged")
}

func TestLog(t *testing.T) {
	bus := messagebus.New(10)
	e, s := setupEngine(t, ledger.WithBus(bus))
	defer s.Close()

	// drain the create receipt
	<-bus.Chan()

	receipt := apply(t, e, call(alice, ledger.Log{Message: "hello"}))
	assert.Equal(t, []string{"hello"}, receipt.Logs, "logs")
	assert.Equal(t, 0, len(receipt.Transfers), "no transfers")

	message := <-bus.Chan()
	assert.Equal(t, ledger.BusLog, message.Command, "log command")
	assert.Equal(t, "hello", message.Item, "log item")

	message = <-bus.Chan()
	assert.Equal(t, ledger.BusReceipt, message.Command, "receipt command")
	assert.Equal(t, receipt, message.Item, "receipt item")
}

func TestSettlementFailureRollsBack(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s, err := storage.OpenMemory(0)
	require.Nil(t, err, "open")
	defer s.Close()

	settler := mocks.NewMockSettler(ctl)
	gomock.InOrder(
		// create, deploy, reset, checkpoint
		settler.EXPECT().Settle(gomock.Any(), gomock.Any()).Return(nil).Times(4),
		settler.EXPECT().Settle(gomock.Any(), gomock.Any()).DoAndReturn(
			func(trx storage.Transaction, batch *settlement.Batch) error {
				assert.Equal(t, uint64(1), batch.Round, "batch round")
				assert.Equal(t, uint64(200), batch.Total(settlement.Payment), "claim amount")
				return fault.ErrOutboundTransferFailed
			}),
	)

	e := ledger.New(s, settler)
	apply(t, e, call(admin, ledger.Create{
		TokenAssetID: tokenAssetID,
		Application:  application,
		Parameters:   parameters,
	}))
	apply(t, e, attached(alice, settlement.Payment, 1000000, ledger.Deploy{Amount: 1000000, Mask: record.BitmapFromUint32(0x05)}))
	apply(t, e, call(admin, ledger.Reset{}))
	apply(t, e, call(alice, ledger.Checkpoint{}))

	err = applyError(e, call(alice, ledger.ClaimAlgo{}))
	assert.Equal(t, fault.ErrOutboundTransferFailed, err, "claim")

	m, err := e.Miner(alice)
	require.Nil(t, err, "miner")
	assert.Equal(t, uint64(200), m.RewardsAlgo, "reward still claimable")

	tr, err := e.Treasury()
	require.Nil(t, err, "treasury")
	assert.Equal(t, uint64(0), tr.NativePaid, "nothing paid")
}

func TestUpdate(t *testing.T) {
	e, s := setupEngine(t)
	defer s.Close()

	err := e.Update(func(trx storage.Transaction) error {
		return fault.ErrRecordNotFound
	})
	assert.Equal(t, fault.ErrRecordNotFound, err, "update error")

	// transaction was released
	apply(t, e, call(admin, ledger.Reset{}))
}
