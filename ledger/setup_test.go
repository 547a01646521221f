// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/settlement"
	"github.com/bitmark-inc/fpowd/storage"
	"github.com/bitmark-inc/logger"
)

const (
	testingDirName = "testing"
	tokenAssetID   = 42
)

var (
	admin       = account.Address{0xad}
	application = account.Address{0xa0}
	alice       = account.Address{0x01}
	bob         = account.Address{0x02}
)

var parameters = ledger.Parameters{
	FeeBps:       100,
	AlgoRate:     100,
	FpowRate:     1000,
	YieldRateBps: 100,
	BuybackBps:   5000,
}

// Test main entrypoint
func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "trace",
		},
	}
	_ = logger.Initialise(logging)

	result := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(result)
}

// an in-memory engine created by admin, journaling its transfers
func setupEngine(t *testing.T, options ...ledger.Option) (*ledger.Engine, *storage.Store) {
	s, err := storage.OpenMemory(0)
	require.Nil(t, err, "open")

	journal := settlement.NewJournal(logger.New("journal"), s.Pool.Outbound)
	e := ledger.New(s, journal, options...)

	_, err = e.Apply(context.Background(), &ledger.Call{
		Sender: admin,
		Operation: ledger.Create{
			TokenAssetID: tokenAssetID,
			Application:  application,
			Parameters:   parameters,
		},
	})
	require.Nil(t, err, "create")
	return e, s
}

// a plain call
func call(sender account.Address, op ledger.Operation) *ledger.Call {
	return &ledger.Call{
		Sender:    sender,
		Operation: op,
	}
}

// a call preceded by its companion transfer
func attached(sender account.Address, kind settlement.Kind, amount uint64, op ledger.Operation) *ledger.Call {
	assetID := uint64(0)
	if settlement.AssetTransfer == kind {
		assetID = tokenAssetID
	}
	return &ledger.Call{
		Sender: sender,
		Group: settlement.Group{
			{Kind: kind, Sender: sender, Receiver: application, Amount: amount, AssetID: assetID},
			{Kind: settlement.ApplicationCall, Sender: sender, Receiver: application},
		},
		GroupIndex: 1,
		Operation:  op,
	}
}

func apply(t *testing.T, e *ledger.Engine, c *ledger.Call) *ledger.Receipt {
	receipt, err := e.Apply(context.Background(), c)
	require.Nil(t, err, c.Operation.Name())
	return receipt
}

func applyError(e *ledger.Engine, c *ledger.Call) error {
	_, err := e.Apply(context.Background(), c)
	return err
}

// native currency held in records plus paid out must equal what came in
func requireNativeBalanced(t *testing.T, e *ledger.Engine, miners []account.Address, automations []account.Address) {
	tr, err := e.Treasury()
	require.Nil(t, err, "treasury")

	total := tr.NativeHeld() + tr.NativePaid
	for _, a := range miners {
		m, err := e.Miner(a)
		if nil == err {
			total += m.RewardsAlgo
		}
	}
	for _, a := range automations {
		auto, err := e.Automation(a)
		if nil == err {
			total += auto.Balance
		}
	}
	require.Equal(t, tr.NativeDeposited, total, "native balance")
}

// staked tokens and unclaimed mining rewards within the cap
func requireSupplyBounded(t *testing.T, e *ledger.Engine, miners []account.Address, stakers []account.Address) {
	c, err := e.Config()
	require.Nil(t, err, "config")
	tr, err := e.Treasury()
	require.Nil(t, err, "treasury")

	total := uint64(0)
	for _, a := range miners {
		m, err := e.Miner(a)
		if nil == err {
			total += m.RewardsFpow
		}
	}
	require.Equal(t, tr.FpowUnclaimed, total, "unclaimed fpow")
	staked := uint64(0)
	for _, a := range stakers {
		st, err := e.Stake(a)
		if nil == err {
			staked += st.Balance
		}
	}
	require.Equal(t, tr.TotalStaked, staked, "staked")
	require.True(t, staked+total <= c.SupplyCap, "supply cap")
	require.True(t, tr.FpowEmitted <= c.SupplyCap, "emitted")
}
