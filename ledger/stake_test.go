// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/settlement"
	"github.com/bitmark-inc/logger"
)

func TestDepositWithdraw(t *testing.T) {
	e, s := setupEngine(t)
	defer s.Close()

	apply(t, e, attached(alice, settlement.AssetTransfer, 1000, ledger.Deposit{Amount: 1000}))

	st, err := e.Stake(alice)
	require.Nil(t, err, "stake")
	assert.Equal(t, uint64(1000), st.Balance, "staked")

	err = applyError(e, call(alice, ledger.Withdraw{Amount: 1500}))
	assert.Equal(t, fault.ErrInsufficientBalance, err, "over withdraw")

	receipt := apply(t, e, call(alice, ledger.Withdraw{Amount: 1000}))
	require.Equal(t, 1, len(receipt.Transfers), "transfers")
	assert.Equal(t, settlement.Transfer{
		Kind:     settlement.AssetTransfer,
		Receiver: alice,
		Amount:   1000,
		AssetID:  tokenAssetID,
	}, receipt.Transfers[0], "withdraw transfer")

	st, err = e.Stake(alice)
	require.Nil(t, err, "stake")
	assert.Equal(t, uint64(0), st.Balance, "empty")

	tr, err := e.Treasury()
	require.Nil(t, err, "treasury")
	assert.Equal(t, uint64(0), tr.TotalStaked, "total staked")

	outbound, err := settlement.NewJournal(logger.New("journal"), s.Pool.Outbound).Pending(0, 10)
	require.Nil(t, err, "pending")
	require.Equal(t, 1, len(outbound), "journaled")
	assert.Equal(t, uint64(1000), outbound[0].Amount, "journaled amount")
}

func TestStakeValidation(t *testing.T) {
	e, s := setupEngine(t)
	defer s.Close()

	err := applyError(e, call(alice, ledger.Withdraw{Amount: 1}))
	assert.Equal(t, fault.ErrRecordNotFound, err, "withdraw without record")

	err = applyError(e, call(alice, ledger.CompoundYield{}))
	assert.Equal(t, fault.ErrRecordNotFound, err, "compound without record")

	err = applyError(e, attached(alice, settlement.AssetTransfer, 1, ledger.Deposit{}))
	assert.Equal(t, fault.ErrInvalidAmount, err, "zero deposit")

	err = applyError(e, attached(alice, settlement.Payment, 1000, ledger.Deposit{Amount: 1000}))
	assert.Equal(t, fault.ErrBadAttachment, err, "native instead of token")

	c := attached(alice, settlement.AssetTransfer, 1000, ledger.Deposit{Amount: 1000})
	c.Group[0].AssetID = 7
	err = applyError(e, c)
	assert.Equal(t, fault.ErrBadAttachment, err, "wrong asset")

	apply(t, e, attached(alice, settlement.AssetTransfer, 1000, ledger.Deposit{Amount: 1000}))

	err = applyError(e, call(alice, ledger.Withdraw{}))
	assert.Equal(t, fault.ErrInvalidAmount, err, "zero withdraw")

	err = applyError(e, call(alice, ledger.ClaimYield{Amount: 1}))
	assert.Equal(t, fault.ErrInsufficientBalance, err, "no yield yet")
}

func TestYield(t *testing.T) {
	e, s := setupEngine(t)
	defer s.Close()

	apply(t, e, attached(alice, settlement.AssetTransfer, 10000, ledger.Deposit{Amount: 10000}))
	apply(t, e, call(admin, ledger.Reset{}))
	apply(t, e, call(admin, ledger.Reset{}))

	// 1% per round for two rounds
	receipt := apply(t, e, call(alice, ledger.ClaimYield{Amount: 150}))
	require.Equal(t, 1, len(receipt.Transfers), "transfers")
	assert.Equal(t, uint64(150), receipt.Transfers[0].Amount, "claimed")

	st, err := e.Stake(alice)
	require.Nil(t, err, "stake")
	assert.Equal(t, uint64(50), st.AccruedYield, "remaining yield")
	assert.Equal(t, uint64(200), st.LifetimeYield, "lifetime")
	assert.Equal(t, uint64(2), st.LastUpdateRound, "updated")

	tr, err := e.Treasury()
	require.Nil(t, err, "treasury")
	assert.Equal(t, uint64(200), tr.FpowEmitted, "emitted")
	assert.Equal(t, uint64(50), tr.YieldUnclaimed, "unclaimed")
}

func TestCompoundYield(t *testing.T) {
	e, s := setupEngine(t)
	defer s.Close()

	apply(t, e, attached(alice, settlement.AssetTransfer, 10000, ledger.Deposit{Amount: 10000}))
	apply(t, e, call(admin, ledger.Reset{}))

	apply(t, e, call(alice, ledger.CompoundYield{}))
	st, err := e.Stake(alice)
	require.Nil(t, err, "stake")
	assert.Equal(t, uint64(10100), st.Balance, "compounded")
	assert.Equal(t, uint64(0), st.AccruedYield, "yield moved")

	// no rounds elapsed
	apply(t, e, call(alice, ledger.CompoundYield{}))
	st, err = e.Stake(alice)
	require.Nil(t, err, "stake")
	assert.Equal(t, uint64(10100), st.Balance, "unchanged")

	requireSupplyBounded(t, e, nil, []account.Address{alice})
}

func TestSupplyCap(t *testing.T) {
	p := parameters
	parameters.SupplyCap = 5000
	defer func() { parameters = p }()

	e, s := setupEngine(t)
	defer s.Close()

	apply(t, e, attached(alice, settlement.AssetTransfer, 4000, ledger.Deposit{Amount: 4000}))

	err := applyError(e, attached(bob, settlement.AssetTransfer, 1001, ledger.Deposit{Amount: 1001}))
	assert.Equal(t, fault.ErrSupplyCapExceeded, err, "over cap")

	// mining emission limited to what is left under the cap
	apply(t, e, attached(bob, settlement.Payment, 1000000, deploy(1000000, 0xff)))
	apply(t, e, call(admin, ledger.Reset{}))
	apply(t, e, call(bob, ledger.Checkpoint{}))

	m, err := e.Miner(bob)
	require.Nil(t, err, "miner")
	assert.Equal(t, uint64(1000), m.RewardsFpow, "capped fpow")

	requireSupplyBounded(t, e, []account.Address{bob}, []account.Address{alice})
}
