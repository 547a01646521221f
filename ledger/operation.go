// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/record"
)

// Operation - one of the ledger operations below
//
// the set is closed: only types in this package can satisfy it
type Operation interface {
	Name() string
	operation()
}

// embedded in every operation to seal the interface
type sealed struct{}

func (sealed) operation() {}

// Parameters - economic settings fixed at creation
type Parameters struct {
	FeeBps       uint64 `gluamapper:"fee_bps" json:"fee_bps"`
	AlgoRate     uint64 `gluamapper:"algo_rate" json:"algo_rate"`
	FpowRate     uint64 `gluamapper:"fpow_rate" json:"fpow_rate"`
	SupplyCap    uint64 `gluamapper:"supply_cap" json:"supply_cap"`
	YieldRateBps uint64 `gluamapper:"yield_rate_bps" json:"yield_rate_bps"`
	BuybackBps   uint64 `gluamapper:"buyback_bps" json:"buyback_bps"`
}

// Create - initialise the singleton records, the caller becomes admin
type Create struct {
	sealed
	TokenAssetID uint64
	Application  account.Address
	Parameters   Parameters
}

// Automate - create, overwrite or (all zero) close an automation record
type Automate struct {
	sealed
	Amount        uint64
	DepositAmount uint64
	Fee           uint64
	Mask          uint64
	Strategy      record.Strategy
	Reload        uint64
}

// Execute - deploy on behalf of an automated authority from its balance,
// the mask is only used by the discretionary strategy
type Execute struct {
	sealed
	Mask record.Bitmap
}

// Checkpoint - convert elapsed mining into pending rewards
type Checkpoint struct {
	sealed
}

// ClaimAlgo - pay out pending native currency rewards
type ClaimAlgo struct {
	sealed
}

// ClaimFpow - pay out pending token rewards
type ClaimFpow struct {
	sealed
}

// Close - destroy a round record
type Close struct {
	sealed
	RoundID uint64
}

// Deploy - claim board squares with a native currency payment
type Deploy struct {
	sealed
	Amount uint64
	Mask   record.Bitmap
}

// Log - observability event without state effect
type Log struct {
	sealed
	Message string
}

// Reset - open the next round
type Reset struct {
	sealed
}

// ReloadAlgo - move mining rewards into the automation balance
type ReloadAlgo struct {
	sealed
}

// Deposit - stake tokens
type Deposit struct {
	sealed
	Amount uint64
}

// Withdraw - unstake tokens
type Withdraw struct {
	sealed
	Amount uint64
}

// ClaimYield - pay out accrued staking yield
type ClaimYield struct {
	sealed
	Amount uint64
}

// CompoundYield - move all accrued yield into the staked balance
type CompoundYield struct {
	sealed
}

// Buyback - release the buyback funds to the admin
type Buyback struct {
	sealed
}

// Bury - permanently remove tokens from supply
type Bury struct {
	sealed
	Amount uint64
}

// Wrap - take native currency into treasury custody
type Wrap struct {
	sealed
	Amount uint64
}

// SetAdmin - hand the admin capability to another address
type SetAdmin struct {
	sealed
	Admin account.Address
}

// NewVar - record an entropy commitment
type NewVar struct {
	sealed
	ID          uint64
	Commitment  record.Commitment
	SampleCount uint64
}

// Liq - release the liquidity reserve to the admin
type Liq struct {
	sealed
}

func (Create) Name() string        { return "create" }
func (Automate) Name() string      { return "automate" }
func (Execute) Name() string       { return "execute" }
func (Checkpoint) Name() string    { return "checkpoint" }
func (ClaimAlgo) Name() string     { return "claim_algo" }
func (ClaimFpow) Name() string     { return "claim_fpow" }
func (Close) Name() string         { return "close" }
func (Deploy) Name() string        { return "deploy" }
func (Log) Name() string           { return "log" }
func (Reset) Name() string         { return "reset" }
func (ReloadAlgo) Name() string    { return "reload_algo" }
func (Deposit) Name() string       { return "deposit" }
func (Withdraw) Name() string      { return "withdraw" }
func (ClaimYield) Name() string    { return "claim_yield" }
func (CompoundYield) Name() string { return "compound_yield" }
func (Buyback) Name() string       { return "buyback" }
func (Bury) Name() string          { return "bury" }
func (Wrap) Name() string          { return "wrap" }
func (SetAdmin) Name() string      { return "set_admin" }
func (NewVar) Name() string        { return "new_var" }
func (Liq) Name() string           { return "liq" }
