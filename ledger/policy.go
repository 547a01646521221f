// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fpowd/record"
)

// Emission - inputs to a mining reward computation
type Emission struct {
	Squares  uint64 // squares held since the last checkpoint
	Elapsed  uint64 // rounds since the last checkpoint
	AlgoRate uint64 // native units per square per round
	FpowRate uint64 // token units per square per round
}

// EmissionPolicy - mining reward rate function
//
// the engine clamps the result to the funded mining pool and to the
// remaining token supply; a policy must return zero when Elapsed is
// zero so repeated checkpoints in one round accrue nothing
type EmissionPolicy interface {
	Accrue(e Emission) (algo uint64, fpow uint64)
}

// YieldPolicy - staking yield rate function, same contract as EmissionPolicy
type YieldPolicy interface {
	Accrue(staked uint64, rateBps uint64, elapsed uint64) uint64
}

// TreasuryStrategy - buyback and liquidity formulas
//
// each removes native currency from the treasury balances and returns
// the amount to be paid to the admin, which must equal the total
// removed
type TreasuryStrategy interface {
	Buyback(t *record.Treasury) uint64
	Liquidity(t *record.Treasury) uint64
}

// LinearEmission - rate × squares × elapsed rounds
type LinearEmission struct{}

// Accrue - linear in held squares and elapsed rounds
func (LinearEmission) Accrue(e Emission) (uint64, uint64) {
	weight := saturatingMul(e.Squares, e.Elapsed)
	return saturatingMul(weight, e.AlgoRate), saturatingMul(weight, e.FpowRate)
}

// SimpleYield - staked × bps × elapsed rounds / 10000
type SimpleYield struct{}

// Accrue - simple interest per round
func (SimpleYield) Accrue(staked uint64, rateBps uint64, elapsed uint64) uint64 {
	return mulDiv(staked, saturatingMul(rateBps, elapsed), record.DenominatorBps)
}

// ReleaseToAdmin - release all buyback funds (wrapped custody and the
// buyback reserve) or the whole liquidity reserve; the admin swaps off
// the ledger and returns tokens through bury
type ReleaseToAdmin struct{}

// Buyback - empty the wrapped balance and the buyback reserve
func (ReleaseToAdmin) Buyback(t *record.Treasury) uint64 {
	amount := t.Wrapped + t.BuybackReserve
	t.Wrapped = 0
	t.BuybackReserve = 0
	return amount
}

// Liquidity - empty the liquidity reserve
func (ReleaseToAdmin) Liquidity(t *record.Treasury) uint64 {
	amount := t.LiquidityReserve
	t.LiquidityReserve = 0
	return amount
}
