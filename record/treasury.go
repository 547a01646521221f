// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

// Treasury - the singleton custody record
//
// native currency balances: Wrapped, BuybackReserve, LiquidityReserve
// and MiningPool hold funds, NativeDeposited and NativePaid are the
// cumulative totals that every balance must reconcile against
type Treasury struct {
	Wrapped          uint64 `json:"wrapped"`
	Burned           uint64 `json:"burned"`
	BuybackReserve   uint64 `json:"buybackReserve"`
	LiquidityReserve uint64 `json:"liquidityReserve"`
	MiningPool       uint64 `json:"miningPool"`
	NativeDeposited  uint64 `json:"nativeDeposited"`
	NativePaid       uint64 `json:"nativePaid"`
	TotalStaked      uint64 `json:"totalStaked"`
	FpowEmitted      uint64 `json:"fpowEmitted"`
	FpowUnclaimed    uint64 `json:"fpowUnclaimed"`
	YieldUnclaimed   uint64 `json:"yieldUnclaimed"`
	AdminFees        uint64 `json:"adminFees"`
	BuybackTotal     uint64 `json:"buybackTotal"`
	LiquidityTotal   uint64 `json:"liquidityTotal"`
	BuryCount        uint64 `json:"buryCount"`
}

// fields in storage order, one uint64 slot each; the last slot is reserved
func (t *Treasury) fields() []*uint64 {
	return []*uint64{
		&t.Wrapped,
		&t.Burned,
		&t.BuybackReserve,
		&t.LiquidityReserve,
		&t.MiningPool,
		&t.NativeDeposited,
		&t.NativePaid,
		&t.TotalStaked,
		&t.FpowEmitted,
		&t.FpowUnclaimed,
		&t.YieldUnclaimed,
		&t.AdminFees,
		&t.BuybackTotal,
		&t.LiquidityTotal,
		&t.BuryCount,
	}
}

// Pack - fixed size binary form
func (t *Treasury) Pack() []byte {
	l := newLayout(TreasurySize)
	for i, f := range t.fields() {
		l.putUint64(8*i, *f)
	}
	return l
}

// UnpackTreasury - decode the binary form
func UnpackTreasury(buffer []byte) (*Treasury, error) {
	l, err := checkLayout(buffer, TreasurySize)
	if nil != err {
		return nil, err
	}
	t := &Treasury{}
	for i, f := range t.fields() {
		*f = l.uint64(8 * i)
	}
	return t, nil
}

// NativeHeld - native currency currently in treasury custody
func (t *Treasury) NativeHeld() uint64 {
	return t.Wrapped + t.BuybackReserve + t.LiquidityReserve + t.MiningPool
}
