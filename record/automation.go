// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/fpowd/account"
)

// Strategy - how an automation executor selects squares
type Strategy uint8

// automation strategies
const (
	StrategyRandom        Strategy = 0
	StrategyPreferred     Strategy = 1
	StrategyDiscretionary Strategy = 2
)

// IsValid - only the known strategy codes
func (s Strategy) IsValid() bool {
	return s <= StrategyDiscretionary
}

func (s Strategy) String() string {
	switch s {
	case StrategyRandom:
		return "random"
	case StrategyPreferred:
		return "preferred"
	case StrategyDiscretionary:
		return "discretionary"
	default:
		return "unknown"
	}
}

const (
	automationAuthority     = 0
	automationAmount        = 32
	automationDepositAmount = 40
	automationFee           = 48
	automationMask          = 56
	automationStrategy      = 64
	automationReload        = 72
	automationBalance       = 80
	automationReloaded      = 88
	automationUpdatedAt     = 96
)

// Automation - delegated mining configuration of an authority
type Automation struct {
	Authority     account.Address `json:"authority"`
	Amount        uint64          `json:"amount"`
	DepositAmount uint64          `json:"depositAmount"` // reload threshold
	Fee           uint64          `json:"fee"`
	Mask          uint64          `json:"mask"`
	Strategy      Strategy        `json:"strategy"`
	Reload        uint64          `json:"reload"`
	Balance       uint64          `json:"balance"`
	ReloadedTotal uint64          `json:"reloadedTotal"`
	UpdatedAt     uint64          `json:"updatedAt"`
}

// Pack - fixed size binary form
func (a *Automation) Pack() []byte {
	l := newLayout(AutomationSize)
	l.putAddress(automationAuthority, a.Authority)
	l.putUint64(automationAmount, a.Amount)
	l.putUint64(automationDepositAmount, a.DepositAmount)
	l.putUint64(automationFee, a.Fee)
	l.putUint64(automationMask, a.Mask)
	l[automationStrategy] = byte(a.Strategy)
	l.putUint64(automationReload, a.Reload)
	l.putUint64(automationBalance, a.Balance)
	l.putUint64(automationReloaded, a.ReloadedTotal)
	l.putUint64(automationUpdatedAt, a.UpdatedAt)
	return l
}

// UnpackAutomation - decode the binary form
func UnpackAutomation(buffer []byte) (*Automation, error) {
	l, err := checkLayout(buffer, AutomationSize)
	if nil != err {
		return nil, err
	}
	return &Automation{
		Authority:     l.address(automationAuthority),
		Amount:        l.uint64(automationAmount),
		DepositAmount: l.uint64(automationDepositAmount),
		Fee:           l.uint64(automationFee),
		Mask:          l.uint64(automationMask),
		Strategy:      Strategy(l[automationStrategy]),
		Reload:        l.uint64(automationReload),
		Balance:       l.uint64(automationBalance),
		ReloadedTotal: l.uint64(automationReloaded),
		UpdatedAt:     l.uint64(automationUpdatedAt),
	}, nil
}
