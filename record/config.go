// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/fpowd/account"
)

// token and fee constants
const (
	TokenDecimals  = 11
	OneFpow        = 100000000000 // 10^TokenDecimals
	MaxSupply      = 5000000 * OneFpow
	DenominatorBps = 10000
	DefaultFeeBps  = 100 // 1%
)

// GlobalConfig field offsets
const (
	configAdmin         = 0
	configTokenAssetID  = 32
	configRoundID       = 40
	configFeeBps        = 48
	configAlgoRate      = 56
	configFpowRate      = 64
	configSupplyCap     = 72
	configYieldRateBps  = 80
	configBuybackBps    = 88
	configLastResetAt   = 96
	configVarCount      = 104
	configCreatedAt     = 112
	configApplication   = 120
	configTotalDeployed = 152
)

// Config - the singleton global configuration
type Config struct {
	Admin         account.Address `json:"admin"`
	TokenAssetID  uint64          `json:"tokenAssetId"`
	RoundID       uint64          `json:"roundId"`
	FeeBps        uint64          `json:"feeBps"`
	AlgoRate      uint64          `json:"algoRate"`
	FpowRate      uint64          `json:"fpowRate"`
	SupplyCap     uint64          `json:"supplyCap"`
	YieldRateBps  uint64          `json:"yieldRateBps"`
	BuybackBps    uint64          `json:"buybackBps"`
	LastResetAt   uint64          `json:"lastResetAt"`
	VarCount      uint64          `json:"varCount"`
	CreatedAt     uint64          `json:"createdAt"`
	Application   account.Address `json:"application"`
	TotalDeployed uint64          `json:"totalDeployed"`
}

// Pack - fixed size binary form
func (c *Config) Pack() []byte {
	l := newLayout(ConfigSize)
	l.putAddress(configAdmin, c.Admin)
	l.putUint64(configTokenAssetID, c.TokenAssetID)
	l.putUint64(configRoundID, c.RoundID)
	l.putUint64(configFeeBps, c.FeeBps)
	l.putUint64(configAlgoRate, c.AlgoRate)
	l.putUint64(configFpowRate, c.FpowRate)
	l.putUint64(configSupplyCap, c.SupplyCap)
	l.putUint64(configYieldRateBps, c.YieldRateBps)
	l.putUint64(configBuybackBps, c.BuybackBps)
	l.putUint64(configLastResetAt, c.LastResetAt)
	l.putUint64(configVarCount, c.VarCount)
	l.putUint64(configCreatedAt, c.CreatedAt)
	l.putAddress(configApplication, c.Application)
	l.putUint64(configTotalDeployed, c.TotalDeployed)
	return l
}

// UnpackConfig - decode the binary form
func UnpackConfig(buffer []byte) (*Config, error) {
	l, err := checkLayout(buffer, ConfigSize)
	if nil != err {
		return nil, err
	}
	return &Config{
		Admin:         l.address(configAdmin),
		TokenAssetID:  l.uint64(configTokenAssetID),
		RoundID:       l.uint64(configRoundID),
		FeeBps:        l.uint64(configFeeBps),
		AlgoRate:      l.uint64(configAlgoRate),
		FpowRate:      l.uint64(configFpowRate),
		SupplyCap:     l.uint64(configSupplyCap),
		YieldRateBps:  l.uint64(configYieldRateBps),
		BuybackBps:    l.uint64(configBuybackBps),
		LastResetAt:   l.uint64(configLastResetAt),
		VarCount:      l.uint64(configVarCount),
		CreatedAt:     l.uint64(configCreatedAt),
		Application:   l.address(configApplication),
		TotalDeployed: l.uint64(configTotalDeployed),
	}, nil
}
