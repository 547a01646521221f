// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/fpowd/account"
)

// MinerRecord field offsets
//
// the two board state areas are 200 bytes each, only the first
// BitmapSize bytes are significant
const (
	minerAuthority       = 0
	minerOwned           = 32
	minerCheckpoint      = 232
	minerDeployed        = 432
	minerCheckpointRound = 440
	minerHashWeight      = 448
	minerLastRound       = 456
	// 464: 16 bytes reserved

	MinerRewardsAlgoOffset = 480
	MinerRewardsFpowOffset = 488

	minerLifetimeAlgo = 496
	minerLifetimeFpow = 504
)

// Miner - per authority mining record
type Miner struct {
	Authority       account.Address `json:"authority"`
	Owned           Bitmap          `json:"owned"`
	Checkpoint      Bitmap          `json:"checkpoint"`
	Deployed        uint64          `json:"deployed"`
	CheckpointRound uint64          `json:"checkpointRound"`
	HashWeight      uint64          `json:"hashWeight"`
	LastRound       uint64          `json:"lastRound"`
	RewardsAlgo     uint64          `json:"rewardsAlgo"`
	RewardsFpow     uint64          `json:"rewardsFpow"`
	LifetimeAlgo    uint64          `json:"lifetimeAlgo"`
	LifetimeFpow    uint64          `json:"lifetimeFpow"`
}

// Pack - fixed size binary form
func (m *Miner) Pack() []byte {
	l := newLayout(MinerSize)
	l.putAddress(minerAuthority, m.Authority)
	l.putBitmap(minerOwned, m.Owned)
	l.putBitmap(minerCheckpoint, m.Checkpoint)
	l.putUint64(minerDeployed, m.Deployed)
	l.putUint64(minerCheckpointRound, m.CheckpointRound)
	l.putUint64(minerHashWeight, m.HashWeight)
	l.putUint64(minerLastRound, m.LastRound)
	l.putUint64(MinerRewardsAlgoOffset, m.RewardsAlgo)
	l.putUint64(MinerRewardsFpowOffset, m.RewardsFpow)
	l.putUint64(minerLifetimeAlgo, m.LifetimeAlgo)
	l.putUint64(minerLifetimeFpow, m.LifetimeFpow)
	return l
}

// UnpackMiner - decode the binary form
func UnpackMiner(buffer []byte) (*Miner, error) {
	l, err := checkLayout(buffer, MinerSize)
	if nil != err {
		return nil, err
	}
	return &Miner{
		Authority:       l.address(minerAuthority),
		Owned:           l.bitmap(minerOwned),
		Checkpoint:      l.bitmap(minerCheckpoint),
		Deployed:        l.uint64(minerDeployed),
		CheckpointRound: l.uint64(minerCheckpointRound),
		HashWeight:      l.uint64(minerHashWeight),
		LastRound:       l.uint64(minerLastRound),
		RewardsAlgo:     l.uint64(MinerRewardsAlgoOffset),
		RewardsFpow:     l.uint64(MinerRewardsFpowOffset),
		LifetimeAlgo:    l.uint64(minerLifetimeAlgo),
		LifetimeFpow:    l.uint64(minerLifetimeFpow),
	}, nil
}
