// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/fpowd/account"
)

const (
	outboundSequence  = 0
	outboundKind      = 8
	outboundReceiver  = 16
	outboundAmount    = 48
	outboundAssetID   = 56
	outboundRound     = 64
	outboundTimestamp = 72
)

// Outbound - a journaled value transfer awaiting execution by the host
type Outbound struct {
	Sequence  uint64          `json:"sequence"`
	Kind      uint64          `json:"kind"`
	Receiver  account.Address `json:"receiver"`
	Amount    uint64          `json:"amount"`
	AssetID   uint64          `json:"assetId"`
	Round     uint64          `json:"round"`
	Timestamp uint64          `json:"timestamp"`
}

// Pack - fixed size binary form
func (o *Outbound) Pack() []byte {
	l := newLayout(OutboundSize)
	l.putUint64(outboundSequence, o.Sequence)
	l.putUint64(outboundKind, o.Kind)
	l.putAddress(outboundReceiver, o.Receiver)
	l.putUint64(outboundAmount, o.Amount)
	l.putUint64(outboundAssetID, o.AssetID)
	l.putUint64(outboundRound, o.Round)
	l.putUint64(outboundTimestamp, o.Timestamp)
	return l
}

// UnpackOutbound - decode the binary form
func UnpackOutbound(buffer []byte) (*Outbound, error) {
	l, err := checkLayout(buffer, OutboundSize)
	if nil != err {
		return nil, err
	}
	return &Outbound{
		Sequence:  l.uint64(outboundSequence),
		Kind:      l.uint64(outboundKind),
		Receiver:  l.address(outboundReceiver),
		Amount:    l.uint64(outboundAmount),
		AssetID:   l.uint64(outboundAssetID),
		Round:     l.uint64(outboundRound),
		Timestamp: l.uint64(outboundTimestamp),
	}, nil
}
