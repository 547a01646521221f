// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/fault"
)

// Kind - type of a group entry
type Kind uint8

// group entry kinds
const (
	ApplicationCall Kind = 0
	Payment         Kind = 1 // native currency
	AssetTransfer   Kind = 2 // fungible token
)

func (k Kind) String() string {
	switch k {
	case ApplicationCall:
		return "call"
	case Payment:
		return "payment"
	case AssetTransfer:
		return "asset-transfer"
	default:
		return "unknown"
	}
}

// Entry - one member of an atomic call group
type Entry struct {
	Kind     Kind            `json:"kind"`
	Sender   account.Address `json:"sender"`
	Receiver account.Address `json:"receiver"`
	Amount   uint64          `json:"amount,string"`
	AssetID  uint64          `json:"assetId,string"`
}

// Group - ordered entries submitted together
type Group []Entry

// Transfer - an outbound value transfer
type Transfer struct {
	Kind     Kind            `json:"kind"`
	Receiver account.Address `json:"receiver"`
	Amount   uint64          `json:"amount,string"`
	AssetID  uint64          `json:"assetId,string"`
}

// RequireInbound - validate the companion transfer of the call at index
//
// the companion must immediately precede the call, be of the expected
// kind, be sent to the application, carry the token asset for token
// transfers and be worth at least minimum
func RequireInbound(group Group, index int, kind Kind, application account.Address, assetID uint64, minimum uint64) (Entry, error) {
	if index < 1 || index >= len(group) {
		return Entry{}, fault.ErrBadAttachment
	}
	companion := group[index-1]

	if companion.Kind != kind {
		return Entry{}, fault.ErrBadAttachment
	}
	if companion.Receiver != application {
		return Entry{}, fault.ErrBadAttachment
	}
	if AssetTransfer == kind && companion.AssetID != assetID {
		return Entry{}, fault.ErrBadAttachment
	}
	if companion.Amount < minimum {
		return Entry{}, fault.ErrBadAttachment
	}
	return companion, nil
}
