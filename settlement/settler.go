// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/storage"
)

// Batch - the outbound transfers of one operation
type Batch struct {
	Round     uint64
	Timestamp uint64
	Transfers []Transfer
}

// Issue - queue an outbound transfer, zero amounts are dropped
func (b *Batch) Issue(kind Kind, receiver account.Address, amount uint64, assetID uint64) {
	if 0 == amount {
		return
	}
	b.Transfers = append(b.Transfers, Transfer{
		Kind:     kind,
		Receiver: receiver,
		Amount:   amount,
		AssetID:  assetID,
	})
}

// Total - sum of queued transfers of a kind
func (b *Batch) Total(kind Kind) uint64 {
	total := uint64(0)
	for _, t := range b.Transfers {
		if t.Kind == kind {
			total += t.Amount
		}
	}
	return total
}

//go:generate mockgen -destination=mocks/settler.go -package=mocks github.com/bitmark-inc/fpowd/settlement Settler

// Settler - executes outbound transfers inside the open transaction
//
// any error must leave the transfers unexecuted, the caller then
// aborts the transaction
type Settler interface {
	Settle(trx storage.Transaction, batch *Batch) error
}
