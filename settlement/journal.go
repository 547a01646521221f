// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"math"

	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/record"
	"github.com/bitmark-inc/fpowd/storage"
	"github.com/bitmark-inc/logger"
)

// the record at sequence zero holds the next sequence number
var journalHeadKey = record.IDKey(0)

// Journal - settler that records outbound transfers for the host to execute
type Journal struct {
	log  *logger.L
	pool *storage.PoolHandle
}

// NewJournal - journal writing into the given pool
func NewJournal(log *logger.L, pool *storage.PoolHandle) *Journal {
	return &Journal{
		log:  log,
		pool: pool,
	}
}

// Settle - append each transfer of the batch to the journal
func (j *Journal) Settle(trx storage.Transaction, batch *Batch) error {
	if 0 == len(batch.Transfers) {
		return nil
	}

	if !trx.Exists(j.pool, journalHeadKey) {
		if err := trx.Create(j.pool, journalHeadKey, record.OutboundSize); nil != err {
			return err
		}
	}
	buffer, err := trx.ReadAll(j.pool, journalHeadKey)
	if nil != err {
		return err
	}
	head, err := record.UnpackOutbound(buffer)
	if nil != err {
		return err
	}

	for _, t := range batch.Transfers {
		head.Sequence += 1
		o := record.Outbound{
			Sequence:  head.Sequence,
			Kind:      uint64(t.Kind),
			Receiver:  t.Receiver,
			Amount:    t.Amount,
			AssetID:   t.AssetID,
			Round:     batch.Round,
			Timestamp: batch.Timestamp,
		}
		key := record.IDKey(o.Sequence)
		if err := trx.Create(j.pool, key, record.OutboundSize); nil != err {
			return err
		}
		if err := trx.Write(j.pool, key, 0, o.Pack()); nil != err {
			return err
		}
		j.log.Debugf("journal: %d  %s  %d  to: %s", o.Sequence, t.Kind, t.Amount, t.Receiver)
	}

	return trx.Write(j.pool, journalHeadKey, 0, head.Pack())
}

// Pending - committed transfers not yet acknowledged, starting after a sequence
func (j *Journal) Pending(after uint64, count int) ([]record.Outbound, error) {
	if math.MaxUint64 == after {
		return []record.Outbound{}, nil
	}
	cursor := j.pool.NewFetchCursor().Seek(record.IDKey(after + 1))
	elements, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	pending := make([]record.Outbound, 0, len(elements))
	for _, e := range elements {
		o, err := record.UnpackOutbound(e.Value)
		if nil != err {
			return nil, err
		}
		pending = append(pending, *o)
	}
	return pending, nil
}

// Acknowledge - remove a transfer the host has executed
func (j *Journal) Acknowledge(trx storage.Transaction, sequence uint64) error {
	if 0 == sequence {
		return fault.ErrRecordNotFound
	}
	return trx.Delete(j.pool, record.IDKey(sequence))
}
