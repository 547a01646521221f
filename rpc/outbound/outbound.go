// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package outbound

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/record"
	"github.com/bitmark-inc/fpowd/rpc/ratelimit"
	"github.com/bitmark-inc/fpowd/settlement"
	"github.com/bitmark-inc/fpowd/storage"
)

const (
	rateLimitOutbound = 100
	rateBurstOutbound = 100

	// limit for count
	maximumOutboundList = 100
)

// Outbound - the journal of transfers the host must execute
type Outbound struct {
	Log     *logger.L
	Limiter *ratelimit.Limiter
	Engine  *ledger.Engine
	Journal *settlement.Journal
}

// New - create the outbound journal service
func New(log *logger.L, engine *ledger.Engine, journal *settlement.Journal) *Outbound {
	return &Outbound{
		Log:     log,
		Limiter: ratelimit.New(rateLimitOutbound, rateBurstOutbound, maximumOutboundList),
		Engine:  engine,
		Journal: journal,
	}
}

// ---

// PendingArguments - page through unacknowledged transfers
type PendingArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// PendingReply - transfers after Start in sequence order
type PendingReply struct {
	Transfers []record.Outbound `json:"transfers"`
	NextStart uint64            `json:"nextStart,string"`
}

// Pending - list transfers not yet acknowledged
func (outbound *Outbound) Pending(arguments *PendingArguments, reply *PendingReply) error {

	if err := outbound.Limiter.LimitN(arguments.Count); nil != err {
		return err
	}

	transfers, err := outbound.Journal.Pending(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Transfers = transfers
	reply.NextStart = arguments.Start
	if n := len(transfers); n > 0 {
		reply.NextStart = transfers[n-1].Sequence
	}
	return nil
}

// ---

// AcknowledgeArguments - sequences the host has executed
type AcknowledgeArguments struct {
	Sequences []uint64 `json:"sequences"`
}

// AcknowledgeReply - number of transfers removed
type AcknowledgeReply struct {
	Count int `json:"count"`
}

// Acknowledge - remove executed transfers, all or none
func (outbound *Outbound) Acknowledge(arguments *AcknowledgeArguments, reply *AcknowledgeReply) error {

	if err := outbound.Limiter.LimitN(len(arguments.Sequences)); nil != err {
		return err
	}

	err := outbound.Engine.Update(func(trx storage.Transaction) error {
		for _, sequence := range arguments.Sequences {
			if err := outbound.Journal.Acknowledge(trx, sequence); nil != err {
				return err
			}
		}
		return nil
	})
	if nil != err {
		outbound.Log.Warnf("acknowledge: %v  error: %s", arguments.Sequences, err)
		return err
	}

	reply.Count = len(arguments.Sequences)
	outbound.Log.Infof("acknowledged: %d", reply.Count)
	return nil
}
