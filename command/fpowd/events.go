// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/messagebus"
)

// eventLogger - drains the engine's bus into the "events" log channel
type eventLogger struct {
	log *logger.L
	bus *messagebus.Queue
}

func newEventLogger(bus *messagebus.Queue) *eventLogger {
	return &eventLogger{
		log: logger.New("events"),
		bus: bus,
	}
}

func (e *eventLogger) Run(args interface{}, shutdown <-chan struct{}) {
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item := <-e.bus.Chan():
			e.record(item)
		}
	}

	if n := e.bus.Dropped(); n > 0 {
		e.log.Warnf("dropped events: %d", n)
	}
	e.log.Flush()
}

func (e *eventLogger) record(item messagebus.Message) {
	switch item.Command {
	case ledger.BusLog:
		e.log.Infof("log: %v", item.Item)
	case ledger.BusReceipt:
		receipt, ok := item.Item.(*ledger.Receipt)
		if !ok {
			e.log.Warnf("unexpected receipt: %T", item.Item)
			return
		}
		e.log.Debugf("receipt: %s  round: %d  transfers: %d", receipt.Operation, receipt.Round, len(receipt.Transfers))
	default:
		e.log.Warnf("unknown command: %q from: %q", item.Command, item.From)
	}
}
