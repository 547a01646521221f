// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/ledger"
)

const (
	idlePoll    = time.Minute // how often a disabled timer looks for a new interval
	minimumWait = time.Second // back off after a failed reset
)

// roundTimer - opens a new round whenever the interval has passed
// since the last reset, submitting the reset as the current admin
type roundTimer struct {
	log      *logger.L
	engine   *ledger.Engine
	interval int64 // nanoseconds, zero disables
	now      func() time.Time
}

func newRoundTimer(engine *ledger.Engine, interval time.Duration) *roundTimer {
	return &roundTimer{
		log:      logger.New("rounds"),
		engine:   engine,
		interval: int64(interval),
		now:      time.Now,
	}
}

// SetInterval - change the interval, takes effect at the next wake up
func (r *roundTimer) SetInterval(interval time.Duration) {
	old := time.Duration(atomic.SwapInt64(&r.interval, int64(interval)))
	if old != interval {
		r.log.Infof("interval: %s  was: %s", interval, old)
	}
}

func (r *roundTimer) Interval() time.Duration {
	return time.Duration(atomic.LoadInt64(&r.interval))
}

func (r *roundTimer) Run(args interface{}, shutdown <-chan struct{}) {
	r.log.Info("starting…")

loop:
	for {
		wait := r.Interval()
		if 0 == wait {
			wait = idlePoll
		} else if due, ok := r.due(); ok {
			wait = due
		}
		if wait < minimumWait {
			wait = minimumWait
		}

		select {
		case <-shutdown:
			break loop
		case <-time.After(wait):
			if err := r.tick(); nil != err {
				r.log.Warnf("reset error: %s", err)
			}
		}
	}

	r.log.Info("shutting down…")
	r.log.Flush()
}

// time remaining until the next reset is due
func (r *roundTimer) due() (time.Duration, bool) {
	config, err := r.engine.Config()
	if nil != err {
		return 0, false
	}
	last := time.Unix(int64(config.LastResetAt), 0)
	if 0 == config.LastResetAt {
		last = time.Unix(int64(config.CreatedAt), 0)
	}
	remaining := last.Add(r.Interval()).Sub(r.now())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// reset if due, returns nil when nothing needed doing
func (r *roundTimer) tick() error {
	interval := r.Interval()
	if 0 == interval {
		return nil
	}
	remaining, ok := r.due()
	if !ok || remaining > 0 {
		return nil
	}

	config, err := r.engine.Config()
	if nil != err {
		return err
	}

	receipt, err := r.engine.Apply(context.Background(), &ledger.Call{
		Sender:    config.Admin,
		Timestamp: uint64(r.now().Unix()),
		Operation: ledger.Reset{},
	})
	if nil != err {
		return err
	}
	r.log.Infof("opened round: %d", receipt.Round)
	return nil
}
