// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fpowd/fault"
)

// Limiter - token bucket shared by the requests of one service
type Limiter struct {
	limiter *rate.Limiter
	maximum int
}

// New - limiter allowing perSecond requests with a burst, batched
// requests may not exceed maximumCount items
func New(perSecond float64, burst int, maximumCount int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		maximum: maximumCount,
	}
}

// Limit - wait for a single request
func (l *Limiter) Limit() error {
	return l.wait(1)
}

// LimitN - wait for a request covering count items
//
// an invalid count is still charged as a single request
func (l *Limiter) LimitN(count int) error {
	if count <= 0 || count > l.maximum {
		if err := l.wait(1); nil != err {
			return err
		}
		return fault.ErrInvalidCount
	}
	return l.wait(count)
}

func (l *Limiter) wait(n int) error {
	r := l.limiter.ReserveN(time.Now(), n)
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}
