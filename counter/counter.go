// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Gauge - concurrent connection count with its high water mark and
// the number of connections ever admitted
type Gauge struct {
	current uint64
	peak    uint64
	total   uint64
}

// Acquire - admit one more connection unless that would exceed limit
func (g *Gauge) Acquire(limit uint64) bool {
	n := atomic.AddUint64(&g.current, 1)
	if n > limit {
		atomic.AddUint64(&g.current, ^uint64(0))
		return false
	}
	atomic.AddUint64(&g.total, 1)
	for {
		peak := atomic.LoadUint64(&g.peak)
		if n <= peak || atomic.CompareAndSwapUint64(&g.peak, peak, n) {
			break
		}
	}
	return true
}

// Release - a connection admitted by Acquire has finished
func (g *Gauge) Release() {
	atomic.AddUint64(&g.current, ^uint64(0))
}

// Current - connections in progress
func (g *Gauge) Current() uint64 {
	return atomic.LoadUint64(&g.current)
}

// Peak - highest number of simultaneous connections
func (g *Gauge) Peak() uint64 {
	return atomic.LoadUint64(&g.peak)
}

// Total - connections admitted since start
func (g *Gauge) Total() uint64 {
	return atomic.LoadUint64(&g.total)
}
