// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - start and stop the daemon's long running loops
package background

import (
	"sync"
)

// Process - a long running loop that returns once shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a running set of processes
type T struct {
	sync.WaitGroup
	shutdown chan struct{}
	stopped  sync.Once
}

// Start - run each process in its own goroutine
func Start(processes Processes, args interface{}) *T {
	t := &T{
		shutdown: make(chan struct{}),
	}
	for _, p := range processes {
		t.Add(1)
		go func(p Process) {
			defer t.Done()
			p.Run(args, t.shutdown)
		}(p)
	}
	return t
}

// Stop - signal every process and wait until all have returned
func (t *T) Stop() {
	t.stopped.Do(func() {
		close(t.shutdown)
	})
	t.Wait()
}
