// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/storage"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// memoryStats - periodic memory and record store usage
type memoryStats struct {
	log   *logger.L
	store *storage.Store
}

func newMemoryStats(store *storage.Store) *memoryStats {
	return &memoryStats{
		log:   logger.New("memory"),
		store: store,
	}
}

func (m *memoryStats) Run(args interface{}, shutdown <-chan struct{}) {
	for {
		m.report()

		select {
		case <-shutdown:
			return
		case <-time.After(statsDelay):
		}
	}
}

func (m *memoryStats) report() {
	var s runtime.MemStats
	runtime.ReadMemStats(&s)

	text, err := json.Marshal(s)
	if nil != err {
		m.log.Errorf("marshal error: %s", err)
	} else {
		m.log.Debugf("stats: %s", text)
	}
	a := s.Alloc / mega
	t := s.TotalAlloc / mega
	o := s.Sys / mega
	m.log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, o)
	m.log.Infof("records: %d bytes  capacity: %d bytes", m.store.Used(), m.store.Capacity())
}
