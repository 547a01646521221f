// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/fpowd/storage"
	"github.com/bitmark-inc/logger"
)

// test database file
const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test.leveldb"
)

// Test main entrypoint
func TestMain(m *testing.M) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "trace",
		},
	}

	// start logging
	_ = logger.Initialise(logging)

	result := m.Run()

	logger.Finalise()
	removeFiles()
	os.Exit(result)
}

// remove all files created by test
func removeFiles() {
	os.RemoveAll(testingDirName)
}

// in memory store with an optional allocation limit
func setupMemory(t *testing.T, capacity uint64) *storage.Store {
	s, err := storage.OpenMemory(capacity)
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return s
}

// a committed record of the given bytes
func putRecord(t *testing.T, s *storage.Store, pool *storage.PoolHandle, key []byte, value []byte) {
	trx, err := s.Begin()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	if err := trx.Create(pool, key, len(value)); nil != err {
		trx.Abort()
		t.Fatalf("create error: %s", err)
	}
	if err := trx.Write(pool, key, 0, value); nil != err {
		trx.Abort()
		t.Fatalf("write error: %s", err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
}
