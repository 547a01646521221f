// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/storage"
)

func TestFetchCursor(t *testing.T) {
	s := setupMemory(t, 0)
	defer s.Close()

	putRecord(t, s, s.Pool.Miner, []byte("key-one"), []byte("data-one"))
	putRecord(t, s, s.Pool.Miner, []byte("key-three"), []byte("data-three"))
	putRecord(t, s, s.Pool.Miner, []byte("key-two"), []byte("data-two"))
	putRecord(t, s, s.Pool.Stake, []byte("key-other"), []byte("other"))

	cursor := s.Pool.Miner.NewFetchCursor()

	first, err := cursor.Fetch(2)
	assert.Nil(t, err, "first fetch")
	assert.Equal(t, []storage.Element{
		{Key: []byte("key-one"), Value: []byte("data-one")},
		{Key: []byte("key-three"), Value: []byte("data-three")},
	}, first, "first page")

	second, err := cursor.Fetch(2)
	assert.Nil(t, err, "second fetch")
	assert.Equal(t, []storage.Element{
		{Key: []byte("key-two"), Value: []byte("data-two")},
	}, second, "second page")

	third, err := cursor.Fetch(2)
	assert.Nil(t, err, "third fetch")
	assert.Equal(t, 0, len(third), "past the end")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero count")
}

func TestCursorMap(t *testing.T) {
	s := setupMemory(t, 0)
	defer s.Close()

	putRecord(t, s, s.Pool.Var, []byte{1}, []byte{10})
	putRecord(t, s, s.Pool.Var, []byte{2}, []byte{20})

	total := 0
	err := s.Pool.Var.NewFetchCursor().Map(func(key []byte, value []byte) error {
		total += int(value[0])
		return nil
	})
	assert.Nil(t, err, "map")
	assert.Equal(t, 30, total, "sum")

	cursor := s.Pool.Var.NewFetchCursor().Seek([]byte{2})
	elements, err := cursor.Fetch(10)
	assert.Nil(t, err, "seek fetch")
	assert.Equal(t, 1, len(elements), "after seek")
}
