// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fpowd/messagebus"
)

func TestQueue(t *testing.T) {
	q := messagebus.New(5)

	commands := []string{"c1", "c2", "c3"}
	for _, c := range commands {
		assert.True(t, q.Send("test", c, nil), "send: %s", c)
	}

	queue := q.Chan()
	for _, c := range commands {
		received := <-queue
		assert.Equal(t, c, received.Command, "received")
		assert.Equal(t, "test", received.From, "from")
	}
}

func TestQueueFullDoesNotBlock(t *testing.T) {
	q := messagebus.New(2)

	assert.True(t, q.Send("test", "c1", 1), "first")
	assert.True(t, q.Send("test", "c2", 2), "second")
	assert.False(t, q.Send("test", "c3", 3), "third is dropped")
	assert.Equal(t, uint64(1), q.Dropped(), "dropped count")

	received := <-q.Chan()
	assert.Equal(t, 1, received.Item, "oldest message kept")
}
