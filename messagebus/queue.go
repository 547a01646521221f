// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync/atomic"
)

// DefaultQueueSize - capacity used when none is given
const DefaultQueueSize = 1000

// Message - a queued item
type Message struct {
	From    string
	Command string
	Item    interface{}
}

// Queue - bounded message queue
type Queue struct {
	queue   chan Message
	dropped uint64
}

// New - queue holding up to size messages
func New(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		queue: make(chan Message, size),
	}
}

// Send - queue data, false if the queue was full and the message dropped
func (q *Queue) Send(from string, command string, item interface{}) bool {
	select {
	case q.queue <- Message{
		From:    from,
		Command: command,
		Item:    item,
	}:
		return true
	default:
		atomic.AddUint64(&q.dropped, 1)
		return false
	}
}

// Chan - channel to read from
func (q *Queue) Chan() <-chan Message {
	return q.queue
}

// Dropped - number of messages lost to a full queue
func (q *Queue) Dropped() uint64 {
	return atomic.LoadUint64(&q.dropped)
}
