// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - bounded queue of ledger events
//
// Senders never block: when the queue is full the message is dropped
// and counted, so an absent or slow reader cannot stall the ledger.
package messagebus
