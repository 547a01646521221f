// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the fPOW mining game state machine
//
// An Engine applies one Call at a time.  Each call runs inside a
// single storage transaction: the operation handler reads the records
// it needs, mutates them, queues outbound transfers and then the
// settler executes those transfers before the commit.  Any error
// aborts the transaction so no partial state survives.
//
// Operations form a closed set of types decoded once at the boundary
// and dispatched by an exhaustive type switch.
package ledger
