// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package settlement - value transfers entering and leaving the ledger
//
// An inbound transfer is proved by the entry immediately before the
// application call in the same atomic group.  Outbound transfers are
// collected while an operation runs and handed to a Settler before
// the storage transaction commits; a Settler failure aborts the whole
// operation.
package settlement
