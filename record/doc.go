// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - packed layouts of the ledger records
//
// Every record has a fixed size and all integers are big endian
// uint64 values at fixed offsets.  Pack always produces exactly the
// record size; Unpack rejects a buffer of any other length.
package record
