// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - fixed size keyed records over LevelDB
//
// Every record lives in a pool identified by a string prefix, so the
// database key of a record is the pool prefix followed by the record
// key.  A record is created with a size that never changes; reads
// and writes address bytes inside the record.
//
// All mutation goes through a Transaction: writes are staged in a
// LevelDB batch and mirrored in a cache so that reads inside the
// transaction see its own writes.  Commit writes the batch
// atomically, Abort discards it and leaves the database untouched.
package storage
