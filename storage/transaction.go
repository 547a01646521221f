// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/logger"
)

// Transaction - atomic set of record operations
type Transaction interface {
	Create(pool *PoolHandle, key []byte, size int) error
	Read(pool *PoolHandle, key []byte, offset int, length int) ([]byte, error)
	ReadAll(pool *PoolHandle, key []byte) ([]byte, error)
	Write(pool *PoolHandle, key []byte, offset int, data []byte) error
	Exists(pool *PoolHandle, key []byte) bool
	Delete(pool *PoolHandle, key []byte) error
	Commit() error
	Abort()
	InUse() bool
}

type transaction struct {
	store  *Store
	access Access
	used   uint64
}

func newTransaction(store *Store, access Access) *transaction {
	return &transaction{
		store:  store,
		access: access,
	}
}

func (t *transaction) begin() error {
	err := t.access.Begin()
	if nil != err {
		return err
	}

	used, err := readUsed(func(key []byte, _ *ldb_opt.ReadOptions) ([]byte, error) {
		return t.access.Get(key)
	})
	if nil != err {
		t.access.Abort()
		return err
	}
	t.used = used
	return nil
}

// Create - allocate a zero filled record
func (t *transaction) Create(pool *PoolHandle, key []byte, size int) error {
	if size <= 0 {
		return fault.ErrInvalidRecordSize
	}
	if t.Exists(pool, key) {
		return fault.ErrRecordExists
	}

	capacity := t.store.capacity
	if 0 != capacity && (t.used+uint64(size) > capacity || t.used+uint64(size) < t.used) {
		return fault.ErrStorageExhausted
	}

	t.access.Put(pool.prefixKey(key), make([]byte, size))
	t.setUsed(t.used + uint64(size))
	return nil
}

// Read - copy of length bytes at offset
func (t *transaction) Read(pool *PoolHandle, key []byte, offset int, length int) ([]byte, error) {
	record, err := t.get(pool, key)
	if nil != err {
		return nil, err
	}
	if offset < 0 || length < 0 || offset+length > len(record) {
		return nil, fault.ErrRecordOutOfRange
	}
	result := make([]byte, length)
	copy(result, record[offset:offset+length])
	return result, nil
}

// ReadAll - copy of the whole record
func (t *transaction) ReadAll(pool *PoolHandle, key []byte) ([]byte, error) {
	record, err := t.get(pool, key)
	if nil != err {
		return nil, err
	}
	return append([]byte{}, record...), nil
}

// Write - overwrite bytes at offset, the record size is unchanged
func (t *transaction) Write(pool *PoolHandle, key []byte, offset int, data []byte) error {
	record, err := t.get(pool, key)
	if nil != err {
		return err
	}
	if offset < 0 || offset+len(data) > len(record) {
		return fault.ErrRecordOutOfRange
	}
	updated := make([]byte, len(record))
	copy(updated, record)
	copy(updated[offset:], data)
	t.access.Put(pool.prefixKey(key), updated)
	return nil
}

// Exists - never fails, a database error is fatal
func (t *transaction) Exists(pool *PoolHandle, key []byte) bool {
	found, err := t.access.Has(pool.prefixKey(key))
	logger.PanicIfError("transaction.Exists", err)
	return found
}

// Delete - remove a record and release its allocation
func (t *transaction) Delete(pool *PoolHandle, key []byte) error {
	record, err := t.get(pool, key)
	if nil != err {
		return err
	}
	t.access.Delete(pool.prefixKey(key))
	t.setUsed(t.used - uint64(len(record)))
	return nil
}

func (t *transaction) Commit() error {
	t.store.RLock()
	defer t.store.RUnlock()
	if nil == t.store.db {
		t.access.Abort()
		return fault.ErrNotInitialised
	}
	return t.access.Commit()
}

func (t *transaction) Abort() {
	t.access.Abort()
}

func (t *transaction) InUse() bool {
	return t.access.InUse()
}

func (t *transaction) get(pool *PoolHandle, key []byte) ([]byte, error) {
	if !t.access.InUse() {
		return nil, fault.ErrTransactionNotInUse
	}
	record, err := t.access.Get(pool.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrRecordNotFound
	}
	return record, err
}

func (t *transaction) setUsed(n uint64) {
	t.used = n
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	t.access.Put(usedKey, buffer)
}
