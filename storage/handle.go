// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/logger"
)

// PoolHandle - a prefixed region of the database
type PoolHandle struct {
	name   string
	prefix []byte
	store  *Store
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Name - field name of the pool
func (p *PoolHandle) Name() string {
	return p.name
}

// Prefix - copy of the key prefix
func (p *PoolHandle) Prefix() []byte {
	return append([]byte{}, p.prefix...)
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, len(p.prefix), len(p.prefix)+len(key))
	copy(prefixedKey, p.prefix)
	return append(prefixedKey, key...)
}

// Get - read a committed record
//
// staged writes of an open transaction are not visible here
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	p.store.RLock()
	defer p.store.RUnlock()
	if nil == p.store.db {
		return nil, fault.ErrNotInitialised
	}
	value, err := p.store.db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrRecordNotFound
	}
	if nil != err {
		return nil, err
	}
	return value, nil
}

// Has - check if a committed record exists
func (p *PoolHandle) Has(key []byte) bool {
	p.store.RLock()
	defer p.store.RUnlock()
	if nil == p.store.db {
		return false
	}
	value, err := p.store.db.Has(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Has", err)
	return value
}
