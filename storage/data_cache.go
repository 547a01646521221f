// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// Cache - read-your-writes overlay for an open transaction
type Cache interface {
	Get(string) ([]byte, cacheState)
	Set(dbOperation, string, []byte)
	Clear()
}

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

type cacheState int

const (
	notCached cacheState = iota
	cachedPut
	cachedDelete
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    dbOperation
	value []byte
}

// entries live exactly as long as the transaction, which flushes them
func newCache() *dbCache {
	return &dbCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (c *dbCache) Get(key string) ([]byte, cacheState) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, notCached
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return nil, cachedDelete
	}

	return data.value, cachedPut
}

func (c *dbCache) Set(op dbOperation, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, cache.NoExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
