// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/logger"
)

// Pools - the set of record pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	Config     *PoolHandle `prefix:"config"`
	Treasury   *PoolHandle `prefix:"treasury"`
	Board      *PoolHandle `prefix:"board"`
	Miner      *PoolHandle `prefix:"miner:"`
	Stake      *PoolHandle `prefix:"stake:"`
	Round      *PoolHandle `prefix:"round:"`
	Automation *PoolHandle `prefix:"automation:"`
	Var        *PoolHandle `prefix:"var:"`
	Outbound   *PoolHandle `prefix:"outbound:"`
}

// keys outside every pool; a record prefix never starts with zero
var (
	versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}
	usedKey    = []byte{0x00, 'U', 'S', 'E', 'D'}
)

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Store - an open record database
type Store struct {
	sync.RWMutex

	Pool Pools

	log      *logger.L
	db       *leveldb.DB
	capacity uint64
	trx      *transaction
}

// Open - open up the database file
//
// capacity is the maximum number of record bytes that can be
// allocated, zero means unlimited
func Open(database string, readOnly bool, capacity uint64) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(database, opt)
	if nil != err {
		return nil, err
	}
	return newStore(db, readOnly, capacity)
}

// OpenMemory - database held only in memory, for tests and tools
func OpenMemory(capacity uint64) (*Store, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return newStore(db, ReadWrite, capacity)
}

func newStore(db *leveldb.DB, readOnly bool, capacity uint64) (*Store, error) {
	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	log := logger.New("storage")

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fault.ErrUnsupportedDatabaseVersion
	}

	if 0 == version {
		if readOnly {
			log.Critical("empty database cannot be opened read only")
			return nil, fault.ErrUnsupportedDatabaseVersion
		}
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return nil, err
		}
	}

	s := &Store{
		log:      log,
		db:       db,
		capacity: capacity,
	}
	s.trx = newTransaction(s, newDA(db, new(leveldb.Batch), newCache()))

	err = s.populatePools()
	if nil != err {
		return nil, err
	}

	log.Infof("opened database version: %d  capacity: %d", currentDBVersion, capacity)

	ok = true // prevent db close
	return s, nil
}

// fill in the pool handles from the struct tags
func (s *Store) populatePools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(s.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&s.Pool).Elem()

	seen := make([]string, 0, poolType.NumField())

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefix := fieldInfo.Tag.Get("prefix")
		if "" == prefix || 0 == prefix[0] {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefix)
		}

		// no prefix may be the start of another or pool keys would overlap
		for _, other := range seen {
			if strings.HasPrefix(prefix, other) || strings.HasPrefix(other, prefix) {
				return fault.ErrInvalidPoolPrefix
			}
		}
		seen = append(seen, prefix)

		p := &PoolHandle{
			name:   fieldInfo.Name,
			prefix: []byte(prefix),
			store:  s,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Close - close the database
func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()
	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
}

// Used - number of record bytes currently allocated
func (s *Store) Used() uint64 {
	s.RLock()
	defer s.RUnlock()
	n, err := readUsed(s.db.Get)
	logger.PanicIfError("storage.Used", err)
	return n
}

// Capacity - configured allocation limit, zero is unlimited
func (s *Store) Capacity() uint64 {
	return s.capacity
}

// Begin - start the single write transaction
func (s *Store) Begin() (Transaction, error) {
	err := s.trx.begin()
	if nil != err {
		return nil, err
	}
	return s.trx, nil
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// read the allocation counter through any getter
func readUsed(get func([]byte, *ldb_opt.ReadOptions) ([]byte, error)) (uint64, error) {
	value, err := get(usedKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}
	if 8 != len(value) {
		return 0, fault.ErrInvalidRecordSize
	}
	return binary.BigEndian.Uint64(value), nil
}
