// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/pixeldna/fault"
)

// all image records share this prefix
const imagePrefix = 'P'

// layout version of the database
const currentVersion = 1

var versionKey = []byte{0x00, 'V'}

// LevelDB - persistent store
type LevelDB struct {
	sync.RWMutex
	log      *logger.L
	database *leveldb.DB
}

// NewLevelDB - open or create the database
func NewLevelDB(log *logger.L, name string) (*LevelDB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		buffer := make([]byte, 4)
		binary.BigEndian.PutUint32(buffer, currentVersion)
		err = db.Put(versionKey, buffer, nil)
	} else if nil == err {
		if 4 != len(versionValue) {
			err = fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
		} else if version := binary.BigEndian.Uint32(versionValue); currentVersion != version {
			err = fmt.Errorf("incompatible database version: expected: %d  actual: %d", currentVersion, version)
		}
	}
	if nil != err {
		db.Close()
		return nil, err
	}

	return &LevelDB{
		log:      log,
		database: db,
	}, nil
}

// prepend the prefix onto the key
func prefixKey(key string) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = imagePrefix
	return append(prefixedKey, key...)
}

// Get - read a blob, found is false if it is not stored
func (l *LevelDB) Get(key string) ([]byte, bool, error) {
	l.RLock()
	defer l.RUnlock()

	if nil == l.database {
		return nil, false, fault.NotInitialised
	}
	value, err := l.database.Get(prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	} else if nil != err {
		return nil, false, err
	}
	return value, true, nil
}

// Put - write a blob, replacing any previous value
func (l *LevelDB) Put(key string, data []byte) error {
	l.RLock()
	defer l.RUnlock()

	if nil == l.database {
		return fault.NotInitialised
	}
	return l.database.Put(prefixKey(key), data, nil)
}

// Close - flush and close the database
func (l *LevelDB) Close() error {
	l.Lock()
	defer l.Unlock()

	if nil == l.database {
		return nil
	}
	err := l.database.Close()
	l.database = nil
	l.log.Info("closed")
	return err
}
