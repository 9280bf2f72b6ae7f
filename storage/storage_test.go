// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/pixeldna/fault"
	"github.com/bitmark-inc/pixeldna/storage"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// behaviour every backend that keeps data must have
func checkStore(t *testing.T, s storage.Store) {
	data, found, err := s.Get("dna/missing")
	assert.Nil(t, err, "missing key error")
	assert.False(t, found, "missing key found")
	assert.Nil(t, data, "missing key data")

	assert.Nil(t, s.Put("item/one", []byte("first")), "put")
	data, found, err = s.Get("item/one")
	assert.Nil(t, err, "get error")
	assert.True(t, found, "stored key not found")
	assert.Equal(t, []byte("first"), data, "stored data")

	assert.Nil(t, s.Put("item/one", []byte("second")), "overwrite")
	data, _, _ = s.Get("item/one")
	assert.Equal(t, []byte("second"), data, "last write wins")
}

func TestLevelDB(t *testing.T) {
	name := filepath.Join(t.TempDir(), "images.leveldb")
	s, err := storage.New(&storage.Configuration{
		Backend:   storage.BackendLevelDB,
		Directory: name,
	})
	assert.Nil(t, err, "open")
	checkStore(t, s)
	assert.Nil(t, s.Close(), "close")

	_, _, err = s.Get("item/one")
	assert.Equal(t, fault.NotInitialised, err, "get after close")
	assert.Nil(t, s.Close(), "second close")

	// data survives a reopen
	s, err = storage.New(&storage.Configuration{
		Backend:   storage.BackendLevelDB,
		Directory: name,
	})
	assert.Nil(t, err, "reopen")
	defer s.Close()
	data, found, err := s.Get("item/one")
	assert.Nil(t, err, "get after reopen")
	assert.True(t, found, "found after reopen")
	assert.Equal(t, []byte("second"), data, "data after reopen")
}

func TestLevelDBVersion(t *testing.T) {
	name := filepath.Join(t.TempDir(), "old.leveldb")
	db, err := leveldb.OpenFile(name, nil)
	assert.Nil(t, err, "raw open")
	assert.Nil(t, db.Put([]byte{0x00, 'V'}, []byte{0, 0, 0, 9}, nil), "raw put")
	assert.Nil(t, db.Close(), "raw close")

	_, err = storage.New(&storage.Configuration{
		Backend:   storage.BackendLevelDB,
		Directory: name,
	})
	assert.NotNil(t, err, "incompatible version must fail")
}

func TestMemory(t *testing.T) {
	s, err := storage.New(&storage.Configuration{
		Backend: storage.BackendMemory,
		Expiry:  "1h",
	})
	assert.Nil(t, err, "new")
	checkStore(t, s)

	// stored bytes are a copy
	buffer := []byte("abc")
	assert.Nil(t, s.Put("item/two", buffer), "put")
	buffer[0] = 'x'
	data, _, _ := s.Get("item/two")
	assert.Equal(t, []byte("abc"), data, "copy")

	assert.Nil(t, s.Close(), "close")
	_, found, _ := s.Get("item/two")
	assert.False(t, found, "flushed on close")
}

func TestMemoryExpiry(t *testing.T) {
	m := storage.NewMemory(20 * time.Millisecond)
	assert.Nil(t, m.Put("item/short", []byte("x")), "put")
	assert.Equal(t, 1, m.Count(), "count")

	time.Sleep(50 * time.Millisecond)
	_, found, err := m.Get("item/short")
	assert.Nil(t, err, "get error")
	assert.False(t, found, "expired entry")
}

func TestNone(t *testing.T) {
	s, err := storage.New(&storage.Configuration{Backend: storage.BackendNone})
	assert.Nil(t, err, "new")
	assert.Nil(t, s.Put("item/one", []byte("x")), "put")
	_, found, err := s.Get("item/one")
	assert.Nil(t, err, "get error")
	assert.False(t, found, "nothing is kept")
	assert.Nil(t, s.Close(), "close")
}

func TestUnknownBackend(t *testing.T) {
	_, err := storage.New(&storage.Configuration{Backend: "s3"})
	assert.True(t, fault.IsErrInvalid(err), "unknown backend")

	_, err = storage.New(&storage.Configuration{Backend: storage.BackendMemory, Expiry: "forever"})
	assert.NotNil(t, err, "bad expiry")
}

func TestKeys(t *testing.T) {
	raw := make([]byte, 3072)
	k1, err := storage.DNAKey(raw)
	assert.Nil(t, err, "dna key")
	assert.True(t, strings.HasPrefix(k1, "dna/bafkrei"), "cid v1 raw sha2-256: %s", k1)

	k2, _ := storage.DNAKey(raw)
	assert.Equal(t, k1, k2, "deterministic")

	raw[100] = 1
	k3, _ := storage.DNAKey(raw)
	assert.NotEqual(t, k1, k3, "content addressed")

	assert.Equal(t, "item/EQabc", storage.ItemKey("EQabc"), "item key")
}
