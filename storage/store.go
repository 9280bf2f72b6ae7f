// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pixeldna/fault"
)

// backend names
const (
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
	BackendNone    = "none"
)

// defaults
const (
	DefaultDirectory = "images.leveldb"
	DefaultExpiry    = "24h"
)

// Configuration - storage section of the configuration file
type Configuration struct {
	Backend   string `gluamapper:"backend" json:"backend"`
	Directory string `gluamapper:"directory" json:"directory"`
	Expiry    string `gluamapper:"expiry" json:"expiry"`
}

// Store - get/put of opaque blobs
type Store interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, data []byte) error
	Close() error
}

// New - open the configured backend
//
// the directory must already be an absolute path
func New(configuration *Configuration) (Store, error) {
	log := logger.New("storage")

	switch configuration.Backend {
	case BackendLevelDB:
		log.Infof("leveldb: %q", configuration.Directory)
		return NewLevelDB(log, configuration.Directory)

	case BackendMemory:
		expiry := configuration.Expiry
		if "" == expiry {
			expiry = DefaultExpiry
		}
		d, err := time.ParseDuration(expiry)
		if nil != err {
			return nil, fmt.Errorf("expiry: %q: %w", expiry, err)
		}
		log.Infof("memory: expiry: %s", d)
		return NewMemory(d), nil

	case BackendNone, "":
		log.Info("disabled")
		return None{}, nil

	default:
		log.Errorf("unknown backend: %q", configuration.Backend)
		return nil, fmt.Errorf("%q: %w", configuration.Backend, fault.StorageBackend)
	}
}
