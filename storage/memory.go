// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Memory - in process store with expiry
type Memory struct {
	items *cache.Cache
}

// NewMemory - entries expire after the given time
func NewMemory(expiry time.Duration) *Memory {
	return &Memory{
		items: cache.New(expiry, 2*expiry),
	}
}

// Get - read a blob, found is false if absent or expired
func (m *Memory) Get(key string) ([]byte, bool, error) {
	value, found := m.items.Get(key)
	if !found {
		return nil, false, nil
	}
	return value.([]byte), true, nil
}

// Put - store a copy of the blob
func (m *Memory) Put(key string, data []byte) error {
	m.items.Set(key, append([]byte{}, data...), cache.DefaultExpiration)
	return nil
}

// Close - drop everything
func (m *Memory) Close() error {
	m.items.Flush()
	return nil
}

// Count - number of stored entries, including expired ones not yet removed
func (m *Memory) Count() int {
	return m.items.ItemCount()
}

// None - store that keeps nothing
type None struct{}

// Get - always a miss
func (None) Get(key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Put - discard
func (None) Put(key string, data []byte) error {
	return nil
}

// Close - nothing to do
func (None) Close() error {
	return nil
}
