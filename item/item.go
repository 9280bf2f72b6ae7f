// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package item - addresses of the item contracts of a collection
//
// an item contract is deployed by the collection with fixed code and
// initial data of:
//
//   bit      0        (not initialised)
//   address  collection
//   uint257  index
//
// so its address is the hash of that state init in workchain 0
package item

import (
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/bitmark-inc/pixeldna/fault"
)

// flags of a bounceable mainnet address
const bounceable = 0x11

// Locator - derive item addresses for one collection
type Locator struct {
	collection *address.Address
	code       *cell.Cell
}

// New - collection address in user friendly form and the base64
// bag of cells of the item contract code
func New(collection string, code string) (*Locator, error) {
	a, err := address.ParseAddr(collection)
	if nil != err {
		return nil, fmt.Errorf("collection: %v: %w", err, fault.InvalidAddress)
	}

	data, err := base64.StdEncoding.DecodeString(code)
	if nil != err {
		return nil, fmt.Errorf("item code: %v: %w", err, fault.MalformedTree)
	}
	c, err := cell.FromBOC(data)
	if nil != err {
		return nil, fmt.Errorf("item code: %v: %w", err, fault.MalformedTree)
	}

	return &Locator{
		collection: a,
		code:       c,
	}, nil
}

// Collection - the collection address
func (l *Locator) Collection() *address.Address {
	return l.collection
}

// ItemAddress - address of the item contract with the given index
func (l *Locator) ItemAddress(index uint32) (*address.Address, error) {
	b := cell.BeginCell()
	if err := b.StoreUInt(0, 1); nil != err {
		return nil, err
	}
	if err := b.StoreAddr(l.collection); nil != err {
		return nil, err
	}

	// uint257: the top bit is always zero for a 32 bit index
	if err := b.StoreUInt(0, 1); nil != err {
		return nil, err
	}
	if err := b.StoreBigUInt(new(big.Int).SetUint64(uint64(index)), 256); nil != err {
		return nil, err
	}
	data := b.EndCell()

	// split_depth: none, special: none, code: present, data: present, library: empty
	stateInit := cell.BeginCell().
		MustStoreUInt(0b00110, 5).
		MustStoreRef(l.code).
		MustStoreRef(data).
		EndCell()

	return address.NewAddress(bounceable, 0, stateInit.Hash()), nil
}
