// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package item_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/bitmark-inc/pixeldna/fault"
	"github.com/bitmark-inc/pixeldna/item"
)

func testCode(marker uint64) string {
	c := cell.BeginCell().MustStoreUInt(marker, 32).EndCell()
	return base64.StdEncoding.EncodeToString(c.ToBOC())
}

func testCollection(b byte) string {
	return address.NewAddress(0x11, 0, bytes.Repeat([]byte{b}, 32)).String()
}

func TestItemAddress(t *testing.T) {
	l, err := item.New(testCollection(1), testCode(0xdeadbeef))
	assert.Nil(t, err, "new locator")

	a1, err := l.ItemAddress(1)
	assert.Nil(t, err, "index 1")
	again, err := l.ItemAddress(1)
	assert.Nil(t, err, "index 1 again")
	assert.Equal(t, a1.String(), again.String(), "derivation must be deterministic")

	a2, err := l.ItemAddress(2)
	assert.Nil(t, err, "index 2")
	assert.NotEqual(t, a1.String(), a2.String(), "indices must differ")

	assert.Equal(t, int32(0), a1.Workchain(), "workchain")
	assert.True(t, a1.IsBounceable(), "bounceable")

	parsed, err := address.ParseAddr(a1.String())
	assert.Nil(t, err, "parse derived address")
	assert.Equal(t, a1.Data(), parsed.Data(), "address hash")

	other, err := item.New(testCollection(2), testCode(0xdeadbeef))
	assert.Nil(t, err, "second collection")
	b1, err := other.ItemAddress(1)
	assert.Nil(t, err, "second collection index 1")
	assert.NotEqual(t, a1.String(), b1.String(), "collections must differ")

	recoded, err := item.New(testCollection(1), testCode(0xcafe))
	assert.Nil(t, err, "second code")
	c1, err := recoded.ItemAddress(1)
	assert.Nil(t, err, "second code index 1")
	assert.NotEqual(t, a1.String(), c1.String(), "code must change the address")
}

// the state init hash is the representation hash of the standard
// layout, checked here by rebuilding it independently
func TestItemAddressLayout(t *testing.T) {
	code := cell.BeginCell().MustStoreUInt(0x1234, 16).EndCell()
	collection := address.NewAddress(0x11, 0, bytes.Repeat([]byte{7}, 32))

	l, err := item.New(collection.String(), base64.StdEncoding.EncodeToString(code.ToBOC()))
	assert.Nil(t, err, "new locator")

	actual, err := l.ItemAddress(77)
	assert.Nil(t, err, "derive")

	data := cell.BeginCell().
		MustStoreUInt(0, 1).
		MustStoreAddr(collection).
		MustStoreUInt(0, 1).
		MustStoreUInt(0, 192).
		MustStoreUInt(0, 32).
		MustStoreUInt(77, 32).
		EndCell()
	stateInit := cell.BeginCell().
		MustStoreBoolBit(false).
		MustStoreBoolBit(false).
		MustStoreBoolBit(true).
		MustStoreBoolBit(true).
		MustStoreBoolBit(false).
		MustStoreRef(code).
		MustStoreRef(data).
		EndCell()
	assert.Equal(t, stateInit.Hash(), actual.Data(), "state init hash")
	assert.Equal(t, l.Collection().String(), collection.String(), "collection")
}

func TestNewErrors(t *testing.T) {
	_, err := item.New("not an address", testCode(1))
	assert.True(t, fault.IsErrInvalid(err), "bad collection: %v", err)

	_, err = item.New(testCollection(1), "!!!")
	assert.True(t, fault.IsErrRecord(err), "bad base64: %v", err)

	_, err = item.New(testCollection(1), "AAAA")
	assert.True(t, fault.IsErrRecord(err), "bad boc: %v", err)
}
