// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// key prefixes
const (
	dnaPrefix  = "dna/"
	itemPrefix = "item/"
)

// DNAKey - key for an image rendered from raw DNA bytes:
// a CIDv1 of the raw codec with a sha2-256 multihash
func DNAKey(raw []byte) (string, error) {
	sum, err := multihash.Sum(raw, multihash.SHA2_256, -1)
	if nil != err {
		return "", err
	}
	return dnaPrefix + cid.NewCidV1(cid.Raw, sum).String(), nil
}

// ItemKey - key for the image of an on-chain item
func ItemKey(address string) string {
	return itemPrefix + address
}
