// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:generate mockgen -source=interfaces.go -destination=mocks/render.go -package=mocks

package render

import (
	"context"

	"github.com/xssnick/tonutils-go/address"

	"github.com/bitmark-inc/pixeldna/dna"
)

// Store - blob store holding rendered images
//
// a missing key is found == false with a nil error
type Store interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, data []byte) error
}

// Fetcher - source of on-chain DNA as a base64 bag of cells
type Fetcher interface {
	DNA(ctx context.Context, item *address.Address) (string, error)
}

// Locator - maps an item index to its contract address
type Locator interface {
	ItemAddress(index uint32) (*address.Address, error)
}

// Rasterizer - turns a grid into image bytes
type Rasterizer interface {
	Rasterize(g *dna.Grid, scale int) ([]byte, error)
}
