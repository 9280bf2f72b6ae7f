// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:generate mockgen -source=interfaces.go -destination=mocks/server.go -package=mocks

package server

import (
	"context"

	"github.com/xssnick/tonutils-go/address"

	"github.com/bitmark-inc/pixeldna/render"
	"github.com/bitmark-inc/pixeldna/viewer"
)

// Renderer - produces PNG images
type Renderer interface {
	RenderDNA(ctx context.Context, text string) ([]byte, error)
	RenderItem(ctx context.Context, index uint32) ([]byte, error)
	Statistics() render.Statistics
}

// Chain - on-chain queries answered through the viewer
type Chain interface {
	Items(ctx context.Context, collection *address.Address, owner *address.Address, page int) (*viewer.ItemsPage, error)
	Exclusives(ctx context.Context, collection *address.Address, store *address.Address) ([]viewer.Exclusive, error)
	ItemPrice(ctx context.Context, store *address.Address) (uint32, error)
	Statistics() viewer.Statistics
}
