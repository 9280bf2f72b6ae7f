// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package viewer

import (
	"context"
	"sort"

	"github.com/xssnick/tonutils-go/address"
)

// Exclusive - an item offered by the store and its price
type Exclusive struct {
	Item  Item   `json:"item"`
	Price uint32 `json:"price"`
}

// DNA - base64 bag of cells holding the DNA of an item
func (c *Client) DNA(ctx context.Context, item *address.Address) (string, error) {
	result, err := c.Submit(ctx, DNAQuery{Item: item})
	if nil != err {
		return "", err
	}
	return result.(string), nil
}

// ItemPrice - current price of new items in the store
func (c *Client) ItemPrice(ctx context.Context, store *address.Address) (uint32, error) {
	result, err := c.Submit(ctx, PriceQuery{Store: store})
	if nil != err {
		return 0, err
	}
	return result.(uint32), nil
}

// Items - one page of the items owned by an address
func (c *Client) Items(ctx context.Context, collection *address.Address, owner *address.Address, page int) (*ItemsPage, error) {
	result, err := c.Submit(ctx, ItemsQuery{Collection: collection, Owner: owner, Page: page})
	if nil != err {
		return nil, err
	}
	return result.(*ItemsPage), nil
}

// Exclusives - items offered by the store in index order
//
// offers for items the store no longer holds are skipped
func (c *Client) Exclusives(ctx context.Context, collection *address.Address, store *address.Address) ([]Exclusive, error) {
	result, err := c.Submit(ctx, ExclusivesQuery{Store: store})
	if nil != err {
		return nil, err
	}
	offered := result.(map[uint32]uint32)

	held, err := c.Items(ctx, collection, store, -1)
	if nil != err {
		return nil, err
	}

	items := make(map[uint32]Item, len(held.Items))
	for _, item := range held.Items {
		items[item.Index] = item
	}

	indices := make([]uint32, 0, len(offered))
	for index := range offered {
		indices = append(indices, index)
	}
	sort.Slice(indices, func(i, j int) bool {
		return indices[i] < indices[j]
	})

	exclusives := make([]Exclusive, 0, len(indices))
	for _, index := range indices {
		item, ok := items[index]
		if !ok {
			continue
		}
		exclusives = append(exclusives, Exclusive{
			Item:  item,
			Price: offered[index],
		})
	}
	return exclusives, nil
}
