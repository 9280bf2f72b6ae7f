// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package viewer

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/bitmark-inc/pixeldna/fault"
)

// PageSize - items per page of ItemsQuery
const PageSize = 4

// stack entry types
const (
	cellType   = "cell"
	numberType = "num"
)

var (
	errEmptyStack = errors.New("empty stack")
	errNoStack    = errors.New("missing stack")
)

// Query - one of DNAQuery, PriceQuery, ItemsQuery, ExclusivesQuery
type Query interface {
	query()
}

// DNAQuery - the DNA bag of cells held by an item contract
type DNAQuery struct {
	Item *address.Address
}

// PriceQuery - current item price of the store, result is uint32
type PriceQuery struct {
	Store *address.Address
}

// ItemsQuery - items of a collection held by one owner
//
// a negative page fetches without paging
type ItemsQuery struct {
	Collection *address.Address
	Owner      *address.Address
	Page       int
}

// ExclusivesQuery - index to price map of items offered by the store
type ExclusivesQuery struct {
	Store *address.Address
}

func (DNAQuery) query()        {}
func (PriceQuery) query()      {}
func (ItemsQuery) query()      {}
func (ExclusivesQuery) query() {}

// Item - entry of a collection
type Item struct {
	Index       uint32 `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ItemsPage - result of ItemsQuery
type ItemsPage struct {
	Items       []Item `json:"items"`
	HasNextPage bool   `json:"has_next_page"`
}

// turn a query into an HTTP call
func prepare(q Query) (call, error) {
	switch q := q.(type) {
	case DNAQuery:
		return runGetMethod("dna", q.Item)

	case PriceQuery:
		return runGetMethod("item_price", q.Store)

	case ExclusivesQuery:
		return runGetMethod("exclusives_offered", q.Store)

	case ItemsQuery:
		if nil == q.Collection || nil == q.Owner {
			return call{}, fault.InvalidAddress
		}
		params := map[string]interface{}{
			"collection_address": q.Collection.String(),
			"owner_address":      q.Owner.String(),
		}
		if q.Page >= 0 {
			params["limit"] = PageSize + 1
			params["offset"] = q.Page * PageSize
		}
		return call{
			operation: "nft/items",
			verb:      http.MethodGet,
			path:      "nft/items",
			params:    params,
		}, nil

	default:
		return call{}, fmt.Errorf("viewer: unsupported query: %T", q)
	}
}

func runGetMethod(method string, a *address.Address) (call, error) {
	if nil == a {
		return call{}, fault.InvalidAddress
	}
	return call{
		operation: method,
		verb:      http.MethodPost,
		path:      "runGetMethod",
		params: map[string]interface{}{
			"address": a.String(),
			"method":  method,
			"stack":   []interface{}{},
		},
	}, nil
}

// parse the body of a successful reply
func decode(q Query, body []byte) (interface{}, error) {
	switch q := q.(type) {
	case DNAQuery:
		entry, err := lastEntry(body)
		if nil != err {
			return nil, err
		}
		if cellType != entry.Type {
			return nil, fmt.Errorf("stack type: %q", entry.Type)
		}
		boc := ""
		if err := json.Unmarshal(entry.Value, &boc); nil != err {
			return nil, err
		}
		return boc, nil

	case PriceQuery:
		entry, err := lastEntry(body)
		if nil != err {
			return nil, err
		}
		if numberType != entry.Type {
			return nil, fmt.Errorf("stack type: %q", entry.Type)
		}
		return parsePrice(entry.Value)

	case ExclusivesQuery:
		return parseExclusives(body)

	case ItemsQuery:
		return parseItems(body, q.Page >= 0)

	default:
		return nil, fmt.Errorf("viewer: unsupported query: %T", q)
	}
}

// last element of the stack of a successful get method
func lastEntry(body []byte) (stackEntry, error) {
	env := envelope{}
	if err := json.Unmarshal(body, &env); nil != err {
		return stackEntry{}, err
	}
	if nil != env.ExitCode && 0 != *env.ExitCode {
		return stackEntry{}, fmt.Errorf("exit code: %d", *env.ExitCode)
	}
	if nil == env.Stack {
		return stackEntry{}, errNoStack
	}
	if 0 == len(env.Stack) {
		return stackEntry{}, errEmptyStack
	}
	return env.Stack[len(env.Stack)-1], nil
}

// numbers arrive as hex text: "0x1f4"
func parsePrice(value json.RawMessage) (uint32, error) {
	s := ""
	if err := json.Unmarshal(value, &s); nil != err {
		return 0, err
	}
	if len(s) < 3 || "0x" != s[:2] {
		return 0, fmt.Errorf("number: %q", s)
	}
	n, err := strconv.ParseUint(s[2:], 16, 32)
	if nil != err {
		return 0, err
	}
	return uint32(n), nil
}

// the stack holds a dictionary cell of uint32 index to int257 price;
// a null value means nothing is offered
func parseExclusives(body []byte) (map[uint32]uint32, error) {
	entry, err := lastEntry(body)
	if nil != err {
		return nil, err
	}

	offered := make(map[uint32]uint32)
	if cellType != entry.Type {
		return offered, nil
	}
	var boc *string
	if err := json.Unmarshal(entry.Value, &boc); nil != err {
		return nil, err
	}
	if nil == boc || "" == *boc {
		return offered, nil
	}

	data, err := base64.StdEncoding.DecodeString(*boc)
	if nil != err {
		return nil, err
	}
	root, err := cell.FromBOC(data)
	if nil != err {
		return nil, err
	}

	entries, err := root.AsDict(32).LoadAll()
	if nil != err {
		return nil, err
	}
	for _, kv := range entries {
		index, err := kv.Key.LoadUInt(32)
		if nil != err {
			return nil, err
		}
		price, err := kv.Value.LoadBigInt(257)
		if nil != err {
			return nil, err
		}
		if price.Sign() < 0 || !price.IsUint64() || price.Uint64() > math.MaxUint32 {
			return nil, fmt.Errorf("item: %d  price out of range: %s", index, price)
		}
		offered[uint32(index)] = uint32(price.Uint64())
	}
	return offered, nil
}

// a paged reply holds one extra item to detect a following page
func parseItems(body []byte, paged bool) (*ItemsPage, error) {
	type content struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	type item struct {
		Index   string  `json:"index"`
		Content content `json:"content"`
	}
	type payload struct {
		Items []item `json:"nft_items"`
	}

	p := payload{}
	if err := json.Unmarshal(body, &p); nil != err {
		return nil, err
	}
	if nil == p.Items {
		return nil, errors.New("missing nft_items")
	}

	items := p.Items
	page := &ItemsPage{}
	if paged && len(items) > PageSize {
		items = items[:PageSize]
		page.HasNextPage = true
	}

	page.Items = make([]Item, 0, len(items))
	for _, it := range items {
		index, err := strconv.ParseUint(it.Index, 10, 32)
		if nil != err {
			return nil, fmt.Errorf("invalid item index: %q", it.Index)
		}
		page.Items = append(page.Items, Item{
			Index:       uint32(index),
			Name:        it.Content.Name,
			Description: it.Content.Description,
		})
	}
	return page, nil
}
