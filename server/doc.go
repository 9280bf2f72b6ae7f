// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - HTTP front end for the renderer and the viewer
//
// routes:
//
//   GET /img/:dna                       PNG of URL-safe base64 DNA
//   GET /item/:index                    PNG of the DNA held by an item
//   GET /api/nfts?owner_address=&page=  one page of an owner's items
//   GET /api/exclusives                 items offered by the store
//   GET /api/item_price                 current price of new items
//   GET /health                         "ok"
//   GET /details                        counters, version and uptime
//
// /api routes allow any origin.  Caller errors answer 400, viewer
// overload answers 429 and everything else answers an opaque 500
// with the cause logged.
package server
