// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package render - cache-aside image rendering
//
// each request checks the store first; a hit is returned untouched.
// On a miss the DNA is obtained (given directly, or fetched from the
// item contract), rasterized and returned, and the image is written
// to the store in the background after the caller has its bytes.
// A failed write is only logged.
package render
