// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cell - store a DNA grid in a tree of TON cells
//
// A cell holds at most 1023 bits and 4 references, so the 24,576 bit
// grid is spread over 25 cells in a fixed shape:
//
//  level 0        root                          1023 bits
//  level 1        4 × branch                    1023 bits each
//  level 2        4 × leaf under each branch    1023 bits each
//  level 3        4 × tail under the first      1023, 1023, 1023, 24 bits
//                 leaf of the first branch only
//
//  1023 + 4×1023 + 16×1023 + 3×1023 + 24 = 24,576
//
// Bits are taken from the grid in depth first order: a node's own
// payload comes before its children.  Decoding walks the same shape
// so any change to the order breaks existing on-chain data.
package cell
