// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dna - the bit packed pixel data of one piece of art
//
// A picture is 64x64 pixels, each pixel is a 6 bit palette code, so
// the whole picture is exactly 24,576 bits (3,072 bytes).
//
//  bit n of the grid  = bit (n % 8) of byte (n / 8)     (LSB first)
//  pixel p            = bits 6p … 6p+5                  (LSB first)
//  pixel (x, y)       = pixel 64y + x                   (row major)
//
// The text form is standard padded base64 of the 3,072 bytes; the URL
// form uses the URL safe alphabet for use in request paths.
package dna
