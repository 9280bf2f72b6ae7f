// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dna

import (
	"fmt"

	"github.com/bitmark-inc/pixeldna/fault"
)

// Pixels - palette codes in row major order: Pixels[y][x]
type Pixels [Height][Width]uint8

// FromPixels - pack the low 6 bits of every code
func FromPixels(p Pixels) *Grid {
	g := &Grid{}
	n := 0
	for y := 0; y < Height; y += 1 {
		for x := 0; x < Width; x += 1 {
			code := p[y][x]
			for i := 0; i < BitsPerPixel; i += 1 {
				if 0 != code&(1<<i) {
					g.raw[n/8] |= 1 << (n % 8)
				}
				n += 1
			}
		}
	}
	return g
}

// Pixels - unpack to palette codes
func (g *Grid) Pixels() Pixels {
	var p Pixels
	n := 0
	for y := 0; y < Height; y += 1 {
		for x := 0; x < Width; x += 1 {
			code := uint8(0)
			for i := 0; i < BitsPerPixel; i += 1 {
				if g.Bit(n) {
					code |= 1 << i
				}
				n += 1
			}
			p[y][x] = code
		}
	}
	return p
}

// Code - the palette code of a single pixel
func (g *Grid) Code(x int, y int) uint8 {
	n := (y*Width + x) * BitsPerPixel
	code := uint8(0)
	for i := 0; i < BitsPerPixel; i += 1 {
		if g.Bit(n + i) {
			code |= 1 << i
		}
	}
	return code
}

// PixelsFromRows - validate nested slices (e.g. decoded JSON)
func PixelsFromRows(rows [][]uint8) (Pixels, error) {
	var p Pixels
	if Height != len(rows) {
		return p, fmt.Errorf("%d rows: %w", len(rows), fault.WrongDimensions)
	}
	for y, row := range rows {
		if Width != len(row) {
			return p, fmt.Errorf("row %d has %d pixels: %w", y, len(row), fault.WrongDimensions)
		}
		for x, code := range row {
			if code >= Codes {
				return p, fmt.Errorf("pixel (%d, %d) = %d: %w", x, y, code, fault.InvalidPixel)
			}
			p[y][x] = code
		}
	}
	return p, nil
}

// Rows - nested slices, e.g. for JSON output
func (p Pixels) Rows() [][]uint8 {
	rows := make([][]uint8, Height)
	for y := range rows {
		rows[y] = append([]uint8(nil), p[y][:]...)
	}
	return rows
}
