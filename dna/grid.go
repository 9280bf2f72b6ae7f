// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dna

import (
	"fmt"

	"github.com/bitmark-inc/pixeldna/fault"
)

// picture geometry
const (
	Width        = 64
	Height       = 64
	BitsPerPixel = 6
	Codes        = 1 << BitsPerPixel

	TotalBits  = Width * Height * BitsPerPixel // 24,576
	ByteLength = TotalBits / 8                 // 3,072
)

// Grid - the immutable bit sequence of one picture
type Grid struct {
	raw [ByteLength]byte
}

// FromBytes - build a grid from its raw 3,072 byte buffer
func FromBytes(buffer []byte) (*Grid, error) {
	if ByteLength != len(buffer) {
		return nil, fmt.Errorf("%d bytes: %w", len(buffer), fault.MalformedInput)
	}
	g := &Grid{}
	copy(g.raw[:], buffer)
	return g, nil
}

// Bytes - a copy of the raw buffer
func (g *Grid) Bytes() []byte {
	buffer := make([]byte, ByteLength)
	copy(buffer, g.raw[:])
	return buffer
}

// Bit - read a single bit, panics if out of range
func (g *Grid) Bit(n int) bool {
	return 0 != g.raw[n/8]&(1<<(n%8))
}

// Slice - copy out count bits starting at offset
func (g *Grid) Slice(offset int, count int) ([]bool, error) {
	if offset < 0 || count < 0 || offset+count > TotalBits {
		return nil, fmt.Errorf("slice [%d:%d] beyond %d bits", offset, offset+count, TotalBits)
	}
	bits := make([]bool, count)
	for i := range bits {
		bits[i] = g.Bit(offset + i)
	}
	return bits, nil
}

// Equal - true if both grids hold the same bits
func (g *Grid) Equal(other *Grid) bool {
	return g.raw == other.raw
}

// Builder - accumulate bits in order to produce a grid
//
// the zero value is ready to use
type Builder struct {
	raw   [ByteLength]byte
	count int
}

// Append - add bits after those already present
func (b *Builder) Append(bits ...bool) error {
	if b.count+len(bits) > TotalBits {
		return fmt.Errorf("append %d bits at %d: %w", len(bits), b.count, fault.MalformedInput)
	}
	for _, bit := range bits {
		if bit {
			b.raw[b.count/8] |= 1 << (b.count % 8)
		}
		b.count += 1
	}
	return nil
}

// Len - number of bits appended so far
func (b *Builder) Len() int {
	return b.count
}

// Grid - finish building, only a completely filled builder succeeds
func (b *Builder) Grid() (*Grid, error) {
	if TotalBits != b.count {
		return nil, fmt.Errorf("%d of %d bits: %w", b.count, TotalBits, fault.MalformedInput)
	}
	return &Grid{raw: b.raw}, nil
}
