// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cell

import (
	"encoding/base64"
	"fmt"

	tvm "github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/bitmark-inc/pixeldna/dna"
	"github.com/bitmark-inc/pixeldna/fault"
)

// ToCell - convert a node tree to TON cells
//
// each whole byte of a node payload is packed least significant bit
// first, any trailing bits follow one per cell bit in order
func ToCell(n *Node) (*tvm.Cell, error) {
	if len(n.Bits) > MaximumBits {
		return nil, fmt.Errorf("cell: %d bits exceeds %d", len(n.Bits), MaximumBits)
	}
	if len(n.Children) > MaximumReferences {
		return nil, fmt.Errorf("cell: %d references exceeds %d", len(n.Children), MaximumReferences)
	}

	b := tvm.BeginCell()
	if err := b.StoreSlice(pack(n.Bits), uint(len(n.Bits))); nil != err {
		return nil, err
	}
	for _, child := range n.Children {
		c, err := ToCell(child)
		if nil != err {
			return nil, err
		}
		if err := b.StoreRef(c); nil != err {
			return nil, err
		}
	}
	return b.EndCell(), nil
}

// FromCell - convert TON cells to a node tree
func FromCell(c *tvm.Cell) (*Node, error) {
	s := c.BeginParse()

	size := s.BitsLeft()
	data, err := s.LoadSlice(size)
	if nil != err {
		return nil, fmt.Errorf("%v: %w", err, fault.MalformedTree)
	}

	n := &Node{
		Bits: unpack(data, int(size)),
	}
	refs := int(s.RefsNum())
	for i := 0; i < refs; i += 1 {
		ref, err := s.LoadRefCell()
		if nil != err {
			return nil, fmt.Errorf("%v: %w", err, fault.MalformedTree)
		}
		child, err := FromCell(ref)
		if nil != err {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// EncodeBOC - grid to base64 bag of cells, as stored on-chain
func EncodeBOC(g *dna.Grid) (string, error) {
	n, err := Serialise(g)
	if nil != err {
		return "", err
	}
	c, err := ToCell(n)
	if nil != err {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(c.ToBOC()), nil
}

// DecodeBOC - base64 bag of cells, as returned by a get method, to grid
func DecodeBOC(text string) (*dna.Grid, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if nil != err {
		return nil, fmt.Errorf("boc: %v: %w", err, fault.MalformedTree)
	}
	c, err := tvm.FromBOC(data)
	if nil != err {
		return nil, fmt.Errorf("boc: %v: %w", err, fault.MalformedTree)
	}
	n, err := FromCell(c)
	if nil != err {
		return nil, err
	}
	return Deserialise(n)
}

// pack a payload into cell data
//
// LoadSlice and StoreSlice treat the data most significant bit
// first, so whole bytes hold their bits least significant first while
// the partial tail byte is filled from the top
func pack(bits []bool) []byte {
	whole := len(bits) / 8 * 8
	data := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if !bit {
			continue
		}
		if i < whole {
			data[i/8] |= 0x01 << (i % 8)
		} else {
			data[i/8] |= 0x80 >> (i % 8)
		}
	}
	return data
}

func unpack(data []byte, count int) []bool {
	whole := count / 8 * 8
	bits := make([]bool, count)
	for i := range bits {
		if i < whole {
			bits[i] = 0 != data[i/8]&(0x01<<(i%8))
		} else {
			bits[i] = 0 != data[i/8]&(0x80>>(i%8))
		}
	}
	return bits
}
