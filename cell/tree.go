// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cell

import (
	"fmt"
	"strconv"

	"github.com/bitmark-inc/pixeldna/dna"
	"github.com/bitmark-inc/pixeldna/fault"
)

// Node - the logical content of one cell
type Node struct {
	Bits     []bool
	Children []*Node
}

// Count - number of nodes in the tree
func (n *Node) Count() int {
	count := 1
	for _, c := range n.Children {
		count += c.Count()
	}
	return count
}

// Serialise - split a grid into the fixed cell tree
func Serialise(g *dna.Grid) (*Node, error) {
	n, offset, err := build(g, layout, 0)
	if nil != err {
		return nil, err
	}
	if dna.TotalBits != offset {
		return nil, fmt.Errorf("cell: serialise consumed %d of %d bits", offset, dna.TotalBits)
	}
	return n, nil
}

// build one node and its subtree starting at offset, returns the
// offset just after the last bit consumed
func build(g *dna.Grid, s shape, offset int) (*Node, int, error) {
	bits, err := g.Slice(offset, s.bits)
	if nil != err {
		return nil, offset, err
	}
	offset += s.bits

	n := &Node{
		Bits:     bits,
		Children: make([]*Node, 0, len(s.children)),
	}
	for _, cs := range s.children {
		var c *Node
		c, offset, err = build(g, cs, offset)
		if nil != err {
			return nil, offset, err
		}
		n.Children = append(n.Children, c)
	}
	return n, offset, nil
}

// Deserialise - join the payloads of a cell tree back into a grid
//
// the tree must match the fixed shape exactly
func Deserialise(n *Node) (*dna.Grid, error) {
	b := &dna.Builder{}
	if err := collect(b, n, layout, "0"); nil != err {
		return nil, err
	}
	g, err := b.Grid()
	if nil != err {
		return nil, fmt.Errorf("%v: %w", err, fault.MalformedTree)
	}
	return g, nil
}

// path names the node for diagnostics, e.g. "0.0.0.3"
func collect(b *dna.Builder, n *Node, s shape, path string) error {
	if nil == n {
		return fmt.Errorf("node %s: missing: %w", path, fault.MalformedTree)
	}
	if s.bits != len(n.Bits) {
		return fmt.Errorf("node %s: %d bits, expected %d: %w", path, len(n.Bits), s.bits, fault.MalformedTree)
	}
	if len(s.children) != len(n.Children) {
		return fmt.Errorf("node %s: %d references, expected %d: %w", path, len(n.Children), len(s.children), fault.MalformedTree)
	}
	if err := b.Append(n.Bits...); nil != err {
		return fmt.Errorf("node %s: %v: %w", path, err, fault.MalformedTree)
	}
	for i, c := range n.Children {
		if err := collect(b, c, s.children[i], path+"."+strconv.Itoa(i)); nil != err {
			return err
		}
	}
	return nil
}
