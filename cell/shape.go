// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cell

import (
	"github.com/bitmark-inc/pixeldna/dna"
)

// capacity of a single cell
const (
	MaximumBits       = 1023
	MaximumReferences = 4
)

// remainder carried by the last tail cell
const tailBits = 24

// shape - expected payload size and children of one node
type shape struct {
	bits     int
	children []shape
}

// the layout is constant so build it once
var layout = root()

func init() {
	if dna.TotalBits != layout.total() {
		panic("cell: layout does not cover the grid")
	}
}

func root() shape {
	s := shape{bits: MaximumBits}
	for i := 0; i < MaximumReferences; i += 1 {
		s.children = append(s.children, branch(0 == i))
	}
	return s
}

// level 1: special is true only for the first branch
func branch(special bool) shape {
	s := shape{bits: MaximumBits}
	for i := 0; i < MaximumReferences; i += 1 {
		s.children = append(s.children, leaf(special && 0 == i))
	}
	return s
}

// level 2: only the special leaf carries the tail cells
func leaf(special bool) shape {
	s := shape{bits: MaximumBits}
	if !special {
		return s
	}
	for i := 0; i < MaximumReferences-1; i += 1 {
		s.children = append(s.children, shape{bits: MaximumBits})
	}
	s.children = append(s.children, shape{bits: tailBits})
	return s
}

// total payload bits in this subtree
func (s shape) total() int {
	n := s.bits
	for _, c := range s.children {
		n += c.total()
	}
	return n
}

// number of nodes in this subtree
func (s shape) count() int {
	n := 1
	for _, c := range s.children {
		n += c.count()
	}
	return n
}
