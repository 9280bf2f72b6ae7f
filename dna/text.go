// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dna

import (
	"encoding/base64"
	"fmt"

	"github.com/bitmark-inc/pixeldna/fault"
)

// Decode - convert standard base64 text to a grid
func Decode(text string) (*Grid, error) {
	return decode(base64.StdEncoding, text)
}

// DecodeURL - convert URL safe base64 text to a grid
func DecodeURL(text string) (*Grid, error) {
	return decode(base64.URLEncoding, text)
}

// Encode - convert a grid to standard base64 text
func Encode(g *Grid) string {
	return base64.StdEncoding.EncodeToString(g.raw[:])
}

// String - standard base64 text
func (g *Grid) String() string {
	return Encode(g)
}

// URLString - URL safe base64 text
func (g *Grid) URLString() string {
	return base64.URLEncoding.EncodeToString(g.raw[:])
}

// MarshalText - for JSON output
func (g Grid) MarshalText() ([]byte, error) {
	return []byte(Encode(&g)), nil
}

// UnmarshalText - for JSON input
func (g *Grid) UnmarshalText(text []byte) error {
	d, err := Decode(string(text))
	if nil != err {
		return err
	}
	*g = *d
	return nil
}

func decode(encoding *base64.Encoding, text string) (*Grid, error) {
	if encoding.EncodedLen(ByteLength) != len(text) {
		return nil, fmt.Errorf("text length: %d: %w", len(text), fault.MalformedInput)
	}
	g := &Grid{}
	n, err := encoding.Decode(g.raw[:], []byte(text))
	if nil != err {
		return nil, fmt.Errorf("%v: %w", err, fault.MalformedInput)
	}
	if ByteLength != n {
		return nil, fmt.Errorf("decoded %d bytes: %w", n, fault.MalformedInput)
	}
	return g, nil
}
