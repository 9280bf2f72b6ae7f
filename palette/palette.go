// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package palette

import (
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/bitmark-inc/pixeldna/dna"
	"github.com/bitmark-inc/pixeldna/fault"
)

//go:embed palette.json
var defaultTable []byte

// the compiled in table must always parse
var defaultPalette = mustLoad(defaultTable)

// Palette - bijection between pixel codes and colours
type Palette struct {
	colours [dna.Codes]color.RGBA
	codes   map[color.RGBA]uint8
}

// Default - the compiled in palette
func Default() *Palette {
	return defaultPalette
}

// New - create a palette from a list of hex colours
func New(table []string) (*Palette, error) {
	if dna.Codes != len(table) {
		return nil, fmt.Errorf("%d colours: %w", len(table), fault.InvalidPalette)
	}

	p := &Palette{
		codes: make(map[color.RGBA]uint8, dna.Codes),
	}
	for i, s := range table {
		b, err := hex.DecodeString(strings.TrimPrefix(s, "#"))
		if nil != err || 3 != len(b) {
			return nil, fmt.Errorf("colour %d: %q: %w", i, s, fault.InvalidPalette)
		}
		c := color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
		if j, ok := p.codes[c]; ok {
			return nil, fmt.Errorf("colour %d: duplicates colour %d: %w", i, j, fault.InvalidPalette)
		}
		p.colours[i] = c
		p.codes[c] = uint8(i)
	}
	return p, nil
}

// Load - palette from JSON text
func Load(data []byte) (*Palette, error) {
	table := []string{}
	if err := json.Unmarshal(data, &table); nil != err {
		return nil, fmt.Errorf("%v: %w", err, fault.InvalidPalette)
	}
	return New(table)
}

// LoadFile - palette from a JSON file
func LoadFile(name string) (*Palette, error) {
	data, err := os.ReadFile(name)
	if nil != err {
		return nil, err
	}
	return Load(data)
}

func mustLoad(data []byte) *Palette {
	p, err := Load(data)
	if nil != err {
		panic(fmt.Sprintf("palette: default table: %s", err))
	}
	return p
}

// Colour - colour of a code, only the low 6 bits are used
func (p *Palette) Colour(code uint8) color.RGBA {
	return p.colours[code&(dna.Codes-1)]
}

// Code - code of a colour, alpha is ignored
//
// RGBA() is alpha premultiplied so the channels are taken unmultiplied
func (p *Palette) Code(c color.Color) (uint8, bool) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	code, ok := p.codes[color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}]
	return code, ok
}

// Strings - the table in its JSON form
func (p *Palette) Strings() []string {
	table := make([]string, dna.Codes)
	for i, c := range p.colours {
		table[i] = hex.EncodeToString([]byte{c.R, c.G, c.B})
	}
	return table
}

func (p *Palette) colourPalette() color.Palette {
	cp := make(color.Palette, dna.Codes)
	for i, c := range p.colours {
		cp[i] = c
	}
	return cp
}
