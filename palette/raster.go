// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package palette

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"

	"github.com/bitmark-inc/pixeldna/dna"
	"github.com/bitmark-inc/pixeldna/fault"
)

// file extensions accepted by QuantizeFile
var extensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"bmp":  {},
	"gif":  {},
}

// Rasterize - render a grid as a PNG image of 64·scale square
func (p *Palette) Rasterize(g *dna.Grid, scale int) ([]byte, error) {
	return p.RasterizePixels(g.Pixels(), scale)
}

// RasterizePixels - render pixel codes as a PNG image of 64·scale square
func (p *Palette) RasterizePixels(pixels dna.Pixels, scale int) ([]byte, error) {
	if scale < 1 {
		return nil, fmt.Errorf("scale %d: %w", scale, fault.InvalidScale)
	}

	width := dna.Width * scale
	height := dna.Height * scale
	img := image.NewPaletted(image.Rect(0, 0, width, height), p.colourPalette())

	for y := 0; y < height; y += 1 {
		row := pixels[y/scale]
		offset := y * img.Stride
		for x := 0; x < width; x += 1 {
			img.Pix[offset+x] = row[x/scale] & (dna.Codes - 1)
		}
	}

	buffer := bytes.Buffer{}
	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	if err := encoder.Encode(&buffer, img); nil != err {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Quantize - recover pixel codes from an image
//
// the image must be exactly 64×64 and use only palette colours
func (p *Palette) Quantize(data []byte) (dna.Pixels, error) {
	pixels := dna.Pixels{}

	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return pixels, fault.UnsupportedFormat
	} else if nil != err {
		return pixels, fmt.Errorf("%v: %w", err, fault.ImageDecode)
	}
	if dna.Width != config.Width || dna.Height != config.Height {
		return pixels, fmt.Errorf("%d×%d: %w", config.Width, config.Height, fault.DimensionMismatch)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if nil != err {
		return pixels, fmt.Errorf("%v: %w", err, fault.ImageDecode)
	}

	bounds := img.Bounds()
	for y := 0; y < dna.Height; y += 1 {
		for x := 0; x < dna.Width; x += 1 {
			code, ok := p.Code(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			if !ok {
				return pixels, fmt.Errorf("pixel (%d, %d): %w", x, y, fault.PaletteMismatch)
			}
			pixels[y][x] = code
		}
	}
	return pixels, nil
}

// QuantizeFile - check the extension then quantize the file contents
func (p *Palette) QuantizeFile(name string) (dna.Pixels, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if _, ok := extensions[ext]; !ok {
		return dna.Pixels{}, fmt.Errorf("extension %q: %w", ext, fault.UnsupportedFormat)
	}

	data, err := os.ReadFile(name)
	if nil != err {
		return dna.Pixels{}, err
	}
	return p.Quantize(data)
}
