// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/pixeldna/dna"
)

func runEncode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := c.String("file")
	if "" == fileName {
		return fmt.Errorf("missing image file name")
	}

	p, err := loadPalette(m, c.String("palette"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "reading image: %s\n", fileName)
	}

	pixels, err := p.QuantizeFile(fileName)
	if nil != err {
		return err
	}

	g := dna.FromPixels(pixels)
	if c.Bool("url") {
		fmt.Fprintf(m.w, "%s\n", g.URLString())
	} else {
		fmt.Fprintf(m.w, "%s\n", dna.Encode(g))
	}
	return nil
}
