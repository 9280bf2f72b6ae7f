// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func runDecode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	output := c.String("output")
	if "" == output {
		return fmt.Errorf("missing output file name")
	}

	g, err := readDNA(m, c.String("dna"))
	if nil != err {
		return err
	}

	p, err := loadPalette(m, c.String("palette"))
	if nil != err {
		return err
	}

	image, err := p.Rasterize(g, c.Int("upscale"))
	if nil != err {
		return err
	}

	if err := os.WriteFile(output, image, 0666); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "wrote: %s  bytes: %d\n", output, len(image))
	}
	return nil
}
