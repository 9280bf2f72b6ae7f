// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/pixeldna/cell"
	"github.com/bitmark-inc/pixeldna/dna"
)

func runBOC(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	g, err := readDNA(m, c.String("dna"))
	if nil != err {
		return err
	}

	boc, err := cell.EncodeBOC(g)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "%s\n", boc)
	return nil
}

func runUnBOC(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	text, err := readText(m, c.String("boc"))
	if nil != err {
		return err
	}

	g, err := cell.DecodeBOC(text)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "%s\n", dna.Encode(g))
	return nil
}
