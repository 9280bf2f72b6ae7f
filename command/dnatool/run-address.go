// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/pixeldna/fault"
)

func runAddress(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	index := c.Uint("index")
	if uint64(index) > math.MaxUint32 {
		return fault.InvalidIndex
	}

	locator, err := loadLocator(c.String("collection"), c.String("code"))
	if nil != err {
		return err
	}

	a, err := locator.ItemAddress(uint32(index))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "collection: %s  index: %d\n", locator.Collection(), index)
	}
	fmt.Fprintf(m.w, "%s\n", a)
	return nil
}
