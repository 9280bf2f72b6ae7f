// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/pixeldna/cell"
	"github.com/bitmark-inc/pixeldna/clock"
	"github.com/bitmark-inc/pixeldna/dna"
	"github.com/bitmark-inc/pixeldna/fault"
	"github.com/bitmark-inc/pixeldna/viewer"
)

// the logger rejects anything smaller
const (
	fetchLogCount = 10
	fetchLogSize  = 1024 * 1024
)

func runFetch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	url := c.String("url")
	if "" == url {
		return fmt.Errorf("missing viewer url")
	}

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

	// the viewer logs, keep its output out of the way
	logDirectory, err := os.MkdirTemp("", "dnatool-log-")
	if nil != err {
		return err
	}
	defer os.RemoveAll(logDirectory)

	level := "error"
	if m.verbose {
		level = "info"
	}
	err = logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "dnatool.log",
		Size:      fetchLogSize,
		Count:     fetchLogCount,
		Console:   m.verbose,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	})
	if nil != err {
		return err
	}
	defer logger.Finalise()

	client, err := viewer.New(&viewer.Configuration{
		URL:            url,
		APIKey:         c.String("api-key"),
		QueueSize:      1,
		MaximumRetries: viewer.DefaultMaximumRetries,
		Backoff:        viewer.DefaultBackoff,
		Timeout:        c.String("timeout"),
	}, clock.Real())
	if nil != err {
		return err
	}
	defer client.Stop()

	if m.verbose {
		fmt.Fprintf(m.e, "item: %d  address: %s\n", index, a)
	}

	boc, err := client.DNA(context.Background(), a)
	if nil != err {
		return err
	}

	g, err := cell.DecodeBOC(boc)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "%s\n", dna.Encode(g))
	return nil
}
