// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/pixeldna/viewer"
)

type metadata struct {
	verbose bool
	e       io.Writer
	w       io.Writer
	r       io.Reader
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(r io.Reader, w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "dnatool"
	app.Usage = "convert pixel DNA between images, text and cells"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	paletteFlag := cli.StringFlag{
		Name:  "palette, p",
		Value: "",
		Usage: " JSON colour table `FILE` [built in palette]",
	}
	dnaFlag := cli.StringFlag{
		Name:  "dna, d",
		Value: "-",
		Usage: " base64 `DNA` or - to read stdin",
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "encode",
			Usage:     "turn a 64x64 image into DNA",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*png, jpeg, gif or bmp image `FILE`",
				},
				cli.BoolFlag{
					Name:  "url, u",
					Usage: " URL-safe base64",
				},
				paletteFlag,
			},
			Action: runEncode,
		},
		{
			Name:      "decode",
			Usage:     "render DNA as a PNG image",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				dnaFlag,
				cli.StringFlag{
					Name:  "output, o",
					Value: "",
					Usage: "*PNG `FILE` to write",
				},
				cli.IntFlag{
					Name:  "upscale, s",
					Value: 10,
					Usage: " pixel size `N`",
				},
				paletteFlag,
			},
			Action: runDecode,
		},
		{
			Name:      "pixels",
			Usage:     "show DNA as 64 rows of colour codes",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				dnaFlag,
			},
			Action: runPixels,
		},
		{
			Name:      "boc",
			Usage:     "pack DNA into a base64 bag of cells",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				dnaFlag,
			},
			Action: runBOC,
		},
		{
			Name:      "unboc",
			Usage:     "extract DNA from a base64 bag of cells",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "boc, b",
					Value: "-",
					Usage: " base64 `BOC` or - to read stdin",
				},
			},
			Action: runUnBOC,
		},
		{
			Name:      "address",
			Usage:     "item contract address for an index",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "collection, c",
					Value: "",
					Usage: "*collection `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "code, k",
					Value: "",
					Usage: "*item code base64 bag of cells `FILE`",
				},
				cli.UintFlag{
					Name:  "index, i",
					Value: 0,
					Usage: " item `INDEX`",
				},
			},
			Action: runAddress,
		},
		{
			Name:      "fetch",
			Usage:     "read the DNA of an item from the chain",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "url, U",
					Value: "",
					Usage: "*viewer API `URL`",
				},
				cli.StringFlag{
					Name:   "api-key, a",
					Value:  "",
					Usage:  " viewer API `KEY`",
					EnvVar: "VIEWER_API_KEY",
				},
				cli.StringFlag{
					Name:  "collection, c",
					Value: "",
					Usage: "*collection `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "code, k",
					Value: "",
					Usage: "*item code base64 bag of cells `FILE`",
				},
				cli.UintFlag{
					Name:  "index, i",
					Value: 0,
					Usage: " item `INDEX`",
				},
				cli.StringFlag{
					Name:  "timeout, t",
					Value: viewer.DefaultTimeout,
					Usage: " request `DURATION`",
				},
			},
			Action: runFetch,
		},
		{
			Name:   "version",
			Usage:  "display dnatool version",
			Action: runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
			r:       r,
		}
		return nil
	}

	return app
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
