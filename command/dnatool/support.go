// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitmark-inc/pixeldna/dna"
	"github.com/bitmark-inc/pixeldna/item"
	"github.com/bitmark-inc/pixeldna/palette"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// a flag value, "-" reads all of stdin
func readText(m *metadata, value string) (string, error) {
	if "-" != value {
		return strings.TrimSpace(value), nil
	}
	data, err := io.ReadAll(m.r)
	if nil != err {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// DNA in either base64 alphabet
func readDNA(m *metadata, value string) (*dna.Grid, error) {
	text, err := readText(m, value)
	if nil != err {
		return nil, err
	}
	if strings.ContainsAny(text, "-_") {
		return dna.DecodeURL(text)
	}
	return dna.Decode(text)
}

func loadPalette(m *metadata, fileName string) (*palette.Palette, error) {
	if "" == fileName {
		return palette.Default(), nil
	}
	if m.verbose {
		fmt.Fprintf(m.e, "palette: %s\n", fileName)
	}
	return palette.LoadFile(fileName)
}

func loadLocator(collection string, codeFileName string) (*item.Locator, error) {
	if "" == collection {
		return nil, fmt.Errorf("missing collection address")
	}
	if "" == codeFileName {
		return nil, fmt.Errorf("missing item code file")
	}
	code, err := os.ReadFile(codeFileName)
	if nil != err {
		return nil, err
	}
	return item.New(collection, strings.TrimSpace(string(code)))
}
