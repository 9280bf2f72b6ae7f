// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package palette maps the 64 pixel codes to RGB colours
//
// a palette is a JSON array of 64 distinct six digit hex strings,
// the entry at position n is the colour of code n:
//
//   ["000000", "000055", ...]
//
// the default table is compiled in and can be replaced by a file
// named in the configuration
package palette
