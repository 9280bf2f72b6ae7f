// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// the file is a Lua chunk returning a table, most of base Lua is
// available so os.getenv can pull secrets such as the viewer API key
// from the environment.  Command line variables are visible to the
// script as globals and arg[0] is the file name.
package configuration
