// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - blob store for rendered images
//
// keys are strings produced by DNAKey and ItemKey, values are opaque
// bytes.  A missing key is reported as found == false with a nil
// error; writes are last-write-wins.
//
// backends:
//
//   leveldb  persistent, one database under the data directory
//   memory   in process, entries expire after the configured time
//   none     never stores anything, every Get is a miss
package storage
