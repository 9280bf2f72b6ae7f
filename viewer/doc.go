// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package viewer - client for the chain viewer HTTP API
//
// all remote calls pass through one queue served by a single worker,
// so calls never overlap on the wire.  At most queue_size jobs may be
// waiting or running; any further Submit fails at once with
// fault.OverCapacity and no network traffic.
//
// a reply carrying code 429 is retried after the backoff interval,
// up to maximum_retries times, after which the caller receives
// fault.OverCapacity.  Any other unusable reply is returned as a
// *fault.UpstreamError holding the raw response and is never retried.
//
// the set of remote calls is closed, see Query
package viewer
