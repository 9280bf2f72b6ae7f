// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/xssnick/tonutils-go/address"

	"github.com/bitmark-inc/pixeldna/fault"
	"github.com/bitmark-inc/pixeldna/render"
	"github.com/bitmark-inc/pixeldna/util"
	"github.com/bitmark-inc/pixeldna/viewer"
)

// cache lifetimes for images
const (
	dnaCacheControl  = "public, max-age=31536000, immutable"
	itemCacheControl = "public, max-age=300"
)

// GET /img/:dna
func (s *Server) image(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.requests.Increment()

	data, err := s.renderer.RenderDNA(r.Context(), ps.ByName("dna"))
	if nil != err {
		s.fail(w, r, "Invalid DNA", err)
		return
	}
	sendImage(w, r, data, dnaCacheControl)
}

// GET /item/:index
func (s *Server) item(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.requests.Increment()

	index, err := strconv.ParseUint(ps.ByName("index"), 10, 32)
	if nil != err {
		s.fail(w, r, "Invalid index", fault.InvalidIndex)
		return
	}

	data, err := s.renderer.RenderItem(r.Context(), uint32(index))
	if nil != err {
		s.fail(w, r, "Invalid index", err)
		return
	}
	sendImage(w, r, data, itemCacheControl)
}

// GET /api/nfts?owner_address=<address>&page=<n>
func (s *Server) items(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.requests.Increment()

	query := r.URL.Query()

	owner, err := address.ParseAddr(query.Get("owner_address"))
	if nil != err {
		s.log.Debugf("owner address: %q  error: %s", query.Get("owner_address"), err)
		s.fail(w, r, "Invalid address", fault.InvalidAddress)
		return
	}

	page, err := strconv.Atoi(query.Get("page"))
	if nil != err || page < 0 {
		s.fail(w, r, "Invalid page", fault.InvalidPage)
		return
	}

	result, err := s.chain.Items(r.Context(), s.collection, owner, page)
	if nil != err {
		s.fail(w, r, "Invalid request", err)
		return
	}
	sendReply(w, result)
}

// GET /api/exclusives
func (s *Server) exclusives(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.requests.Increment()

	result, err := s.chain.Exclusives(r.Context(), s.collection, s.store)
	if nil != err {
		s.fail(w, r, "Invalid request", err)
		return
	}
	sendReply(w, result)
}

// GET /api/item_price
func (s *Server) itemPrice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.requests.Increment()

	result, err := s.chain.ItemPrice(r.Context(), s.store)
	if nil != err {
		s.fail(w, r, "Invalid request", err)
		return
	}
	sendReply(w, result)
}

// GET /health
func (s *Server) health(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// GET /details
func (s *Server) details(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {

	type theReply struct {
		Version  string             `json:"version"`
		Uptime   string             `json:"uptime"`
		Requests uint64             `json:"requests"`
		Rejected uint64             `json:"rejected"`
		Failures uint64             `json:"failures"`
		Render   render.Statistics  `json:"render"`
		Viewer   *viewer.Statistics `json:"viewer,omitempty"`
	}

	reply := theReply{
		Version:  s.version,
		Uptime:   time.Since(s.start).Truncate(time.Second).String(),
		Requests: s.requests.Uint64(),
		Rejected: s.rejected.Uint64(),
		Failures: s.failures.Uint64(),
		Render:   s.renderer.Statistics(),
	}
	if nil != s.chain {
		v := s.chain.Statistics()
		reply.Viewer = &v
	}

	sendReply(w, reply)
}

// map an error to a response
//
// the cause of a 500 is only logged, the client sees an opaque message
func (s *Server) fail(w http.ResponseWriter, r *http.Request, invalidMessage string, err error) {
	switch {
	case fault.IsErrInvalid(err):
		s.log.Debugf("%s: %s", r.URL.Path, err)
		sendError(w, invalidMessage, http.StatusBadRequest)

	case fault.IsErrCapacity(err):
		s.rejected.Increment()
		s.log.Warnf("%s: too many requests: %s", r.URL.Path, err)
		sendError(w, "Too Many Requests", http.StatusTooManyRequests)

	case errors.Is(err, context.Canceled), fault.IsErrProcess(err):
		s.log.Infof("%s: unavailable: %s", r.URL.Path, err)
		sendError(w, "Service Unavailable", http.StatusServiceUnavailable)

	default:
		s.failures.Increment()
		s.log.Errorf("%s: %s", r.URL.Path, err)
		sendInternalServerError(w)
	}
}

// permissive cross origin access
func cors(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := w.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "*")
		h(w, r, ps)
	}
}

func preflight(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	w.WriteHeader(http.StatusNoContent)
}

// PNG with an ETag derived from its content
func sendImage(w http.ResponseWriter, r *http.Request, data []byte, cacheControl string) {
	etag := `"` + util.FingerprintHex(data) + `"`

	header := w.Header()
	header.Set("ETag", etag)
	header.Set("Cache-Control", cacheControl)

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	header.Set("Content-Type", "image/png")
	header.Set("Content-Length", strconv.Itoa(len(data)))
	header.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
