// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/julienschmidt/httprouter"
	"github.com/xssnick/tonutils-go/address"

	"github.com/bitmark-inc/pixeldna/counter"
	"github.com/bitmark-inc/pixeldna/fault"
)

// HTTPConfiguration - configuration file data for plain HTTP
type HTTPConfiguration struct {
	Listen []string `gluamapper:"listen" json:"listen"`
}

// HTTPSConfiguration - configuration file data for HTTPS setup
type HTTPSConfiguration struct {
	Listen      []string `gluamapper:"listen" json:"listen"`
	Certificate string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey  string   `gluamapper:"private_key" json:"private_key"`
}

// Server - routes and listeners
type Server struct {
	sync.Mutex

	log *logger.L

	renderer   Renderer
	chain      Chain
	collection *address.Address
	store      *address.Address

	version string
	start   time.Time
	router  *httprouter.Router

	requests counter.Counter
	rejected counter.Counter
	failures counter.Counter

	servers   []*http.Server
	addresses []string
}

// New - create the routes
//
// chain may be nil, in which case the /api routes are not served,
// otherwise collection and store are both required
func New(renderer Renderer, chain Chain, collection *address.Address, store *address.Address, version string) (*Server, error) {
	log := logger.New("server")

	if nil == renderer {
		log.Error("missing renderer")
		return nil, fault.MissingParameters
	}
	if nil != chain && (nil == collection || nil == store) {
		log.Error("api requires collection and store addresses")
		return nil, fault.MissingParameters
	}

	s := &Server{
		log:        log,
		renderer:   renderer,
		chain:      chain,
		collection: collection,
		store:      store,
		version:    version,
		start:      time.Now(),
	}

	router := httprouter.New()
	router.GET("/img/:dna", s.image)
	router.GET("/item/:index", s.item)
	router.GET("/health", s.health)
	router.GET("/details", s.details)

	if nil != chain {
		router.GET("/api/nfts", cors(s.items))
		router.GET("/api/exclusives", cors(s.exclusives))
		router.GET("/api/item_price", cors(s.itemPrice))
		router.OPTIONS("/api/*path", cors(preflight))
	}

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendNotFound(w)
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendMethodNotAllowed(w)
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		s.failures.Increment()
		s.log.Criticalf("%s %s: panic: %v", r.Method, r.URL.Path, v)
		sendInternalServerError(w)
	}

	s.router = router
	return s, nil
}

// Handler - the routes, for use by an external listener
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenHTTP - start plain listeners
func (s *Server) ListenHTTP(configuration *HTTPConfiguration) error {
	name := "http"

	if 0 == len(configuration.Listen) {
		s.log.Infof("disable: %s", name)
		return nil
	}

	for _, listen := range configuration.Listen {
		if err := s.serve(name, listen, nil); nil != err {
			return err
		}
	}
	return nil
}

// ListenHTTPS - start TLS listeners
func (s *Server) ListenHTTPS(configuration *HTTPSConfiguration) error {
	name := "https"

	if 0 == len(configuration.Listen) {
		s.log.Infof("disable: %s", name)
		return nil
	}

	tlsConfiguration, fingerprint, err := loadCertificate(s.log, name, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}

	s.log.Infof("%s: SHA3-256 fingerprint: %x", name, fingerprint)

	for _, listen := range configuration.Listen {
		if err := s.serve(name, listen, tlsConfiguration); nil != err {
			return err
		}
	}
	return nil
}

// Addresses - bound addresses of all started listeners
func (s *Server) Addresses() []string {
	s.Lock()
	defer s.Unlock()

	addresses := make([]string, len(s.addresses))
	copy(addresses, s.addresses)
	return addresses
}

// Shutdown - stop all listeners and wait for active requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.Lock()
	servers := s.servers
	s.servers = nil
	s.addresses = nil
	s.Unlock()

	s.log.Info("shutting down…")

	var first error
	for _, hs := range servers {
		if err := hs.Shutdown(ctx); nil != err && nil == first {
			first = err
		}
	}
	return first
}

func (s *Server) serve(name string, listen string, tlsConfiguration *tls.Config) error {
	s.log.Infof("starting server: %s on: %q", name, listen)

	if strings.HasPrefix(listen, "*:") {
		// change "*:PORT" to "[::]:PORT"
		// on the assumption that this will listen on tcp4 and tcp6
		listen = "[::]" + listen[1:]
	}

	lc := net.ListenConfig{
		KeepAlive: 3 * time.Minute,
	}
	ln, err := lc.Listen(context.Background(), "tcp", listen)
	if nil != err {
		s.log.Errorf("%s: listen on: %q  error: %s", name, listen, err)
		return err
	}
	bound := ln.Addr().String()

	if nil != tlsConfiguration {
		ln = tls.NewListener(ln, tlsConfiguration)
	}

	hs := &http.Server{
		Handler:        s.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	s.Lock()
	s.servers = append(s.servers, hs)
	s.addresses = append(s.addresses, bound)
	s.Unlock()

	go func() {
		err := hs.Serve(ln)
		if nil != err && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("%s: serve on: %q  error: %s", name, bound, err)
		}
	}()

	return nil
}
