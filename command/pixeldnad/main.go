// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/xssnick/tonutils-go/address"

	"github.com/bitmark-inc/pixeldna/clock"
	"github.com/bitmark-inc/pixeldna/item"
	"github.com/bitmark-inc/pixeldna/palette"
	"github.com/bitmark-inc/pixeldna/render"
	"github.com/bitmark-inc/pixeldna/server"
	"github.com/bitmark-inc/pixeldna/storage"
	"github.com/bitmark-inc/pixeldna/viewer"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const shutdownTimeout = 10 * time.Second

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "define", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'd'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// NAME=VALUE pairs become globals in the configuration script
	variables := make(map[string]string)
	for _, d := range options["define"] {
		s := strings.SplitN(d, "=", 2)
		if 2 != len(s) || "" == s[0] {
			exitwithstatus.Message("%s: define: %q is not NAME=VALUE", program, d)
		}
		variables[s[0]] = s[1]
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// colour table
	thePalette := palette.Default()
	if "" != theConfiguration.Render.Palette {
		thePalette, err = palette.LoadFile(theConfiguration.Render.Palette)
		if nil != err {
			log.Criticalf("palette: %q  error: %s", theConfiguration.Render.Palette, err)
			exitwithstatus.Message("palette: %q  error: %s", theConfiguration.Render.Palette, err)
		}
		log.Infof("palette: %q", theConfiguration.Render.Palette)
	}

	// image cache
	log.Info("initialise storage")
	store, err := storage.New(&theConfiguration.Storage)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer store.Close()

	// on-chain access is optional, without it only /img is served
	var (
		fetcher    render.Fetcher
		locator    render.Locator
		chain      server.Chain
		collection *address.Address
		shop       *address.Address
	)
	if "" != theConfiguration.Viewer.URL {
		log.Info("initialise viewer")
		client, err := viewer.New(&theConfiguration.Viewer, clock.Real())
		if nil != err {
			log.Criticalf("viewer initialise error: %s", err)
			exitwithstatus.Message("viewer initialise error: %s", err)
		}
		defer client.Stop()

		locate, err := item.New(theConfiguration.Collection.Address, theConfiguration.Collection.ItemCode)
		if nil != err {
			log.Criticalf("collection: %q  error: %s", theConfiguration.Collection.Address, err)
			exitwithstatus.Message("collection: %q  error: %s", theConfiguration.Collection.Address, err)
		}

		shop, err = address.ParseAddr(theConfiguration.StoreAddress)
		if nil != err {
			log.Criticalf("store address: %q  error: %s", theConfiguration.StoreAddress, err)
			exitwithstatus.Message("store address: %q  error: %s", theConfiguration.StoreAddress, err)
		}

		fetcher = client
		locator = locate
		chain = client
		collection = locate.Collection()
		log.Infof("collection: %s  store: %s", collection, shop)
	} else {
		log.Warn("no viewer url: on-chain items and api disabled")
	}

	pipeline, err := render.New(store, fetcher, locator, thePalette, theConfiguration.Render.Scale)
	if nil != err {
		log.Criticalf("render initialise error: %s", err)
		exitwithstatus.Message("render initialise error: %s", err)
	}
	defer pipeline.Wait()

	theServer, err := server.New(pipeline, chain, collection, shop, version)
	if nil != err {
		log.Criticalf("server initialise error: %s", err)
		exitwithstatus.Message("server initialise error: %s", err)
	}
	if err := theServer.ListenHTTP(&theConfiguration.HTTP); nil != err {
		log.Criticalf("http initialise error: %s", err)
		exitwithstatus.Message("http initialise error: %s", err)
	}
	if err := theServer.ListenHTTPS(&theConfiguration.HTTPS); nil != err {
		log.Criticalf("https initialise error: %s", err)
		exitwithstatus.Message("https initialise error: %s", err)
	}

	shutdown := make(chan struct{})

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats(shutdown)
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	close(shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := theServer.Shutdown(ctx); nil != err {
		log.Errorf("server shutdown error: %s", err)
	}
}
