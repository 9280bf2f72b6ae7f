// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pixeldna/configuration"
	"github.com/bitmark-inc/pixeldna/server"
	"github.com/bitmark-inc/pixeldna/storage"
	"github.com/bitmark-inc/pixeldna/util"
	"github.com/bitmark-inc/pixeldna/viewer"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "pixeldnad.key"
	defaultCertificateFile = "pixeldnad.crt"

	defaultLogDirectory = "log"
	defaultLogFile      = "pixeldnad.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultScale = 10
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// CollectionType - the NFT collection whose items are rendered
type CollectionType struct {
	Address  string `gluamapper:"address" json:"address"`
	ItemCode string `gluamapper:"item_code" json:"item_code"`
}

// RenderType - image output settings
type RenderType struct {
	Scale   int    `gluamapper:"scale" json:"scale"`
	Palette string `gluamapper:"palette" json:"palette"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string                    `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                    `gluamapper:"pidfile" json:"pidfile"`
	Collection    CollectionType            `gluamapper:"collection" json:"collection"`
	StoreAddress  string                    `gluamapper:"store_address" json:"store_address"`
	Viewer        viewer.Configuration      `gluamapper:"viewer" json:"viewer"`
	Storage       storage.Configuration     `gluamapper:"storage" json:"storage"`
	Render        RenderType                `gluamapper:"render" json:"render"`
	HTTP          server.HTTPConfiguration  `gluamapper:"http" json:"http"`
	HTTPS         server.HTTPSConfiguration `gluamapper:"https" json:"https"`
	Logging       logger.Configuration      `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Viewer: viewer.Configuration{
			QueueSize:      viewer.DefaultQueueSize,
			MaximumRetries: viewer.DefaultMaximumRetries,
			Backoff:        viewer.DefaultBackoff,
			Timeout:        viewer.DefaultTimeout,
		},

		Storage: storage.Configuration{
			Backend:   storage.BackendLevelDB,
			Directory: storage.DefaultDirectory,
			Expiry:    storage.DefaultExpiry,
		},

		Render: RenderType{
			Scale: defaultScale,
		},

		HTTPS: server.HTTPSConfiguration{
			Certificate: defaultCertificateFile,
			PrivateKey:  defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Storage.Directory,
		&options.HTTPS.Certificate,
		&options.HTTPS.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Render.Palette,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// the log file must be a plain name inside the log directory
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("Files: %q is not plain name", options.Logging.File)
	}

	if options.Render.Scale < 1 {
		return nil, fmt.Errorf("render scale: %d must be positive", options.Render.Scale)
	}

	// create directories if they do not already exist
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	// done
	return options, nil
}
