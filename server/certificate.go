// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"crypto/tls"
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pixeldna/fault"
	"github.com/bitmark-inc/pixeldna/util"
)

// load a key pair from files and return the TLS setup and the
// certificate fingerprint
func loadCertificate(log *logger.L, name string, certificateFileName string, keyFileName string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	if !util.EnsureFileExists(certificateFileName) {
		log.Errorf("%s: certificate: %q does not exist", name, certificateFileName)
		return nil, fin, fmt.Errorf("certificate: %q: %w", certificateFileName, fault.MissingParameters)
	}
	if !util.EnsureFileExists(keyFileName) {
		log.Errorf("%s: private key: %q does not exist", name, keyFileName)
		return nil, fin, fmt.Errorf("private key: %q: %w", keyFileName, fault.MissingParameters)
	}

	keyPair, err := tls.LoadX509KeyPair(certificateFileName, keyFileName)
	if nil != err {
		log.Errorf("%s: failed to load keypair: %s", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
		NextProtos: []string{"http/1.1"},
	}

	fin = util.Fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}
