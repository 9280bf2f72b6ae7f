// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"

	"github.com/bitmark-inc/pixeldna/fault"
	"github.com/bitmark-inc/pixeldna/util"
)

// create a self-signed certificate and return its fingerprint
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) ([32]byte, error) {
	var fingerprint [32]byte

	if util.EnsureFileExists(certificateFileName) {
		return fingerprint, fault.CertificateFileExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return fingerprint, fault.KeyFileExists
	}

	org := "pixeldnad self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if nil != err {
		return fingerprint, err
	}

	keyPair, err := tls.X509KeyPair(cert, key)
	if nil != err {
		return fingerprint, err
	}

	if err = os.WriteFile(certificateFileName, cert, 0666); nil != err {
		return fingerprint, err
	}

	if err = os.WriteFile(privateKeyFileName, key, 0600); nil != err {
		_ = os.Remove(certificateFileName)
		return fingerprint, err
	}

	return util.Fingerprint(keyPair.Certificate[0]), nil
}
