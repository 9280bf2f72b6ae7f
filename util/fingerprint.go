// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Fingerprint - SHA3-256 of data
//
// for certificates the DER bytes are used, to check:
//   openssl x509 -outform DER -in pixeldnad.crt | sha3sum -a 256
func Fingerprint(data []byte) [32]byte {
	return sha3.Sum256(data)
}

// FingerprintHex - fingerprint as lower case hex
func FingerprintHex(data []byte) string {
	f := Fingerprint(data)
	return hex.EncodeToString(f[:])
}
