// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
)

const (
	httpsCertificateFilename = "pixeldnad.crt"
	httpsPrivateKeyFilename  = "pixeldnad.key"
)

// commands that run before the configuration file is read
//
// returns false when the daemon should go on to load its configuration
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-https-cert", "https":
		certificateFilename := getFilenameWithDirectory(arguments, httpsCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, httpsPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		fingerprint, err := makeSelfSignedCertificate("https", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate HTTPS key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated HTTPS key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)
		fmt.Printf("SHA3-256 fingerprint: %x\n", fingerprint)

	case "start", "run":
		return false

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	case "help", "h", "?":
		usage(program)

	default:
		if "" == command {
			fmt.Printf("error: missing command\n")
		} else {
			fmt.Printf("error: no such command: %q\n", command)
		}
		usage(program)
		exitwithstatus.Exit(1)
	}

	return true
}

// one line per command, continuation lines start with an empty name
var commandHelp = [][3]string{
	{"help", "h", "display this message"},
	{"version", "v", "display the version string"},
	{"gen-https-cert [DIR] [HOSTS...]", "https", "create DIR/" + httpsPrivateKeyFilename + " and DIR/" + httpsCertificateFilename},
	{"", "", "HOSTS are extra IP addresses or names for the certificate"},
	{"start", "run", "serve images using the configuration file (the default)"},
	{"config-test", "cfg", "print the decoded configuration as JSON and exit"},
}

func usage(program string) {
	fmt.Printf("usage: %s [--help] [--verbose] [--quiet] [--define=NAME=VALUE...] --config-file=FILE [command [arguments...]]\n\n", program)
	fmt.Printf("commands:\n")
	for _, h := range commandHelp {
		alias := ""
		if "" != h[1] {
			alias = "(" + h[1] + ")"
		}
		fmt.Printf("  %-32s %-8s %s\n", h[0], alias, h[2])
	}
}

// commands that need the decoded configuration but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	case "start", "run":
		return false

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}

	return true
}

func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
