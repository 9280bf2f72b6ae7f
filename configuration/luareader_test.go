// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pixeldna/configuration"
	"github.com/bitmark-inc/pixeldna/fault"
)

type viewerSection struct {
	URL       string `gluamapper:"url"`
	QueueSize int    `gluamapper:"queue_size"`
}

type testConfiguration struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Name          string            `gluamapper:"name"`
	Listen        []string          `gluamapper:"listen"`
	Viewer        viewerSection     `gluamapper:"viewer"`
	Levels        map[string]string `gluamapper:"levels"`
	Untouched     string            `gluamapper:"untouched"`
}

const testScript = `
local queue = 5 * 2

return {
    data_directory = ".",
    name = arg[0],
    listen = { "127.0.0.1:8080", "[::1]:8080" },
    viewer = {
        url = "https://" .. host .. "/api/v3",
        queue_size = queue,
    },
    levels = {
        main = "info",
        DEFAULT = "error",
    },
}
`

func writeScript(t *testing.T, text string) string {
	name := filepath.Join(t.TempDir(), "test.conf")
	if err := os.WriteFile(name, []byte(text), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}
	return name
}

func TestParseConfigurationFile(t *testing.T) {
	name := writeScript(t, testScript)

	config := testConfiguration{
		Untouched: "default",
	}
	variables := map[string]string{
		"host": "viewer.example.com",
	}

	err := configuration.ParseConfigurationFile(name, &config, variables)
	assert.Nil(t, err, "parse")

	assert.Equal(t, ".", config.DataDirectory, "data directory")
	assert.Equal(t, name, config.Name, "arg[0]")
	assert.Equal(t, []string{"127.0.0.1:8080", "[::1]:8080"}, config.Listen, "listen")
	assert.Equal(t, "https://viewer.example.com/api/v3", config.Viewer.URL, "url from variable")
	assert.Equal(t, 10, config.Viewer.QueueSize, "computed value")
	assert.Equal(t, "info", config.Levels["main"], "level main")
	assert.Equal(t, "error", config.Levels["DEFAULT"], "level default")
	assert.Equal(t, "default", config.Untouched, "defaults survive")
}

func TestParseNotStructPointer(t *testing.T) {
	name := writeScript(t, "return {}")

	config := testConfiguration{}
	err := configuration.ParseConfigurationFile(name, config, nil)
	assert.Equal(t, fault.InvalidStructPointer, err, "struct value")

	s := "string"
	err = configuration.ParseConfigurationFile(name, &s, nil)
	assert.Equal(t, fault.InvalidStructPointer, err, "string pointer")

	var p *testConfiguration
	err = configuration.ParseConfigurationFile(name, p, nil)
	assert.Equal(t, fault.InvalidStructPointer, err, "nil pointer")
}

func TestParseErrors(t *testing.T) {
	config := testConfiguration{}

	err := configuration.ParseConfigurationFile(filepath.Join(t.TempDir(), "missing.conf"), &config, nil)
	assert.NotNil(t, err, "missing file")

	err = configuration.ParseConfigurationFile(writeScript(t, "return {"), &config, nil)
	assert.NotNil(t, err, "syntax error")

	err = configuration.ParseConfigurationFile(writeScript(t, "return 42"), &config, nil)
	assert.NotNil(t, err, "not a table")

	err = configuration.ParseConfigurationFile(writeScript(t, "error('refused')"), &config, nil)
	assert.NotNil(t, err, "runtime error")
}
