// Copyright 2022 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

const gitmodules = `[DEFAULT]
branch = main

[submodule "components/bt/controller/lib_esp32"]
	path = components/bt/controller/lib_esp32
	url = https://github.com/espressif/esp32-bt-lib.git
[submodule "components/esp_wifi/lib"]
	Path = components/esp_wifi/lib
	URL = git@github.com:espressif/esp32-wifi-lib.git
	Branch = zephyr
[submodule "components/mqtt/esp-mqtt"]
	path = components/mqtt/esp-mqtt
[submodule "components/json/cJSON"]
	url = https://github.com/DaveGamble/cJSON.git
[submodule "tools/odd"]
	path = tools/odd
	url = https://example.com/odd.git # not a comment
`

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), RegistryFile)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, gitmodules))
	require.NoError(t, err)

	require.Equal(t, []Submodule{
		{
			Name:   `submodule "components/bt/controller/lib_esp32"`,
			Path:   "components/bt/controller/lib_esp32",
			URL:    "https://github.com/espressif/esp32-bt-lib.git",
			Branch: "main",
		},
		{
			Name:   `submodule "components/esp_wifi/lib"`,
			Path:   "components/esp_wifi/lib",
			URL:    "git@github.com:espressif/esp32-wifi-lib.git",
			Branch: "zephyr",
		},
		{
			Name:   `submodule "tools/odd"`,
			Path:   "tools/odd",
			URL:    "https://example.com/odd.git # not a comment",
			Branch: "main",
		},
	}, reg.Submodules)

	var merr *multierror.Error
	require.ErrorAs(t, reg.Skipped, &merr)
	require.Len(t, merr.Errors, 2)
	require.Contains(t, merr.Errors[0].Error(), "components/mqtt/esp-mqtt")
	require.Contains(t, merr.Errors[0].Error(), `"url"`)
	require.Contains(t, merr.Errors[1].Error(), "components/json/cJSON")
	require.Contains(t, merr.Errors[1].Error(), `"path"`)
}

func TestLoadRegistryNothingSkipped(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, "[a]\npath=a\nurl=https://example/a.git\n"))
	require.NoError(t, err)
	require.Len(t, reg.Submodules, 1)
	require.NoError(t, reg.Skipped)
}

func TestLoadRegistryEmptyBranch(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, "[a]\npath=a\nurl=https://example/a.git\nbranch=\n"))
	require.NoError(t, err)
	require.Len(t, reg.Submodules, 1)
	require.Equal(t, "", reg.Submodules[0].Branch)
}

func TestLoadRegistryValuesVerbatim(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, `[a]
path = "hal/a"
url = https://example/a.git\
branch = dev
`))
	require.NoError(t, err)
	require.Equal(t, []Submodule{{
		Name:   "a",
		Path:   `"hal/a"`,
		URL:    `https://example/a.git\`,
		Branch: "dev",
	}}, reg.Submodules)
}

func TestLoadRegistryDefaultSection(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, `[DEFAULT]
url = https://example/shared.git
branch = main

[a]
path = a

[b]
branch = dev
`))
	require.NoError(t, err)
	require.Equal(t, []Submodule{{
		Name:   "a",
		Path:   "a",
		URL:    "https://example/shared.git",
		Branch: "main",
	}}, reg.Submodules)

	var merr *multierror.Error
	require.ErrorAs(t, reg.Skipped, &merr)
	require.Len(t, merr.Errors, 1)
	require.Contains(t, merr.Errors[0].Error(), `section "b": missing ["path"]`)
}

func TestLoadRegistryMissingFile(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join(t.TempDir(), RegistryFile))
	require.NoError(t, err)
	require.Empty(t, reg.Submodules)
	require.NoError(t, reg.Skipped)
}

func TestLoadRegistryMalformed(t *testing.T) {
	file := writeRegistry(t, "[unclosed\npath = a\n")
	_, err := LoadRegistry(file)
	var pe *ConfigParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, file, pe.Path)
	require.NotNil(t, pe.Unwrap())
}

func TestSubmoduleRemote(t *testing.T) {
	for _, tt := range []struct {
		url  string
		want string
	}{
		{url: "https://github.com/espressif/esp32-bt-lib.git", want: "github.com"},
		{url: "git@github.com:espressif/esp32-wifi-lib.git", want: "github.com"},
		{url: "ssh://git@gitlab.example.com:2222/hal/idf.git", want: "gitlab.example.com:2222"},
		{url: "https://example/idf.git", want: "example"},
	} {
		t.Run(tt.url, func(t *testing.T) {
			require.Equal(t, tt.want, Submodule{URL: tt.url}.Remote())
		})
	}
}
