// Copyright 2022 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provision

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	giturls "github.com/whilp/git-urls"
	"gopkg.in/ini.v1"
)

// RegistryFile is the submodule registry, relative to the module path.
const RegistryFile = ".gitmodules"

// DefaultBranch is used for entries without a branch key.
const DefaultBranch = "master"

// Submodule is one usable registry entry.
type Submodule struct {
	// Name is the INI section name, e.g. `submodule "components/bt"`.
	Name   string
	Path   string
	URL    string
	Branch string
}

// Remote returns the host part of the submodule URL, or "" if the URL
// cannot be parsed. scp-style URLs (git@host:path) are understood.
func (s Submodule) Remote() string {
	u, err := giturls.Parse(s.URL)
	if err != nil {
		return ""
	}
	return u.Host
}

// Registry is the parsed content of a registry file.
type Registry struct {
	Submodules []Submodule
	// Skipped describes every section that lacked a path or url.
	// It is nil when no section was skipped.
	Skipped error
}

// LoadRegistry reads the registry at file. A file that does not exist
// yields an empty registry, not an error.
func LoadRegistry(file string) (*Registry, error) {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return &Registry{}, nil
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:         true,
		IgnoreInlineComment:     true,
		IgnoreContinuation:      true,
		PreserveSurroundedQuote: true,
	}, file)
	if err != nil {
		return nil, &ConfigParseError{Path: file, Err: err}
	}
	return parseRegistry(cfg), nil
}

// lookup returns the value of key in section, falling back to the
// DEFAULT section.
func lookup(cfg *ini.File, section *ini.Section, key string) (string, bool) {
	if section.HasKey(key) {
		return section.Key(key).String(), true
	}
	if def := cfg.Section(ini.DefaultSection); def.HasKey(key) {
		return def.Key(key).String(), true
	}
	return "", false
}

func parseRegistry(cfg *ini.File) *Registry {
	var (
		r       Registry
		skipped *multierror.Error
	)
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		path, hasPath := lookup(cfg, section, "path")
		url, hasURL := lookup(cfg, section, "url")
		var missing []string
		if !hasPath {
			missing = append(missing, "path")
		}
		if !hasURL {
			missing = append(missing, "url")
		}
		if len(missing) > 0 {
			skipped = multierror.Append(skipped, fmt.Errorf("section %q: missing %q", section.Name(), missing))
			continue
		}

		branch, ok := lookup(cfg, section, "branch")
		if !ok {
			branch = DefaultBranch
		}
		r.Submodules = append(r.Submodules, Submodule{
			Name:   section.Name(),
			Path:   path,
			URL:    url,
			Branch: branch,
		})
	}
	r.Skipped = skipped.ErrorOrNil()
	return &r
}
