// Copyright 2022 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provision

import (
	"fmt"
	"strings"
)

// ConfigurationError is a fatal pre-flight failure: the environment
// does not point at a usable espressif module.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ConfigParseError is returned when the submodule registry is not valid INI.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parsing %q: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

// SubprocessFailure records a git or installer invocation that could not
// be started or exited with a non-zero status.
type SubprocessFailure struct {
	Args       []string
	Dir        string
	ExitStatus int
	// Output is the combined stdout and stderr, when it was captured.
	Output []byte
	// Remote is the host of the submodule being synced, if known.
	Remote string
	Err    error
}

func (e *SubprocessFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q in %q", e.Args, e.Dir)
	if e.Remote != "" {
		fmt.Fprintf(&b, " (remote %s)", e.Remote)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	} else {
		fmt.Fprintf(&b, ": exit status %d", e.ExitStatus)
	}
	if out := strings.TrimSpace(string(e.Output)); out != "" {
		fmt.Fprintf(&b, "\n%s", out)
	}
	return b.String()
}

func (e *SubprocessFailure) Unwrap() error { return e.Err }
