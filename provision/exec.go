// Copyright 2022 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provision

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Cmd is one subprocess invocation.
type Cmd struct {
	Name string
	Args []string
	// Dir is the working directory of the child. It is always set;
	// the provisioner never changes its own working directory.
	Dir string
	// Capture merges stdout and stderr into the returned output instead
	// of streaming them to the user.
	Capture bool
}

// Argv returns the full command line, name first.
func (c Cmd) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

func (c Cmd) String() string {
	return strings.Join(c.Argv(), " ")
}

// Runner runs a command to completion. A non-zero exit is reported through
// the status, not the error; err is only set when the command could not
// be run at all.
type Runner interface {
	Run(c Cmd) (status int, output []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns an ExecRunner attached to the process's standard streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run implements Runner.
func (r *ExecRunner) Run(c Cmd) (int, []byte, error) {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir

	cmd.Stdin = r.Stdin
	var out bytes.Buffer
	if c.Capture {
		cmd.Stdout, cmd.Stderr = &out, &out
	} else {
		cmd.Stdout, cmd.Stderr = r.Stdout, r.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return 0, out.Bytes(), nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// -1 when the child was killed by a signal.
		return exitErr.ExitCode(), out.Bytes(), nil
	}
	return -1, out.Bytes(), err
}
