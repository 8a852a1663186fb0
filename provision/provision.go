// Copyright 2022 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provision

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// EnvRoot names the environment variable holding the Zephyr base directory.
const EnvRoot = "ZEPHYR_BASE"

const (
	// InstallerScript is the toolchain installer, relative to the module path.
	InstallerScript = "tools/idf_tools.py"
	// ToolsJSON is the tool list handed to the installer.
	ToolsJSON = "tools/zephyr_tools.json"
)

// Command is the operation requested on the command line.
type Command string

const (
	Install Command = "install"
	Update  Command = "update"
)

// Commands lists the valid Command values, in the order shown in help.
var Commands = []string{string(Install), string(Update)}

// ParseCommand validates s as a Command.
func ParseCommand(s string) (Command, error) {
	switch c := Command(s); c {
	case Install, Update:
		return c, nil
	}
	return "", fmt.Errorf("invalid command %q (choose from %q)", s, Commands)
}

// ResolveModulePath computes $ZEPHYR_BASE/../modules/hal/espressif as an
// absolute path and checks that it exists. getenv is usually os.Getenv.
func ResolveModulePath(getenv func(string) string) (string, error) {
	root := getenv(EnvRoot)
	if root == "" {
		return "", &ConfigurationError{Msg: fmt.Sprintf("$%s is not set", EnvRoot)}
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return "", &ConfigurationError{Msg: fmt.Sprintf("resolving $%s", EnvRoot), Err: err}
	}
	dir := filepath.Join(root, "..", "modules", "hal", "espressif")
	fi, err := os.Stat(dir)
	if err == nil && !fi.IsDir() {
		err = fmt.Errorf("%q is not a directory", dir)
	}
	if err != nil {
		return "", &ConfigurationError{Msg: fmt.Sprintf("cannot find espressif project in $%s path", EnvRoot), Err: err}
	}
	return dir, nil
}

// Config holds everything a Provisioner needs. Only ModulePath is required.
type Config struct {
	ModulePath string
	Platform   Platform
	// Runner defaults to an ExecRunner on the process's standard streams.
	Runner Runner
	// Log receives banners and, at debug level, every subprocess invocation.
	Log *log.Logger
	// Stdout receives the per-submodule progress lines.
	Stdout io.Writer
}

// Provisioner syncs the espressif submodules and installs the toolchain.
type Provisioner struct {
	dir      string
	platform Platform
	runner   Runner
	log      *log.Logger
	stdout   io.Writer
}

// New returns a Provisioner for cfg.
func New(cfg Config) *Provisioner {
	p := &Provisioner{
		dir:      cfg.ModulePath,
		platform: cfg.Platform,
		runner:   cfg.Runner,
		log:      cfg.Log,
		stdout:   cfg.Stdout,
	}
	if p.runner == nil {
		p.runner = NewExecRunner()
	}
	if p.log == nil {
		p.log = log.Default()
	}
	if p.stdout == nil {
		p.stdout = os.Stdout
	}
	return p
}

// Run dispatches c.
func (p *Provisioner) Run(c Command) error {
	switch c {
	case Update:
		return p.Update()
	case Install:
		return p.Install()
	}
	_, err := ParseCommand(string(c))
	return err
}

// Update clones every registry entry that is not checked out yet and
// resets, pulls and checks out the ones that are. The first failing git
// command stops the whole run; entries already done are left as they are.
func (p *Provisioner) Update() error {
	p.log.Info("updating ESP-IDF submodules..")

	file := filepath.Join(p.dir, RegistryFile)
	reg, err := LoadRegistry(file)
	if err != nil {
		return err
	}
	if reg.Skipped != nil {
		p.log.Debug("skipped registry sections", "file", file, "err", reg.Skipped)
	}
	if len(reg.Submodules) == 0 {
		p.log.Warn("no submodules to update", "file", file)
	}

	for _, s := range reg.Submodules {
		if err := p.sync(s); err != nil {
			return err
		}
	}

	p.log.Info("updating ESP-IDF submodules completed")
	return nil
}

func (p *Provisioner) sync(s Submodule) error {
	dir := s.Path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.dir, dir)
	}

	// An empty path would make "git -C" act on the module itself.
	var steps [][]string
	if fi, err := os.Stat(dir); s.Path != "" && err == nil && fi.IsDir() {
		fmt.Fprintln(p.stdout, "Updating", s.Path)
		steps = [][]string{
			{"-C", s.Path, "reset", "--hard"},
			{"-C", s.Path, "pull", "origin", s.Branch},
			{"-C", s.Path, "checkout", s.Branch},
		}
	} else {
		fmt.Fprintln(p.stdout, "Cloning into", s.Path)
		steps = [][]string{
			{"clone", s.URL, s.Path},
			{"-C", s.Path, "checkout", s.Branch},
		}
	}
	remote := s.Remote()
	p.log.Debug("submodule", "name", s.Name, "remote", remote, "branch", s.Branch)

	for _, args := range steps {
		if err := p.run(Cmd{Name: "git", Args: args, Dir: p.dir, Capture: true}); err != nil {
			var sf *SubprocessFailure
			if errors.As(err, &sf) {
				sf.Remote = remote
			}
			return err
		}
	}
	return nil
}

// Install runs the toolchain installer with its output going straight to
// the user. A failing installer yields a SubprocessFailure carrying its
// exit status.
func (p *Provisioner) Install() error {
	p.log.Info("downloading ESP-IDF tools..")

	c, err := p.installer()
	if err != nil {
		return err
	}
	if err := p.run(c); err != nil {
		return err
	}

	p.log.Info("downloading ESP-IDF tools completed")
	return nil
}

func (p *Provisioner) installer() (Cmd, error) {
	args := []string{"--tools-json=" + ToolsJSON, "install"}
	if p.platform == Windows {
		return Cmd{Name: "python.exe", Args: append([]string{InstallerScript}, args...), Dir: p.dir}, nil
	}

	script := filepath.Join(p.dir, filepath.FromSlash(InstallerScript))
	if err := checkExecutable(script); err != nil {
		return Cmd{}, &ConfigurationError{Msg: fmt.Sprintf("cannot run installer %q", script), Err: err}
	}
	return Cmd{Name: "./" + InstallerScript, Args: args, Dir: p.dir}, nil
}

func (p *Provisioner) run(c Cmd) error {
	p.log.Debugf("run %q in %q", c.Argv(), c.Dir)
	status, out, err := p.runner.Run(c)
	if err != nil || status != 0 {
		return &SubprocessFailure{Args: c.Argv(), Dir: c.Dir, ExitStatus: status, Output: out, Err: err}
	}
	return nil
}
