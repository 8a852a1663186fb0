// Copyright 2022 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/u-root/espwest/provision"
)

// envLogLevel overrides the log level when --verbose is not given.
const envLogLevel = "ESPWEST_LOG_LEVEL"

// env is what the commands take from the outside world.
type env struct {
	getenv   func(string) string
	runner   provision.Runner
	platform provision.Platform
	stdout   io.Writer
	stderr   io.Writer
}

func newRootCmd(e env, logger *log.Logger) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "espwest",
		Short:         "Zephyr source management extensions",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Arguments are valid by now; later errors are not usage errors.
			cmd.SilenceUsage = true
			switch {
			case verbose:
				logger.SetLevel(log.DebugLevel)
			case e.getenv(envLogLevel) != "":
				lvl, err := log.ParseLevel(e.getenv(envLogLevel))
				if err != nil {
					logger.Warn("ignoring log level", "env", envLogLevel, "err", err)
					break
				}
				logger.SetLevel(lvl)
			}
			return nil
		},
	}
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print all subprocess invocations")
	root.AddCommand(newEspressifCmd(e, logger))
	return root
}

func newEspressifCmd(e env, logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "espressif {install|update}",
		Short: "download toolchain or update ESP-IDF submodules",
		Long: `This interface allows downloading Espressif toolchain
or fetch ESP-IDF submodules required for
Espressif SoC devices framework.

  install  run tools/idf_tools.py to download the toolchain
  update   clone or refresh every submodule listed in .gitmodules`,
		ValidArgs: provision.Commands,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := provision.ParseCommand(args[0])
			if err != nil {
				return err
			}
			dir, err := provision.ResolveModulePath(e.getenv)
			if err != nil {
				return err
			}
			logger.Debug("module", "path", dir, "platform", e.platform)
			p := provision.New(provision.Config{
				ModulePath: dir,
				Platform:   e.platform,
				Runner:     e.runner,
				Log:        logger,
				Stdout:     e.stdout,
			})
			return p.Run(c)
		},
	}
}

// exitStatus maps err to a process exit status. A failed subprocess
// passes its own status through.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var sf *provision.SubprocessFailure
	if errors.As(err, &sf) && sf.Err == nil && sf.ExitStatus > 0 && sf.ExitStatus < 256 {
		return sf.ExitStatus
	}
	return 1
}

func run(args []string, e env) int {
	logger := log.NewWithOptions(e.stderr, log.Options{
		Prefix: "espressif",
	})
	root := newRootCmd(e, logger)
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		logger.Error(err)
	}
	return exitStatus(err)
}

func main() {
	os.Exit(run(os.Args[1:], env{
		getenv:   os.Getenv,
		runner:   provision.NewExecRunner(),
		platform: provision.HostPlatform(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}))
}
