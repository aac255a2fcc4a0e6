// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command synparse lexes, parses and checks source files from the command
// line, mostly for debugging the parsers.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/source"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Diagnostics have already been printed for errFailed.
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "synparse:", err)
		}
		os.Exit(1)
	}
}

// globals holds the flags shared by every command.
type globals struct {
	logLevel string
	color    bool

	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	g := new(globals)
	rootCmd := &cobra.Command{
		Use:           "synparse",
		Short:         "Parse and inspect source files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(g.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			g.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = g.log.Sync()
		},
	}
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "",
		"log to stderr at this level (debug, info, warn, error); off if empty")
	rootCmd.PersistentFlags().BoolVar(&g.color, "color", false, "colorize diagnostics")

	rootCmd.AddCommand(newTokensCmd(g))
	rootCmd.AddCommand(newParseCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newInspectCmd(g))

	return rootCmd
}

func newLogger(level string, out io.Writer) (*zap.Logger, error) {
	if level == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(out)),
		lvl,
	)
	return zap.New(core), nil
}

// errFailed is returned by commands that have already printed diagnostics
// explaining why they failed.
var errFailed = errors.New("failed")

// printError renders err, which is usually a *report.Error, to the command's
// stderr.
func (g *globals) printError(cmd *cobra.Command, err error) error {
	var syntax *report.Error
	if !errors.As(err, &syntax) {
		return err
	}
	r := report.Renderer{Colorize: g.color}
	if _, _, err := r.Render(syntax.Report(), cmd.ErrOrStderr()); err != nil {
		return err
	}
	return errFailed
}

// readFile loads a file from disk.
func readFile(path string) (*source.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return source.NewFile(path, string(data)), nil
}

// osOpener opens files from disk.
type osOpener struct{}

func (osOpener) Open(path string) (*source.File, error) {
	return readFile(path)
}
