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

// Command tapedump inspects files in the Clausewitz text and binary formats.
//
// It can print the lexical items of a file, print the tapes that files parse
// into, and melt binary files into text. Zipped saves are unwrapped
// automatically.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/bufbuild/clausewitz"
	"github.com/bufbuild/clausewitz/report"
	"github.com/bufbuild/clausewitz/scalar"
	"github.com/bufbuild/clausewitz/source"
	"github.com/bufbuild/clausewitz/tape"
	"github.com/bufbuild/clausewitz/tokens"
)

// errReported is returned by commands that have already rendered their
// error.
var errReported = errors.New("errors were reported")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "tapedump:", err)
		}
		os.Exit(1)
	}
}

type flags struct {
	binary      bool
	tokens      string
	strict      bool
	windows1252 bool
	flavor      string
	header      bool
	maxInflight int64
	parallelism int
}

func newRootCommand() *cobra.Command {
	f := new(flags)
	root := &cobra.Command{
		Use:           "tapedump",
		Short:         "Inspect Clausewitz text and binary files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&f.binary, "binary", false, "parse input as binary")
	pf.StringVar(&f.tokens, "tokens", "", "token table for binary input: id-name lines, or YAML if the name ends in .yaml or .yml")
	pf.BoolVar(&f.strict, "strict", false, "fail on binary tokens missing from the token table")
	pf.BoolVar(&f.windows1252, "windows1252", false, "decode text input as Windows-1252")
	pf.StringVar(&f.flavor, "flavor", "eu4", "binary flavor: eu4 or ck3")
	pf.BoolVar(&f.header, "header", false, "strip a leading magic such as EU4txt, and use the format it names")

	root.AddCommand(
		newTokensCommand(f),
		newTapeCommand(f),
		newMeltCommand(f),
	)
	return root
}

// options builds parse options from the flags.
func (f *flags) options() (clausewitz.Options, error) {
	var opts clausewitz.Options
	if f.binary {
		opts.Format = clausewitz.Binary
	}
	if f.strict {
		opts.Mode = tape.Strict
	}
	if f.windows1252 {
		opts.Encoding = scalar.Windows1252
	}

	switch strings.ToLower(f.flavor) {
	case "eu4":
		opts.Flavor = scalar.EU4
	case "ck3":
		opts.Flavor = scalar.CK3
	default:
		return opts, fmt.Errorf("unknown flavor %q", f.flavor)
	}

	if f.tokens != "" {
		table, err := loadTokens(f.tokens)
		if err != nil {
			return opts, err
		}
		opts.Resolver = table
	}
	return opts, nil
}

// split strips the header off data if requested.
func (f *flags) split(format clausewitz.Format, data []byte) (clausewitz.Format, []byte) {
	if !f.header {
		return format, data
	}
	if hdr, body, ok := clausewitz.SplitHeader(data); ok {
		return hdr, body
	}
	return format, data
}

func loadTokens(path string) (*tokens.Table, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return tokens.LoadYAML(in)
	}
	return tokens.Load(in)
}

// diagnostics renders errors and warnings to a shared stream.
type diagnostics struct {
	mu  sync.Mutex
	cmd *cobra.Command
}

func (d *diagnostics) render(file *source.File, level report.Level, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = report.Render(d.cmd.ErrOrStderr(), file, level, err)
}

// reporter returns a reporter that renders warnings against file.
func (d *diagnostics) reporter(file *source.File) report.Reporter {
	return report.NewReporter(nil, func(err report.ErrorWithPos) {
		d.render(file, report.LevelWarning, err)
	})
}

// batchReporter returns a reporter for parses of many files at once, whose
// warnings cannot be attributed to a file.
func (d *diagnostics) batchReporter() report.Reporter {
	return report.NewReporter(nil, func(err report.ErrorWithPos) {
		d.mu.Lock()
		defer d.mu.Unlock()
		fmt.Fprintf(d.cmd.ErrOrStderr(), "%s: %v\n", report.LevelWarning, err)
	})
}

// fail renders err against file and returns [errReported].
func (d *diagnostics) fail(file *source.File, err error) error {
	d.render(file, report.LevelError, err)
	return errReported
}
