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

package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/clausewitz"
	"github.com/bufbuild/clausewitz/lexer"
	"github.com/bufbuild/clausewitz/scalar"
	"github.com/bufbuild/clausewitz/source"
	"github.com/bufbuild/clausewitz/writer"
)

func newTokensCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the lexical items of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return err
			}
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			format, data := f.split(opts.Format, data)

			var l lexer.Lexer
			if format == clausewitz.Binary {
				l = lexer.NewBinary(data, opts.Flavor)
			} else {
				l = lexer.NewText(data, opts.Encoding)
			}

			diags := &diagnostics{cmd: cmd}
			out := bufio.NewWriter(cmd.OutOrStdout())
			for item, err := range lexer.All(l) {
				if err != nil {
					_ = out.Flush()
					return diags.fail(source.NewFile(args[0], data), err)
				}
				fmt.Fprintln(out, item)
			}
			return out.Flush()
		},
	}
}

func newTapeCommand(f *flags) *cobra.Command {
	var maxInflight int64
	var parallelism int
	cmd := &cobra.Command{
		Use:   "tape <file>...",
		Short: "Print the tapes that files parse into",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return err
			}

			// Keep what was parsed, so that errors can be rendered against it.
			var inputs sync.Map
			loader := clausewitz.LoaderFunc(func(path string) ([]byte, error) {
				data, err := readInput(path)
				if err == nil {
					_, body := f.split(opts.Format, data)
					inputs.Store(path, body)
				}
				return data, err
			})

			diags := &diagnostics{cmd: cmd}
			opts.Reporter = diags.batchReporter()
			p := clausewitz.Parser{
				Loader:           loader,
				Options:          opts,
				DetectHeader:     f.header,
				MaxParallelism:   parallelism,
				MaxInflightBytes: maxInflight,
			}

			files, err := p.Parse(cmd.Context(), args...)
			if err != nil {
				var fe *clausewitz.FileError
				if !errors.As(err, &fe) {
					return err
				}
				data, _ := inputs.Load(fe.Path)
				body, _ := data.([]byte)
				return diags.fail(source.NewFile(fe.Path, body), fe.Err)
			}

			dumps := make([]bytes.Buffer, len(files))
			var g errgroup.Group
			g.SetLimit(max(parallelism, 1))
			for i, file := range files {
				g.Go(func() error {
					if len(files) > 1 {
						fmt.Fprintf(&dumps[i], "== %s (%v) ==\n", file.Path, file.Format)
					}
					return file.Tape.Dump(&dumps[i])
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i := range dumps {
				if _, err := dumps[i].WriteTo(out); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&maxInflight, "max-inflight", 256<<20, "maximum bytes of input parsed at once")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "maximum files parsed at once (default: number of CPUs)")
	return cmd
}

func newMeltCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "melt <file>",
		Short: "Rewrite a file as text",
		Long: "Rewrite a file as text. Binary files are melted: numbers are written " +
			"in decimal according to the flavor, and tokens by their names in the " +
			"token table. Tokens missing from the table are written as hexadecimal ids.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return err
			}
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			opts.Format, data = f.split(opts.Format, data)

			diags := &diagnostics{cmd: cmd}
			file := source.NewFile(args[0], data)
			opts.Reporter = diags.reporter(file)
			tp, err := clausewitz.Parse(data, opts)
			if err != nil {
				return diags.fail(file, err)
			}

			out := cmd.OutOrStdout()
			enc := scalar.UTF8
			if f.windows1252 {
				enc = scalar.Windows1252
			}
			if err := writer.WriteTape(writer.NewText(out, writer.WithEncoding(enc)), tp); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out)
			return err
		},
	}
}
