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

// enum is a helper for generating boilerplate related to Go enums.
//
// To generate boilerplate for a given file, use
//
//	//go:generate go run github.com/bufbuild/clausewitz/internal/enum kind.yaml
//
// Each argument names a YAML file containing an array of the Enum type
// defined in this package; kind.yaml generates kind.go next to it. With
// --check, nothing is written, and enum fails if a generated file is stale.
//
//nolint:revive // We use _ in field names to disambiguate them from methods, while still exporting them.
package main

import (
	"bytes"
	"debug/buildinfo"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/clausewitz/internal/ext/slicesx"
)

var errStale = errors.New("generated file is out of date; rerun go generate")

type Enum struct {
	Name    string   `yaml:"name"`  // The name of the new type.
	Type    string   `yaml:"type"`  // The underlying type.
	Docs    string   `yaml:"docs"`  // Documentation for the type.
	Total   string   `yaml:"total"` // The name of a "total values" constant.
	Methods []Method `yaml:"methods"`
	Values_ []Value  `yaml:"values"`
}

func (e *Enum) Values() []Value {
	for i := range e.Values_ {
		e.Values_[i].Parent = e
		e.Values_[i].Idx = i
	}
	return e.Values_
}

// validate checks for mistakes that would otherwise only show up when
// compiling the generated code, or not at all.
func (e *Enum) validate() error {
	if e.Name == "" || e.Type == "" {
		return errors.New("enum is missing a name or type")
	}
	if len(e.Values_) == 0 {
		return fmt.Errorf("%s: no values", e.Name)
	}

	seen := make(map[string]bool)
	for i, v := range e.Values_ {
		if seen[v.Name] {
			return fmt.Errorf("%s: duplicate value %s", e.Name, v.Name)
		}
		if v.Alias != "" && (i == 0 || !seen[v.Alias]) {
			return fmt.Errorf("%s: %s aliases %s, which is not an earlier value", e.Name, v.Name, v.Alias)
		}
		seen[v.Name] = true
	}

	for _, m := range e.Methods {
		if _, err := m.Name(); err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
		for _, skip := range m.Skip {
			if !seen[skip] {
				return fmt.Errorf("%s: %s skips unknown value %s", e.Name, m.Kind, skip)
			}
		}
		if m.Kind != MethodFromString {
			continue
		}

		// Lookups must be unambiguous.
		strs := make(map[string]string)
		for _, v := range e.Values_ {
			if slices.Contains(m.Skip, v.Name) {
				continue
			}
			if prev, ok := strs[v.String()]; ok {
				return fmt.Errorf("%s: %s and %s are both spelled %q", e.Name, prev, v.Name, v.String())
			}
			strs[v.String()] = v.Name
		}
	}
	return nil
}

type Value struct {
	Name    string  `yaml:"name"`   // The name of the value.
	Alias   string  `yaml:"alias"`  // Another value this value aliases, if any.
	String_ *string `yaml:"string"` // The string representation of this value; may be explicitly empty.
	Docs    string  `yaml:"docs"`   // Documentation for the value.

	Parent *Enum `yaml:"-"`
	Idx    int   `yaml:"-"`
}

func (v Value) HasSuffixDocs() bool {
	next, ok := slicesx.Get(v.Parent.Values_, v.Idx+1)
	return v.Docs != "" && !strings.Contains(v.Docs, "\n") && (!ok || next.Docs != "")
}

func (v Value) String() string {
	if v.String_ == nil {
		return v.Name
	}
	return *v.String_
}

type Method struct {
	Kind  MethodKind `yaml:"kind"` // The kind of method to generate.
	Name_ string     `yaml:"name"` // The method's name; optional for some methods.
	Docs_ string     `yaml:"docs"` // Documentation for the method.
	Skip  []string   `yaml:"skip"` // Enum values to ignore in this method.
}

func (m Method) Name() (string, error) {
	if m.Name_ != "" {
		return m.Name_, nil
	}

	switch m.Kind {
	case MethodFromString:
		return "", fmt.Errorf("missing name for kind: %#v", MethodFromString)
	case MethodGoString:
		return "GoString", nil
	case MethodString:
		return "String", nil
	default:
		return "", fmt.Errorf("unexpected kind: %#v", m.Kind)
	}
}

func (m Method) Docs() string {
	if m.Docs_ != "" {
		return m.Docs_
	}

	switch m.Kind {
	case MethodGoString:
		return "GoString implements [fmt.GoStringer]."
	case MethodString:
		return "String implements [fmt.Stringer]."
	default:
		return ""
	}
}

type MethodKind string

const (
	MethodString     MethodKind = "string"
	MethodGoString   MethodKind = "go-string"
	MethodFromString MethodKind = "from-string"
)

//go:embed enum.go.tmpl
var tmplText string

var tmpl = template.Must(template.New("enum.go.tmpl").Funcs(template.FuncMap{
	"makeDocs": makeDocs,
	"contains": slices.Contains[[]string],
}).Parse(tmplText))

// makeDocs converts a data into doc comments.
func makeDocs(data, indent string) string {
	if data == "" {
		return ""
	}

	var out strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		out.WriteString(indent)
		if line == "" {
			out.WriteString("//\n")
			continue
		}
		out.WriteString("// ")
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String()
}

// input is what the template is executed with.
type input struct {
	Binary, Package, Config string
	YAML                    []Enum
}

// generate renders the Go file for the enums described by text.
func generate(binary, pkg, config string, text []byte) ([]byte, error) {
	in := input{Binary: binary, Package: pkg, Config: config}
	if err := yaml.Unmarshal(text, &in.YAML); err != nil {
		return nil, err
	}
	types := make(map[string]bool)
	for _, e := range in.YAML {
		types[e.Name] = true
	}
	for i := range in.YAML {
		e := &in.YAML[i]
		if err := e.validate(); err != nil {
			return nil, err
		}
		// Values and types share the package scope.
		for _, v := range e.Values_ {
			if types[v.Name] {
				return nil, fmt.Errorf("%s: value %s has the same name as a type", e.Name, v.Name)
			}
		}
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, in); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// run generates the file for config, or checks it if check is set.
func run(binary, pkg, config string, check bool) error {
	if filepath.Ext(config) != ".yaml" {
		return errors.New("file argument must end in .yaml")
	}

	text, err := os.ReadFile(config)
	if err != nil {
		return err
	}
	code, err := generate(binary, pkg, filepath.Base(config), text)
	if err != nil {
		return err
	}

	path := strings.TrimSuffix(config, ".yaml") + ".go"
	if !check {
		return os.WriteFile(path, code, 0o644) //nolint:gosec // Generated code is not secret.
	}

	have, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !bytes.Equal(have, code) {
		return fmt.Errorf("%s: %w", path, errStale)
	}
	return nil
}

func newCommand() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:           "enum <config.yaml>...",
		Short:         "Generate boilerplate for Go enums",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := buildinfo.ReadFile(os.Args[0])
			if err != nil {
				return err
			}

			var errs []error
			for _, config := range args {
				if err := run(info.Path, os.Getenv("GOPACKAGE"), config, check); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", config, err))
				}
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "fail if generated files are stale instead of writing them")
	return cmd
}

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
