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

// Package tokens provides tables of binary identifier tokens.
//
// Binary documents identify most keys and many values by a two-byte token
// instead of by name. The mapping differs between games and between versions
// of the same game, and is not part of the documents themselves; a [Table]
// holds one such mapping. It serves as the [tape.Resolver] when parsing, and
// as the [writer.ReverseResolver] when writing.
package tokens

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/tidwall/btree"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/clausewitz/tape"
	"github.com/bufbuild/clausewitz/token"
	"github.com/bufbuild/clausewitz/writer"
)

var (
	ErrConflict = errors.New("conflicting token definition")
	ErrReserved = errors.New("token id is reserved for a control or scalar tag")
)

// Table is an ordered, bidirectional mapping between token ids and names.
//
// A Table must not be modified while it is being used by a parse or a
// writer; otherwise, it is safe for concurrent use.
type Table struct {
	byID   btree.Map[uint16, string]
	byName btree.Map[string, uint16]
}

var (
	_ tape.Resolver          = (*Table)(nil)
	_ writer.ReverseResolver = (*Table)(nil)
)

// Add adds a token to the table.
//
// Adding a token that is already present is not an error. Fails with
// [ErrConflict] if either the id or the name is already mapped to something
// else.
func (t *Table) Add(id uint16, name string) error {
	if !token.Tag(id).IsID() {
		return fmt.Errorf("%w: 0x%04x", ErrReserved, id)
	}
	if old, ok := t.byID.Get(id); ok {
		if old == name {
			return nil
		}
		return fmt.Errorf("%w: 0x%04x is both %q and %q", ErrConflict, id, old, name)
	}
	if old, ok := t.byName.Get(name); ok {
		return fmt.Errorf("%w: %q is both 0x%04x and 0x%04x", ErrConflict, name, old, id)
	}

	t.byID.Set(id, name)
	t.byName.Set(name, id)
	return nil
}

// Resolve implements [tape.Resolver].
func (t *Table) Resolve(id uint16) (string, bool) {
	return t.byID.Get(id)
}

// Lookup implements [writer.ReverseResolver].
func (t *Table) Lookup(name string) (uint16, bool) {
	return t.byName.Get(name)
}

// Len returns the number of tokens in the table.
func (t *Table) Len() int {
	return t.byID.Len()
}

// All returns an iterator over the table's tokens, in order of id.
func (t *Table) All() iter.Seq2[uint16, string] {
	return func(yield func(uint16, string) bool) {
		t.byID.Scan(yield)
	}
}

// Load reads a table in the line format: one token per line, as an id (in
// decimal, or hexadecimal with a 0x prefix) followed by whitespace and a
// name. Blank lines and lines starting with # are ignored.
func Load(r io.Reader) (*Table, error) {
	t := new(Table)
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected an id and a name, got %q", line, text)
		}
		id, err := strconv.ParseUint(fields[0], 0, 16)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := t.Add(uint16(id), fields[1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadYAML reads a table from a YAML mapping of ids to names.
func LoadYAML(r io.Reader) (*Table, error) {
	var m map[uint16]string
	if err := yaml.NewDecoder(r).Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	t := new(Table)
	for id, name := range m {
		if err := t.Add(id, name); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// WriteTo writes the table in the format read by [Load].
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	out := bufio.NewWriter(w)
	var n int64
	for id, name := range t.All() {
		m, err := fmt.Fprintf(out, "0x%04x %s\n", id, name)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, out.Flush()
}
