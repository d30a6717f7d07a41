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

package clausewitz_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/clausewitz"
	"github.com/bufbuild/clausewitz/internal/ext/bitsx"
	"github.com/bufbuild/clausewitz/report"
	"github.com/bufbuild/clausewitz/tape"
	"github.com/bufbuild/clausewitz/token"
	"github.com/bufbuild/clausewitz/tokens"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tp, err := clausewitz.Parse([]byte("a={b=1}"), clausewitz.Options{})
	require.NoError(t, err)
	root, ok := tp.RootObject()
	require.True(t, ok)
	assert.Equal(t, 1, root.Len())

	table, err := tokens.Load(strings.NewReader("0x2a x"))
	require.NoError(t, err)

	var bin []byte
	for _, tag := range []token.Tag{0x2a, token.TagEqual, token.TagI32} {
		bin = bitsx.AppendLittleEndian(bin, uint16(tag))
	}
	bin = bitsx.AppendLittleEndian(bin, int32(7))

	tp, err = clausewitz.Parse(bin, clausewitz.Options{
		Format:  clausewitz.Binary,
		Options: tape.Options{Mode: tape.Strict, Resolver: table},
	})
	require.NoError(t, err)
	root, ok = tp.RootObject()
	require.True(t, ok)
	x, ok := root.Get("x")
	require.True(t, ok)
	s, _ := x.Scalar()
	v, err := s.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	_, err = clausewitz.Parse(bin[:len(bin)-1], clausewitz.Options{Format: clausewitz.Binary})
	require.ErrorIs(t, err, report.ErrTruncated)
}

func TestSplitHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		format clausewitz.Format
		body   string
		ok     bool
	}{
		{input: "EU4txt\ndate=1444.11.11", format: clausewitz.Text, body: "date=1444.11.11", ok: true},
		{input: "CK3bin\x01\x00", format: clausewitz.Binary, body: "\x01\x00", ok: true},
		{input: "EU4txt", format: clausewitz.Text, body: "", ok: true},
		{input: "date=1444.11.11", body: "date=1444.11.11"},
		{input: "EU4", body: "EU4"},
		{input: "EU4zip....", body: "EU4zip...."},
		{input: "E_4txt", body: "E_4txt"},
	}
	for _, test := range tests {
		format, body, ok := clausewitz.SplitHeader([]byte(test.input))
		assert.Equal(t, test.ok, ok, "%q", test.input)
		assert.Equal(t, test.body, string(body), "%q", test.input)
		if ok {
			assert.Equal(t, test.format, format, "%q", test.input)
		}
	}

	assert.Equal(t, "text", clausewitz.Text.String())
	assert.Equal(t, "binary", clausewitz.Binary.String())
}

func TestParser(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.txt":   "a=1",
		"b.txt":   "EU4txt\nb={1 2 3}",
		"bad.txt": "c={",
	}
	var loads atomic.Int32
	loader := clausewitz.LoaderFunc(func(path string) ([]byte, error) {
		loads.Add(1)
		data, ok := files[path]
		if !ok {
			return nil, fmt.Errorf("%s: %w", path, os.ErrNotExist)
		}
		return []byte(data), nil
	})

	p := clausewitz.Parser{Loader: loader, DetectHeader: true, MaxInflightBytes: 4}
	parsed, err := p.Parse(context.Background(), "a.txt", "b.txt", "a.txt")
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	assert.Same(t, parsed[0], parsed[2])
	assert.Equal(t, int32(2), loads.Load())

	assert.Equal(t, "b={1 2 3}", string(parsed[1].Data))
	root, ok := parsed[1].Tape.RootObject()
	require.True(t, ok)
	b, ok := root.Get("b")
	require.True(t, ok)
	arr, ok := b.Array()
	require.True(t, ok)
	assert.Equal(t, 3, arr.Len())

	_, err = p.Parse(context.Background(), "a.txt", "bad.txt")
	var fe *clausewitz.FileError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "bad.txt", fe.Path)
	require.ErrorIs(t, err, report.ErrUnclosedGroup)

	_, err = p.Parse(context.Background(), "missing.txt")
	require.ErrorAs(t, err, &fe)
	require.ErrorIs(t, err, os.ErrNotExist)

	// Both fail; the earlier argument wins whichever finishes first.
	_, err = p.Parse(context.Background(), "b.txt", "missing.txt", "bad.txt")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "missing.txt", fe.Path)
	require.ErrorIs(t, err, os.ErrNotExist)

	none, err := p.Parse(context.Background())
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestLoaders(t *testing.T) {
	t.Parallel()

	base, mod := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "a.txt"), []byte("base"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(base, "b.txt"), []byte("base"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(mod, "a.txt"), []byte("mod"), 0o600))

	loader := &clausewitz.DirLoader{Dirs: []string{mod, base}}
	data, err := loader.Load("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "mod", string(data))
	data, err = loader.Load("b.txt")
	require.NoError(t, err)
	assert.Equal(t, "base", string(data))
	_, err = loader.Load("c.txt")
	require.ErrorIs(t, err, os.ErrNotExist)

	plain := &clausewitz.DirLoader{}
	data, err = plain.Load(filepath.Join(base, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "base", string(data))

	fixed := clausewitz.LoaderFunc(func(string) ([]byte, error) { return []byte("fixed"), nil })
	composite := clausewitz.CompositeLoader{loader, fixed}
	data, err = composite.Load("c.txt")
	require.NoError(t, err)
	assert.Equal(t, "fixed", string(data))

	_, err = clausewitz.CompositeLoader{}.Load("a.txt")
	require.ErrorIs(t, err, clausewitz.ErrNotFound)
}
