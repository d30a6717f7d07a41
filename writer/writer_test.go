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

package writer_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/clausewitz/scalar"
	"github.com/bufbuild/clausewitz/tape"
	"github.com/bufbuild/clausewitz/token"
	"github.com/bufbuild/clausewitz/writer"
)

// names is a reverse resolver for tests.
type names map[string]uint16

func (n names) Lookup(name string) (uint16, bool) {
	id, ok := n[name]
	return id, ok
}

func (n names) resolver() tape.MapResolver {
	m := make(tape.MapResolver, len(n))
	for name, id := range n {
		m[id] = name
	}
	return m
}

// canonical lists a tape's entries without regard to how scalars were
// spelled.
func canonical(tp *tape.Tape) []string {
	var out []string
	for _, e := range tp.Entries() {
		line := e.Kind().String()
		if e.Kind() == tape.Scalar {
			line += fmt.Sprintf(" %q %v trailer=%v", e.Scalar().String(), e.Op(), e.Trailer())
		}
		out = append(out, line)
	}
	return append(out, "root "+tp.RootKind().String())
}

func TestTextWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := writer.NewText(&buf)
	require.NoError(t, w.WriteKey("name"))
	require.NoError(t, w.WriteQuoted("Jean de Bourbon"))
	require.NoError(t, w.WriteKey("age"))
	require.NoError(t, w.WriteInt(30))
	require.NoError(t, w.WriteKey("traits"))
	require.NoError(t, w.BeginArray())
	require.NoError(t, w.WriteUnquoted("brave"))
	require.NoError(t, w.WriteUnquoted("just"))
	require.NoError(t, w.EndArray())
	require.NoError(t, w.WriteKey("stats"))
	require.NoError(t, w.BeginObject())
	require.NoError(t, w.WriteKey("gold"))
	require.NoError(t, w.WriteFloat(12.5))
	require.NoError(t, w.WriteKey("x"))
	require.NoError(t, w.WriteOperator(token.GreaterEqual))
	require.NoError(t, w.WriteBool(true))
	require.NoError(t, w.EndObject())
	require.NoError(t, w.WriteKey("born"))
	require.NoError(t, w.WriteDate(scalar.Date{Year: 1444, Month: 11, Day: 11}))
	require.NoError(t, w.WriteKey("color"))
	require.NoError(t, w.WriteRgb(scalar.Color{R: 1, G: 2, B: 3}))
	require.NoError(t, w.WriteKey("empty"))
	require.NoError(t, w.BeginObject())
	require.NoError(t, w.EndObject())
	require.NoError(t, w.WriteKey("id"))
	require.NoError(t, w.WriteToken(0xbeef, ""))
	require.NoError(t, w.Flush())

	want := `name="Jean de Bourbon"
age=30
traits={ brave just }
stats={
	gold=12.5
	x>=yes
}
born=1444.11.11
color=rgb { 1 2 3 }
empty={}
id=0xbeef`
	assert.Equal(t, want, buf.String())

	tp, err := tape.ParseText(buf.Bytes(), tape.Options{})
	require.NoError(t, err)
	root, _ := tp.RootObject()
	assert.Equal(t, 8, root.Len())
	v, ok := root.Get("color")
	require.True(t, ok)
	s, _ := v.Scalar()
	assert.Equal(t, scalar.Rgb, s.Kind())
}

func TestTextQuoting(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := writer.NewText(&buf)
	require.NoError(t, w.WriteKey("a b"))
	require.NoError(t, w.WriteUnquoted("x=y"))
	require.NoError(t, w.WriteKey("c"))
	require.NoError(t, w.WriteUnquoted("rgb"))
	require.NoError(t, w.WriteKey("d"))
	require.NoError(t, w.WriteQuoted(`say "hi"`))
	require.NoError(t, w.WriteKey("e"))
	require.NoError(t, w.WriteUnquoted(""))
	require.NoError(t, w.Flush())

	assert.Equal(t, "\"a b\"=\"x=y\"\nc=\"rgb\"\nd=\"say \\\"hi\\\"\"\ne=\"\"", buf.String())
}

func TestTextWindows1252(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := writer.NewText(&buf, writer.WithEncoding(scalar.Windows1252), writer.WithIndent("  "))
	require.NoError(t, w.WriteKey("a"))
	require.NoError(t, w.BeginObject())
	require.NoError(t, w.WriteKey("name"))
	require.NoError(t, w.WriteQuoted("François"))
	require.NoError(t, w.EndObject())
	require.NoError(t, w.Flush())

	assert.Equal(t, "a={\n  name=\"Fran\xe7ois\"\n}", buf.String())
}

func TestWriterErrors(t *testing.T) {
	t.Parallel()

	writers := map[string]func() writer.Writer{
		"text":   func() writer.Writer { return writer.NewText(new(bytes.Buffer)) },
		"binary": func() writer.Writer { return writer.NewBinary(new(bytes.Buffer), nil, scalar.EU4) },
	}
	for name, newWriter := range writers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			w := newWriter()
			require.ErrorIs(t, w.EndObject(), writer.ErrUnbalanced)
			require.ErrorIs(t, w.WriteOperator(token.Equal), writer.ErrNoKey)

			w = newWriter()
			require.NoError(t, w.WriteKey("a"))
			require.ErrorIs(t, w.WriteKey("b"), writer.ErrMissingValue)

			w = newWriter()
			require.NoError(t, w.WriteKey("a"))
			require.NoError(t, w.BeginArray())
			require.ErrorIs(t, w.WriteKey("b"), writer.ErrKeyInArray)
			require.ErrorIs(t, w.EndObject(), writer.ErrUnbalanced)
			require.NoError(t, w.EndArray())

			w = newWriter()
			require.NoError(t, w.WriteKey("a"))
			require.NoError(t, w.BeginObject())
			require.NoError(t, w.WriteKey("b"))
			require.ErrorIs(t, w.EndObject(), writer.ErrMissingValue)
		})
	}
}

func TestTextRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`a={b=1 c=2} arr={1 2 3} name="x \"y\"" e={} d=1444.11.11 f>=3 g{h=1}`,
		`levels={ 10 0=2 1=2 }`,
		`brittany_area={color={118 99 151} 169 170}`,
		`a=1 b`,
		`1 2 3`,
		`{ a=1 } { b=2 }`,
		`c=rgb { 1 2 3 } list={ rgb{4 5 6} }`,
		`nested={ { { x=1 } } }`,
		`"quoted key"=value`,
		`a={ c=1 169 {x=1} }`,
		`a={ c=1 169 170 }`,
		`a={ c=1 169 170 {x=1} }`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			want, err := tape.ParseText([]byte(input), tape.Options{})
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, writer.WriteTape(writer.NewText(&buf), want))
			got, err := tape.ParseText(buf.Bytes(), tape.Options{})
			require.NoError(t, err, "%s", buf.String())

			if diff := cmp.Diff(canonical(want), canonical(got)); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s\noutput:\n%s", diff, buf.String())
			}
		})
	}
}

func TestWriteTapeAmbiguous(t *testing.T) {
	t.Parallel()

	// A scalar then a hidden object, at the root and in a trailer.
	for _, input := range []string{`s 1=3`, `a={ c=1 169 0=1 }`} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			tp, err := tape.ParseText([]byte(input), tape.Options{})
			require.NoError(t, err)
			var buf bytes.Buffer
			require.ErrorIs(t, writer.WriteTape(writer.NewText(&buf), tp), writer.ErrAmbiguous)
		})
	}
}

func writeSample(t *testing.T, w writer.Writer) {
	t.Helper()
	require.NoError(t, w.WriteKey("name"))
	require.NoError(t, w.WriteQuoted("Jean"))
	require.NoError(t, w.WriteKey("age"))
	require.NoError(t, w.WriteInt(30))
	require.NoError(t, w.WriteKey("big"))
	require.NoError(t, w.WriteInt(1<<40))
	require.NoError(t, w.WriteKey("gold"))
	require.NoError(t, w.WriteFloat(12.5))
	require.NoError(t, w.WriteKey("alive"))
	require.NoError(t, w.WriteBool(true))
	require.NoError(t, w.WriteKey("color"))
	require.NoError(t, w.WriteRgb(scalar.Color{R: 1, G: 2, B: 3}))
	require.NoError(t, w.WriteKey("ids"))
	require.NoError(t, w.BeginArray())
	require.NoError(t, w.WriteUint(1))
	require.NoError(t, w.WriteUint(2))
	require.NoError(t, w.EndArray())
	require.NoError(t, w.WriteKey("mystery"))
	require.NoError(t, w.WriteUnquoted("plain"))
	require.NoError(t, w.WriteKey("flags"))
	require.NoError(t, w.WriteOperator(token.OpNone))
	require.NoError(t, w.BeginObject())
	require.NoError(t, w.EndObject())
	require.NoError(t, w.Flush())
}

var sampleNames = names{
	"name": 0x100, "age": 0x101, "big": 0x102, "gold": 0x103, "alive": 0x104,
	"color": 0x105, "ids": 0x106, "flags": 0x107,
}

func TestBinaryRoundTrip(t *testing.T) {
	t.Parallel()

	var first bytes.Buffer
	writeSample(t, writer.NewBinary(&first, sampleNames, scalar.EU4))

	tp, err := tape.ParseBinary(first.Bytes(), tape.Options{Resolver: sampleNames.resolver()})
	require.NoError(t, err)
	root, ok := tp.RootObject()
	require.True(t, ok)
	assert.Equal(t, 9, root.Len())

	var second bytes.Buffer
	require.NoError(t, writer.WriteTape(writer.NewBinary(&second, sampleNames, scalar.EU4), tp))
	assert.Equal(t, first.Bytes(), second.Bytes())

	again, err := tape.ParseBinary(second.Bytes(), tape.Options{Resolver: sampleNames.resolver()})
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(canonical(tp), canonical(again)))
}

func TestBinaryStrings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := writer.NewBinary(&buf, nil, scalar.CK3)
	require.NoError(t, w.WriteKey("a_long_key"))
	require.NoError(t, w.WriteQuoted("hi"))
	require.NoError(t, w.WriteKey("b"))
	require.NoError(t, w.WriteUnquoted("yo"))
	require.NoError(t, w.Flush())

	want := []byte{0x17, 0x00, 0x0a, 0x00}
	want = append(want, "a_long_key"...)
	want = append(want, 0x01, 0x00, 0x0f, 0x00, 0x02, 0x00, 'h', 'i')
	want = append(want, 0x17, 0x00, 0x01, 0x00, 'b')
	want = append(want, 0x01, 0x00, 0x17, 0x00, 0x02, 0x00, 'y', 'o')
	assert.Equal(t, want, buf.Bytes())

	tp, err := tape.ParseBinary(buf.Bytes(), tape.Options{Flavor: scalar.CK3})
	require.NoError(t, err)
	root, ok := tp.RootObject()
	require.True(t, ok)
	v, ok := root.Get("a_long_key")
	require.True(t, ok)
	s, ok := v.Scalar()
	require.True(t, ok)
	assert.Equal(t, scalar.Quoted, s.Kind())
	assert.Equal(t, "hi", s.String())
}

func TestMelt(t *testing.T) {
	t.Parallel()

	var bin bytes.Buffer
	writeSample(t, writer.NewBinary(&bin, sampleNames, scalar.EU4))
	tp, err := tape.ParseBinary(bin.Bytes(), tape.Options{Resolver: sampleNames.resolver()})
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, writer.WriteTape(writer.NewText(&text), tp))
	want := `name="Jean"
age=30
big=1099511627776
gold=12.5
alive=yes
color=rgb { 1 2 3 }
ids={ 1 2 }
mystery=plain
flags {}`
	assert.Equal(t, want, text.String())

	// The text writer writes the same thing whether it is driven directly or
	// by melting.
	var direct bytes.Buffer
	writeSample(t, writer.NewText(&direct))
	assert.Equal(t, want, direct.String())
}

func TestBinaryUnknownTokens(t *testing.T) {
	t.Parallel()

	var bin bytes.Buffer
	w := writer.NewBinary(&bin, nil, scalar.EU4)
	require.NoError(t, w.WriteKeyToken(0xbeef, ""))
	require.NoError(t, w.WriteToken(0xbeee, ""))
	require.NoError(t, w.Flush())
	assert.Equal(t, []byte{0xef, 0xbe, 0x01, 0x00, 0xee, 0xbe}, bin.Bytes())

	tp, err := tape.ParseBinary(bin.Bytes(), tape.Options{})
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, writer.WriteTape(writer.NewText(&text), tp))
	assert.Equal(t, "0xbeef=0xbeee", text.String())

	var again bytes.Buffer
	require.NoError(t, writer.WriteTape(writer.NewBinary(&again, nil, scalar.EU4), tp))
	assert.Equal(t, bin.Bytes(), again.Bytes())
}

func TestBinaryFlavors(t *testing.T) {
	t.Parallel()

	var ck3 bytes.Buffer
	w := writer.NewBinary(&ck3, names{"a": 0x100, "b": 0x101}, scalar.CK3)
	require.NoError(t, w.WriteKey("a"))
	require.NoError(t, w.WriteFloat(0.5))
	require.NoError(t, w.WriteKey("b"))
	require.NoError(t, w.WriteFloat(1.001))
	require.NoError(t, w.Flush())

	resolver := tape.MapResolver{0x100: "a", 0x101: "b"}
	tp, err := tape.ParseBinary(ck3.Bytes(), tape.Options{Resolver: resolver, Flavor: scalar.CK3})
	require.NoError(t, err)

	var eu4 bytes.Buffer
	require.NoError(t, writer.WriteTape(writer.NewBinary(&eu4, names{"a": 0x100, "b": 0x101}, scalar.EU4), tp))
	converted, err := tape.ParseBinary(eu4.Bytes(), tape.Options{Resolver: resolver, Flavor: scalar.EU4})
	require.NoError(t, err)

	root, _ := converted.RootObject()
	a, _ := root.Get("a")
	s, _ := a.Scalar()
	assert.Equal(t, scalar.F32, s.Kind())
	v, err := s.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-9)

	b, _ := root.Get("b")
	s, _ = b.Scalar()
	assert.Equal(t, scalar.F64, s.Kind())
	v, err = s.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 1.001, v, 1e-4)
}
