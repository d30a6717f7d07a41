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

package scalar_test

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/clausewitz/internal/ext/bitsx"
	"github.com/bufbuild/clausewitz/internal/ext/unsafex"
	"github.com/bufbuild/clausewitz/scalar"
)

func TestZeroCopy(t *testing.T) {
	t.Parallel()

	buf := []byte(`name "Joe" caf`)
	unquoted := scalar.NewUnquoted(buf[:4], scalar.UTF8)
	quoted := scalar.NewQuoted(buf[6:9], false, scalar.UTF8)

	for _, s := range []scalar.Scalar{unquoted, quoted} {
		str, err := s.Str()
		require.NoError(t, err)
		assert.True(t, unsafex.Within(unsafe.Slice(unsafe.StringData(str), len(str)), buf), "%q was copied", str)
		assert.True(t, unsafex.Within(s.Bytes(), buf))
	}
}

func TestEscapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw, want string
	}{
		{raw: `a\"b`, want: `a"b`},
		{raw: `a\\b`, want: `a\b`},
		{raw: `a\nb`, want: "a\nb"},
		{raw: `a\tb`, want: "a\tb"},
		{raw: `a\rb`, want: "a\rb"},
		{raw: `\q`, want: "q"},
		{raw: `C:\\Users\\`, want: `C:\Users\`},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			t.Parallel()

			s := scalar.NewQuoted([]byte(test.raw), true, scalar.UTF8)
			assert.True(t, s.HasEscapes())

			first, err := s.Str()
			require.NoError(t, err)
			assert.Equal(t, test.want, first)

			// Decoding again returns the cached string.
			second, err := s.Str()
			require.NoError(t, err)
			assert.Equal(t, first, second)
			assert.Same(t, unsafe.StringData(first), unsafe.StringData(second))

			assert.Equal(t, test.want, string(scalar.Unescape([]byte(test.raw))))
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"plain", `a"b`, `a\b`, "a\nb\tc\rd", ""} {
		escaped := scalar.Escape(text)
		assert.Equal(t, text, string(scalar.Unescape([]byte(escaped))))
	}
}

func TestConcurrentDecode(t *testing.T) {
	t.Parallel()

	s := scalar.NewQuoted([]byte(`say \"hi\"`), true, scalar.UTF8)
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			str, err := s.Str()
			assert.NoError(t, err)
			assert.Equal(t, `say "hi"`, str)
		}()
	}
	wg.Wait()
}

func TestWindows1252(t *testing.T) {
	t.Parallel()

	s := scalar.NewUnquoted([]byte{'h', 'i', 0x81, 0x8a}, scalar.Windows1252)
	str, err := s.Str()
	require.NoError(t, err)
	assert.Equal(t, "hi\u0081Š", str)

	s = scalar.NewQuoted([]byte{0xff, '\\', '"'}, true, scalar.Windows1252)
	str, err = s.Str()
	require.NoError(t, err)
	assert.Equal(t, `ÿ"`, str)

	assert.Equal(t, []byte{'a', 0x8a, '?'}, scalar.EncodeWindows1252("aŠ日"))

	// Unassigned bytes pass through as C1 controls, in both directions.
	unassigned := []byte{'a', 0x81, 0x8d, 0x8f, 0x90, 0x9d}
	str, err = scalar.NewUnquoted(unassigned, scalar.Windows1252).Str()
	require.NoError(t, err)
	assert.Equal(t, "a\u0081\u008d\u008f\u0090\u009d", str)
	assert.Equal(t, unassigned, scalar.EncodeWindows1252(str))

	// Invalid UTF-8 is not text in a UTF-8 buffer.
	_, err = scalar.NewUnquoted([]byte{0xff}, scalar.UTF8).Str()
	require.ErrorIs(t, err, scalar.ErrNotString)
}

func TestInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int64
		err  error
	}{
		{text: "0", want: 0},
		{text: "1", want: 1},
		{text: "-1", want: -1},
		{text: "+7", want: 7},
		{text: "20405029553322", want: 20405029553322},
		{text: "-9223372036854775808", want: -9223372036854775808},
		{text: "9223372036854775808", err: scalar.ErrOverflow},
		{text: "666666666666666685902", err: scalar.ErrOverflow},
		{text: "", err: scalar.ErrNotInt},
		{text: "-", err: scalar.ErrNotInt},
		{text: "1.5", err: scalar.ErrNotInt},
		{text: "abc", err: scalar.ErrNotInt},
	}

	for _, test := range tests {
		v, err := scalar.NewUnquoted([]byte(test.text), scalar.UTF8).Int64()
		if test.err != nil {
			require.ErrorIs(t, err, test.err, "%q", test.text)
			var scalarErr *scalar.Error
			require.ErrorAs(t, err, &scalarErr)
			assert.Equal(t, "int64", scalarErr.Want)
			continue
		}
		require.NoError(t, err, "%q", test.text)
		assert.Equal(t, test.want, v, "%q", test.text)
	}

	u, err := scalar.NewUnquoted([]byte("18446744073709551615"), scalar.UTF8).Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), u)

	_, err = scalar.NewUnquoted([]byte("-1"), scalar.UTF8).Uint64()
	require.ErrorIs(t, err, scalar.ErrNotInt)
}

func TestFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want float64
		ok   bool
	}{
		{text: "0", want: 0, ok: true},
		{text: "-1", want: -1, ok: true},
		{text: "0.504", want: 0.504, ok: true},
		{text: "1.00125", want: 1.00125, ok: true},
		{text: "-1.50000", want: -1.5, ok: true},
		{text: "20405029.125", want: 20405029.125, ok: true},
		{text: "1.", ok: false},
		{text: ".5", ok: false},
		{text: "1.2.3", ok: false},
		{text: "inf", ok: false},
		{text: "1e5", ok: false},
	}

	for _, test := range tests {
		v, err := scalar.NewUnquoted([]byte(test.text), scalar.UTF8).Float64()
		if !test.ok {
			require.ErrorIs(t, err, scalar.ErrNotFloat, "%q", test.text)
			continue
		}
		require.NoError(t, err, "%q", test.text)
		assert.InDelta(t, test.want, v, 1e-9, "%q", test.text)
	}
}

func TestBool(t *testing.T) {
	t.Parallel()

	v, err := scalar.NewUnquoted([]byte("yes"), scalar.UTF8).Bool()
	require.NoError(t, err)
	assert.True(t, v)

	v, err = scalar.NewUnquoted([]byte("no"), scalar.UTF8).Bool()
	require.NoError(t, err)
	assert.False(t, v)

	_, err = scalar.NewUnquoted([]byte("true"), scalar.UTF8).Bool()
	require.ErrorIs(t, err, scalar.ErrNotBool)

	v, err = scalar.NewBinary(scalar.Bool, []byte{1}, scalar.EU4).Bool()
	require.NoError(t, err)
	assert.True(t, v)
}

func TestBinary(t *testing.T) {
	t.Parallel()

	i32 := scalar.NewBinary(scalar.I32, bitsx.AppendLittleEndian[int32](nil, -7), scalar.EU4)
	assert.Equal(t, scalar.ShapeBinary, i32.Shape())
	v, err := i32.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-7), v)
	_, err = i32.Uint64()
	require.ErrorIs(t, err, scalar.ErrOverflow)
	_, err = i32.Str()
	require.ErrorIs(t, err, scalar.ErrNotString)
	assert.Equal(t, "-7", i32.String())

	u64 := scalar.NewBinary(scalar.U64, bitsx.AppendLittleEndian[uint64](nil, 1<<63), scalar.EU4)
	_, err = u64.Int64()
	require.ErrorIs(t, err, scalar.ErrOverflow)

	str := scalar.NewBinary(scalar.Quoted, []byte("12"), scalar.CK3)
	v, err = str.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(12), v)

	_, err = scalar.NewBinary(scalar.F32, make([]byte, 4), scalar.EU4).Bool()
	require.ErrorIs(t, err, scalar.ErrNotBool)
}

func TestFlavor(t *testing.T) {
	t.Parallel()

	eu4F32 := bitsx.AppendLittleEndian[int32](nil, 1500)
	assert.InDelta(t, 1.5, scalar.EU4.DecodeF32(eu4F32), 1e-9)
	assert.Equal(t, eu4F32, scalar.EU4.AppendF32(nil, 1.5))

	eu4F64 := bitsx.AppendLittleEndian[int64](nil, 32768*3+16384)
	assert.InDelta(t, 3.5, scalar.EU4.DecodeF64(eu4F64), 1e-9)
	assert.Equal(t, eu4F64, scalar.EU4.AppendF64(nil, 3.5))

	// Truncated to five decimal digits.
	assert.InDelta(t, 0.00003, scalar.EU4.DecodeF64(bitsx.AppendLittleEndian[int64](nil, 1)), 1e-12)

	ck3F32 := scalar.CK3.AppendF32(nil, 0.25)
	assert.InDelta(t, 0.25, scalar.CK3.DecodeF32(ck3F32), 1e-9)

	ck3F64 := bitsx.AppendLittleEndian[int64](nil, -2250)
	assert.InDelta(t, -2.25, scalar.CK3.DecodeF64(ck3F64), 1e-9)
	assert.Equal(t, ck3F64, scalar.CK3.AppendF64(nil, -2.25))

	s := scalar.NewBinary(scalar.F32, eu4F32, scalar.EU4)
	assert.Equal(t, "1.5", s.String())
}

func TestToken(t *testing.T) {
	t.Parallel()

	raw := []byte{0xef, 0xbe}
	unresolved := scalar.NewToken(raw)
	id, ok := unresolved.ID()
	assert.True(t, ok)
	assert.Equal(t, uint16(0xbeef), id)
	assert.False(t, unresolved.Resolved())
	_, err := unresolved.Str()
	require.ErrorIs(t, err, scalar.ErrNotString)
	assert.Equal(t, "0xbeef", unresolved.String())

	resolved := scalar.NewResolvedToken(raw, "x")
	assert.True(t, resolved.Resolved())
	str, err := resolved.Str()
	require.NoError(t, err)
	assert.Equal(t, "x", str)
}

func TestEqual(t *testing.T) {
	t.Parallel()

	one := scalar.NewUnquoted([]byte("1"), scalar.UTF8)
	assert.True(t, one.Equal(scalar.NewUnquoted([]byte("1"), scalar.UTF8)))
	assert.False(t, one.Equal(scalar.NewUnquoted([]byte("1.0"), scalar.UTF8)))
	assert.False(t, one.Equal(scalar.NewQuoted([]byte("1"), false, scalar.UTF8)))
	assert.False(t, one.Equal(scalar.NewBinary(scalar.I32, bitsx.AppendLittleEndian[int32](nil, 1), scalar.EU4)))
}

func TestColor(t *testing.T) {
	t.Parallel()

	c, err := scalar.NewColor([]byte("rgb {100 200\t150 }")).Rgb()
	require.NoError(t, err)
	assert.Equal(t, scalar.Color{R: 100, G: 200, B: 150}, c)
	assert.Equal(t, "rgb { 100 200 150 }", c.String())

	_, err = scalar.NewColor([]byte("rgb { 1 2 }")).Rgb()
	require.ErrorIs(t, err, scalar.ErrNotColor)

	_, err = scalar.NewUnquoted([]byte("rgb"), scalar.UTF8).Rgb()
	require.ErrorIs(t, err, scalar.ErrNotColor)

	payload := []byte{0x03, 0x00}
	for _, v := range []uint32{110, 27, 27} {
		payload = append(payload, 0x14, 0x00)
		payload = bitsx.AppendLittleEndian(payload, v)
	}
	payload = append(payload, 0x04, 0x00)
	c, err = scalar.NewBinary(scalar.Rgb, payload, scalar.EU4).Rgb()
	require.NoError(t, err)
	assert.Equal(t, scalar.Color{R: 110, G: 27, B: 27}, c)
}
