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

package report_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/clausewitz/report"
	"github.com/bufbuild/clausewitz/source"
)

func TestErrorWithPos(t *testing.T) {
	t.Parallel()

	err := report.Errorf(report.StructureError, 6, "%w", report.ErrUnmatchedClose)
	assert.Equal(t, "offset 6: unmatched closing brace", err.Error())
	assert.Equal(t, 6, err.Offset())
	assert.Equal(t, report.StructureError, err.Kind())
	assert.ErrorIs(t, err, report.ErrUnmatchedClose)

	var ewp report.ErrorWithPos
	require.ErrorAs(t, error(err), &ewp)

	unresolved := report.Error(report.UnresolvedToken, 2, report.UnresolvedTokenError{ID: 0xbeef})
	var tokErr report.UnresolvedTokenError
	require.ErrorAs(t, unresolved, &tokErr)
	assert.Equal(t, uint16(0xbeef), tokErr.ID)
	assert.Equal(t, "offset 2: unresolved token 0xbeef", unresolved.Error())

	// Ids are always four hex digits, as they are written in text.
	assert.Equal(t, "unresolved token 0x002a", report.UnresolvedTokenError{ID: 0x2a}.Error())
}

func TestHandler(t *testing.T) {
	t.Parallel()

	var warnings []report.ErrorWithPos
	replaced := errors.New("replaced")
	h := report.NewHandler(report.NewReporter(
		func(report.ErrorWithPos) error { return replaced },
		func(w report.ErrorWithPos) { warnings = append(warnings, w) },
	))

	h.HandleWarning(report.Error(report.UnresolvedToken, 0, report.UnresolvedTokenError{ID: 1}))
	assert.Equal(t, 1, h.Warnings())
	assert.Len(t, warnings, 1)
	require.NoError(t, h.Error())

	err := h.HandleErrorf(report.LexError, 3, "%w", report.ErrInvalidByte)
	require.ErrorIs(t, err, replaced)

	// The first error sticks.
	err = h.HandleErrorf(report.LexError, 9, "%w", report.ErrTruncated)
	require.ErrorIs(t, err, replaced)
	require.ErrorIs(t, h.Error(), replaced)
}

func TestHandlerNilReporter(t *testing.T) {
	t.Parallel()

	h := report.NewHandler(nil)
	h.HandleWarning(report.Error(report.UnresolvedToken, 0, report.UnresolvedTokenError{ID: 1}))
	err := h.HandleErrorf(report.LexError, 3, "%w", report.ErrInvalidByte)
	assert.ErrorIs(t, err, report.ErrInvalidByte)
}

func TestRender(t *testing.T) {
	t.Parallel()

	file := source.NewFile("save.txt", []byte("foo=bar\n\tname=\"Joe\n"))
	err := report.Errorf(report.LexError, 14, "%w", report.ErrUnterminatedQuote)

	var out strings.Builder
	require.NoError(t, report.Render(&out, file, report.LevelError, err))
	assert.Equal(t,
		"save.txt:2:7: error[LexError]: unterminated quoted string\n"+
			"2 |     name=\"Joe\n"+
			"  |          ^\n",
		out.String(),
	)
}

func TestRenderBinary(t *testing.T) {
	t.Parallel()

	file := source.NewFile("save.bin", []byte{0x03, 0x00, 0x0c, 0x00, 0x00, 0xff, 0xfe})
	err := report.Errorf(report.LexError, 2, "%w", report.ErrTruncated)

	var out strings.Builder
	require.NoError(t, report.Render(&out, file, report.LevelError, err))
	assert.Equal(t, "save.bin: offset 0x2: error[LexError]: truncated binary payload\n", out.String())
}

func TestWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, report.Width("abc"))
	assert.Equal(t, 4, report.Width("\t"))
	assert.Equal(t, 5, report.Width("ab\tc"))
	assert.Equal(t, 4, report.Width("日本"))
}
