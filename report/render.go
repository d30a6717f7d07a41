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

package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bufbuild/clausewitz/source"
)

// TabstopWidth is the width tabs are expanded to when rendering a source line.
const TabstopWidth = 4

// Level is the severity a rendered diagnostic is labeled with.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Render writes a human-readable diagnostic for err to w.
//
// If err is an [ErrorWithPos] and file is a text file, the output contains the
// path, line and column, the offending line, and a caret under the offending
// column. Binary files are described by offset only. Other errors are printed
// with just the path.
func Render(w io.Writer, file *source.File, level Level, err error) error {
	var ewp ErrorWithPos
	if !errors.As(err, &ewp) {
		_, werr := fmt.Fprintf(w, "%s: %s: %v\n", file.Path(), level, err)
		return werr
	}

	msg := ewp.Unwrap()
	if !file.IsText() {
		_, werr := fmt.Fprintf(w, "%s: offset %#x: %s[%v]: %v\n", file.Path(), ewp.Offset(), level, ewp.Kind(), msg)
		return werr
	}

	loc := file.Location(ewp.Offset())
	line := string(file.Line(loc.Line))
	start, _ := file.LineOffsets(loc.Line)
	prefix := line[:min(loc.Offset-start, len(line))]

	gutter := fmt.Sprint(loc.Line)
	margin := strings.Repeat(" ", len(gutter))

	var out strings.Builder
	fmt.Fprintf(&out, "%s:%v: %s[%v]: %v\n", file.Path(), loc, level, ewp.Kind(), msg)
	fmt.Fprintf(&out, "%s | %s\n", gutter, expandTabs(line))
	fmt.Fprintf(&out, "%s | %s^\n", margin, strings.Repeat(" ", Width(prefix)))

	_, werr := io.WriteString(w, out.String())
	return werr
}

// Width returns the width of text in terminal cells, with tabs expanded to
// [TabstopWidth].
func Width(text string) int {
	var column int
	for i, chunk := range strings.Split(text, "\t") {
		if i > 0 {
			column += TabstopWidth - column%TabstopWidth
		}
		column += uniseg.StringWidth(chunk)
	}
	return column
}

func expandTabs(text string) string {
	if !strings.Contains(text, "\t") {
		return text
	}

	var out strings.Builder
	var column int
	for i, chunk := range strings.Split(text, "\t") {
		if i > 0 {
			tab := TabstopWidth - column%TabstopWidth
			out.WriteString(strings.Repeat(" ", tab))
			column += tab
		}
		out.WriteString(chunk)
		column += uniseg.StringWidth(chunk)
	}
	return out.String()
}
