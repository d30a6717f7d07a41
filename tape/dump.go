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

package tape

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bufbuild/clausewitz/token"
)

// Dump writes a human-readable listing of this tape to w, one entry per line,
// indented by nesting depth.
//
// The format is intended for debugging and golden tests, and is not stable.
func (t *Tape) Dump(w io.Writer) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "root: %v\n", t.root)

	var depth int
	for i, e := range t.entries {
		if e.kind == ObjectEnd || e.kind == ArrayEnd {
			depth--
		}
		fmt.Fprintf(out, "%4d %s%v", i, strings.Repeat("  ", max(depth, 0)), e.kind)

		switch e.kind {
		case ObjectStart, ArrayStart:
			depth++
			fmt.Fprintf(out, " -> %d", e.match)
		case ObjectEnd, ArrayEnd:
			fmt.Fprintf(out, " <- %d", e.match)
		case Scalar:
			s := e.scalar
			fmt.Fprintf(out, " %v %s", s.Kind(), strconv.Quote(s.String()))
			if e.op != token.OpNone {
				fmt.Fprintf(out, " %v", e.op)
			}
			if e.trailer {
				out.WriteString(" (trailer)")
			}
		}
		out.WriteByte('\n')
	}

	return out.Flush()
}
