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

package fuzztesting

import (
	"bytes"
	"fmt"
	"math/rand/v2"
)

// Document is a randomly generated, well-formed text document, along with
// the number of groups it contains.
type Document struct {
	Text   []byte
	Groups int
}

// Generator produces random documents from a seeded source, so that failures
// are reproducible.
type Generator struct {
	rand     *rand.Rand
	MaxDepth int
	MaxWidth int
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		MaxDepth: 8,
		MaxWidth: 5,
	}
}

// Document generates a document whose root is an object.
func (g *Generator) Document() Document {
	var doc Document
	var buf bytes.Buffer
	g.object(&buf, &doc, 0)
	doc.Text = buf.Bytes()
	return doc
}

func (g *Generator) object(buf *bytes.Buffer, doc *Document, depth int) {
	for i := range g.rand.IntN(g.MaxWidth + 1) {
		fmt.Fprintf(buf, "k%d=", i)
		g.value(buf, doc, depth)
		buf.WriteByte(' ')
	}
}

func (g *Generator) array(buf *bytes.Buffer, doc *Document, depth int) {
	// Arrays hold at least one element; an empty group is an object.
	for range 1 + g.rand.IntN(g.MaxWidth) {
		g.value(buf, doc, depth)
		buf.WriteByte(' ')
	}
}

func (g *Generator) value(buf *bytes.Buffer, doc *Document, depth int) {
	if depth >= g.MaxDepth {
		g.scalar(buf)
		return
	}

	switch g.rand.IntN(3) {
	case 0:
		g.scalar(buf)
	case 1:
		doc.Groups++
		buf.WriteByte('{')
		g.object(buf, doc, depth+1)
		buf.WriteByte('}')
	case 2:
		doc.Groups++
		buf.WriteByte('{')
		g.array(buf, doc, depth+1)
		buf.WriteByte('}')
	}
}

func (g *Generator) scalar(buf *bytes.Buffer) {
	switch g.rand.IntN(4) {
	case 0:
		fmt.Fprintf(buf, "%d", g.rand.Int32()-1<<30)
	case 1:
		fmt.Fprintf(buf, "%d.%03d", g.rand.IntN(1000), g.rand.IntN(1000))
	case 2:
		fmt.Fprintf(buf, `"s\"%d"`, g.rand.IntN(100))
	case 3:
		buf.WriteString([]string{"yes", "no", "1444.11.11", "ENG"}[g.rand.IntN(4)])
	}
}

// Mutate returns a copy of data with a few random bytes overwritten, inserted,
// or removed, and possibly truncated. alphabet biases the bytes written; if
// it is empty, any byte may be written.
func (g *Generator) Mutate(data []byte, alphabet []byte) []byte {
	out := bytes.Clone(data)
	pick := func() byte {
		if len(alphabet) == 0 {
			return byte(g.rand.UintN(256))
		}
		return alphabet[g.rand.IntN(len(alphabet))]
	}

	for range 1 + g.rand.IntN(4) {
		if len(out) == 0 {
			out = append(out, pick())
			continue
		}
		i := g.rand.IntN(len(out))
		switch g.rand.IntN(4) {
		case 0:
			out[i] = pick()
		case 1:
			out = append(out[:i], append([]byte{pick()}, out[i:]...)...)
		case 2:
			out = append(out[:i], out[i+1:]...)
		case 3:
			out = out[:i]
		}
	}
	return out
}

// Bytes returns n random bytes.
func (g *Generator) Bytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(g.rand.UintN(256))
	}
	return out
}
