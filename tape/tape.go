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
	"iter"

	"github.com/bufbuild/clausewitz/scalar"
	"github.com/bufbuild/clausewitz/token"
)

// Tape is a parsed document. A Tape is immutable and safe for concurrent use.
//
// A Tape borrows from the buffer it was parsed from, which must not be
// mutated while the Tape is in use.
type Tape struct {
	data    []byte
	entries []Entry
	root    Kind
}

// Entry is one node of a [Tape].
type Entry struct {
	scalar  scalar.Scalar
	offset  int
	match   int
	kind    Kind
	op      token.Operator
	trailer bool
}

// Kind returns the kind of this entry.
func (e Entry) Kind() Kind {
	return e.kind
}

// Scalar returns the value of a [Scalar] entry.
func (e Entry) Scalar() scalar.Scalar {
	return e.scalar
}

// Match returns the index of the matching entry of a start or end entry: a
// start entry's matching end, or an end entry's matching start. Returns -1
// for scalars.
func (e Entry) Match() int {
	if e.kind == Scalar {
		return -1
	}
	return e.match
}

// Op returns the operator that follows an object key. It is [token.OpNone]
// for entries that are not keys, and for keys written without an operator.
func (e Entry) Op() token.Operator {
	return e.op
}

// Trailer returns whether this entry is the synthetic, empty key of an
// object's trailing array.
func (e Entry) Trailer() bool {
	return e.trailer
}

// Offset returns the byte offset in the input of the item this entry was
// built from.
func (e Entry) Offset() int {
	return e.offset
}

// Data returns the buffer this tape was parsed from.
func (t *Tape) Data() []byte {
	return t.data
}

// Len returns the number of entries in this tape.
func (t *Tape) Len() int {
	return len(t.entries)
}

// At returns the entry at index i.
//
// Panics if i is out of bounds.
func (t *Tape) At(i int) Entry {
	return t.entries[i]
}

// Entries returns an iterator over the entries of this tape and their indices.
func (t *Tape) Entries() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range t.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Skip returns the index just past the subtree rooted at i: for a start
// entry, the index after its matching end; for anything else, i+1.
//
// Skip is O(1) regardless of the size of the subtree.
func (t *Tape) Skip(i int) int {
	switch e := t.entries[i]; e.kind {
	case ObjectStart, ArrayStart:
		return e.match + 1
	default:
		return i + 1
	}
}

// RootKind returns whether the top level of the document is an object or an
// array: either [ObjectStart] or [ArrayStart].
func (t *Tape) RootKind() Kind {
	return t.root
}
