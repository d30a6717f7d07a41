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

// Package writer serializes documents in the text or binary format, either
// from an explicit sequence of calls or by replaying a [tape.Tape].
//
// Both encodings are driven through the same [Writer] interface. An object's
// fields are written as a key followed by exactly one value. Values written
// inside an object without a preceding key are written bare, which is how the
// trailing arrays of mixed groups are reproduced.
package writer

import (
	"errors"

	"github.com/bufbuild/clausewitz/scalar"
	"github.com/bufbuild/clausewitz/token"
)

var (
	ErrUnbalanced   = errors.New("end does not match an open group")
	ErrKeyInArray   = errors.New("key written inside an array")
	ErrNoKey        = errors.New("operator written without a key")
	ErrMissingValue = errors.New("key is missing a value")
	ErrTooLong      = errors.New("string too long for the binary format")
	ErrAmbiguous    = errors.New("scalar followed by a group cannot begin a brace-less array")
)

// Writer emits a document.
//
// Writers buffer their output; Flush must be called once the document is
// complete.
type Writer interface {
	BeginObject() error
	EndObject() error
	BeginArray() error
	EndArray() error

	// WriteKey writes an object key. The value that follows is separated from
	// it by [token.Equal], unless WriteOperator selects another operator.
	WriteKey(name string) error
	// WriteKeyToken writes an object key given as a binary identifier token.
	// name is what the token resolved to, or empty if it is unknown.
	WriteKeyToken(id uint16, name string) error
	// WriteOperator sets the operator between the last key and its value.
	// [token.OpNone] writes the key and its value with nothing between them.
	WriteOperator(op token.Operator) error

	WriteScalar(s scalar.Scalar) error
	WriteUnquoted(s string) error
	WriteQuoted(s string) error
	WriteInt(v int64) error
	WriteUint(v uint64) error
	WriteFloat(v float64) error
	WriteBool(v bool) error
	WriteDate(d scalar.Date) error
	WriteRgb(c scalar.Color) error
	// WriteToken writes a binary identifier token as a value. name is as for
	// WriteKeyToken.
	WriteToken(id uint16, name string) error

	Flush() error
}

// nesting tracks the groups a writer is inside of, and whether a key is
// waiting for its value.
type nesting struct {
	frames []frame
	key    bool
	op     token.Operator
}

type frame struct {
	array bool
	count int // Keys and bare values written so far.
}

func newNesting() nesting {
	return nesting{frames: []frame{{}}}
}

func (n *nesting) top() *frame {
	return &n.frames[len(n.frames)-1]
}

// depth returns how many groups are open, not counting the root.
func (n *nesting) depth() int {
	return len(n.frames) - 1
}

func (n *nesting) beginKey() error {
	f := n.top()
	switch {
	case n.key:
		return ErrMissingValue
	case f.array:
		return ErrKeyInArray
	}
	n.key = true
	n.op = token.Equal
	return nil
}

// endKey records a key as written.
func (n *nesting) endKey() {
	n.top().count++
}

func (n *nesting) operator(op token.Operator) error {
	if !n.key {
		return ErrNoKey
	}
	n.op = op
	return nil
}

// value records that a value is about to be written. It returns whether the
// value belongs to a key, and if so, the operator to write first. Otherwise,
// it returns the frame the value is an element of, before counting it.
func (n *nesting) value() (keyed bool, op token.Operator, f frame) {
	if n.key {
		n.key = false
		return true, n.op, frame{}
	}

	top := n.top()
	if len(n.frames) == 1 && top.count == 0 {
		// A root whose first item is a bare value is an array.
		top.array = true
	}
	f = *top
	top.count++
	return false, 0, f
}

func (n *nesting) begin(array bool) {
	n.frames = append(n.frames, frame{array: array})
}

func (n *nesting) end(array bool) (frame, error) {
	f := *n.top()
	switch {
	case n.depth() == 0, f.array != array:
		return f, ErrUnbalanced
	case n.key:
		return f, ErrMissingValue
	}
	n.frames = n.frames[:len(n.frames)-1]
	return f, nil
}
