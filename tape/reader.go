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

// Value is a position in a tape that holds a value: a scalar, or the start of
// an object or array.
type Value struct {
	tape  *Tape
	index int
}

// Index returns this value's index in its tape.
func (v Value) Index() int {
	return v.index
}

// Kind returns [Scalar], [ObjectStart], or [ArrayStart].
func (v Value) Kind() Kind {
	return v.tape.entries[v.index].kind
}

// Scalar returns this value as a scalar, if it is one.
func (v Value) Scalar() (scalar.Scalar, bool) {
	e := v.tape.entries[v.index]
	return e.scalar, e.kind == Scalar
}

// Object returns this value as an object, if it is one.
func (v Value) Object() (Object, bool) {
	e := v.tape.entries[v.index]
	if e.kind != ObjectStart {
		return Object{}, false
	}
	return Object{tape: v.tape, start: v.index, end: e.match}, true
}

// Array returns this value as an array, if it is one.
func (v Value) Array() (Array, bool) {
	e := v.tape.entries[v.index]
	if e.kind != ArrayStart {
		return Array{}, false
	}
	return Array{tape: v.tape, start: v.index, end: e.match}, true
}

// Field is a key-value pair in an [Object].
type Field struct {
	Key   scalar.Scalar
	Op    token.Operator
	Value Value

	// Set for the synthetic key of an array of values that trail an
	// object's fields, as in { a=1 2 3 }. Key is empty.
	Trailer bool
}

// Object is a view of an object in a tape. The root object of a tape has no
// start or end entry.
type Object struct {
	tape       *Tape
	start, end int // Exclusive bounds of the fields.
}

// RootObject returns the top level of the tape, if it is an object.
func (t *Tape) RootObject() (Object, bool) {
	if t.root != ObjectStart {
		return Object{}, false
	}
	return Object{tape: t, start: -1, end: len(t.entries)}, true
}

// Fields returns an iterator over the fields of this object, in order.
// Duplicate keys are yielded once per occurrence.
func (o Object) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for i := o.start + 1; i < o.end; {
			key := o.tape.entries[i]
			field := Field{
				Key:     key.scalar,
				Op:      key.op,
				Value:   Value{tape: o.tape, index: i + 1},
				Trailer: key.trailer,
			}
			if !yield(field) {
				return
			}
			i = o.tape.Skip(i + 1)
		}
	}
}

// Len returns the number of fields in this object.
//
// This is linear in the number of fields, but does not visit their
// contents.
func (o Object) Len() int {
	var n int
	for i := o.start + 1; i < o.end; i = o.tape.Skip(i + 1) {
		n++
	}
	return n
}

// Get returns the value of the first field with the given key.
//
// This is a linear scan; callers that look up many keys should build their
// own index with [Object.Fields].
func (o Object) Get(key string) (Value, bool) {
	for field := range o.Fields() {
		if field.Trailer {
			continue
		}
		if k, err := field.Key.Str(); err == nil && k == key {
			return field.Value, true
		}
	}
	return Value{}, false
}

// Span returns the indices of this object's start and end entries. For the
// root object, these are -1 and the length of the tape.
func (o Object) Span() (start, end int) {
	return o.start, o.end
}

// Array is a view of an array in a tape.
type Array struct {
	tape       *Tape
	start, end int // Exclusive bounds of the elements.
}

// RootArray returns the top level of the tape, if it is an array.
func (t *Tape) RootArray() (Array, bool) {
	if t.root != ArrayStart {
		return Array{}, false
	}
	return Array{tape: t, start: -1, end: len(t.entries)}, true
}

// Values returns an iterator over the elements of this array.
func (a Array) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for i := a.start + 1; i < a.end; i = a.tape.Skip(i) {
			if !yield(Value{tape: a.tape, index: i}) {
				return
			}
		}
	}
}

// Len returns the number of elements in this array.
func (a Array) Len() int {
	var n int
	for i := a.start + 1; i < a.end; i = a.tape.Skip(i) {
		n++
	}
	return n
}

// Span returns the indices of this array's start and end entries. For the
// root array, these are -1 and the length of the tape.
func (a Array) Span() (start, end int) {
	return a.start, a.end
}
