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

package writer

import (
	"fmt"

	"github.com/bufbuild/clausewitz/scalar"
	"github.com/bufbuild/clausewitz/tape"
)

// WriteTape replays a tape into w and flushes it.
//
// The trailing array of a mixed group is written as bare values after the
// group's fields, without its synthetic key, so that it parses back into the
// same shape.
//
// Brace-less arrays (a root array or a trailer) whose first two elements are
// a scalar and a group would read back as a key with no operator, so they
// fail with [ErrAmbiguous].
func WriteTape(w Writer, t *tape.Tape) error {
	type group struct {
		object  bool
		trailer bool
		wantKey bool

		// Set for arrays written without braces.
		bare        bool
		elems       int
		scalarFirst bool
	}
	root := t.RootKind() == tape.ObjectStart
	stack := []group{{object: root, wantKey: true, bare: !root}}

	for i := 0; i < t.Len(); i++ {
		e := t.At(i)
		top := &stack[len(stack)-1]

		switch e.Kind() {
		case tape.ObjectEnd, tape.ArrayEnd:
			stack = stack[:len(stack)-1]
			stack[len(stack)-1].wantKey = true
			if top.trailer {
				continue
			}
			var err error
			if e.Kind() == tape.ObjectEnd {
				err = w.EndObject()
			} else {
				err = w.EndArray()
			}
			if err != nil {
				return err
			}
			continue
		}

		if top.object && top.wantKey {
			top.wantKey = false
			if e.Trailer() {
				// Skip the trailer's ArrayStart; its elements go straight into
				// the object.
				stack = append(stack, group{trailer: true, bare: true})
				i++
				continue
			}
			if err := writeKey(w, e.Scalar()); err != nil {
				return err
			}
			if err := w.WriteOperator(e.Op()); err != nil {
				return err
			}
			continue
		}

		if top.bare {
			if top.elems == 1 && top.scalarFirst && e.Kind() != tape.Scalar {
				return fmt.Errorf("%w: entry %d", ErrAmbiguous, i)
			}
			if top.elems == 0 {
				top.scalarFirst = e.Kind() == tape.Scalar
			}
			top.elems++
		}

		var err error
		switch e.Kind() {
		case tape.ObjectStart:
			err = w.BeginObject()
			stack = append(stack, group{object: true, wantKey: true})
		case tape.ArrayStart:
			err = w.BeginArray()
			stack = append(stack, group{})
		case tape.Scalar:
			err = w.WriteScalar(e.Scalar())
			top.wantKey = true
		}
		if err != nil {
			return err
		}
	}

	return w.Flush()
}

func writeKey(w Writer, key scalar.Scalar) error {
	if key.Kind() == scalar.Token {
		id, _ := key.ID()
		name, _ := key.Str()
		return w.WriteKeyToken(id, name)
	}
	name, err := key.Str()
	if err != nil {
		name = key.String()
	}
	return w.WriteKey(name)
}
