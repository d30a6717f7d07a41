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
	"errors"

	"github.com/bufbuild/clausewitz/lexer"
	"github.com/bufbuild/clausewitz/report"
	"github.com/bufbuild/clausewitz/scalar"
	"github.com/bufbuild/clausewitz/token"
)

// state is what a group expects next.
type state int8

const (
	stUndecided state = iota // Nothing seen yet; could be an object or array.
	stFirst                  // One scalar seen; an operator makes it a key.
	stKey                    // Object, expecting a key or the end.
	stOperator               // Object, expecting an operator or a group.
	stValue                  // Object, expecting a value.
	stArray                  // Array, expecting an element or the end.
	stEmpty                  // A group in key position, which must be empty.
	stColor                  // Inside the braces of rgb { r g b }.
)

// frame is an open group.
type frame struct {
	// Index of the group's start entry. For stColor, the index of the rgb
	// keyword that the color will replace. Unused for the root and stEmpty.
	start int
	state state

	// A hidden object or a trailing array. These have no braces of their own,
	// and are closed by the brace that closes their parent.
	synthetic bool

	// Color components seen, for stColor.
	count int
}

// builder turns lexical items into a tape. It keeps an explicit stack of
// open groups rather than recursing.
type builder struct {
	data    []byte
	opts    Options
	handler *report.Handler

	entries []Entry
	frames  []frame
	root    Kind

	// Index of the last scalar if it was the rgb keyword, else -1.
	rgb int
}

func build(data []byte, l lexer.Lexer, opts Options) (*Tape, error) {
	b := &builder{
		data:    data,
		opts:    opts,
		handler: report.NewHandler(opts.Reporter),
		frames:  []frame{{state: stUndecided}},
		root:    ObjectStart,
		rgb:     -1,
	}

	for {
		item, err := l.Next()
		if err != nil {
			var ewp report.ErrorWithPos
			if errors.As(err, &ewp) {
				return nil, b.handler.HandleError(ewp)
			}
			return nil, err
		}

		if item.Kind == token.EOF {
			if err := b.eof(item); err != nil {
				return nil, err
			}
			return &Tape{data: data, entries: b.entries, root: b.root}, nil
		}

		if err := b.item(item); err != nil {
			return nil, err
		}
	}
}

func (b *builder) item(item token.Item) error {
	switch item.Kind {
	case token.Open:
		return b.open(item)
	case token.Close:
		return b.close(item)
	case token.Op:
		return b.operator(item)
	}

	s, err := b.resolve(item)
	if err != nil {
		return err
	}
	return b.value(item, s)
}

func (b *builder) top() *frame {
	return &b.frames[len(b.frames)-1]
}

func (b *builder) atRoot() bool {
	return len(b.frames) == 1
}

func (b *builder) fail(offset int, err error) error {
	return b.handler.HandleErrorf(report.StructureError, offset, "%w", err)
}

// decide fixes whether the group f is an object or an array.
func (b *builder) decide(f *frame, kind Kind) {
	if f == &b.frames[0] {
		b.root = kind
		return
	}
	b.entries[f.start].kind = kind
}

// resolve returns the scalar an item stands for, resolving binary identifier
// tokens.
func (b *builder) resolve(item token.Item) (scalar.Scalar, error) {
	if item.Kind != token.ID {
		return item.Scalar, nil
	}

	if b.opts.Resolver != nil {
		if name, ok := b.opts.Resolver.Resolve(item.ID); ok {
			return scalar.NewResolvedToken(item.Scalar.Bytes(), name), nil
		}
	}

	err := report.Error(report.UnresolvedToken, item.Offset, report.UnresolvedTokenError{ID: item.ID})
	if b.opts.Mode == Strict && b.opts.Resolver != nil {
		return scalar.Scalar{}, b.handler.HandleError(err)
	}
	b.handler.HandleWarning(err)
	return item.Scalar, nil
}

func (b *builder) appendScalar(item token.Item, s scalar.Scalar) {
	b.rgb = -1
	if item.Kind == token.Unquoted && string(s.Bytes()) == "rgb" {
		b.rgb = len(b.entries)
	}
	b.entries = append(b.entries, Entry{kind: Scalar, scalar: s, offset: item.Offset, match: -1})
}

// atColor returns whether an open brace here begins the components of a
// color: the previous entry is an rgb keyword in value position.
func (b *builder) atColor() bool {
	return b.rgb >= 0 && b.rgb == len(b.entries)-1
}

func (b *builder) value(item token.Item, s scalar.Scalar) error {
	f := b.top()
	switch f.state {
	case stUndecided:
		f.state = stFirst
	case stFirst:
		b.decide(f, ArrayStart)
		f.state = stArray
	case stArray:
	case stKey:
		f.state = stOperator
		b.appendScalar(item, s)
		b.rgb = -1 // Keys are never colors.
		return nil
	case stOperator:
		b.trailer()
	case stValue:
		f.state = stKey
	case stEmpty:
		return b.fail(item.Offset, report.ErrUnexpectedGroup)
	case stColor:
		if item.Kind != token.Unquoted || f.count == 3 {
			return b.fail(item.Offset, report.ErrInvalidColor)
		}
		f.count++
		return nil
	}

	b.appendScalar(item, s)
	return nil
}

func (b *builder) operator(item token.Item) error {
	f := b.top()
	last := len(b.entries) - 1
	switch f.state {
	case stFirst:
		b.decide(f, ObjectStart)
		fallthrough
	case stOperator:
		b.entries[last].op = item.Op
		f.state = stValue
		b.rgb = -1
		return nil

	case stArray:
		if last < 0 || b.entries[last].kind != Scalar {
			break
		}

		// A key-value pair inside an array begins a hidden object, which runs
		// to the end of the array.
		key := b.entries[last]
		key.op = item.Op
		b.entries[last] = Entry{kind: ObjectStart, offset: key.offset}
		b.entries = append(b.entries, key)
		b.frames = append(b.frames, frame{start: last, state: stValue, synthetic: true})
		b.rgb = -1
		return nil

	case stEmpty:
		return b.fail(item.Offset, report.ErrUnexpectedGroup)
	case stColor:
		return b.fail(item.Offset, report.ErrInvalidColor)
	}

	return b.fail(item.Offset, report.ErrUnexpectedOperator)
}

// trailer turns the pending key of an object into the first element of an
// array that runs to the end of the object, stored under a synthetic empty
// key.
func (b *builder) trailer() {
	b.top().state = stKey

	last := len(b.entries) - 1
	first := b.entries[last]
	first.op = token.OpNone

	b.entries[last] = Entry{
		kind:    Scalar,
		scalar:  scalar.NewUnquoted(b.data[first.offset:first.offset], b.opts.Encoding),
		offset:  first.offset,
		match:   -1,
		trailer: true,
	}
	b.entries = append(b.entries, Entry{kind: ArrayStart, offset: first.offset}, first)
	b.frames = append(b.frames, frame{start: last + 1, state: stArray, synthetic: true})
	b.rgb = -1
}

func (b *builder) open(item token.Item) error {
	f := b.top()
	switch f.state {
	case stUndecided:
		b.decide(f, ArrayStart)
		f.state = stArray
	case stFirst:
		if b.atRoot() {
			// At the top level, foo{...} is a key without an operator.
			b.decide(f, ObjectStart)
			f.state = stKey
			break
		}
		b.decide(f, ArrayStart)
		f.state = stArray
	case stKey:
		if b.atColor() {
			return b.beginColor()
		}
		b.frames = append(b.frames, frame{state: stEmpty})
		return nil
	case stOperator, stValue:
		f.state = stKey
	case stArray:
	case stEmpty:
		return b.fail(item.Offset, report.ErrUnexpectedGroup)
	case stColor:
		return b.fail(item.Offset, report.ErrInvalidColor)
	}

	b.rgb = -1
	b.frames = append(b.frames, frame{start: len(b.entries), state: stUndecided})
	b.entries = append(b.entries, Entry{kind: ObjectStart, offset: item.Offset})
	return nil
}

func (b *builder) beginColor() error {
	b.frames = append(b.frames, frame{start: b.rgb, state: stColor})
	b.rgb = -1
	return nil
}

func (b *builder) endColor(item token.Item) error {
	f := b.top()
	if f.count != 3 {
		return b.fail(item.Offset, report.ErrInvalidColor)
	}

	e := &b.entries[f.start]
	color := scalar.NewColor(b.data[e.offset:item.End])
	if _, err := color.Rgb(); err != nil {
		return b.fail(e.offset, report.ErrInvalidColor)
	}
	e.scalar = color
	b.frames = b.frames[:len(b.frames)-1]
	return nil
}

func (b *builder) close(item token.Item) error {
	for {
		f := b.top()
		switch f.state {
		case stEmpty:
			b.frames = b.frames[:len(b.frames)-1]
			return nil
		case stColor:
			return b.endColor(item)
		case stValue:
			return b.fail(item.Offset, report.ErrMissingValue)
		case stOperator:
			b.trailer()
			continue
		}

		if b.atRoot() {
			return b.fail(item.Offset, report.ErrUnmatchedClose)
		}

		synthetic := f.synthetic
		b.endGroup(item.Offset)
		if !synthetic {
			return nil
		}
	}
}

func (b *builder) eof(item token.Item) error {
	for {
		f := b.top()
		switch f.state {
		case stValue:
			return b.fail(item.Offset, report.ErrMissingValue)
		case stOperator:
			b.trailer()
			continue
		case stEmpty, stColor:
			return b.fail(item.Offset, report.ErrUnclosedGroup)
		}

		if b.atRoot() {
			if f.state == stFirst {
				b.decide(f, ArrayStart)
			}
			return nil
		}
		if !f.synthetic {
			return b.fail(item.Offset, report.ErrUnclosedGroup)
		}
		b.endGroup(item.Offset)
	}
}

// endGroup pops the top frame and appends its end entry.
func (b *builder) endGroup(offset int) {
	f := b.frames[len(b.frames)-1]
	b.frames = b.frames[:len(b.frames)-1]

	if f.state == stFirst {
		// A single scalar with no operator.
		b.entries[f.start].kind = ArrayStart
	}

	start := &b.entries[f.start]
	end := ObjectEnd
	if start.kind == ArrayStart {
		end = ArrayEnd
	}
	start.match = len(b.entries)
	b.entries = append(b.entries, Entry{kind: end, offset: offset, match: f.start})
	b.rgb = -1
}
