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

// Package lexer contains the text and binary lexers.
//
// Both are pull-based: each call to Next scans exactly one item from the
// input buffer, and no item requires lookahead past its own terminator.
// Neither lexer copies the input; scalars in the returned items view it
// directly.
package lexer

import (
	"iter"

	"github.com/bufbuild/clausewitz/token"
)

// Lexer is a source of lexical items.
//
// Once Next returns an item of kind [token.EOF], it keeps doing so. Once it
// returns an error, it keeps returning that error.
type Lexer interface {
	Next() (token.Item, error)
}

var (
	_ Lexer = (*Text)(nil)
	_ Lexer = (*Binary)(nil)
)

// All returns an iterator over the items of a lexer, up to but excluding the
// end of input. If lexing fails, the error is yielded with a zero item and
// iteration stops.
func All(l Lexer) iter.Seq2[token.Item, error] {
	return func(yield func(token.Item, error) bool) {
		for {
			item, err := l.Next()
			if err != nil {
				yield(token.Item{}, err)
				return
			}
			if item.Kind == token.EOF || !yield(item, nil) {
				return
			}
		}
	}
}
