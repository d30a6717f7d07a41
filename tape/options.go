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
	"github.com/bufbuild/clausewitz/report"
	"github.com/bufbuild/clausewitz/scalar"
)

// Mode controls what the binary builder does with identifier tokens that its
// [Resolver] does not know.
type Mode int8

const (
	// Lenient keeps unresolved tokens as opaque [scalar.Token] scalars and
	// reports a warning.
	Lenient Mode = iota

	// Strict fails the parse with an [report.UnresolvedToken] error.
	Strict
)

// Options configures a parse. The zero value parses UTF-8 text and EU4
// binary leniently.
type Options struct {
	// Mode is the resolution mode for binary identifier tokens. Without a
	// Resolver, parses are always lenient.
	Mode Mode

	// Resolver maps binary identifier tokens to names. It is not used for
	// text.
	Resolver Resolver

	// Encoding is the encoding of text input. Binary strings are decoded
	// according to Flavor instead.
	Encoding scalar.Encoding

	// Flavor selects how binary numbers and strings are decoded.
	Flavor scalar.Flavor

	// Reporter receives the parse's error and any warnings. May be nil.
	Reporter report.Reporter
}

// Resolver maps binary identifier tokens to names.
//
// Implementations must be safe for concurrent use if they are shared between
// parses running in parallel.
type Resolver interface {
	Resolve(id uint16) (name string, ok bool)
}

// ResolverFunc adapts a function into a [Resolver].
type ResolverFunc func(id uint16) (string, bool)

// Resolve implements [Resolver].
func (f ResolverFunc) Resolve(id uint16) (string, bool) {
	return f(id)
}

// MapResolver is a [Resolver] backed by a map.
type MapResolver map[uint16]string

// Resolve implements [Resolver].
func (m MapResolver) Resolve(id uint16) (string, bool) {
	name, ok := m[id]
	return name, ok
}
