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

import "github.com/bufbuild/clausewitz/lexer"

// ParseText parses a text document.
//
// Text scalars are decoded according to opts.Encoding; the resolution mode
// and resolver are unused.
func ParseText(data []byte, opts Options) (*Tape, error) {
	return build(data, lexer.NewText(data, opts.Encoding), opts)
}

// ParseBinary parses a binary document.
//
// Identifier tokens are resolved with opts.Resolver. Those it does not know
// fail the parse in [Strict] mode, and are otherwise kept as opaque token
// scalars and reported as warnings.
func ParseBinary(data []byte, opts Options) (*Tape, error) {
	return build(data, lexer.NewBinary(data, opts.Flavor), opts)
}
