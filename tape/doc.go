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

// Package tape builds and reads tapes: flat, preorder representations of
// parsed documents.
//
// A tape is a sequence of [Entry] values. Objects and arrays are bracketed by
// a start and an end entry, each of which stores the index of the other, so
// that an entire subtree can be skipped in constant time. Object fields are
// stored as two consecutive entries, a key scalar followed by a value.
//
// The root of a document has no brackets: its entries are simply the
// top-level entries of the tape, and [Tape.RootKind] records whether they
// form an object or an array.
//
// Tapes are built by [ParseText] and [ParseBinary], which share a single
// iterative builder. Nesting depth is bounded only by memory, never by the
// call stack.
package tape

//go:generate go run github.com/bufbuild/clausewitz/internal/enum kind.yaml
