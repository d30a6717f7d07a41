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

// Package clausewitz parses documents in the Clausewitz format family: the
// configuration and save files of Paradox games, in both their text and
// binary encodings.
//
// Parsing produces a [tape.Tape], a flat array of entries in which every
// object and array is bracketed by a start and an end entry that point at
// each other. Scalars on the tape are views of the input buffer, and are only
// decoded when asked for. The stages of a parse are exposed as packages of
// their own:
//  1. Lexing into a stream of items.
//     Also see: lexer.NewText, lexer.NewBinary
//  2. Building a tape from the items.
//     Also see: tape.ParseText, tape.ParseBinary
//  3. Reading the tape.
//     Also see: tape.Tape.RootObject, scalar.Scalar
//  4. Writing it back out, in either encoding.
//     Also see: writer.WriteTape
//
// This package provides [Parse], which selects the right front end for a
// [Format], and a [Parser] that loads and parses many files at once, in
// parallel.
//
// # Binary tokens
//
// Binary documents refer to most names by a two-byte token. The mapping is
// not part of the document, and must be supplied to the parse as a
// [tape.Resolver], such as a [tokens.Table]. Tokens the resolver does not
// know either fail the parse or are kept as opaque ids, depending on the
// [tape.Mode].
package clausewitz
