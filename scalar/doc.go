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

// Package scalar provides [Scalar], a zero-copy view of a leaf value in a
// text or binary save buffer, with typed conversions computed on demand.
//
// A Scalar never copies the bytes it is constructed from. The only scalars
// that own memory are ones whose textual form needs to be materialized: quoted
// strings containing escapes, Windows-1252 text containing non-ASCII bytes,
// and binary identifier tokens that were resolved to a name. Those decode at
// most once, on first request, and the result is shared by every copy of the
// Scalar.
package scalar

//go:generate go run github.com/bufbuild/clausewitz/internal/enum kind.yaml
