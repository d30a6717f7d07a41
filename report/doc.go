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

// Package report contains the error types produced while lexing and building
// tapes, and the plumbing for reporting them.
//
// Every hard failure is an [ErrorWithPos]: an error that knows the byte offset
// at which it was detected and which wraps one of the sentinel errors in this
// package, so that callers can use [errors.Is] to classify it.
package report

//go:generate go run github.com/bufbuild/clausewitz/internal/enum kind.yaml
