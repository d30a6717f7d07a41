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

package report

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, that error is what the parse returns. If it returns
// nil, the original error is returned anyway: a parse never continues past a
// hard error.
type ErrorReporter func(ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. Warnings
// indicate a recovery, such as keeping an unresolved binary token as an opaque
// id in lenient mode; they never stop a parse.
type WarningReporter func(ErrorWithPos)

// Reporter is the sink for everything a parse wants to tell its caller.
type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

// NewReporter creates a new reporter that invokes the given functions on
// error or warning. Either may be nil.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	if res := r.errs(err); res != nil {
		return res
	}
	return err
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler is used by a single parse to route its errors and warnings to a
// [Reporter]. The first error handled is final.
//
// A Handler is not safe for concurrent use; the Reporter it wraps may be, if
// the caller shares one between parses.
type Handler struct {
	reporter Reporter
	err      error
	warnings int
}

// NewHandler creates a new Handler. A nil reporter returns errors as-is and
// drops warnings.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleError reports err, records it, and returns the error that the parse
// should return. Once an error has been handled, later calls return the first
// error without reporting again.
func (h *Handler) HandleError(err ErrorWithPos) error {
	if h.err != nil {
		return h.err
	}
	h.err = h.reporter.Error(err)
	return h.err
}

// HandleErrorf is a shorthand for HandleError(Errorf(...)).
func (h *Handler) HandleErrorf(kind ErrorKind, offset int, format string, args ...any) error {
	return h.HandleError(Errorf(kind, offset, format, args...))
}

// HandleWarning reports a warning.
func (h *Handler) HandleWarning(err ErrorWithPos) {
	h.warnings++
	h.reporter.Warning(err)
}

// Error returns the error handled so far, if any.
func (h *Handler) Error() error {
	return h.err
}

// Warnings returns how many warnings have been reported.
func (h *Handler) Warnings() int {
	return h.warnings
}
