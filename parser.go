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

package clausewitz

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/clausewitz/tape"
)

// Parser loads and parses a batch of files in parallel.
type Parser struct {
	// Loads the files to be parsed. This field is the only required field.
	Loader Loader
	// The options to parse every file with. Its Reporter, if any, is shared
	// by every parse, and must be safe for concurrent use.
	Options Options
	// If true, each file's format is taken from its header, when it has one,
	// instead of from Options. The header is not part of the parsed data.
	DetectHeader bool

	// The maximum parallelism to use when parsing. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// The maximum number of input bytes held by parses in flight. A file larger
	// than this is parsed on its own. If unspecified or set to a non-positive
	// value, the total is not limited.
	MaxInflightBytes int64
}

// File is a parsed file.
type File struct {
	Path   string
	Format Format
	// The data the tape was parsed from, without any header.
	Data []byte
	Tape *tape.Tape
}

// FileError is an error loading or parsing a file.
type FileError struct {
	Path string
	Err  error
}

// Error implements [error].
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Parse loads and parses the given files, and returns them in the same
// order. A path that appears more than once is only parsed once.
//
// A failure does not cancel the other files, which run to completion. The
// first failure in argument order is returned as a [*FileError] wrapping the
// underlying error.
func (p *Parser) Parse(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	par := p.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	e := executor{
		p:       p,
		workers: semaphore.NewWeighted(int64(par)),
		results: map[string]*result{},
	}
	if p.MaxInflightBytes > 0 {
		e.bytes = semaphore.NewWeighted(p.MaxInflightBytes)
	}

	results := make([]*result, len(paths))
	for i, path := range paths {
		results[i] = e.parse(ctx, path)
	}

	files := make([]*File, len(paths))
	for i, r := range results {
		select {
		case <-r.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if r.err != nil {
			return nil, r.err
		}
		files[i] = r.res
	}

	return files, nil
}

type result struct {
	ready chan struct{}
	res   *File
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(f *File) {
	r.res = f
	close(r.ready)
}

type executor struct {
	p       *Parser
	workers *semaphore.Weighted
	bytes   *semaphore.Weighted // nil if unlimited.

	mu      sync.Mutex
	results map[string]*result
}

func (e *executor) parse(ctx context.Context, path string) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.results[path]
	if r != nil {
		return r
	}

	r = &result{
		ready: make(chan struct{}),
	}
	e.results[path] = r
	go func() {
		e.doParse(ctx, path, r)
	}()
	return r
}

func (e *executor) doParse(ctx context.Context, path string, r *result) {
	if err := e.workers.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer e.workers.Release(1)

	f, err := e.load(ctx, path)
	if err != nil {
		r.fail(err)
		return
	}
	r.complete(f)
}

func (e *executor) load(ctx context.Context, path string) (*File, error) {
	data, err := e.p.Loader.Load(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	if e.bytes != nil {
		weight := min(int64(len(data)), e.p.MaxInflightBytes)
		if err := e.bytes.Acquire(ctx, weight); err != nil {
			return nil, err
		}
		defer e.bytes.Release(weight)
	}

	opts := e.p.Options
	if e.p.DetectHeader {
		if format, body, ok := SplitHeader(data); ok {
			opts.Format = format
			data = body
		}
	}

	tp, err := Parse(data, opts)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return &File{Path: path, Format: opts.Format, Data: data, Tape: tp}, nil
}
