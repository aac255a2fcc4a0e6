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

package synparse

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/synparse/synparse/ast"
	"github.com/synparse/synparse/report"
	"github.com/synparse/synparse/source"
)

// Parser parses many files into syntax trees, in parallel.
//
// Each file is parsed independently of the others. A syntax error in one
// file does not stop the rest from being parsed.
type Parser struct {
	// Loads the files to parse. This field is required.
	Opener source.Opener
	// The maximum number of files to parse at once. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// Receives debug logs for each file and warnings for each failure. If
	// nil, nothing is logged.
	Logger *zap.Logger
}

// Result is the outcome of parsing one file.
type Result struct {
	Path string
	// Nil if the file could not be opened.
	Source *source.File
	// Nil if Err is not.
	File *ast.File
	// Either a *[report.Error] for a lexical or syntax error, or an error
	// from opening the file.
	Err error
}

// Parse parses the files at the given paths. It returns one result per path,
// in the same order, along with a report holding a diagnostic for every
// failure.
//
// The returned error is non-nil only if ctx expires before all files are
// parsed; failures to open or parse a file are reported through the results
// and the report instead.
func (p *Parser) Parse(ctx context.Context, paths ...string) ([]Result, *report.Report, error) {
	rep := new(report.Report)
	if len(paths) == 0 {
		return nil, rep, nil
	}
	if p.Opener == nil {
		return nil, rep, errors.New("synparse: Parser.Opener is required")
	}

	par := p.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}
	e := executor{
		p:   p,
		log: p.logger(),
		s:   semaphore.NewWeighted(int64(par)),
	}

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := e.s.Acquire(ctx, 1); err != nil {
				return err
			}
			defer e.s.Release(1)
			results[i] = e.parse(path)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, rep, err
	}

	for _, r := range results {
		var syntax *report.Error
		switch {
		case r.Err == nil:
		case errors.As(r.Err, &syntax):
			for _, err := range syntax.Errors() {
				rep.Error(err)
			}
		default:
			rep.Error(&report.ErrInFile{Err: r.Err, Path: r.Path})
		}
	}
	rep.Sort()
	return results, rep, nil
}

func (p *Parser) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

type executor struct {
	p   *Parser
	log *zap.Logger
	s   *semaphore.Weighted
}

func (e *executor) parse(path string) Result {
	log := e.log.With(zap.String("path", path))
	log.Debug("parsing file")
	start := time.Now()

	r := Result{Path: path}
	file, err := e.p.Opener.Open(path)
	if err != nil {
		r.Err = fmt.Errorf("could not open %q: %w", path, err)
		log.Warn("open failed", zap.Error(err))
		return r
	}
	r.Source = file

	r.File, r.Err = ParseFile(file, ast.ParseFile)
	if r.Err != nil {
		r.File = nil
		log.Warn("parse failed", zap.Error(r.Err))
		return r
	}
	log.Debug("parsed file",
		zap.Int("items", len(r.File.Items)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return r
}
