// Copyright 2025 the jshound authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jshound

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Extractor coordinates fetch, extract and filter for a configured set of
// sources. Every source is scoped to its own host: URLs extracted from a
// source count as in scope only when they belong to that source's domain.
type Extractor struct {
	cfg      *Config
	fetcher  *Fetcher
	excludes []glob.Glob
	cache    *bodyCache
	log      zerolog.Logger
}

// NewExtractor validates cfg and builds an Extractor. The logger instance is
// owned by the caller; pass zerolog.Nop() to silence the library.
func NewExtractor(cfg *Config, logger zerolog.Logger) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fetcher, err := NewFetcher(cfg)
	if err != nil {
		return nil, err
	}
	excludes, err := CompileExcludes(cfg.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("compiling exclude pattern: %w", err)
	}
	return &Extractor{
		cfg:      cfg,
		fetcher:  fetcher,
		excludes: excludes,
		cache:    newBodyCache(),
		log:      logger,
	}, nil
}

// SetClient replaces the HTTP client used for fetching. Used by tests to
// install mock transports.
func (e *Extractor) SetClient(c *http.Client) {
	e.fetcher.SetClient(c)
}

// Run processes every configured source and returns one ExtractionResult per
// source. A failure on one source never aborts the others; only cancellation
// and an unreadable input list end the run early. With more than one source
// and more than one worker, sources are processed concurrently and results
// arrive in arbitrary completion order.
func (e *Extractor) Run(ctx context.Context) ([]ExtractionResult, error) {
	sources, err := e.sources()
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		e.log.Warn().Str("file", e.cfg.InputFile).Msg("source list is empty")
		return nil, nil
	}
	if len(sources) == 1 || e.cfg.Workers <= 1 {
		return e.runSequential(ctx, sources)
	}
	return e.runParallel(ctx, sources)
}

// sources builds the full source list: the single URL, or the trimmed
// non-blank lines of the input file. A missing or unreadable input file is
// fatal for the whole run.
func (e *Extractor) sources() ([]string, error) {
	if e.cfg.URL != "" {
		return []string{e.cfg.URL}, nil
	}
	data, err := os.ReadFile(e.cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("reading input list: %w", err)
	}
	var sources []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			sources = append(sources, line)
		}
	}
	return sources, nil
}

// pacer returns a limiter enforcing the configured inter-submission delay,
// or nil when pacing is disabled. The first submission is never delayed.
func (e *Extractor) pacer() *rate.Limiter {
	if e.cfg.Delay <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(e.cfg.Delay), 1)
}

func (e *Extractor) runSequential(ctx context.Context, sources []string) ([]ExtractionResult, error) {
	limiter := e.pacer()
	results := make([]ExtractionResult, 0, len(sources))
	for _, source := range sources {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		results = append(results, e.processSource(ctx, source))
	}
	return results, nil
}

func (e *Extractor) runParallel(ctx context.Context, sources []string) ([]ExtractionResult, error) {
	workers := e.cfg.Workers
	if workers > len(sources) {
		workers = len(sources)
	}
	pool := newWorkerPool(ctx, workers)
	limiter := e.pacer()

	// Each task owns exactly one slot; the pool's wait barrier is the only
	// synchronization before results are read.
	results := make([]ExtractionResult, len(sources))
	for i, source := range sources {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
		}
		i, source := i, source
		if err := pool.submit(func() {
			results[i] = e.processSource(ctx, source)
		}); err != nil {
			break
		}
	}
	pool.wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// processSource runs the fetch → extract → filter chain for one source and
// captures any failure in the result instead of propagating it.
func (e *Extractor) processSource(ctx context.Context, source string) ExtractionResult {
	result := ExtractionResult{Source: source}
	log := e.log.With().Str("source", source).Logger()

	resp, err := e.fetcher.Fetch(ctx, source)
	if resp != nil {
		result.StatusCode = resp.StatusCode
	}
	if err != nil {
		result.Err = errString(err)
		log.Warn().Str("error", result.Err).Msg("fetch failed")
		return result
	}

	scopeHost := sourceHost(source)
	if scopeHost == "" {
		result.Err = "cannot determine scope host for source"
		log.Warn().Msg(result.Err)
		return result
	}

	candidates := e.cache.extract(resp.Body)
	result.URLs = FilterScope(candidates, scopeHost, ScopeOptions{
		IncludeSubdomains: e.cfg.IncludeSubdomains,
		ParamsOnly:        e.cfg.ParamsOnly,
		MediaOnly:         e.cfg.MediaOnly,
		Exclude:           e.excludes,
	})
	log.Debug().
		Int("candidates", candidates.Cardinality()).
		Int("in_scope", len(result.URLs)).
		Msg("extracted")
	return result
}
