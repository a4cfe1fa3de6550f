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
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoInput is returned when neither a single URL nor a list file is set
	ErrNoInput = errors.New("no input: set either URL or InputFile")
	// ErrBothInputs is returned when a single URL and a list file are both set
	ErrBothInputs = errors.New("ambiguous input: URL and InputFile are mutually exclusive")
	// ErrBadFormat is returned for unknown output formats
	ErrBadFormat = errors.New(`unknown output format (want "text" or "json")`)
	// ErrBadRetries is returned for a negative retry count
	ErrBadRetries = errors.New("retry count must be >= 0")
	// ErrBadWorkers is returned for a negative worker count
	ErrBadWorkers = errors.New("worker count must be >= 1")
)

const (
	// DefaultTimeout is the per-request timeout applied when Config.Timeout is zero.
	DefaultTimeout = 10 * time.Second
	// DefaultWorkers is the worker pool size applied when Config.Workers is zero.
	DefaultWorkers = 5
	// MaxWorkers caps the worker pool regardless of configuration.
	MaxWorkers = 50
	// DefaultUserAgent identifies jshound to the servers it fetches from.
	DefaultUserAgent = "jshound/1.0 (+https://github.com/jshound/jshound)"
)

// Output formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config contains all options for an extraction run. It is constructed once,
// validated before any network activity, and not mutated afterwards.
type Config struct {
	// URL is a single source URL to process. Mutually exclusive with InputFile.
	URL string
	// InputFile is a path to a newline-delimited list of source URLs.
	// Blank lines are skipped. Mutually exclusive with URL.
	InputFile string
	// Output is the destination path for extracted URLs.
	Output string
	// Format selects the output mode: FormatText (append-only, deduplicated
	// against prior runs) or FormatJSON (summary document, overwritten).
	Format string
	// Timeout is the per-request HTTP timeout. Zero means DefaultTimeout.
	Timeout time.Duration
	// Delay is the pause between source submissions. Zero disables pacing.
	Delay time.Duration
	// Workers is the worker pool size used when processing more than one
	// source. Zero means DefaultWorkers; values above MaxWorkers are capped.
	Workers int
	// Retries is the number of extra attempts after a transient network
	// failure. HTTP error statuses are never retried.
	Retries int
	// UserAgent overrides the User-Agent header. Empty means DefaultUserAgent.
	UserAgent string
	// Proxy is an optional http://, https:// or socks5:// proxy URL.
	Proxy string
	// IncludeSubdomains widens scope matching from the exact source host to
	// its base domain and any subdomain of it.
	IncludeSubdomains bool
	// ParamsOnly keeps only URLs containing a literal "=" character.
	ParamsOnly bool
	// MediaOnly keeps only URLs whose path extension is .js or .json.
	MediaOnly bool
	// ExcludePatterns drops extracted URLs matching any of these glob
	// patterns, e.g. "*.example.com/vendor/*".
	ExcludePatterns []string
	// HistoryDB is an optional sqlite path for recording runs and reporting
	// URLs never seen in any previous run.
	HistoryDB string
	// Silent suppresses per-source reporting in the CLI.
	Silent bool
	// Verbose enables debug logging.
	Verbose bool
}

// Validate checks the invariants of the configuration and applies defaults
// for unset optional fields. It must pass before orchestration begins.
func (c *Config) Validate() error {
	if c.URL == "" && c.InputFile == "" {
		return ErrNoInput
	}
	if c.URL != "" && c.InputFile != "" {
		return ErrBothInputs
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w, got %d", ErrBadWorkers, c.Workers)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w, got %d", ErrBadRetries, c.Retries)
	}
	switch c.Format {
	case "":
		c.Format = FormatText
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w, got %q", ErrBadFormat, c.Format)
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.Workers > MaxWorkers {
		c.Workers = MaxWorkers
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return nil
}
