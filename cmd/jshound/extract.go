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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	jshound "github.com/jshound/jshound"
	"github.com/jshound/jshound/internal/store"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string     { return fmt.Sprint(*m) }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }

func runExtract(args []string) error {
	fs := flag.NewFlagSet("jshound", flag.ExitOnError)

	var (
		listFile   = fs.String("l", "", "File with one source URL per line")
		singleURL  = fs.String("u", "", "Single source URL to process")
		output     = fs.String("o", "extracted_links.txt", "Output file for extracted URLs")
		format     = fs.String("f", "text", "Output format: text, json")
		timeout    = fs.Duration("t", 10*time.Second, "Per-request timeout")
		delay      = fs.Duration("d", 0, "Delay between source submissions")
		workers    = fs.Int("w", 5, "Number of concurrent workers")
		retries    = fs.Int("r", 2, "Retries for transient network failures")
		userAgent  = fs.String("A", "", "Custom User-Agent string")
		proxyURL   = fs.String("x", "", "Proxy URL (http, https or socks5)")
		subdomains = fs.Bool("s", false, "Include subdomains of each source's base domain")
		paramsOnly = fs.Bool("p", false, "Only keep URLs containing \"=\"")
		mediaOnly  = fs.Bool("j", false, "Only keep URLs ending in .js or .json")
		historyDB  = fs.String("history", "", "Sqlite path for cross-run URL history")
		silent     = fs.Bool("silent", false, "Suppress per-source output, only show counts")
		verbose    = fs.Bool("verbose", false, "Enable debug logging")
	)
	var excludes multiFlag
	fs.Var(&excludes, "exclude", "Glob pattern to drop URLs (repeatable)")

	fs.Usage = func() {
		fmt.Println(`Usage: jshound [flags]

Extract in-scope URLs from remote script resources.

Flags:`)
		fs.PrintDefaults()
		fmt.Println(`
Examples:
  # Single script
  jshound -u https://example.com/static/app.js

  # A list, 10 workers, JSON summary
  jshound -l scripts.txt -w 10 -f json -o summary.json

  # Subdomains in scope, parameterized URLs only
  jshound -l scripts.txt -s -p

  # Track new findings across runs
  jshound -l scripts.txt --history ~/.jshound/history.db`)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := newLogger(*silent, *verbose)

	cfg := jshound.Config{
		URL:               *singleURL,
		InputFile:         *listFile,
		Output:            *output,
		Format:            *format,
		Timeout:           *timeout,
		Delay:             *delay,
		Workers:           *workers,
		Retries:           *retries,
		UserAgent:         *userAgent,
		Proxy:             *proxyURL,
		IncludeSubdomains: *subdomains,
		ParamsOnly:        *paramsOnly,
		MediaOnly:         *mediaOnly,
		ExcludePatterns:   excludes,
		HistoryDB:         *historyDB,
		Silent:            *silent,
		Verbose:           *verbose,
	}

	extractor, err := jshound.NewExtractor(&cfg, logger)
	if err != nil {
		return err
	}

	if !*silent {
		color.Cyan("=== jshound ===")
	}

	// SIGINT aborts outstanding fetches; nothing is written after that.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startedAt := time.Now()
	results, err := extractor.Run(ctx)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no sources to process")
	}

	report(results, *silent)

	summary := jshound.BuildSummary(results)
	if summary.Successful == 0 {
		return fmt.Errorf("all %d sources failed", summary.Failed)
	}

	if cfg.HistoryDB != "" {
		if err := recordHistory(&cfg, summary, startedAt, *silent); err != nil {
			return err
		}
	}

	switch cfg.Format {
	case jshound.FormatJSON:
		count, err := jshound.WriteJSON(results, cfg.Output)
		if err != nil {
			return err
		}
		color.Green("[INFO] Wrote summary with %d unique URLs to %s", count, cfg.Output)
	default:
		count, err := jshound.WriteText(results, cfg.Output)
		if err != nil {
			return err
		}
		color.Green("[INFO] Appended %d new URLs to %s", count, cfg.Output)
	}

	color.Green("[INFO] Processed %d sources: %d ok, %d failed, %d unique URLs",
		summary.TotalSources, summary.Successful, summary.Failed, summary.UniqueURLCount)
	return nil
}

func report(results []jshound.ExtractionResult, silent bool) {
	if silent {
		return
	}
	for _, r := range results {
		if r.Failed() {
			color.Red("[ERROR] %s: %s", r.Source, r.Err)
			continue
		}
		color.Yellow("[INFO] Extracted %d in-scope links from %s", len(r.URLs), r.Source)
		for _, u := range r.URLs {
			color.Green("[+] %s", u)
		}
	}
}

func recordHistory(cfg *jshound.Config, summary *jshound.Summary, startedAt time.Time, silent bool) error {
	st, err := store.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.RecordRun(startedAt, time.Now(),
		summary.TotalSources, summary.Successful, summary.Failed, summary.UniqueURLCount)
	if err != nil {
		return err
	}
	fresh, err := st.FilterUnseen(run.ID, summary.UniqueURLs)
	if err != nil {
		return err
	}
	if !silent {
		color.Yellow("[INFO] %d URLs never seen in a previous run", len(fresh))
	}
	return nil
}

func newLogger(silent, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if silent {
		level = zerolog.ErrorLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}
