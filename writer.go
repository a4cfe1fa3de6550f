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
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// UniqueURLs returns the deduplicated union of extracted URLs across all
// results, sorted.
func UniqueURLs(results []ExtractionResult) []string {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, r := range results {
		for _, u := range r.URLs {
			set.Add(u)
		}
	}
	urls := set.ToSlice()
	sort.Strings(urls)
	return urls
}

// WriteText appends the URLs not already present in path, one per line,
// sorted. An existing file acts as the dedup baseline; a missing or
// unreadable file is treated as empty. Returns the number of newly appended
// URLs, making repeated runs over identical results idempotent.
func WriteText(results []ExtractionResult, path string) (int, error) {
	existing := mapset.NewThreadUnsafeSet[string]()
	if data, err := os.ReadFile(path); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				existing.Add(line)
			}
		}
	}

	var fresh []string
	for _, u := range UniqueURLs(results) {
		if !existing.Contains(u) {
			fresh = append(fresh, u)
		}
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("opening output file: %w", err)
	}
	defer f.Close()
	for _, u := range fresh {
		if _, err := fmt.Fprintln(f, u); err != nil {
			return 0, fmt.Errorf("writing output file: %w", err)
		}
	}
	return len(fresh), nil
}

// BuildSummary aggregates per-source results into the structured-mode
// document. Results are accepted in any order.
func BuildSummary(results []ExtractionResult) *Summary {
	s := &Summary{
		TotalSources: len(results),
		Results:      make([]SourceReport, 0, len(results)),
	}
	for _, r := range results {
		if r.Failed() {
			s.Failed++
		} else {
			s.Successful++
		}
		s.TotalURLsFound += len(r.URLs)
		s.Results = append(s.Results, SourceReport{
			Source:     r.Source,
			StatusCode: r.StatusCode,
			URLsFound:  len(r.URLs),
			URLs:       r.URLs,
			Error:      r.Err,
		})
	}
	s.UniqueURLs = UniqueURLs(results)
	s.UniqueURLCount = len(s.UniqueURLs)
	return s
}

// WriteJSON serializes the summary for results to path, overwriting any
// existing file. Returns the unique URL count.
func WriteJSON(results []ExtractionResult, path string) (int, error) {
	summary := BuildSummary(results)
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return 0, fmt.Errorf("writing summary: %w", err)
	}
	return summary.UniqueURLCount, nil
}
