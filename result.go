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

// ExtractionResult holds the outcome of processing one source URL.
// Each result is produced by exactly one task and is immutable once returned.
type ExtractionResult struct {
	// Source is the URL the script content was fetched from
	Source string
	// StatusCode is the HTTP status of the fetch, 0 if the request never
	// received a response
	StatusCode int
	// URLs are the in-scope URLs extracted from the response body, sorted
	URLs []string
	// Err describes why processing failed, empty on success
	Err string
}

// Failed reports whether processing this source ended in an error.
func (r *ExtractionResult) Failed() bool {
	return r.Err != ""
}

// SourceReport is the per-source entry of a Summary.
type SourceReport struct {
	Source     string   `json:"source"`
	StatusCode int      `json:"status_code,omitempty"`
	URLsFound  int      `json:"urls_found"`
	URLs       []string `json:"urls"`
	Error      string   `json:"error,omitempty"`
}

// Summary is the structured-mode output document aggregated over all sources.
type Summary struct {
	// TotalSources is the number of sources processed
	TotalSources int `json:"total_sources"`
	// Successful counts sources processed without error
	Successful int `json:"successful"`
	// Failed counts sources whose processing ended in an error
	Failed int `json:"failed"`
	// TotalURLsFound sums URL occurrences across sources, without dedup
	TotalURLsFound int `json:"total_urls_found"`
	// Results holds one entry per source
	Results []SourceReport `json:"results"`
	// UniqueURLs is the deduplicated union of all extracted URLs, sorted
	UniqueURLs []string `json:"unique_urls"`
	// UniqueURLCount is len(UniqueURLs)
	UniqueURLCount int `json:"unique_url_count"`
}
