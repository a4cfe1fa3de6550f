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
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// urlPattern matches absolute http(s) URLs embedded in script text: dot
// separated labels of 1-63 alphanumeric chars with internal hyphens, a TLD of
// at least two letters, an optional 1-5 digit port and a path/query of
// URL-safe characters. Braces are included so template placeholders stay
// inside the match and can be cut off during normalization. Whitespace and
// quotes terminate a match so adjacent string literals never merge.
var urlPattern = regexp.MustCompile(
	`https?://(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}` +
		`(?::\d{1,5})?` +
		`[a-zA-Z0-9._~:/?#\[\]{}@!$&()*+,;=%\\-]*`)

// trailingJunk are characters stripped from the end of a raw match:
// quotes, closing brackets and braces, backslashes, separators.
const trailingJunk = " \t\r\n\"'`\\;,)]}>"

// Extract scans text for embedded absolute URLs and returns the normalized
// candidates as a set. Duplicates in the source text collapse; order carries
// no meaning.
func Extract(text string) mapset.Set[string] {
	urls := mapset.NewSet[string]()
	for _, raw := range urlPattern.FindAllString(text, -1) {
		if u := normalizeMatch(raw); u != "" {
			urls.Add(u)
		}
	}
	return urls
}

// normalizeMatch cleans one raw regex match. Matches reduced to nothing, or
// left without a scheme separator, are discarded by returning "".
func normalizeMatch(raw string) string {
	u := strings.TrimRight(raw, trailingJunk)
	// template substitution markers mean everything from there on is
	// generated at runtime, not a literal URL
	if i := strings.Index(u, "${"); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimRight(u, "\\")
	if u == "" || !strings.Contains(u, "://") {
		return ""
	}
	return u
}
