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
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gobwas/glob"
	whatwgUrl "github.com/nlnwa/whatwg-url/url"
)

var urlParser = whatwgUrl.NewParser(whatwgUrl.WithPercentEncodeSinglePercentSign())

// shortSecondLevels are second-to-last labels under which registrations sit
// one level deeper, e.g. example.co.uk reduces to three labels, not two.
var shortSecondLevels = map[string]bool{
	"co":  true,
	"com": true,
	"org": true,
	"net": true,
	"gov": true,
	"edu": true,
}

// ScopeOptions refine which extracted URLs count as in scope for a source.
type ScopeOptions struct {
	// IncludeSubdomains matches against the scope host's base domain and
	// any subdomain of it instead of requiring an exact host match.
	IncludeSubdomains bool
	// ParamsOnly drops URLs without a literal "=" character.
	ParamsOnly bool
	// MediaOnly drops URLs whose path extension is not .js or .json.
	MediaOnly bool
	// Exclude drops URLs matching any of these globs.
	Exclude []glob.Glob
}

// CompileExcludes compiles user-supplied glob patterns for ScopeOptions.
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, err
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// BaseDomain reduces a host to its registrable base: the last two labels, or
// the last three when the second-to-last label is a short second-level like
// "co" or "com".
func BaseDomain(host string) string {
	host = strings.ToLower(host)
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	if shortSecondLevels[labels[len(labels)-2]] {
		return strings.Join(labels[len(labels)-3:], ".")
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// FilterScope keeps the candidate URLs that belong to scopeHost under the
// given options. All filters are conjunctive. The result is sorted so a run's
// output is deterministic.
func FilterScope(urls mapset.Set[string], scopeHost string, opts ScopeOptions) []string {
	scopeHost = strings.ToLower(scopeHost)
	base := ""
	if opts.IncludeSubdomains {
		base = BaseDomain(scopeHost)
	}

	inScope := make([]string, 0, urls.Cardinality())
	for u := range urls.Iter() {
		parsed, err := urlParser.Parse(u)
		if err != nil {
			continue
		}
		host := strings.ToLower(parsed.Hostname())
		if opts.IncludeSubdomains {
			if host != base && !strings.HasSuffix(host, "."+base) {
				continue
			}
		} else if host != scopeHost {
			continue
		}
		if opts.ParamsOnly && !strings.Contains(u, "=") {
			continue
		}
		if opts.MediaOnly && !hasMediaExtension(parsed.Pathname()) {
			continue
		}
		if matchesAny(opts.Exclude, u) {
			continue
		}
		inScope = append(inScope, u)
	}
	sort.Strings(inScope)
	return inScope
}

// hasMediaExtension reports whether the path (query already excluded) ends in
// a script or data extension.
func hasMediaExtension(path string) bool {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return false
	}
	switch strings.ToLower(path[i+1:]) {
	case "js", "json":
		return true
	}
	return false
}

func matchesAny(globs []glob.Glob, u string) bool {
	for _, g := range globs {
		if g.Match(u) {
			return true
		}
	}
	return false
}

// sourceHost extracts the lower-cased host of a source URL, which becomes the
// scope for everything extracted from that source. Returns "" when the source
// is not a parseable absolute URL.
func sourceHost(source string) string {
	parsed, err := urlParser.Parse(source)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
