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
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseDomain(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"example.com", "example.com"},
		{"api.example.com", "example.com"},
		{"deep.api.example.com", "example.com"},
		{"example.co.uk", "example.co.uk"},
		{"api.example.co.uk", "example.co.uk"},
		{"foo.gov.br", "foo.gov.br"},
		{"cdn.shop.com.au", "shop.com.au"},
		{"localhost", "localhost"},
		{"API.Example.COM", "example.com"},
	}
	for _, tt := range tests {
		if got := BaseDomain(tt.host); got != tt.want {
			t.Errorf("BaseDomain(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestFilterScopeExactHost(t *testing.T) {
	urls := mapset.NewSet(
		"https://example.com/a",
		"https://example.com/b",
		"https://api.example.com/v1",
		"https://example.org/other",
	)
	got := FilterScope(urls, "example.com", ScopeOptions{})
	assert.Equal(t, []string{
		"https://example.com/a",
		"https://example.com/b",
	}, got)
}

func TestFilterScopeSubdomains(t *testing.T) {
	urls := mapset.NewSet(
		"https://example.com/a",
		"https://api.example.com/v1",
		"https://cdn.example.com/app.js",
		"https://example.org/other",
		"https://notexample.com/x",
	)
	got := FilterScope(urls, "www.example.com", ScopeOptions{IncludeSubdomains: true})
	assert.Equal(t, []string{
		"https://api.example.com/v1",
		"https://cdn.example.com/app.js",
		"https://example.com/a",
	}, got)
}

func TestFilterScopeParamsOnly(t *testing.T) {
	urls := mapset.NewSet(
		"https://example.com/search?q=1",
		"https://example.com/plain",
		"https://example.com/page?id=2&sort=asc",
	)
	got := FilterScope(urls, "example.com", ScopeOptions{ParamsOnly: true})
	assert.Equal(t, []string{
		"https://example.com/page?id=2&sort=asc",
		"https://example.com/search?q=1",
	}, got)
}

func TestFilterScopeMediaOnly(t *testing.T) {
	urls := mapset.NewSet(
		"https://example.com/static/app.js",
		"https://example.com/data.json?v=2",
		"https://example.com/logo.png",
		"https://example.com/page",
		"https://example.com/bundle.MIN.JS",
	)
	got := FilterScope(urls, "example.com", ScopeOptions{MediaOnly: true})
	assert.Equal(t, []string{
		"https://example.com/bundle.MIN.JS",
		"https://example.com/data.json?v=2",
		"https://example.com/static/app.js",
	}, got)
}

func TestFilterScopeExcludes(t *testing.T) {
	globs, err := CompileExcludes([]string{"*logout*", "*/tracking/*"})
	require.NoError(t, err)

	urls := mapset.NewSet(
		"https://example.com/app",
		"https://example.com/logout?next=/",
		"https://example.com/tracking/pixel",
	)
	got := FilterScope(urls, "example.com", ScopeOptions{Exclude: globs})
	assert.Equal(t, []string{"https://example.com/app"}, got)
}

func TestFilterScopeConjunctive(t *testing.T) {
	urls := mapset.NewSet(
		"https://api.example.com/conf.json?env=prod",
		"https://api.example.com/conf.json",
		"https://api.example.com/page?id=1",
		"https://example.org/conf.json?env=prod",
	)
	got := FilterScope(urls, "example.com", ScopeOptions{
		IncludeSubdomains: true,
		ParamsOnly:        true,
		MediaOnly:         true,
	})
	assert.Equal(t, []string{"https://api.example.com/conf.json?env=prod"}, got)
}

func TestFilterScopeUnparseableSkipped(t *testing.T) {
	urls := mapset.NewSet(
		"https://example.com/ok",
		"https://",
	)
	got := FilterScope(urls, "example.com", ScopeOptions{})
	assert.Equal(t, []string{"https://example.com/ok"}, got)
}

func TestCompileExcludesInvalid(t *testing.T) {
	_, err := CompileExcludes([]string{"[unclosed"})
	assert.Error(t, err)
}

func TestSourceHost(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"https://Example.COM/main.js", "example.com"},
		{"http://api.example.co.uk:8080/app.js", "api.example.co.uk"},
		{"not a url", ""},
	}
	for _, tt := range tests {
		if got := sourceHost(tt.source); got != tt.want {
			t.Errorf("sourceHost(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}
