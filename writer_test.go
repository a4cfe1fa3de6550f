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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []ExtractionResult {
	return []ExtractionResult{
		{
			Source:     "https://a.example.com/app.js",
			StatusCode: 200,
			URLs: []string{
				"https://a.example.com/api?id=1",
				"https://a.example.com/login",
			},
		},
		{
			Source:     "https://b.example.com/app.js",
			StatusCode: 200,
			URLs: []string{
				"https://a.example.com/login",
				"https://b.example.com/data.json",
			},
		},
		{
			Source:     "https://gone.example.com/old.js",
			StatusCode: 404,
			Err:        "HTTP error 404",
		},
	}
}

func TestUniqueURLs(t *testing.T) {
	got := UniqueURLs(sampleResults())
	assert.Equal(t, []string{
		"https://a.example.com/api?id=1",
		"https://a.example.com/login",
		"https://b.example.com/data.json",
	}, got)
}

func TestWriteTextAppendsAndDedups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	results := sampleResults()

	n, err := WriteText(results, path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"https://a.example.com/api?id=1\n"+
			"https://a.example.com/login\n"+
			"https://b.example.com/data.json\n",
		string(data))

	// a second identical run appends nothing
	n, err = WriteText(results, path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestWriteTextAppendsOnlyFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path,
		[]byte("https://a.example.com/login\nhttps://c.example.com/x\n"), 0644))

	n, err := WriteText(sampleResults(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"https://a.example.com/login\n"+
			"https://c.example.com/x\n"+
			"https://a.example.com/api?id=1\n"+
			"https://b.example.com/data.json\n",
		string(data))
}

func TestBuildSummary(t *testing.T) {
	s := BuildSummary(sampleResults())

	assert.Equal(t, 3, s.TotalSources)
	assert.Equal(t, 2, s.Successful)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 4, s.TotalURLsFound)
	assert.Equal(t, 3, s.UniqueURLCount)
	require.Len(t, s.Results, 3)
	assert.Equal(t, "HTTP error 404", s.Results[2].Error)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	n, err := WriteJSON(sampleResults(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var s Summary
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, 3, s.TotalSources)
	assert.Equal(t, 2, s.Successful)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, []string{
		"https://a.example.com/api?id=1",
		"https://a.example.com/login",
		"https://b.example.com/data.json",
	}, s.UniqueURLs)

	// structured mode overwrites, it never accumulates
	n, err = WriteJSON(sampleResults()[:1], path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
