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
	"sync"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

// bodyCache memoizes extraction by body hash. Source lists frequently point
// many pages at the same bundle; identical bodies are scanned once and the
// candidate set is shared. Scope filtering still runs per source, so shared
// candidates never leak between scopes.
type bodyCache struct {
	mu      sync.Mutex
	entries map[uint64]mapset.Set[string]
}

func newBodyCache() *bodyCache {
	return &bodyCache{entries: make(map[uint64]mapset.Set[string])}
}

// extract returns the candidate URL set for body, computing it at most once
// per distinct body. The returned set must be treated as read-only.
func (c *bodyCache) extract(body []byte) mapset.Set[string] {
	key := xxhash.Sum64(body)

	c.mu.Lock()
	if cached, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	// Extraction runs outside the lock; a racing duplicate scan is cheaper
	// than serializing all workers.
	urls := Extract(string(body))

	c.mu.Lock()
	c.entries[key] = urls
	c.mu.Unlock()
	return urls
}
