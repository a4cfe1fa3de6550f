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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyCacheSharesIdenticalBodies(t *testing.T) {
	c := newBodyCache()
	body := []byte(`var u = "https://a.example.com/api";`)

	first := c.extract(body)
	second := c.extract(body)
	assert.Same(t, first, second)
	assert.True(t, first.Contains("https://a.example.com/api"))

	other := c.extract([]byte(`var u = "https://b.example.com/api";`))
	assert.NotSame(t, first, other)
}

func TestBodyCacheConcurrent(t *testing.T) {
	c := newBodyCache()
	body := []byte(`var u = "https://a.example.com/api";`)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			urls := c.extract(body)
			assert.Equal(t, 1, urls.Cardinality())
		}()
	}
	wg.Wait()
}
