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
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	pool := newWorkerPool(context.Background(), 3)

	var done atomic.Int32
	for i := 0; i < 20; i++ {
		require.NoError(t, pool.submit(func() {
			done.Add(1)
		}))
	}
	pool.wait()
	assert.Equal(t, int32(20), done.Load())
}

func TestWorkerPoolSubmitAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := newWorkerPool(ctx, 1)

	blocker := make(chan struct{})
	require.NoError(t, pool.submit(func() { <-blocker }))

	cancel()
	// the single worker is busy, so this submission can only fail
	err := pool.submit(func() {})
	assert.ErrorIs(t, err, context.Canceled)

	close(blocker)
	pool.wait()
}
