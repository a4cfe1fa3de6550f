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
	"sync"
)

// workerPool runs extraction tasks on a fixed number of goroutines. submit
// blocks when all workers are busy, which keeps the number of open
// connections bounded by the pool size. wait is the single synchronization
// point of a run: it returns only after every submitted task has finished.
type workerPool struct {
	tasks chan func()
	wg    sync.WaitGroup
	ctx   context.Context
}

func newWorkerPool(ctx context.Context, workers int) *workerPool {
	p := &workerPool{
		tasks: make(chan func()),
		ctx:   ctx,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *workerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			task()
		case <-p.ctx.Done():
			return
		}
	}
}

// submit queues one task, blocking until a worker picks it up. Returns the
// context error when the run is cancelled instead.
func (p *workerPool) submit(task func()) error {
	select {
	case p.tasks <- task:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// wait stops accepting tasks and blocks until all workers exit.
func (p *workerPool) wait() {
	close(p.tasks)
	p.wg.Wait()
}
