// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"context"
	"sync"
)

// registry tracks which tree paths have resolved and releases waiters
// as they do. One registry exists per resolution run, owned by the run
// and passed explicitly through the recursion; there is no process-wide
// listener state.
type registry struct {
	mu       sync.Mutex
	resolved map[string]any
	waiters  map[string][]chan waitResult
	drained  bool
}

type waitResult struct {
	value any
	err   error
}

func newRegistry() *registry {
	return &registry{
		resolved: make(map[string]any),
		waiters:  make(map[string][]chan waitResult),
	}
}

// signal records path as resolved and releases its waiters in
// registration order.
func (r *registry) signal(path string, value any) {
	r.mu.Lock()
	r.resolved[path] = value
	waiters := r.waiters[path]
	delete(r.waiters, path)
	r.mu.Unlock()

	for _, waiter := range waiters {
		waiter <- waitResult{value: value}
	}
}

// await blocks until path resolves, the run drains, or ctx is done.
// A path that already resolved returns immediately.
func (r *registry) await(ctx context.Context, path string) (any, error) {
	r.mu.Lock()
	if value, ok := r.resolved[path]; ok {
		r.mu.Unlock()
		return value, nil
	}
	if r.drained {
		r.mu.Unlock()
		return nil, ErrUnresolved
	}
	waiter := make(chan waitResult, 1)
	r.waiters[path] = append(r.waiters[path], waiter)
	r.mu.Unlock()

	select {
	case result := <-waiter:
		return result.value, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// drain ends the run: every waiter still queued (its path never
// resolved, typically because an error aborted resolution) is released
// with ErrUnresolved so no caller blocks forever. Await calls arriving
// after drain fail the same way.
func (r *registry) drain() {
	r.mu.Lock()
	pending := r.waiters
	r.waiters = make(map[string][]chan waitResult)
	r.drained = true
	r.mu.Unlock()

	for _, waiters := range pending {
		for _, waiter := range waiters {
			waiter <- waitResult{err: ErrUnresolved}
		}
	}
}
