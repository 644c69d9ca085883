// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/cardpress/lib/fieldkey"
	"github.com/bureau-foundation/cardpress/lib/source"
)

// reservedMarker prefixes keys that are layering metadata rather than
// user fields. Reserved keys bypass the grammar and the merge: they are
// copied verbatim into the destination node, first definition winning.
const reservedMarker = "_"

// Resolve merges all sources into one tree, blocking. Leaf resolution
// runs depth-first in field order; the first error aborts immediately
// without attempting further fields.
func (l *Layering) Resolve(ctx context.Context) (*Tree, error) {
	run := &resolver{signals: newRegistry()}
	defer run.signals.drain()

	tree := newTree()
	if err := run.resolveLevel(ctx, "/", l.layers(), tree); err != nil {
		return nil, err
	}
	run.signals.signal("/", tree)
	return tree, nil
}

// ResolveConcurrent starts a concurrent resolution and returns
// immediately. Sibling fields at each nesting level resolve in
// parallel, nested recursions concurrently with sibling terminals. The
// first error cancels the run; already-started work drains and its
// results are discarded, so the caller sees all-or-nothing through
// Wait. Await releases per-path as subtrees complete, without waiting
// for siblings.
//
// The merge and leaf logic is shared verbatim with Resolve — only the
// scheduling of the per-level task batches differs — so both entry
// points produce identical trees for identical layerings.
func (l *Layering) ResolveConcurrent(ctx context.Context) *Resolution {
	resolution := &Resolution{
		signals: newRegistry(),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(resolution.done)
		defer resolution.signals.drain()

		run := &resolver{concurrent: true, signals: resolution.signals}
		tree := newTree()
		if err := run.resolveLevel(ctx, "/", l.layers(), tree); err != nil {
			resolution.err = err
			return
		}
		run.signals.signal("/", tree)
		resolution.tree = tree
	}()
	return resolution
}

// Resolution is a concurrent resolution in flight.
type Resolution struct {
	signals *registry
	done    chan struct{}

	// tree and err are written once, before done closes.
	tree *Tree
	err  error
}

// Wait blocks until the run finishes and returns the merged tree or
// the single error that aborted it.
func (r *Resolution) Wait() (*Tree, error) {
	<-r.done
	return r.tree, r.err
}

// Done is closed when the run finishes.
func (r *Resolution) Done() <-chan struct{} {
	return r.done
}

// Await returns the value at a slash path as soon as it resolves,
// without waiting for sibling subtrees. Waiters for the same path are
// released in registration order. If the run ends without resolving
// the path, Await returns ErrUnresolved.
func (r *Resolution) Await(ctx context.Context, path string) (any, error) {
	return r.signals.await(ctx, path)
}

// resolver carries the per-run state through the recursion: the
// scheduling mode and the completion-signal registry.
type resolver struct {
	concurrent bool
	signals    *registry
}

// batch is the scheduling seam between the two entry points. A batch
// collects the resolution tasks of one nesting level and joins them.
// The serial implementation runs each task inline and short-circuits
// after the first error; the concurrent one fans tasks out on an
// errgroup whose context cancels on first error.
type batch interface {
	Go(task func(ctx context.Context) error)
	Wait() error
}

func (r *resolver) newBatch(ctx context.Context) batch {
	if r.concurrent {
		group, groupCtx := errgroup.WithContext(ctx)
		return &groupBatch{group: group, ctx: groupCtx}
	}
	return &serialBatch{ctx: ctx}
}

type serialBatch struct {
	ctx context.Context
	err error
}

func (b *serialBatch) Go(task func(ctx context.Context) error) {
	if b.err != nil {
		return
	}
	b.err = task(b.ctx)
}

func (b *serialBatch) Wait() error {
	return b.err
}

type groupBatch struct {
	group *errgroup.Group
	ctx   context.Context
}

func (b *groupBatch) Go(task func(ctx context.Context) error) {
	b.group.Go(func() error {
		return task(b.ctx)
	})
}

func (b *groupBatch) Wait() error {
	return b.group.Wait()
}

// fieldLayer is one source's contribution to a field at the current
// level: the occurrences of the field in that source (several only for
// array-marked keys) plus the source's descriptor and context.
type fieldLayer struct {
	key     fieldkey.Key
	values  []any
	context source.Context
	source  string
}

// resolveLevel merges one nesting level of all live layers into dest.
// Classification and slot creation happen sequentially; only leaf
// resolution and nested recursion go through the batch, so no two
// tasks ever write the same tree node and the field order of dest is
// identical in both scheduling modes.
func (r *resolver) resolveLevel(ctx context.Context, path string, layers []layer, dest *Tree) error {
	var order []string
	fields := make(map[string][]*fieldLayer)

	for _, current := range layers {
		perLayer := make(map[string]*fieldLayer)
		for _, pair := range current.mapping.Pairs() {
			if len(pair.Key) > 0 && pair.Key[:1] == reservedMarker {
				// Layering metadata: verbatim, first definition wins.
				slot := dest.entry(pair.Key)
				if slot.value == nil {
					slot.value = pair.Value
				}
				continue
			}

			key, err := fieldkey.Parse(pair.Key)
			if err != nil {
				return err
			}

			if existing, ok := perLayer[key.Name]; ok {
				if !existing.key.Array || !key.Array {
					return &DuplicateFieldError{Path: childPath(path, key.Name), Source: current.name}
				}
				existing.values = append(existing.values, pair.Value)
				continue
			}

			contribution := &fieldLayer{
				key:     key,
				values:  []any{pair.Value},
				context: current.context,
				source:  current.name,
			}
			perLayer[key.Name] = contribution
			if len(fields[key.Name]) == 0 {
				order = append(order, key.Name)
			}
			// Layers are visited in priority order, so contributions
			// arrive in priority order too.
			fields[key.Name] = append(fields[key.Name], contribution)
		}
	}

	tasks := r.newBatch(ctx)
	for _, name := range order {
		contributions := fields[name]
		fieldPath := childPath(path, name)

		nested := contributions[0].isNested()
		for _, contribution := range contributions[1:] {
			if contribution.isNested() != nested {
				return &NestingError{Path: fieldPath}
			}
		}

		slot := dest.entry(name)
		if nested {
			childTree := newTree()
			slot.value = childTree
			childLayers := make([]layer, len(contributions))
			for i, contribution := range contributions {
				childLayers[i] = layer{
					mapping: contribution.values[0].(*source.Mapping),
					context: contribution.context,
					name:    contribution.source,
				}
			}
			tasks.Go(func(ctx context.Context) error {
				if err := r.resolveLevel(ctx, fieldPath, childLayers, childTree); err != nil {
					return err
				}
				r.signals.signal(fieldPath, childTree)
				return nil
			})
			continue
		}

		// Terminal: the highest-priority definition wins outright;
		// lower-priority definitions are discarded without error.
		winner := contributions[0]
		var raw any
		if winner.key.Array {
			raw = winner.values
		} else {
			raw = winner.values[0]
		}
		tasks.Go(func(ctx context.Context) error {
			value, err := r.resolveLeaf(ctx, fieldPath, winner.key, raw, winner.context)
			if err != nil {
				return err
			}
			slot.value = value
			r.signals.signal(fieldPath, value)
			return nil
		})
	}
	return tasks.Wait()
}

// isNested reports whether this contribution classifies the field as a
// nested mapping. Array-marked fields are always terminal, even when
// their elements are mappings.
func (f *fieldLayer) isNested() bool {
	if f.key.Array {
		return false
	}
	_, ok := f.values[0].(*source.Mapping)
	return ok
}

func childPath(path, name string) string {
	if path == "/" {
		return "/" + name
	}
	return path + "/" + name
}
