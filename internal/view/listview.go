// Package view holds the pieces every screen shares: status display
// categories, role-based area access, and the fetch-then-replace list
// discipline that keeps stale data off the screen.
package view

import (
	"context"
	"sync"
)

// ListView holds the rows for one screen. Refresh replaces the rows only when
// the fetch succeeds; a failed fetch or mutation leaves the last good rows in
// place so the screen never goes blank on a transient error.
type ListView[T any] struct {
	fetch func(context.Context) ([]T, error)

	mu     sync.Mutex
	rows   []T
	loaded bool
}

func NewListView[T any](fetch func(context.Context) ([]T, error)) *ListView[T] {
	return &ListView[T]{fetch: fetch}
}

// Refresh re-fetches the rows. On error the previous rows are kept.
func (v *ListView[T]) Refresh(ctx context.Context) error {
	rows, err := v.fetch(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = rows
	v.loaded = true
	return nil
}

// Mutate runs an action against the backend and, if it succeeds, re-fetches so
// the screen shows backend truth rather than a locally patched row. A failed
// action leaves the rows untouched.
func (v *ListView[T]) Mutate(ctx context.Context, action func(context.Context) error) error {
	if err := action(ctx); err != nil {
		return err
	}
	return v.Refresh(ctx)
}

// Rows returns a copy of the current rows.
func (v *ListView[T]) Rows() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]T, len(v.rows))
	copy(out, v.rows)
	return out
}

// Loaded reports whether at least one fetch has succeeded; before that the
// screen shows a loading state rather than "no rows".
func (v *ListView[T]) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

func (v *ListView[T]) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.rows)
}
