package utils

import (
	"context"
	"sync"
)

// Lazy builds an expensive dependency on first use and hands out the same
// instance for the rest of the process lifetime. A failed build is not
// remembered, so the next Get tries again.
type Lazy[T any] struct {
	mu    sync.Mutex
	build func(ctx context.Context) (T, error)
	value T
	ready bool
}

func NewLazy[T any](build func(ctx context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{build: build}
}

// Ready wraps an already constructed value.
func Ready[T any](value T) *Lazy[T] {
	return &Lazy[T]{value: value, ready: true}
}

func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ready {
		return l.value, nil
	}

	value, err := l.build(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	l.value = value
	l.ready = true
	return value, nil
}

// Peek returns the value without building it.
func (l *Lazy[T]) Peek() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.ready
}
