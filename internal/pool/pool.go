// Package pool wraps sync.Pool with typed accessors and an optional reset
// hook applied on Get.
package pool

import (
	"sync"
)

type Pool[T any] struct {
	inner *sync.Pool
	reset func(T)
}

// New builds a pool producing values from newFunc. reset, when non-nil, runs
// on every value handed out by Get before the caller sees it.
func New[T any](newFunc func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		inner: &sync.Pool{
			New: func() any {
				return newFunc()
			},
		},
		reset: reset,
	}
}

func (p *Pool[T]) Get() T {
	v := p.inner.Get().(T)
	if p.reset != nil {
		p.reset(v)
	}
	return v
}

func (p *Pool[T]) Put(v T) {
	p.inner.Put(v)
}
