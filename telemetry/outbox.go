package telemetry

import (
	"context"
	"sync/atomic"
)

// outbox decouples the step loop from slow sinks
// Offer never blocks; a full outbox drops and counts
type outbox[T any] struct {
	ch      chan T
	sent    atomic.Int64
	dropped atomic.Int64
}

func newOutbox[T any](size int) *outbox[T] {
	if size <= 0 {
		size = 1
	}
	return &outbox[T]{ch: make(chan T, size)}
}

func (o *outbox[T]) offer(v T) bool {
	select {
	case o.ch <- v:
		return true
	default:
		o.dropped.Add(1)
		return false
	}
}

// run delivers until ctx is done, then flushes what is already queued
func (o *outbox[T]) run(ctx context.Context, deliver func(T)) {
	for {
		select {
		case v := <-o.ch:
			deliver(v)
			o.sent.Add(1)
		case <-ctx.Done():
			for {
				select {
				case v := <-o.ch:
					deliver(v)
					o.sent.Add(1)
				default:
					return
				}
			}
		}
	}
}
