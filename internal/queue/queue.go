// Package queue implements the unbounded lock-free multi-producer
// single-consumer FIFO that carries parsed frames from the I/O goroutines
// into the simulation goroutine, and generated messages back out of it.
//
// The exchange is an intrusive linked list in the style of Vyukov's MPSC
// queue: producers swap the head pointer atomically and link the previous
// node forward, the single consumer chases the tail. Enqueue never blocks
// and never rejects; the queue trades memory growth under overload for
// never dropping a request.
package queue

import "sync/atomic"

type node[T any] struct {
	next  atomic.Pointer[node[T]]
	value T
}

// Queue is an unbounded MPSC FIFO. Any goroutine may Enqueue; only one
// goroutine may TryDequeue.
type Queue[T any] struct {
	head atomic.Pointer[node[T]]
	tail *node[T]
	size atomic.Int64
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	stub := &node[T]{}
	q := &Queue[T]{tail: stub}
	q.head.Store(stub)
	return q
}

// Enqueue appends a value. Safe for concurrent producers, never blocks.
func (q *Queue[T]) Enqueue(v T) {
	n := &node[T]{value: v}
	prev := q.head.Swap(n)
	prev.next.Store(n)
	q.size.Add(1)
}

// TryDequeue removes the oldest value without blocking. It returns false
// when nothing is ready; a producer that has swapped the head but not yet
// linked its node makes the queue momentarily appear empty, which is fine
// for a polling consumer.
func (q *Queue[T]) TryDequeue() (T, bool) {
	var zero T

	next := q.tail.next.Load()
	if next == nil {
		return zero, false
	}

	q.tail = next
	v := next.value
	next.value = zero
	q.size.Add(-1)
	return v, true
}

// Len returns the approximate number of queued values. The snapshot may be
// stale by the time it is read; it exists for telemetry, not for control
// flow.
func (q *Queue[T]) Len() int {
	n := q.size.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}
