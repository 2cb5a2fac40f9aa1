// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package containers

import (
	"sync"

	"github.com/edwingeng/deque"
)

// SliceQueue is an unbounded thread-safe queue implemented
// with edwingeng/deque.
type SliceQueue[T any] struct {
	// C is a signal channel. It is readable when the queue
	// is probably non-empty. Consumers should drain the queue
	// with Pop after each read from C.
	C chan struct{}

	// mu protects deque, because it is not thread-safe.
	mu    sync.Mutex
	deque deque.Deque
}

// NewSliceQueue creates a new SliceQueue instance.
func NewSliceQueue[T any]() *SliceQueue[T] {
	return &SliceQueue[T]{
		C:     make(chan struct{}, 1),
		deque: deque.NewDeque(),
	}
}

// Push pushes an element to the back of the queue.
func (q *SliceQueue[T]) Push(elem T) {
	q.mu.Lock()
	q.deque.PushBack(elem)
	q.mu.Unlock()

	select {
	case q.C <- struct{}{}:
	default:
	}
}

// Pop pops an element from the front of the queue.
// It returns false if the queue is empty.
func (q *SliceQueue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.deque.Empty() {
		var noVal T
		return noVal, false
	}

	return q.deque.PopFront().(T), true
}

// Peek returns the front element without removing it.
func (q *SliceQueue[T]) Peek() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.deque.Empty() {
		var noVal T
		return noVal, false
	}

	return q.deque.Front().(T), true
}

// Size returns the number of elements in the queue.
func (q *SliceQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.deque.Len()
}
