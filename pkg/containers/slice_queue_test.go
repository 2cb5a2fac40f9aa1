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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceQueueBasics(t *testing.T) {
	t.Parallel()

	q := NewSliceQueue[int]()
	require.Equal(t, 0, q.Size())

	_, ok := q.Pop()
	require.False(t, ok)
	_, ok = q.Peek()
	require.False(t, ok)

	q.Push(1)
	q.Push(2)
	require.Equal(t, 2, q.Size())

	v, ok := q.Peek()
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = q.Pop()
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = q.Pop()
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, 0, q.Size())
}

func TestSliceQueueSignal(t *testing.T) {
	t.Parallel()

	q := NewSliceQueue[int]()
	q.Push(1)

	select {
	case <-q.C:
	default:
		t.Fatal("expected the signal channel to be readable")
	}
}

func TestSliceQueueConcurrentProducers(t *testing.T) {
	t.Parallel()

	const (
		numProducers       = 8
		numEventsPerWorker = 1000
	)

	q := NewSliceQueue[int]()
	var wg sync.WaitGroup
	for i := 0; i < numProducers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numEventsPerWorker; j++ {
				q.Push(j)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, numProducers*numEventsPerWorker, q.Size())
	count := 0
	for {
		_, ok := q.Pop()
		if !ok {
			break
		}
		count++
	}
	require.Equal(t, numProducers*numEventsPerWorker, count)
}
