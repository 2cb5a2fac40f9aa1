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

package autoid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocatorMonotonic(t *testing.T) {
	t.Parallel()

	a := NewAllocator(10)
	require.Equal(t, int64(11), a.AllocID())
	require.Equal(t, int64(12), a.AllocID())
	require.Equal(t, int64(13), a.AllocID())
}

func TestAllocatorConcurrent(t *testing.T) {
	t.Parallel()

	const (
		numWorkers       = 8
		numAllocPerWorker = 1000
	)

	a := NewAllocator(0)
	ids := make([][]int64, numWorkers)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < numAllocPerWorker; j++ {
				ids[i] = append(ids[i], a.AllocID())
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]struct{})
	for _, workerIDs := range ids {
		for _, id := range workerIDs {
			_, dup := seen[id]
			require.False(t, dup, "id %d allocated twice", id)
			seen[id] = struct{}{}
		}
	}
	require.Len(t, seen, numWorkers*numAllocPerWorker)
}

func TestUUIDAllocator(t *testing.T) {
	t.Parallel()

	a := NewUUIDAllocator()
	id1 := a.AllocID()
	id2 := a.AllocID()
	require.NotEmpty(t, id1)
	require.NotEqual(t, id1, id2)
}
