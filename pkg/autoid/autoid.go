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

	"github.com/google/uuid"
)

// Allocator hands out monotonically increasing int64 ids.
// Ids are never reused.
type Allocator interface {
	AllocID() int64
}

type iDAllocator struct {
	sync.Mutex
	lastID int64
}

// NewAllocator creates an Allocator whose first allocated id
// is lastAllocated+1.
func NewAllocator(lastAllocated int64) Allocator {
	return &iDAllocator{lastID: lastAllocated}
}

func (a *iDAllocator) AllocID() int64 {
	a.Lock()
	defer a.Unlock()
	a.lastID++
	return a.lastID
}

// UUIDAllocator allocates random string ids.
type UUIDAllocator struct{}

// NewUUIDAllocator creates a new UUIDAllocator.
func NewUUIDAllocator() *UUIDAllocator {
	return new(UUIDAllocator)
}

// AllocID returns a random UUID string.
func (a *UUIDAllocator) AllocID() string {
	return uuid.New().String()
}
