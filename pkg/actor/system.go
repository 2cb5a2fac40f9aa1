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

package actor

import (
	"context"
	"sync"
	"time"

	"github.com/IsuraNimalasri/incubator-gearpump/pkg/actor/message"
	cerrors "github.com/IsuraNimalasri/incubator-gearpump/pkg/errors"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/logutil"
	"go.uber.org/zap"
)

// The max number of messages that an actor is polled with in one batch.
const defaultMsgBatchSizePerActor = 64

// System polls actors. Each spawned actor is driven by one goroutine
// that drains its mailbox in batches until the actor quits or the
// system stops.
type System[T any] struct {
	name   string
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	actors  map[ID]struct{}
	stopped bool

	wg sync.WaitGroup
}

// NewSystem creates a new system.
func NewSystem[T any](name string) *System[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &System[T]{
		name:   name,
		logger: logutil.NewLogger4ActorSystem(name),
		ctx:    ctx,
		cancel: cancel,
		actors: make(map[ID]struct{}),
	}
}

// Spawn spawns an actor in the system.
// Spawn returns ErrActorDuplicate when the actor is already in the system,
// and ErrSystemStopped after the system stops.
func (s *System[T]) Spawn(mb Mailbox[T], actor Actor[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return cerrors.ErrSystemStopped.GenWithStackByArgs()
	}
	id := mb.ID()
	if _, ok := s.actors[id]; ok {
		return cerrors.ErrActorDuplicate.GenWithStackByArgs()
	}
	s.actors[id] = struct{}{}
	totalActors.WithLabelValues(s.name).Inc()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.poll(mb, actor)
	}()
	return nil
}

// Stop stops the system and waits for all polling goroutines to quit.
// Messages sent after Stop are never polled.
func (s *System[T]) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *System[T]) poll(mb Mailbox[T], actor Actor[T]) {
	id := mb.ID()
	defer func() {
		s.mu.Lock()
		delete(s.actors, id)
		s.mu.Unlock()
		totalActors.WithLabelValues(s.name).Dec()
	}()

	batch := make([]message.Message[T], 0, defaultMsgBatchSizePerActor)
	for {
		msg, ok := mb.receiveB(s.ctx)
		if !ok {
			// The system is stopping.
			return
		}
		batch = append(batch[:0], msg)
		for len(batch) < defaultMsgBatchSizePerActor {
			msg, ok := mb.Receive()
			if !ok {
				break
			}
			batch = append(batch, msg)
		}

		start := time.Now()
		running := actor.Poll(s.ctx, batch)
		polledMessages.WithLabelValues(s.name).Add(float64(len(batch)))
		pollDuration.WithLabelValues(s.name).Add(time.Since(start).Seconds())
		if !running {
			if remaining := mb.len(); remaining != 0 {
				s.logger.Warn("actor quit with messages in its mailbox",
					zap.Uint64("id", uint64(id)), zap.Int("remaining", remaining))
			}
			return
		}
	}
}
