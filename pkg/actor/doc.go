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

// Package actor provides a simple actor system.
//
// An actor is spawned into a System together with its Mailbox. Senders
// put messages into the mailbox, and the system drives the actor by
// draining the mailbox in batches and calling Poll. Messages of one
// actor are always polled by a single goroutine, so an actor processes
// one batch at a time to completion and never needs internal locking.
//
//	,------.          ,-------.          ,------.          ,-----.
//	|Sender|          |Mailbox|          |System|          |Actor|
//	`--+---'          `---+---'          `--+---'          `--+--'
//	   |    Send(msg)     |                 |                 |
//	   | ---------------->|                 |                 |
//	   |                  |    receive      |                 |
//	   |                  |<----------------|                 |
//	   |                  |                 |   Poll(msgs)    |
//	   |                  |                 |---------------->|
//	,--+---.          ,---+---.          ,--+---.          ,--+--.
//	|Sender|          |Mailbox|          |System|          |Actor|
//	`------'          `-------'          `------'          `-----'
package actor
