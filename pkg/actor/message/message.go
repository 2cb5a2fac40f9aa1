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

package message

// Type is the type of Message.
type Type int

// types of Message
const (
	TypeUnknown Type = iota
	TypeValue
	TypeStop
)

// Message is a vehicle for transferring information between actors.
// It has a concrete value type instead of an interface to save
// memory allocation.
type Message[T any] struct {
	Tp    Type
	Value T
}

// ValueMessage creates the message of value.
func ValueMessage[T any](val T) Message[T] {
	return Message[T]{
		Tp:    TypeValue,
		Value: val,
	}
}

// StopMessage creates a message of stop. An actor should gracefully
// shut itself down when it receives a stop message.
func StopMessage[T any]() Message[T] {
	return Message[T]{
		Tp: TypeStop,
	}
}
