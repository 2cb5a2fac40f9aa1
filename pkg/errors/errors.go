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

package errors

import (
	"github.com/pingcap/errors"
)

// errors
var (
	// DAG manager related errors
	ErrPendingDAGNotDeployed = errors.Normalize(
		"replace processor is rejected, the DAG of version %d has not been deployed yet, please retry later",
		errors.RFCCodeText("GP:ErrPendingDAGNotDeployed"),
	)
	ErrDAGVersionNotFound = errors.Normalize(
		"DAG of version %d is not retained",
		errors.RFCCodeText("GP:ErrDAGVersionNotFound"),
	)
	ErrProcessorNotFound = errors.Normalize(
		"processor %d not found in DAG of version %d",
		errors.RFCCodeText("GP:ErrProcessorNotFound"),
	)

	// actor related errors
	ErrActorDuplicate = errors.Normalize(
		"duplicated actor",
		errors.RFCCodeText("GP:ErrActorDuplicate"),
	)
	ErrActorStopped = errors.Normalize(
		"actor stopped",
		errors.RFCCodeText("GP:ErrActorStopped"),
	)
	ErrSystemStopped = errors.Normalize(
		"actor system stopped",
		errors.RFCCodeText("GP:ErrSystemStopped"),
	)
	ErrMailboxFull = errors.Normalize(
		"mailbox is full, please try sending again",
		errors.RFCCodeText("GP:ErrMailboxFull"),
	)

	// topology configuration errors
	ErrInvalidTopology = errors.Normalize(
		"invalid topology: %s",
		errors.RFCCodeText("GP:ErrInvalidTopology"),
	)
)
