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

package dagmanager

import (
	"context"

	"github.com/IsuraNimalasri/incubator-gearpump/pkg/actor"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/actor/message"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/dag"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/model"
	"github.com/pingcap/errors"
)

// DefaultMailboxCap is a reasonable mailbox capacity for a Manager.
const DefaultMailboxCap = 256

// Client is the synchronous calling surface of a Manager. It wraps
// the manager's mailbox; the caller-supplied context bounds how long
// each call waits for the mailbox and the reply.
//
// Client is safe for concurrent use.
type Client struct {
	mb actor.Mailbox[Request]
}

// NewClient creates a Client sending to the given manager mailbox.
func NewClient(mb actor.Mailbox[Request]) *Client {
	return &Client{mb: mb}
}

// GetLatestDAG returns the most recent retained DAG.
func (c *Client) GetLatestDAG(ctx context.Context) (*dag.DAG, error) {
	replyCh := make(chan *dag.DAG, 1)
	err := c.mb.SendB(ctx, message.ValueMessage(GetLatestDAGRequest(replyCh)))
	if err != nil {
		return nil, errors.Trace(err)
	}
	select {
	case <-ctx.Done():
		return nil, errors.Trace(ctx.Err())
	case d := <-replyCh:
		return d, nil
	}
}

// GetTaskLaunchData returns the launch data of processor pid at the
// retained DAG of the given version. It returns ErrDAGVersionNotFound
// when the version has been retired or never existed, and
// ErrProcessorNotFound when pid is not in that DAG.
func (c *Client) GetTaskLaunchData(
	ctx context.Context, version model.DAGVersion, pid model.ProcessorID,
	launchContext any,
) (model.TaskLaunchData, error) {
	replyCh := make(chan LaunchDataReply, 1)
	err := c.mb.SendB(ctx,
		message.ValueMessage(GetTaskLaunchDataRequest(version, pid, launchContext, replyCh)))
	if err != nil {
		return model.TaskLaunchData{}, errors.Trace(err)
	}
	select {
	case <-ctx.Done():
		return model.TaskLaunchData{}, errors.Trace(ctx.Err())
	case r := <-replyCh:
		return r.Data, r.Err
	}
}

// ReplaceProcessor retires oldID and lets newProcessor take over its
// position. It returns ErrPendingDAGNotDeployed while a prior
// replacement has not been confirmed deployed; the caller must retry
// later.
func (c *Client) ReplaceProcessor(
	ctx context.Context, oldID model.ProcessorID,
	newProcessor model.ProcessorDescription,
) error {
	replyCh := make(chan error, 1)
	err := c.mb.SendB(ctx,
		message.ValueMessage(ReplaceProcessorRequest(oldID, newProcessor, replyCh)))
	if err != nil {
		return errors.Trace(err)
	}
	select {
	case <-ctx.Done():
		return errors.Trace(ctx.Err())
	case err := <-replyCh:
		return err
	}
}

// WatchChange registers a watcher mailbox for push notifications of
// new DAG versions. It is fire and forget and idempotent per mailbox
// id.
func (c *Client) WatchChange(watcher actor.Mailbox[Notification]) error {
	return errors.Trace(c.mb.Send(message.ValueMessage(WatchChangeRequest(watcher))))
}

// NewDAGDeployed confirms the DAG of the given version is fully
// rolled out, retiring all strictly older versions. Fire and forget.
func (c *Client) NewDAGDeployed(version model.DAGVersion) error {
	return errors.Trace(c.mb.Send(message.ValueMessage(NewDAGDeployedRequest(version))))
}

// Stop asks the manager to shut down after draining the messages
// already in its mailbox.
func (c *Client) Stop(ctx context.Context) error {
	return errors.Trace(c.mb.SendB(ctx, message.StopMessage[Request]()))
}
