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

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLifeTimeTerminate(t *testing.T) {
	t.Parallel()

	l := NewLifeTime(3)
	require.Equal(t, DAGVersion(3), l.Birth)
	require.Equal(t, UnboundedDeath, l.Death)

	bounded := l.Terminate(7)
	require.Equal(t, LifeTime{Birth: 3, Death: 7}, bounded)
	// The receiver stays unchanged.
	require.Equal(t, UnboundedDeath, l.Death)
}

func TestLifeTimeIsAliveAt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		life    LifeTime
		version DAGVersion
		alive   bool
	}{
		{LifeTime{Birth: 0, Death: 5}, 0, true},
		{LifeTime{Birth: 0, Death: 5}, 4, true},
		{LifeTime{Birth: 0, Death: 5}, 5, false},
		{LifeTime{Birth: 3, Death: 5}, 2, false},
		{Immortal, 1 << 40, true},
	}
	for _, c := range cases {
		require.Equal(t, c.alive, c.life.IsAliveAt(c.version),
			"life %+v at version %d", c.life, c.version)
	}
}
