// Licensed to the Quarry project under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. The Quarry project licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package logical

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerAccumulates(t *testing.T) {
	mock := clock.NewMock()
	tracker := NewTrackerWithClock(mock)

	require.NoError(t, tracker.measure("resolution", func() error {
		mock.Add(3 * time.Millisecond)
		return nil
	}))
	require.NoError(t, tracker.measure("resolution", func() error {
		mock.Add(2 * time.Millisecond)
		return nil
	}))

	assert.Equal(t, 5*time.Millisecond, tracker.Phases()["resolution"])
}

func TestTrackerRecordsOnError(t *testing.T) {
	mock := clock.NewMock()
	tracker := NewTrackerWithClock(mock)

	errBoom := errors.New("boom")
	err := tracker.measure("validation", func() error {
		mock.Add(time.Millisecond)
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, time.Millisecond, tracker.Phases()["validation"])
}

func TestTrackerPhasesIsACopy(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.measure("resolution", func() error { return nil }))
	phases := tracker.Phases()
	phases["resolution"] = time.Hour
	assert.NotEqual(t, time.Hour, tracker.Phases()["resolution"])
}
