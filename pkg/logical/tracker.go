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
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Tracker accumulates per-phase durations of one analysis run.
type Tracker struct {
	clock  clock.Clock
	phases map[string]time.Duration
	mu     sync.Mutex
}

// NewTracker creates a tracker using the wall clock.
func NewTracker() *Tracker {
	return NewTrackerWithClock(clock.New())
}

// NewTrackerWithClock creates a tracker with an injected clock.
func NewTrackerWithClock(c clock.Clock) *Tracker {
	return &Tracker{clock: c, phases: make(map[string]time.Duration)}
}

func (t *Tracker) measure(phase string, fn func() error) error {
	start := t.clock.Now()
	defer func() {
		t.mu.Lock()
		t.phases[phase] += t.clock.Since(start)
		t.mu.Unlock()
	}()
	return fn()
}

// Phases returns a copy of the recorded phase durations.
func (t *Tracker) Phases() map[string]time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]time.Duration, len(t.phases))
	for k, v := range t.phases {
		out[k] = v
	}
	return out
}
