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

// Package config implements the ambient configuration store read by the
// analyzer during resolution. Values can be loaded from flags and env vars,
// and overridden for the lifetime of a dynamic scope.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

const (
	// The environment variable prefix of all environment variables bound to our command line flags.
	envPrefix = "QUARRY"

	// KeyCaseSensitive controls whether relation and column names are matched
	// case-sensitively during resolution.
	KeyCaseSensitive = "analysis.case-sensitive"
)

// Store is a key/value configuration namespace. Every key carries a
// registered default, so a restore after a scoped override always lands on a
// well-defined value.
type Store struct {
	v  *viper.Viper
	mu sync.Mutex
}

// NewStore creates a Store with the built-in defaults registered.
func NewStore() *Store {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault(KeyCaseSensitive, true)
	return &Store{v: v}
}

// Get returns the current value of key.
func (s *Store) Get(key string) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Get(key)
}

// GetBool returns the current value of key as a boolean.
func (s *Store) GetBool(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetBool(key)
}

// Set installs value for key.
func (s *Store) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(key, value)
}

// SetDefault registers the fallback value for key.
func (s *Store) SetDefault(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.SetDefault(key, value)
}

// CaseSensitive reports the ambient name-matching policy.
func (s *Store) CaseSensitive() bool {
	return s.GetBool(KeyCaseSensitive)
}

// WithSetting installs value for key, invokes body, and restores the prior
// value before returning. The restore runs on every exit path, including a
// panic raised inside body.
func (s *Store) WithSetting(key string, value interface{}, body func() error) error {
	s.mu.Lock()
	prior := s.v.Get(key)
	s.v.Set(key, value)
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.v.Set(key, prior)
		s.mu.Unlock()
	}()
	return body()
}

// BindFlags binds each flag to its associated viper configuration (env
// variable and config value), so flags override defaults and env vars
// override unset flags.
func (s *Store) BindFlags(fs *pflag.FlagSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their equivalent
		// keys with underscores.
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			err = multierr.Append(err, s.v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)))
		}
		if !f.Changed && s.v.IsSet(f.Name) {
			val := s.v.Get(f.Name)
			err = multierr.Append(err, fs.Set(f.Name, fmt.Sprintf("%v", val)))
		}
	})
	return err
}
