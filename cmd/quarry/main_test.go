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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenizh/go-capturer"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	var err error
	out := capturer.CaptureStdout(func() {
		err = cmd.Execute()
	})
	return out, err
}

func TestAnalyzeDemoCatalog(t *testing.T) {
	out, err := execute(t, "analyze", "--sql", "SELECT * FROM events LIMIT 5")
	require.NoError(t, err)
	assert.Contains(t, out, "Limit: 5")
	assert.Contains(t, out, "Project: #id<int>, #name<string>, #ts<int>")
	assert.Contains(t, out, "View: 'events'")
	assert.Contains(t, out, "LocalRelation:")
}

func TestAnalyzeCaseSensitivity(t *testing.T) {
	_, err := execute(t, "analyze", "--sql", "SELECT * FROM EVENTS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot resolve relation "EVENTS"`)

	out, err := execute(t, "analyze", "--sql", "SELECT * FROM EVENTS", "--case-sensitive=false")
	require.NoError(t, err)
	assert.Contains(t, out, "View: 'EVENTS'")
}

func TestAnalyzeSchemaFile(t *testing.T) {
	schema := `
databases:
  - name: default
views:
  - name: metrics
    columns:
      - name: value
        type: float
`
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(schema), 0o600))

	out, err := execute(t, "analyze", "--sql", "SELECT value FROM metrics", "--schema", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Project: #value<float>")
	assert.Contains(t, out, "View: 'metrics'")
}

func TestAnalyzeSyntaxError(t *testing.T) {
	_, err := execute(t, "analyze", "--sql", "SELECT FROM")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestAnalyzeRequiresSQL(t *testing.T) {
	_, err := execute(t, "analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--sql is required")
}
