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

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydb/quarry/pkg/catalog"
	"github.com/quarrydb/quarry/pkg/logical"
)

func relation() logical.Plan {
	return logical.LocalRelation(logical.IntAttr("a"), logical.StrAttr("b"))
}

func other() logical.Plan {
	return logical.LocalRelation(logical.IntAttr("c"))
}

func TestCreateDatabaseIsStrict(t *testing.T) {
	c := catalog.New(catalog.NewGlobalRegistry())
	require.NoError(t, c.CreateDatabase(&catalog.Database{Name: "default"}, false))
	err := c.CreateDatabase(&catalog.Database{Name: "default"}, false)
	require.ErrorIs(t, err, catalog.ErrDatabaseExists)
	require.NoError(t, c.CreateDatabase(&catalog.Database{Name: "default"}, true))

	db, ok := c.Database("default")
	require.True(t, ok)
	assert.Equal(t, "default", db.Name)
}

func TestTempViewOverride(t *testing.T) {
	c := catalog.New(catalog.NewGlobalRegistry())
	require.NoError(t, c.CreateTempView("v", relation(), false))
	require.ErrorIs(t, c.CreateTempView("v", other(), false), catalog.ErrViewExists)
	require.NoError(t, c.CreateTempView("v", other(), true))

	// the override replaced the binding rather than adding a second one
	assert.Equal(t, []string{"v"}, c.TempViewNames())
	body, ok := c.LookupView("v", true)
	require.True(t, ok)
	assert.True(t, body.Equal(other()))
}

func TestDropTempView(t *testing.T) {
	c := catalog.New(catalog.NewGlobalRegistry())
	require.NoError(t, c.CreateTempView("v", relation(), false))
	assert.True(t, c.DropTempView("v"))
	assert.False(t, c.DropTempView("v"))
	_, ok := c.LookupView("v", true)
	assert.False(t, ok)
}

func TestGlobalViewsAreSharedAcrossCatalogs(t *testing.T) {
	globals := catalog.NewGlobalRegistry()
	c1 := catalog.New(globals)
	c2 := catalog.New(globals)

	require.NoError(t, c1.CreateGlobalTempView("g", relation(), false))
	body, ok := c2.LookupView("g", true)
	require.True(t, ok)
	assert.True(t, body.Equal(relation()))
	assert.Equal(t, []string{"g"}, globals.Names())

	// session views stay private to their catalog
	require.NoError(t, c1.CreateTempView("s", relation(), false))
	_, ok = c2.LookupView("s", true)
	assert.False(t, ok)
}

func TestGlobalViewOverride(t *testing.T) {
	globals := catalog.NewGlobalRegistry()
	c := catalog.New(globals)
	require.NoError(t, c.CreateGlobalTempView("g", relation(), false))
	require.ErrorIs(t, c.CreateGlobalTempView("g", other(), false), catalog.ErrViewExists)
	require.NoError(t, c.CreateGlobalTempView("g", other(), true))

	assert.Equal(t, []string{"g"}, globals.Names())
	body, ok := c.LookupView("g", true)
	require.True(t, ok)
	assert.True(t, body.Equal(other()))
}

func TestSessionViewShadowsGlobal(t *testing.T) {
	globals := catalog.NewGlobalRegistry()
	c := catalog.New(globals)
	require.NoError(t, c.CreateGlobalTempView("v", relation(), false))
	require.NoError(t, c.CreateTempView("v", other(), false))

	body, ok := c.LookupView("v", true)
	require.True(t, ok)
	assert.True(t, body.Equal(other()))
}

func TestLookupViewCasePolicy(t *testing.T) {
	c := catalog.New(catalog.NewGlobalRegistry())
	require.NoError(t, c.CreateTempView("TaBlE", relation(), false))

	_, ok := c.LookupView("table", true)
	assert.False(t, ok)

	body, ok := c.LookupView("table", false)
	require.True(t, ok)
	assert.True(t, body.Equal(relation()))

	// case-preserved storage: the original spelling still matches exactly
	_, ok = c.LookupView("TaBlE", true)
	assert.True(t, ok)
}

func TestLookupViewPrefersExactMatch(t *testing.T) {
	c := catalog.New(catalog.NewGlobalRegistry())
	require.NoError(t, c.CreateTempView("t", relation(), false))
	require.NoError(t, c.CreateTempView("T", other(), false))

	body, ok := c.LookupView("T", false)
	require.True(t, ok)
	assert.True(t, body.Equal(other()))
}

func TestFromYAML(t *testing.T) {
	schema := []byte(`
databases:
  - name: default
views:
  - name: events
    columns:
      - name: id
        type: int
      - name: name
        type: string
  - name: shared
    scope: global
    columns:
      - name: x
        type: float
`)
	globals := catalog.NewGlobalRegistry()
	c, err := catalog.FromYAML(schema, globals)
	require.NoError(t, err)

	_, ok := c.Database("default")
	assert.True(t, ok)
	assert.Equal(t, []string{"events"}, c.TempViewNames())
	assert.Equal(t, []string{"shared"}, globals.Names())

	body, ok := c.LookupView("events", true)
	require.True(t, ok)
	assert.True(t, body.Schema().Equal(logical.Schema{logical.IntAttr("id"), logical.StrAttr("name")}))
}

func TestFromYAMLRejectsBadInput(t *testing.T) {
	globals := catalog.NewGlobalRegistry()

	_, err := catalog.FromYAML([]byte(`views: [{name: v, columns: [{name: x, type: decimal}]}]`), globals)
	require.ErrorIs(t, err, catalog.ErrInvalidSchemaFile)

	_, err = catalog.FromYAML([]byte(`views: [{columns: []}]`), globals)
	require.ErrorIs(t, err, catalog.ErrInvalidSchemaFile)

	_, err = catalog.FromYAML([]byte(`{`), globals)
	require.ErrorIs(t, err, catalog.ErrInvalidSchemaFile)
}
