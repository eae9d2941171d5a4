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

// Package analysis is a verification harness for the plan analyzer: it builds
// a fixed catalog fixture, drives one analysis run under a chosen
// case-sensitivity policy, and asserts on the resolved tree or the raised
// semantic error.
package analysis

import (
	"github.com/pkg/errors"

	"github.com/quarrydb/quarry/pkg/catalog"
	"github.com/quarrydb/quarry/pkg/config"
	"github.com/quarrydb/quarry/pkg/logical"
)

// DefaultDatabase is the single database every fixture catalog carries.
const DefaultDatabase = "default"

// Fixture view names. The mixed-case spelling keeps the case policy
// observable in tests.
const (
	ViewTable  = "TaBlE"
	ViewTable2 = "TaBlE2"
	ViewTable3 = "TaBlE3"
	ViewTable4 = "TaBlE4"
	ViewTable5 = "TaBlE5"
)

type fixtureView struct {
	name   string
	body   func() logical.Plan
	global bool
}

var fixtureViews = []fixtureView{
	{name: ViewTable, body: relationAB},
	{name: ViewTable2, body: relationCD},
	{name: ViewTable3, body: relationE},
	{name: ViewTable4, body: relationFG, global: true},
	{name: ViewTable5, body: relationH, global: true},
}

func relationAB() logical.Plan {
	return logical.LocalRelation(logical.IntAttr("a"), logical.StrAttr("b"))
}

func relationCD() logical.Plan {
	return logical.LocalRelation(logical.IntAttr("c"), logical.StrAttr("d"))
}

func relationE() logical.Plan {
	return logical.LocalRelation(logical.IntAttr("e"))
}

func relationFG() logical.Plan {
	return logical.LocalRelation(logical.IntAttr("f"), logical.StrAttr("g"))
}

func relationH() logical.Plan {
	return logical.LocalRelation(logical.IntAttr("h"))
}

// ViewBody returns a fresh copy of the relation backing the named fixture
// view, for building expected plans.
func ViewBody(name string) logical.Plan {
	for _, v := range fixtureViews {
		if v.name == name {
			return v.body()
		}
	}
	panic(errors.Errorf("unknown fixture view %q", name))
}

// Harness owns the per-run state shared by all check calls: the ambient
// configuration store, the global-scope view registry, and the analyzer
// extension rules. Each check call still builds a fresh catalog and analyzer.
type Harness struct {
	Conf    *config.Store
	Globals *catalog.GlobalRegistry
	Extra   []logical.Rule
}

// NewHarness creates a harness with isolated configuration and global view
// namespaces. The extension rules run after the fixed subquery-alias
// elimination rule on every analyzer the harness builds.
func NewHarness(extensions ...logical.Rule) *Harness {
	return &Harness{
		Conf:    config.NewStore(),
		Globals: catalog.NewGlobalRegistry(),
		Extra:   extensions,
	}
}

// BuildCatalog deterministically produces the fixture catalog: the default
// database plus the five fixture views, three session-scoped and two
// global-scoped. View registrations override prior bindings; the database
// creation is strict since the catalog is fresh, so a failure there is a
// programming error and panics.
func (h *Harness) BuildCatalog() *catalog.Catalog {
	cat := catalog.New(h.Globals)
	if err := cat.CreateDatabase(&catalog.Database{Name: DefaultDatabase}, false); err != nil {
		panic(errors.Wrap(err, "fixture catalog must start empty"))
	}
	for _, v := range fixtureViews {
		var err error
		if v.global {
			err = cat.CreateGlobalTempView(v.name, v.body(), true)
		} else {
			err = cat.CreateTempView(v.name, v.body(), true)
		}
		if err != nil {
			panic(errors.Wrapf(err, "registering fixture view %q", v.name))
		}
	}
	return cat
}

// BuildAnalyzer wraps a fresh fixture catalog in a new analyzer.
func (h *Harness) BuildAnalyzer() *logical.Analyzer {
	return logical.NewAnalyzer(h.BuildCatalog(), h.Conf, h.Extra...)
}
