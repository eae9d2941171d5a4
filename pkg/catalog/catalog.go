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

// Package catalog implements an in-memory catalog of databases and named
// views. Session-scoped views live in one catalog instance; global-scoped
// views live in an explicit registry handle shared between instances.
package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/quarrydb/quarry/pkg/logger"
	"github.com/quarrydb/quarry/pkg/logical"
)

var (
	// ErrDatabaseExists is raised when a database is re-created without
	// ignoreIfExists. Unlike views, databases are never silently redefined.
	ErrDatabaseExists = errors.New("database already exists")
	// ErrViewExists is raised when a view is re-registered without override.
	ErrViewExists = errors.New("view already exists")
)

// Database describes one database in the catalog.
type Database struct {
	Properties map[string]string
	Name       string
	Location   string
}

// GlobalRegistry is the global-scope view namespace. It is an explicit handle
// rather than process state so independent runs can stay isolated; catalogs
// sharing one registry see each other's global views.
type GlobalRegistry struct {
	views map[string]logical.Plan
	mu    sync.RWMutex
}

// NewGlobalRegistry creates an empty global-scope view namespace.
func NewGlobalRegistry() *GlobalRegistry {
	return &GlobalRegistry{views: make(map[string]logical.Plan)}
}

func (g *GlobalRegistry) register(name string, plan logical.Plan, overrideIfExists bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.views[name]; ok && !overrideIfExists {
		return errors.Wrap(ErrViewExists, name)
	}
	g.views[name] = plan
	return nil
}

func (g *GlobalRegistry) lookup(name string, caseSensitive bool) (logical.Plan, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return lookupView(g.views, name, caseSensitive)
}

// Names returns the registered global view names, sorted.
func (g *GlobalRegistry) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedNames(g.views)
}

// Catalog owns one default database plus session-scoped view bindings, and
// borrows a global registry. View names are stored case-preserved; the case
// policy is applied at lookup time only.
type Catalog struct {
	databases map[string]*Database
	tempViews map[string]logical.Plan
	globals   *GlobalRegistry
	log       *logger.Logger
	id        string
	mu        sync.RWMutex
}

var _ logical.ViewFinder = (*Catalog)(nil)

// New creates an empty catalog attached to the given global registry.
func New(globals *GlobalRegistry) *Catalog {
	id := uuid.NewString()
	return &Catalog{
		id:        id,
		databases: make(map[string]*Database),
		tempViews: make(map[string]logical.Plan),
		globals:   globals,
		log:       logger.GetLogger("catalog").Named(id[:8]),
	}
}

// CreateDatabase registers db. Re-creating an existing database is an error
// unless ignoreIfExists is set.
func (c *Catalog) CreateDatabase(db *Database, ignoreIfExists bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.databases[db.Name]; ok {
		if ignoreIfExists {
			return nil
		}
		return errors.Wrap(ErrDatabaseExists, db.Name)
	}
	c.databases[db.Name] = db
	c.log.Debug().Str("database", db.Name).Msg("database created")
	return nil
}

// Database returns the database registered under name.
func (c *Catalog) Database(name string) (*Database, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	db, ok := c.databases[name]
	return db, ok
}

// CreateTempView binds plan under name in the session scope.
func (c *Catalog) CreateTempView(name string, plan logical.Plan, overrideIfExists bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tempViews[name]; ok && !overrideIfExists {
		return errors.Wrap(ErrViewExists, name)
	}
	c.tempViews[name] = plan
	return nil
}

// CreateGlobalTempView binds plan under name in the global scope.
func (c *Catalog) CreateGlobalTempView(name string, plan logical.Plan, overrideIfExists bool) error {
	return c.globals.register(name, plan, overrideIfExists)
}

// DropTempView removes a session-scoped binding, reporting whether it existed.
func (c *Catalog) DropTempView(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.tempViews[name]
	delete(c.tempViews, name)
	return ok
}

// TempViewNames returns the session-scoped view names, sorted.
func (c *Catalog) TempViewNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedNames(c.tempViews)
}

// LookupView finds a view body by name, session scope first, then global.
func (c *Catalog) LookupView(name string, caseSensitive bool) (logical.Plan, bool) {
	c.mu.RLock()
	plan, ok := lookupView(c.tempViews, name, caseSensitive)
	c.mu.RUnlock()
	if ok {
		return plan, true
	}
	return c.globals.lookup(name, caseSensitive)
}

// lookupView prefers an exact match; under insensitive policy it falls back
// to a folded scan in sorted name order so the result is deterministic.
func lookupView(views map[string]logical.Plan, name string, caseSensitive bool) (logical.Plan, bool) {
	if plan, ok := views[name]; ok {
		return plan, true
	}
	if caseSensitive {
		return nil, false
	}
	for _, candidate := range sortedNames(views) {
		if strings.EqualFold(candidate, name) {
			return views[candidate], true
		}
	}
	return nil, false
}

func sortedNames(views map[string]logical.Plan) []string {
	names := make([]string, 0, len(views))
	for name := range views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
