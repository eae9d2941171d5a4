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
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/quarrydb/quarry/pkg/config"
	"github.com/quarrydb/quarry/pkg/logger"
)

// ErrMaxIterations is raised when the rule chain keeps changing the plan
// without reaching a fixpoint. It signals a broken rule, not a bad plan.
var ErrMaxIterations = errors.New("analysis did not converge")

const (
	maxIterations = 100
	viewCacheSize = 128
)

// AnalysisError is raised when a plan cannot be fully resolved or fails a
// post-resolution consistency check.
type AnalysisError struct {
	msg string
}

func (e *AnalysisError) Error() string { return e.msg }

func analysisErrorf(format string, args ...interface{}) *AnalysisError {
	return &AnalysisError{msg: fmt.Sprintf(format, args...)}
}

// AnalysisContext carries the per-run resolution state handed to each rule.
type AnalysisContext struct {
	Views         ViewFinder
	CaseSensitive bool
}

// Rule rewrites a plan one step closer to fully resolved. Rules must be pure:
// same context and plan in, same plan out.
type Rule interface {
	Name() string
	Apply(ctx *AnalysisContext, plan Plan) (Plan, error)
}

// Analyzer binds names in logical plans against a view catalog. Its rule
// chain is the built-in resolution rules, then subquery-alias elimination,
// then the caller's extension rules in the order supplied. Immutable once
// constructed.
type Analyzer struct {
	views ViewFinder
	conf  *config.Store
	cache *lru.Cache
	log   *logger.Logger
	extra []Rule
}

// NewAnalyzer creates an analyzer over views. The extension rules run after
// the fixed subquery-alias elimination rule, preserving caller order.
func NewAnalyzer(views ViewFinder, conf *config.Store, extensions ...Rule) *Analyzer {
	// lru.New errors only on a non-positive size
	cache, _ := lru.New(viewCacheSize)
	extra := make([]Rule, 0, len(extensions)+1)
	extra = append(extra, eliminateSubqueryAliases{})
	extra = append(extra, extensions...)
	return &Analyzer{
		views: views,
		conf:  conf,
		cache: cache,
		extra: extra,
		log:   logger.GetLogger("analyzer"),
	}
}

// Execute runs resolution only, without the post-resolution consistency
// check. The result may be partially resolved; no error is raised for names
// that could not be bound.
func (a *Analyzer) Execute(plan Plan) (Plan, error) {
	ctx := &AnalysisContext{
		Views:         &cachingViewFinder{cache: a.cache, views: a.views},
		CaseSensitive: a.conf.CaseSensitive(),
	}
	rules := append([]Rule{resolveRelations{}, resolveReferences{}}, a.extra...)
	current := plan
	for i := 0; i < maxIterations; i++ {
		next := current
		for _, r := range rules {
			rewritten, err := r.Apply(ctx, next)
			if err != nil {
				return nil, errors.Wrapf(err, "rule %s", r.Name())
			}
			if !rewritten.Equal(next) {
				a.log.Debug().Str("rule", r.Name()).Msg("plan changed")
			}
			next = rewritten
		}
		if next.Equal(current) {
			return next, nil
		}
		current = next
	}
	return nil, errors.Wrapf(ErrMaxIterations, "after %d iterations", maxIterations)
}

// ExecuteAndCheck runs resolution followed by validation, raising an
// AnalysisError when the plan cannot be fully resolved. A nil tracker is
// replaced with a fresh one.
func (a *Analyzer) ExecuteAndCheck(plan Plan, tracker *Tracker) (Plan, error) {
	if tracker == nil {
		tracker = NewTracker()
	}
	var resolved Plan
	err := tracker.measure("resolution", func() error {
		var err error
		resolved, err = a.Execute(plan)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := tracker.measure("validation", func() error {
		return checkAnalysis(resolved)
	}); err != nil {
		return nil, err
	}
	return resolved, nil
}

// checkAnalysis reports the innermost unresolved piece of the plan, children
// before parents, so the error names the root cause rather than a symptom.
func checkAnalysis(plan Plan) error {
	for _, child := range plan.Children() {
		if err := checkAnalysis(child); err != nil {
			return err
		}
	}
	if plan.Resolved() {
		return nil
	}
	switch v := plan.(type) {
	case *unresolvedRelation:
		return analysisErrorf("cannot resolve relation %q", v.name)
	case *project:
		return checkExprs(v.exprs, v.input.Schema())
	case *filter:
		return checkExprs([]Expr{v.condition}, v.input.Schema())
	default:
		return analysisErrorf("cannot resolve plan node %s", plan)
	}
}

func checkExprs(exprs []Expr, input Schema) error {
	for _, e := range exprs {
		if u := firstUnresolvedExpr(e); u != nil {
			if ua, ok := u.(*unresolvedAttr); ok {
				return analysisErrorf("cannot resolve column %q; input columns: %s", ua.name, input)
			}
			return analysisErrorf("cannot resolve expression %s", u)
		}
	}
	return nil
}

func firstUnresolvedExpr(e Expr) Expr {
	if b, ok := e.(*binaryExpr); ok {
		if u := firstUnresolvedExpr(b.l); u != nil {
			return u
		}
		return firstUnresolvedExpr(b.r)
	}
	if !e.Resolved() {
		return e
	}
	return nil
}

type viewCacheKey struct {
	name          string
	caseSensitive bool
}

// cachingViewFinder memoizes catalog lookups for the lifetime of one
// analyzer. Safe because an analyzer never outlives its catalog fixture.
type cachingViewFinder struct {
	cache *lru.Cache
	views ViewFinder
}

func (c *cachingViewFinder) LookupView(name string, caseSensitive bool) (Plan, bool) {
	key := viewCacheKey{name: name, caseSensitive: caseSensitive}
	if v, ok := c.cache.Get(key); ok {
		return v.(Plan), true
	}
	body, ok := c.views.LookupView(name, caseSensitive)
	if ok {
		c.cache.Add(key, body)
	}
	return body, ok
}
