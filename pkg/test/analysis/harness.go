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

package analysis

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/quarrydb/quarry/pkg/config"
	"github.com/quarrydb/quarry/pkg/logical"
	"github.com/quarrydb/quarry/pkg/sql"
)

// analyze runs one full analysis pass over a fresh fixture catalog under the
// given case policy. The ambient policy is restored before returning.
func (h *Harness) analyze(plan logical.Plan, caseSensitive bool) (logical.Plan, error) {
	var resolved logical.Plan
	err := h.Conf.WithSetting(config.KeyCaseSensitive, caseSensitive, func() error {
		var err error
		resolved, err = h.BuildAnalyzer().ExecuteAndCheck(plan, nil)
		return err
	})
	return resolved, err
}

// resolveOnly runs resolution without validation, for diagnostics. Any
// resolution failure is folded into the returned rendering.
func (h *Harness) resolveOnly(plan logical.Plan, caseSensitive bool) string {
	var out string
	_ = h.Conf.WithSetting(config.KeyCaseSensitive, caseSensitive, func() error {
		partial, err := h.BuildAnalyzer().Execute(plan)
		if err != nil {
			out = "<resolution failed: " + err.Error() + ">"
			return nil
		}
		out = logical.Format(partial)
		return nil
	})
	return out
}

// CheckSuccess asserts that the plan analyzes without error. On failure the
// report carries the input tree and the partially resolved tree, so the
// unbound name is visible without re-running anything.
func (h *Harness) CheckSuccess(t testing.TB, plan logical.Plan, caseSensitive bool) {
	t.Helper()
	if _, err := h.analyze(plan, caseSensitive); err != nil {
		t.Fatalf("analysis failed: %v\ninput plan:\n%spartially resolved plan:\n%s",
			err, logical.Format(plan), h.resolveOnly(plan, caseSensitive))
	}
}

// CheckEqual asserts that analyzing the plan yields the expected tree. The
// expected tree is taken as-is and never re-validated, so checks can assert
// on shapes the analyzer itself would not produce.
func (h *Harness) CheckEqual(t testing.TB, plan, expected logical.Plan, caseSensitive bool) {
	t.Helper()
	resolved, err := h.analyze(plan, caseSensitive)
	if err != nil {
		t.Fatalf("analysis failed: %v\ninput plan:\n%s", err, logical.Format(plan))
		return
	}
	ComparePlans(t, expected, resolved)
}

// CheckEqualUnwrapped is CheckEqual with view wrapper nodes stripped from the
// analyzed tree first, so expected plans can be written against the view
// bodies directly.
func (h *Harness) CheckEqualUnwrapped(t testing.TB, plan, expected logical.Plan, caseSensitive bool) {
	t.Helper()
	resolved, err := h.analyze(plan, caseSensitive)
	if err != nil {
		t.Fatalf("analysis failed: %v\ninput plan:\n%s", err, logical.Format(plan))
		return
	}
	ComparePlans(t, expected, logical.StripViews(resolved))
}

// CheckError asserts that analyzing the plan raises an analysis error whose
// message contains every fragment, matched case-insensitively. Any other
// error kind, and success, are distinct failures.
func (h *Harness) CheckError(t testing.TB, plan logical.Plan, caseSensitive bool, fragments ...string) {
	t.Helper()
	_, err := h.analyze(plan, caseSensitive)
	if err == nil {
		t.Fatalf("analysis succeeded on a plan that must fail:\n%s", logical.Format(plan))
		return
	}
	var aerr *logical.AnalysisError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected an analysis error, got %T: %v", err, err)
		return
	}
	actual := strings.ToLower(aerr.Error())
	for _, f := range fragments {
		if !strings.Contains(actual, strings.ToLower(f)) {
			t.Fatalf("analysis error %q does not contain fragment %q (want all of %q)",
				aerr.Error(), f, fragments)
			return
		}
	}
}

// ComparePlans fails t unless the two plans are equal after canonicalization.
// Neither plan is re-validated; the caller vouches for whatever validity
// matters to the comparison. The report renders both trees.
func ComparePlans(t testing.TB, expected, actual logical.Plan) {
	t.Helper()
	ce := logical.Canonicalize(expected)
	ca := logical.Canonicalize(actual)
	if !cmp.Equal(ce, ca) {
		t.Fatalf("plans are not equal\nexpected:\n%sactual:\n%s",
			logical.Format(ce), logical.Format(ca))
	}
}

// CompareRevalidated re-runs analysis over both plans before comparing them,
// for callers that want the consistency check applied to hand-built trees.
func (h *Harness) CompareRevalidated(t testing.TB, expected, actual logical.Plan, caseSensitive bool) {
	t.Helper()
	for _, p := range []logical.Plan{expected, actual} {
		if _, err := h.analyze(p, caseSensitive); err != nil {
			t.Fatalf("revalidation failed: %v\nplan:\n%s", err, logical.Format(p))
			return
		}
	}
	ComparePlans(t, expected, actual)
}

// ParseFn parses a query string into an unresolved logical plan.
type ParseFn func(string) (logical.Plan, error)

// InterceptParseError asserts that parsing the query raises a syntax error
// whose message contains every fragment, matched case-sensitively. A nil
// parse function defaults to the built-in dialect.
func InterceptParseError(t testing.TB, parse ParseFn, query string, fragments ...string) {
	t.Helper()
	if parse == nil {
		parse = sql.Parse
	}
	_, err := parse(query)
	if err == nil {
		t.Fatalf("parsing succeeded on a query that must fail: %s", query)
		return
	}
	var serr *sql.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected a syntax error, got %T: %v", err, err)
		return
	}
	for _, f := range fragments {
		if !strings.Contains(serr.Error(), f) {
			t.Fatalf("syntax error %q does not contain fragment %q (want all of %q)",
				serr.Error(), f, fragments)
			return
		}
	}
}
