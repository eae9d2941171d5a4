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
	"strings"
)

var _ Plan = (*localRelation)(nil)

// localRelation is a schema-only leaf relation. It carries no rows since only
// resolution, not execution, is exercised against it.
type localRelation struct {
	attrs Schema
}

// LocalRelation creates a schema-only relation with the given attributes.
func LocalRelation(attrs ...*Attribute) Plan {
	return &localRelation{attrs: attrs}
}

func (l *localRelation) Type() PlanType { return PlanLocalRelation }

func (l *localRelation) Children() []Plan { return nil }

func (l *localRelation) Schema() Schema { return l.attrs }

func (l *localRelation) Resolved() bool { return true }

func (l *localRelation) Equal(plan Plan) bool {
	if plan.Type() != PlanLocalRelation {
		return false
	}
	other := plan.(*localRelation)
	return l.attrs.Equal(other.attrs)
}

func (l *localRelation) MapChildren(_ func(Plan) Plan) Plan { return l }

func (l *localRelation) String() string {
	return fmt.Sprintf("LocalRelation: %s", l.attrs)
}

var _ Plan = (*unresolvedRelation)(nil)

// unresolvedRelation is a leaf naming a relation that has not been looked up
// in the catalog yet.
type unresolvedRelation struct {
	name string
}

// UnresolvedRelation creates a reference to a named relation.
func UnresolvedRelation(name string) Plan {
	return &unresolvedRelation{name: name}
}

func (u *unresolvedRelation) Type() PlanType { return PlanUnresolvedRelation }

func (u *unresolvedRelation) Children() []Plan { return nil }

func (u *unresolvedRelation) Schema() Schema { return nil }

func (u *unresolvedRelation) Resolved() bool { return false }

func (u *unresolvedRelation) Equal(plan Plan) bool {
	if plan.Type() != PlanUnresolvedRelation {
		return false
	}
	other := plan.(*unresolvedRelation)
	return u.name == other.name
}

func (u *unresolvedRelation) MapChildren(_ func(Plan) Plan) Plan { return u }

func (u *unresolvedRelation) String() string {
	return fmt.Sprintf("UnresolvedRelation: '%s'", u.name)
}

var _ Plan = (*project)(nil)

type project struct {
	input Plan
	exprs []Expr
}

// Project creates a projection of exprs over input.
func Project(input Plan, exprs ...Expr) Plan {
	return &project{input: input, exprs: exprs}
}

func (p *project) Type() PlanType { return PlanProject }

func (p *project) Children() []Plan { return []Plan{p.input} }

func (p *project) Schema() Schema {
	attrs := make(Schema, 0, len(p.exprs))
	for _, e := range p.exprs {
		switch v := e.(type) {
		case *attrRef:
			attrs = append(attrs, v.attr)
		case *unresolvedAttr:
			attrs = append(attrs, &Attribute{Name: v.name, Type: DataTypeUnknown})
		case *star:
			attrs = append(attrs, p.input.Schema()...)
		default:
			attrs = append(attrs, &Attribute{Name: e.String(), Type: e.DataType()})
		}
	}
	return attrs
}

func (p *project) Resolved() bool {
	for _, e := range p.exprs {
		if !e.Resolved() {
			return false
		}
	}
	return p.input.Resolved()
}

func (p *project) Equal(plan Plan) bool {
	if plan.Type() != PlanProject {
		return false
	}
	other := plan.(*project)
	if len(p.exprs) != len(other.exprs) {
		return false
	}
	for i := range p.exprs {
		if !p.exprs[i].Equal(other.exprs[i]) {
			return false
		}
	}
	return p.input.Equal(other.input)
}

func (p *project) MapChildren(fn func(Plan) Plan) Plan {
	return &project{input: fn(p.input), exprs: p.exprs}
}

func (p *project) String() string {
	exprStrs := make([]string, 0, len(p.exprs))
	for _, e := range p.exprs {
		exprStrs = append(exprStrs, e.String())
	}
	return "Project: " + strings.Join(exprStrs, ", ")
}

var _ Plan = (*filter)(nil)

type filter struct {
	input     Plan
	condition Expr
}

// Filter creates a selection of input rows by condition.
func Filter(input Plan, condition Expr) Plan {
	return &filter{input: input, condition: condition}
}

func (f *filter) Type() PlanType { return PlanFilter }

func (f *filter) Children() []Plan { return []Plan{f.input} }

func (f *filter) Schema() Schema { return f.input.Schema() }

func (f *filter) Resolved() bool {
	return f.condition.Resolved() && f.input.Resolved()
}

func (f *filter) Equal(plan Plan) bool {
	if plan.Type() != PlanFilter {
		return false
	}
	other := plan.(*filter)
	return f.condition.Equal(other.condition) && f.input.Equal(other.input)
}

func (f *filter) MapChildren(fn func(Plan) Plan) Plan {
	return &filter{input: fn(f.input), condition: f.condition}
}

func (f *filter) String() string {
	return fmt.Sprintf("Filter: %s", f.condition)
}

var _ Plan = (*limit)(nil)

type limit struct {
	input Plan
	num   uint32
}

// Limit creates a row-count cap over input.
func Limit(input Plan, num uint32) Plan {
	return &limit{input: input, num: num}
}

func (l *limit) Type() PlanType { return PlanLimit }

func (l *limit) Children() []Plan { return []Plan{l.input} }

func (l *limit) Schema() Schema { return l.input.Schema() }

func (l *limit) Resolved() bool { return l.input.Resolved() }

func (l *limit) Equal(plan Plan) bool {
	if plan.Type() != PlanLimit {
		return false
	}
	other := plan.(*limit)
	return l.num == other.num && l.input.Equal(other.input)
}

func (l *limit) MapChildren(fn func(Plan) Plan) Plan {
	return &limit{input: fn(l.input), num: l.num}
}

func (l *limit) String() string {
	return fmt.Sprintf("Limit: %d", l.num)
}

var _ Plan = (*subqueryAlias)(nil)

// subqueryAlias renames the subtree below it. It is pure bookkeeping and the
// analyzer's first extra rule eliminates it.
type subqueryAlias struct {
	input Plan
	name  string
}

// SubqueryAlias wraps input under an alias.
func SubqueryAlias(name string, input Plan) Plan {
	return &subqueryAlias{name: name, input: input}
}

func (s *subqueryAlias) Type() PlanType { return PlanSubqueryAlias }

func (s *subqueryAlias) Children() []Plan { return []Plan{s.input} }

func (s *subqueryAlias) Schema() Schema { return s.input.Schema() }

func (s *subqueryAlias) Resolved() bool { return s.input.Resolved() }

func (s *subqueryAlias) Equal(plan Plan) bool {
	if plan.Type() != PlanSubqueryAlias {
		return false
	}
	other := plan.(*subqueryAlias)
	return s.name == other.name && s.input.Equal(other.input)
}

func (s *subqueryAlias) MapChildren(fn func(Plan) Plan) Plan {
	return &subqueryAlias{name: s.name, input: fn(s.input)}
}

func (s *subqueryAlias) String() string {
	return fmt.Sprintf("SubqueryAlias: '%s'", s.name)
}

var _ Plan = (*view)(nil)

// view marks that its child is a stored, already-analyzed view body.
type view struct {
	input Plan
	name  string
}

// View wraps a stored view body resolved from the catalog.
func View(name string, input Plan) Plan {
	return &view{name: name, input: input}
}

func (v *view) Type() PlanType { return PlanView }

func (v *view) Children() []Plan { return []Plan{v.input} }

func (v *view) Schema() Schema { return v.input.Schema() }

func (v *view) Resolved() bool { return v.input.Resolved() }

func (v *view) Equal(plan Plan) bool {
	if plan.Type() != PlanView {
		return false
	}
	other := plan.(*view)
	return v.name == other.name && v.input.Equal(other.input)
}

func (v *view) MapChildren(fn func(Plan) Plan) Plan {
	return &view{name: v.name, input: fn(v.input)}
}

func (v *view) String() string {
	return fmt.Sprintf("View: '%s'", v.name)
}
