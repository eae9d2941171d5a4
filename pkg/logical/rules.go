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

var (
	_ Rule = resolveRelations{}
	_ Rule = resolveReferences{}
	_ Rule = eliminateSubqueryAliases{}
)

// resolveRelations replaces relation references with the stored view body,
// wrapped in a view marker node. Unknown names are left in place for the
// post-resolution check to report.
type resolveRelations struct{}

func (resolveRelations) Name() string { return "resolve-relations" }

func (resolveRelations) Apply(ctx *AnalysisContext, plan Plan) (Plan, error) {
	return TransformUp(plan, func(node Plan) Plan {
		u, ok := node.(*unresolvedRelation)
		if !ok {
			return node
		}
		body, found := ctx.Views.LookupView(u.name, ctx.CaseSensitive)
		if !found {
			return node
		}
		return View(u.name, body)
	}), nil
}

// resolveReferences binds column references against the child's output schema
// and expands stars. References that cannot be bound are left in place.
type resolveReferences struct{}

func (resolveReferences) Name() string { return "resolve-references" }

func (resolveReferences) Apply(ctx *AnalysisContext, plan Plan) (Plan, error) {
	return TransformUp(plan, func(node Plan) Plan {
		switch v := node.(type) {
		case *project:
			if !v.input.Resolved() {
				return node
			}
			input := v.input.Schema()
			exprs := make([]Expr, 0, len(v.exprs))
			for _, e := range v.exprs {
				if _, isStar := e.(*star); isStar {
					for _, attr := range input {
						exprs = append(exprs, Ref(attr))
					}
					continue
				}
				exprs = append(exprs, resolveExpr(e, input, ctx.CaseSensitive))
			}
			return &project{input: v.input, exprs: exprs}
		case *filter:
			if !v.input.Resolved() {
				return node
			}
			return &filter{input: v.input, condition: resolveExpr(v.condition, v.input.Schema(), ctx.CaseSensitive)}
		default:
			return node
		}
	}), nil
}

func resolveExpr(e Expr, input Schema, caseSensitive bool) Expr {
	switch v := e.(type) {
	case *unresolvedAttr:
		if attr := input.FindAttribute(v.name, caseSensitive); attr != nil {
			return Ref(attr)
		}
		return e
	case *binaryExpr:
		return &binaryExpr{
			op: v.op,
			l:  resolveExpr(v.l, input, caseSensitive),
			r:  resolveExpr(v.r, input, caseSensitive),
		}
	default:
		return e
	}
}

// eliminateSubqueryAliases strips alias bookkeeping nodes so they do not leak
// into plan comparisons.
type eliminateSubqueryAliases struct{}

func (eliminateSubqueryAliases) Name() string { return "eliminate-subquery-aliases" }

func (eliminateSubqueryAliases) Apply(_ *AnalysisContext, plan Plan) (Plan, error) {
	return TransformUp(plan, func(node Plan) Plan {
		if node.Type() == PlanSubqueryAlias {
			return node.Children()[0]
		}
		return node
	}), nil
}
