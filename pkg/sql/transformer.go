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

package sql

import (
	"github.com/quarrydb/quarry/pkg/logical"
)

var binaryOpFactory = map[string]func(l, r logical.Expr) logical.Expr{
	"=":  logical.Eq,
	"!=": logical.Ne,
	"<":  logical.Lt,
	">":  logical.Gt,
}

// ToPlan converts the grammar tree into an unresolved logical plan.
func (q *Query) ToPlan() (logical.Plan, error) {
	stmt := q.Select
	var plan logical.Plan = logical.UnresolvedRelation(stmt.From.Relation)
	if stmt.From.Alias != "" {
		plan = logical.SubqueryAlias(stmt.From.Alias, plan)
	}

	if stmt.Where != nil {
		condition := predicateToExpr(stmt.Where.Predicates[0])
		for _, p := range stmt.Where.Predicates[1:] {
			condition = logical.And(condition, predicateToExpr(p))
		}
		plan = logical.Filter(plan, condition)
	}

	if stmt.Projection.Star {
		plan = logical.Project(plan, logical.Star())
	} else {
		exprs := make([]logical.Expr, 0, len(stmt.Projection.Columns))
		for _, col := range stmt.Projection.Columns {
			exprs = append(exprs, logical.UnresolvedAttr(col))
		}
		plan = logical.Project(plan, exprs...)
	}

	if stmt.Limit != nil {
		plan = logical.Limit(plan, *stmt.Limit)
	}
	return plan, nil
}

func predicateToExpr(p *Predicate) logical.Expr {
	left := logical.UnresolvedAttr(p.Column)
	var right logical.Expr
	switch {
	case p.Value.Str != nil:
		right = logical.Str(*p.Value.Str)
	default:
		right = logical.Int(*p.Value.Int)
	}
	return binaryOpFactory[p.Op](left, right)
}
