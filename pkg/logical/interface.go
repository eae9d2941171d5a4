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

// Package logical implements the logical query plan model and the rule-based
// analyzer that binds names in a plan against a view catalog.
package logical

import (
	"fmt"
)

// PlanType identifies the relational operation a plan node performs.
type PlanType uint8

// Known plan node types.
const (
	PlanLocalRelation PlanType = iota
	PlanUnresolvedRelation
	PlanProject
	PlanFilter
	PlanLimit
	PlanSubqueryAlias
	PlanView
)

// Plan is an immutable logical plan tree node. A node's output schema is a
// pure function of its own fields and its children's output schemas.
type Plan interface {
	fmt.Stringer
	Type() PlanType
	Children() []Plan
	Schema() Schema
	Resolved() bool
	Equal(Plan) bool
	// MapChildren returns a copy of the node with each child replaced by
	// fn(child). Leaves return themselves.
	MapChildren(fn func(Plan) Plan) Plan
}

// Expr is an expression appearing in a plan node.
type Expr interface {
	fmt.Stringer
	DataType() DataType
	Resolved() bool
	Equal(Expr) bool
}

// ViewFinder locates a stored view body by name. The catalog implements it.
type ViewFinder interface {
	LookupView(name string, caseSensitive bool) (Plan, bool)
}
