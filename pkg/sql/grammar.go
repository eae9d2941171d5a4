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

// Package sql parses a small SELECT dialect into unresolved logical plans.
//
//nolint:govet // ignore fieldalignment in this file; layout is the grammar
package sql

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Query is the root of a statement parsed by Participle.
type Query struct {
	Select *SelectStatement `parser:"@@"`
}

// SelectStatement is a single SELECT query.
type SelectStatement struct {
	Pos        lexer.Position
	Projection *Projection  `parser:"'SELECT' @@"`
	From       *FromClause  `parser:"@@"`
	Where      *WhereClause `parser:"('WHERE' @@)?"`
	Limit      *uint32      `parser:"('LIMIT' @Int)?"`
}

// Projection is either a star or an explicit column list.
type Projection struct {
	Star    bool     `parser:"  @'*'"`
	Columns []string `parser:"| @Ident (',' @Ident)*"`
}

// FromClause names the source relation with an optional alias.
type FromClause struct {
	Relation string `parser:"'FROM' @Ident"`
	Alias    string `parser:"('AS' @Ident)?"`
}

// WhereClause is a conjunction of predicates.
type WhereClause struct {
	Predicates []*Predicate `parser:"@@ ('AND' @@)*"`
}

// Predicate compares a column against a literal.
type Predicate struct {
	Column string `parser:"@Ident"`
	Op     string `parser:"@('=' | '!=' | '<' | '>')"`
	Value  *Value `parser:"@@"`
}

// Value is a literal operand.
type Value struct {
	Str *string `parser:"  @String"`
	Int *int64  `parser:"| @Int"`
}
