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
)

type binaryOp uint8

const (
	opEq binaryOp = iota
	opNe
	opLt
	opGt
	opAnd
)

func (op binaryOp) String() string {
	switch op {
	case opEq:
		return "="
	case opNe:
		return "!="
	case opLt:
		return "<"
	case opGt:
		return ">"
	case opAnd:
		return "AND"
	default:
		return "?"
	}
}

var _ Expr = (*unresolvedAttr)(nil)

// unresolvedAttr is a column reference that has not been bound to a schema yet.
type unresolvedAttr struct {
	name string
}

// UnresolvedAttr creates an unbound column reference.
func UnresolvedAttr(name string) Expr {
	return &unresolvedAttr{name: name}
}

func (u *unresolvedAttr) DataType() DataType { return DataTypeUnknown }

func (u *unresolvedAttr) Resolved() bool { return false }

func (u *unresolvedAttr) Equal(expr Expr) bool {
	if other, ok := expr.(*unresolvedAttr); ok {
		return u.name == other.name
	}
	return false
}

func (u *unresolvedAttr) String() string {
	return fmt.Sprintf("'%s", u.name)
}

var _ Expr = (*attrRef)(nil)

// attrRef is the reference to an attribute, it also holds the attribute's
// definition.
type attrRef struct {
	attr *Attribute
}

// Ref creates a resolved reference to attr.
func Ref(attr *Attribute) Expr {
	return &attrRef{attr: attr}
}

func (r *attrRef) DataType() DataType { return r.attr.Type }

func (r *attrRef) Resolved() bool { return true }

func (r *attrRef) Equal(expr Expr) bool {
	if other, ok := expr.(*attrRef); ok {
		return r.attr.Equal(other.attr)
	}
	return false
}

func (r *attrRef) String() string {
	return fmt.Sprintf("#%s", r.attr)
}

var _ Expr = (*star)(nil)

// star stands for all output attributes of the child node.
type star struct{}

// Star creates the all-columns projection expression.
func Star() Expr { return &star{} }

func (s *star) DataType() DataType { return DataTypeUnknown }

func (s *star) Resolved() bool { return false }

func (s *star) Equal(expr Expr) bool {
	_, ok := expr.(*star)
	return ok
}

func (s *star) String() string { return "*" }

var _ Expr = (*strLiteral)(nil)

type strLiteral struct {
	v string
}

// Str creates a string literal.
func Str(v string) Expr { return &strLiteral{v: v} }

func (s *strLiteral) DataType() DataType { return DataTypeString }

func (s *strLiteral) Resolved() bool { return true }

func (s *strLiteral) Equal(expr Expr) bool {
	if other, ok := expr.(*strLiteral); ok {
		return s.v == other.v
	}
	return false
}

func (s *strLiteral) String() string { return fmt.Sprintf("%q", s.v) }

var _ Expr = (*int64Literal)(nil)

type int64Literal struct {
	v int64
}

// Int creates an int literal.
func Int(v int64) Expr { return &int64Literal{v: v} }

func (i *int64Literal) DataType() DataType { return DataTypeInt }

func (i *int64Literal) Resolved() bool { return true }

func (i *int64Literal) Equal(expr Expr) bool {
	if other, ok := expr.(*int64Literal); ok {
		return i.v == other.v
	}
	return false
}

func (i *int64Literal) String() string { return fmt.Sprintf("%d", i.v) }

var _ Expr = (*binaryExpr)(nil)

// binaryExpr is composed of two operands with one op as the operator.
// l is normally a reference to an attribute, while r is usually a literal.
type binaryExpr struct {
	l  Expr
	r  Expr
	op binaryOp
}

func (b *binaryExpr) DataType() DataType { return DataTypeBool }

func (b *binaryExpr) Resolved() bool {
	return b.l.Resolved() && b.r.Resolved()
}

func (b *binaryExpr) Equal(expr Expr) bool {
	if other, ok := expr.(*binaryExpr); ok {
		return b.op == other.op && b.l.Equal(other.l) && b.r.Equal(other.r)
	}
	return false
}

func (b *binaryExpr) String() string {
	return fmt.Sprintf("%s %s %s", b.l, b.op, b.r)
}

// Eq creates an equality predicate.
func Eq(l, r Expr) Expr { return &binaryExpr{op: opEq, l: l, r: r} }

// Ne creates an inequality predicate.
func Ne(l, r Expr) Expr { return &binaryExpr{op: opNe, l: l, r: r} }

// Lt creates a less-than predicate.
func Lt(l, r Expr) Expr { return &binaryExpr{op: opLt, l: l, r: r} }

// Gt creates a greater-than predicate.
func Gt(l, r Expr) Expr { return &binaryExpr{op: opGt, l: l, r: r} }

// And creates a conjunction.
func And(l, r Expr) Expr { return &binaryExpr{op: opAnd, l: l, r: r} }

// Conjuncts flattens nested conjunctions into a flat predicate list.
func Conjuncts(e Expr) []Expr {
	if b, ok := e.(*binaryExpr); ok && b.op == opAnd {
		return append(Conjuncts(b.l), Conjuncts(b.r)...)
	}
	return []Expr{e}
}
