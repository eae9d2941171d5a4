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
	"sort"
)

// TransformUp rewrites the tree bottom-up: children are transformed first,
// then fn is applied to the rebuilt node. The input tree is left untouched.
func TransformUp(p Plan, fn func(Plan) Plan) Plan {
	mapped := p.MapChildren(func(c Plan) Plan {
		return TransformUp(c, fn)
	})
	return fn(mapped)
}

// StripViews replaces every view wrapper holding an already-analyzed child
// with that child, bottom-up. Wrappers over unresolved bodies are kept.
func StripViews(p Plan) Plan {
	return TransformUp(p, func(node Plan) Plan {
		if node.Type() == PlanView && node.Resolved() {
			return node.Children()[0]
		}
		return node
	})
}

// Canonicalize normalizes order-insensitive substructure so that two
// semantically identical trees compare equal: conjunctions in filter
// conditions are flattened and re-ordered deterministically.
func Canonicalize(p Plan) Plan {
	return TransformUp(p, func(node Plan) Plan {
		f, ok := node.(*filter)
		if !ok {
			return node
		}
		return &filter{input: f.input, condition: canonicalizeCondition(f.condition)}
	})
}

func canonicalizeCondition(e Expr) Expr {
	conjuncts := Conjuncts(e)
	if len(conjuncts) == 1 {
		return e
	}
	sort.SliceStable(conjuncts, func(i, j int) bool {
		return conjuncts[i].String() < conjuncts[j].String()
	})
	result := conjuncts[0]
	for _, c := range conjuncts[1:] {
		result = And(result, c)
	}
	return result
}
