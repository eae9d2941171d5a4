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
	"strings"
)

// Format renders the plan tree with one node per line, children indented.
func Format(plan Plan) string {
	var sb strings.Builder
	formatPlan(&sb, plan, 0)
	return sb.String()
}

func formatPlan(sb *strings.Builder, plan Plan, indent int) {
	for i := 0; i < indent; i++ {
		sb.WriteString("\t")
	}
	sb.WriteString(plan.String())
	sb.WriteString("\n")
	for _, child := range plan.Children() {
		formatPlan(sb, child, indent+1)
	}
}
