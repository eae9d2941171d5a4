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
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/quarrydb/quarry/pkg/logical"
)

var (
	queryLexer  lexer.Definition
	queryParser *participle.Parser[Query]
)

func init() {
	queryLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Keyword", Pattern: `(?i)(SELECT|FROM|AS|WHERE|AND|LIMIT)\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "String", Pattern: `'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"`},
		{Name: "Operators", Pattern: `!=|>=|<=|[=><,.()*]`},
		{Name: "whitespace", Pattern: `\s+`},
	})

	var err error
	queryParser, err = participle.Build[Query](
		participle.Lexer(queryLexer),
		participle.Unquote("String"),
		participle.CaseInsensitive("Keyword"),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to build query parser: %v", err))
	}
}

// SyntaxError is raised on malformed input.
type SyntaxError struct {
	Message string
	Pos     lexer.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Message)
}

// ParseQuery parses a query string into its grammar tree.
func ParseQuery(query string) (*Query, error) {
	g, err := queryParser.ParseString("", query)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, &SyntaxError{Message: perr.Message(), Pos: perr.Position()}
		}
		return nil, &SyntaxError{Message: err.Error()}
	}
	return g, nil
}

// Parse parses a query string into an unresolved logical plan.
func Parse(query string) (logical.Plan, error) {
	g, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}
	return g.ToPlan()
}
