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

package sql_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/quarrydb/quarry/pkg/logical"
	"github.com/quarrydb/quarry/pkg/sql"
)

var _ = Describe("Parser", func() {
	It("parses a star projection", func() {
		plan, err := sql.Parse("SELECT * FROM events")
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Equal(logical.Project(
			logical.UnresolvedRelation("events"),
			logical.Star(),
		))).To(BeTrue())
	})

	It("parses a column list", func() {
		plan, err := sql.Parse("SELECT id, name FROM events")
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Equal(logical.Project(
			logical.UnresolvedRelation("events"),
			logical.UnresolvedAttr("id"),
			logical.UnresolvedAttr("name"),
		))).To(BeTrue())
	})

	It("parses a where clause with conjunctions", func() {
		plan, err := sql.Parse("SELECT id FROM events WHERE id > 5 AND name = 'web'")
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Equal(logical.Project(
			logical.Filter(
				logical.UnresolvedRelation("events"),
				logical.And(
					logical.Gt(logical.UnresolvedAttr("id"), logical.Int(5)),
					logical.Eq(logical.UnresolvedAttr("name"), logical.Str("web")),
				),
			),
			logical.UnresolvedAttr("id"),
		))).To(BeTrue())
	})

	It("parses an alias into a subquery alias node", func() {
		plan, err := sql.Parse("SELECT * FROM events AS e")
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Equal(logical.Project(
			logical.SubqueryAlias("e", logical.UnresolvedRelation("events")),
			logical.Star(),
		))).To(BeTrue())
	})

	It("parses a limit", func() {
		plan, err := sql.Parse("SELECT * FROM events LIMIT 10")
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Equal(logical.Limit(
			logical.Project(logical.UnresolvedRelation("events"), logical.Star()),
			10,
		))).To(BeTrue())
	})

	It("accepts keywords in any case", func() {
		plan, err := sql.Parse("select * from events limit 3")
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Equal(logical.Limit(
			logical.Project(logical.UnresolvedRelation("events"), logical.Star()),
			3,
		))).To(BeTrue())
	})

	It("preserves identifier case", func() {
		plan, err := sql.Parse("SELECT * FROM TaBlE")
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Equal(logical.Project(
			logical.UnresolvedRelation("TaBlE"),
			logical.Star(),
		))).To(BeTrue())
	})

	DescribeTable("rejects malformed queries", func(query string) {
		_, err := sql.Parse(query)
		Expect(err).To(HaveOccurred())
		var serr *sql.SyntaxError
		Expect(errors.As(err, &serr)).To(BeTrue())
		Expect(serr.Error()).To(ContainSubstring("syntax error"))
	},
		Entry("missing projection", "SELECT FROM events"),
		Entry("missing relation", "SELECT * FROM"),
		Entry("bare keyword", "SELECT"),
		Entry("trailing input", "SELECT * FROM events garbage"),
		Entry("dangling where", "SELECT * FROM events WHERE"),
		Entry("not a query", "DELETE FROM events"),
	)
})
