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

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/quarrydb/quarry/pkg/catalog"
	"github.com/quarrydb/quarry/pkg/config"
	"github.com/quarrydb/quarry/pkg/logger"
	"github.com/quarrydb/quarry/pkg/logical"
	"github.com/quarrydb/quarry/pkg/sql"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		query         string
		schemaPath    string
		caseSensitive bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Parse a query, resolve it against the catalog, and print the analyzed plan",
		RunE: func(c *cobra.Command, _ []string) error {
			if query == "" {
				return errors.New("--sql is required")
			}
			cat, err := loadCatalog(schemaPath)
			if err != nil {
				return err
			}
			plan, err := sql.Parse(query)
			if err != nil {
				return err
			}

			conf := config.NewStore()
			conf.Set(config.KeyCaseSensitive, caseSensitive)
			analyzer := logical.NewAnalyzer(cat, conf)
			tracker := logical.NewTracker()
			resolved, err := analyzer.ExecuteAndCheck(plan, tracker)
			if err != nil {
				return err
			}

			log := logger.GetLogger("quarry")
			for phase, d := range tracker.Phases() {
				log.Debug().Str("phase", phase).Dur("elapsed", d).Msg("analysis phase")
			}
			fmt.Fprint(c.OutOrStdout(), logical.Format(resolved))
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "sql", "", "the query to analyze")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a YAML schema file; omit for the built-in demo catalog")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", true, "match relation and column names case-sensitively")
	return cmd
}

func loadCatalog(schemaPath string) (*catalog.Catalog, error) {
	globals := catalog.NewGlobalRegistry()
	if schemaPath == "" {
		return demoCatalog(globals)
	}
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading schema file %s", schemaPath)
	}
	return catalog.FromYAML(data, globals)
}

// demoCatalog carries a single database with one session view, enough to try
// the analyzer without writing a schema file.
func demoCatalog(globals *catalog.GlobalRegistry) (*catalog.Catalog, error) {
	c := catalog.New(globals)
	if err := c.CreateDatabase(&catalog.Database{Name: "default"}, true); err != nil {
		return nil, err
	}
	events := logical.LocalRelation(
		logical.IntAttr("id"),
		logical.StrAttr("name"),
		logical.IntAttr("ts"),
	)
	if err := c.CreateTempView("events", events, true); err != nil {
		return nil, err
	}
	return c, nil
}
