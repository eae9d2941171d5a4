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

// Package main implements the quarry command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarrydb/quarry/pkg/logger"
	"github.com/quarrydb/quarry/pkg/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logEnv   string
		logLevel string
	)
	cmd := &cobra.Command{
		Use:           "quarry",
		Short:         "quarry analyzes logical query plans against a view catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.Init(logger.Logging{Env: logEnv, Level: logLevel})
		},
	}
	cmd.PersistentFlags().StringVar(&logEnv, "logging-env", "prod", "the logging environment")
	cmd.PersistentFlags().StringVar(&logLevel, "logging-level", "warn", "the root logging level")
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprintln(c.OutOrStdout(), "quarry "+version.Parse())
		},
	})
	return cmd
}
