// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-alerter/internal/config"
	"github.com/pdiddy/arxiv-alerter/internal/search"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the arXiv search query built from the configured keywords",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadSearch(v)
		if err != nil {
			return err
		}
		q := search.BuildQuery(cfg.Keywords, cfg.Category)
		if q == "" {
			return fmt.Errorf("%s contains no keywords", config.KeySearchKeywords)
		}
		fmt.Fprintln(cmd.OutOrStdout(), q)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
