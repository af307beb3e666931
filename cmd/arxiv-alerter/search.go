// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-alerter/internal/config"
	"github.com/pdiddy/arxiv-alerter/internal/search"
)

var (
	searchFormat string
	searchDate   string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run only the arXiv search and list the matching papers",
	Long: `Search queries the arXiv API with the configured keywords and categories and
lists the papers published on the target day (yesterday in Japan time unless
--date is given). Nothing is fetched, summarized, or mailed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadSearch(v)
		if err != nil {
			return err
		}

		now := time.Now()
		if searchDate != "" {
			d, err := search.ParseDay(searchDate)
			if err != nil {
				return err
			}
			now = search.NowFor(d)
		}

		client := search.NewClient(cfg, log)
		papers := client.Search(cmd.Context(), search.BuildQuery(cfg.Keywords, cfg.Category), now)
		fmt.Fprintf(os.Stderr, "%d paper(s) published %s\n", len(papers), search.TargetDay(now))

		switch searchFormat {
		case "table":
			search.FormatTable(papers, cmd.OutOrStdout())
			return nil
		case "yaml":
			return search.FormatYAML(papers, cmd.OutOrStdout())
		default:
			return fmt.Errorf("unknown format %q (want table or yaml)", searchFormat)
		}
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchFormat, "format", "table", "output format: table or yaml")
	searchCmd.Flags().StringVar(&searchDate, "date", "", "target publication day in Japan time (YYYY-MM-DD)")
	rootCmd.AddCommand(searchCmd)
}
