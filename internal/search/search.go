// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search builds arXiv query expressions, runs the single search
// request for a cycle, and filters the feed down to the papers submitted on
// the target day in Tokyo time.
package search

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// FormatTable writes papers as a human-readable table to w.
func FormatTable(papers []types.Paper, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-16s  %-60s  %-20s  %s\n",
		"#", "ID", "Title", "Authors", "Published")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for i, p := range papers {
		fmt.Fprintf(w, "%-4d  %-16s  %-60s  %-20s  %s\n",
			i+1, p.ID, truncate(p.Title, 60), formatAuthors(p.Authors), p.PublishedString())
	}

	fmt.Fprintf(w, "\n%d papers\n", len(papers))
}

// FormatYAML writes papers as a YAML sequence to w.
func FormatYAML(papers []types.Paper, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if papers == nil {
		papers = []types.Paper{}
	}
	if err := enc.Encode(papers); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
