// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest assembles the plain-text email body for one run.
package digest

import (
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-alerter/internal/config"
	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// SectionRule borders each paper's section heading.
var SectionRule = strings.Repeat("=", 50)

// SectionHeader opens every per-paper section; it appears exactly once per paper.
var SectionHeader = SectionRule + "\nPaper "

var blockRule = strings.Repeat("-", 26)

// Build renders the digest for papers. summaries[i] belongs to papers[i].
// keywords is the raw comma-separated keyword setting. Build performs no I/O.
func Build(papers []types.Paper, summaries []string, keywords string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Found %d new paper(s) matching the keywords %q.\n\n", len(papers), keywords)
	b.WriteString(KeywordCounts(papers, config.ParseCSV(keywords)))

	b.WriteString("[Papers in this digest]\n")
	for i, p := range papers {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Title)
	}
	b.WriteString("\n")

	for i, p := range papers {
		summary := ""
		if i < len(summaries) {
			summary = summaries[i]
		}
		b.WriteString(Section(i+1, p, summary))
	}
	return b.String()
}

// KeywordCounts returns the per-keyword hit section, or "" when keywords is
// empty. A paper hits a keyword when its title or abstract contains it,
// ignoring case.
func KeywordCounts(papers []types.Paper, keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}

	texts := make([]string, len(papers))
	for i, p := range papers {
		texts[i] = strings.ToLower(p.Title + "\n" + p.Abstract)
	}

	var b strings.Builder
	b.WriteString("[Matches per keyword]\n")
	for _, kw := range keywords {
		needle := strings.ToLower(kw)
		hits := 0
		for _, text := range texts {
			if strings.Contains(text, needle) {
				hits++
			}
		}
		fmt.Fprintf(&b, "- %s: %d\n", kw, hits)
	}
	b.WriteString("\n")
	return b.String()
}

// Section renders one paper's bordered block.
func Section(index int, p types.Paper, summary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s%d: %s\n%s\n\n", SectionHeader, index, p.Title, SectionRule)
	fmt.Fprintf(&b, "Authors: %s\n", strings.Join(p.Authors, ", "))
	fmt.Fprintf(&b, "Published: %s\n", p.PublishedString())
	fmt.Fprintf(&b, "Link: %s\n\n", p.Link)
	fmt.Fprintf(&b, "--- Generated summary ---\n%s\n%s\n\n", summary, blockRule)
	fmt.Fprintf(&b, "--- Original abstract ---\n%s\n%s\n\n", p.Abstract, blockRule)
	return b.String()
}
