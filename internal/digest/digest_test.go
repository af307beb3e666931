// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

func samplePapers() []types.Paper {
	return []types.Paper{
		{
			ID:        "2401.00001v1",
			Title:     "Diffusion Models for Graphs",
			Abstract:  "We apply DIFFUSION to graph generation.",
			Authors:   []string{"Ada Lovelace", "Alan Turing"},
			Link:      "http://arxiv.org/abs/2401.00001v1",
			Published: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "2401.00002v1",
			Title:     "Quantum Error Correction at Scale",
			Abstract:  "Surface codes with a diffusion-inspired decoder.",
			Authors:   []string{"Grace Hopper"},
			Link:      "http://arxiv.org/abs/2401.00002v1",
			Published: time.Date(2024, 1, 2, 9, 30, 15, 0, time.UTC),
		},
		{
			ID:        "2401.00003v1",
			Title:     "Transformers Revisited",
			Abstract:  "Attention layers again.",
			Link:      "http://arxiv.org/abs/2401.00003v1",
			Published: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
		},
	}
}

func TestBuild_SectionsAndOrder(t *testing.T) {
	papers := samplePapers()
	summaries := []string{"summary one", "summary two", "summary three"}

	body := Build(papers, summaries, "diffusion, quantum error correction")

	assert.Equal(t, len(papers), strings.Count(body, SectionHeader))
	assert.True(t, strings.HasPrefix(body,
		"Found 3 new paper(s) matching the keywords \"diffusion, quantum error correction\".\n\n"))

	assert.Contains(t, body, "[Papers in this digest]\n1. Diffusion Models for Graphs\n2. Quantum Error Correction at Scale\n3. Transformers Revisited\n")

	// Sections appear in input order with their own summary.
	prev := -1
	for i, p := range papers {
		header := fmt.Sprintf("%s%d: %s\n%s", SectionHeader, i+1, p.Title, SectionRule)
		idx := strings.Index(body, header)
		require.GreaterOrEqual(t, idx, 0, "missing section %d", i+1)
		assert.Greater(t, idx, prev)
		prev = idx
		assert.Greater(t, strings.Index(body[idx:], summaries[i]), 0)
	}
}

func TestBuild_KeywordCounts(t *testing.T) {
	body := Build(samplePapers(), []string{"a", "b", "c"}, "diffusion, quantum error correction,attention")

	assert.Contains(t, body, "[Matches per keyword]\n- diffusion: 2\n- quantum error correction: 1\n- attention: 1\n\n")
}

func TestBuild_NoKeywordsOmitsCountSection(t *testing.T) {
	body := Build(samplePapers(), nil, " , ")
	assert.NotContains(t, body, "[Matches per keyword]")
}

func TestBuild_IsDeterministic(t *testing.T) {
	papers := samplePapers()
	summaries := []string{"x", "y", "z"}
	assert.Equal(t, Build(papers, summaries, "diffusion"), Build(papers, summaries, "diffusion"))
}

func TestSection(t *testing.T) {
	p := samplePapers()[1]
	got := Section(2, p, "generated text")

	want := "\n" + SectionRule + "\nPaper 2: Quantum Error Correction at Scale\n" + SectionRule + "\n\n" +
		"Authors: Grace Hopper\n" +
		"Published: 2024-01-02 09:30:15 UTC\n" +
		"Link: http://arxiv.org/abs/2401.00002v1\n\n" +
		"--- Generated summary ---\ngenerated text\n" + strings.Repeat("-", 26) + "\n\n" +
		"--- Original abstract ---\nSurface codes with a diffusion-inspired decoder.\n" + strings.Repeat("-", 26) + "\n\n"
	assert.Equal(t, want, got)
}

func TestSection_NoAuthors(t *testing.T) {
	got := Section(3, samplePapers()[2], "s")
	assert.Contains(t, got, "Authors: \n")
}
