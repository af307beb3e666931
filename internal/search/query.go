// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-alerter/internal/config"
)

// allCategories disables category filtering when it is the whole category value.
const allCategories = "all"

// BuildQuery turns a comma-separated keyword list and a comma-separated
// category list into one arXiv search_query expression. Each keyword matches
// the title or the abstract as an exact phrase; keywords are ORed together.
// When categories remain after trimming (and the value is not "all"), an
// ORed cat: clause is ANDed on. It returns "" when no keyword survives
// trimming.
func BuildQuery(keywords, categories string) string {
	terms := config.ParseCSV(keywords)
	if len(terms) == 0 {
		return ""
	}

	disjuncts := make([]string, len(terms))
	for i, kw := range terms {
		disjuncts[i] = fmt.Sprintf(`(ti:"%s" OR abs:"%s")`, kw, kw)
	}
	query := "(" + strings.Join(disjuncts, " OR ") + ")"

	if strings.EqualFold(strings.TrimSpace(categories), allCategories) {
		return query
	}
	cats := config.ParseCSV(categories)
	if len(cats) == 0 {
		return query
	}
	for i, c := range cats {
		cats[i] = "cat:" + c
	}
	return query + " AND (" + strings.Join(cats, " OR ") + ")"
}
