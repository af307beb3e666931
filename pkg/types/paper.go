// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-alerter pipeline:
// the Paper record produced by search and consumed by every later stage, and
// the RunConfig family loaded once at startup.
package types

import "time"

// Paper is one matched article from the search feed. Records are built per
// run from the search response and discarded once the digest is assembled.
type Paper struct {
	// ID is the arXiv identifier taken from the canonical URL
	// (e.g. "2401.01234v1").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title, trimmed. Never empty.
	Title string `json:"title" yaml:"title"`

	// Abstract is the feed's summary text, trimmed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists display names in feed order.
	Authors []string `json:"authors" yaml:"authors"`

	// Categories lists the Atom category terms (e.g. "cs.AI").
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Link is the canonical abstract page URL.
	Link string `json:"link" yaml:"link"`

	// HTMLLink is the rendered-HTML URL derived from ID.
	HTMLLink string `json:"html_link" yaml:"html_link"`

	// Published is the submission timestamp in UTC.
	Published time.Time `json:"published" yaml:"published"`
}

// PublishedLayout is the display format for Paper.Published.
const PublishedLayout = "2006-01-02 15:04:05 UTC"

// PublishedString formats the published timestamp for display.
func (p Paper) PublishedString() string {
	return p.Published.UTC().Format(PublishedLayout)
}
