// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/atom"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-alerter/internal/httputil"
	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// defaultMaxResults applies when the config leaves MaxResults unset.
const defaultMaxResults = 25

// absMarker separates the host part of an arXiv entry id from the paper id.
const absMarker = "/abs/"

// Client queries the arXiv API and keeps the entries submitted on the target
// day.
type Client struct {
	HTTP   *http.Client
	Config types.SearchConfig
	Log    logrus.FieldLogger
}

// NewClient returns a Client with a bounded-timeout HTTP client.
func NewClient(cfg types.SearchConfig, log logrus.FieldLogger) *Client {
	return &Client{
		HTTP:   httputil.NewClient(cfg.HTTPConfig),
		Config: cfg,
		Log:    log,
	}
}

// Search issues one request for query and returns the papers whose Tokyo
// submission date is the day before now, in feed order. Any request or feed
// failure is logged and yields an empty result.
func (c *Client) Search(ctx context.Context, query string, now time.Time) []types.Paper {
	if query == "" {
		c.Log.Error("search query is empty; nothing to search")
		return nil
	}

	c.Log.WithField("query", query).Info("searching arXiv")

	body, err := httputil.Get(ctx, c.HTTP, c.requestURL(query), c.Config.UserAgent)
	if err != nil {
		c.Log.WithError(err).Error("arXiv API request failed")
		return nil
	}

	papers, err := ParseFeed(body, TargetDay(now), c.Config.HTMLBase, c.Log)
	if err != nil {
		c.Log.WithError(err).Error("arXiv API response could not be parsed")
		return nil
	}

	c.Log.Infof("found %d new paper(s)", len(papers))
	return papers
}

func (c *Client) requestURL(query string) string {
	maxResults := c.Config.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	params := url.Values{}
	params.Set("search_query", query)
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	params.Set("max_results", strconv.Itoa(maxResults))
	return c.Config.APIBase + "?" + params.Encode()
}

// ParseFeed decodes an Atom feed and returns the entries published on target.
// Entries missing a required field (id, title, summary, published) are
// logged and skipped; they never fail the batch.
func ParseFeed(body []byte, target Day, htmlBase string, log logrus.FieldLogger) ([]types.Paper, error) {
	feed, err := (&atom.Parser{}).Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing Atom feed: %w", err)
	}

	var papers []types.Paper
	for i, entry := range feed.Entries {
		published, err := parsePublished(entry.Published)
		if err != nil {
			log.WithField("entry", i+1).Warnf("skipping entry: %v", err)
			continue
		}
		if DayOf(published) != target {
			continue
		}

		p, err := buildPaper(entry, published, htmlBase)
		if err != nil {
			log.WithField("entry", i+1).Warnf("skipping entry: %v", err)
			continue
		}
		papers = append(papers, p)
	}
	return papers, nil
}

var errMissingField = errors.New("missing required field")

func parsePublished(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: published", errMissingField)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad published timestamp %q: %w", raw, err)
	}
	return t.UTC(), nil
}

func buildPaper(entry *atom.Entry, published time.Time, htmlBase string) (types.Paper, error) {
	link := strings.TrimSpace(entry.ID)
	title := strings.Join(strings.Fields(entry.Title), " ")
	abstract := strings.TrimSpace(entry.Summary)

	switch {
	case link == "":
		return types.Paper{}, fmt.Errorf("%w: id", errMissingField)
	case title == "":
		return types.Paper{}, fmt.Errorf("%w: title", errMissingField)
	case abstract == "":
		return types.Paper{}, fmt.Errorf("%w: summary", errMissingField)
	}

	id := ExtractID(link)
	p := types.Paper{
		ID:        id,
		Title:     title,
		Abstract:  abstract,
		Link:      link,
		HTMLLink:  HTMLLink(htmlBase, id),
		Published: published,
	}
	for _, a := range entry.Authors {
		if a == nil {
			continue
		}
		if name := strings.TrimSpace(a.Name); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}
	for _, c := range entry.Categories {
		if c != nil && c.Term != "" {
			p.Categories = append(p.Categories, c.Term)
		}
	}
	return p, nil
}

// ExtractID returns the part of an entry id after its last "/abs/"
// (e.g. "http://arxiv.org/abs/2401.01234v1" → "2401.01234v1"). The version
// suffix is kept so the HTML link points at the rendered revision. An id
// without the marker is returned unchanged.
func ExtractID(link string) string {
	if idx := strings.LastIndex(link, absMarker); idx >= 0 {
		return link[idx+len(absMarker):]
	}
	return link
}

// HTMLLink joins the rendered-HTML base and a paper id.
func HTMLLink(base, id string) string {
	if base == "" {
		base = "https://arxiv.org/html/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + id
}
