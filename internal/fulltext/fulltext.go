// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fulltext retrieves a paper's rendered HTML page and extracts its
// main body text.
package fulltext

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/pdiddy/arxiv-alerter/internal/httputil"
	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// contentSelector identifies the main content container of an arXiv HTML paper.
const contentSelector = "div.ltx_page_content"

// chromeSelector matches page chrome stripped from the content container.
const chromeSelector = "header, footer, nav"

// Fetcher downloads rendered HTML pages.
type Fetcher struct {
	HTTP      *http.Client
	UserAgent string
	Log       logrus.FieldLogger
}

// NewFetcher returns a Fetcher whose requests are bounded by cfg.Timeout.
func NewFetcher(cfg types.HTTPConfig, log logrus.FieldLogger) *Fetcher {
	return &Fetcher{
		HTTP:      httputil.NewClient(cfg),
		UserAgent: cfg.UserAgent,
		Log:       log,
	}
}

// Text fetches url and returns its main text. ok is false when the page
// could not be retrieved or parsed, or held no text; the reason is logged.
func (f *Fetcher) Text(ctx context.Context, url string) (text string, ok bool) {
	log := f.Log.WithField("url", url)
	log.Info("fetching HTML full text")

	body, err := httputil.Get(ctx, f.HTTP, url, f.UserAgent)
	if err != nil {
		log.WithError(err).Warn("HTML fetch failed")
		return "", false
	}

	text, err = Extract(body)
	if err != nil {
		log.WithError(err).Warn("HTML parse failed")
		return "", false
	}
	if text == "" {
		log.Warn("HTML page has no text")
		return "", false
	}
	return text, true
}

// Extract returns the visible text of the main content container, with
// header, footer and nav elements removed. Without the container it falls
// back to the whole body. Text nodes are trimmed and joined by single spaces.
func Extract(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	sel := doc.Find(contentSelector).First()
	if sel.Length() > 0 {
		sel.Find(chromeSelector).Remove()
	} else {
		sel = doc.Find("body")
	}
	return visibleText(sel), nil
}

func visibleText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}
