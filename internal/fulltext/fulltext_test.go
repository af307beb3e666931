// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fulltext

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

const paperPage = `<!DOCTYPE html>
<html>
<head><title>Paper</title><style>body { color: red; }</style></head>
<body>
  <nav class="ltx_page_navbar">Site navigation</nav>
  <div class="ltx_page_main">
    <div class="ltx_page_content">
      <header class="ltx_page_header">Report issue</header>
      <h1 class="ltx_title">A Study   of Things</h1>
      <div class="ltx_abstract"><p>We study <em>things</em>.</p></div>
      <nav class="ltx_TOC">Contents</nav>
      <section><h2>1 Introduction</h2>
        <p>Things matter.</p>
        <script>var tracking = 1;</script>
      </section>
      <footer class="ltx_page_footer">Generated by LaTeXML</footer>
    </div>
  </div>
  <footer>Site footer</footer>
</body>
</html>`

func TestExtract_MainContent(t *testing.T) {
	text, err := Extract([]byte(paperPage))
	require.NoError(t, err)
	assert.Equal(t, "A Study   of Things We study things . 1 Introduction Things matter.", text)
	assert.NotContains(t, text, "Report issue")
	assert.NotContains(t, text, "Contents")
	assert.NotContains(t, text, "LaTeXML")
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "Site navigation")
}

func TestExtract_FallsBackToBody(t *testing.T) {
	text, err := Extract([]byte(`<html><body><header>Top</header><p> Plain </p><p>page</p></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Top Plain page", text)
}

func newFetcher(log logrus.FieldLogger) *Fetcher {
	return NewFetcher(types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"}, log)
}

func TestFetcherText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/html/2401.00001v1", r.URL.Path)
		assert.Equal(t, "test/0.1", r.Header.Get("User-Agent"))
		fmt.Fprint(w, paperPage)
	}))
	defer ts.Close()

	log, _ := test.NewNullLogger()
	text, ok := newFetcher(log).Text(context.Background(), ts.URL+"/html/2401.00001v1")
	require.True(t, ok)
	assert.Contains(t, text, "Things matter.")
}

func TestFetcherText_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) }},
		{"server error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) }},
		{"empty page", func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "<html><body> </body></html>") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			log, hook := test.NewNullLogger()
			text, ok := newFetcher(log).Text(context.Background(), ts.URL+"/html/x")
			assert.False(t, ok)
			assert.Empty(t, text)
			require.NotNil(t, hook.LastEntry())
			assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		})
	}
}

func TestFetcherText_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	log, _ := test.NewNullLogger()
	_, ok := newFetcher(log).Text(context.Background(), url)
	assert.False(t, ok)
}
