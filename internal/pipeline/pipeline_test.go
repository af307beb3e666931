// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-alerter/internal/mail"
	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

type fakeSearcher struct {
	papers []types.Paper
	query  string
	now    time.Time
}

func (f *fakeSearcher) Search(_ context.Context, query string, now time.Time) []types.Paper {
	f.query = query
	f.now = now
	return f.papers
}

type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) Text(_ context.Context, url string) (string, bool) {
	text, ok := f.pages[url]
	return text, ok
}

type fakeSummarizer struct {
	bodies map[string]string
}

func (f *fakeSummarizer) Summarize(_ context.Context, p types.Paper, body string) string {
	f.bodies[p.ID] = body
	return "summary of " + p.ID
}

type fakeMailer struct {
	calls   int
	subject string
	body    string
}

func (f *fakeMailer) Dispatch(subject, body string) mail.Outcome {
	f.calls++
	f.subject = subject
	f.body = body
	return mail.OutcomePrinted
}

func quietLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	log.SetOutput(io.Discard)
	return log
}

func testConfig() types.RunConfig {
	return types.RunConfig{
		Search:     types.SearchConfig{Keywords: "LLM, agent", Category: "cs.AI"},
		Mail:       types.MailConfig{Subject: "daily papers", TestMode: true},
		PaperDelay: time.Minute,
	}
}

func TestRun_NoResultsStopsEarly(t *testing.T) {
	searcher := &fakeSearcher{}
	mailer := &fakeMailer{}
	assembled := false
	slept := 0

	r := &Runner{
		Config:    testConfig(),
		Searcher:  searcher,
		Fetcher:   &fakeFetcher{},
		Summaries: &fakeSummarizer{bodies: map[string]string{}},
		Mailer:    mailer,
		Assemble: func([]types.Paper, []string, string) string {
			assembled = true
			return ""
		},
		Sleep: func(time.Duration) { slept++ },
		Log:   quietLogger(),
	}

	rep := r.Run(context.Background())

	assert.Empty(t, rep.Papers)
	assert.False(t, rep.Dispatched)
	assert.False(t, assembled)
	assert.Zero(t, mailer.calls)
	assert.Zero(t, slept)
	assert.Contains(t, searcher.query, `ti:"LLM"`)
	assert.Contains(t, searcher.query, "cat:cs.AI")
}

func TestRun_FallsBackToAbstractPerPaper(t *testing.T) {
	papers := []types.Paper{
		{ID: "2401.00001v1", Title: "First", Abstract: "abstract one", HTMLLink: "https://arxiv.org/html/2401.00001v1"},
		{ID: "2401.00002v1", Title: "Second", Abstract: "abstract two", HTMLLink: "https://arxiv.org/html/2401.00002v1"},
	}
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://arxiv.org/html/2401.00001v1": "full text one",
	}}
	summarizer := &fakeSummarizer{bodies: map[string]string{}}
	mailer := &fakeMailer{}
	var delays []time.Duration
	now := time.Date(2024, 1, 3, 1, 0, 0, 0, time.UTC)
	searcher := &fakeSearcher{papers: papers}

	r := &Runner{
		Config:    testConfig(),
		Searcher:  searcher,
		Fetcher:   fetcher,
		Summaries: summarizer,
		Mailer:    mailer,
		Sleep:     func(d time.Duration) { delays = append(delays, d) },
		Now:       func() time.Time { return now },
		Log:       quietLogger(),
	}

	rep := r.Run(context.Background())

	assert.Equal(t, now, searcher.now)
	assert.Equal(t, "full text one", summarizer.bodies["2401.00001v1"])
	assert.Equal(t, "abstract two", summarizer.bodies["2401.00002v1"])
	assert.Equal(t, []time.Duration{time.Minute}, delays, "delay only between papers")
	assert.Equal(t, 1, rep.FullTexts)
	assert.Equal(t, 2, rep.Generated)
	assert.Equal(t, []string{"summary of 2401.00001v1", "summary of 2401.00002v1"}, rep.Summaries)

	require.True(t, rep.Dispatched)
	assert.Equal(t, mail.OutcomePrinted, rep.Outcome)
	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, "daily papers", mailer.subject)
	assert.Equal(t, rep.Digest, mailer.body)
	assert.Contains(t, mailer.body, "First")
	assert.Contains(t, mailer.body, "Second")
	assert.Contains(t, mailer.body, "summary of 2401.00002v1")
}

func TestRun_SinglePaperNeverSleeps(t *testing.T) {
	slept := 0
	r := &Runner{
		Config:    testConfig(),
		Searcher:  &fakeSearcher{papers: []types.Paper{{ID: "x", Title: "Only", Abstract: "a"}}},
		Fetcher:   &fakeFetcher{},
		Summaries: &fakeSummarizer{bodies: map[string]string{}},
		Mailer:    &fakeMailer{},
		Sleep:     func(time.Duration) { slept++ },
		Log:       quietLogger(),
	}

	rep := r.Run(context.Background())

	assert.Zero(t, slept)
	assert.True(t, rep.Dispatched)
	assert.Zero(t, rep.FullTexts)
}

func TestRun_LogsSummaryLine(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := &Runner{
		Config:    testConfig(),
		Searcher:  &fakeSearcher{papers: []types.Paper{{ID: "x", Title: "Only", Abstract: "a"}}},
		Fetcher:   &fakeFetcher{},
		Summaries: &fakeSummarizer{bodies: map[string]string{}},
		Mailer:    &fakeMailer{},
		Log:       log,
	}

	r.Run(context.Background())

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "run complete", last.Message)
	assert.Equal(t, 1, last.Data["papers"])
	assert.Equal(t, 1, last.Data["summaries"])
	assert.Equal(t, "printed", last.Data["delivery"])
}
