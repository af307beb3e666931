// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one alert cycle: search, then fetch and summarize
// each paper in order, then assemble and dispatch the digest. Stages are
// interfaces so tests can replace any of them.
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-alerter/internal/digest"
	"github.com/pdiddy/arxiv-alerter/internal/fulltext"
	"github.com/pdiddy/arxiv-alerter/internal/mail"
	"github.com/pdiddy/arxiv-alerter/internal/search"
	"github.com/pdiddy/arxiv-alerter/internal/summarize"
	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// Searcher returns the papers matching query for the day before now.
type Searcher interface {
	Search(ctx context.Context, query string, now time.Time) []types.Paper
}

// TextFetcher returns a page's main text, or ok=false.
type TextFetcher interface {
	Text(ctx context.Context, url string) (text string, ok bool)
}

// Summarizer always returns a summary or a placeholder.
type Summarizer interface {
	Summarize(ctx context.Context, p types.Paper, body string) string
}

// Dispatcher delivers the digest.
type Dispatcher interface {
	Dispatch(subject, body string) mail.Outcome
}

// Runner holds the stages and pacing for one cycle.
type Runner struct {
	Config    types.RunConfig
	Searcher  Searcher
	Fetcher   TextFetcher
	Summaries Summarizer
	Mailer    Dispatcher

	// Assemble renders the digest; defaults to digest.Build.
	Assemble func(papers []types.Paper, summaries []string, keywords string) string

	// Sleep waits Config.PaperDelay between papers.
	Sleep func(time.Duration)
	Now   func() time.Time
	Log   logrus.FieldLogger
}

// Report summarizes what a cycle did.
type Report struct {
	Papers     []types.Paper
	Summaries  []string
	FullTexts  int
	Generated  int
	Digest     string
	Dispatched bool
	Outcome    mail.Outcome
}

// New wires the production stages for cfg. Test-mode output goes to out.
func New(ctx context.Context, cfg types.RunConfig, out io.Writer, log logrus.FieldLogger) *Runner {
	fetchHTTP := types.HTTPConfig{Timeout: cfg.FetchTimeout, UserAgent: cfg.Search.UserAgent}
	return &Runner{
		Config:    cfg,
		Searcher:  search.NewClient(cfg.Search, log),
		Fetcher:   fulltext.NewFetcher(fetchHTTP, log),
		Summaries: summarize.New(ctx, cfg.Summary, log),
		Mailer:    mail.NewDispatcher(cfg.Mail, out, log),
		Assemble:  digest.Build,
		Sleep:     time.Sleep,
		Now:       time.Now,
		Log:       log,
	}
}

// Run performs one cycle. It never fails: an empty search ends the cycle
// early, and per-paper or delivery problems only degrade the digest.
func (r *Runner) Run(ctx context.Context) Report {
	var rep Report

	query := search.BuildQuery(r.Config.Search.Keywords, r.Config.Search.Category)
	rep.Papers = r.Searcher.Search(ctx, query, r.now())
	if len(rep.Papers) == 0 {
		r.Log.Info("no papers to process")
		return rep
	}

	rep.Summaries = make([]string, 0, len(rep.Papers))
	for i, p := range rep.Papers {
		if i > 0 && r.Sleep != nil && r.Config.PaperDelay > 0 {
			r.Sleep(r.Config.PaperDelay)
		}
		log := r.Log.WithField("paper", p.ID)
		log.Infof("processing paper %d/%d: %s", i+1, len(rep.Papers), p.Title)

		body, ok := r.Fetcher.Text(ctx, p.HTMLLink)
		if ok {
			rep.FullTexts++
		} else {
			log.Info("HTML full text unavailable; summarizing the abstract")
			body = p.Abstract
		}
		summary := r.Summaries.Summarize(ctx, p, body)
		if !summarize.IsPlaceholder(summary) {
			rep.Generated++
		}
		rep.Summaries = append(rep.Summaries, summary)
	}

	assemble := r.Assemble
	if assemble == nil {
		assemble = digest.Build
	}
	rep.Digest = assemble(rep.Papers, rep.Summaries, r.Config.Search.Keywords)

	rep.Outcome = r.Mailer.Dispatch(r.Config.Mail.Subject, rep.Digest)
	rep.Dispatched = true

	r.Log.WithFields(logrus.Fields{
		"papers":     len(rep.Papers),
		"full_texts": rep.FullTexts,
		"summaries":  rep.Generated,
		"delivery":   rep.Outcome.String(),
	}).Info("run complete")
	return rep
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
