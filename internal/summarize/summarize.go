// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize asks a text-generation API for a structured explanation
// of one paper. It never fails: a missing key, an empty answer, or an API
// error each produce a fixed placeholder so the digest can still be built.
package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// Placeholders returned instead of a generated summary.
const (
	SkippedMessage = "(Summary skipped: no generation API key is configured.)"
	EmptyMessage   = "(Summary unavailable: the generation API returned an empty response.)"
)

const errorPrefix = "(Summary failed: an error occurred while calling the generation API: "

// ErrorMessage is the placeholder for a failed generation call.
func ErrorMessage(err error) string {
	return fmt.Sprintf("%s%v)", errorPrefix, err)
}

// IsPlaceholder reports whether s is one of the placeholders above rather
// than generated text.
func IsPlaceholder(s string) bool {
	return s == SkippedMessage || s == EmptyMessage || strings.HasPrefix(s, errorPrefix)
}

// Generator is the slice of an eino chat model the summarizer needs.
type Generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// NewGenerator returns an OpenAI-compatible chat model for cfg.
func NewGenerator(ctx context.Context, cfg types.SummaryConfig) (Generator, error) {
	m, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating chat model: %w", err)
	}
	return m, nil
}

// Summarizer produces one summary per paper.
type Summarizer struct {
	// Generator is nil when summaries are disabled.
	Generator Generator
	Config    types.SummaryConfig
	Log       logrus.FieldLogger

	// Sleep waits Config.PostCallDelay after each successful call.
	Sleep func(time.Duration)
}

// New returns a Summarizer. Without an API key, or when the model cannot be
// constructed, the Summarizer has no Generator and returns SkippedMessage.
func New(ctx context.Context, cfg types.SummaryConfig, log logrus.FieldLogger) *Summarizer {
	s := &Summarizer{Config: cfg, Log: log, Sleep: time.Sleep}
	if cfg.APIKey == "" {
		log.Warn("GEMINI_API_KEY is not set; summaries will be skipped")
		return s
	}
	g, err := NewGenerator(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("generation API setup failed; summaries will be skipped")
		return s
	}
	s.Generator = g
	log.WithField("model", cfg.Model).Info("generation API configured")
	return s
}

// Summarize returns the generated summary for p based on body, or a
// placeholder. It makes at most one API call.
func (s *Summarizer) Summarize(ctx context.Context, p types.Paper, body string) string {
	if s.Generator == nil {
		return SkippedMessage
	}

	prompt, err := renderPrompt(p, body, s.Config.MaxInputChars, s.Config.Language)
	if err != nil {
		s.Log.WithError(err).Error("rendering summary prompt")
		return ErrorMessage(err)
	}

	resp, err := s.Generator.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		s.Log.WithError(err).WithField("paper", p.ID).Error("summary generation failed")
		return ErrorMessage(err)
	}

	if s.Sleep != nil && s.Config.PostCallDelay > 0 {
		s.Sleep(s.Config.PostCallDelay)
	}

	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return EmptyMessage
	}
	return resp.Content
}
