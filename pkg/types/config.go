// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout bounds each request.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for query building and the search client.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Keywords is the raw comma-separated keyword string as configured.
	Keywords string `json:"keywords" yaml:"keywords"`

	// Category is the raw comma-separated category string, or "all".
	Category string `json:"category" yaml:"category"`

	// MaxResults is the max_results parameter sent to the API (default 25).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIBase is the search endpoint.
	APIBase string `json:"api_base" yaml:"api_base"`

	// HTMLBase is the prefix the paper ID is appended to for HTMLLink.
	HTMLBase string `json:"html_base" yaml:"html_base"`
}

// SummaryConfig holds settings for the generation API.
type SummaryConfig struct {
	// APIKey authenticates against the generation API. Empty disables summaries.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the model identifier (e.g. "gemini-3-flash-preview").
	Model string `json:"model" yaml:"model"`

	// BaseURL is the OpenAI-compatible endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxInputChars caps the body text embedded in the prompt.
	MaxInputChars int `json:"max_input_chars" yaml:"max_input_chars"`

	// Language is the language the summary is requested in.
	Language string `json:"language" yaml:"language"`

	// PostCallDelay is slept after each successful generation call.
	PostCallDelay time.Duration `json:"post_call_delay" yaml:"post_call_delay"`
}

// MailConfig holds SMTP connection and addressing settings.
type MailConfig struct {
	Server   string `json:"server" yaml:"server"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
	Subject  string `json:"subject" yaml:"subject"`

	// TestMode prints the digest instead of sending it.
	TestMode bool `json:"test_mode" yaml:"test_mode"`
}

// Complete reports whether every connection and addressing field is set.
func (m MailConfig) Complete() bool {
	return m.Server != "" && m.Port > 0 && m.User != "" && m.Password != "" &&
		m.From != "" && m.To != ""
}

// RunConfig groups all stage configurations for one run. It is built once at
// startup and passed by value; no stage mutates it.
type RunConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Summary SummaryConfig `json:"summary" yaml:"summary"`
	Mail    MailConfig    `json:"mail" yaml:"mail"`

	// FetchTimeout bounds each full-text page request.
	FetchTimeout time.Duration `json:"fetch_timeout" yaml:"fetch_timeout"`

	// PaperDelay is slept between consecutive papers.
	PaperDelay time.Duration `json:"paper_delay" yaml:"paper_delay"`

	// LogLevel is the logrus level name.
	LogLevel string `json:"log_level" yaml:"log_level"`
}
