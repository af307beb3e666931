// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the immutable RunConfig from the process environment,
// an optional dotenv file, an optional YAML config file, and the secrets
// directory. Loading happens once, before any network call.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-alerter/internal/secrets"
	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// DefaultEnvFile is the dotenv file read for local runs.
const DefaultEnvFile = "config.env"

// Environment keys.
const (
	KeySearchKeywords = "SEARCH_KEYWORDS"
	KeySearchCategory = "SEARCH_CATEGORY"
	KeyMaxResults     = "ARXIV_MAX_RESULTS"
	KeyAPIBase        = "ARXIV_API_BASE"
	KeyHTMLBase       = "ARXIV_HTML_BASE"
	KeyRequestTimeout = "REQUEST_TIMEOUT"

	KeyGeminiAPIKey   = "GEMINI_API_KEY"
	KeyGeminiModel    = "GEMINI_MODEL"
	KeyGeminiBaseURL  = "GEMINI_BASE_URL"
	KeyGeminiMaxChars = "GEMINI_INPUT_MAX_CHARS"
	KeySummaryLang    = "SUMMARY_LANGUAGE"
	KeyPostDelay      = "POST_SUMMARY_DELAY"
	KeyPaperDelay     = "PER_PAPER_DELAY"

	KeyTestMode     = "TEST_MODE"
	KeySMTPServer   = "SMTP_SERVER"
	KeySMTPPort     = "SMTP_PORT"
	KeySMTPUser     = "SMTP_USER"
	KeySMTPPassword = "SMTP_PASSWORD"
	KeyMailFrom     = "MAIL_FROM"
	KeyMailTo       = "MAIL_TO"
	KeyMailSubject  = "MAIL_SUBJECT"

	KeyLogLevel = "LOG_LEVEL"
)

// Defaults for the optional keys.
const (
	DefaultMaxResults    = 25
	DefaultAPIBase       = "http://export.arxiv.org/api/query"
	DefaultHTMLBase      = "https://arxiv.org/html/"
	DefaultModel         = "gemini-3-flash-preview"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultMaxInputChars = 100000
	DefaultLanguage      = "Japanese"
	DefaultPaperDelay    = 60 * time.Second
	DefaultPostDelay     = 1 * time.Second
	DefaultTimeout       = 30 * time.Second
	DefaultUserAgent     = "arxiv-alerter/0.1"
)

var searchKeys = []string{KeySearchKeywords, KeySearchCategory}

var mailKeys = []string{
	KeySMTPServer, KeySMTPPort, KeySMTPUser, KeySMTPPassword,
	KeyMailFrom, KeyMailTo, KeyMailSubject,
}

// MissingError lists required keys that are absent or blank.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("required environment variable(s) not set: %s", strings.Join(e.Keys, ", "))
}

// LoadDotenv reads path into the process environment. Variables already set
// in the environment win. A missing file is not an error.
func LoadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// NewViper returns a viper instance reading the environment and, when
// configFile is non-empty, that YAML file. File keys are the lower-cased
// environment names.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyMaxResults, DefaultMaxResults)
	v.SetDefault(KeyAPIBase, DefaultAPIBase)
	v.SetDefault(KeyHTMLBase, DefaultHTMLBase)
	v.SetDefault(KeyRequestTimeout, DefaultTimeout.String())
	v.SetDefault(KeyGeminiModel, DefaultModel)
	v.SetDefault(KeyGeminiBaseURL, DefaultGeminiBaseURL)
	v.SetDefault(KeyGeminiMaxChars, DefaultMaxInputChars)
	v.SetDefault(KeySummaryLang, DefaultLanguage)
	v.SetDefault(KeyPaperDelay, DefaultPaperDelay.String())
	v.SetDefault(KeyPostDelay, DefaultPostDelay.String())
	v.SetDefault(KeyTestMode, "false")
	v.SetDefault(KeyLogLevel, "info")
}

// LoadSearch builds the search settings only. Used by subcommands that never
// summarize or send mail.
func LoadSearch(v *viper.Viper) (types.SearchConfig, error) {
	setDefaults(v)
	r := reader{v: v}
	for _, k := range searchKeys {
		r.required(k)
	}
	cfg := r.search()
	if err := r.err(); err != nil {
		return types.SearchConfig{}, err
	}
	return cfg, nil
}

// Load builds the full RunConfig. Secrets fill GEMINI_API_KEY and
// SMTP_PASSWORD when the environment leaves them unset. Every missing
// required key is reported in a single *MissingError.
func Load(v *viper.Viper, sec secrets.Store) (types.RunConfig, error) {
	setDefaults(v)
	if sec != nil {
		if k := sec.Get(secrets.GeminiAPIKey); k != "" && v.GetString(KeyGeminiAPIKey) == "" {
			v.Set(KeyGeminiAPIKey, k)
		}
		if p := sec.Get(secrets.SMTPPassword); p != "" && v.GetString(KeySMTPPassword) == "" {
			v.Set(KeySMTPPassword, p)
		}
	}

	r := reader{v: v}
	for _, k := range searchKeys {
		r.required(k)
	}
	for _, k := range mailKeys {
		r.required(k)
	}

	cfg := types.RunConfig{
		Search: r.search(),
		Summary: types.SummaryConfig{
			APIKey:        r.str(KeyGeminiAPIKey),
			Model:         r.str(KeyGeminiModel),
			BaseURL:       r.str(KeyGeminiBaseURL),
			MaxInputChars: r.positiveInt(KeyGeminiMaxChars),
			Language:      r.str(KeySummaryLang),
			PostCallDelay: r.duration(KeyPostDelay),
		},
		Mail: types.MailConfig{
			Server:   r.str(KeySMTPServer),
			Port:     r.port(KeySMTPPort),
			User:     r.str(KeySMTPUser),
			Password: r.str(KeySMTPPassword),
			From:     r.str(KeyMailFrom),
			To:       r.str(KeyMailTo),
			Subject:  r.str(KeyMailSubject),
			TestMode: ParseBool(r.str(KeyTestMode)),
		},
		FetchTimeout: r.duration(KeyRequestTimeout),
		PaperDelay:   r.duration(KeyPaperDelay),
		LogLevel:     r.str(KeyLogLevel),
	}
	if err := r.err(); err != nil {
		return types.RunConfig{}, err
	}
	return cfg, nil
}

// ParseCSV splits a comma-separated value, trims each token, and drops
// empty tokens.
func ParseCSV(value string) []string {
	var out []string
	for _, tok := range strings.Split(value, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// ParseBool reports whether value is one of 1, true, yes, on (any case).
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// reader accumulates missing keys and malformed values so Load can report
// them together.
type reader struct {
	v       *viper.Viper
	missing []string
	invalid []string
}

func (r *reader) str(key string) string {
	return strings.TrimSpace(r.v.GetString(key))
}

func (r *reader) required(key string) {
	if r.str(key) == "" {
		r.missing = append(r.missing, key)
	}
}

func (r *reader) search() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   r.duration(KeyRequestTimeout),
			UserAgent: DefaultUserAgent,
		},
		Keywords:   r.str(KeySearchKeywords),
		Category:   r.str(KeySearchCategory),
		MaxResults: r.positiveInt(KeyMaxResults),
		APIBase:    r.str(KeyAPIBase),
		HTMLBase:   r.str(KeyHTMLBase),
	}
}

func (r *reader) positiveInt(key string) int {
	raw := r.str(key)
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		r.invalid = append(r.invalid, fmt.Sprintf("%s=%q is not a positive integer", key, raw))
		return 0
	}
	return n
}

func (r *reader) port(key string) int {
	raw := r.str(key)
	if raw == "" {
		return 0 // reported as missing
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 65535 {
		r.invalid = append(r.invalid, fmt.Sprintf("%s=%q is not a valid port", key, raw))
		return 0
	}
	return n
}

// duration accepts Go duration strings ("90s", "1m") or a bare number of
// seconds.
func (r *reader) duration(key string) time.Duration {
	raw := r.str(key)
	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		r.invalid = append(r.invalid, fmt.Sprintf("%s=%q is not a valid duration", key, raw))
		return 0
	}
	return d
}

func (r *reader) err() error {
	if len(r.missing) > 0 {
		return &MissingError{Keys: r.missing}
	}
	if len(r.invalid) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(r.invalid, "; "))
	}
	return nil
}
