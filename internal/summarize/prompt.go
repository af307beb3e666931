// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// promptTmpl asks for a fixed set of headed sections so every paper in the
// digest reads the same way.
var promptTmpl = template.Must(template.New("summary").Parse(`Explain the following arXiv paper so that a researcher in the same field can grasp its key points quickly.

# Paper
- **Title:** {{.Title}}
- **Authors:** {{.Authors}}

# Paper body (or abstract)
{{.Body}}

# Output format (use exactly these headings, in this order)
## Background and problem
- ...

## Method
- ...

## Main results
- ...

## Novelty (difference from prior work)
- ...

## Limitations and future work
- ...

Requirements:
- Write 2 to 4 concise bullet points per section.
- Rigorous derivations may be omitted, but use technical terms correctly.
- Prefer statements grounded in the supplied body (or abstract) over speculation.
- Write the output in {{.Language}}.
`))

type promptData struct {
	Title    string
	Authors  string
	Body     string
	Language string
}

// renderPrompt fills the template with p's metadata and body truncated to
// maxChars characters.
func renderPrompt(p types.Paper, body string, maxChars int, language string) (string, error) {
	if language == "" {
		language = "English"
	}
	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, promptData{
		Title:    p.Title,
		Authors:  strings.Join(p.Authors, ", "),
		Body:     truncateChars(body, maxChars),
		Language: language,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// truncateChars keeps the first max characters of s. max <= 0 keeps all.
func truncateChars(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
