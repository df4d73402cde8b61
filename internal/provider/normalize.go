package provider

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Remote models answer in free-form text. The normalizer coerces that
// text into the fixed task-extraction schema, identically for every
// provider kind.

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	singleQuotedRe  = regexp.MustCompile(`'([^']*)'`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// analysisPayload is the JSON schema providers are asked to produce.
type analysisPayload struct {
	Summary string        `json:"summary"`
	Tasks   []payloadTask `json:"tasks"`
}

type payloadTask struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	IsUrgent     bool   `json:"is_urgent"`
	Deadline     string `json:"deadline"`
	Category     string `json:"category"`
	MeetingDate  string `json:"meeting_date"`
	MeetingTopic string `json:"meeting_topic"`
}

// ExtractJSON recovers the JSON object embedded in a free-form model
// response. It strips markdown fences, bounds the text to the first '{'
// and last '}', and repairs the common model mistakes: trailing commas,
// single-quoted keys and values, unquoted keys, irregular whitespace.
// A response without a balanced object fails with a malformed error;
// the normalizer never guesses.
func ExtractJSON(kind Kind, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", &Error{
			Kind:     ErrorMalformed,
			Provider: kind,
			Err:      fmt.Errorf("no JSON object in response"),
		}
	}
	s = s[start : end+1]

	s = whitespaceRe.ReplaceAllString(s, " ")
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = singleQuotedRe.ReplaceAllString(s, `"$1"`)
	s = bareKeyRe.ReplaceAllString(s, `$1"$2":`)

	return s, nil
}

// decodeAnalysis parses a model response into the analysis schema. A
// response without a JSON object returns the malformed error from
// ExtractJSON. A bounded object that still fails to parse degrades to the
// empty-result sentinel so callers can fall back instead of aborting.
func decodeAnalysis(kind Kind, raw string) (analysisPayload, error) {
	cleaned, err := ExtractJSON(kind, raw)
	if err != nil {
		return analysisPayload{}, err
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return analysisPayload{
			Summary: fmt.Sprintf("yanıt çözümlenemedi: %v", err),
			Tasks:   []payloadTask{},
		}, nil
	}
	return payload, nil
}
