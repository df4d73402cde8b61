// Package scrub removes secret-looking substrings from text before it is
// sent to a remote provider. Meeting notes routinely contain pasted
// credentials; nothing leaves the process unscrubbed.
package scrub

import (
	"fmt"
	"regexp"
	"strings"
)

// pattern pairs a detector with its replacement marker.
type pattern struct {
	regex       *regexp.Regexp
	replacement string
}

// defaultPatterns cover the common key/token/password shapes. Order
// matters: specific patterns run before generic ones.
var defaultPatterns = []pattern{
	{
		regexp.MustCompile(`(GEMINI_API_KEY|OPENAI_API_KEY|ANTHROPIC_API_KEY|GITHUB_TOKEN|AWS_SECRET_ACCESS_KEY)\s*=\s*([^\s]+)`),
		"$1=[REDACTED:ENV_SECRET]",
	},
	{
		regexp.MustCompile(`sk-ant-[a-zA-Z0-9-]{20,}`),
		"[REDACTED:ANTHROPIC_KEY]",
	},
	{
		regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`),
		"[REDACTED:OPENAI_KEY]",
	},
	{
		regexp.MustCompile(`AIza[a-zA-Z0-9_-]{30,}`),
		"[REDACTED:GOOGLE_KEY]",
	},
	{
		regexp.MustCompile(`(?i)(api[_-]?key|apikey)\s*[:=]\s*["']?\s*([^"'\s]{8,})["']?`),
		"$1=[REDACTED:API_KEY]",
	},
	{
		regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9_\-\.=]{20,}`),
		"[REDACTED:BEARER_TOKEN]",
	},
	{
		regexp.MustCompile(`(?i)(password|passwd|pwd|parola|şifre)\s*[:=]\s*["']?\s*([^"'\s]{4,})["']?`),
		"$1=[REDACTED:PASSWORD]",
	},
}

// Scrubber applies redaction patterns, skipping matches covered by the
// allowlist.
type Scrubber struct {
	patterns []pattern
	allow    []*regexp.Regexp
}

// New returns a scrubber with the default pattern set.
func New() *Scrubber {
	return &Scrubber{patterns: defaultPatterns}
}

// NewWithAllowlist loads allowlist regexes from a TOML file. A missing
// file is not an error; invalid TOML or regexes are.
func NewWithAllowlist(path string) (*Scrubber, error) {
	allow, err := loadAllowlist(path)
	if err != nil {
		return nil, err
	}
	return &Scrubber{patterns: defaultPatterns, allow: allow}, nil
}

// Scrub replaces secret-looking substrings with redaction markers.
func (s *Scrubber) Scrub(text string) string {
	result := text
	for _, p := range s.patterns {
		result = p.regex.ReplaceAllStringFunc(result, func(match string) string {
			// An earlier, more specific pattern already handled this.
			if strings.Contains(match, "[REDACTED:") {
				return match
			}
			for _, a := range s.allow {
				if a.MatchString(match) {
					return match
				}
			}
			return p.regex.ReplaceAllString(match, p.replacement)
		})
	}
	return result
}

// compileAllow compiles allowlist patterns, rejecting invalid regexes.
func compileAllow(exprs []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid allowlist regex %q: %w", expr, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}
