// Package provider wraps the supported remote text-generation services
// behind one capability interface. The provider set is a closed enum so
// fallback ordering is exhaustively checkable at compile time.
package provider

import (
	"context"

	"github.com/kararlabs/meetmind/internal/meeting"
	"github.com/kararlabs/meetmind/internal/task"
)

// Kind identifies one supported remote service.
type Kind string

const (
	KindGemini    Kind = "gemini"
	KindOpenAI    Kind = "openai"
	KindAnthropic Kind = "anthropic"
)

// PriorityOrder is the fixed fallback order used when the caller has no
// preference.
var PriorityOrder = []Kind{KindGemini, KindOpenAI, KindAnthropic}

// KindFromName parses a provider name. ok is false for unknown names.
func KindFromName(name string) (Kind, bool) {
	switch Kind(name) {
	case KindGemini, KindOpenAI, KindAnthropic:
		return Kind(name), true
	}
	return "", false
}

// Capabilities flags what a provider can do.
type Capabilities struct {
	AskQuestions    bool `json:"ask_questions"`
	AnalyzeMeetings bool `json:"analyze_meetings"`
	ExtractTasks    bool `json:"extract_tasks"`
}

// Descriptor is the immutable identity of a provider. Configured is
// derived from the credential pool at construction.
type Descriptor struct {
	Name         string       `json:"name"`
	DisplayName  string       `json:"display_name"`
	Configured   bool         `json:"configured"`
	Capabilities Capabilities `json:"capabilities"`
}

// AskResult is the answer to a question over the meeting history.
type AskResult struct {
	Answer          string        `json:"answer"`
	RelatedMeetings []meeting.Ref `json:"related_meetings"`
	HasRevisions    bool          `json:"has_revisions"`
}

// maxRelatedMeetings caps the related-meeting list in ask answers.
const maxRelatedMeetings = 3

// maxExtractTasks caps ranked batch extraction output.
const maxExtractTasks = 8

// Client is the uniform capability interface over one remote service.
type Client interface {
	// Kind returns the provider's enum tag.
	Kind() Kind

	// Descriptor returns the provider's immutable identity.
	Descriptor() Descriptor

	// Configured reports whether the credential pool is non-empty.
	Configured() bool

	// Test performs a cheap round-trip to verify the provider works.
	Test(ctx context.Context) error

	// AskQuestion answers a free-form question using a relevance-ranked
	// subset of meetings as context.
	AskQuestion(ctx context.Context, question string, meetings []meeting.Ref) (AskResult, error)

	// AnalyzeMeeting extracts tasks from a single meeting.
	AnalyzeMeeting(ctx context.Context, m meeting.Ref) (task.AnalysisResult, error)

	// ExtractImportantTasks extracts at most eight ranked tasks from a
	// batch of meetings.
	ExtractImportantTasks(ctx context.Context, meetings []meeting.Ref) (task.AnalysisResult, error)
}
