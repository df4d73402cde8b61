// Package task defines the task candidate model shared by the AI and
// heuristic extraction paths, and the analysis result envelope returned
// to callers.
package task

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Priority indicates how soon a task should be acted on.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// rank orders priorities for sorting, highest first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	}
	return 0
}

// MoreUrgentThan reports whether p sorts before other.
func (p Priority) MoreUrgentThan(other Priority) bool {
	return p.rank() > other.rank()
}

// Category classifies what kind of follow-up a task represents.
type Category string

const (
	CategoryAction   Category = "action"
	CategoryReminder Category = "reminder"
	CategoryDeadline Category = "deadline"
)

// Provenance records which extraction path produced a task.
type Provenance string

const (
	ProvenanceAI        Provenance = "ai"
	ProvenanceHeuristic Provenance = "heuristic"
)

// Method identifies how an analysis result was produced.
type Method string

const (
	MethodAI     Method = "ai"
	MethodText   Method = "text"
	MethodCached Method = "cached"
)

// MaxTitleLen bounds task titles; longer sentences are truncated on a
// rune boundary.
const MaxTitleLen = 60

// Candidate is a proposed actionable item derived from meeting text.
// Immutable once emitted; CompletedAt is the only field the ledger
// stamps later.
type Candidate struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Priority     Priority   `json:"priority"`
	IsUrgent     bool       `json:"is_urgent"`
	Deadline     string     `json:"deadline,omitempty"`
	Category     Category   `json:"category"`
	MeetingDate  string     `json:"meeting_date"`
	MeetingTopic string     `json:"meeting_topic"`
	Provenance   Provenance `json:"provenance"`
	Score        int        `json:"score,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// AnalysisResult is the envelope returned by analyze/extract operations.
type AnalysisResult struct {
	Tasks                   []Candidate `json:"tasks"`
	TotalMeetingsConsidered int         `json:"total_meetings_considered"`
	Summary                 string      `json:"summary"`
	Method                  Method      `json:"method"`
	AnalyzedAt              time.Time   `json:"analyzed_at"`
}

// idCounter disambiguates ids created within the same millisecond.
var idCounter atomic.Uint64

// NewID returns a process-unique task id. The timestamp and counter make
// collisions within a run impossible; the uuid fragment guards against
// collisions with ids persisted by earlier runs.
func NewID() string {
	return fmt.Sprintf("task-%d-%d-%s",
		time.Now().UnixMilli(), idCounter.Add(1), uuid.NewString()[:8])
}

// TruncateTitle cuts s to at most MaxTitleLen runes.
func TruncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxTitleLen {
		return s
	}
	return string(runes[:MaxTitleLen])
}
