// Package meeting defines the read-only meeting record consumed by the
// core and the host-facing repository that persists per-meeting analysis
// state.
package meeting

import (
	"context"
	"time"
)

// Ref is a meeting decision record. The core never mutates it.
type Ref struct {
	ID               string   `json:"id"`
	Date             string   `json:"date"`
	Topic            string   `json:"topic"`
	DecisionText     string   `json:"decision_text"`
	Notes            string   `json:"notes,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	RevisedFromTopic string   `json:"revised_from_topic,omitempty"`
	RevisedFromDate  string   `json:"revised_from_date,omitempty"`
}

// Revised reports whether this record supersedes an earlier decision.
func (r Ref) Revised() bool {
	return r.RevisedFromTopic != "" || r.RevisedFromDate != ""
}

// Record is the stored form of a meeting: the decision itself plus the
// analysis flag that prevents re-extraction across process restarts.
type Record struct {
	Ref
	Analyzed   bool       `json:"analyzed"`
	AnalyzedAt *time.Time `json:"analyzed_at,omitempty"`
}

// Repository is the host collaborator supplying meetings. Implementations
// must return meetings in their stored order, unfiltered.
type Repository interface {
	// All returns every meeting with its analysis state.
	All(ctx context.Context) ([]Record, error)

	// MarkAnalyzed sets the analyzed flag and timestamp for the given
	// meeting ids. Unknown ids are ignored.
	MarkAnalyzed(ctx context.Context, ids []string, at time.Time) error
}

// Refs extracts the read-only refs from a slice of records.
func Refs(records []Record) []Ref {
	refs := make([]Ref, len(records))
	for i, rec := range records {
		refs[i] = rec.Ref
	}
	return refs
}

// Unanalyzed filters records down to those not yet analyzed.
func Unanalyzed(records []Record) []Record {
	var out []Record
	for _, rec := range records {
		if !rec.Analyzed {
			out = append(out, rec)
		}
	}
	return out
}
