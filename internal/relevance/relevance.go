// Package relevance ranks meetings against a question so provider prompts
// stay bounded. Scoring is keyword overlap with field weights plus a small
// synonym table; it never returns an empty list for a non-empty input.
package relevance

import (
	"sort"
	"strings"

	"github.com/kararlabs/meetmind/internal/meeting"
)

// Field weights for a whole-question substring hit.
const (
	topicWeight    = 3.0
	decisionWeight = 2.0
	notesWeight    = 1.0
	tagWeight      = 1.0
)

// Field weights for a single question-word hit.
const (
	wordTopicWeight    = 1.0
	wordDecisionWeight = 1.0
	wordNotesWeight    = 0.5
	wordTagWeight      = 1.0
)

// Field weights for a synonym-table hit.
const (
	synTopicWeight    = 2.0
	synDecisionWeight = 2.0
	synNotesWeight    = 1.0
	synTagWeight      = 1.0
)

// minWordLen filters out short connective words from the question.
const minWordLen = 2

// DefaultLimit caps the ranked list for Q&A prompt context.
const DefaultLimit = 5

// synonyms expands common Turkish meeting vocabulary so "sınav" also
// matches decisions phrased as "değerlendirme" or "final".
var synonyms = map[string][]string{
	"sınav":    {"sınav", "değerlendirme", "ara sınav", "final"},
	"ödev":     {"ödev", "proje", "çalışma", "teslim"},
	"toplantı": {"toplantı", "görüşme", "oturum"},
	"ders":     {"ders", "müfredat", "program"},
	"öğrenci":  {"öğrenci", "sınıf", "grup"},
	"tarih":    {"tarih", "takvim", "gün"},
}

// Scored pairs a meeting with its relevance score.
type Scored struct {
	Meeting meeting.Ref
	Score   float64
}

// Rank scores meetings against the question and returns them sorted by
// non-increasing score. limit <= 0 means unbounded. When no meeting scores
// above zero the first meetings are returned unranked, so a non-empty
// input always yields a non-empty result.
func Rank(question string, meetings []meeting.Ref, limit int) []Scored {
	if len(meetings) == 0 {
		return nil
	}

	q := strings.ToLower(question)
	words := questionWords(q)

	scored := make([]Scored, len(meetings))
	for i, m := range meetings {
		scored[i] = Scored{Meeting: m, Score: score(q, words, m)}
	}

	// Stable keeps stored order among equal scores, so repeated runs over
	// the same input produce the same ranking.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if scored[0].Score <= 0 {
		// Nothing matched: fall back to the first meetings in stored order.
		scored = make([]Scored, len(meetings))
		for i, m := range meetings {
			scored[i] = Scored{Meeting: m}
		}
	}

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// Meetings returns just the refs from a ranked list.
func Meetings(scored []Scored) []meeting.Ref {
	refs := make([]meeting.Ref, len(scored))
	for i, s := range scored {
		refs[i] = s.Meeting
	}
	return refs
}

func score(question string, words []string, m meeting.Ref) float64 {
	topic := strings.ToLower(m.Topic)
	decision := strings.ToLower(m.DecisionText)
	notes := strings.ToLower(m.Notes)
	tags := make([]string, len(m.Tags))
	for i, t := range m.Tags {
		tags[i] = strings.ToLower(t)
	}

	var total float64

	// Whole-question substring hits.
	if question != "" {
		if strings.Contains(topic, question) {
			total += topicWeight
		}
		if strings.Contains(decision, question) {
			total += decisionWeight
		}
		if notes != "" && strings.Contains(notes, question) {
			total += notesWeight
		}
		for _, tag := range tags {
			if strings.Contains(tag, question) {
				total += tagWeight
				break
			}
		}
	}

	// Per-word hits.
	for _, w := range words {
		if strings.Contains(topic, w) {
			total += wordTopicWeight
		}
		if strings.Contains(decision, w) {
			total += wordDecisionWeight
		}
		if notes != "" && strings.Contains(notes, w) {
			total += wordNotesWeight
		}
		for _, tag := range tags {
			if strings.Contains(tag, w) {
				total += wordTagWeight
				break
			}
		}
	}

	// Synonym expansion.
	for _, w := range words {
		alts, ok := synonyms[w]
		if !ok {
			continue
		}
		for _, alt := range alts {
			if strings.Contains(topic, alt) {
				total += synTopicWeight
			}
			if strings.Contains(decision, alt) {
				total += synDecisionWeight
			}
			if notes != "" && strings.Contains(notes, alt) {
				total += synNotesWeight
			}
			for _, tag := range tags {
				if strings.Contains(tag, alt) {
					total += synTagWeight
					break
				}
			}
		}
	}

	return total
}

// questionWords splits the lowercased question into words longer than
// minWordLen runes.
func questionWords(q string) []string {
	fields := strings.FieldsFunc(q, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ',' || r == '.' ||
			r == '?' || r == '!' || r == ';' || r == ':'
	})

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) > minWordLen {
			words = append(words, f)
		}
	}
	return words
}
