// Package heuristic derives task candidates directly from meeting decision
// text when no AI provider is available. Scoring is fully deterministic:
// identical input text always yields identical scores and ordering.
package heuristic

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/kararlabs/meetmind/internal/meeting"
	"github.com/kararlabs/meetmind/internal/task"
)

// Scoring thresholds. These values are empirically tuned; behavioral
// parity matters more than elegance, so treat them as fixed constants.
const (
	MinSentenceLen  = 15
	BaseScore       = 1
	HighThreshold   = 6
	MediumThreshold = 4
	MaxTasks        = 8
	structuralBonus = 1
	routinePenalty  = 1
)

// Category weights applied per matched keyword.
const (
	urgentWeight         = 4
	deadlineWeight       = 3
	importantWeight      = 2
	responsibilityWeight = 2
	assignmentWeight     = 2
	actionWeight         = 1
	roleWeight           = 1
)

// keywordCategory is a named keyword list with a per-match weight.
type keywordCategory struct {
	name   string
	weight int
	words  []string
}

// Keyword lists are matched as lowercase substrings. Order is fixed so
// scoring stays reproducible.
var categories = []keywordCategory{
	{name: "urgent", weight: urgentWeight, words: []string{
		"acil", "ivedi", "derhal", "hemen", "urgent", "asap",
	}},
	{name: "deadline", weight: deadlineWeight, words: []string{
		"tarihine kadar", "son tarih", "teslim tarihi", "deadline",
		"en geç", "bitiş tarihi",
	}},
	{name: "important", weight: importantWeight, words: []string{
		"önemli", "kritik", "öncelikli", "zorunlu",
	}},
	{name: "responsibility", weight: responsibilityWeight, words: []string{
		"sorumlu", "sorumluluk", "görevli", "takip edecek",
	}},
	{name: "assignment", weight: assignmentWeight, words: []string{
		"görev verildi", "görevlendirildi", "atandı", "üstlenecek",
	}},
	{name: "action", weight: actionWeight, words: []string{
		"hazırlanacak", "yapılacak", "tamamlanacak", "gönderilecek",
		"düzenlenecek", "planlanacak", "oluşturulacak", "kontrol edilecek",
		"paylaşılacak", "duyurulacak",
	}},
	{name: "role", weight: roleWeight, words: []string{
		"hoca", "öğretmen", "koordinatör", "müdür",
	}},
}

// routineWords mark ordinary curriculum housekeeping; they pull a sentence
// down one point unless an urgent or deadline keyword rescues it.
var routineWords = []string{
	"ders programı", "müfredat", "rutin", "olağan", "haftalık plan",
}

// structuralPatterns add one point when the sentence has the shape of an
// assignment even without strong keywords.
var structuralPatterns = []*regexp.Regexp{
	// Numbered list item. Only the "2) ..." form survives to this point;
	// splitSentences consumes the dot in "1. ...", detaching the number.
	regexp.MustCompile(`^\s*\d+\)\s+`),
	// "<person> hoca/öğretmen/sorumlu ..."
	regexp.MustCompile(`(?i)\p{L}+\s+(hoca|öğretmen|sorumlu)`),
	// Future-tense action verb phrases
	regexp.MustCompile(`(?i)(yapılacak|hazırlanacak|edilecek|gönderilecek|tamamlanacak|sunulacak)\b`),
}

// deadlineDate captures "<day> <Turkish month>" phrases for the task
// deadline field.
var deadlineDate = regexp.MustCompile(`(?i)(\d{1,2})\s+(ocak|şubat|mart|nisan|mayıs|haziran|temmuz|ağustos|eylül|ekim|kasım|aralık)`)

// Extractor scores sentences from decision text and emits ranked task
// candidates. It never fails; an empty result is a valid outcome.
type Extractor struct{}

// NewExtractor returns a ready extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// scoredSentence carries intermediate scoring state before candidates
// are built.
type scoredSentence struct {
	text     string
	score    int
	urgent   bool
	deadline bool
	meeting  meeting.Ref
	order    int
}

// Extract derives at most MaxTasks candidates from the given meetings,
// ranked by (score desc, urgency desc, priority desc).
func (e *Extractor) Extract(meetings []meeting.Ref) []task.Candidate {
	var scored []scoredSentence
	order := 0

	for _, m := range meetings {
		for _, sentence := range splitSentences(m.DecisionText) {
			if len([]rune(sentence)) < MinSentenceLen {
				continue
			}
			s := scoreSentence(sentence)
			if s.score < BaseScore {
				continue
			}
			s.meeting = m
			s.order = order
			order++
			scored = append(scored, s)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.urgent != b.urgent {
			return a.urgent
		}
		pa, pb := priorityFor(a), priorityFor(b)
		if pa != pb {
			return pa.MoreUrgentThan(pb)
		}
		return a.order < b.order
	})

	if len(scored) > MaxTasks {
		scored = scored[:MaxTasks]
	}

	now := time.Now()
	candidates := make([]task.Candidate, 0, len(scored))
	for _, s := range scored {
		candidates = append(candidates, task.Candidate{
			ID:           task.NewID(),
			Title:        task.TruncateTitle(s.text),
			Description:  s.text,
			Priority:     priorityFor(s),
			IsUrgent:     s.score >= HighThreshold,
			Deadline:     extractDeadline(s.text),
			Category:     categoryFor(s),
			MeetingDate:  s.meeting.Date,
			MeetingTopic: s.meeting.Topic,
			Provenance:   task.ProvenanceHeuristic,
			Score:        s.score,
			CreatedAt:    now,
		})
	}
	return candidates
}

// Result wraps Extract in the analysis envelope with method "text".
func (e *Extractor) Result(meetings []meeting.Ref) task.AnalysisResult {
	tasks := e.Extract(meetings)
	summary := "Görev çıkarımı metin analizi ile yapıldı."
	if len(tasks) == 0 {
		summary = "Karar metinlerinde önemli görev bulunamadı."
	}
	return task.AnalysisResult{
		Tasks:                   tasks,
		TotalMeetingsConsidered: len(meetings),
		Summary:                 summary,
		Method:                  task.MethodText,
		AnalyzedAt:              time.Now(),
	}
}

// scoreSentence computes the importance score for one sentence.
func scoreSentence(sentence string) scoredSentence {
	lower := strings.ToLower(sentence)
	s := scoredSentence{text: sentence, score: BaseScore}

	for _, cat := range categories {
		for _, w := range cat.words {
			if strings.Contains(lower, w) {
				s.score += cat.weight
				switch cat.name {
				case "urgent":
					s.urgent = true
				case "deadline":
					s.deadline = true
				}
			}
		}
	}

	if !s.urgent && !s.deadline {
		for _, w := range routineWords {
			if strings.Contains(lower, w) {
				s.score -= routinePenalty
				break
			}
		}
		if s.score < 0 {
			s.score = 0
		}
	}

	for _, re := range structuralPatterns {
		if re.MatchString(sentence) {
			s.score += structuralBonus
			break
		}
	}

	return s
}

func priorityFor(s scoredSentence) task.Priority {
	switch {
	case s.score >= HighThreshold:
		return task.PriorityHigh
	case s.score >= MediumThreshold:
		return task.PriorityMedium
	}
	return task.PriorityLow
}

func categoryFor(s scoredSentence) task.Category {
	switch {
	case s.deadline:
		return task.CategoryDeadline
	case s.urgent || s.score >= MediumThreshold:
		return task.CategoryAction
	}
	return task.CategoryReminder
}

// extractDeadline returns the first "<day> <month>" phrase, or empty.
func extractDeadline(sentence string) string {
	return deadlineDate.FindString(sentence)
}

// splitSentences breaks decision text on sentence delimiters and newlines.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
