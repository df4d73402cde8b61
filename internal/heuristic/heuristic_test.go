package heuristic

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kararlabs/meetmind/internal/meeting"
	"github.com/kararlabs/meetmind/internal/task"
)

func TestExtractUrgentDeadlineSentence(t *testing.T) {
	e := NewExtractor()
	tasks := e.Extract([]meeting.Ref{{
		Date:         "2026-03-01",
		Topic:        "Sınav takvimi",
		DecisionText: "Ara sınav 15 Mart tarihine kadar hazırlanacak, acil.",
	}})

	require.Len(t, tasks, 1)
	got := tasks[0]
	assert.Equal(t, task.PriorityHigh, got.Priority)
	assert.True(t, got.IsUrgent)
	assert.Equal(t, task.CategoryDeadline, got.Category)
	assert.Equal(t, "15 Mart", got.Deadline)
	assert.Equal(t, "Sınav takvimi", got.MeetingTopic)
	assert.Equal(t, "2026-03-01", got.MeetingDate)
	assert.Equal(t, task.ProvenanceHeuristic, got.Provenance)
}

func TestExtractSkipsShortSentences(t *testing.T) {
	e := NewExtractor()
	tasks := e.Extract([]meeting.Ref{{
		DecisionText: "Tamam. Evet acil. Rapor önümüzdeki hafta içinde hazırlanacak ve paylaşılacak.",
	}})

	require.Len(t, tasks, 1)
	assert.Contains(t, tasks[0].Description, "Rapor")
}

func TestExtractRoutinePenalty(t *testing.T) {
	e := NewExtractor()

	// Routine sentence without urgency loses a point against the same
	// sentence about a non-routine subject.
	routine := e.Extract([]meeting.Ref{{
		DecisionText: "Haftalık plan önümüzdeki dönem için düzenlenecek elbette.",
	}})
	normal := e.Extract([]meeting.Ref{{
		DecisionText: "Mezuniyet töreni önümüzdeki dönem için düzenlenecek elbette.",
	}})
	require.Len(t, routine, 1)
	require.Len(t, normal, 1)
	assert.Equal(t, normal[0].Score-1, routine[0].Score)
}

func TestExtractCapsAtMaxTasks(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxTasks+5; i++ {
		fmt.Fprintf(&b, "Dönem raporu bölüm %d önemli ve mutlaka hazırlanacak. ", i)
	}

	e := NewExtractor()
	tasks := e.Extract([]meeting.Ref{{DecisionText: b.String()}})
	assert.Len(t, tasks, MaxTasks)
}

func TestExtractDeterministicOrdering(t *testing.T) {
	refs := []meeting.Ref{
		{Topic: "A", DecisionText: "Sınav soruları acil olarak derhal hazırlanacak. Pano düzeni gözden geçirilecek elbette."},
		{Topic: "B", DecisionText: "Veli görüşme listesi son tarih 10 Nisan olacak şekilde tamamlanacak."},
	}

	e := NewExtractor()
	first := e.Extract(refs)
	require.NotEmpty(t, first)

	for i := 0; i < 10; i++ {
		again := e.Extract(refs)
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Title, again[j].Title)
			assert.Equal(t, first[j].Score, again[j].Score)
			assert.Equal(t, first[j].Priority, again[j].Priority)
		}
	}

	// Highest score first.
	for j := 1; j < len(first); j++ {
		assert.GreaterOrEqual(t, first[j-1].Score, first[j].Score)
	}
}

func TestResultEnvelope(t *testing.T) {
	e := NewExtractor()

	res := e.Result([]meeting.Ref{{DecisionText: "Sınav programı acil olarak yarına kadar hazırlanacak."}})
	assert.Equal(t, task.MethodText, res.Method)
	assert.Equal(t, 1, res.TotalMeetingsConsidered)
	assert.NotEmpty(t, res.Tasks)
	assert.NotEmpty(t, res.Summary)

	empty := e.Result([]meeting.Ref{{DecisionText: "Tamam."}})
	assert.Empty(t, empty.Tasks)
	assert.Equal(t, task.MethodText, empty.Method)
}

func TestScoreSentenceWeights(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     int
	}{
		{
			// base 1 + action 1 + structural 1 ("edilecek" matches).
			name:     "action keyword",
			sentence: "Sınıf listesi kontrol edilecek",
			want:     1 + 1 + 1,
		},
		{
			// base 1 + urgent 4 + action 1 + structural 1.
			name:     "urgent action",
			sentence: "Duyuru acil olarak hazırlanacak",
			want:     1 + 4 + 1 + 1,
		},
		{
			// base 1 + deadline 3 + action 1 + structural 1.
			name:     "deadline",
			sentence: "Rapor 20 Mayıs tarihine kadar gönderilecek",
			want:     1 + 3 + 1 + 1,
		},
		{
			// base 1 + structural 1 for the numbered-item shape alone.
			name:     "numbered item",
			sentence: "2) Pano düzeni için fotoğraflar seçilmeli",
			want:     1 + 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreSentence(tt.sentence)
			assert.Equal(t, tt.want, got.score)
		})
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Birinci karar. İkinci karar!\nÜçüncü karar? ")
	assert.Equal(t, []string{"Birinci karar", "İkinci karar", "Üçüncü karar"}, got)
}
