package meeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevised(t *testing.T) {
	assert.False(t, Ref{Topic: "Sınav takvimi"}.Revised())
	assert.True(t, Ref{RevisedFromTopic: "Sınav takvimi"}.Revised())
	assert.True(t, Ref{RevisedFromDate: "2026-01-10"}.Revised())
}

func TestUnanalyzed(t *testing.T) {
	records := []Record{
		{Ref: Ref{ID: "m1"}, Analyzed: true},
		{Ref: Ref{ID: "m2"}},
		{Ref: Ref{ID: "m3"}},
	}

	got := Unanalyzed(records)
	assert.Len(t, got, 2)
	assert.Equal(t, "m2", got[0].ID)
	assert.Equal(t, "m3", got[1].ID)
}

func TestRefs(t *testing.T) {
	records := []Record{
		{Ref: Ref{ID: "m1", Topic: "Veli toplantısı"}, Analyzed: true},
		{Ref: Ref{ID: "m2", Topic: "Sınav takvimi"}},
	}

	refs := Refs(records)
	assert.Len(t, refs, 2)
	assert.Equal(t, "Veli toplantısı", refs[0].Topic)
	assert.Equal(t, "Sınav takvimi", refs[1].Topic)
}
