package task

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityValid(t *testing.T) {
	tests := []struct {
		priority Priority
		want     bool
	}{
		{PriorityHigh, true},
		{PriorityMedium, true},
		{PriorityLow, true},
		{Priority("urgent"), false},
		{Priority(""), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.priority.Valid(), "priority %q", tt.priority)
	}
}

func TestPriorityOrdering(t *testing.T) {
	assert.True(t, PriorityHigh.MoreUrgentThan(PriorityMedium))
	assert.True(t, PriorityMedium.MoreUrgentThan(PriorityLow))
	assert.False(t, PriorityLow.MoreUrgentThan(PriorityHigh))
	assert.False(t, PriorityHigh.MoreUrgentThan(PriorityHigh))
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.False(t, seen[id], "duplicate id %s", id)
		require.True(t, strings.HasPrefix(id, "task-"))
		seen[id] = true
	}
}

func TestTruncateTitle(t *testing.T) {
	short := "Kısa başlık"
	assert.Equal(t, short, TruncateTitle(short))

	long := strings.Repeat("ş", MaxTitleLen+10)
	got := TruncateTitle(long)
	assert.Equal(t, MaxTitleLen, len([]rune(got)))
}
