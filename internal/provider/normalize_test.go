package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "clean object",
			raw:  `{"summary": "ok", "tasks": []}`,
			want: `{"summary": "ok", "tasks": []}`,
		},
		{
			name: "markdown fence",
			raw:  "```json\n{\"summary\": \"ok\", \"tasks\": []}\n```",
			want: `{"summary": "ok", "tasks": []}`,
		},
		{
			name: "bare fence",
			raw:  "```\n{\"summary\": \"ok\", \"tasks\": []}\n```",
			want: `{"summary": "ok", "tasks": []}`,
		},
		{
			name: "surrounding prose",
			raw:  `İşte sonuç: {"summary": "ok", "tasks": []} umarım yardımcı olur.`,
			want: `{"summary": "ok", "tasks": []}`,
		},
		{
			name: "trailing commas",
			raw:  `{"summary": "ok", "tasks": [{"title": "a",},],}`,
			want: `{"summary": "ok", "tasks": [{"title": "a"}]}`,
		},
		{
			name: "single quotes",
			raw:  `{'summary': 'ok', 'tasks': []}`,
			want: `{"summary": "ok", "tasks": []}`,
		},
		{
			name: "bare keys",
			raw:  `{summary: "ok", tasks: []}`,
			want: `{"summary": "ok", "tasks": []}`,
		},
		{
			name: "irregular whitespace",
			raw:  "{\"summary\":\n\t \"ok\",  \"tasks\": []}",
			want: `{"summary": "ok", "tasks": []}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(KindGemini, tt.raw)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, got)
		})
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	for _, raw := range []string{"", "görev bulunamadı", "} {", "```json\n```"} {
		_, err := ExtractJSON(KindOpenAI, raw)
		require.Error(t, err, "raw %q", raw)
		assert.True(t, IsKind(err, ErrorMalformed))

		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, KindOpenAI, perr.Provider)
	}
}

func TestDecodeAnalysis(t *testing.T) {
	raw := "```json\n{\"summary\": \"iki görev\", \"tasks\": [{\"title\": \"Sınav hazırlığı\", \"priority\": \"high\", \"is_urgent\": true, \"meeting_date\": \"2026-03-01\", \"meeting_topic\": \"Sınav takvimi\"}]}\n```"

	payload, err := decodeAnalysis(KindGemini, raw)
	require.NoError(t, err)
	assert.Equal(t, "iki görev", payload.Summary)
	require.Len(t, payload.Tasks, 1)
	assert.Equal(t, "Sınav hazırlığı", payload.Tasks[0].Title)
	assert.True(t, payload.Tasks[0].IsUrgent)
	assert.Equal(t, "2026-03-01", payload.Tasks[0].MeetingDate)
}

func TestDecodeAnalysisUnparseableSentinel(t *testing.T) {
	// A bounded object that still fails to parse degrades to the sentinel
	// instead of erroring, so callers can fall back.
	payload, err := decodeAnalysis(KindGemini, `{"summary": "ok", "tasks": [{{]}`)
	require.NoError(t, err)
	assert.Contains(t, payload.Summary, "yanıt çözümlenemedi")
	assert.Empty(t, payload.Tasks)
	assert.NotNil(t, payload.Tasks)
}
