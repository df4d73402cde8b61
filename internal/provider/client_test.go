package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kararlabs/meetmind/internal/meeting"
	"github.com/kararlabs/meetmind/internal/task"
)

// scriptedBackend replays a fixed error sequence, then succeeds. It
// records the API key used on each call.
type scriptedBackend struct {
	errs     []error
	response string
	calls    int
	keys     []string
}

func (b *scriptedBackend) generate(ctx context.Context, apiKey, prompt string) (string, error) {
	b.keys = append(b.keys, apiKey)
	i := b.calls
	b.calls++
	if i < len(b.errs) && b.errs[i] != nil {
		return "", b.errs[i]
	}
	return b.response, nil
}

func rateLimitErr() error {
	return &Error{Kind: ErrorRateLimited, Provider: KindGemini, Status: 429, Err: errors.New("quota")}
}

func newTestClient(keys []string, b backend) *client {
	return newClient(KindGemini, "Google Gemini", NewPool(keys), b, nil, nil, nil)
}

func TestCompleteUnconfigured(t *testing.T) {
	c := newTestClient(nil, &scriptedBackend{})
	_, err := c.complete(context.Background(), "test", "p")
	assert.ErrorIs(t, err, ErrUnconfigured)
}

func TestCompleteRotatesOnRateLimit(t *testing.T) {
	b := &scriptedBackend{errs: []error{rateLimitErr()}, response: "ok"}
	c := newTestClient([]string{"key-a", "key-b"}, b)

	out, err := c.complete(context.Background(), "ask", "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	// First call throttled on key-a, retry succeeded on key-b.
	assert.Equal(t, []string{"key-a", "key-b"}, b.keys)
}

func TestCompleteExhaustsAttempts(t *testing.T) {
	errs := make([]error, 10)
	for i := range errs {
		errs[i] = rateLimitErr()
	}
	b := &scriptedBackend{errs: errs}
	c := newTestClient([]string{"key-a", "key-b"}, b)

	_, err := c.complete(context.Background(), "ask", "p")
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	// Bounded at pool size x 2 attempts.
	assert.Equal(t, 4, b.calls)
}

func TestCompleteAuthNotRetried(t *testing.T) {
	b := &scriptedBackend{errs: []error{
		&Error{Kind: ErrorAuth, Provider: KindGemini, Status: 401, Err: errors.New("bad key")},
	}}
	c := newTestClient([]string{"key-a", "key-b"}, b)

	_, err := c.complete(context.Background(), "ask", "p")
	require.Error(t, err)
	assert.True(t, IsAuth(err))
	assert.Equal(t, 1, b.calls)
}

func TestCompleteTransientRetriesSameKey(t *testing.T) {
	b := &scriptedBackend{
		errs:     []error{&Error{Kind: ErrorTransient, Provider: KindGemini, Status: 503, Err: errors.New("overloaded")}},
		response: "ok",
	}
	c := newTestClient([]string{"key-a", "key-b"}, b)

	out, err := c.complete(context.Background(), "ask", "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, []string{"key-a", "key-a"}, b.keys)
}

func TestCompleteContextCancelled(t *testing.T) {
	b := &scriptedBackend{errs: []error{rateLimitErr(), rateLimitErr()}}
	c := newTestClient([]string{"only-key"}, b)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.complete(ctx, "ask", "p")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAskQuestion(t *testing.T) {
	b := &scriptedBackend{response: "Sınav 15 Mart'ta yapılacak."}
	c := newTestClient([]string{"key"}, b)

	meetings := []meeting.Ref{
		{ID: "m1", Topic: "Sınav takvimi", DecisionText: "Ara sınav 15 Mart'ta.", RevisedFromTopic: "Sınav takvimi"},
		{ID: "m2", Topic: "Veli toplantısı", DecisionText: "Görüşmeler nisanda."},
	}

	res, err := c.AskQuestion(context.Background(), "sınav ne zaman", meetings)
	require.NoError(t, err)
	assert.Equal(t, "Sınav 15 Mart'ta yapılacak.", res.Answer)
	require.NotEmpty(t, res.RelatedMeetings)
	assert.Equal(t, "m1", res.RelatedMeetings[0].ID)
	assert.True(t, res.HasRevisions)
}

func TestAnalyzeMeeting(t *testing.T) {
	b := &scriptedBackend{response: `{"summary": "bir görev", "tasks": [
		{"title": "Sınav soruları hazırlanacak", "priority": "high", "is_urgent": true, "category": "deadline", "deadline": "15 Mart"}
	]}`}
	c := newTestClient([]string{"key"}, b)

	m := meeting.Ref{ID: "m1", Date: "2026-03-01", Topic: "Sınav takvimi", DecisionText: "..."}
	res, err := c.AnalyzeMeeting(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, task.MethodAI, res.Method)
	assert.Equal(t, 1, res.TotalMeetingsConsidered)
	require.Len(t, res.Tasks, 1)

	got := res.Tasks[0]
	assert.Equal(t, task.ProvenanceAI, got.Provenance)
	// Source attribution comes from the meeting, not the model.
	assert.Equal(t, "2026-03-01", got.MeetingDate)
	assert.Equal(t, "Sınav takvimi", got.MeetingTopic)
}

func TestExtractImportantTasksCapsAndValidates(t *testing.T) {
	var tasks []string
	for i := 0; i < maxExtractTasks+3; i++ {
		tasks = append(tasks, fmt.Sprintf(`{"title": "Görev %d", "priority": "belirsiz", "category": "yanlış"}`, i))
	}
	b := &scriptedBackend{response: fmt.Sprintf(`{"summary": "çok görev", "tasks": [%s, {"title": ""}]}`,
		joinTasks(tasks))}
	c := newTestClient([]string{"key"}, b)

	res, err := c.ExtractImportantTasks(context.Background(), []meeting.Ref{{ID: "m1", Topic: "Konu"}})
	require.NoError(t, err)
	assert.Len(t, res.Tasks, maxExtractTasks)
	for _, got := range res.Tasks {
		// Invalid enum values fall back to safe defaults.
		assert.Equal(t, task.PriorityMedium, got.Priority)
		assert.Equal(t, task.CategoryAction, got.Category)
		assert.NotEmpty(t, got.Title)
	}
}

func joinTasks(tasks []string) string {
	out := ""
	for i, t := range tasks {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}
