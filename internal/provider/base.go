package provider

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kararlabs/meetmind/internal/meeting"
	"github.com/kararlabs/meetmind/internal/relevance"
	"github.com/kararlabs/meetmind/internal/scrub"
	"github.com/kararlabs/meetmind/internal/task"
	"github.com/kararlabs/meetmind/internal/telemetry"
)

// Inner retry tuning. The inner loop absorbs provider-local rate limiting
// by rotating credentials; the orchestrator's outer loop handles
// provider-wide outages.
const (
	// rotationDelay is the short pause after a successful key rotation.
	rotationDelay = 250 * time.Millisecond

	// singleKeyBackoff scales with the attempt count when rotation is
	// impossible and the same key must be retried.
	singleKeyBackoff = 500 * time.Millisecond

	// attemptsPerKey sets the inner loop bound to poolSize × 2.
	attemptsPerKey = 2
)

// testPrompt is the cheap round-trip used by Test.
const testPrompt = `Yanıt olarak sadece "ok" yaz.`

// backend performs one raw completion request against a remote service
// using the given API key. Implementations classify non-success statuses.
type backend interface {
	generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// client implements Client over a kind-specific backend. One instance per
// kind is built lazily and cached for the process lifetime.
type client struct {
	kind       Kind
	descriptor Descriptor
	pool       *Pool
	backend    backend
	scrubber   *scrub.Scrubber
	log        *zap.Logger
	metrics    *telemetry.Metrics
}

func newClient(kind Kind, displayName string, pool *Pool, b backend, scrubber *scrub.Scrubber, log *zap.Logger, metrics *telemetry.Metrics) *client {
	if log == nil {
		log = zap.NewNop()
	}
	return &client{
		kind: kind,
		descriptor: Descriptor{
			Name:        string(kind),
			DisplayName: displayName,
			Configured:  pool.Configured(),
			Capabilities: Capabilities{
				AskQuestions:    true,
				AnalyzeMeetings: true,
				ExtractTasks:    true,
			},
		},
		pool:     pool,
		backend:  b,
		scrubber: scrubber,
		log:      log.Named(string(kind)),
		metrics:  metrics,
	}
}

func (c *client) Kind() Kind             { return c.kind }
func (c *client) Descriptor() Descriptor { return c.descriptor }
func (c *client) Configured() bool       { return c.pool.Configured() }

// Test performs a minimal completion to verify credentials and reachability.
func (c *client) Test(ctx context.Context) error {
	_, err := c.complete(ctx, "test", testPrompt)
	return err
}

// AskQuestion answers a question from a relevance-ranked meeting context.
func (c *client) AskQuestion(ctx context.Context, question string, meetings []meeting.Ref) (AskResult, error) {
	ranked := relevance.Rank(question, meetings, relevance.DefaultLimit)
	prompt := buildAskPrompt(question, ranked, c.scrub)

	answer, err := c.complete(ctx, "ask", prompt)
	if err != nil {
		return AskResult{}, err
	}

	related := relevance.Meetings(ranked)
	if len(related) > maxRelatedMeetings {
		related = related[:maxRelatedMeetings]
	}
	hasRevisions := false
	for _, m := range related {
		if m.Revised() {
			hasRevisions = true
			break
		}
	}

	return AskResult{
		Answer:          answer,
		RelatedMeetings: related,
		HasRevisions:    hasRevisions,
	}, nil
}

// AnalyzeMeeting extracts tasks from a single meeting.
func (c *client) AnalyzeMeeting(ctx context.Context, m meeting.Ref) (task.AnalysisResult, error) {
	raw, err := c.complete(ctx, "analyze", buildAnalyzePrompt(m, c.scrub))
	if err != nil {
		return task.AnalysisResult{}, err
	}

	payload, err := decodeAnalysis(c.kind, raw)
	if err != nil {
		return task.AnalysisResult{}, err
	}

	tasks := c.toCandidates(payload.Tasks, 0)
	for i := range tasks {
		tasks[i].MeetingDate = m.Date
		tasks[i].MeetingTopic = m.Topic
	}

	return task.AnalysisResult{
		Tasks:                   tasks,
		TotalMeetingsConsidered: 1,
		Summary:                 payload.Summary,
		Method:                  task.MethodAI,
		AnalyzedAt:              time.Now(),
	}, nil
}

// ExtractImportantTasks extracts at most eight ranked tasks from a batch.
func (c *client) ExtractImportantTasks(ctx context.Context, meetings []meeting.Ref) (task.AnalysisResult, error) {
	ranked := relevance.Meetings(relevance.Rank("", meetings, 0))

	raw, err := c.complete(ctx, "extract", buildExtractPrompt(ranked, c.scrub))
	if err != nil {
		return task.AnalysisResult{}, err
	}

	payload, err := decodeAnalysis(c.kind, raw)
	if err != nil {
		return task.AnalysisResult{}, err
	}

	return task.AnalysisResult{
		Tasks:                   c.toCandidates(payload.Tasks, maxExtractTasks),
		TotalMeetingsConsidered: len(meetings),
		Summary:                 payload.Summary,
		Method:                  task.MethodAI,
		AnalyzedAt:              time.Now(),
	}, nil
}

// complete runs the inner retry loop around raw backend calls: rotate the
// credential pool on 429 and retry after a short delay, or back off on the
// same key when rotation is impossible. The loop is bounded at pool size
// × 2 attempts so a persistently throttled provider escalates to the
// orchestrator instead of spinning.
func (c *client) complete(ctx context.Context, operation, prompt string) (string, error) {
	if !c.pool.Configured() {
		return "", fmt.Errorf("%s: %w", c.kind, ErrUnconfigured)
	}

	maxAttempts := c.pool.Size() * attemptsPerKey
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		c.metrics.IncAttempt(string(c.kind), operation)

		out, err := c.backend.generate(ctx, c.pool.Current(), prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err

		switch {
		case IsRateLimited(err):
			c.metrics.IncRateLimited(string(c.kind))
			if c.pool.Rotate() {
				c.metrics.IncRotation(string(c.kind))
				c.log.Debug("rate limited, rotated credential",
					zap.String("operation", operation), zap.Int("attempt", attempt))
				if err := sleep(ctx, rotationDelay); err != nil {
					return "", err
				}
			} else {
				wait := singleKeyBackoff * time.Duration(attempt+1)
				c.log.Debug("rate limited, single key, backing off",
					zap.String("operation", operation), zap.Duration("wait", wait))
				if err := sleep(ctx, wait); err != nil {
					return "", err
				}
			}
		case IsTransient(err):
			// Transient failures retry on the same key, no rotation.
			if err := sleep(ctx, singleKeyBackoff*time.Duration(attempt+1)); err != nil {
				return "", err
			}
		default:
			// Auth and malformed-request errors will not improve on retry.
			return "", err
		}
	}
	return "", lastErr
}

// toCandidates converts payload tasks to candidates, dropping empty
// titles and capping at limit when limit > 0.
func (c *client) toCandidates(payload []payloadTask, limit int) []task.Candidate {
	now := time.Now()
	out := make([]task.Candidate, 0, len(payload))
	for _, p := range payload {
		if p.Title == "" {
			continue
		}
		priority := task.Priority(p.Priority)
		if !priority.Valid() {
			priority = task.PriorityMedium
		}
		category := task.Category(p.Category)
		switch category {
		case task.CategoryAction, task.CategoryReminder, task.CategoryDeadline:
		default:
			category = task.CategoryAction
		}
		out = append(out, task.Candidate{
			ID:           task.NewID(),
			Title:        task.TruncateTitle(p.Title),
			Description:  p.Description,
			Priority:     priority,
			IsUrgent:     p.IsUrgent,
			Deadline:     p.Deadline,
			Category:     category,
			MeetingDate:  p.MeetingDate,
			MeetingTopic: p.MeetingTopic,
			Provenance:   task.ProvenanceAI,
			CreatedAt:    now,
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// scrub applies the secret scrubber when one is wired.
func (c *client) scrub(text string) string {
	if c.scrubber == nil {
		return text
	}
	return c.scrubber.Scrub(text)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Client = (*client)(nil)
