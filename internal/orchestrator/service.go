// Package orchestrator runs ask/analyze/extract operations against the
// provider fallback chain and commits results to the task ledger. Each
// operation runs to completion before returning; nothing is committed
// when the caller's context is cancelled mid-flight.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kararlabs/meetmind/internal/heuristic"
	"github.com/kararlabs/meetmind/internal/ledger"
	"github.com/kararlabs/meetmind/internal/meeting"
	"github.com/kararlabs/meetmind/internal/provider"
	"github.com/kararlabs/meetmind/internal/task"
	"github.com/kararlabs/meetmind/internal/telemetry"
)

// Service is the core facade over providers, the heuristic extractor, and
// the ledger.
type Service struct {
	registry  *provider.Registry
	meetings  meeting.Repository
	ledger    *ledger.Ledger
	extractor *heuristic.Extractor
	log       *zap.Logger
	metrics   *telemetry.Metrics
}

// Options wires the service dependencies.
type Options struct {
	Registry  *provider.Registry
	Meetings  meeting.Repository
	Ledger    *ledger.Ledger
	Extractor *heuristic.Extractor
	Logger    *zap.Logger
	Metrics   *telemetry.Metrics
}

// New creates the orchestrator service.
func New(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = heuristic.NewExtractor()
	}
	return &Service{
		registry:  opts.Registry,
		meetings:  opts.Meetings,
		ledger:    opts.Ledger,
		extractor: extractor,
		log:       log.Named("orchestrator"),
		metrics:   opts.Metrics,
	}
}

// ConfiguredProviders returns all supported provider descriptors in
// priority order, configured or not.
func (s *Service) ConfiguredProviders() []provider.Descriptor {
	return s.registry.Descriptors()
}

// AskResponse is an answer plus the provider that produced it.
type AskResponse struct {
	provider.AskResult
	ProviderUsed string `json:"provider_used"`
}

// AskQuestion answers a free-form question over the given meetings.
// There is no heuristic fallback for questions: when no provider works
// the caller gets a clear configured-vs-unavailable error.
func (s *Service) AskQuestion(ctx context.Context, question string, meetings []meeting.Ref, preferred string) (AskResponse, error) {
	var result provider.AskResult
	used, err := s.runWithFallback(ctx, preferred, func(ctx context.Context, c provider.Client) error {
		var opErr error
		result, opErr = c.AskQuestion(ctx, question, meetings)
		return opErr
	})
	if err != nil {
		return AskResponse{}, err
	}
	return AskResponse{AskResult: result, ProviderUsed: used}, nil
}

// AnalyzeMeeting extracts tasks from one meeting. An already-analyzed
// meeting with live ledger tasks returns those tasks as a cached result.
// When every provider fails, the heuristic extractor takes over. New
// tasks are merged into the ledger and the meeting is marked analyzed.
func (s *Service) AnalyzeMeeting(ctx context.Context, m meeting.Ref, preferred string) (task.AnalysisResult, error) {
	if cached, ok := s.cachedAnalysis(ctx, m); ok {
		return cached, nil
	}

	var result task.AnalysisResult
	_, err := s.runWithFallback(ctx, preferred, func(ctx context.Context, c provider.Client) error {
		var opErr error
		result, opErr = c.AnalyzeMeeting(ctx, m)
		return opErr
	})
	if err != nil {
		if isConfigurationError(err) {
			s.metrics.IncHeuristicFallback()
			s.log.Info("AI analysis unavailable, using heuristic extraction",
				zap.String("topic", m.Topic), zap.Error(err))
			result = s.extractor.Result([]meeting.Ref{m})
		} else {
			return task.AnalysisResult{}, err
		}
	}

	if err := s.commit(ctx, result.Tasks, []string{m.ID}); err != nil {
		return task.AnalysisResult{}, err
	}
	return result, nil
}

// ExtractImportantTasks extracts ranked tasks from all meetings not yet
// analyzed, or from every meeting when the ledger is empty (bootstrap).
// The AI path runs first; on total failure, or when it surfaces no tasks,
// the deterministic heuristic takes over. Results are merged into the
// ledger and the source meetings marked analyzed.
func (s *Service) ExtractImportantTasks(ctx context.Context, preferred string) (task.AnalysisResult, error) {
	records, err := s.meetings.All(ctx)
	if err != nil {
		return task.AnalysisResult{}, err
	}

	pool := records
	if !s.ledger.Empty() {
		pool = meeting.Unanalyzed(records)
	}
	if len(pool) == 0 {
		// Everything has been analyzed; surface the live active set.
		return task.AnalysisResult{
			Tasks:                   s.ledger.Active(),
			TotalMeetingsConsidered: len(records),
			Summary:                 "Tüm toplantılar zaten analiz edildi.",
			Method:                  task.MethodCached,
			AnalyzedAt:              time.Now(),
		}, nil
	}

	refs := meeting.Refs(pool)
	var result task.AnalysisResult
	_, aiErr := s.runWithFallback(ctx, preferred, func(ctx context.Context, c provider.Client) error {
		var opErr error
		result, opErr = c.ExtractImportantTasks(ctx, refs)
		return opErr
	})
	if aiErr != nil || len(result.Tasks) == 0 {
		if aiErr != nil && !isConfigurationError(aiErr) {
			return task.AnalysisResult{}, aiErr
		}
		s.metrics.IncHeuristicFallback()
		s.log.Info("AI extraction unavailable, using heuristic extraction",
			zap.Int("meetings", len(refs)), zap.Error(aiErr))
		result = s.extractor.Result(refs)
	}

	ids := make([]string, len(pool))
	for i, rec := range pool {
		ids[i] = rec.ID
	}
	if err := s.commit(ctx, result.Tasks, ids); err != nil {
		return task.AnalysisResult{}, err
	}
	return result, nil
}

// CompleteTask moves a task to the completed set.
func (s *Service) CompleteTask(taskID string) (task.Candidate, error) {
	return s.ledger.Complete(taskID)
}

// UpdateTaskPriority changes the priority of an active task.
func (s *Service) UpdateTaskPriority(taskID string, p task.Priority) (task.Candidate, error) {
	return s.ledger.UpdatePriority(taskID, p)
}

// CleanupForDeletedMeeting removes the deleted meeting's tasks from both
// ledger sets.
func (s *Service) CleanupForDeletedMeeting(m meeting.Ref) (ledger.CleanupResult, error) {
	return s.ledger.CleanupForDeletedMeeting(m)
}

// CleanupByTopics removes all tasks belonging to the given topics.
func (s *Service) CleanupByTopics(topics []string) (ledger.CleanupResult, error) {
	return s.ledger.CleanupByTopics(topics)
}

// ActiveTasks returns the current active set.
func (s *Service) ActiveTasks() []task.Candidate { return s.ledger.Active() }

// CompletedTasks returns the completed set.
func (s *Service) CompletedTasks() []task.Candidate { return s.ledger.Completed() }

// commit merges candidates and marks meetings analyzed, unless the
// context was cancelled. Operations are all-or-nothing.
func (s *Service) commit(ctx context.Context, tasks []task.Candidate, meetingIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.ledger.MergeNew(tasks); err != nil {
		return err
	}
	return s.meetings.MarkAnalyzed(ctx, meetingIDs, time.Now())
}

// cachedAnalysis returns the live ledger tasks for a meeting that has
// already been analyzed.
func (s *Service) cachedAnalysis(ctx context.Context, m meeting.Ref) (task.AnalysisResult, bool) {
	records, err := s.meetings.All(ctx)
	if err != nil {
		return task.AnalysisResult{}, false
	}
	analyzed := false
	for _, rec := range records {
		if rec.ID == m.ID && rec.Analyzed {
			analyzed = true
			break
		}
	}
	if !analyzed {
		return task.AnalysisResult{}, false
	}

	tasks := s.ledger.ActiveForMeeting(m)
	if len(tasks) == 0 {
		return task.AnalysisResult{}, false
	}
	return task.AnalysisResult{
		Tasks:                   tasks,
		TotalMeetingsConsidered: 1,
		Summary:                 "Bu toplantı daha önce analiz edildi.",
		Method:                  task.MethodCached,
		AnalyzedAt:              time.Now(),
	}, true
}

// isConfigurationError reports whether err is a terminal provider-chain
// failure that the heuristic extractor should absorb. A provider that
// persistently answers non-JSON text counts: the decision text is still
// there to analyze.
func isConfigurationError(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrNoProvidersConfigured),
		errors.Is(err, ErrNoWorkingProvider),
		provider.IsRateLimited(err),
		provider.IsTransient(err),
		provider.IsAuth(err),
		provider.IsKind(err, provider.ErrorMalformed):
		return true
	}
	return false
}
