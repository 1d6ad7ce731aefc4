package service

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/validation"
	"github.com/Meshed/PondDiggingCalculator-sub003/pkg/debounce"
	"github.com/Meshed/PondDiggingCalculator-sub003/pkg/log"
)

// View is what the presentation layer shows after the latest completed evaluation.
type View struct {
	Revision uint64 `json:"revision"`
	// Result is the last successful estimate, possibly from an earlier revision.
	Result     *estimation.CalculationResult    `json:"result,omitempty"`
	Breakdown  map[string]estimation.Estimation `json:"breakdown,omitempty"`
	PondVolume float64                          `json:"pondVolume,omitempty"`
	// Stale is set when Result predates the current input because that input failed.
	Stale  bool               `json:"stale"`
	Errors []validation.Issue `json:"errors,omitempty"`
	// CalculationUnavailable flags a failure that is not tied to a single field.
	CalculationUnavailable bool   `json:"calculationUnavailable"`
	Message                string `json:"message,omitempty"`
}

func (v View) clone() View {
	if v.Result != nil {
		result := v.Result.Clone()
		v.Result = &result
	}
	v.Breakdown = maps.Clone(v.Breakdown)
	v.Errors = slices.Clone(v.Errors)
	return v
}

// Session keeps the state of one project form: input changes are debounced and the
// last successful estimate survives later invalid input.
type Session struct {
	id        uuid.UUID
	svc       *EstimationService
	debouncer *debounce.Debouncer
	onUpdate  func(View)
	logger    *log.StructuredLogger

	mu        sync.Mutex
	submitted uint64
	applied   uint64
	lastValid *Outcome
	view      View
}

type SessionOption func(*Session)

// WithOnUpdate registers a callback invoked with every new View, outside the session lock.
func WithOnUpdate(fn func(View)) SessionOption {
	return func(s *Session) {
		s.onUpdate = fn
	}
}

func NewSession(svc *EstimationService, window time.Duration, opts ...SessionOption) *Session {
	s := &Session{
		id:        uuid.New(),
		svc:       svc,
		debouncer: debounce.New(window),
		logger:    log.NewDebugLogger("estimation_session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

// Submit records new input and schedules an evaluation once input pauses.
// Input arriving inside the debounce window replaces the pending evaluation.
func (s *Session) Submit(ctx context.Context, req FleetRequest) uint64 {
	s.mu.Lock()
	s.submitted++
	rev := s.submitted
	s.mu.Unlock()

	s.logger.WithContext(ctx).Operation("submit").WithUUID("session_id", s.id).Build().
		Step("scheduled").WithInt("revision", int(rev)).Log()

	s.debouncer.Trigger(func() {
		s.evaluate(ctx, req, rev)
	})
	return rev
}

// Evaluate runs an evaluation immediately, bypassing the debounce window.
func (s *Session) Evaluate(ctx context.Context, req FleetRequest) View {
	s.mu.Lock()
	s.submitted++
	rev := s.submitted
	s.mu.Unlock()

	s.debouncer.Cancel()
	return s.evaluate(ctx, req, rev)
}

// Reject records input that could not even be read, such as an undecodable project file.
// Any pending evaluation is dropped and the last valid result is kept, marked stale.
func (s *Session) Reject(ctx context.Context, err error) View {
	s.mu.Lock()
	s.submitted++
	rev := s.submitted
	s.mu.Unlock()

	s.debouncer.Cancel()
	s.logger.WithContext(ctx).Operation("reject").WithUUID("session_id", s.id).Build().
		Step("rejected").WithInt("revision", int(rev)).WithString("error", err.Error()).Log()
	return s.apply(rev, nil, err)
}

func (s *Session) evaluate(ctx context.Context, req FleetRequest, rev uint64) View {
	ctx = log.ContextWithFields(ctx, zap.Stringer("session_id", s.id), zap.Uint64("revision", rev))
	outcome, err := s.svc.EstimateFleet(ctx, req)
	return s.apply(rev, outcome, err)
}

func (s *Session) apply(rev uint64, outcome *Outcome, err error) View {
	s.mu.Lock()
	if rev < s.applied {
		// a newer evaluation already completed
		v := s.view.clone()
		s.mu.Unlock()
		return v
	}
	s.applied = rev
	s.view = s.nextView(rev, outcome, err)
	v := s.view.clone()
	s.mu.Unlock()

	if s.onUpdate != nil {
		s.onUpdate(v)
	}
	return v
}

func (s *Session) nextView(rev uint64, outcome *Outcome, err error) View {
	if err == nil {
		s.lastValid = outcome
		result := outcome.Result.Clone()
		return View{Revision: rev, Result: &result, Breakdown: outcome.clone().Breakdown, PondVolume: outcome.PondVolume}
	}

	v := View{Revision: rev, Message: err.Error()}
	if s.lastValid != nil {
		result := s.lastValid.Result.Clone()
		v.Result = &result
		v.Breakdown = s.lastValid.clone().Breakdown
		v.PondVolume = s.lastValid.PondVolume
		v.Stale = true
	}
	switch {
	case IsCalculationUnavailable(err):
		v.CalculationUnavailable = true
	case validation.IsValidationError(err):
		v.Errors = validation.Issues(err)
	}
	return v
}

// View returns the state after the latest completed evaluation.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.clone()
}

// Pending reports whether an evaluation is waiting for input to pause.
func (s *Session) Pending() bool {
	return s.debouncer.Pending()
}

// Close drops any pending evaluation. The session keeps its last View.
func (s *Session) Close() {
	s.debouncer.Close()
}
