package service

import (
	"containerquote/internal/cache"
	"containerquote/internal/engine"
	"containerquote/internal/model"
	"containerquote/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("no configuration for product")
	ErrSessionNotFound = errors.New("session not found or expired")
)

// StartSessionResult bundles everything the storefront needs to open a
// quote page: the session, its scoped token, and the initial snapshot.
type StartSessionResult struct {
	Session  *model.QuoteSession `json:"session"`
	Token    string              `json:"token"`
	Snapshot *model.Snapshot     `json:"snapshot"`
}

// QuoteService owns the quote-session lifecycle: start, answer events,
// view-angle changes, and finalization. All evaluation goes through the
// engine evaluator; this service never computes price or image itself.
type QuoteService struct {
	configRepo     repository.ConfigRepo
	submissionRepo repository.SubmissionRepo
	sessions       cache.SessionCache
	authSvc        *AuthService
	broadcaster    Broadcaster
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	configRepo repository.ConfigRepo,
	submissionRepo repository.SubmissionRepo,
	sessions cache.SessionCache,
	authSvc *AuthService,
) *QuoteService {
	return &QuoteService{
		configRepo:     configRepo,
		submissionRepo: submissionRepo,
		sessions:       sessions,
		authSvc:        authSvc,
	}
}

// SetBroadcaster sets the broadcaster for live-preview pushes
func (s *QuoteService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// StartSession loads and compiles the product's configuration, creates an
// empty selection state and returns the initial snapshot with a
// session-scoped token. A malformed configuration fails the whole call: the
// storefront shows its unavailable state, never a partial evaluation.
func (s *QuoteService) StartSession(ctx context.Context, productID string) (*StartSessionResult, error) {
	evaluator, session, err := s.evaluatorFor(ctx, productID)
	if err != nil {
		return nil, err
	}

	snapshot, state := evaluator.Evaluate(session.State)
	session.State = state

	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	token, err := s.authSvc.GenerateSessionToken(session.ID, productID)
	if err != nil {
		return nil, err
	}

	return &StartSessionResult{
		Session:  session,
		Token:    token,
		Snapshot: snapshot,
	}, nil
}

// ApplyAnswer runs one answer-change event through the evaluator and stores
// the new canonical state. Invalid events degrade to a no-op snapshot.
func (s *QuoteService) ApplyAnswer(ctx context.Context, sessionID string, ev model.AnswerEvent) (*model.Snapshot, error) {
	return s.evaluate(ctx, sessionID, func(e *engine.Evaluator, state *model.SelectionState) (*model.Snapshot, *model.SelectionState) {
		return e.OnAnswerChanged(state, ev)
	})
}

// SetViewAngle switches the preview angle; answers and price are untouched
func (s *QuoteService) SetViewAngle(ctx context.Context, sessionID string, angle model.ViewAngle) (*model.Snapshot, error) {
	return s.evaluate(ctx, sessionID, func(e *engine.Evaluator, state *model.SelectionState) (*model.Snapshot, *model.SelectionState) {
		return e.OnViewAngleChanged(state, angle)
	})
}

// GetSnapshot re-derives the current snapshot without mutating the session
func (s *QuoteService) GetSnapshot(ctx context.Context, sessionID string) (*model.Snapshot, error) {
	return s.evaluate(ctx, sessionID, func(e *engine.Evaluator, state *model.SelectionState) (*model.Snapshot, *model.SelectionState) {
		return e.Evaluate(state)
	})
}

// Submit finalizes a session: the last snapshot's cleaned answers and total
// are persisted verbatim with the contact details, and the session is
// discarded.
func (s *QuoteService) Submit(ctx context.Context, sessionID string, contact model.ContactDetails) (*model.QuoteSubmission, error) {
	session, evaluator, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snapshot, state := evaluator.Evaluate(session.State)

	sub := &model.QuoteSubmission{
		SessionID: session.ID,
		ProductID: session.ProductID,
		ConfigID:  session.ConfigID,
		Answers:   state.Answers,
		Total:     snapshot.Total,
		Contact:   contact,
	}

	id, err := s.submissionRepo.Create(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}
	sub.ID = id

	s.sessions.Delete(ctx, session.ID)
	return sub, nil
}

func (s *QuoteService) evaluate(ctx context.Context, sessionID string, fn func(*engine.Evaluator, *model.SelectionState) (*model.Snapshot, *model.SelectionState)) (*model.Snapshot, error) {
	session, evaluator, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snapshot, state := fn(evaluator, session.State)
	session.State = state
	session.UpdatedAt = time.Now()

	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(session.ID, "snapshot", snapshot)
	}

	return snapshot, nil
}

func (s *QuoteService) loadSession(ctx context.Context, sessionID string) (*model.QuoteSession, *engine.Evaluator, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}

	cfg, err := s.configRepo.GetByID(ctx, session.ConfigID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg == nil {
		return nil, nil, ErrProductNotFound
	}

	cm, err := engine.Compile(cfg)
	if err != nil {
		return nil, nil, err
	}

	return session, engine.NewEvaluator(cm), nil
}

func (s *QuoteService) evaluatorFor(ctx context.Context, productID string) (*engine.Evaluator, *model.QuoteSession, error) {
	cfg, err := s.configRepo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg == nil {
		return nil, nil, ErrProductNotFound
	}

	cm, err := engine.Compile(cfg)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	session := &model.QuoteSession{
		ID:        uuid.New().String(),
		ProductID: productID,
		ConfigID:  cfg.ID,
		State:     model.NewSelectionState(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return engine.NewEvaluator(cm), session, nil
}
