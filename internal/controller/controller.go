// Package controller owns the cold-start onboarding state machine. One
// Controller instance drives exactly one onboarding attempt: it is the only
// owner of the session, the question cursor and the in-flight guard.
//
// Transitions are split-phase: Begin/Submit/BeginRefine validate the event
// against the current phase and return an effect describing the transport
// call to make, and the matching Finish* method folds the call's outcome
// back into the state. The caller (the TUI shell, or a test) executes the
// effects; the controller itself never blocks on the network.
package controller

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/catalog"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/coldstart"
)

var (
	// ErrBusy rejects an event while an init/respond/refine call is already
	// in flight. The event is dropped, never queued.
	ErrBusy = errors.New("a session call is already in flight")
	// ErrEmptyResponse rejects whitespace-only response text before any
	// transport call is made.
	ErrEmptyResponse = errors.New("response text is empty")
	// ErrNoSession rejects a submit with no active session.
	ErrNoSession = errors.New("no active session")
	// ErrSessionComplete rejects a submit after completion; reset first.
	ErrSessionComplete = errors.New("session is complete")
	// ErrSessionNotComplete rejects refine feedback before completion.
	ErrSessionNotComplete = errors.New("session is not complete")
)

// InitEffect asks the caller to run SessionTransport.Init.
type InitEffect struct {
	SessionID string
}

// RespondEffect asks the caller to run SessionTransport.Respond.
type RespondEffect struct {
	SessionID     string
	QuestionIndex int
	Response      string
}

// RefineEffect asks the caller to run SessionTransport.Refine.
type RefineEffect struct {
	SessionID string
	Liked     []string
	Disliked  []string
}

// Snapshot is the view-relevant state at one instant.
type Snapshot struct {
	Phase           coldstart.Phase
	SessionID       string
	Questions       []string
	Index           int
	CurrentQuestion string
	Draft           string
	Err             error
	Recommendations []catalog.RecommendationItem
}

// Controller is safe for use from a single event loop; the mutex only
// protects against Finish* callbacks racing a concurrent snapshot.
type Controller struct {
	mu  sync.Mutex
	log *zap.Logger

	phase        coldstart.Phase
	session      coldstart.Session
	nextQuestion string // server-supplied text when it branches past the list
	draft        string // response text preserved across a failed submit
	lastErr      error
	recs         []catalog.RecommendationItem
}

func New(log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{log: log, phase: coldstart.PhaseIdle}
}

// Begin starts a fresh onboarding attempt. The returned effect carries a
// newly generated session identifier; identifiers are never reused, even
// when an earlier init failed.
func (c *Controller) Begin() (InitEffect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case coldstart.PhaseIdle:
	case coldstart.PhaseInitializing:
		return InitEffect{}, ErrBusy
	default:
		return InitEffect{}, ErrSessionNotComplete
	}

	c.session = coldstart.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	c.phase = coldstart.PhaseInitializing
	c.log.Info("cold-start init", zap.String("session", c.session.ID))
	return InitEffect{SessionID: c.session.ID}, nil
}

// FinishInit folds the init outcome back in. Outcomes for a session other
// than the current one are ignored (a reset may have happened meanwhile).
func (c *Controller) FinishInit(sessionID string, questions []string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != coldstart.PhaseInitializing || c.session.ID != sessionID {
		c.log.Debug("stale init result ignored", zap.String("session", sessionID))
		return
	}

	if err != nil {
		c.log.Warn("cold-start init failed", zap.Error(err))
		c.phase = coldstart.PhaseIdle
		c.session = coldstart.Session{}
		c.lastErr = err
		return
	}

	c.session.Questions = questions
	c.session.Index = 0
	c.phase = coldstart.PhaseAwaitingResponse
	c.lastErr = nil
	c.log.Info("cold-start ready", zap.Int("questions", len(questions)))
}

// Submit validates and stages one response. Whitespace-only text is
// rejected without a transport call, except for a zero-question session,
// where the single (possibly empty) submit acts as the completion request.
func (c *Controller) Submit(text string) (RespondEffect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case coldstart.PhaseAwaitingResponse:
	case coldstart.PhaseSubmitting, coldstart.PhaseInitializing, coldstart.PhaseRefining:
		return RespondEffect{}, ErrBusy
	case coldstart.PhaseComplete:
		return RespondEffect{}, ErrSessionComplete
	default:
		return RespondEffect{}, ErrNoSession
	}

	if strings.TrimSpace(text) == "" && len(c.session.Questions) > 0 {
		return RespondEffect{}, ErrEmptyResponse
	}

	c.draft = text
	c.phase = coldstart.PhaseSubmitting
	return RespondEffect{
		SessionID:     c.session.ID,
		QuestionIndex: c.session.Index,
		Response:      text,
	}, nil
}

// FinishSubmit folds a respond outcome back in. On a transport failure the
// index is unchanged and the draft survives so the user can retry without
// re-typing. On a non-complete success the server-supplied index is adopted
// verbatim; the server is the authority on sequencing.
func (c *Controller) FinishSubmit(sessionID string, result SubmitResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != coldstart.PhaseSubmitting || c.session.ID != sessionID {
		c.log.Debug("stale respond result ignored", zap.String("session", sessionID))
		return
	}

	if err != nil {
		c.log.Warn("respond failed",
			zap.Int("index", c.session.Index), zap.Error(err))
		c.phase = coldstart.PhaseAwaitingResponse
		c.lastErr = err
		return
	}

	c.lastErr = nil
	c.draft = ""

	if result.Complete {
		c.recs = result.Recommendations
		c.session.Index = len(c.session.Questions)
		c.phase = coldstart.PhaseComplete
		c.log.Info("cold-start complete", zap.Int("recommendations", len(c.recs)))
		return
	}

	c.session.Index = result.NextIndex
	c.nextQuestion = result.NextQuestion
	c.phase = coldstart.PhaseAwaitingResponse
}

// BeginRefine stages a refinement round against a completed session.
func (c *Controller) BeginRefine(liked, disliked []string) (RefineEffect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case coldstart.PhaseComplete:
	case coldstart.PhaseRefining:
		return RefineEffect{}, ErrBusy
	default:
		return RefineEffect{}, ErrSessionNotComplete
	}

	c.phase = coldstart.PhaseRefining
	return RefineEffect{
		SessionID: c.session.ID,
		Liked:     liked,
		Disliked:  disliked,
	}, nil
}

// FinishRefine folds a refine outcome back in. The session stays Complete
// either way; on failure the previous list is kept.
func (c *Controller) FinishRefine(sessionID string, recs []catalog.RecommendationItem, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != coldstart.PhaseRefining || c.session.ID != sessionID {
		c.log.Debug("stale refine result ignored", zap.String("session", sessionID))
		return
	}

	c.phase = coldstart.PhaseComplete
	if err != nil {
		c.log.Warn("refine failed", zap.Error(err))
		c.lastErr = err
		return
	}
	c.lastErr = nil
	c.recs = recs
}

// Reset returns the controller to a state indistinguishable from a freshly
// constructed one. Results of any still-outstanding call are discarded when
// they arrive, because their session identifier no longer matches.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.phase = coldstart.PhaseIdle
	c.session = coldstart.Session{}
	c.nextQuestion = ""
	c.draft = ""
	c.lastErr = nil
	c.recs = nil
}

// View returns a copy of the current view-relevant state.
func (c *Controller) View() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.session.CurrentQuestion()
	if current == "" && c.phase == coldstart.PhaseAwaitingResponse {
		current = c.nextQuestion
	}

	questions := make([]string, len(c.session.Questions))
	copy(questions, c.session.Questions)
	recs := make([]catalog.RecommendationItem, len(c.recs))
	copy(recs, c.recs)

	return Snapshot{
		Phase:           c.phase,
		SessionID:       c.session.ID,
		Questions:       questions,
		Index:           c.session.Index,
		CurrentQuestion: current,
		Draft:           c.draft,
		Err:             c.lastErr,
		Recommendations: recs,
	}
}

// SubmitResult mirrors the backend's verdict on one response round.
type SubmitResult struct {
	Complete        bool
	NextIndex       int
	NextQuestion    string
	Recommendations []catalog.RecommendationItem
}
