package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/catalog"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/coldstart"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/transport"
)

// startSession drives a controller through a successful init.
func startSession(t *testing.T, c *Controller, questions []string) InitEffect {
	t.Helper()
	eff, err := c.Begin()
	require.NoError(t, err)
	require.NotEmpty(t, eff.SessionID)
	c.FinishInit(eff.SessionID, questions, nil)
	return eff
}

func TestBeginPopulatesQuestions(t *testing.T) {
	c := New(nil)
	startSession(t, c, []string{"Q1", "Q2"})

	view := c.View()
	assert.Equal(t, coldstart.PhaseAwaitingResponse, view.Phase)
	assert.Equal(t, 0, view.Index)
	assert.Len(t, view.Questions, 2)
	assert.Equal(t, "Q1", view.CurrentQuestion)
	assert.NoError(t, view.Err)
}

func TestBeginGeneratesFreshSessionIDs(t *testing.T) {
	c := New(nil)
	eff1, err := c.Begin()
	require.NoError(t, err)
	c.FinishInit(eff1.SessionID, nil, errors.New("boom"))

	eff2, err := c.Begin()
	require.NoError(t, err)
	assert.NotEqual(t, eff1.SessionID, eff2.SessionID, "failed init ids must never be reused")
}

func TestInitFailureReturnsToIdle(t *testing.T) {
	c := New(nil)
	eff, err := c.Begin()
	require.NoError(t, err)

	initErr := &transport.Error{Kind: transport.KindUnreachable, Op: "session.init"}
	c.FinishInit(eff.SessionID, nil, initErr)

	view := c.View()
	assert.Equal(t, coldstart.PhaseIdle, view.Phase)
	assert.Empty(t, view.SessionID)
	assert.ErrorIs(t, view.Err, initErr)

	// The next attempt is permitted immediately.
	_, err = c.Begin()
	assert.NoError(t, err)
}

func TestBeginWhileInitializingRejected(t *testing.T) {
	c := New(nil)
	_, err := c.Begin()
	require.NoError(t, err)

	_, err = c.Begin()
	assert.ErrorIs(t, err, ErrBusy)
}

func TestSubmitAdoptsServerIndex(t *testing.T) {
	c := New(nil)
	eff := startSession(t, c, []string{"Q1", "Q2", "Q3"})

	resp, err := c.Submit("blue")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.QuestionIndex)
	assert.Equal(t, "blue", resp.Response)

	// Server skips ahead to index 2; the controller must not guess 1.
	c.FinishSubmit(eff.SessionID, SubmitResult{NextIndex: 2}, nil)

	view := c.View()
	assert.Equal(t, coldstart.PhaseAwaitingResponse, view.Phase)
	assert.Equal(t, 2, view.Index)
	assert.Equal(t, "Q3", view.CurrentQuestion)
	assert.Empty(t, view.Draft, "pending text is cleared after a successful round")
}

func TestSubmitSequenceToCompletion(t *testing.T) {
	c := New(nil)
	eff := startSession(t, c, []string{"Q1", "Q2"})

	// Scenario B: first round advances to index 1.
	resp, err := c.Submit("blue")
	require.NoError(t, err)
	c.FinishSubmit(eff.SessionID, SubmitResult{NextIndex: 1, NextQuestion: "Q2"}, nil)
	assert.Equal(t, 1, c.View().Index)

	// Scenario C: second round completes with one recommendation.
	resp, err = c.Submit("red")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.QuestionIndex)
	c.FinishSubmit(eff.SessionID, SubmitResult{
		Complete: true,
		Recommendations: []catalog.RecommendationItem{
			{ProductName: "Mug", Price: 9.99, Category: "Kitchen", Priority: "1"},
		},
	}, nil)

	view := c.View()
	assert.Equal(t, coldstart.PhaseComplete, view.Phase)
	require.Len(t, view.Recommendations, 1)
	assert.Equal(t, 9.99, view.Recommendations[0].Price)
	assert.Equal(t, "Mug", view.Recommendations[0].ProductName)
}

func TestCompleteFreezesSession(t *testing.T) {
	c := New(nil)
	eff := startSession(t, c, []string{"Q1"})
	_, err := c.Submit("anything")
	require.NoError(t, err)
	c.FinishSubmit(eff.SessionID, SubmitResult{Complete: true}, nil)

	_, err = c.Submit("more")
	assert.ErrorIs(t, err, ErrSessionComplete)
}

func TestTransportFailurePreservesDraft(t *testing.T) {
	// Scenario D: failed respond keeps the index and the typed text.
	c := New(nil)
	eff := startSession(t, c, []string{"Q1", "Q2"})

	_, err := c.Submit("typed answer")
	require.NoError(t, err)

	netErr := &transport.Error{Kind: transport.KindUnreachable, Op: "session.respond"}
	c.FinishSubmit(eff.SessionID, SubmitResult{}, netErr)

	view := c.View()
	assert.Equal(t, coldstart.PhaseAwaitingResponse, view.Phase)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, "typed answer", view.Draft)
	assert.ErrorIs(t, view.Err, netErr)

	// Retry is allowed by explicit user action.
	_, err = c.Submit("typed answer")
	assert.NoError(t, err)
}

func TestEmptySubmitRejectedWithoutTransportCall(t *testing.T) {
	// Scenario E. The effect is the only path to a transport call, so a
	// rejection here proves no call was made.
	c := New(nil)
	startSession(t, c, []string{"Q1"})

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := c.Submit(text)
		assert.ErrorIs(t, err, ErrEmptyResponse)
	}
	assert.Equal(t, coldstart.PhaseAwaitingResponse, c.View().Phase)
}

func TestSubmitWhileInFlightIsRejectedNoStateChange(t *testing.T) {
	c := New(nil)
	startSession(t, c, []string{"Q1", "Q2"})

	_, err := c.Submit("first")
	require.NoError(t, err)

	before := c.View()
	_, err = c.Submit("second")
	assert.ErrorIs(t, err, ErrBusy)

	after := c.View()
	assert.Equal(t, before.Phase, after.Phase)
	assert.Equal(t, before.Index, after.Index)
	assert.Equal(t, before.Draft, after.Draft)
}

func TestZeroQuestionsSubmitCompletes(t *testing.T) {
	c := New(nil)
	eff := startSession(t, c, nil)

	view := c.View()
	assert.Equal(t, coldstart.PhaseAwaitingResponse, view.Phase)
	assert.Empty(t, view.Questions)

	// With no question to answer, an empty submit is the completion request.
	resp, err := c.Submit("")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.QuestionIndex)

	c.FinishSubmit(eff.SessionID, SubmitResult{Complete: true}, nil)
	assert.Equal(t, coldstart.PhaseComplete, c.View().Phase)
}

func TestResetYieldsFreshController(t *testing.T) {
	c := New(nil)
	eff := startSession(t, c, []string{"Q1"})
	_, err := c.Submit("x")
	require.NoError(t, err)
	c.FinishSubmit(eff.SessionID, SubmitResult{
		Complete:        true,
		Recommendations: []catalog.RecommendationItem{{ProductName: "Mug"}},
	}, nil)

	c.Reset()

	view := c.View()
	fresh := New(nil).View()
	assert.Equal(t, fresh.Phase, view.Phase)
	assert.Empty(t, view.SessionID)
	assert.Empty(t, view.Questions)
	assert.Equal(t, 0, view.Index)
	assert.NoError(t, view.Err)
	assert.Empty(t, view.Recommendations)
}

func TestStaleResultsAfterResetIgnored(t *testing.T) {
	c := New(nil)
	eff, err := c.Begin()
	require.NoError(t, err)

	c.Reset()
	c.FinishInit(eff.SessionID, []string{"Q1"}, nil)

	assert.Equal(t, coldstart.PhaseIdle, c.View().Phase)
}

func TestRefineReplacesRecommendations(t *testing.T) {
	c := New(nil)
	eff := startSession(t, c, []string{"Q1"})
	_, err := c.Submit("x")
	require.NoError(t, err)
	c.FinishSubmit(eff.SessionID, SubmitResult{
		Complete:        true,
		Recommendations: []catalog.RecommendationItem{{ProductID: "A", ProductName: "Mug"}},
	}, nil)

	refEff, err := c.BeginRefine([]string{"A"}, nil)
	require.NoError(t, err)
	assert.Equal(t, eff.SessionID, refEff.SessionID)
	assert.Equal(t, []string{"A"}, refEff.Liked)

	// In flight: both submit and a second refine are rejected.
	_, err = c.Submit("y")
	assert.ErrorIs(t, err, ErrBusy)
	_, err = c.BeginRefine(nil, nil)
	assert.ErrorIs(t, err, ErrBusy)

	refined := []catalog.RecommendationItem{{ProductID: "B", ProductName: "Teapot"}}
	c.FinishRefine(eff.SessionID, refined, nil)

	view := c.View()
	assert.Equal(t, coldstart.PhaseComplete, view.Phase)
	require.Len(t, view.Recommendations, 1)
	assert.Equal(t, "Teapot", view.Recommendations[0].ProductName)
}

func TestRefineFailureKeepsPreviousList(t *testing.T) {
	c := New(nil)
	eff := startSession(t, c, []string{"Q1"})
	_, err := c.Submit("x")
	require.NoError(t, err)
	c.FinishSubmit(eff.SessionID, SubmitResult{
		Complete:        true,
		Recommendations: []catalog.RecommendationItem{{ProductID: "A", ProductName: "Mug"}},
	}, nil)

	_, err = c.BeginRefine(nil, []string{"A"})
	require.NoError(t, err)

	refineErr := &transport.Error{Kind: transport.KindTimeout, Op: "session.refine"}
	c.FinishRefine(eff.SessionID, nil, refineErr)

	view := c.View()
	assert.Equal(t, coldstart.PhaseComplete, view.Phase)
	require.Len(t, view.Recommendations, 1)
	assert.Equal(t, "Mug", view.Recommendations[0].ProductName)
	assert.ErrorIs(t, view.Err, refineErr)
}

func TestRefineBeforeCompleteRejected(t *testing.T) {
	c := New(nil)
	startSession(t, c, []string{"Q1"})

	_, err := c.BeginRefine(nil, nil)
	assert.ErrorIs(t, err, ErrSessionNotComplete)
}
