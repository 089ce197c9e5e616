package shell

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/config"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/catalog"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/coldstart"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/transport"
)

// fakeSessions scripts the session transport and counts calls.
type fakeSessions struct {
	questions   []string
	initErr     error
	respondFn   func(index int, text string) (transport.TurnResult, error)
	respondN    int
	refineRecs  []catalog.RecommendationItem
	refineErr   error
	lastSession string
}

func (f *fakeSessions) Init(_ context.Context, sessionID string) ([]string, error) {
	f.lastSession = sessionID
	return f.questions, f.initErr
}

func (f *fakeSessions) Respond(_ context.Context, _ string, index int, text string) (transport.TurnResult, error) {
	f.respondN++
	return f.respondFn(index, text)
}

func (f *fakeSessions) Refine(_ context.Context, _ string, _, _ []string) ([]catalog.RecommendationItem, error) {
	return f.refineRecs, f.refineErr
}

// drain runs a command tree synchronously and feeds every produced message
// back into the model, mimicking the bubbletea runtime.
func drain(t *testing.T, m coldstartModel, cmd tea.Cmd) coldstartModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch batch := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range batch {
			m = drain(t, m, sub)
		}
		return m
	default:
		switch msg.(type) {
		case initDoneMsg, respondDoneMsg, refineDoneMsg:
			m, _ = m.update(msg)
		}
		return m
	}
}

func newTestColdstart(fake *fakeSessions) coldstartModel {
	deps := Deps{Sessions: fake, Cfg: config.ClientConfig{UserID: "u1", TopK: 5}}
	return newColdstartModel(deps, newStyles())
}

func pressEnter(t *testing.T, m coldstartModel) (coldstartModel, tea.Cmd) {
	t.Helper()
	return m.update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestColdstartHappyPath(t *testing.T) {
	fake := &fakeSessions{
		questions: []string{"Q1", "Q2"},
		respondFn: func(index int, text string) (transport.TurnResult, error) {
			if index == 0 {
				return transport.TurnResult{NextIndex: 1, NextQuestion: "Q2"}, nil
			}
			return transport.TurnResult{
				Complete: true,
				Recommendations: []catalog.RecommendationItem{
					{ProductID: "A", ProductName: "Mug", Price: 9.99, Category: "Kitchen"},
				},
			}, nil
		},
	}

	m := newTestColdstart(fake)
	m, cmd := m.enter()
	m = drain(t, m, cmd)

	view := m.ctrl.View()
	require.Equal(t, coldstart.PhaseAwaitingResponse, view.Phase)
	assert.Equal(t, "Q1", view.CurrentQuestion)
	assert.NotEmpty(t, fake.lastSession)

	m.input.SetValue("blue")
	m, cmd = pressEnter(t, m)
	m = drain(t, m, cmd)

	view = m.ctrl.View()
	assert.Equal(t, 1, view.Index)
	assert.Empty(t, m.input.Value(), "input cleared after a successful round")

	m.input.SetValue("red")
	m, cmd = pressEnter(t, m)
	m = drain(t, m, cmd)

	view = m.ctrl.View()
	assert.Equal(t, coldstart.PhaseComplete, view.Phase)
	require.Len(t, view.Recommendations, 1)
	assert.Equal(t, 9.99, view.Recommendations[0].Price)
	assert.Equal(t, 2, fake.respondN)
}

func TestColdstartEmptySubmitMakesNoCall(t *testing.T) {
	fake := &fakeSessions{
		questions: []string{"Q1"},
		respondFn: func(int, string) (transport.TurnResult, error) {
			return transport.TurnResult{}, nil
		},
	}

	m := newTestColdstart(fake)
	m, cmd := m.enter()
	m = drain(t, m, cmd)

	m.input.SetValue("   ")
	m, _ = pressEnter(t, m)

	assert.Equal(t, 0, fake.respondN)
	assert.NotEmpty(t, m.hint)
}

func TestColdstartFailurePreservesTypedText(t *testing.T) {
	netErr := &transport.Error{Kind: transport.KindUnreachable, Op: "session.respond"}
	fake := &fakeSessions{
		questions: []string{"Q1"},
		respondFn: func(int, string) (transport.TurnResult, error) {
			return transport.TurnResult{}, netErr
		},
	}

	m := newTestColdstart(fake)
	m, cmd := m.enter()
	m = drain(t, m, cmd)

	m.input.SetValue("my answer")
	m, cmd = pressEnter(t, m)
	m = drain(t, m, cmd)

	view := m.ctrl.View()
	assert.Equal(t, coldstart.PhaseAwaitingResponse, view.Phase)
	assert.ErrorIs(t, view.Err, netErr)
	assert.Equal(t, "my answer", m.input.Value(), "typed text survives the failure")
}

func TestColdstartRefineFlow(t *testing.T) {
	fake := &fakeSessions{
		questions: []string{"Q1"},
		respondFn: func(int, string) (transport.TurnResult, error) {
			return transport.TurnResult{
				Complete: true,
				Recommendations: []catalog.RecommendationItem{
					{ProductID: "A", ProductName: "Mug", Category: "Kitchen"},
					{ProductID: "B", ProductName: "Bunting", Category: "Party"},
				},
			}, nil
		},
		refineRecs: []catalog.RecommendationItem{
			{ProductID: "C", ProductName: "Teapot", Category: "Kitchen"},
		},
	}

	m := newTestColdstart(fake)
	m, cmd := m.enter()
	m = drain(t, m, cmd)

	m.input.SetValue("tea")
	m, cmd = pressEnter(t, m)
	m = drain(t, m, cmd)
	require.Equal(t, coldstart.PhaseComplete, m.ctrl.View().Phase)

	// Like the first item, then refine.
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m, cmd = m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = drain(t, m, cmd)

	view := m.ctrl.View()
	assert.Equal(t, coldstart.PhaseComplete, view.Phase)
	require.Len(t, view.Recommendations, 1)
	assert.Equal(t, "Teapot", view.Recommendations[0].ProductName)
	assert.Empty(t, m.liked, "feedback marks reset after a successful refine")
}

func TestColdstartInitFailureOffersRetry(t *testing.T) {
	fake := &fakeSessions{
		initErr: &transport.Error{Kind: transport.KindTimeout, Op: "session.init"},
		respondFn: func(int, string) (transport.TurnResult, error) {
			return transport.TurnResult{}, nil
		},
	}

	m := newTestColdstart(fake)
	m, cmd := m.enter()
	m = drain(t, m, cmd)
	first := fake.lastSession

	view := m.ctrl.View()
	assert.Equal(t, coldstart.PhaseIdle, view.Phase)
	assert.Error(t, view.Err)

	// Retry generates a fresh session id.
	fake.initErr = nil
	fake.questions = []string{"Q1"}
	m, cmd = m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = drain(t, m, cmd)

	assert.Equal(t, coldstart.PhaseAwaitingResponse, m.ctrl.View().Phase)
	assert.NotEqual(t, first, fake.lastSession)
}
