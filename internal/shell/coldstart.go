package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/controller"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/catalog"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/coldstart"
)

type initDoneMsg struct {
	sessionID string
	questions []string
	err       error
}

type respondDoneMsg struct {
	sessionID string
	index     int
	result    controller.SubmitResult
	err       error
}

type refineDoneMsg struct {
	sessionID string
	recs      []catalog.RecommendationItem
	err       error
}

// coldstartModel hosts one onboarding attempt. A fresh controller is
// created on every entry; the previous attempt's state is unreachable after
// that, so its late results are ignored by the session-id guard.
type coldstartModel struct {
	deps   Deps
	styles styles
	ctrl   *controller.Controller
	input  textinput.Model
	spin   spinner.Model

	cursor   int
	liked    map[string]bool
	disliked map[string]bool
	hint     string
}

func newColdstartModel(deps Deps, st styles) coldstartModel {
	ti := textinput.New()
	ti.Placeholder = "type your answer"
	ti.CharLimit = 300
	ti.Width = 48

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return coldstartModel{deps: deps, styles: st, ctrl: controller.New(deps.Log), input: ti, spin: sp}
}

// enter starts a brand-new onboarding attempt.
func (m coldstartModel) enter() (coldstartModel, tea.Cmd) {
	m.ctrl = controller.New(m.deps.Log)
	m.cursor = 0
	m.liked = make(map[string]bool)
	m.disliked = make(map[string]bool)
	m.hint = ""
	m.input.SetValue("")
	m.input.Focus()

	eff, err := m.ctrl.Begin()
	if err != nil {
		// Cannot happen on a fresh controller; surface it anyway.
		m.hint = err.Error()
		return m, nil
	}
	return m, tea.Batch(m.initCmd(eff), m.spin.Tick, textinput.Blink)
}

func (m coldstartModel) initCmd(eff controller.InitEffect) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		questions, err := deps.Sessions.Init(context.Background(), eff.SessionID)
		return initDoneMsg{sessionID: eff.SessionID, questions: questions, err: err}
	}
}

func (m coldstartModel) respondCmd(eff controller.RespondEffect) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		res, err := deps.Sessions.Respond(context.Background(), eff.SessionID, eff.QuestionIndex, eff.Response)
		return respondDoneMsg{
			sessionID: eff.SessionID,
			index:     eff.QuestionIndex,
			result: controller.SubmitResult{
				Complete:        res.Complete,
				NextIndex:       res.NextIndex,
				NextQuestion:    res.NextQuestion,
				Recommendations: res.Recommendations,
			},
			err: err,
		}
	}
}

func (m coldstartModel) refineCmd(eff controller.RefineEffect) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		recs, err := deps.Sessions.Refine(context.Background(), eff.SessionID, eff.Liked, eff.Disliked)
		return refineDoneMsg{sessionID: eff.SessionID, recs: recs, err: err}
	}
}

func (m coldstartModel) update(msg tea.Msg) (coldstartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case initDoneMsg:
		m.ctrl.FinishInit(msg.sessionID, msg.questions, msg.err)
		return m, nil

	case respondDoneMsg:
		m.ctrl.FinishSubmit(msg.sessionID, msg.result, msg.err)
		view := m.ctrl.View()
		// A failed round hands the typed text back; a successful one
		// clears the box for the next question.
		m.input.SetValue(view.Draft)
		return m, nil

	case refineDoneMsg:
		m.ctrl.FinishRefine(msg.sessionID, msg.recs, msg.err)
		if msg.err == nil {
			m.liked = make(map[string]bool)
			m.disliked = make(map[string]bool)
			m.cursor = 0
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		switch m.ctrl.View().Phase {
		case coldstart.PhaseInitializing, coldstart.PhaseSubmitting, coldstart.PhaseRefining:
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m coldstartModel) updateKeys(msg tea.KeyMsg) (coldstartModel, tea.Cmd) {
	view := m.ctrl.View()

	switch view.Phase {
	case coldstart.PhaseIdle:
		// Only reachable after a failed init.
		if msg.String() == "r" || msg.Type == tea.KeyEnter {
			return m.enter()
		}
		return m, nil

	case coldstart.PhaseAwaitingResponse:
		if msg.Type == tea.KeyEnter {
			eff, err := m.ctrl.Submit(m.input.Value())
			switch {
			case err == nil:
				m.hint = ""
				return m, tea.Batch(m.respondCmd(eff), m.spin.Tick)
			case errors.Is(err, controller.ErrEmptyResponse):
				m.hint = "please type an answer first"
				return m, nil
			default:
				return m, nil
			}
		}

	case coldstart.PhaseComplete:
		return m.updateCompleteKeys(msg, view)
	}

	// Initializing / Submitting / Refining: typing is allowed, submission
	// is rejected by the controller's in-flight guard anyway.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m coldstartModel) updateCompleteKeys(msg tea.KeyMsg, view controller.Snapshot) (coldstartModel, tea.Cmd) {
	n := len(view.Recommendations)
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "l":
		if m.cursor < n {
			id := view.Recommendations[m.cursor].ProductID
			m.liked[id] = !m.liked[id]
			delete(m.disliked, id)
		}
	case "d":
		if m.cursor < n {
			id := view.Recommendations[m.cursor].ProductID
			m.disliked[id] = !m.disliked[id]
			delete(m.liked, id)
		}
	case "r":
		if len(m.liked)+len(m.disliked) == 0 {
			m.hint = "mark some items with l/d first"
			return m, nil
		}
		eff, err := m.ctrl.BeginRefine(keysOf(m.liked), keysOf(m.disliked))
		if err != nil {
			return m, nil
		}
		m.hint = ""
		return m, tea.Batch(m.refineCmd(eff), m.spin.Tick)
	case "n":
		m.ctrl.Reset()
		return m.enter()
	}
	return m, nil
}

func (m coldstartModel) view() string {
	s := m.styles
	view := m.ctrl.View()

	var b strings.Builder
	b.WriteString(s.title.Render("Let's get to know you") + "\n\n")

	if view.Err != nil {
		b.WriteString(s.errMsg.Render(friendlyError(view.Err)) + "\n\n")
	}
	if m.hint != "" {
		b.WriteString(s.subtle.Render(m.hint) + "\n\n")
	}

	switch view.Phase {
	case coldstart.PhaseIdle:
		b.WriteString(s.subtle.Render("press enter to start over") + "\n")

	case coldstart.PhaseInitializing:
		b.WriteString(m.spin.View() + " preparing your questions...\n")

	case coldstart.PhaseAwaitingResponse, coldstart.PhaseSubmitting:
		total := len(view.Questions)
		if total == 0 {
			b.WriteString(s.subtle.Render("no questions today; press enter to see your picks") + "\n\n")
		} else {
			b.WriteString(s.subtle.Render(fmt.Sprintf("question %d of %d", displayIndex(view.Index, total), total)) + "\n")
			b.WriteString(s.question.Render(view.CurrentQuestion) + "\n\n")
		}
		b.WriteString(m.input.View() + "\n")
		if view.Phase == coldstart.PhaseSubmitting {
			b.WriteString("\n" + m.spin.View() + " sending...\n")
		}

	case coldstart.PhaseComplete, coldstart.PhaseRefining:
		b.WriteString(s.subtle.Render("based on your answers:") + "\n\n")
		if len(view.Recommendations) == 0 {
			b.WriteString(s.subtle.Render("no picks yet; try refining or starting over") + "\n")
		}
		for i, item := range view.Recommendations {
			b.WriteString(renderItem(s, i, item, m.cursor, m.liked, m.disliked))
		}
		if view.Phase == coldstart.PhaseRefining {
			b.WriteString("\n" + m.spin.View() + " refining...\n")
		}
		b.WriteString("\n" + s.subtle.Render("l like · d dislike · r refine · n start over · esc menu"))
		return b.String()
	}

	b.WriteString("\n" + s.subtle.Render("esc for menu"))
	return b.String()
}

// displayIndex clamps the server-supplied index for presentation only; the
// controller keeps the authoritative value.
func displayIndex(index, total int) int {
	if index >= total {
		return total
	}
	return index + 1
}

func keysOf(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
