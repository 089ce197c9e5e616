package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/catalog"
)

// recommendationsMsg and insightMsg resolve the two independent fetches.
// They are separate messages on purpose: completion order is not
// guaranteed and neither blocks the other.
type recommendationsMsg struct {
	list catalog.RecommendationList
	err  error
}

type insightMsg struct {
	insight catalog.UserInsight
	err     error
}

// browseModel renders the ranked list next to the user-insight panel.
type browseModel struct {
	deps    Deps
	styles  styles
	spin    spinner.Model
	recs    Outcome[catalog.RecommendationList]
	insight Outcome[catalog.UserInsight]
}

func newBrowseModel(deps Deps, st styles) browseModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return browseModel{deps: deps, styles: st, spin: sp}
}

// enter resets both panels to pending and fires the two fetches plus the
// spinner tick.
func (m *browseModel) enter() tea.Cmd {
	m.recs = Pending[catalog.RecommendationList]()
	m.insight = Pending[catalog.UserInsight]()

	deps := m.deps
	fetchRecs := func() tea.Msg {
		list, err := deps.Recommender.Fetch(context.Background(), deps.Cfg.UserID, deps.Cfg.TopK, deps.Cfg.IncludeExplanations)
		return recommendationsMsg{list: list, err: err}
	}
	fetchInsight := func() tea.Msg {
		ins, err := deps.Recommender.Insight(context.Background(), deps.Cfg.UserID)
		return insightMsg{insight: ins, err: err}
	}
	return tea.Batch(fetchRecs, fetchInsight, m.spin.Tick)
}

func (m browseModel) update(msg tea.Msg) (browseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case recommendationsMsg:
		if msg.err != nil {
			m.recs = Failed[catalog.RecommendationList](msg.err)
		} else {
			m.recs = Ok(msg.list)
		}
		return m, nil

	case insightMsg:
		if msg.err != nil {
			m.insight = Failed[catalog.UserInsight](msg.err)
		} else {
			m.insight = Ok(msg.insight)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "g" {
			return m, m.enter()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.recs.IsPending() || m.insight.IsPending() {
			return m, cmd
		}
		return m, nil
	}
	return m, nil
}

func (m browseModel) view() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.title.Render("Recommended for you") + "\n\n")

	switch {
	case m.recs.IsPending():
		b.WriteString(m.spin.View() + " fetching recommendations...\n")
	case m.recs.Err() != nil:
		b.WriteString(s.errMsg.Render("could not load recommendations: "+m.recs.Err().Error()) + "\n")
	default:
		list, _ := m.recs.Value()
		if len(list.Recommendations) == 0 {
			b.WriteString(s.subtle.Render("nothing to recommend yet") + "\n")
		}
		for i, item := range list.Recommendations {
			b.WriteString(renderItem(s, i, item, -1, nil, nil))
		}
		b.WriteString("\n" + s.subtle.Render(fmt.Sprintf("%d items in %.0f ms (%s)",
			len(list.Recommendations), list.ProcessingTimeMs, list.Strategy)) + "\n")
	}

	b.WriteString("\n" + s.title.Render("About you") + "\n")
	switch {
	case m.insight.IsPending():
		b.WriteString(m.spin.View() + " loading insight...\n")
	case m.insight.Err() != nil:
		b.WriteString(s.errMsg.Render("insight unavailable: "+m.insight.Err().Error()) + "\n")
	default:
		ins, _ := m.insight.Value()
		b.WriteString(m.styles.panel.Render(renderInsight(s, ins)) + "\n")
	}

	b.WriteString("\n" + s.subtle.Render("g to refresh, esc for menu"))
	return b.String()
}

func renderInsight(s styles, ins catalog.UserInsight) string {
	if ins.IsNewUser {
		return ins.Insight
	}
	return fmt.Sprintf("%s\nspend £%.2f across %.0f purchases\ntop categories: %s",
		ins.Insight, ins.TotalSpend, ins.PurchaseCount, strings.Join(ins.TopCategories, ", "))
}

// renderItem formats one recommendation row. cursor, liked and disliked are
// only used by the cold-start result list; browse passes cursor=-1.
func renderItem(s styles, i int, item catalog.RecommendationItem, cursor int, liked, disliked map[string]bool) string {
	marker := "  "
	style := s.item
	if i == cursor {
		marker = "> "
		style = s.selected
	}
	switch {
	case liked[item.ProductID]:
		style = s.liked
	case disliked[item.ProductID]:
		style = s.disliked
	}

	line := fmt.Sprintf("%s%s %s · %s", marker, style.Render(item.ProductName),
		s.price.Render(fmt.Sprintf("£%.2f", item.Price)), item.Category)
	if why := item.Why(); why != "" {
		line += "\n    " + s.subtle.Render(why)
	}
	return line + "\n"
}
