package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/catalog"
)

type searchDoneMsg struct {
	resp catalog.SearchResponse
	err  error
}

// searchModel is the natural-language search screen: one query box, one
// single-round-trip search per enter press. The typed query is never
// cleared on failure.
type searchModel struct {
	deps     Deps
	styles   styles
	input    textinput.Model
	spin     spinner.Model
	inFlight bool
	result   Outcome[catalog.SearchResponse]
	searched bool
}

func newSearchModel(deps Deps, st styles) searchModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. kitchen gift under £10"
	ti.CharLimit = 200
	ti.Width = 48

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return searchModel{deps: deps, styles: st, input: ti, spin: sp}
}

func (m *searchModel) enter() tea.Cmd {
	m.input.Focus()
	return textinput.Blink
}

func (m searchModel) update(msg tea.Msg) (searchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		m.inFlight = false
		if msg.err != nil {
			m.result = Failed[catalog.SearchResponse](msg.err)
		} else {
			m.result = Ok(msg.resp)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			query := strings.TrimSpace(m.input.Value())
			if query == "" || m.inFlight {
				return m, nil
			}
			m.inFlight = true
			m.searched = true
			m.result = Pending[catalog.SearchResponse]()
			deps := m.deps
			run := func() tea.Msg {
				resp, err := deps.Searcher.Search(context.Background(), query, deps.Cfg.UserID, deps.Cfg.TopK)
				return searchDoneMsg{resp: resp, err: err}
			}
			return m, tea.Batch(run, m.spin.Tick)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.inFlight {
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m searchModel) view() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.title.Render("Search the catalog") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	switch {
	case m.inFlight:
		b.WriteString(m.spin.View() + " searching...\n")
	case m.result.Err() != nil:
		b.WriteString(s.errMsg.Render("search failed: "+m.result.Err().Error()) + "\n")
		b.WriteString(s.subtle.Render("your query is kept; press enter to retry") + "\n")
	case m.searched:
		resp, _ := m.result.Value()
		b.WriteString(renderUnderstanding(s, resp.QueryUnderstanding))
		if len(resp.Results) == 0 {
			b.WriteString(s.subtle.Render("no matches") + "\n")
		}
		for _, r := range resp.Results {
			b.WriteString(fmt.Sprintf("  %s %s · %s  %s\n",
				s.item.Render(r.ProductName),
				s.price.Render(fmt.Sprintf("£%.2f", r.Price)),
				r.Category,
				s.subtle.Render(fmt.Sprintf("relevance %.2f", r.RelevanceScore))))
			if r.Explanation != "" {
				b.WriteString("    " + s.subtle.Render(r.Explanation) + "\n")
			}
		}
		b.WriteString("\n" + s.subtle.Render(fmt.Sprintf("%d results in %.0f ms",
			resp.ResultCount, resp.ProcessingTimeMs)) + "\n")
	}

	b.WriteString("\n" + s.subtle.Render("enter to search, esc for menu"))
	return b.String()
}

func renderUnderstanding(s styles, u catalog.QueryUnderstanding) string {
	parts := []string{"intent: " + u.Intent}
	if u.Category != "" {
		parts = append(parts, "category: "+u.Category)
	}
	if u.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("max £%.2f", *u.MaxPrice))
	}
	if len(u.Features) > 0 {
		parts = append(parts, "features: "+strings.Join(u.Features, ", "))
	}
	return s.subtle.Render("understood: "+strings.Join(parts, " | ")) + "\n\n"
}
