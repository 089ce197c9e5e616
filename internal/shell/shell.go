// Package shell is the interactive terminal surface. It selects which
// high-level mode is active (recommendations, search, cold-start) and
// threads the configured user identifier into the two stateless
// collaborators; the cold-start mode owns its controller exclusively.
package shell

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/config"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/model/catalog"
	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/transport"
)

// recommendationAPI is the slice of the recommendation collaborator the
// shell consumes.
type recommendationAPI interface {
	Fetch(ctx context.Context, userID string, topK int, includeExplanations bool) (catalog.RecommendationList, error)
	Insight(ctx context.Context, userID string) (catalog.UserInsight, error)
}

type searchAPI interface {
	Search(ctx context.Context, query, userID string, topK int) (catalog.SearchResponse, error)
}

type sessionAPI interface {
	Init(ctx context.Context, sessionID string) ([]string, error)
	Respond(ctx context.Context, sessionID string, questionIndex int, text string) (transport.TurnResult, error)
	Refine(ctx context.Context, sessionID string, liked, disliked []string) ([]catalog.RecommendationItem, error)
}

// Deps bundles everything the shell needs.
type Deps struct {
	Recommender recommendationAPI
	Searcher    searchAPI
	Sessions    sessionAPI
	Cfg         config.ClientConfig
	Log         *zap.Logger
}

// NewDeps builds the production dependency set from config.
func NewDeps(cfg config.ClientConfig, log *zap.Logger) Deps {
	tc := transport.Config{BaseURL: cfg.BackendURL, Timeout: cfg.Timeout, Logger: log}
	return Deps{
		Recommender: transport.NewRecommendationClient(tc),
		Searcher:    transport.NewSearchClient(tc),
		Sessions:    transport.NewSessionClient(tc),
		Cfg:         cfg,
		Log:         log,
	}
}

// mode is the active top-level screen.
type mode int

const (
	modeMenu mode = iota
	modeBrowse
	modeSearch
	modeColdStart
)

// Model is the root bubbletea model.
type Model struct {
	deps   Deps
	styles styles
	mode   mode
	width  int
	height int

	browse    browseModel
	search    searchModel
	coldstart coldstartModel
}

func New(deps Deps) Model {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	st := newStyles()
	return Model{
		deps:      deps,
		styles:    st,
		mode:      modeMenu,
		browse:    newBrowseModel(deps, st),
		search:    newSearchModel(deps, st),
		coldstart: newColdstartModel(deps, st),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode == modeMenu {
			return m.updateMenu(msg)
		}
		if msg.Type == tea.KeyEsc {
			m.mode = modeMenu
			return m, nil
		}
	}

	// Non-key messages (fetch results) are routed regardless of the active
	// mode so that a slow fetch still lands after the user navigates away.
	var cmd tea.Cmd
	switch msg.(type) {
	case recommendationsMsg, insightMsg:
		m.browse, cmd = m.browse.update(msg)
		return m, cmd
	case searchDoneMsg:
		m.search, cmd = m.search.update(msg)
		return m, cmd
	case initDoneMsg, respondDoneMsg, refineDoneMsg:
		m.coldstart, cmd = m.coldstart.update(msg)
		return m, cmd
	}

	switch m.mode {
	case modeBrowse:
		m.browse, cmd = m.browse.update(msg)
	case modeSearch:
		m.search, cmd = m.search.update(msg)
	case modeColdStart:
		m.coldstart, cmd = m.coldstart.update(msg)
	}
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "1", "r":
		m.mode = modeBrowse
		return m, m.browse.enter()
	case "2", "s":
		m.mode = modeSearch
		return m, m.search.enter()
	case "3", "c":
		m.mode = modeColdStart
		var cmd tea.Cmd
		m.coldstart, cmd = m.coldstart.enter()
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch m.mode {
	case modeBrowse:
		return m.browse.view()
	case modeSearch:
		return m.search.view()
	case modeColdStart:
		return m.coldstart.view()
	default:
		return m.menuView()
	}
}

func (m Model) menuView() string {
	s := m.styles
	user := m.deps.Cfg.UserID
	if user == "" {
		user = "(anonymous)"
	}
	return s.title.Render("Shop Assistant") + "\n" +
		s.subtle.Render("user: "+user) + "\n\n" +
		"  [1] Recommendations for you\n" +
		"  [2] Natural-language search\n" +
		"  [3] New here? Tell us what you like\n\n" +
		s.subtle.Render("press a number to choose, q to quit")
}
