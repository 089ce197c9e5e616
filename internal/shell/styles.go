package shell

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	question lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	liked    lipgloss.Style
	disliked lipgloss.Style
	errMsg   lipgloss.Style
	price    lipgloss.Style
	panel    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		question: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		item:     lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		liked:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		disliked: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Strikethrough(true),
		errMsg:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		price:    lipgloss.NewStyle().Foreground(lipgloss.Color("228")),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}
