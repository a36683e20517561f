package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m MainModel) View() string {
	sections := []string{m.viewTabBar()}

	if m.expired {
		sections = append(sections,
			expiredStyle.Render("Session expired. Quit and run `envira login` to sign in again."))
	}

	switch m.state {
	case dashboardTab:
		sections = append(sections, m.dashboard.View())
	case activitiesTab:
		sections = append(sections, m.activities.View())
	case exercisesTab:
		sections = append(sections, m.exercises.View())
	case historyTab:
		sections = append(sections, m.history.View())
	}

	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStatusStyle
		}
		sections = append(sections, style.Render(m.status))
	}

	sections = append(sections, m.help.View(m.keys))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m MainModel) viewTabBar() string {
	var tabs []string
	for i, name := range tabNames {
		style := inactiveTabStyle
		if sessionState(i) == m.state {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
