// Package activities shows the activity catalog and, on selection,
// recommendations tailored to that activity for the user's device.
package activities

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/envira/envira-cli/internal/api"
	"github.com/envira/envira-cli/internal/constants"
	"github.com/envira/envira-cli/internal/logger"
	"github.com/envira/envira-cli/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(28)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("205"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	recStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)
)

type catalogMsg struct {
	activities []models.Activity
	err        error
}

type recsMsg struct {
	activityID string
	recs       []string
	err        error
}

type Model struct {
	client   *api.Client
	deviceID string

	activities []models.Activity
	cursor     int
	selected   *models.Activity
	recs       []string
	loadingRec bool

	loading bool
	loaded  bool
	errText string
	spinner spinner.Model

	width  int
	height int
}

func New(client *api.Client, deviceID string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		client:   client,
		deviceID: deviceID,
		loading:  true,
		spinner:  sp,
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focus fetches the catalog once; the catalog is static for the life of
// the session so revisiting the tab reuses the cached copy.
func (m Model) Focus() (Model, tea.Cmd) {
	if m.loaded {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.fetchCatalog(), m.spinner.Tick)
}

func (m Model) Blur() Model {
	return m
}

func (m Model) fetchCatalog() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		activities, err := client.Activities(context.Background())
		return catalogMsg{activities: activities, err: err}
	}
}

func (m Model) fetchRecommendations(activityID string) tea.Cmd {
	client := m.client
	deviceID := m.deviceID
	return func() tea.Msg {
		recs, err := client.ActivityRecommendations(context.Background(), activityID, deviceID)
		return recsMsg{activityID: activityID, recs: recs, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogMsg:
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, func() tea.Msg { return constants.SessionExpiredMsg{} }
			}
			m.errText = msg.err.Error()
			return m, nil
		}
		m.loaded = true
		m.errText = ""
		m.activities = msg.activities
		return m, nil

	case recsMsg:
		if m.selected == nil || msg.activityID != m.selected.ActivityID {
			return m, nil
		}
		m.loadingRec = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, func() tea.Msg { return constants.SessionExpiredMsg{} }
			}
			logger.Warn("activity recommendations failed", "activity", msg.activityID, "error", msg.err)
			return m, func() tea.Msg {
				return constants.StatusMsg{Text: "Could not load recommendations: " + msg.err.Error(), IsError: true}
			}
		}
		m.recs = msg.recs
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if len(m.activities) == 0 {
		if msg.String() == "r" {
			m.loading = true
			m.errText = ""
			return m, tea.Batch(m.fetchCatalog(), m.spinner.Tick)
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.activities)-1 {
			m.cursor++
		}
	case "enter":
		act := m.activities[m.cursor]
		m.selected = &act
		m.recs = nil
		m.loadingRec = true
		return m, m.fetchRecommendations(act.ActivityID)
	case "esc":
		m.selected = nil
		m.recs = nil
		m.loadingRec = false
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading activities...")
	}
	if m.errText != "" {
		return docPlace(m, dimStyle.Render("Could not load activities: "+m.errText+"\nPress r to retry."))
	}
	if len(m.activities) == 0 {
		return docPlace(m, dimStyle.Render("No activities available."))
	}

	var cards []string
	for i, act := range m.activities {
		style := cardStyle
		if i == m.cursor {
			style = selectedCardStyle
		}
		body := titleStyle.Render(act.Name)
		if act.Category != "" {
			body += "\n" + dimStyle.Render(act.Category)
		}
		if act.Description != "" {
			body += "\n" + act.Description
		}
		cards = append(cards, style.Render(body))
	}
	left := lipgloss.JoinVertical(lipgloss.Left, cards...)

	right := dimStyle.Render("Select an activity to see tailored\nrecommendations.")
	if m.selected != nil {
		right = m.viewRecommendations()
	}

	return docPlace(m, lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
}

func (m Model) viewRecommendations() string {
	lines := []string{titleStyle.Render(m.selected.Name)}
	switch {
	case m.loadingRec:
		lines = append(lines, dimStyle.Render("Loading recommendations..."))
	case len(m.recs) == 0:
		lines = append(lines, dimStyle.Render("No specific recommendations. Conditions look fine for this."))
	default:
		for _, rec := range m.recs {
			lines = append(lines, recStyle.Render("• "+rec))
		}
	}
	lines = append(lines, "", dimStyle.Render("esc to close"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func docPlace(m Model, content string) string {
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
	}
	return content
}
