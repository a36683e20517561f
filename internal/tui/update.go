package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/envira/envira-cli/internal/constants"
)

// statusClearMsg expires a transient status line notice.
type statusClearMsg struct {
	gen int
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - 5
		m.dashboard.SetSize(msg.Width, contentHeight)
		m.activities.SetSize(msg.Width, contentHeight)
		m.exercises.SetSize(msg.Width, contentHeight)
		m.history.SetSize(msg.Width, contentHeight)
		m.help.Width = msg.Width
		if !m.started {
			m.started = true
			var cmd tea.Cmd
			m.dashboard, cmd = m.dashboard.Focus()
			return m, cmd
		}
		return m, nil

	case constants.StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsError
		m.statusGen++
		gen := m.statusGen
		return m, tea.Tick(5*time.Second, func(time.Time) tea.Msg {
			return statusClearMsg{gen: gen}
		})

	case statusClearMsg:
		if msg.gen == m.statusGen {
			m.status = ""
		}
		return m, nil

	case constants.SessionExpiredMsg:
		m.expired = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.broadcast(msg)
}

func (m MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit) && !m.searchActive():
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.tabsLocked() {
			break
		}
		return m.switchTab((m.state + 1) % sessionState(len(tabNames)))

	case key.Matches(msg, m.keys.ShiftTab):
		if m.tabsLocked() {
			break
		}
		next := (m.state + sessionState(len(tabNames)) - 1) % sessionState(len(tabNames))
		return m.switchTab(next)
	}
	return m.routeToActive(msg)
}

// tabsLocked keeps tab navigation away from a live exercise countdown so
// a stray tab press cannot abandon a run.
func (m MainModel) tabsLocked() bool {
	return m.state == exercisesTab && m.exercises.InTimer()
}

// searchActive lets "q" reach the exercise list's filter input instead of
// quitting.
func (m MainModel) searchActive() bool {
	return m.state == exercisesTab && m.exercises.Filtering()
}

func (m MainModel) switchTab(next sessionState) (tea.Model, tea.Cmd) {
	switch m.state {
	case dashboardTab:
		m.dashboard = m.dashboard.Blur()
	case activitiesTab:
		m.activities = m.activities.Blur()
	case exercisesTab:
		m.exercises = m.exercises.Blur()
	case historyTab:
		m.history = m.history.Blur()
	}

	m.state = next
	var cmd tea.Cmd
	switch next {
	case dashboardTab:
		m.dashboard, cmd = m.dashboard.Focus()
	case activitiesTab:
		m.activities, cmd = m.activities.Focus()
	case exercisesTab:
		m.exercises, cmd = m.exercises.Focus()
	case historyTab:
		m.history, cmd = m.history.Focus()
	}
	return m, cmd
}

// routeToActive delivers key input to the visible tab only.
func (m MainModel) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case dashboardTab:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case activitiesTab:
		m.activities, cmd = m.activities.Update(msg)
	case exercisesTab:
		m.exercises, cmd = m.exercises.Update(msg)
	case historyTab:
		m.history, cmd = m.history.Update(msg)
	}
	return m, cmd
}

// broadcast delivers async messages to every component; each one ignores
// message types it does not own.
func (m MainModel) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.dashboard, cmd = m.dashboard.Update(msg)
	cmds = append(cmds, cmd)
	m.activities, cmd = m.activities.Update(msg)
	cmds = append(cmds, cmd)
	m.exercises, cmd = m.exercises.Update(msg)
	cmds = append(cmds, cmd)
	m.history, cmd = m.history.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
