// Package tui wires the tab components into the single bubbletea program
// behind the `envira dashboard` command.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/envira/envira-cli/internal/api"
	"github.com/envira/envira-cli/internal/tui/components/activities"
	"github.com/envira/envira-cli/internal/tui/components/dashboard"
	"github.com/envira/envira-cli/internal/tui/components/exercises"
	historycomp "github.com/envira/envira-cli/internal/tui/components/history"
)

type sessionState int

const (
	dashboardTab sessionState = iota
	activitiesTab
	exercisesTab
	historyTab
)

var tabNames = []string{"Dashboard", "Activities", "Exercises", "History"}

type MainModel struct {
	state sessionState
	keys  KeyMap
	help  help.Model

	dashboard  dashboard.Model
	activities activities.Model
	exercises  exercises.Model
	history    historycomp.Model

	status    string
	statusErr bool
	statusGen int
	expired   bool
	started   bool

	width  int
	height int
}

func NewMainModel(client *api.Client, deviceID string) MainModel {
	return MainModel{
		state:      dashboardTab,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		dashboard:  dashboard.New(client, deviceID),
		activities: activities.New(client, deviceID),
		exercises:  exercises.New(client),
		history:    historycomp.New(client, deviceID),
	}
}

// Init is a no-op; the dashboard is focused on the first WindowSizeMsg,
// once component sizes are known.
func (m MainModel) Init() tea.Cmd {
	return nil
}
