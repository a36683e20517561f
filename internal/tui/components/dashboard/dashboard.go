// Package dashboard renders the wellness score card: the latest sensor
// snapshot, four sensor tiles, and the general recommendations for the
// configured device, refreshed on a fixed poll interval while visible.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/envira/envira-cli/internal/api"
	"github.com/envira/envira-cli/internal/constants"
	"github.com/envira/envira-cli/internal/history"
	"github.com/envira/envira-cli/internal/logger"
	"github.com/envira/envira-cli/internal/models"
)

var (
	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(20)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	recStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)
)

// dataMsg carries one completed poll round. Each section fails
// independently; a nil reading with a readingErr still renders the
// recommendations and vice versa.
type dataMsg struct {
	reading    *models.DeviceSensorRecord
	recs       []string
	readingErr error
	recsErr    error
	manual     bool
}

// pollTickMsg drives the periodic refresh. gen invalidates ticks
// scheduled before the view was left or refocused.
type pollTickMsg struct {
	gen int
}

type Model struct {
	client   *api.Client
	deviceID string

	reading    *models.DeviceSensorRecord
	recs       []string
	readingErr string
	recsErr    string

	loading    bool
	refreshing bool
	visible    bool
	pollGen    int
	spinner    spinner.Model

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

// Focus starts the fetch-and-poll chain. Called when the tab becomes
// visible.
func (m Model) Focus() (Model, tea.Cmd) {
	m.visible = true
	m.pollGen++
	m.loading = m.reading == nil
	return m, tea.Batch(m.fetch(false), m.tick(), m.spinner.Tick)
}

// Blur stops the poll chain: the generation bump orphans any tick still
// in flight so nothing fires after navigation away.
func (m Model) Blur() Model {
	m.visible = false
	m.pollGen++
	return m
}

func (m Model) tick() tea.Cmd {
	gen := m.pollGen
	return tea.Tick(constants.PollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

func (m Model) fetch(manual bool) tea.Cmd {
	client := m.client
	deviceID := m.deviceID
	return func() tea.Msg {
		ctx := context.Background()
		msg := dataMsg{manual: manual}

		reading, err := client.LatestReading(ctx, deviceID)
		if err != nil {
			logger.Debug("latest reading failed, trying summary", "device", deviceID, "error", err)
			reading, err = client.LatestSummary(ctx, deviceID)
		}
		if err != nil {
			msg.readingErr = err
		} else {
			msg.reading = &reading
		}

		recs, err := client.GeneralRecommendations(ctx, deviceID)
		if err != nil {
			msg.recsErr = err
		} else {
			msg.recs = recs
		}
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dataMsg:
		m.loading = false
		m.refreshing = false

		if msg.readingErr != nil {
			if errors.Is(msg.readingErr, api.ErrUnauthorized) {
				return m, func() tea.Msg { return constants.SessionExpiredMsg{} }
			}
			m.readingErr = msg.readingErr.Error()
		} else {
			m.reading = msg.reading
			m.readingErr = ""
		}

		if msg.recsErr != nil {
			m.recsErr = msg.recsErr.Error()
		} else {
			m.recs = msg.recs
			m.recsErr = ""
		}

		var cmd tea.Cmd
		if msg.readingErr != nil && msg.manual {
			cmd = func() tea.Msg {
				return constants.StatusMsg{Text: "Refresh failed: " + msg.readingErr.Error(), IsError: true}
			}
		}
		return m, cmd

	case pollTickMsg:
		if !m.visible || msg.gen != m.pollGen {
			return m, nil
		}
		return m, tea.Batch(m.fetch(false), m.tick())

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "r" && !m.refreshing {
			m.refreshing = true
			return m, m.fetch(true)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading your wellness data...")
	}

	var sections []string
	sections = append(sections, m.viewScore())
	if m.reading != nil {
		sections = append(sections, m.viewSensors())
	}
	sections = append(sections, m.viewRecommendations())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) viewScore() string {
	if m.reading == nil {
		text := "No device data available"
		if m.readingErr != "" {
			text = "Device data unavailable: " + m.readingErr
		}
		return dimStyle.Render(text)
	}

	score := 0.0
	if s := m.reading.Score(); s != nil {
		score = *s
	}

	header := fmt.Sprintf("Device %s", m.deviceID)
	when := "just now"
	if ts := m.reading.Timestamp; ts != "" {
		when = ts
	} else if m.reading.ProcessedAt != "" {
		when = m.reading.ProcessedAt
	}

	suffix := ""
	if m.refreshing {
		suffix = "  " + dimStyle.Render("refreshing...")
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		dimStyle.Render(header),
		scoreStyle.Render(fmt.Sprintf("%.0f", score)),
		labelStyle.Render(history.ScoreLabel(score))+suffix,
		dimStyle.Render(when),
		"",
	)
}

func (m Model) viewSensors() string {
	s := m.reading.Sensors
	tiles := []string{
		sensorTile("Humidity", s.Humidity, "%", 0),
		sensorTile("Temperature", s.Temperature, "°C", 1),
		sensorTile("Air Quality", s.AirQuality, "/100", 0),
		sensorTile("Sound", s.Sound, " dB", 0),
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, tiles[0], tiles[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, tiles[2], tiles[3])
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom, "")
}

func sensorTile(label string, value *float64, unit string, decimals int) string {
	text := "—"
	if value != nil {
		text = fmt.Sprintf("%.*f%s", decimals, *value, unit)
	}
	return tileStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		dimStyle.Render(label),
		labelStyle.Render(text),
	))
}

func (m Model) viewRecommendations() string {
	if m.recsErr != "" {
		return dimStyle.Render("Recommendations unavailable: " + m.recsErr)
	}
	if len(m.recs) == 0 {
		return dimStyle.Render("No recommendations at this time. Your environment looks good!")
	}

	lines := []string{labelStyle.Render("Recommendations for You")}
	for _, rec := range m.recs {
		lines = append(lines, recStyle.Render("• "+rec))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
