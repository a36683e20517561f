// Package history renders the reconciled history view: the stats strip,
// the merged activity feed, and the monthly wellness calendar.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/envira/envira-cli/internal/api"
	"github.com/envira/envira-cli/internal/constants"
	hist "github.com/envira/envira-cli/internal/history"
	"github.com/envira/envira-cli/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	statStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(16)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	itemTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	excellentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	goodStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	lowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	todayStyle = lipgloss.NewStyle().Underline(true)

	cursorCellStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Bold(true)
)

type mode int

const (
	modeFeed mode = iota
	modeCalendar
)

// deviceMsg and exerciseMsg arrive independently; one stream failing
// never blanks the other.
type deviceMsg struct {
	records []models.DeviceSensorRecord
	err     error
}

type exerciseMsg struct {
	records []models.ExerciseHistoryRecord
	err     error
}

var feedTabs = []hist.Tab{hist.TabAll, hist.TabDevice, hist.TabExercise}

type Model struct {
	client   *api.Client
	deviceID string

	devItems []hist.Item
	exItems  []hist.Item
	devErr   string
	exErr    string

	feed   []hist.Item
	groups map[string][]hist.Item
	daily  map[string]float64
	stats  hist.Stats

	mode     mode
	tabIdx   int
	viewport viewport.Model

	month  hist.Month
	cursor int // 1-based day of month

	loading  bool
	devDone  bool
	exDone   bool
	spinner  spinner.Model
	width    int
	height   int
}

func New(client *api.Client, deviceID string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	now := time.Now()
	return Model{
		client:   client,
		deviceID: deviceID,
		groups:   map[string][]hist.Item{},
		daily:    map[string]float64{},
		month:    hist.MonthOf(now),
		cursor:   now.Day(),
		loading:  true,
		spinner:  sp,
		viewport: viewport.New(0, 0),
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-8, 3)
}

// Focus refetches both streams. Cached data keeps rendering while the
// refresh is in flight.
func (m Model) Focus() (Model, tea.Cmd) {
	m.loading = len(m.devItems) == 0 && len(m.exItems) == 0
	m.devDone = false
	m.exDone = false
	return m, tea.Batch(m.fetchDevices(), m.fetchExercises(), m.spinner.Tick)
}

func (m Model) Blur() Model {
	return m
}

func (m Model) fetchDevices() tea.Cmd {
	client := m.client
	deviceID := m.deviceID
	return func() tea.Msg {
		recs, err := client.DeviceHistory(context.Background(), deviceID,
			constants.HistoryLimit, constants.HistoryHours)
		return deviceMsg{records: recs, err: err}
	}
}

func (m Model) fetchExercises() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		recs, err := client.ExerciseHistory(context.Background())
		return exerciseMsg{records: recs, err: err}
	}
}

// recompute rebuilds everything derived from the two normalized streams.
func (m *Model) recompute() {
	m.feed = hist.MergeFeed(m.exItems, m.devItems)
	m.groups = hist.GroupByDay(m.devItems)
	m.daily = hist.DailyScores(m.groups)
	m.stats = hist.ComputeStats(m.exItems, m.devItems)
	m.viewport.SetContent(m.feedContent())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case deviceMsg:
		m.devDone = true
		var cmd tea.Cmd
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, func() tea.Msg { return constants.SessionExpiredMsg{} }
			}
			m.devErr = msg.err.Error()
			cmd = statusErr("Device history unavailable: " + m.devErr)
		} else {
			m.devErr = ""
			m.devItems = hist.NormalizeDevices(msg.records)
		}
		m.loading = m.loading && !(m.devDone && m.exDone)
		m.recompute()
		return m, cmd

	case exerciseMsg:
		m.exDone = true
		var cmd tea.Cmd
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, func() tea.Msg { return constants.SessionExpiredMsg{} }
			}
			m.exErr = msg.err.Error()
			cmd = statusErr("Exercise history unavailable: " + m.exErr)
		} else {
			m.exErr = ""
			m.exItems = hist.NormalizeExercises(msg.records)
		}
		m.loading = m.loading && !(m.devDone && m.exDone)
		m.recompute()
		return m, cmd

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
	switch msg.String() {
	case "v":
		if m.mode == modeFeed {
			m.mode = modeCalendar
		} else {
			m.mode = modeFeed
		}
		return m, nil
	case "r":
		return m.Focus()
	}

	if m.mode == modeCalendar {
		return m.handleCalendarKey(msg), nil
	}

	switch msg.String() {
	case "left", "h":
		m.tabIdx = (m.tabIdx + len(feedTabs) - 1) % len(feedTabs)
		m.viewport.SetContent(m.feedContent())
		m.viewport.GotoTop()
	case "right", "l":
		m.tabIdx = (m.tabIdx + 1) % len(feedTabs)
		m.viewport.SetContent(m.feedContent())
		m.viewport.GotoTop()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	days := daysIn(m.month)
	switch msg.String() {
	case "p":
		m.month = m.month.Prev()
		m.cursor = clampDay(m.cursor, daysIn(m.month))
	case "n":
		m.month = m.month.Next()
		m.cursor = clampDay(m.cursor, daysIn(m.month))
	case "left", "h":
		if m.cursor > 1 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < days {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 7 {
			m.cursor -= 7
		}
	case "down", "j":
		if m.cursor+7 <= days {
			m.cursor += 7
		}
	}
	return m
}

func daysIn(m hist.Month) int {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1).Day()
}

func clampDay(day, limit int) int {
	if day > limit {
		return limit
	}
	if day < 1 {
		return 1
	}
	return day
}

func statusErr(text string) tea.Cmd {
	return func() tea.Msg {
		return constants.StatusMsg{Text: text, IsError: true}
	}
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading history...")
	}

	sections := []string{m.viewStats()}
	if m.mode == modeCalendar {
		sections = append(sections, m.viewCalendar())
	} else {
		sections = append(sections, m.viewTabs(), m.viewport.View())
	}
	sections = append(sections, dimStyle.Render(m.hint()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) hint() string {
	if m.mode == modeCalendar {
		return "p/n month · arrows select day · v feed view · r refresh"
	}
	return "←/→ filter · ↑/↓ scroll · v calendar view · r refresh"
}

func (m Model) viewStats() string {
	s := m.stats
	avg := "—"
	if s.AvgScore > 0 {
		avg = fmt.Sprintf("%d", s.AvgScore)
	}
	cells := []string{
		statCell("Activities", fmt.Sprintf("%d", s.Total)),
		statCell("Exercises", fmt.Sprintf("%d", s.Completed)),
		statCell("Avg Score", avg),
		statCell("Active Days", fmt.Sprintf("%d", s.ActiveDays)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func statCell(label, value string) string {
	return statStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		dimStyle.Render(label),
		itemTitleStyle.Render(value),
	))
}

func (m Model) viewTabs() string {
	var rendered []string
	for i, tab := range feedTabs {
		style := inactiveTabStyle
		if i == m.tabIdx {
			style = activeTabStyle
		}
		rendered = append(rendered, style.Render(tabLabel(tab)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func tabLabel(tab hist.Tab) string {
	switch tab {
	case hist.TabDevice:
		return "Environment"
	case hist.TabExercise:
		return "Exercises"
	default:
		return "All"
	}
}

func (m Model) feedContent() string {
	items := hist.FilterByTab(m.feed, feedTabs[m.tabIdx])
	if len(items) == 0 {
		if m.devErr != "" && m.exErr != "" {
			return dimStyle.Render("History is unavailable right now. Press r to retry.")
		}
		return dimStyle.Render("No activity yet. Start an exercise or check your environment!")
	}

	now := time.Now()
	var b strings.Builder
	for _, item := range items {
		b.WriteString(itemTitleStyle.Render(item.Title))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(hist.RelativeTime(item.Timestamp, now)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(itemDetail(item)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func itemDetail(item hist.Item) string {
	if item.Type == hist.TypeExercise {
		parts := []string{item.Status}
		if item.Duration != nil {
			parts = append(parts, fmt.Sprintf("%.0f min", *item.Duration))
		}
		if item.StepsCompleted != nil && item.TotalSteps != nil {
			parts = append(parts, fmt.Sprintf("%d/%d steps", *item.StepsCompleted, *item.TotalSteps))
		}
		if item.Notes != "" {
			parts = append(parts, item.Notes)
		}
		return strings.Join(parts, " · ")
	}

	parts := []string{}
	if item.Score != nil {
		parts = append(parts, fmt.Sprintf("score %.0f (%s)", *item.Score, hist.ScoreLabel(*item.Score)))
	}
	if item.DeviceID != "" {
		parts = append(parts, item.DeviceID)
	}
	if len(parts) == 0 {
		return "environment snapshot"
	}
	return strings.Join(parts, " · ")
}

func (m Model) viewCalendar() string {
	lines := []string{
		headerStyle.Render(m.month.String()),
		dimStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa"),
	}

	cells := m.month.Grid(m.daily, m.groups, time.Now())
	var row strings.Builder
	col := 0
	for _, cell := range cells {
		row.WriteString(m.renderCell(cell))
		col++
		if col == 7 {
			lines = append(lines, row.String())
			row.Reset()
			col = 0
		}
	}
	if col > 0 {
		lines = append(lines, row.String())
	}

	lines = append(lines, "", m.viewSelectedDay())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderCell(cell *hist.CalendarDay) string {
	if cell == nil {
		return "    "
	}
	text := fmt.Sprintf(" %2d ", cell.Day)

	style := dimStyle
	if cell.HasData {
		style = scoreStyle(cell.Score)
	}
	if cell.IsToday {
		style = style.Inherit(todayStyle)
	}
	if cell.Day == m.cursor {
		style = style.Inherit(cursorCellStyle)
	}
	return style.Render(text)
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= constants.ScoreExcellent:
		return excellentStyle
	case score >= constants.ScoreGood:
		return goodStyle
	default:
		return lowStyle
	}
}

func (m Model) viewSelectedDay() string {
	date := time.Date(m.month.Year, m.month.Month, m.cursor, 0, 0, 0, 0, time.Local)
	key := date.Format(constants.DateFormat)
	header := itemTitleStyle.Render(date.Format("Monday, Jan 2, 2006"))

	score, ok := m.daily[key]
	if !ok {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			dimStyle.Render("No data recorded on this day."))
	}

	records := len(m.groups[key])
	return lipgloss.JoinVertical(lipgloss.Left, header,
		fmt.Sprintf("Average score %.1f (%s) across %d %s",
			score, hist.ScoreLabel(score), records, plural(records, "reading", "readings")))
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
