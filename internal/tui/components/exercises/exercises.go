// Package exercises implements the guided-exercise tab: a filterable
// catalog, a detail page, and the timed step runner backed by the
// exercise package's state machine.
package exercises

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/envira/envira-cli/internal/api"
	"github.com/envira/envira-cli/internal/constants"
	"github.com/envira/envira-cli/internal/exercise"
	"github.com/envira/envira-cli/internal/logger"
	"github.com/envira/envira-cli/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	stepTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	countdownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 2)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("114")).
			Bold(true).
			Padding(0, 2)

	cueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)
)

var (
	categories   = []string{"", "breathing", "stretching", "meditation", "eye_care"}
	difficulties = []string{"", "beginner", "intermediate", "advanced"}
)

type view int

const (
	viewCatalog view = iota
	viewDetail
	viewTimer
)

type catalogMsg struct {
	exercises []models.Exercise
	err       error
}

type detailMsg struct {
	exercise models.Exercise
	err      error
}

type sessionMsg struct {
	session models.ExerciseSession
	err     error
}

type syncErrMsg struct {
	err error
}

// timerTickMsg drives the one-second countdown. gen orphans ticks from
// abandoned runs so pausing, leaving, or restarting never double-counts.
type timerTickMsg struct {
	gen int
}

// returnMsg fires after the completion banner has been shown long enough.
type returnMsg struct {
	gen int
}

type exerciseItem struct {
	ex models.Exercise
}

func (i exerciseItem) Title() string { return i.ex.Name }

func (i exerciseItem) Description() string {
	mins := i.ex.TotalDurationSeconds / 60
	return fmt.Sprintf("%s · %s · %dm", i.ex.Category, i.ex.Difficulty, mins)
}

func (i exerciseItem) FilterValue() string { return i.ex.Name }

type Model struct {
	client *api.Client

	list          list.Model
	loaded        bool
	loading       bool
	errText       string
	categoryIdx   int
	difficultyIdx int

	view     view
	detail   *models.Exercise
	session  *models.ExerciseSession
	timer    *exercise.Timer
	progress progress.Model
	timerGen int
	done     bool

	spinner spinner.Model
	width   int
	height  int
}

func New(client *api.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Exercises"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	return Model{
		client:   client,
		list:     l,
		loading:  true,
		progress: progress.New(progress.WithDefaultGradient()),
		spinner:  sp,
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.progress.Width = min(width-8, 50)
}

func (m Model) Focus() (Model, tea.Cmd) {
	if m.loaded {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.fetchCatalog(), m.spinner.Tick)
}

// Blur abandons any run in progress. The generation bump kills the tick
// chain; the backend session is left open rather than mis-reported as
// completed. A finished run is reset immediately: the scheduled return
// to the catalog dies with the tick chain, so waiting for it would leave
// the banner stuck on screen.
func (m Model) Blur() Model {
	m.timerGen++
	if m.done {
		m.reset()
		return m
	}
	if m.view == viewTimer && m.timer != nil {
		m.timer.Pause()
	}
	return m
}

// InTimer reports whether a run is active, so the root model can keep
// tab-switching keys away from a live countdown.
func (m Model) InTimer() bool {
	return m.view == viewTimer && !m.done
}

// Filtering reports whether the catalog's search input is capturing keys.
func (m Model) Filtering() bool {
	return m.view == viewCatalog && m.list.FilterState() == list.Filtering
}

func (m Model) fetchCatalog() tea.Cmd {
	client := m.client
	category := categories[m.categoryIdx]
	difficulty := difficulties[m.difficultyIdx]
	return func() tea.Msg {
		exercises, err := client.Exercises(context.Background(), category, difficulty)
		return catalogMsg{exercises: exercises, err: err}
	}
}

func (m Model) fetchDetail(exerciseID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ex, err := client.Exercise(context.Background(), exerciseID)
		return detailMsg{exercise: ex, err: err}
	}
}

func (m Model) startSession(exerciseID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		sess, err := client.StartExerciseSession(context.Background(), exerciseID)
		return sessionMsg{session: sess, err: err}
	}
}

func (m Model) syncStep(stepNumber int) tea.Cmd {
	if m.session == nil || m.session.SessionID == "" {
		return nil
	}
	client := m.client
	sessionID := m.session.SessionID
	return func() tea.Msg {
		if err := client.UpdateSessionStep(context.Background(), sessionID, stepNumber); err != nil {
			return syncErrMsg{err: err}
		}
		return nil
	}
}

func (m Model) completeSession() tea.Cmd {
	if m.session == nil || m.session.SessionID == "" {
		return nil
	}
	client := m.client
	sessionID := m.session.SessionID
	return func() tea.Msg {
		if err := client.CompleteSession(context.Background(), sessionID, ""); err != nil {
			return syncErrMsg{err: err}
		}
		return nil
	}
}

func (m Model) tick() tea.Cmd {
	gen := m.timerGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}

func (m Model) returnAfterDelay() tea.Cmd {
	gen := m.timerGen
	return tea.Tick(constants.CompletionReturnDelay, func(time.Time) tea.Msg {
		return returnMsg{gen: gen}
	})
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
		items := make([]list.Item, len(msg.exercises))
		for i, ex := range msg.exercises {
			items[i] = exerciseItem{ex: ex}
		}
		return m, m.list.SetItems(items)

	case detailMsg:
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, func() tea.Msg { return constants.SessionExpiredMsg{} }
			}
			return m, statusErr("Could not load exercise: " + msg.err.Error())
		}
		ex := msg.exercise
		m.detail = &ex
		m.view = viewDetail
		return m, nil

	case sessionMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, func() tea.Msg { return constants.SessionExpiredMsg{} }
			}
			// Run locally anyway; only progress tracking is lost.
			logger.Warn("session start failed, running untracked", "error", msg.err)
			m.session = nil
			return m, statusErr("Session tracking unavailable: " + msg.err.Error())
		}
		sess := msg.session
		m.session = &sess
		return m, nil

	case syncErrMsg:
		logger.Warn("session sync failed", "error", msg.err)
		return m, statusErr("Progress sync failed: " + msg.err.Error())

	case timerTickMsg:
		return m.handleTimerTick(msg)

	case returnMsg:
		if msg.gen != m.timerGen || !m.done {
			return m, nil
		}
		m.reset()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress = pm.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) reset() {
	m.view = viewCatalog
	m.detail = nil
	m.session = nil
	m.timer = nil
	m.done = false
	m.timerGen++
}

func (m Model) handleTimerTick(msg timerTickMsg) (Model, tea.Cmd) {
	if msg.gen != m.timerGen || m.timer == nil {
		return m, nil
	}

	result := m.timer.Tick()
	var cmds []tea.Cmd
	switch {
	case result.Completed:
		m.done = true
		cmds = append(cmds, m.completeSession(), m.returnAfterDelay())
	case result.StepAdvanced:
		cmds = append(cmds,
			m.syncStep(m.timer.StepIndex()+1),
			m.progress.SetPercent(m.timer.Progress()),
			m.tick())
	default:
		cmds = append(cmds, m.tick())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.view {
	case viewCatalog:
		return m.handleCatalogKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	case viewTimer:
		return m.handleTimerKey(msg)
	}
	return m, nil
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(exerciseItem); ok {
				m.loading = true
				return m, tea.Batch(m.fetchDetail(item.ex.ExerciseID), m.spinner.Tick)
			}
			return m, nil
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % len(categories)
			m.loading = true
			return m, tea.Batch(m.fetchCatalog(), m.spinner.Tick)
		case "d":
			m.difficultyIdx = (m.difficultyIdx + 1) % len(difficulties)
			m.loading = true
			return m, tea.Batch(m.fetchCatalog(), m.spinner.Tick)
		case "r":
			m.loading = true
			m.errText = ""
			return m, tea.Batch(m.fetchCatalog(), m.spinner.Tick)
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.detail == nil || len(m.detail.Steps) == 0 {
			return m, statusErr("This exercise has no steps to run.")
		}
		t, err := exercise.New(m.detail.Steps)
		if err != nil {
			return m, statusErr(err.Error())
		}
		if err := t.Start(); err != nil {
			return m, statusErr(err.Error())
		}
		m.timer = t
		m.view = viewTimer
		m.done = false
		m.timerGen++
		return m, tea.Batch(
			m.startSession(m.detail.ExerciseID),
			m.progress.SetPercent(t.Progress()),
			m.tick(),
		)
	case "esc":
		m.detail = nil
		m.view = viewCatalog
	}
	return m, nil
}

func (m Model) handleTimerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	switch msg.String() {
	case " ":
		switch m.timer.State() {
		case exercise.Running:
			m.timer.Pause()
		case exercise.Paused:
			m.timer.Resume()
			m.timerGen++
			return m, m.tick()
		}
	case "s":
		result := m.timer.Skip()
		var cmds []tea.Cmd
		switch {
		case result.Completed:
			m.done = true
			cmds = append(cmds, m.completeSession(), m.returnAfterDelay())
		case result.StepAdvanced:
			cmds = append(cmds,
				m.syncStep(m.timer.StepIndex()+1),
				m.progress.SetPercent(m.timer.Progress()))
		}
		return m, tea.Batch(cmds...)
	case "esc":
		m.timer.Pause()
		m.view = viewDetail
		m.timer = nil
		m.session = nil
		m.timerGen++
	}
	return m, nil
}

func statusErr(text string) tea.Cmd {
	return func() tea.Msg {
		return constants.StatusMsg{Text: text, IsError: true}
	}
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading exercises...")
	}

	switch m.view {
	case viewDetail:
		return m.viewDetail()
	case viewTimer:
		return m.viewTimer()
	}
	return m.viewCatalog()
}

func (m Model) viewCatalog() string {
	if m.errText != "" {
		return dimStyle.Render("Could not load exercises: " + m.errText + "\nPress r to retry.")
	}
	filters := fmt.Sprintf("category: %s  difficulty: %s",
		orAll(categories[m.categoryIdx]), orAll(difficulties[m.difficultyIdx]))
	hint := dimStyle.Render(filters + "  (c/d to change, / to search)")
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), hint)
}

func (m Model) viewDetail() string {
	ex := m.detail
	lines := []string{
		titleStyle.Render(ex.Name),
		dimStyle.Render(fmt.Sprintf("%s · %s · %dm", ex.Category, ex.Difficulty, ex.TotalDurationSeconds/60)),
		"",
		ex.Description,
	}
	if len(ex.Benefits) > 0 {
		lines = append(lines, "", stepTitleStyle.Render("Benefits"))
		for _, b := range ex.Benefits {
			lines = append(lines, cueStyle.Render("• "+b))
		}
	}
	if len(ex.Steps) > 0 {
		lines = append(lines, "", stepTitleStyle.Render(fmt.Sprintf("Steps (%d)", len(ex.Steps))))
		for i, step := range ex.Steps {
			lines = append(lines, cueStyle.Render(fmt.Sprintf("%d. %s (%ds)", i+1, step.Title, step.DurationSeconds)))
		}
	}
	lines = append(lines, "", dimStyle.Render("enter to start · esc to go back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewTimer() string {
	if m.done {
		content := lipgloss.JoinVertical(lipgloss.Center,
			bannerStyle.Render("Exercise complete!"),
			"",
			dimStyle.Render("Nice work. Returning to the catalog..."),
		)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	t := m.timer
	step := t.CurrentStep()

	stateNote := ""
	if t.State() == exercise.Paused {
		stateNote = dimStyle.Render("paused")
	}

	lines := []string{
		titleStyle.Render(m.detail.Name),
		dimStyle.Render(fmt.Sprintf("Step %d of %d", t.StepIndex()+1, t.TotalSteps())),
		"",
		stepTitleStyle.Render(step.Title),
		step.Description,
	}
	if step.Guidance != "" {
		lines = append(lines, dimStyle.Render(step.Guidance))
	}
	for _, cue := range step.Cues {
		lines = append(lines, cueStyle.Render("• "+cue))
	}
	lines = append(lines,
		"",
		countdownStyle.Render(formatCountdown(t.Remaining()))+" "+stateNote,
		m.progress.View(),
		"",
		dimStyle.Render("space pause/resume · s skip step · esc abandon"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func formatCountdown(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
