package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/envira/envira-cli/internal/tui"
)

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *Context) error {
	if err := requireAuth(ctx); err != nil {
		return err
	}

	p := tea.NewProgram(
		tui.NewMainModel(ctx.Client, ctx.Config.DeviceID),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
