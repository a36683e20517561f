package cli

import (
	"fmt"

	"github.com/envira/envira-cli/internal/logger"
)

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Session.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	logger.Info("logged out")
	fmt.Println("Logged out.")
	return nil
}
