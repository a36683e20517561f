// Package cli implements the envira subcommands. Commands receive their
// shared dependencies through Context, wired up once in main.
package cli

import (
	"errors"

	"github.com/envira/envira-cli/internal/api"
	"github.com/envira/envira-cli/internal/config"
	"github.com/envira/envira-cli/internal/session"
)

type Context struct {
	Config    config.Config
	ConfigDir string
	Client    *api.Client
	Session   *session.Store
}

// requireAuth turns a missing token into a friendlier message than the
// backend's 401 would give.
func requireAuth(ctx *Context) error {
	if _, err := ctx.Session.Get(); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return errors.New("not logged in - run `envira login` first")
		}
		return err
	}
	return nil
}
