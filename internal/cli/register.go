package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/envira/envira-cli/internal/logger"
)

type RegisterCmd struct{}

func (c *RegisterCmd) Run(ctx *Context) error {
	var name, email, password, confirm string

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&name).
			Validate(nonEmpty("name")),
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&email).
			Validate(nonEmpty("email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Validate(func(s string) error {
				if len(s) < 8 {
					return errors.New("password must be at least 8 characters")
				}
				return nil
			}),
		huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	if err := ctx.Client.Register(context.Background(), email, password, name); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	// Registration does not return a token; log in right away with the
	// same credentials.
	token, err := ctx.Client.Login(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("account created but login failed: %w", err)
	}
	if err := ctx.Session.Set(token); err != nil {
		return fmt.Errorf("storing session token: %w", err)
	}

	logger.Info("registered", "email", email)
	fmt.Println("Account created. Run `envira preferences` to pick your activities.")
	return nil
}
