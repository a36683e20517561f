package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/envira/envira-cli/internal/logger"
)

type LoginCmd struct {
	Email string `help:"Account email. Prompted for when omitted."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	email := c.Email
	var password string

	var fields []huh.Field
	if email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&email).
			Validate(nonEmpty("email")))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Validate(nonEmpty("password")))

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return err
	}

	token, err := ctx.Client.Login(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := ctx.Session.Set(token); err != nil {
		return fmt.Errorf("storing session token: %w", err)
	}

	logger.Info("logged in", "email", email)
	fmt.Println("Logged in. Run `envira` to open the dashboard.")
	return nil
}

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
