package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/envira/envira-cli/internal/logger"
	"github.com/envira/envira-cli/internal/models"
)

type PreferencesCmd struct{}

func (c *PreferencesCmd) Run(ctx *Context) error {
	if err := requireAuth(ctx); err != nil {
		return err
	}

	activities, err := ctx.Client.Activities(context.Background())
	if err != nil {
		return fmt.Errorf("loading activity catalog: %w", err)
	}
	if len(activities) == 0 {
		return fmt.Errorf("the backend returned no activities to choose from")
	}

	options := make([]huh.Option[string], len(activities))
	for i, act := range activities {
		options[i] = huh.NewOption(act.Name, act.ActivityID)
	}

	var selected []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Which activities do you care about?").
			Description("Recommendations are tuned to what you pick.").
			Options(options...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return err
	}

	prefs := models.Preferences{
		ActivityPreferences: make(map[string]models.ActivityPreference, len(selected)),
		SensitivityLevels:   models.DefaultSensitivityLevels(),
		HealthConditions:    []string{},
	}
	for _, id := range selected {
		prefs.ActivityPreferences[id] = models.ActivityPreference{
			Priority: "medium",
			Enabled:  true,
		}
	}

	if err := ctx.Client.UpdatePreferences(context.Background(), prefs); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}

	logger.Info("preferences updated", "activities", len(selected))
	fmt.Printf("Saved preferences for %d activities.\n", len(selected))
	return nil
}
