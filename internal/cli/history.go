package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/envira/envira-cli/internal/constants"
	"github.com/envira/envira-cli/internal/history"
)

type HistoryCmd struct {
	Limit int `help:"Maximum feed entries to print." default:"20"`
}

// Run prints the reconciled feed without the TUI, for quick checks and
// shell pipelines.
func (c *HistoryCmd) Run(ctx *Context) error {
	if err := requireAuth(ctx); err != nil {
		return err
	}

	bg := context.Background()

	var devItems, exItems []history.Item
	devRecs, devErr := ctx.Client.DeviceHistory(bg, ctx.Config.DeviceID,
		constants.HistoryLimit, constants.HistoryHours)
	if devErr != nil {
		fmt.Printf("warning: device history unavailable: %v\n", devErr)
	} else {
		devItems = history.NormalizeDevices(devRecs)
	}

	exRecs, exErr := ctx.Client.ExerciseHistory(bg)
	if exErr != nil {
		fmt.Printf("warning: exercise history unavailable: %v\n", exErr)
	} else {
		exItems = history.NormalizeExercises(exRecs)
	}
	if devErr != nil && exErr != nil {
		return fmt.Errorf("no history source is reachable")
	}

	stats := history.ComputeStats(exItems, devItems)
	fmt.Printf("%d activities · %d exercises · avg score %d · %d active days\n\n",
		stats.Total, stats.Completed, stats.AvgScore, stats.ActiveDays)

	feed := history.MergeFeed(exItems, devItems)
	if len(feed) > c.Limit {
		feed = feed[:c.Limit]
	}
	now := time.Now()
	for _, item := range feed {
		detail := ""
		if item.Type == history.TypeDevice && item.Score != nil {
			detail = fmt.Sprintf("score %.0f (%s)", *item.Score, history.ScoreLabel(*item.Score))
		} else if item.Type == history.TypeExercise && item.Duration != nil {
			detail = fmt.Sprintf("%.0f min", *item.Duration)
		}
		fmt.Printf("%-22s %-20s %s\n", history.RelativeTime(item.Timestamp, now), item.Title, detail)
	}
	return nil
}
