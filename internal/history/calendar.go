package history

import (
	"math"
	"time"

	"github.com/envira/envira-cli/internal/constants"
)

// GroupByDay buckets device items by local calendar date (YYYY-MM-DD).
// Items without a resolvable timestamp are dropped here: the calendar
// needs a real date even though the feed keeps them.
func GroupByDay(items []Item) map[string][]Item {
	groups := make(map[string][]Item)
	for _, item := range items {
		if item.Type != TypeDevice || item.Timestamp.IsZero() {
			continue
		}
		key := item.Timestamp.Local().Format(constants.DateFormat)
		groups[key] = append(groups[key], item)
	}
	return groups
}

// DailyScores computes the arithmetic mean of positive scores for each
// date, rounded to one decimal. Dates whose records carry no positive
// score never appear in the map, so "no data" and "score 0" stay
// distinguishable.
func DailyScores(groups map[string][]Item) map[string]float64 {
	scores := make(map[string]float64, len(groups))
	for day, items := range groups {
		var sum float64
		var n int
		for _, item := range items {
			if item.Score != nil && *item.Score > 0 {
				sum += *item.Score
				n++
			}
		}
		if n > 0 {
			scores[day] = math.Round(sum/float64(n)*10) / 10
		}
	}
	return scores
}

// Stats is the strip rendered above the feed.
type Stats struct {
	Total     int // exercise items + device items
	Completed int // exercise items
	// AvgScore is the mean of per-day averages, not a flat mean over raw
	// readings: a day with many snapshots must not outweigh a day with
	// one. Integer-rounded for the headline figure.
	AvgScore   int
	ActiveDays int // distinct calendar dates with device data
}

// ComputeStats derives the aggregate strip from the normalized streams.
func ComputeStats(exercises, devices []Item) Stats {
	groups := GroupByDay(devices)
	daily := DailyScores(groups)

	stats := Stats{
		Total:      len(exercises) + len(devices),
		Completed:  len(exercises),
		ActiveDays: len(groups),
	}
	if len(daily) > 0 {
		var sum float64
		for _, avg := range daily {
			sum += avg
		}
		stats.AvgScore = int(math.Round(sum / float64(len(daily))))
	}
	return stats
}

// CalendarDay is one non-empty cell of the month grid.
type CalendarDay struct {
	Date    time.Time
	Day     int
	HasData bool
	Score   float64 // per-day average; meaningful only when HasData
	Records int
	IsToday bool
}

// Month identifies the displayed calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Prev navigates one month back, rolling into December of the previous
// year from January.
func (m Month) Prev() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, -1, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Next navigates one month forward, rolling into January of the next year
// from December.
func (m Month) Next() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// String renders e.g. "September 2026".
func (m Month) String() string {
	return m.Month.String() + " " + time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.Local).Format("2006")
}

// Grid generates the month's cell sequence: leading nils equal to the
// weekday index of day 1 (Sunday = 0), then one cell per day annotated
// with its data. Rendered seven cells per row.
func (m Month) Grid(daily map[string]float64, groups map[string][]Item, today time.Time) []*CalendarDay {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayKey := today.Format(constants.DateFormat)

	cells := make([]*CalendarDay, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, nil)
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.Local)
		key := date.Format(constants.DateFormat)
		score, hasData := daily[key]
		cells = append(cells, &CalendarDay{
			Date:    date,
			Day:     day,
			HasData: hasData,
			Score:   score,
			Records: len(groups[key]),
			IsToday: key == todayKey,
		})
	}
	return cells
}

// ScoreLabel maps a score to its qualitative label.
func ScoreLabel(score float64) string {
	switch {
	case score >= constants.ScoreExcellent:
		return constants.LabelExcellent
	case score >= constants.ScoreGood:
		return constants.LabelGood
	default:
		return constants.LabelNeedsAttention
	}
}
