package history

import (
	"testing"
	"time"
)

func deviceItem(ts time.Time, score float64) Item {
	item := Item{Type: TypeDevice, Title: "Environment Check", Timestamp: ts, Status: "completed"}
	if score > 0 {
		item.Score = &score
	}
	return item
}

func localDay(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.Local)
}

func TestGroupByDay_DayGranularity(t *testing.T) {
	items := []Item{
		deviceItem(localDay(2026, 3, 2, 8), 80),
		deviceItem(localDay(2026, 3, 2, 20), 90),
		deviceItem(localDay(2026, 3, 3, 9), 70),
		{Type: TypeExercise, Timestamp: localDay(2026, 3, 2, 10)}, // not a device item
		{Type: TypeDevice},                                       // no timestamp: dropped
	}

	groups := GroupByDay(items)

	if len(groups) != 2 {
		t.Fatalf("expected 2 dates, got %d: %v", len(groups), groups)
	}
	if len(groups["2026-03-02"]) != 2 {
		t.Errorf("expected two records on 2026-03-02, got %d", len(groups["2026-03-02"]))
	}
	if len(groups["2026-03-03"]) != 1 {
		t.Errorf("expected one record on 2026-03-03, got %d", len(groups["2026-03-03"]))
	}
}

func TestDailyScores_IgnoresNonPositiveAndRoundsToOneDecimal(t *testing.T) {
	groups := GroupByDay([]Item{
		deviceItem(localDay(2026, 3, 2, 8), 80.25),
		deviceItem(localDay(2026, 3, 2, 9), 81),
		deviceItem(localDay(2026, 3, 2, 10), 0), // unscored record
		deviceItem(localDay(2026, 3, 4, 8), 0),  // a date with only unscored records
	})

	scores := DailyScores(groups)

	if got := scores["2026-03-02"]; got != 80.6 {
		t.Errorf("per-day average = %v, want 80.6", got)
	}
	if _, ok := scores["2026-03-04"]; ok {
		t.Error("a date with no positive score must not appear in the map")
	}
}

func TestComputeStats_TwoLevelAverage(t *testing.T) {
	// Three days with per-day averages 80, 60, 100. The day with four
	// readings must not dominate: the headline is the mean of the day
	// averages, 80, not the flat mean of raw readings.
	devices := []Item{
		deviceItem(localDay(2026, 3, 1, 8), 80),
		deviceItem(localDay(2026, 3, 2, 8), 60),
		deviceItem(localDay(2026, 3, 2, 9), 60),
		deviceItem(localDay(2026, 3, 2, 10), 60),
		deviceItem(localDay(2026, 3, 2, 11), 60),
		deviceItem(localDay(2026, 3, 3, 8), 100),
	}
	exercises := []Item{
		{Type: TypeExercise, Timestamp: localDay(2026, 3, 1, 7)},
		{Type: TypeExercise, Timestamp: localDay(2026, 3, 2, 7)},
	}

	stats := ComputeStats(exercises, devices)

	if stats.AvgScore != 80 {
		t.Errorf("AvgScore = %d, want 80 (mean of per-day averages)", stats.AvgScore)
	}
	if stats.Total != 8 {
		t.Errorf("Total = %d, want 8", stats.Total)
	}
	if stats.Completed != 2 {
		t.Errorf("Completed = %d, want 2", stats.Completed)
	}
	if stats.ActiveDays != 3 {
		t.Errorf("ActiveDays = %d, want 3", stats.ActiveDays)
	}
}

func TestComputeStats_NoDeviceData(t *testing.T) {
	stats := ComputeStats([]Item{{Type: TypeExercise}}, nil)

	if stats.AvgScore != 0 || stats.ActiveDays != 0 {
		t.Errorf("empty device data should yield zero score and days, got %+v", stats)
	}
}

func TestMonth_NavigationRollsOverYears(t *testing.T) {
	jan := Month{Year: 2026, Month: time.January}
	if prev := jan.Prev(); prev.Year != 2025 || prev.Month != time.December {
		t.Errorf("January 2026 prev = %v %d, want December 2025", prev.Month, prev.Year)
	}

	dec := Month{Year: 2025, Month: time.December}
	if next := dec.Next(); next.Year != 2026 || next.Month != time.January {
		t.Errorf("December 2025 next = %v %d, want January 2026", next.Month, next.Year)
	}

	mid := Month{Year: 2026, Month: time.June}
	if next := mid.Next(); next.Year != 2026 || next.Month != time.July {
		t.Errorf("June 2026 next = %v %d, want July 2026", next.Month, next.Year)
	}
}

func TestMonth_GridShape(t *testing.T) {
	// March 2026 starts on a Sunday and has 31 days.
	m := Month{Year: 2026, Month: time.March}
	today := localDay(2026, 3, 10, 12)

	devices := []Item{deviceItem(localDay(2026, 3, 2, 8), 75)}
	groups := GroupByDay(devices)
	daily := DailyScores(groups)

	grid := m.Grid(daily, groups, today)

	if len(grid) != 31 {
		t.Fatalf("March 2026 grid should have 0 leading blanks + 31 days, got %d cells", len(grid))
	}
	if grid[0] == nil || grid[0].Day != 1 {
		t.Fatalf("first cell should be day 1, got %+v", grid[0])
	}

	day2 := grid[1]
	if !day2.HasData || day2.Score != 75 || day2.Records != 1 {
		t.Errorf("day 2 cell wrong: %+v", day2)
	}
	if !grid[9].IsToday {
		t.Error("day 10 should be marked as today")
	}
	if grid[2].HasData {
		t.Error("day 3 has no data and must not claim any")
	}
}

func TestMonth_GridLeadingBlanks(t *testing.T) {
	// May 2026 starts on a Friday (weekday index 5) and has 31 days.
	m := Month{Year: 2026, Month: time.May}
	grid := m.Grid(nil, nil, localDay(2026, 5, 1, 0))

	if len(grid) != 5+31 {
		t.Fatalf("expected 5 leading blanks + 31 days, got %d cells", len(grid))
	}
	for i := 0; i < 5; i++ {
		if grid[i] != nil {
			t.Errorf("cell %d should be a leading blank", i)
		}
	}
	if grid[5] == nil || grid[5].Day != 1 {
		t.Errorf("cell 5 should be day 1, got %+v", grid[5])
	}
}

func TestScoreLabel(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, "Excellent"},
		{80, "Excellent"},
		{79.9, "Good"},
		{60, "Good"},
		{59.9, "Needs Attention"},
		{10, "Needs Attention"},
	}
	for _, tc := range cases {
		if got := ScoreLabel(tc.score); got != tc.want {
			t.Errorf("ScoreLabel(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
