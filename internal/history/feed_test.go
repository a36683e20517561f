package history

import (
	"testing"
	"time"
)

func itemAt(typ ItemType, title, ts string) Item {
	return Item{Type: typ, Title: title, Timestamp: parseTimestamp(ts)}
}

func TestMergeFeed_MostRecentFirst(t *testing.T) {
	exercises := []Item{
		itemAt(TypeExercise, "older", "2026-02-01T09:00:00Z"),
		itemAt(TypeExercise, "newest", "2026-02-03T09:00:00Z"),
	}
	devices := []Item{
		itemAt(TypeDevice, "middle", "2026-02-02T09:00:00Z"),
	}

	feed := MergeFeed(exercises, devices)

	want := []string{"newest", "middle", "older"}
	for i, title := range want {
		if feed[i].Title != title {
			t.Errorf("feed[%d] = %q, want %q", i, feed[i].Title, title)
		}
	}
}

func TestMergeFeed_UnparsableTimestampsSinkAndKeepOrder(t *testing.T) {
	exercises := []Item{
		itemAt(TypeExercise, "undated-a", ""),
		itemAt(TypeExercise, "dated", "2026-02-01T09:00:00Z"),
		itemAt(TypeExercise, "undated-b", ""),
	}

	feed := MergeFeed(exercises, nil)

	if feed[0].Title != "dated" {
		t.Fatalf("expected dated item first, got %q", feed[0].Title)
	}
	if feed[1].Title != "undated-a" || feed[2].Title != "undated-b" {
		t.Errorf("undated items must keep input order, got %q then %q", feed[1].Title, feed[2].Title)
	}
}

func TestFilterByTab(t *testing.T) {
	feed := []Item{
		itemAt(TypeExercise, "ex", "2026-02-01T09:00:00Z"),
		itemAt(TypeDevice, "dev", "2026-02-01T10:00:00Z"),
	}

	if got := FilterByTab(feed, TabAll); len(got) != 2 {
		t.Errorf("TabAll should pass everything, got %d items", len(got))
	}
	if got := FilterByTab(feed, TabDevice); len(got) != 1 || got[0].Title != "dev" {
		t.Errorf("TabDevice filter wrong: %+v", got)
	}
	if got := FilterByTab(feed, TabExercise); len(got) != 1 || got[0].Title != "ex" {
		t.Errorf("TabExercise filter wrong: %+v", got)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Minute), "Just now"},
		{"hours", now.Add(-5 * time.Hour), "5h ago"},
		{"yesterday", now.Add(-30 * time.Hour), "Yesterday"},
		{"days", now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{"date", now.Add(-20 * 24 * time.Hour), "Feb 18, 2026"},
		{"zero", time.Time{}, "Unknown time"},
	}

	for _, tc := range cases {
		if got := RelativeTime(tc.ts, now); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
