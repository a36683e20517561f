package history

import (
	"fmt"
	"sort"
	"time"
)

// Tab restricts the merged feed to one item type.
type Tab string

const (
	TabAll      Tab = "all"
	TabDevice   Tab = "device"
	TabExercise Tab = "exercise"
)

// MergeFeed concatenates both transformed streams and orders them most
// recent first. Items without a resolvable timestamp compare equal to
// each other and sort after every dated item; the sort is stable so their
// input order is preserved. Sorting never fails.
func MergeFeed(exercises, devices []Item) []Item {
	merged := make([]Item, 0, len(exercises)+len(devices))
	merged = append(merged, exercises...)
	merged = append(merged, devices...)

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i].Timestamp, merged[j].Timestamp
		switch {
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		default:
			return a.After(b)
		}
	})
	return merged
}

// FilterByTab returns the items visible under the selected tab. TabAll
// passes everything through, including items of unknown type.
func FilterByTab(items []Item, tab Tab) []Item {
	if tab == TabAll {
		return items
	}
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if string(item.Type) == string(tab) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// RelativeTime renders a feed timestamp the way the history list shows
// it. Zero timestamps render as "Unknown time".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown time"
	}
	diff := now.Sub(t)
	hours := int(diff.Hours())
	days := hours / 24
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}
