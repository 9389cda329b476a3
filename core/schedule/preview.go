package schedule

import "fmt"

const emptyCell = "—"

type (
	// PreviewRow is one rendered table row of the preview panel.
	PreviewRow struct {
		ID       string `json:"id"`
		Title    string `json:"title"` // raw title, suffix stripped
		Date     string `json:"date"`  // "May 1, 2024"
		Time     string `json:"time"`  // "09:00 - 11:00"
		Location string `json:"location"`
		Contact  string `json:"contact,omitempty"`
		Staffer  string `json:"staffer,omitempty"`
	}

	// DateGroup is one per-date table; groups appear in first-seen order of
	// the underlying list, keyed by the calendar date of each item's start.
	DateGroup struct {
		Date string       `json:"date"` // "5/1/2024"
		Rows []PreviewRow `json:"rows"`
	}

	// Preview is the full projection backing the two preview tabs.
	Preview struct {
		Events []DateGroup `json:"events"`
		Tasks  []DateGroup `json:"tasks"`
	}
)

// BuildPreview partitions items into events and tasks and groups each
// partition by start date. Pure projection; the input list is not mutated
// and group membership depends only on each item's start date.
func BuildPreview(items []Item) Preview {
	var events, tasks []Item
	for _, it := range items {
		switch it.Kind() {
		case KindTask:
			tasks = append(tasks, it)
		case KindEvent:
			events = append(events, it)
		}
	}
	return Preview{
		Events: groupByDate(events),
		Tasks:  groupByDate(tasks),
	}
}

func groupByDate(items []Item) []DateGroup {
	groups := make([]DateGroup, 0, len(items))
	index := make(map[string]int, len(items))

	for _, it := range items {
		key := it.DateKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup{Date: key})
		}
		groups[i].Rows = append(groups[i].Rows, buildRow(it))
	}
	return groups
}

func buildRow(it Item) PreviewRow {
	row := PreviewRow{
		ID:       it.ID,
		Title:    it.RawTitle(),
		Date:     it.Start,
		Time:     timeRange(it),
		Location: orDash(it.Location),
	}
	if start, ok := it.StartDate(); ok {
		row.Date = start.Format("Jan 2, 2006")
	}
	if it.Kind() == KindTask {
		row.Contact = orDash(it.Contact)
		row.Staffer = orDash(it.Staffer)
	}
	return row
}

// timeRange prefers the cosmetic typed times and falls back to the parsed
// instants rendered as 12-hour clock times ("09:30 AM"); a missing end
// renders as "--:--".
func timeRange(it Item) string {
	startTime := it.StartTime
	if startTime == "" {
		if t, ok := it.StartDate(); ok {
			startTime = t.Format("03:04 PM")
		}
	}
	endTime := it.EndTime
	if endTime == "" {
		if t, ok := it.EndDate(); ok {
			endTime = t.Format("03:04 PM")
		} else {
			endTime = "--:--"
		}
	}
	return fmt.Sprintf("%s - %s", startTime, endTime)
}

func orDash(s string) string {
	if s == "" {
		return emptyCell
	}
	return s
}
