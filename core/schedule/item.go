package schedule

import (
	"fmt"
	"regexp"
	"time"
)

// Kind discriminates the two calendar item variants.
type Kind int

const (
	KindEvent Kind = iota
	KindTask
)

// Widget style classes, one per Kind.
const (
	EventStyleClass = "fc-scheduled-event"
	TaskStyleClass  = "fc-assigned-task"
)

// accepted layouts for Start/End, most specific first
var startLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// titleSuffixRegex matches the synthesized " (HH:MM - HH:MM)" display suffix.
// Only the first parenthesized group is stripped, so a user title that itself
// contains parentheses loses its first group on edit pre-fill.
var titleSuffixRegex = regexp.MustCompile(`\s*\([^)]*\)`)

// Item is a single calendar entry, either a scheduled event or a task
// assigned to a staffer. The JSON layout mirrors the persisted snapshot
// records and must stay schema-less and flat.
type Item struct {
	ID     string `json:"id"`
	Title  string `json:"title"` // display title, carries the time-range suffix
	Start  string `json:"start"`
	End    string `json:"end,omitempty"`
	AllDay bool   `json:"allDay"`
	IsTask bool   `json:"task,omitempty"`

	// typed in the editor; cosmetic only, never drives Start/End
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`

	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`

	// task-only fields
	Staffer string `json:"staffer,omitempty"`
	Contact string `json:"contact,omitempty"`
}

func (it Item) Kind() Kind {
	if it.IsTask {
		return KindTask
	}
	return KindEvent
}

// StyleClass returns the widget class for the item; a pure function of Kind.
func (it Item) StyleClass() string {
	switch it.Kind() {
	case KindTask:
		return TaskStyleClass
	default:
		return EventStyleClass
	}
}

// NewItemID derives the item identity from the selected range start and the
// display title. It is fixed at creation time and never regenerated on edit.
func NewItemID(start, displayTitle string) string {
	return start + "-" + displayTitle
}

// DisplayTitle concatenates the raw title with the typed time window.
func DisplayTitle(raw, startTime, endTime string) string {
	return fmt.Sprintf("%s (%s - %s)", raw, startTime, endTime)
}

// RawTitle recovers the user-typed title by stripping the first parenthesized
// suffix from the display title.
func (it Item) RawTitle() string {
	if loc := titleSuffixRegex.FindStringIndex(it.Title); loc != nil {
		return it.Title[:loc[0]] + it.Title[loc[1]:]
	}
	return it.Title
}

// SetSpan replaces the item's start/end instants, leaving every other field
// untouched. Drag-move and resize both funnel through here.
func (it *Item) SetSpan(start, end string) {
	it.Start = start
	it.End = end
}

// StartDate parses the item's start instant.
func (it Item) StartDate() (time.Time, bool) {
	return parseStamp(it.Start)
}

// EndDate parses the item's end instant.
func (it Item) EndDate() (time.Time, bool) {
	return parseStamp(it.End)
}

// DateKey returns the calendar-date grouping key of the item's start,
// formatted the way the portal groups preview tables ("5/1/2024").
// Unparseable starts group under the raw string so they stay stable.
func (it Item) DateKey() string {
	t, ok := it.StartDate()
	if !ok {
		return it.Start
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

func parseStamp(s string) (time.Time, bool) {
	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
