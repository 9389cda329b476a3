package schedule

import (
	"testing"
)

func TestItemRawTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "with time suffix", title: "Cover Ceremony (09:00 - 11:00)", want: "Cover Ceremony"},
		{name: "no suffix", title: "Cover Ceremony", want: "Cover Ceremony"},
		{name: "empty", title: "", want: ""},
		// only the first parenthesized group goes
		{name: "own parens", title: "Shoot (studio) (09:00 - 11:00)", want: "Shoot (09:00 - 11:00)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Item{Title: tt.title}
			if got := it.RawTitle(); got != tt.want {
				t.Errorf("RawTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestItemDateKey(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  string
	}{
		{name: "date only", start: "2024-05-01", want: "5/1/2024"},
		{name: "datetime", start: "2024-05-01T09:30:00", want: "5/1/2024"},
		{name: "rfc3339", start: "2024-12-09T09:30:00Z", want: "12/9/2024"},
		{name: "unparseable stays raw", start: "soon", want: "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Item{Start: tt.start}
			if got := it.DateKey(); got != tt.want {
				t.Errorf("DateKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewItemID(t *testing.T) {
	title := DisplayTitle("Cover Ceremony", "09:00", "11:00")
	if want := "Cover Ceremony (09:00 - 11:00)"; title != want {
		t.Fatalf("DisplayTitle() = %q, want %q", title, want)
	}
	id := NewItemID("2024-05-01", title)
	if want := "2024-05-01-Cover Ceremony (09:00 - 11:00)"; id != want {
		t.Errorf("NewItemID() = %q, want %q", id, want)
	}
}

func TestItemStyleClass(t *testing.T) {
	event := Item{Title: "e"}
	if got := event.StyleClass(); got != EventStyleClass {
		t.Errorf("StyleClass() = %q, want %q", got, EventStyleClass)
	}
	task := Item{Title: "t", IsTask: true}
	if got := task.StyleClass(); got != TaskStyleClass {
		t.Errorf("StyleClass() = %q, want %q", got, TaskStyleClass)
	}
}

func TestItemSetSpan(t *testing.T) {
	it := Item{
		ID:        "2024-05-01-Cover Ceremony (09:00 - 11:00)",
		Title:     "Cover Ceremony (09:00 - 11:00)",
		Start:     "2024-05-01",
		End:       "2024-05-01",
		StartTime: "09:00",
		EndTime:   "11:00",
		Location:  "Main Hall",
	}
	orig := it

	it.SetSpan("2024-05-03", "2024-05-04")

	if it.Start != "2024-05-03" || it.End != "2024-05-04" {
		t.Errorf("SetSpan() span = %q/%q", it.Start, it.End)
	}
	// everything else stays put, identity included
	if it.ID != orig.ID || it.Title != orig.Title || it.StartTime != orig.StartTime ||
		it.EndTime != orig.EndTime || it.Location != orig.Location {
		t.Errorf("SetSpan() touched more than the span: %+v", it)
	}
}
