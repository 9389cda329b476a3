package schedule

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/quillhq/newsroom/core"
)

func initTestValidators(t *testing.T) {
	t.Helper()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	v := validator.New()
	core.InitValidators(v, translator)
	InitValidators(v, translator)
}

func TestEditorTabsKeepTheirInput(t *testing.T) {
	ed := NewEditor(SelectedRange{Start: "2024-05-01"}, nil)
	if ed.ActiveTab() != TabEvent {
		t.Fatalf("ActiveTab() = %v, want %v", ed.ActiveTab(), TabEvent)
	}

	ed.SetEventForm(EventForm{Title: "Cover Ceremony", StartTime: "09:00", EndTime: "11:00"})
	ed.SwitchTab(TabTask)
	ed.SetTaskForm(TaskForm{Title: "Shoot portraits", StartTime: "13:00", EndTime: "14:00", Staffer: "Ana"})
	ed.SwitchTab(TabEvent)

	if got := ed.EventForm(); got.Title != "Cover Ceremony" {
		t.Errorf("event form lost its input: %+v", got)
	}
	if got := ed.TaskForm(); got.Title != "Shoot portraits" || got.Staffer != "Ana" {
		t.Errorf("task form lost its input: %+v", got)
	}

	ed.SwitchTab("bogus")
	if ed.ActiveTab() != TabEvent {
		t.Errorf("SwitchTab(bogus) changed the tab to %v", ed.ActiveTab())
	}
}

func TestEditorSubmitEvent(t *testing.T) {
	initTestValidators(t)

	ed := NewEditor(SelectedRange{Start: "2024-05-01", AllDay: true}, nil)
	ed.SetEventForm(EventForm{
		Title:     "Cover Ceremony",
		StartTime: "09:00",
		EndTime:   "11:00",
		Location:  "Main Hall",
	})

	it, err := ed.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if want := "Cover Ceremony (09:00 - 11:00)"; it.Title != want {
		t.Errorf("Title = %q, want %q", it.Title, want)
	}
	if want := "2024-05-01-Cover Ceremony (09:00 - 11:00)"; it.ID != want {
		t.Errorf("ID = %q, want %q", it.ID, want)
	}
	// no range end selected: end falls back to start
	if it.Start != "2024-05-01" || it.End != "2024-05-01" {
		t.Errorf("span = %q/%q", it.Start, it.End)
	}
	if !it.AllDay || it.IsTask {
		t.Errorf("flags = allDay:%v task:%v", it.AllDay, it.IsTask)
	}
	// typed times are cosmetic, never parsed into the span
	if it.StartTime != "09:00" || it.EndTime != "11:00" {
		t.Errorf("typed times = %q/%q", it.StartTime, it.EndTime)
	}
}

func TestEditorSubmitTask(t *testing.T) {
	initTestValidators(t)

	ed := NewEditor(SelectedRange{Start: "2024-05-01", End: "2024-05-02"}, nil)
	ed.SwitchTab(TabTask)
	ed.SetTaskForm(TaskForm{
		Title:     "Shoot portraits",
		StartTime: "13:00",
		EndTime:   "14:00",
		Staffer:   "Ana",
		Contact:   "ana@quill.test",
	})

	it, err := ed.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !it.IsTask {
		t.Error("IsTask = false, want true")
	}
	if it.End != "2024-05-02" {
		t.Errorf("End = %q, want selected range end", it.End)
	}
	if it.Staffer != "Ana" || it.Contact != "ana@quill.test" {
		t.Errorf("task fields = %q/%q", it.Staffer, it.Contact)
	}
}

func TestEditorSubmitValidation(t *testing.T) {
	initTestValidators(t)

	tests := []struct {
		name string
		form EventForm
	}{
		{name: "missing title", form: EventForm{StartTime: "09:00", EndTime: "11:00"}},
		{name: "missing times", form: EventForm{Title: "Cover Ceremony"}},
		{name: "malformed time", form: EventForm{Title: "Cover Ceremony", StartTime: "9:00", EndTime: "11:00"}},
		{name: "out of range time", form: EventForm{Title: "Cover Ceremony", StartTime: "09:00", EndTime: "24:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := NewEditor(SelectedRange{Start: "2024-05-01"}, nil)
			ed.SetEventForm(tt.form)
			if _, err := ed.Submit(); err == nil {
				t.Error("Submit() expected a validation error")
			}
		})
	}
}

func TestEditorPrefillsTarget(t *testing.T) {
	target := Item{
		ID:        "2024-05-01-Cover Ceremony (09:00 - 11:00)",
		Title:     "Cover Ceremony (09:00 - 11:00)",
		Start:     "2024-05-01",
		End:       "2024-05-01",
		StartTime: "09:00",
		EndTime:   "11:00",
		Location:  "Main Hall",
	}

	ed := NewEditor(SelectedRange{Start: "2024-05-01"}, &target)
	if !ed.Editing() {
		t.Fatal("Editing() = false, want true")
	}
	form := ed.EventForm()
	if form.Title != "Cover Ceremony" {
		t.Errorf("prefilled title = %q, want suffix stripped", form.Title)
	}
	if form.StartTime != "09:00" || form.EndTime != "11:00" || form.Location != "Main Hall" {
		t.Errorf("prefilled form = %+v", form)
	}
}

func TestEditorPrefillsTaskTarget(t *testing.T) {
	target := Item{
		ID:      "2024-05-01-Shoot portraits (13:00 - 14:00)",
		Title:   "Shoot portraits (13:00 - 14:00)",
		Start:   "2024-05-01",
		IsTask:  true,
		Staffer: "Ana",
	}

	ed := NewEditor(SelectedRange{Start: "2024-05-01"}, &target)
	if ed.ActiveTab() != TabTask {
		t.Fatalf("ActiveTab() = %v, want %v", ed.ActiveTab(), TabTask)
	}
	if form := ed.TaskForm(); form.Title != "Shoot portraits" || form.Staffer != "Ana" {
		t.Errorf("prefilled form = %+v", form)
	}
}

func TestEditorSubmitKeepsTargetIdentity(t *testing.T) {
	initTestValidators(t)

	target := Item{
		ID:        "2024-05-01-Cover Ceremony (09:00 - 11:00)",
		Title:     "Cover Ceremony (09:00 - 11:00)",
		Start:     "2024-05-01",
		StartTime: "09:00",
		EndTime:   "11:00",
	}

	ed := NewEditor(SelectedRange{Start: "2024-05-01"}, &target)
	form := ed.EventForm()
	form.Location = "Auditorium"
	ed.SetEventForm(form)

	it, err := ed.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if it.ID != target.ID {
		t.Errorf("ID = %q, want original %q", it.ID, target.ID)
	}
	if it.Location != "Auditorium" {
		t.Errorf("Location = %q, want %q", it.Location, "Auditorium")
	}
}
