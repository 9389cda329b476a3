package schedule

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// InitValidators wires the shared validator into this package. The custom
// tags used here (timestr) are registered by core.InitValidators.
func InitValidators(v *validator.Validate, _ ut.Translator) {
	validate = v
}

// Tab selects one of the editor dialog's two mutually exclusive modes.
type Tab string

const (
	TabEvent Tab = "event"
	TabTask  Tab = "task"
)

type (
	// EventForm holds the Event tab's in-progress input.
	EventForm struct {
		Title       string `json:"title" validate:"required"`
		StartTime   string `json:"startTime" validate:"required,timestr"`
		EndTime     string `json:"endTime" validate:"required,timestr"`
		Location    string `json:"location"`
		Description string `json:"description"`
	}

	// TaskForm holds the Task tab's in-progress input.
	TaskForm struct {
		Title       string `json:"title" validate:"required"`
		StartTime   string `json:"startTime" validate:"required,timestr"`
		EndTime     string `json:"endTime" validate:"required,timestr"`
		Location    string `json:"location"`
		Description string `json:"description"`
		Staffer     string `json:"staffer"`
		Contact     string `json:"contact"`
	}

	// SelectedRange is the calendar span the user selected before the editor
	// opened. It alone governs the produced item's placement; the typed
	// start/end times only feed the display title.
	SelectedRange struct {
		Start  string `json:"start" validate:"required"`
		End    string `json:"end"`
		AllDay bool   `json:"allDay"`
	}

	// Editor models the two-tab dialog. Each tab keeps its own form state;
	// switching tabs never clears the other tab's input. Edit mode is
	// signalled by a non-nil target whose identity survives the submit.
	Editor struct {
		activeTab Tab
		event     EventForm
		task      TaskForm
		rng       SelectedRange
		target    *Item
	}
)

// NewEditor opens an editor for the given range. A non-nil target switches
// to edit mode: the matching tab is activated and pre-filled with the
// target's fields, the title stripped of its time-range suffix.
func NewEditor(rng SelectedRange, target *Item) *Editor {
	ed := &Editor{
		activeTab: TabEvent,
		rng:       rng,
	}
	if target == nil {
		return ed
	}

	cp := *target
	ed.target = &cp
	switch cp.Kind() {
	case KindTask:
		ed.activeTab = TabTask
		ed.task = TaskForm{
			Title:       cp.RawTitle(),
			StartTime:   cp.StartTime,
			EndTime:     cp.EndTime,
			Location:    cp.Location,
			Description: cp.Description,
			Staffer:     cp.Staffer,
			Contact:     cp.Contact,
		}
	default:
		ed.event = EventForm{
			Title:       cp.RawTitle(),
			StartTime:   cp.StartTime,
			EndTime:     cp.EndTime,
			Location:    cp.Location,
			Description: cp.Description,
		}
	}
	return ed
}

func (ed *Editor) ActiveTab() Tab       { return ed.activeTab }
func (ed *Editor) Range() SelectedRange { return ed.rng }

// SwitchTab changes the active mode without touching either form.
func (ed *Editor) SwitchTab(tab Tab) {
	if tab == TabEvent || tab == TabTask {
		ed.activeTab = tab
	}
}

func (ed *Editor) SetEventForm(f EventForm) { ed.event = f }
func (ed *Editor) SetTaskForm(f TaskForm)   { ed.task = f }

func (ed *Editor) EventForm() EventForm { return ed.event }
func (ed *Editor) TaskForm() TaskForm   { return ed.task }

// Editing reports whether the editor targets an existing item.
func (ed *Editor) Editing() bool { return ed.target != nil }

// Submit validates the active tab's form and builds the item record.
// Start/End/AllDay come from the selected range (end falling back to start);
// the typed times end up in the display title and the cosmetic fields only.
func (ed *Editor) Submit() (Item, error) {
	end := ed.rng.End
	if end == "" {
		end = ed.rng.Start
	}

	var it Item
	switch ed.activeTab {
	case TabTask:
		if err := validate.Struct(ed.task); err != nil {
			return Item{}, err
		}
		title := DisplayTitle(ed.task.Title, ed.task.StartTime, ed.task.EndTime)
		it = Item{
			ID:          NewItemID(ed.rng.Start, title),
			Title:       title,
			Start:       ed.rng.Start,
			End:         end,
			AllDay:      ed.rng.AllDay,
			IsTask:      true,
			StartTime:   ed.task.StartTime,
			EndTime:     ed.task.EndTime,
			Location:    ed.task.Location,
			Description: ed.task.Description,
			Staffer:     ed.task.Staffer,
			Contact:     ed.task.Contact,
		}
	default:
		if err := validate.Struct(ed.event); err != nil {
			return Item{}, err
		}
		title := DisplayTitle(ed.event.Title, ed.event.StartTime, ed.event.EndTime)
		it = Item{
			ID:          NewItemID(ed.rng.Start, title),
			Title:       title,
			Start:       ed.rng.Start,
			End:         end,
			AllDay:      ed.rng.AllDay,
			StartTime:   ed.event.StartTime,
			EndTime:     ed.event.EndTime,
			Location:    ed.event.Location,
			Description: ed.event.Description,
		}
	}

	if ed.target != nil {
		// identity is stable across edits
		it.ID = ed.target.ID
	}
	return it, nil
}
