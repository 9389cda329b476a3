package schedule

import (
	"errors"
	"reflect"
	"testing"
)

type memStore struct {
	items   []Item
	saves   int
	loadErr error
	saveErr error
}

var _ SnapshotStore = (*memStore)(nil)

func (s *memStore) Load() ([]Item, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	cpy := make([]Item, len(s.items))
	copy(cpy, s.items)
	return cpy, nil
}

func (s *memStore) Save(items []Item) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	cpy := make([]Item, len(items))
	copy(cpy, items)
	s.items = cpy
	s.saves++
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

// checkMirrored asserts the persisted snapshot matches the in-memory list.
func checkMirrored(t *testing.T, svc *Service, store *memStore) {
	t.Helper()
	if !reflect.DeepEqual(svc.Items(), store.items) {
		t.Errorf("snapshot drifted from memory:\n mem   = %+v\n store = %+v", svc.Items(), store.items)
	}
}

func newTestItem(start, rawTitle, startTime, endTime string) Item {
	title := DisplayTitle(rawTitle, startTime, endTime)
	return Item{
		ID:        NewItemID(start, title),
		Title:     title,
		Start:     start,
		End:       start,
		StartTime: startTime,
		EndTime:   endTime,
	}
}

func TestServiceStartsFromSnapshot(t *testing.T) {
	it := newTestItem("2024-05-01", "Cover Ceremony", "09:00", "11:00")
	store := &memStore{items: []Item{it}}

	svc := NewService(store, nopLogger{})
	if got := svc.Items(); len(got) != 1 || got[0].ID != it.ID {
		t.Errorf("Items() = %+v, want the persisted item", got)
	}
	if svc.State() != StateIdle {
		t.Errorf("State() = %v, want %v", svc.State(), StateIdle)
	}
}

func TestServiceStartsEmptyOnLoadFailure(t *testing.T) {
	store := &memStore{loadErr: errors.New("boom")}
	svc := NewService(store, nopLogger{})
	if got := svc.Items(); len(got) != 0 {
		t.Errorf("Items() = %+v, want empty", got)
	}
}

func TestServiceCreateFlow(t *testing.T) {
	initTestValidators(t)
	store := &memStore{}
	svc := NewService(store, nopLogger{})

	ed, err := svc.OpenEditor(SelectedRange{Start: "2024-05-01"}, "")
	if err != nil {
		t.Fatalf("OpenEditor() error = %v", err)
	}
	if svc.State() != StateEditing {
		t.Fatalf("State() = %v, want %v", svc.State(), StateEditing)
	}

	// a second editor cannot open while one is up
	if _, err = svc.OpenEditor(SelectedRange{Start: "2024-05-02"}, ""); err != ErrEditorOpen {
		t.Errorf("OpenEditor() error = %v, want %v", err, ErrEditorOpen)
	}

	ed.SetEventForm(EventForm{Title: "Cover Ceremony", StartTime: "09:00", EndTime: "11:00"})
	it, err := svc.SubmitEditor()
	if err != nil {
		t.Fatalf("SubmitEditor() error = %v", err)
	}

	if want := "2024-05-01-Cover Ceremony (09:00 - 11:00)"; it.ID != want {
		t.Errorf("ID = %q, want %q", it.ID, want)
	}
	if svc.State() != StateIdle {
		t.Errorf("State() = %v, want %v", svc.State(), StateIdle)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	checkMirrored(t, svc, store)
}

func TestServiceSubmitValidationKeepsEditorOpen(t *testing.T) {
	initTestValidators(t)
	store := &memStore{}
	svc := NewService(store, nopLogger{})

	ed, err := svc.OpenEditor(SelectedRange{Start: "2024-05-01"}, "")
	if err != nil {
		t.Fatalf("OpenEditor() error = %v", err)
	}
	ed.SetEventForm(EventForm{StartTime: "09:00", EndTime: "11:00"}) // no title

	if _, err = svc.SubmitEditor(); err == nil {
		t.Fatal("SubmitEditor() expected a validation error")
	}
	if svc.State() != StateEditing {
		t.Errorf("State() = %v, want editor still open", svc.State())
	}
	if len(svc.Items()) != 0 || store.saves != 0 {
		t.Errorf("list mutated on failed submit: items=%d saves=%d", len(svc.Items()), store.saves)
	}

	svc.CancelEdit()
	if svc.State() != StateIdle {
		t.Errorf("State() = %v, want %v after cancel", svc.State(), StateIdle)
	}
}

func TestServiceEditKeepsIdentity(t *testing.T) {
	initTestValidators(t)
	it := newTestItem("2024-05-01", "Cover Ceremony", "09:00", "11:00")
	store := &memStore{items: []Item{it}}
	svc := NewService(store, nopLogger{})

	ed, err := svc.OpenEditor(SelectedRange{Start: "2024-05-01"}, it.ID)
	if err != nil {
		t.Fatalf("OpenEditor() error = %v", err)
	}
	form := ed.EventForm()
	form.Location = "Auditorium"
	ed.SetEventForm(form)

	updated, err := svc.SubmitEditor()
	if err != nil {
		t.Fatalf("SubmitEditor() error = %v", err)
	}
	if updated.ID != it.ID {
		t.Errorf("ID = %q, want identity preserved %q", updated.ID, it.ID)
	}
	if updated.Location != "Auditorium" {
		t.Errorf("Location = %q, want %q", updated.Location, "Auditorium")
	}
	if got := svc.Items(); len(got) != 1 {
		t.Errorf("Items() = %d entries, want 1", len(got))
	}
	checkMirrored(t, svc, store)
}

func TestServiceOpenEditorUnknownTarget(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, nopLogger{})

	if _, err := svc.OpenEditor(SelectedRange{Start: "2024-05-01"}, "nope"); err != ErrNotFound {
		t.Errorf("OpenEditor() error = %v, want %v", err, ErrNotFound)
	}
	if svc.State() != StateIdle {
		t.Errorf("State() = %v, want %v", svc.State(), StateIdle)
	}
}

func TestServiceMoveAndResizeOnlyTouchTheSpan(t *testing.T) {
	it := newTestItem("2024-05-01", "Cover Ceremony", "09:00", "11:00")
	store := &memStore{items: []Item{it}}
	svc := NewService(store, nopLogger{})

	moved, err := svc.MoveItem(it.ID, "2024-05-03", "2024-05-04")
	if err != nil {
		t.Fatalf("MoveItem() error = %v", err)
	}
	if moved.Start != "2024-05-03" || moved.End != "2024-05-04" {
		t.Errorf("span = %q/%q", moved.Start, moved.End)
	}
	if moved.ID != it.ID || moved.Title != it.Title || moved.StartTime != it.StartTime {
		t.Errorf("move touched more than the span: %+v", moved)
	}
	checkMirrored(t, svc, store)

	resized, err := svc.ResizeItem(it.ID, "2024-05-03", "2024-05-05")
	if err != nil {
		t.Fatalf("ResizeItem() error = %v", err)
	}
	if resized.End != "2024-05-05" {
		t.Errorf("End = %q, want %q", resized.End, "2024-05-05")
	}
	checkMirrored(t, svc, store)

	if _, err = svc.MoveItem("nope", "2024-05-03", "2024-05-04"); err != ErrNotFound {
		t.Errorf("MoveItem() error = %v, want %v", err, ErrNotFound)
	}
}

func TestServiceDeleteFlow(t *testing.T) {
	a := newTestItem("2024-05-01", "Cover Ceremony", "09:00", "11:00")
	b := newTestItem("2024-05-02", "Print run", "08:00", "10:00")
	store := &memStore{items: []Item{a, b}}
	svc := NewService(store, nopLogger{})

	// cancelled confirmation leaves the list alone
	if _, err := svc.RequestDelete(a.ID); err != nil {
		t.Fatalf("RequestDelete() error = %v", err)
	}
	if svc.State() != StateConfirmingDelete {
		t.Fatalf("State() = %v, want %v", svc.State(), StateConfirmingDelete)
	}
	svc.CancelDelete()
	if svc.State() != StateIdle {
		t.Errorf("State() = %v, want %v", svc.State(), StateIdle)
	}
	if len(svc.Items()) != 2 || store.saves != 0 {
		t.Errorf("cancelled delete mutated state: items=%d saves=%d", len(svc.Items()), store.saves)
	}

	// confirmed delete removes exactly the parked item
	if _, err := svc.RequestDelete(a.ID); err != nil {
		t.Fatalf("RequestDelete() error = %v", err)
	}
	deleted, err := svc.ConfirmDelete()
	if err != nil {
		t.Fatalf("ConfirmDelete() error = %v", err)
	}
	if deleted.ID != a.ID {
		t.Errorf("deleted = %q, want %q", deleted.ID, a.ID)
	}
	if got := svc.Items(); len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("Items() = %+v, want only %q left", got, b.ID)
	}
	checkMirrored(t, svc, store)

	// nothing pending anymore
	if _, err = svc.ConfirmDelete(); err != ErrNoDeletePending {
		t.Errorf("ConfirmDelete() error = %v, want %v", err, ErrNoDeletePending)
	}
}

func TestServiceFailedSubmitSaveKeepsListAndEditor(t *testing.T) {
	initTestValidators(t)
	store := &memStore{saveErr: errors.New("boom")}
	svc := NewService(store, nopLogger{})

	ed, err := svc.OpenEditor(SelectedRange{Start: "2024-05-01"}, "")
	if err != nil {
		t.Fatalf("OpenEditor() error = %v", err)
	}
	ed.SetEventForm(EventForm{Title: "Cover Ceremony", StartTime: "09:00", EndTime: "11:00"})

	if _, err = svc.SubmitEditor(); err == nil {
		t.Fatal("SubmitEditor() expected a save error")
	}
	if len(svc.Items()) != 0 {
		t.Errorf("Items() = %d entries, want list untouched on failed save", len(svc.Items()))
	}
	if svc.State() != StateEditing {
		t.Errorf("State() = %v, want editor still open", svc.State())
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0", store.saves)
	}

	// a retry must not leave a duplicate behind
	store.saveErr = nil
	it, err := svc.SubmitEditor()
	if err != nil {
		t.Fatalf("SubmitEditor() retry error = %v", err)
	}
	got := svc.Items()
	if len(got) != 1 || got[0].ID != it.ID {
		t.Errorf("Items() = %+v, want exactly one item", got)
	}
	checkMirrored(t, svc, store)
}

func TestServiceFailedMoveSaveKeepsSpan(t *testing.T) {
	it := newTestItem("2024-05-01", "Cover Ceremony", "09:00", "11:00")
	store := &memStore{items: []Item{it}}
	svc := NewService(store, nopLogger{})

	store.saveErr = errors.New("boom")
	if _, err := svc.MoveItem(it.ID, "2024-05-03", "2024-05-04"); err == nil {
		t.Fatal("MoveItem() expected a save error")
	}
	if got := svc.Items(); got[0].Start != it.Start || got[0].End != it.End {
		t.Errorf("span changed on failed save: %+v", got[0])
	}
	checkMirrored(t, svc, store)
}

func TestServiceFailedConfirmDeleteSaveKeepsPending(t *testing.T) {
	it := newTestItem("2024-05-01", "Cover Ceremony", "09:00", "11:00")
	store := &memStore{items: []Item{it}}
	svc := NewService(store, nopLogger{})

	if _, err := svc.RequestDelete(it.ID); err != nil {
		t.Fatalf("RequestDelete() error = %v", err)
	}
	store.saveErr = errors.New("boom")
	if _, err := svc.ConfirmDelete(); err == nil {
		t.Fatal("ConfirmDelete() expected a save error")
	}
	if len(svc.Items()) != 1 {
		t.Errorf("Items() = %d entries, want item kept on failed save", len(svc.Items()))
	}
	if svc.State() != StateConfirmingDelete {
		t.Errorf("State() = %v, want delete still parked", svc.State())
	}
	checkMirrored(t, svc, store)

	// confirming again retries the removal
	store.saveErr = nil
	deleted, err := svc.ConfirmDelete()
	if err != nil {
		t.Fatalf("ConfirmDelete() retry error = %v", err)
	}
	if deleted.ID != it.ID || len(svc.Items()) != 0 {
		t.Errorf("retry left Items() = %+v", svc.Items())
	}
	checkMirrored(t, svc, store)
}

func TestServiceBusyStateErrors(t *testing.T) {
	a := newTestItem("2024-05-01", "Cover Ceremony", "09:00", "11:00")
	b := newTestItem("2024-05-02", "Print run", "08:00", "10:00")
	store := &memStore{items: []Item{a, b}}
	svc := NewService(store, nopLogger{})

	// a pending delete blocks the editor and further delete requests
	if _, err := svc.RequestDelete(a.ID); err != nil {
		t.Fatalf("RequestDelete() error = %v", err)
	}
	if _, err := svc.OpenEditor(SelectedRange{Start: "2024-05-01"}, ""); err != ErrDeletePending {
		t.Errorf("OpenEditor() error = %v, want %v", err, ErrDeletePending)
	}
	if _, err := svc.RequestDelete(b.ID); err != ErrDeletePending {
		t.Errorf("RequestDelete() error = %v, want %v", err, ErrDeletePending)
	}
	svc.CancelDelete()

	// an open editor blocks delete requests
	if _, err := svc.OpenEditor(SelectedRange{Start: "2024-05-01"}, ""); err != nil {
		t.Fatalf("OpenEditor() error = %v", err)
	}
	if _, err := svc.RequestDelete(a.ID); err != ErrEditorOpen {
		t.Errorf("RequestDelete() error = %v, want %v", err, ErrEditorOpen)
	}
}

func TestServiceRequestDeleteUnknownItem(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, nopLogger{})

	if _, err := svc.RequestDelete("nope"); err != ErrNotFound {
		t.Errorf("RequestDelete() error = %v, want %v", err, ErrNotFound)
	}
	if svc.State() != StateIdle {
		t.Errorf("State() = %v, want %v", svc.State(), StateIdle)
	}
}

func TestServiceGet(t *testing.T) {
	it := newTestItem("2024-05-01", "Cover Ceremony", "09:00", "11:00")
	store := &memStore{items: []Item{it}}
	svc := NewService(store, nopLogger{})

	got, err := svc.Get(it.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != it.ID {
		t.Errorf("Get() = %+v", got)
	}
	if _, err = svc.Get("nope"); err != ErrNotFound {
		t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
	}
}
