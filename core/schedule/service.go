package schedule

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quillhq/newsroom/core"
)

var (
	// errors
	ErrNotFound        = errors.New("calendar item not found")
	ErrEditorOpen      = errors.New("an editor session is already open")
	ErrNoEditorOpen    = errors.New("no editor session is open")
	ErrDeletePending   = errors.New("a delete is pending confirmation")
	ErrNoDeletePending = errors.New("no delete is pending confirmation")
)

// State is the controller's dialog state.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateConfirmingDelete
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateConfirmingDelete:
		return "confirming_delete"
	default:
		return "idle"
	}
}

// SnapshotStore persists the full item list under a fixed slot name.
// Load returns an empty list when the slot is absent or its content does not
// decode; Save overwrites the whole snapshot and is idempotent.
type SnapshotStore interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

// Service is the calendar page controller: it owns the in-memory item list,
// is the sole writer of the persisted snapshot, and runs the dialog state
// machine {Idle, Editing, ConfirmingDelete}. Every mutation re-persists the
// whole list; the stored copy never drifts from memory.
type Service struct {
	mu     sync.Mutex
	store  SnapshotStore
	logger core.Logger

	items         []Item
	state         State
	editor        *Editor
	pendingDelete string // item id parked by RequestDelete
}

// NewService loads the persisted snapshot once and starts Idle. A failing
// load is treated as "no items yet" and only logged.
func NewService(store SnapshotStore, logger core.Logger) *Service {
	items, err := store.Load()
	if err != nil {
		logger.Warn(fmt.Sprintf("loading calendar snapshot: %v; starting empty", err))
		items = nil
	}
	return &Service{
		store:  store,
		logger: logger,
		items:  items,
	}
}

// Items returns a copy of the current list, in insertion order.
func (svc *Service) Items() []Item {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.snapshot()
}

// Preview returns the grouped events/tasks projection of the current list.
func (svc *Service) Preview() Preview {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return BuildPreview(svc.items)
}

// Get finds an item by id.
func (svc *Service) Get(id string) (Item, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, it := range svc.items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, ErrNotFound
}

func (svc *Service) State() State {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.state
}

// OpenEditor transitions Idle -> Editing. An empty targetID opens the dialog
// in create mode for the selected range; otherwise the target item is looked
// up and pre-filled.
func (svc *Service) OpenEditor(rng SelectedRange, targetID string) (*Editor, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.state == StateConfirmingDelete {
		return nil, ErrDeletePending
	}
	if svc.state != StateIdle {
		return nil, ErrEditorOpen
	}

	var target *Item
	if targetID != "" {
		for i := range svc.items {
			if svc.items[i].ID == targetID {
				target = &svc.items[i]
				break
			}
		}
		if target == nil {
			return nil, ErrNotFound
		}
	}

	svc.editor = NewEditor(rng, target)
	svc.state = StateEditing
	return svc.editor, nil
}

// Editor returns the open editor session, or nil when Idle.
func (svc *Service) Editor() *Editor {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.editor
}

// CancelEdit transitions Editing -> Idle, discarding the dialog input.
func (svc *Service) CancelEdit() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.editor = nil
	if svc.state == StateEditing {
		svc.state = StateIdle
	}
}

// SubmitEditor validates the open editor, appends or replaces the produced
// item and persists. Identity is preserved on edit; a validation failure
// keeps the editor open and the list untouched.
func (svc *Service) SubmitEditor() (Item, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.state != StateEditing || svc.editor == nil {
		return Item{}, ErrNoEditorOpen
	}

	it, err := svc.editor.Submit()
	if err != nil {
		return Item{}, err
	}

	next := svc.snapshot()
	if svc.editor.Editing() {
		replaced := false
		for i := range next {
			if next[i].ID == it.ID {
				next[i] = it
				replaced = true
				break
			}
		}
		if !replaced {
			return Item{}, ErrNotFound
		}
	} else {
		next = append(next, it)
	}

	if err := svc.commit(next); err != nil {
		return Item{}, err
	}
	svc.editor = nil
	svc.state = StateIdle
	return it, nil
}

// MoveItem applies a drag-move from the widget: only the span changes.
func (svc *Service) MoveItem(id, newStart, newEnd string) (Item, error) {
	return svc.setSpan(id, newStart, newEnd)
}

// ResizeItem applies a resize from the widget; same mutation rule as a move.
func (svc *Service) ResizeItem(id, newStart, newEnd string) (Item, error) {
	return svc.setSpan(id, newStart, newEnd)
}

func (svc *Service) setSpan(id, newStart, newEnd string) (Item, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	next := svc.snapshot()
	for i := range next {
		if next[i].ID == id {
			next[i].SetSpan(newStart, newEnd)
			if err := svc.commit(next); err != nil {
				return Item{}, err
			}
			return next[i], nil
		}
	}
	return Item{}, ErrNotFound
}

// RequestDelete transitions Idle -> ConfirmingDelete, parking the target.
// Nothing is removed until ConfirmDelete.
func (svc *Service) RequestDelete(id string) (Item, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.state == StateConfirmingDelete {
		return Item{}, ErrDeletePending
	}
	if svc.state != StateIdle {
		return Item{}, ErrEditorOpen
	}
	for _, it := range svc.items {
		if it.ID == id {
			svc.pendingDelete = id
			svc.state = StateConfirmingDelete
			return it, nil
		}
	}
	return Item{}, ErrNotFound
}

// ConfirmDelete removes exactly one entry matching the pending id and
// persists; all other entries are left byte-identical. A failing save keeps
// the delete parked so confirming again can retry.
func (svc *Service) ConfirmDelete() (Item, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.state != StateConfirmingDelete {
		return Item{}, ErrNoDeletePending
	}

	id := svc.pendingDelete
	for i, it := range svc.items {
		if it.ID == id {
			next := svc.snapshot()
			next = append(next[:i], next[i+1:]...)
			if err := svc.commit(next); err != nil {
				return Item{}, err
			}
			svc.pendingDelete = ""
			svc.state = StateIdle
			return it, nil
		}
	}
	svc.pendingDelete = ""
	svc.state = StateIdle
	return Item{}, ErrNotFound
}

// CancelDelete dismisses the confirmation prompt; the list is untouched.
func (svc *Service) CancelDelete() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.pendingDelete = ""
	if svc.state == StateConfirmingDelete {
		svc.state = StateIdle
	}
}

func (svc *Service) snapshot() []Item {
	items := make([]Item, len(svc.items))
	copy(items, svc.items)
	return items
}

// commit saves the candidate list first and adopts it in memory only on
// success, so a failing save never leaves memory diverged from the snapshot.
func (svc *Service) commit(next []Item) error {
	if err := svc.store.Save(next); err != nil {
		return err
	}
	svc.items = next
	return nil
}
