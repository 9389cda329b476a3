package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/quillhq/newsroom/core/schedule"
)

type scheduleApi struct {
	svc      *schedule.Service
	validate *validator.Validate
}

func registerScheduleAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *schedule.Service,
	validate *validator.Validate,
) {
	api := scheduleApi{
		svc:      svc,
		validate: validate,
	}

	// the calendar lives in the staffer panel; admins can manage it too
	sg := g.Group("/schedule", jwt, stafferMiddleware())
	sg.GET("/items", api.items)
	sg.GET("/preview", api.preview)
	sg.GET("/state", api.state)

	sg.POST("/editor", api.openEditor)
	sg.PUT("/editor", api.updateEditor)
	sg.POST("/editor/submit", api.submitEditor)
	sg.DELETE("/editor", api.cancelEditor)

	// item ids embed the start stamp and display title; they travel in
	// request bodies, never in the path
	sg.POST("/items/move", api.move)
	sg.POST("/items/resize", api.resize)
	sg.POST("/items/delete", api.requestDelete)
	sg.POST("/items/delete/confirm", api.confirmDelete)
	sg.POST("/items/delete/cancel", api.cancelDelete)
}

// Handlers

func (api *scheduleApi) items(ctx echo.Context) error {
	items := api.svc.Items()
	views := make([]ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, newItemView(it))
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *scheduleApi) preview(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Preview())
}

func (api *scheduleApi) state(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, StateResponse{State: api.svc.State().String()})
}

func (api *scheduleApi) openEditor(ctx echo.Context) error {
	var data OpenEditorRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to OpenEditorRequest")
	}
	if err := api.validate.Struct(data.Range); err != nil {
		return err
	}

	ed, err := api.svc.OpenEditor(data.Range, data.ItemID)
	if err != nil {
		return scheduleError(err)
	}
	return ctx.JSON(http.StatusOK, newEditorView(ed))
}

func (api *scheduleApi) updateEditor(ctx echo.Context) error {
	var data UpdateEditorRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEditorRequest")
	}

	ed := api.svc.Editor()
	if ed == nil {
		return errNoEditorOpen
	}
	if data.ActiveTab != "" {
		ed.SwitchTab(data.ActiveTab)
	}
	if data.Event != nil {
		ed.SetEventForm(*data.Event)
	}
	if data.Task != nil {
		ed.SetTaskForm(*data.Task)
	}
	return ctx.JSON(http.StatusOK, newEditorView(ed))
}

func (api *scheduleApi) submitEditor(ctx echo.Context) error {
	it, err := api.svc.SubmitEditor()
	if err != nil {
		return scheduleError(err)
	}
	return ctx.JSON(http.StatusOK, newItemView(it))
}

func (api *scheduleApi) cancelEditor(ctx echo.Context) error {
	api.svc.CancelEdit()
	return ctx.NoContent(http.StatusNoContent)
}

func (api *scheduleApi) move(ctx echo.Context) error {
	return api.setSpan(ctx, api.svc.MoveItem)
}

func (api *scheduleApi) resize(ctx echo.Context) error {
	return api.setSpan(ctx, api.svc.ResizeItem)
}

func (api *scheduleApi) setSpan(ctx echo.Context, apply func(id, start, end string) (schedule.Item, error)) error {
	var data SpanRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SpanRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	it, err := apply(data.ID, data.Start, data.End)
	if err != nil {
		return scheduleError(err)
	}
	return ctx.JSON(http.StatusOK, newItemView(it))
}

func (api *scheduleApi) requestDelete(ctx echo.Context) error {
	var data DeleteRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DeleteRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	it, err := api.svc.RequestDelete(data.ID)
	if err != nil {
		return scheduleError(err)
	}
	return ctx.JSON(http.StatusOK, newItemView(it))
}

func (api *scheduleApi) confirmDelete(ctx echo.Context) error {
	it, err := api.svc.ConfirmDelete()
	if err != nil {
		return scheduleError(err)
	}
	return ctx.JSON(http.StatusOK, newItemView(it))
}

func (api *scheduleApi) cancelDelete(ctx echo.Context) error {
	api.svc.CancelDelete()
	return ctx.NoContent(http.StatusNoContent)
}

func scheduleError(err error) error {
	switch errors.Cause(err) {
	case schedule.ErrNotFound:
		return errHttpNotFound
	case schedule.ErrEditorOpen:
		return errEditorConflict
	case schedule.ErrNoEditorOpen:
		return errNoEditorOpen
	case schedule.ErrDeletePending:
		return errDeleteConflict
	case schedule.ErrNoDeletePending:
		return errNoDeletePending
	}
	return err
}

type (
	// ItemView decorates an item with the widget class it renders with.
	ItemView struct {
		schedule.Item
		ClassName string `json:"className"`
	}

	EditorView struct {
		ActiveTab schedule.Tab           `json:"active_tab"`
		Editing   bool                   `json:"editing"`
		Range     schedule.SelectedRange `json:"range"`
		Event     schedule.EventForm     `json:"event"`
		Task      schedule.TaskForm      `json:"task"`
	}

	StateResponse struct {
		State string `json:"state"`
	}

	OpenEditorRequest struct {
		Range  schedule.SelectedRange `json:"range"`
		ItemID string                 `json:"item_id"`
	}

	UpdateEditorRequest struct {
		ActiveTab schedule.Tab        `json:"active_tab"`
		Event     *schedule.EventForm `json:"event"`
		Task      *schedule.TaskForm  `json:"task"`
	}

	SpanRequest struct {
		ID    string `json:"id" validate:"required"`
		Start string `json:"start" validate:"required"`
		End   string `json:"end"`
	}

	DeleteRequest struct {
		ID string `json:"id" validate:"required"`
	}
)

func newItemView(it schedule.Item) ItemView {
	return ItemView{Item: it, ClassName: it.StyleClass()}
}

func newEditorView(ed *schedule.Editor) EditorView {
	return EditorView{
		ActiveTab: ed.ActiveTab(),
		Editing:   ed.Editing(),
		Range:     ed.Range(),
		Event:     ed.EventForm(),
		Task:      ed.TaskForm(),
	}
}
