package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/quillhq/newsroom/core/staff"
)

type staffApi struct {
	svc staff.ServiceInterface
}

func registerStaffAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc staff.ServiceInterface) {
	api := staffApi{svc: svc}

	sg := g.Group("/staff")

	// the directory and its tab layout are public
	sg.GET("/directory", api.directory)
	sg.GET("/categories", api.categories)

	// management endpoints
	ag := sg.Group("", jwt, adminMiddleware())
	ag.POST("", api.create)
	ag.GET("", api.query)
	ag.DELETE("", api.destroyMultiple)

	dg := ag.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *staffApi) directory(ctx echo.Context) error {
	dir, err := api.svc.Directory()
	if err != nil {
		return errors.Wrap(err, "building staff directory")
	}
	return ctx.JSON(http.StatusOK, dir)
}

func (api *staffApi) categories(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, CategoriesResponse{
		Categories:       staff.Categories,
		SectionsPerGroup: staff.SectionsPerGroup,
	})
}

func (api *staffApi) create(ctx echo.Context) error {
	var data staff.NewStaffer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStaffer")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	stf, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating staffer")
	}
	return ctx.JSON(http.StatusCreated, stf)
}

func (api *staffApi) query(ctx echo.Context) error {
	staffers, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying staffers")
	}
	if staffers == nil {
		staffers = []staff.Staffer{}
	}
	return ctx.JSON(http.StatusOK, staffers)
}

func (api *staffApi) retrieve(ctx echo.Context) error {
	stf, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == staff.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding staffer by ID")
	}
	return ctx.JSON(http.StatusOK, stf)
}

func (api *staffApi) update(ctx echo.Context) error {
	stf, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == staff.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding staffer by ID")
	}

	var data staff.UpdateStaffer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStaffer")
	}
	if err := data.Validate(stf); err != nil {
		return err
	}

	stf, err = api.svc.Update(stf.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating staffer")
	}
	return ctx.JSON(http.StatusOK, stf)
}

func (api *staffApi) destroy(ctx echo.Context) error {
	if _, err := api.svc.GetByID(ctx.Param("id")); err != nil {
		if errors.Cause(err) == staff.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding staffer by ID")
	}
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting staffer")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *staffApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting staffers")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type CategoriesResponse struct {
	Categories       []staff.Category    `json:"categories"`
	SectionsPerGroup map[string][]string `json:"sections_per_group"`
}
