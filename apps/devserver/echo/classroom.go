package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/classroom"
	inmemdb "github.com/jogaaurora/aurora/storage/inmem"
)

type classroomApi struct {
	db        *inmemdb.DB
	validator *core.Validator
}

func registerClassroomAPI(e *echo.Echo, auth echo.MiddlewareFunc, db *inmemdb.DB, validator *core.Validator) {
	api := classroomApi{db: db, validator: validator}

	g := e.Group("/turma", auth)
	g.GET("", api.query)
	g.POST("", api.create)
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

func (api *classroomApi) query(ctx echo.Context) error {
	page, err := bindPage(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.db.QueryClassrooms(page))
}

func (api *classroomApi) create(ctx echo.Context) error {
	var form classroom.CreateForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to CreateForm")
	}
	form.Name = core.CleanString(form.Name)
	if err := api.validator.Check(form); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.db.CreateClassroom(form.Name))
}

func (api *classroomApi) retrieve(ctx echo.Context) error {
	c, err := api.db.GetClassroom(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting classroom")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *classroomApi) update(ctx echo.Context) error {
	var form classroom.RenameForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to RenameForm")
	}
	form.Name = core.CleanString(form.Name)
	if err := api.validator.Check(form); err != nil {
		return err
	}
	c, err := api.db.UpdateClassroom(ctx.Param("id"), form.Name)
	if err != nil {
		return errors.Wrap(err, "updating classroom")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *classroomApi) destroy(ctx echo.Context) error {
	if err := api.db.DeleteClassroom(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting classroom")
	}
	return ctx.NoContent(http.StatusNoContent)
}
