package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core/classroom"
	inmemdb "github.com/jogaaurora/aurora/storage/inmem"
)

const datePresenceParam = "data_presenca"

type attendanceApi struct {
	db *inmemdb.DB
}

func registerAttendanceAPI(e *echo.Echo, auth echo.MiddlewareFunc, db *inmemdb.DB) {
	api := attendanceApi{db: db}

	g := e.Group("/presenca/turma/:id", auth)
	g.GET("", api.list)
	g.POST("", api.insert)
	g.PUT("", api.update)
}

func (api *attendanceApi) list(ctx echo.Context) error {
	date, err := bindDate(ctx, datePresenceParam)
	if err != nil {
		return err
	}
	rows, err := api.db.ListAttendance(ctx.Param("id"), date)
	if err != nil {
		return errors.Wrap(err, "listing attendance")
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *attendanceApi) bindRows(ctx echo.Context) ([]classroom.AttendanceRow, error) {
	var rows []classroom.AttendanceRow
	if err := ctx.Bind(&rows); err != nil {
		return nil, errors.Wrap(err, "binding to []AttendanceRow")
	}
	return rows, nil
}

func (api *attendanceApi) insert(ctx echo.Context) error {
	date, err := bindDate(ctx, datePresenceParam)
	if err != nil {
		return err
	}
	rows, err := api.bindRows(ctx)
	if err != nil {
		return err
	}
	saved, err := api.db.InsertAttendance(ctx.Param("id"), date, rows)
	if err != nil {
		return errors.Wrap(err, "inserting attendance")
	}
	return ctx.JSON(http.StatusCreated, saved)
}

func (api *attendanceApi) update(ctx echo.Context) error {
	date, err := bindDate(ctx, datePresenceParam)
	if err != nil {
		return err
	}
	rows, err := api.bindRows(ctx)
	if err != nil {
		return err
	}
	saved, err := api.db.UpdateAttendance(ctx.Param("id"), date, rows)
	if err != nil {
		return errors.Wrap(err, "updating attendance")
	}
	return ctx.JSON(http.StatusOK, saved)
}
