package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
	inmemdb "github.com/jogaaurora/aurora/storage/inmem"
)

type assessmentApi struct {
	db        *inmemdb.DB
	validator *core.Validator
}

func registerAssessmentAPI(e *echo.Echo, auth echo.MiddlewareFunc, db *inmemdb.DB, validator *core.Validator) {
	api := assessmentApi{db: db, validator: validator}

	mg := e.Group("/medida-corporal", auth)
	mg.GET("", api.queryMeasurements)
	mg.POST("", api.createMeasurement)
	mg.GET("/:id", api.retrieveMeasurement)
	mg.PUT("/:id", api.updateMeasurement)
	mg.DELETE("/:id", api.destroyMeasurement)

	tg := e.Group("/teste-fisico", auth)
	tg.GET("", api.queryPhysicalTests)
	tg.POST("", api.createPhysicalTest)
	tg.GET("/:id", api.retrievePhysicalTest)
	tg.PUT("/:id", api.updatePhysicalTest)
	tg.DELETE("/:id", api.destroyPhysicalTest)
}

type measurementPayload struct {
	Student *idRef `json:"estudante"`
	assessment.MeasurementForm
}

type physicalTestPayload struct {
	Student *idRef `json:"estudante"`
	assessment.PhysicalTestForm
}

func errStudentRequired() error {
	return core.NewValidationError(nil, core.FieldError{Field: "estudante", Error: "estudante é obrigatório"})
}

// Body measurements

func (api *assessmentApi) queryMeasurements(ctx echo.Context) error {
	page, err := bindPage(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.db.QueryMeasurements(page))
}

func (api *assessmentApi) bindMeasurement(ctx echo.Context) (measurementPayload, error) {
	var data measurementPayload
	if err := ctx.Bind(&data); err != nil {
		return data, errors.Wrap(err, "binding to measurementPayload")
	}
	return data, api.validator.Check(data.MeasurementForm)
}

func (api *assessmentApi) createMeasurement(ctx echo.Context) error {
	data, err := api.bindMeasurement(ctx)
	if err != nil {
		return err
	}
	if data.Student == nil || data.Student.ID == "" {
		return errStudentRequired()
	}
	m, err := api.db.InsertMeasurement(data.Student.ID, data.MeasurementForm)
	if err != nil {
		return errors.Wrap(err, "inserting measurement")
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *assessmentApi) retrieveMeasurement(ctx echo.Context) error {
	m, err := api.db.GetMeasurement(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting measurement")
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *assessmentApi) updateMeasurement(ctx echo.Context) error {
	data, err := api.bindMeasurement(ctx)
	if err != nil {
		return err
	}
	m, err := api.db.UpdateMeasurement(ctx.Param("id"), data.MeasurementForm)
	if err != nil {
		return errors.Wrap(err, "updating measurement")
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *assessmentApi) destroyMeasurement(ctx echo.Context) error {
	if err := api.db.DeleteMeasurement(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting measurement")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Physical tests

func (api *assessmentApi) queryPhysicalTests(ctx echo.Context) error {
	page, err := bindPage(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.db.QueryPhysicalTests(page))
}

func (api *assessmentApi) bindPhysicalTest(ctx echo.Context) (physicalTestPayload, error) {
	var data physicalTestPayload
	if err := ctx.Bind(&data); err != nil {
		return data, errors.Wrap(err, "binding to physicalTestPayload")
	}
	return data, api.validator.Check(data.PhysicalTestForm)
}

func (api *assessmentApi) createPhysicalTest(ctx echo.Context) error {
	data, err := api.bindPhysicalTest(ctx)
	if err != nil {
		return err
	}
	if data.Student == nil || data.Student.ID == "" {
		return errStudentRequired()
	}
	pt, err := api.db.InsertPhysicalTest(data.Student.ID, data.PhysicalTestForm)
	if err != nil {
		return errors.Wrap(err, "inserting physical test")
	}
	return ctx.JSON(http.StatusCreated, pt)
}

func (api *assessmentApi) retrievePhysicalTest(ctx echo.Context) error {
	pt, err := api.db.GetPhysicalTest(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting physical test")
	}
	return ctx.JSON(http.StatusOK, pt)
}

func (api *assessmentApi) updatePhysicalTest(ctx echo.Context) error {
	data, err := api.bindPhysicalTest(ctx)
	if err != nil {
		return err
	}
	pt, err := api.db.UpdatePhysicalTest(ctx.Param("id"), data.PhysicalTestForm)
	if err != nil {
		return errors.Wrap(err, "updating physical test")
	}
	return ctx.JSON(http.StatusOK, pt)
}

func (api *assessmentApi) destroyPhysicalTest(ctx echo.Context) error {
	if err := api.db.DeletePhysicalTest(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting physical test")
	}
	return ctx.NoContent(http.StatusNoContent)
}
