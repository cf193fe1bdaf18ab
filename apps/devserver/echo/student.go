package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/student"
	inmemdb "github.com/jogaaurora/aurora/storage/inmem"
)

type studentApi struct {
	db        *inmemdb.DB
	validator *core.Validator
}

func registerStudentAPI(e *echo.Echo, auth echo.MiddlewareFunc, db *inmemdb.DB, validator *core.Validator) {
	api := studentApi{db: db, validator: validator}

	g := e.Group("/estudante", auth)
	g.GET("", api.query)
	g.POST("", api.create)
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

// studentPayload is the request body: the classroom comes as {"turma": {"id": ...}}.
type studentPayload struct {
	Name      string             `json:"nome"`
	BirthDate core.Date          `json:"data_nascimento"`
	Gender    student.GenderCode `json:"genero"`
	Classroom idRef              `json:"turma"`
}

func (api *studentApi) bindForm(ctx echo.Context) (student.Form, error) {
	var data studentPayload
	if err := ctx.Bind(&data); err != nil {
		return student.Form{}, errors.Wrap(err, "binding to studentPayload")
	}
	form := student.Form{
		Name:        core.CleanString(data.Name),
		BirthDate:   data.BirthDate,
		Gender:      data.Gender,
		ClassroomID: data.Classroom.ID,
	}
	if err := api.validator.Check(form); err != nil {
		return form, err
	}
	if form.BirthDate.IsZero() {
		return form, core.NewValidationError(nil, core.FieldError{Field: "data_nascimento", Error: "data_nascimento é obrigatório"})
	}
	return form, nil
}

func bindFilter(ctx echo.Context) (student.Filter, error) {
	f := student.Filter{
		Name:        ctx.QueryParam("nome"),
		ClassroomID: ctx.QueryParam("turma_id"),
	}
	var err error
	if f.BornFrom, err = bindDate(ctx, "data_nascimento_ini"); err != nil {
		return f, err
	}
	if f.BornTo, err = bindDate(ctx, "data_nascimento_fim"); err != nil {
		return f, err
	}
	if g := ctx.QueryParam("genero"); g != "" {
		if f.Gender, err = student.ParseGender(g); err != nil {
			return f, core.NewValidationError(nil, core.FieldError{Field: "genero", Error: "Gênero inválido"})
		}
	}
	return f, nil
}

// query serves the nested page envelope.
func (api *studentApi) query(ctx echo.Context) error {
	page, err := bindPage(ctx)
	if err != nil {
		return err
	}
	filter, err := bindFilter(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, nest(api.db.QueryStudents(page, filter)))
}

func (api *studentApi) create(ctx echo.Context) error {
	form, err := api.bindForm(ctx)
	if err != nil {
		return err
	}
	s, err := api.db.CreateStudent(form)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	s, err := api.db.GetStudent(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) update(ctx echo.Context) error {
	form, err := api.bindForm(ctx)
	if err != nil {
		return err
	}
	s, err := api.db.UpdateStudent(ctx.Param("id"), form)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.db.DeleteStudent(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}
