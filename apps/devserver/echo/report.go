package echoapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
	"github.com/jogaaurora/aurora/core/classroom"
	"github.com/jogaaurora/aurora/core/student"
	inmemdb "github.com/jogaaurora/aurora/storage/inmem"
)

const (
	startDateParam = "dataInicial"
	endDateParam   = "dataFinal"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type reportApi struct {
	db *inmemdb.DB
}

func registerReportAPI(e *echo.Echo, auth echo.MiddlewareFunc, db *inmemdb.DB) {
	api := reportApi{db: db}

	e.GET("/presenca/turma/:id/relatorio", api.attendance, auth)
	e.GET("/estudante/turma/:id/relatorio", api.students, auth)
}

func bindRange(ctx echo.Context) (start, end core.Date, err error) {
	if start, err = bindDate(ctx, startDateParam); err != nil {
		return
	}
	if end, err = bindDate(ctx, endDateParam); err != nil {
		return
	}
	if start.IsZero() {
		return start, end, core.NewValidationError(nil, core.FieldError{Field: startDateParam, Error: "dataInicial é obrigatório"})
	}
	if end.IsZero() {
		return start, end, core.NewValidationError(nil, core.FieldError{Field: endDateParam, Error: "dataFinal é obrigatório"})
	}
	if end.Before(start) {
		return start, end, core.NewValidationError(nil, core.FieldError{Field: endDateParam, Error: "dataFinal deve ser posterior à dataInicial"})
	}
	return start, end, nil
}

// filenameOf builds a spreadsheet name without spaces, eg: "presenca_turma_5º_Ano_A.xlsx".
func filenameOf(prefix, classroomName string) string {
	return prefix + "_" + strings.Join(strings.Fields(classroomName), "_") + ".xlsx"
}

func sendSpreadsheet(ctx echo.Context, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return errors.Wrap(err, "writing spreadsheet")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// newSheet returns a workbook whose single sheet is named name and starts with a bold header row.
func newSheet(name string, header []interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "writing header")
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "creating header style")
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, errors.Wrap(err, "resolving header range")
	}
	if err = f.SetCellStyle(name, "A1", last, style); err != nil {
		return nil, errors.Wrap(err, "styling header")
	}
	return f, nil
}

func appendRow(f *excelize.File, sheet string, n int, row []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, n+2)
	if err != nil {
		return errors.Wrap(err, "resolving row cell")
	}
	return errors.Wrap(f.SetSheetRow(sheet, cell, &row), "writing row")
}

func (api *reportApi) attendance(ctx echo.Context) error {
	start, end, err := bindRange(ctx)
	if err != nil {
		return err
	}
	c, err := api.db.GetClassroom(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting classroom")
	}
	rows, err := api.db.AttendanceBetween(c.ID, start, end)
	if err != nil {
		return errors.Wrap(err, "listing attendance")
	}

	sheet := "Presenças"
	f, err := newSheet(sheet, []interface{}{"Data", "Estudante", "Status"})
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		line := []interface{}{row.Date.Locale(), row.Student.Name, string(classroom.ToFrontendStatus(row.Status))}
		if err = appendRow(f, sheet, i, line); err != nil {
			return err
		}
	}
	return sendSpreadsheet(ctx, f, filenameOf("presenca_turma", c.Name))
}

// lastMeasurementIn returns the most recent measurement collected between start and end.
func lastMeasurementIn(ms []assessment.BodyMeasurement, start, end core.Date) (assessment.BodyMeasurement, bool) {
	var last assessment.BodyMeasurement
	found := false
	for _, m := range ms {
		if m.CollectedAt.Before(start) || end.Before(m.CollectedAt) {
			continue
		}
		if !found || last.CollectedAt.Before(m.CollectedAt) {
			last, found = m, true
		}
	}
	return last, found
}

func (api *reportApi) students(ctx echo.Context) error {
	start, end, err := bindRange(ctx)
	if err != nil {
		return err
	}
	c, err := api.db.GetClassroom(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting classroom")
	}
	students, err := api.db.StudentsOf(c.ID)
	if err != nil {
		return errors.Wrap(err, "listing students")
	}

	sheet := "Estudantes"
	f, err := newSheet(sheet, []interface{}{
		"Nome", "Data de nascimento", "Gênero", "Data da coleta",
		"Peso", "Estatura", "IMC", "Referência IMC", "Cintura/Estatura", "Referência Cintura/Estatura",
	})
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	for i, s := range students {
		line := []interface{}{s.Name, s.BirthDate.Locale(), string(student.ToFrontendGender(s.Gender))}
		if m, ok := lastMeasurementIn(s.BodyMeasurements, start, end); ok {
			line = append(line, m.CollectedAt.Locale(), m.Weight, m.Height, m.BMI, m.BMIReference,
				m.WaistHeightRatio, m.WaistHeightRatioReference)
		}
		if err = appendRow(f, sheet, i, line); err != nil {
			return err
		}
	}
	return sendSpreadsheet(ctx, f, filenameOf("estudantes_turma", c.Name))
}
