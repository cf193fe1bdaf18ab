package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jogaaurora/aurora/core"
)

func TestExtractFilename(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		fallback string
		want     string
	}{
		{name: "plain", header: "attachment; filename=presenca_turma_1A.xlsx", fallback: "report.xlsx", want: "presenca_turma_1A.xlsx"},
		{name: "absent", header: "", fallback: "report.xlsx", want: "report.xlsx"},
		{name: "quoted", header: `attachment; filename="estudantes 5A.xlsx"; size=10`, fallback: "x", want: "estudantes 5A.xlsx"},
		{name: "single quotes and spaces", header: "attachment; filename= 'a.xlsx' ", fallback: "x", want: "a.xlsx"},
		{name: "no filename", header: "inline", fallback: AttendanceFallbackName, want: AttendanceFallbackName},
		{name: "empty filename", header: `attachment; filename=""`, fallback: StudentsFallbackName, want: StudentsFallbackName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractFilename(tt.header, tt.fallback); got != tt.want {
				t.Errorf("ExtractFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}

type repoMock struct {
	calls int
	bin   Binary
}

func (r *repoMock) AttendanceReport(context.Context, Range) (Binary, error) {
	r.calls++
	return r.bin, nil
}

func (r *repoMock) StudentsReport(context.Context, Range) (Binary, error) {
	r.calls++
	return r.bin, nil
}

func TestService_Validate(t *testing.T) {
	svc := NewService(&repoMock{}, core.NewValidator())
	d := func(day int) core.Date { return core.NewDate(2024, time.December, day) }

	tests := []struct {
		name      string
		r         Range
		wantField string
	}{
		{name: "valid", r: Range{ClassroomID: "t1", Start: d(1), End: d(9)}},
		{name: "same day", r: Range{ClassroomID: "t1", Start: d(9), End: d(9)}},
		{name: "end before start", r: Range{ClassroomID: "t1", Start: d(9), End: d(1)}, wantField: "dataFinal"},
		{name: "no classroom", r: Range{Start: d(1), End: d(9)}, wantField: "turma"},
		{name: "no start", r: Range{ClassroomID: "t1", End: d(9)}, wantField: "dataInicial"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.r)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr), "Validate() error = %v", err)
			_, ok := vErr.Field(tt.wantField)
			assert.True(t, ok, "fields = %v", vErr.Fields)
		})
	}
}

func TestService_Reports(t *testing.T) {
	ctx := context.Background()
	r := Range{ClassroomID: "t1", Start: core.NewDate(2024, 12, 1), End: core.NewDate(2024, 12, 9)}

	repo := &repoMock{bin: Binary{Data: []byte("x"), ContentDisposition: "attachment; filename=presenca_turma_1A.xlsx"}}
	svc := NewService(repo, core.NewValidator())
	f, err := svc.AttendanceReport(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, "presenca_turma_1A.xlsx", f.Name)

	repo.bin.ContentDisposition = ""
	f, err = svc.StudentsReport(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, StudentsFallbackName, f.Name)
	f, err = svc.AttendanceReport(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, AttendanceFallbackName, f.Name)
	assert.Equal(t, 3, repo.calls)

	_, err = svc.AttendanceReport(ctx, Range{ClassroomID: "t1", Start: r.End, End: r.Start})
	assert.Error(t, err)
	assert.Equal(t, 3, repo.calls, "invalid ranges never reach the network")
}

func TestFileSaveAndPreview(t *testing.T) {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	require.NoError(t, wb.SetSheetRow(sheet, "A1", &[]interface{}{"Estudante", "Presenças"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A2", &[]interface{}{"Ana", 3}))
	require.NoError(t, wb.SetSheetRow(sheet, "A3", &[]interface{}{"Bruno", 2}))
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := File{Name: "../presenca.xlsx", Data: buf.Bytes()}.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "presenca.xlsx"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	name, rows, err := Preview(data, 2)
	require.NoError(t, err)
	assert.Equal(t, sheet, name)
	assert.Equal(t, [][]string{{"Estudante", "Presenças"}, {"Ana", "3"}}, rows)

	_, _, err = Preview([]byte("not a workbook"), 0)
	assert.Error(t, err)
}
