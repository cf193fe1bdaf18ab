package report

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
)

const (
	AttendanceFallbackName = "attendance_report.xlsx"
	StudentsFallbackName   = "students_report.xlsx"
)

var filenameRegex = regexp.MustCompile(`filename=([^;]+)`)

// Range is a report request over one classroom.
type Range struct {
	ClassroomID string    `json:"turma" validate:"required"`
	Start       core.Date `json:"dataInicial"`
	End         core.Date `json:"dataFinal"`
}

// File is a downloaded spreadsheet.
type File struct {
	Name string
	Data []byte
}

// Binary is a raw download as returned by the backend.
type Binary struct {
	Data               []byte
	ContentDisposition string
}

type Repository interface {
	AttendanceReport(ctx context.Context, r Range) (Binary, error)
	StudentsReport(ctx context.Context, r Range) (Binary, error)
}

// ExtractFilename returns the filename suggested by a Content-Disposition header, or fallback.
func ExtractFilename(contentDisposition, fallback string) string {
	if contentDisposition == "" {
		return fallback
	}
	m := filenameRegex.FindStringSubmatch(contentDisposition)
	if len(m) < 2 {
		return fallback
	}
	name := strings.NewReplacer(`"`, "", `'`, "").Replace(strings.TrimSpace(m[1]))
	if name == "" {
		return fallback
	}
	return name
}

type Service struct {
	repo      Repository
	validator *core.Validator
}

func NewService(repo Repository, validator *core.Validator) *Service {
	return &Service{repo: repo, validator: validator}
}

// Validate checks r locally: a classroom is required and End cannot precede Start.
func (svc *Service) Validate(r Range) error {
	err := svc.validator.Check(r)
	var flds []core.FieldError
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		flds = vErr.Fields
	} else if err != nil {
		return err
	}
	if r.Start.IsZero() {
		flds = append(flds, core.FieldError{Field: "dataInicial", Error: "dataInicial é obrigatório"})
	}
	if r.End.IsZero() {
		flds = append(flds, core.FieldError{Field: "dataFinal", Error: "dataFinal é obrigatório"})
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		flds = append(flds, core.FieldError{Field: "dataFinal", Error: "A data final deve ser posterior ou igual à data inicial"})
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

func (svc *Service) AttendanceReport(ctx context.Context, r Range) (File, error) {
	if err := svc.Validate(r); err != nil {
		return File{}, err
	}
	bin, err := svc.repo.AttendanceReport(ctx, r)
	if err != nil {
		return File{}, errors.Wrap(err, "downloading attendance report")
	}
	return File{Name: ExtractFilename(bin.ContentDisposition, AttendanceFallbackName), Data: bin.Data}, nil
}

func (svc *Service) StudentsReport(ctx context.Context, r Range) (File, error) {
	if err := svc.Validate(r); err != nil {
		return File{}, err
	}
	bin, err := svc.repo.StudentsReport(ctx, r)
	if err != nil {
		return File{}, errors.Wrap(err, "downloading students report")
	}
	return File{Name: ExtractFilename(bin.ContentDisposition, StudentsFallbackName), Data: bin.Data}, nil
}

// Save writes f into dir and returns its path. Only the base name of f.Name is used.
func (f File) Save(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating report dir")
	}
	path := filepath.Join(dir, filepath.Base(f.Name))
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", errors.Wrap(err, "writing report")
	}
	return path, nil
}
