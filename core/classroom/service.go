package classroom

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
)

var (
	ErrNotFound = errors.New("classroom not found")
	// ErrHasStudents refuses deleting a classroom that still has enrolled students.
	ErrHasStudents = core.NewPolicyError(
		"Não é possível remover a turma",
		"A turma possui estudantes matriculados. Remova ou transfira os estudantes antes de excluí-la.",
	)
)

type (
	Repository interface {
		QueryClassrooms(ctx context.Context, page core.PageRequest) (core.Page[Classroom], error)
		GetClassroom(ctx context.Context, id string) (Classroom, error)
		CreateClassroom(ctx context.Context, name string) (Classroom, error)
		UpdateClassroom(ctx context.Context, id, name string) (Classroom, error)
		DeleteClassroom(ctx context.Context, id string) error
	}

	AttendanceRepository interface {
		// ListAttendance lists the roll of a classroom. A zero date means today.
		ListAttendance(ctx context.Context, classroomID string, date core.Date) ([]AttendanceRow, error)
		InsertAttendance(ctx context.Context, classroomID string, date core.Date, rows []AttendanceRow) ([]AttendanceRow, error)
		UpdateAttendance(ctx context.Context, classroomID string, date core.Date, rows []AttendanceRow) ([]AttendanceRow, error)
	}
)

type Service struct {
	repo      Repository
	validator *core.Validator
}

func NewService(repo Repository, validator *core.Validator) *Service {
	return &Service{repo: repo, validator: validator}
}

func (svc *Service) List(ctx context.Context, page core.PageRequest) (core.Page[Classroom], error) {
	p, err := svc.repo.QueryClassrooms(ctx, page)
	return p, errors.Wrap(err, "querying classrooms")
}

func (svc *Service) Get(ctx context.Context, id string) (Classroom, error) {
	c, err := svc.repo.GetClassroom(ctx, id)
	return c, errors.Wrap(err, "getting classroom")
}

// Create accepts names of 1 to 32 characters once trimmed.
func (svc *Service) Create(ctx context.Context, name string) (Classroom, error) {
	form := CreateForm{Name: core.CleanString(name)}
	if err := svc.validator.Check(form); err != nil {
		return Classroom{}, err
	}
	name = form.Name
	c, err := svc.repo.CreateClassroom(ctx, name)
	return c, errors.Wrap(err, "creating classroom")
}

// Rename accepts names of 3 to 256 characters once trimmed.
func (svc *Service) Rename(ctx context.Context, id, name string) (Classroom, error) {
	form := RenameForm{Name: core.CleanString(name)}
	if err := svc.validator.Check(form); err != nil {
		return Classroom{}, err
	}
	name = form.Name
	c, err := svc.repo.UpdateClassroom(ctx, id, name)
	return c, errors.Wrap(err, "updating classroom")
}

// Delete refuses, without calling the backend, when c has enrolled students.
func (svc *Service) Delete(ctx context.Context, c Classroom) error {
	if c.HasStudents() {
		return ErrHasStudents
	}
	return errors.Wrap(svc.repo.DeleteClassroom(ctx, c.ID), "deleting classroom")
}
