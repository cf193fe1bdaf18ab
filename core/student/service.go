package student

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
)

var ErrNotFound = errors.New("student not found")

type Repository interface {
	QueryStudents(ctx context.Context, page core.PageRequest, filter Filter) (core.Page[Student], error)
	GetStudent(ctx context.Context, id string) (Student, error)
	CreateStudent(ctx context.Context, form Form) (Student, error)
	UpdateStudent(ctx context.Context, id string, form Form) (Student, error)
	DeleteStudent(ctx context.Context, id string) error
}

type Service struct {
	repo      Repository
	validator *core.Validator
}

func NewService(repo Repository, validator *core.Validator) *Service {
	return &Service{repo: repo, validator: validator}
}

func (svc *Service) validate(form *Form) error {
	form.Name = core.CleanString(form.Name)
	err := svc.validator.Check(*form)
	if !form.BirthDate.IsZero() {
		return err
	}
	missing := core.FieldError{Field: "data_nascimento", Error: "data_nascimento é obrigatório"}
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		vErr.Fields = append(vErr.Fields, missing)
		return vErr
	}
	if err != nil {
		return err
	}
	return core.NewValidationError(nil, missing)
}

func (svc *Service) Query(ctx context.Context, page core.PageRequest, filter Filter) (core.Page[Student], error) {
	p, err := svc.repo.QueryStudents(ctx, page, filter)
	return p, errors.Wrap(err, "querying students")
}

func (svc *Service) Get(ctx context.Context, id string) (Student, error) {
	s, err := svc.repo.GetStudent(ctx, id)
	return s, errors.Wrap(err, "getting student")
}

func (svc *Service) Create(ctx context.Context, form Form) (Student, error) {
	if err := svc.validate(&form); err != nil {
		return Student{}, err
	}
	s, err := svc.repo.CreateStudent(ctx, form)
	return s, errors.Wrap(err, "creating student")
}

func (svc *Service) Update(ctx context.Context, id string, form Form) (Student, error) {
	if err := svc.validate(&form); err != nil {
		return Student{}, err
	}
	s, err := svc.repo.UpdateStudent(ctx, id, form)
	return s, errors.Wrap(err, "updating student")
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return errors.Wrap(svc.repo.DeleteStudent(ctx, id), "deleting student")
}

// FormOf prefills an edit form with s.
func FormOf(s Student) Form {
	f := Form{Name: s.Name, BirthDate: s.BirthDate, Gender: s.Gender}
	if s.Classroom != nil {
		f.ClassroomID = s.Classroom.ID
	}
	return f
}

// Subject is what assessment eligibility is decided on.
func (s Student) Subject() assessment.Subject {
	return assessment.Subject{
		StudentID:       s.ID,
		BirthDate:       s.BirthDate,
		GenderSpecified: s.Gender == CodeMale || s.Gender == CodeFemale,
	}
}

// Age is s's age in full years at today.
func (s Student) Age(today time.Time) int {
	return assessment.Age(s.BirthDate, today)
}

// CheckEligibility tells whether measurements or tests can be entered for s.
func CheckEligibility(s Student, kind assessment.Kind, today time.Time) error {
	return assessment.CheckEligibility(s.Subject(), kind, today)
}
