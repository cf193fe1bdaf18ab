package reststore

import (
	"context"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/student"
)

type studentRepository struct {
	c Client
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(c Client) student.Repository {
	return &studentRepository{c: c}
}

func (repo *studentRepository) QueryStudents(ctx context.Context, page core.PageRequest, filter student.Filter) (core.Page[student.Student], error) {
	return queryPage[student.Student](ctx, repo.c, studentsPath, page, filter.Values())
}

func (repo *studentRepository) GetStudent(ctx context.Context, id string) (student.Student, error) {
	var s student.Student
	err := repo.c.Get(ctx, join(studentsPath, id), &s)
	return s, notFound(err, student.ErrNotFound)
}

func (repo *studentRepository) CreateStudent(ctx context.Context, form student.Form) (student.Student, error) {
	var s student.Student
	err := repo.c.Post(ctx, studentsPath, form.Payload(), &s)
	return s, err
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, id string, form student.Form) (student.Student, error) {
	var s student.Student
	err := repo.c.Put(ctx, join(studentsPath, id), form.Payload(), &s)
	return s, notFound(err, student.ErrNotFound)
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id string) error {
	return notFound(repo.c.Delete(ctx, join(studentsPath, id)), student.ErrNotFound)
}
