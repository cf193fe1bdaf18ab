package reststore

import (
	"context"
	"net/url"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/classroom"
	"github.com/jogaaurora/aurora/services/httpapi"
)

type classroomRepository struct {
	c Client
}

var _ classroom.Repository = (*classroomRepository)(nil)

func NewClassroomRepository(c Client) classroom.Repository {
	return &classroomRepository{c: c}
}

type classroomPayload struct {
	Name string `json:"nome"`
}

func (repo *classroomRepository) QueryClassrooms(ctx context.Context, page core.PageRequest) (core.Page[classroom.Classroom], error) {
	return queryPage[classroom.Classroom](ctx, repo.c, classroomsPath, page, nil)
}

func (repo *classroomRepository) GetClassroom(ctx context.Context, id string) (classroom.Classroom, error) {
	var c classroom.Classroom
	err := repo.c.Get(ctx, join(classroomsPath, id), &c)
	return c, notFound(err, classroom.ErrNotFound)
}

func (repo *classroomRepository) CreateClassroom(ctx context.Context, name string) (classroom.Classroom, error) {
	var c classroom.Classroom
	err := repo.c.Post(ctx, classroomsPath, classroomPayload{Name: name}, &c)
	return c, err
}

func (repo *classroomRepository) UpdateClassroom(ctx context.Context, id, name string) (classroom.Classroom, error) {
	var c classroom.Classroom
	err := repo.c.Put(ctx, join(classroomsPath, id), classroomPayload{Name: name}, &c)
	return c, notFound(err, classroom.ErrNotFound)
}

func (repo *classroomRepository) DeleteClassroom(ctx context.Context, id string) error {
	return notFound(repo.c.Delete(ctx, join(classroomsPath, id)), classroom.ErrNotFound)
}

type attendanceRepository struct {
	c Client
}

var _ classroom.AttendanceRepository = (*attendanceRepository)(nil)

func NewAttendanceRepository(c Client) classroom.AttendanceRepository {
	return &attendanceRepository{c: c}
}

func dateQuery(date core.Date) httpapi.CallOption {
	q := url.Values{}
	if !date.IsZero() {
		q.Set(datePresenceParam, date.String())
	}
	return httpapi.WithQuery(q)
}

func (repo *attendanceRepository) ListAttendance(ctx context.Context, classroomID string, date core.Date) ([]classroom.AttendanceRow, error) {
	var rows []classroom.AttendanceRow
	err := repo.c.Get(ctx, join(attendancePath, classroomID), &rows, dateQuery(date))
	return rows, err
}

func (repo *attendanceRepository) InsertAttendance(ctx context.Context, classroomID string, date core.Date, rows []classroom.AttendanceRow) ([]classroom.AttendanceRow, error) {
	var saved []classroom.AttendanceRow
	err := repo.c.Post(ctx, join(attendancePath, classroomID), rows, &saved, dateQuery(date))
	return saved, err
}

func (repo *attendanceRepository) UpdateAttendance(ctx context.Context, classroomID string, date core.Date, rows []classroom.AttendanceRow) ([]classroom.AttendanceRow, error) {
	var saved []classroom.AttendanceRow
	err := repo.c.Put(ctx, join(attendancePath, classroomID), rows, &saved, dateQuery(date))
	return saved, err
}
