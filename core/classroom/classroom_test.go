package classroom

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jogaaurora/aurora/core"
)

type repoMock struct {
	classrooms map[string]Classroom
	calls      map[string]int
	created    []string
	lastPage   core.PageRequest
}

func newRepoMock(cls ...Classroom) *repoMock {
	r := &repoMock{classrooms: make(map[string]Classroom), calls: make(map[string]int)}
	for _, c := range cls {
		r.classrooms[c.ID] = c
	}
	return r
}

func (r *repoMock) QueryClassrooms(_ context.Context, page core.PageRequest) (core.Page[Classroom], error) {
	r.calls["query"]++
	r.lastPage = page
	all := make([]Classroom, 0, len(r.classrooms))
	for _, c := range r.classrooms {
		all = append(all, c)
	}
	return core.NewPage(all, page), nil
}

func (r *repoMock) GetClassroom(_ context.Context, id string) (Classroom, error) {
	r.calls["get"]++
	c, ok := r.classrooms[id]
	if !ok {
		return Classroom{}, ErrNotFound
	}
	return c, nil
}

func (r *repoMock) CreateClassroom(_ context.Context, name string) (Classroom, error) {
	r.calls["create"]++
	r.created = append(r.created, name)
	c := Classroom{ID: "new-id", Name: name}
	r.classrooms[c.ID] = c
	return c, nil
}

func (r *repoMock) UpdateClassroom(_ context.Context, id, name string) (Classroom, error) {
	r.calls["update"]++
	c := r.classrooms[id]
	c.Name = name
	r.classrooms[id] = c
	return c, nil
}

func (r *repoMock) DeleteClassroom(_ context.Context, id string) error {
	r.calls["delete"]++
	delete(r.classrooms, id)
	return nil
}

type attendanceMock struct {
	rows     map[string][]AttendanceRow
	inserted [][]AttendanceRow
	updated  [][]AttendanceRow
	lists    int
	onSave   func(classroomID string)
}

func (a *attendanceMock) ListAttendance(_ context.Context, classroomID string, _ core.Date) ([]AttendanceRow, error) {
	a.lists++
	return a.rows[classroomID], nil
}

func (a *attendanceMock) InsertAttendance(_ context.Context, classroomID string, _ core.Date, rows []AttendanceRow) ([]AttendanceRow, error) {
	a.inserted = append(a.inserted, rows)
	a.rows[classroomID] = rows
	if a.onSave != nil {
		a.onSave(classroomID)
	}
	return rows, nil
}

func (a *attendanceMock) UpdateAttendance(_ context.Context, classroomID string, _ core.Date, rows []AttendanceRow) ([]AttendanceRow, error) {
	a.updated = append(a.updated, rows)
	a.rows[classroomID] = rows
	return rows, nil
}

type authFlag bool

func (a authFlag) IsAuthenticated() bool { return bool(a) }

func TestStatusBijection(t *testing.T) {
	for _, st := range Statuses {
		code, err := ToBackendStatus(st)
		require.NoError(t, err)
		assert.Equal(t, st, ToFrontendStatus(code), "round trip of %q", st)
	}
	pairs := map[Status]StatusCode{Present: CodePresent, Late: CodeLate, Absent: CodeAbsent}
	for st, want := range pairs {
		got, _ := ToBackendStatus(st)
		assert.Equal(t, want, got)
	}
	_, err := ToBackendStatus("Faltou")
	assert.True(t, errors.Is(err, ErrUnknownStatus))
	assert.Equal(t, Present, ToFrontendStatus("X"))
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{in: "presente", want: Present},
		{in: "L", want: Late},
		{in: "a", want: Absent},
		{in: "Ausente", want: Absent},
		{in: "?", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		classroom Classroom
		wantErr   error
		wantCalls int
	}{
		{name: "empty classroom", classroom: Classroom{ID: "1"}, wantCalls: 1},
		{
			name:      "classroom with students",
			classroom: Classroom{ID: "1", Students: []Student{{ID: "s1"}}},
			wantErr:   ErrHasStudents,
			wantCalls: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepoMock(tt.classroom)
			svc := NewService(repo, core.NewValidator())

			err := svc.Delete(context.Background(), tt.classroom)
			if err != tt.wantErr {
				t.Errorf("Delete() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.wantCalls, repo.calls["delete"])
		})
	}
}

func TestService_Create(t *testing.T) {
	repo := newRepoMock()
	svc := NewService(repo, core.NewValidator())

	c, err := svc.Create(context.Background(), "  Terceiro Ano ")
	require.NoError(t, err)
	assert.Equal(t, "new-id", c.ID)
	assert.Equal(t, []string{"Terceiro Ano"}, repo.created)
}

func TestService_NameLength(t *testing.T) {
	long := strings.Repeat("a", 33)
	tests := []struct {
		name    string
		rename  bool
		value   string
		wantErr bool
	}{
		{name: "create short", value: "1A"},
		{name: "create single char", value: "B"},
		{name: "create 32 chars", value: long[:32]},
		{name: "create 33 chars", value: long, wantErr: true},
		{name: "create blank", value: "  ", wantErr: true},
		{name: "rename short", rename: true, value: "1A", wantErr: true},
		{name: "rename 3 chars", rename: true, value: "3ºA"},
		{name: "rename 33 chars", rename: true, value: long},
		{name: "rename 257 chars", rename: true, value: strings.Repeat("a", 257), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepoMock(Classroom{ID: "1"})
			svc := NewService(repo, core.NewValidator())

			var err error
			if tt.rename {
				_, err = svc.Rename(context.Background(), "1", tt.value)
			} else {
				_, err = svc.Create(context.Background(), tt.value)
			}
			calls := repo.calls["create"] + repo.calls["update"]
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, 1, calls)
				return
			}
			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			_, ok := vErr.Field("nome")
			assert.True(t, ok)
			assert.Equal(t, 0, calls)
		})
	}
}

func TestIDFromPath(t *testing.T) {
	tests := map[string]string{
		"/turmas/42":         "42",
		"/turmas/42/":        "42",
		"/turmas/abc?x=1":    "abc",
		"/turmas":            "",
		"/estudantes/42":     "",
		"http://h/turmas/7f": "7f",
	}
	for path, want := range tests {
		assert.Equal(t, want, IDFromPath(path), path)
	}
}

func TestCache_LoadClassrooms(t *testing.T) {
	repo := newRepoMock(Classroom{ID: "1"}, Classroom{ID: "2"})

	anon := NewCache(NewService(repo, core.NewValidator()), &attendanceMock{}, authFlag(false), nil)
	list, err := anon.LoadClassrooms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, repo.calls["query"], "no fetch while anonymous")

	authed := NewCache(NewService(repo, core.NewValidator()), &attendanceMock{}, authFlag(true), nil)
	list, err = authed.LoadClassrooms(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, core.PageRequest{Page: 0, Size: core.AllPageSize}, repo.lastPage)
	assert.Len(t, authed.Classrooms(), 2)
}

func TestCache_LoadClassroom(t *testing.T) {
	students := []Student{{ID: "s1", Name: "Ana"}, {ID: "s2", Name: "Bruno"}}
	pending := Classroom{ID: "1", Students: students}
	taken := Classroom{ID: "2", Students: students, AttendanceTaken: true}
	id := "a1"
	att := &attendanceMock{rows: map[string][]AttendanceRow{
		"2": {{ID: &id, Student: students[0], Status: CodeAbsent}, {Student: students[1], Status: CodeLate}},
	}}
	repo := newRepoMock(pending, taken)
	cache := NewCache(NewService(repo, core.NewValidator()), att, authFlag(true), nil)

	c, err := cache.LoadClassroom(context.Background(), "/turmas/1")
	require.NoError(t, err)
	assert.Equal(t, "1", c.ID)
	assert.Equal(t, 0, att.lists, "attendance only fetched once taken")
	assert.Empty(t, cache.Attendance())

	_, err = cache.LoadClassroom(context.Background(), "/turmas/2")
	require.NoError(t, err)
	assert.Equal(t, 1, att.lists)
	roll := cache.Attendance()
	require.Len(t, roll, 2)
	assert.Equal(t, Absent, roll[0].Status)
	assert.Equal(t, "a1", roll[0].ID)
	assert.Equal(t, Late, roll[1].Status)
	assert.Equal(t, "", roll[1].ID)

	cache.ClearClassroom()
	_, ok := cache.Current()
	assert.False(t, ok)
	assert.Empty(t, cache.Attendance())

	_, err = cache.LoadClassroom(context.Background(), "/turmas")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCache_UpdateAttendanceList(t *testing.T) {
	cache := NewCache(nil, nil, nil, nil)
	s1, s2 := Student{ID: "s1"}, Student{ID: "s2"}

	cache.UpdateAttendanceList(func(roll []Attendance) []Attendance {
		return append(roll,
			Attendance{Student: s1, Status: Present},
			Attendance{Student: s2, Status: Present},
			Attendance{Student: s1, Status: Absent},
		)
	})
	roll := cache.Attendance()
	require.Len(t, roll, 2, "at most one entry per student")
	assert.Equal(t, "s1", roll[0].Student.ID)
	assert.Equal(t, Absent, roll[0].Status)
}

func TestCache_SetStatusAddsMissingStudent(t *testing.T) {
	students := []Student{{ID: "s1", Name: "Ana"}, {ID: "s2", Name: "Bruno"}}
	repo := newRepoMock(Classroom{ID: "1", Students: students})
	cache := NewCache(NewService(repo, core.NewValidator()), &attendanceMock{}, authFlag(true), nil)

	_, err := cache.LoadClassroom(context.Background(), "/turmas/1")
	require.NoError(t, err)
	require.NoError(t, cache.StartAttendance())
	cache.UpdateAttendanceList(func(roll []Attendance) []Attendance {
		return roll[:1]
	})
	require.Len(t, cache.Attendance(), 1)

	require.NoError(t, cache.SetStatus("s2", Absent))
	roll := cache.Attendance()
	require.Len(t, roll, 2)
	assert.Equal(t, students[1], roll[1].Student)
	assert.Equal(t, Absent, roll[1].Status)

	assert.True(t, errors.Is(cache.SetStatus("s9", Late), ErrStudentNotInRoll))
	assert.Len(t, cache.Attendance(), 2)
}

func TestCache_TakeAttendance(t *testing.T) {
	students := []Student{{ID: "s1"}, {ID: "s2"}}
	repo := newRepoMock(Classroom{ID: "1", Students: students})
	att := &attendanceMock{rows: make(map[string][]AttendanceRow)}
	att.onSave = func(id string) {
		c := repo.classrooms[id]
		c.AttendanceTaken = true
		repo.classrooms[id] = c
	}
	cache := NewCache(NewService(repo, core.NewValidator()), att, authFlag(true), nil)
	ctx := context.Background()

	assert.Equal(t, ErrNoClassroom, cache.StartAttendance())
	_, err := cache.LoadClassroom(ctx, "/turmas/1")
	require.NoError(t, err)

	assert.Equal(t, ErrNotTakingAttendance, cache.SetStatus("s1", Absent))
	require.NoError(t, cache.StartAttendance())
	roll := cache.Attendance()
	require.Len(t, roll, 2)
	for _, a := range roll {
		assert.Equal(t, Present, a.Status)
	}

	require.NoError(t, cache.SetStatus("s2", Late))
	assert.True(t, errors.Is(cache.SetStatus("s9", Late), ErrStudentNotInRoll))

	inserted, err := cache.SaveAttendance(ctx)
	require.NoError(t, err)
	assert.True(t, inserted)
	require.Len(t, att.inserted, 1)
	assert.Equal(t, []StatusCode{CodePresent, CodeLate}, []StatusCode{att.inserted[0][0].Status, att.inserted[0][1].Status})
	assert.Nil(t, att.inserted[0][0].ID)
	assert.False(t, cache.Taking())

	// reloaded: taken now, second save updates
	c, _ := cache.Current()
	assert.True(t, c.AttendanceTaken)
	require.NoError(t, cache.StartAttendance())
	require.NoError(t, cache.SetStatus("s1", Absent))
	inserted, err = cache.SaveAttendance(ctx)
	require.NoError(t, err)
	assert.False(t, inserted)
	require.Len(t, att.updated, 1)
	assert.Equal(t, CodeAbsent, att.updated[0][0].Status)
}
