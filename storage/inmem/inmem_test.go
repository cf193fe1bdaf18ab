package inmemdb

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
	"github.com/jogaaurora/aurora/core/classroom"
	"github.com/jogaaurora/aurora/core/student"
	"github.com/jogaaurora/aurora/core/user"
)

var testNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db := Open()
	db.SetClock(func() time.Time { return testNow })
	return db
}

func addStudent(t *testing.T, db *DB, classroomID, name string) student.Student {
	t.Helper()
	s, err := db.CreateStudent(student.Form{
		Name:        name,
		BirthDate:   core.NewDate(2014, time.June, 1),
		Gender:      student.CodeFemale,
		ClassroomID: classroomID,
	})
	require.NoError(t, err)
	return s
}

func TestDB_Users(t *testing.T) {
	db := newTestDB(t)
	usr, err := db.CreateUser(user.User{Username: "ana", Email: "ana@x.dev"})
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)

	_, err = db.CreateUser(user.User{Username: "ANA"})
	assert.Equal(t, ErrUsernameTaken, err)

	got, err := db.GetUserByUsername("ana@x.dev")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)

	_, err = db.GetUser("nope")
	assert.Equal(t, ErrUserNotFound, err)
}

func TestDB_QueryClassrooms_SortsByPortugueseCollation(t *testing.T) {
	db := newTestDB(t)
	for _, name := range []string{"beta", "Álgebra", "Arte"} {
		db.CreateClassroom(name)
	}
	page := db.QueryClassrooms(core.PageRequest{Size: 2})
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Álgebra", page.Content[0].Name)
	assert.Equal(t, "Arte", page.Content[1].Name)
	assert.Equal(t, 2, page.TotalPages)
	assert.EqualValues(t, 3, page.TotalElements)
}

func TestDB_DeleteClassroom(t *testing.T) {
	db := newTestDB(t)
	c := db.CreateClassroom("5A")
	s := addStudent(t, db, c.ID, "Ana")

	assert.Equal(t, classroom.ErrHasStudents, db.DeleteClassroom(c.ID))
	require.NoError(t, db.DeleteStudent(s.ID))
	require.NoError(t, db.DeleteClassroom(c.ID))
	assert.Equal(t, classroom.ErrNotFound, db.DeleteClassroom(c.ID))
}

func TestDB_Attendance(t *testing.T) {
	db := newTestDB(t)
	c := db.CreateClassroom("5A")
	ana := addStudent(t, db, c.ID, "Ana")
	bia := addStudent(t, db, c.ID, "Bia")

	rows := []classroom.AttendanceRow{
		{Student: classroom.Student{ID: ana.ID}, Status: classroom.CodePresent},
		{Student: classroom.Student{ID: bia.ID}, Status: classroom.CodeAbsent},
	}
	saved, err := db.InsertAttendance(c.ID, core.Date{}, rows)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.NotNil(t, saved[0].ID)
	assert.Equal(t, "Ana", saved[0].Student.Name)
	assert.Equal(t, core.DateOf(testNow), saved[0].Date)

	_, err = db.InsertAttendance(c.ID, core.Date{}, rows)
	assert.Equal(t, ErrAttendanceTaken, err)

	got, err := db.GetClassroom(c.ID)
	require.NoError(t, err)
	assert.True(t, got.AttendanceTaken)
	assert.Equal(t, 1, got.Presences)
	assert.Equal(t, 1, got.Absences)

	rows[1].Status = classroom.CodeLate
	saved, err = db.UpdateAttendance(c.ID, core.DateOf(testNow), rows[1:])
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, classroom.CodeLate, saved[1].Status)

	_, err = db.UpdateAttendance(c.ID, core.NewDate(2024, time.March, 6), rows)
	assert.Equal(t, ErrNoAttendance, err)

	yesterday, err := db.ListAttendance(c.ID, core.NewDate(2024, time.March, 4))
	require.NoError(t, err)
	assert.Empty(t, yesterday)

	between, err := db.AttendanceBetween(c.ID, core.NewDate(2024, time.March, 1), core.NewDate(2024, time.March, 31))
	require.NoError(t, err)
	assert.Len(t, between, 2)
}

func TestDB_Attendance_RejectsInvalidRows(t *testing.T) {
	db := newTestDB(t)
	c := db.CreateClassroom("5A")
	other := db.CreateClassroom("6B")
	ana := addStudent(t, db, c.ID, "Ana")
	outsider := addStudent(t, db, other.ID, "Caio")

	_, err := db.InsertAttendance(c.ID, core.Date{}, []classroom.AttendanceRow{
		{Student: classroom.Student{ID: outsider.ID}, Status: classroom.CodePresent},
	})
	assert.True(t, errors.Is(err, ErrNotEnrolled), "InsertAttendance() error = %v", err)

	_, err = db.InsertAttendance(c.ID, core.Date{}, []classroom.AttendanceRow{
		{Student: classroom.Student{ID: ana.ID}, Status: "X"},
	})
	assert.True(t, errors.Is(err, ErrInvalidStatus), "InsertAttendance() error = %v", err)
}

func TestDB_QueryStudents_Filter(t *testing.T) {
	db := newTestDB(t)
	a := db.CreateClassroom("5A")
	b := db.CreateClassroom("6B")
	addStudent(t, db, a.ID, "Ana Souza")
	addStudent(t, db, b.ID, "Mariana Lima")
	addStudent(t, db, b.ID, "Bruno")

	page := db.QueryStudents(core.PageRequest{}, student.Filter{Name: "ana"})
	assert.EqualValues(t, 2, page.TotalElements)

	page = db.QueryStudents(core.PageRequest{}, student.Filter{Name: "ana", ClassroomID: b.ID})
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Mariana Lima", page.Content[0].Name)
	require.NotNil(t, page.Content[0].Classroom)
	assert.Equal(t, "6B", page.Content[0].Classroom.Name)

	page = db.QueryStudents(core.PageRequest{}, student.Filter{BornFrom: core.NewDate(2015, time.January, 1)})
	assert.Empty(t, page.Content)
}

func TestDB_CreateStudent_UnknownClassroom(t *testing.T) {
	db := newTestDB(t)
	_, err := db.CreateStudent(student.Form{Name: "Ana", ClassroomID: "nope"})
	assert.Equal(t, ErrClassroomMissing, err)
}

func TestDB_Measurements(t *testing.T) {
	db := newTestDB(t)
	c := db.CreateClassroom("5A")
	s := addStudent(t, db, c.ID, "Ana")

	m, err := db.InsertMeasurement(s.ID, assessment.MeasurementForm{Waist: 60, Weight: 40, Height: 150})
	require.NoError(t, err)
	assert.Equal(t, 17.78, m.BMI)
	assert.Equal(t, RefUnderweight, m.BMIReference)
	assert.Equal(t, 0.4, m.WaistHeightRatio)
	assert.Equal(t, RefNoRisk, m.WaistHeightRatioReference)
	assert.Equal(t, core.DateOf(testNow), m.CollectedAt)
	require.NotNil(t, m.Student)
	assert.Equal(t, "Ana", m.Student.Name)

	m, err = db.UpdateMeasurement(m.ID, assessment.MeasurementForm{Waist: 80, Weight: 60, Height: 150})
	require.NoError(t, err)
	assert.Equal(t, RefObese, m.BMIReference)
	assert.Equal(t, RefHighRisk, m.WaistHeightRatioReference)
	assert.Equal(t, core.DateOf(testNow), m.CollectedAt, "an update without date keeps the original one")

	got, err := db.GetStudent(s.ID)
	require.NoError(t, err)
	assert.Len(t, got.BodyMeasurements, 1)

	require.NoError(t, db.DeleteMeasurement(m.ID))
	assert.Equal(t, assessment.ErrNotFound, db.DeleteMeasurement(m.ID))

	_, err = db.InsertMeasurement("nope", assessment.MeasurementForm{})
	assert.Equal(t, student.ErrNotFound, err)
}

func TestDB_PhysicalTests(t *testing.T) {
	db := newTestDB(t)
	c := db.CreateClassroom("5A")
	s := addStudent(t, db, c.ID, "Ana")

	pt, err := db.InsertPhysicalTest(s.ID, assessment.PhysicalTestForm{
		SixMinutes: 900, Flex: 10, RML: 25, TwentyMeters: 5, TwoKgThrow: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, RefHealthy, pt.SixMinutesReference)
	assert.Equal(t, RefRisk, pt.FlexReference)
	assert.Equal(t, RefHealthy, pt.RMLReference)
	assert.Equal(t, RefRisk, pt.TwentyMetersReference)
	assert.Equal(t, RefHealthy, pt.TwoKgThrowReference)

	require.NoError(t, db.DeleteStudent(s.ID))
	_, err = db.GetPhysicalTest(pt.ID)
	assert.Equal(t, assessment.ErrNotFound, err, "deleting a student removes its tests")
}

func TestSeed(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))

	usr, err := db.GetUserByUsername(SeedTeacherUsername)
	require.NoError(t, err)
	assert.NoError(t, usr.CheckPassword(SeedPassword))

	page := db.QueryClassrooms(core.PageRequest{Size: core.AllPageSize})
	assert.Len(t, page.Content, 3)
}
