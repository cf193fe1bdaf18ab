// Package inmemdb is the in-memory storage of the development backend.
package inmemdb

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
	"github.com/jogaaurora/aurora/core/classroom"
	"github.com/jogaaurora/aurora/core/student"
	"github.com/jogaaurora/aurora/core/user"
)

var (
	ErrUsernameTaken    = errors.New("username already taken")
	ErrAttendanceTaken  = errors.New("attendance already taken on this date")
	ErrNoAttendance     = errors.New("no attendance taken on this date")
	ErrNotEnrolled      = errors.New("student not enrolled in classroom")
	ErrInvalidStatus    = errors.New("invalid attendance status")
	ErrClassroomMissing = errors.New("classroom does not exist")
)

type (
	classroomRecord struct {
		ID   string
		Name string
	}

	studentRecord struct {
		ID          string
		Name        string
		BirthDate   core.Date
		Gender      student.GenderCode
		ClassroomID string
	}

	attendanceRecord struct {
		ID          string
		ClassroomID string
		StudentID   string
		Date        core.Date
		Status      classroom.StatusCode
	}

	measurementRecord struct {
		ID        string
		StudentID string
		Form      assessment.MeasurementForm
	}

	physicalTestRecord struct {
		ID        string
		StudentID string
		Form      assessment.PhysicalTestForm
	}
)

// DB holds every table. A single lock guards them all, since most operations join tables.
type DB struct {
	mutex        sync.RWMutex
	users        map[string]*user.User
	classrooms   map[string]*classroomRecord
	students     map[string]*studentRecord
	attendance   map[string]*attendanceRecord
	measurements map[string]*measurementRecord
	tests        map[string]*physicalTestRecord
	nowFunc      func() time.Time
}

func Open() *DB {
	return &DB{
		users:        make(map[string]*user.User),
		classrooms:   make(map[string]*classroomRecord),
		students:     make(map[string]*studentRecord),
		attendance:   make(map[string]*attendanceRecord),
		measurements: make(map[string]*measurementRecord),
		tests:        make(map[string]*physicalTestRecord),
		nowFunc:      time.Now,
	}
}

// SetClock replaces the clock used to resolve "today".
func (db *DB) SetClock(now func() time.Time) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.nowFunc = now
}

func (db *DB) today() core.Date {
	return core.DateOf(db.nowFunc())
}

func newID() string {
	return uuid.NewString()
}

// sortByName orders items by name the way pt-BR readers expect (case and accents ignored).
// Collators are not safe for concurrent use, so each sort gets its own.
func sortByName[T any](items []T, name func(T) string) {
	col := collate.New(language.BrazilianPortuguese, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(items, func(i, j int) bool {
		return col.CompareString(name(items[i]), name(items[j])) < 0
	})
}

func sortStable[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
