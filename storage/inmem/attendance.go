package inmemdb

import (
	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/classroom"
)

// resolveDate maps the zero date to today. Callers must hold the lock.
func (db *DB) resolveDate(date core.Date) core.Date {
	if date.IsZero() {
		return db.today()
	}
	return date
}

// ListAttendance returns the roll of a classroom on date (today when zero), empty when not taken.
func (db *DB) ListAttendance(classroomID string, date core.Date) ([]classroom.AttendanceRow, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if _, ok := db.classrooms[classroomID]; !ok {
		return nil, classroom.ErrNotFound
	}
	return db.rollOf(classroomID, db.resolveDate(date)), nil
}

// InsertAttendance records the first roll of a classroom on date.
func (db *DB) InsertAttendance(classroomID string, date core.Date, rows []classroom.AttendanceRow) ([]classroom.AttendanceRow, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	date = db.resolveDate(date)
	if err := db.checkRows(classroomID, rows); err != nil {
		return nil, err
	}
	if len(db.rollOf(classroomID, date)) > 0 {
		return nil, ErrAttendanceTaken
	}
	for _, row := range rows {
		db.putAttendance(classroomID, date, row)
	}
	return db.rollOf(classroomID, date), nil
}

// UpdateAttendance overwrites the statuses of an existing roll, adding students missing from it.
func (db *DB) UpdateAttendance(classroomID string, date core.Date, rows []classroom.AttendanceRow) ([]classroom.AttendanceRow, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	date = db.resolveDate(date)
	if err := db.checkRows(classroomID, rows); err != nil {
		return nil, err
	}
	if len(db.rollOf(classroomID, date)) == 0 {
		return nil, ErrNoAttendance
	}
	for _, row := range rows {
		db.putAttendance(classroomID, date, row)
	}
	return db.rollOf(classroomID, date), nil
}

// AttendanceBetween returns the rolls of a classroom from start to end, both inclusive.
func (db *DB) AttendanceBetween(classroomID string, start, end core.Date) ([]classroom.AttendanceRow, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if _, ok := db.classrooms[classroomID]; !ok {
		return nil, classroom.ErrNotFound
	}
	rows := make([]classroom.AttendanceRow, 0)
	for _, a := range db.attendance {
		if a.ClassroomID != classroomID || a.Date.Before(start) || end.Before(a.Date) {
			continue
		}
		rows = append(rows, db.rowOf(a))
	}
	sortRows(rows)
	return rows, nil
}

func (db *DB) checkRows(classroomID string, rows []classroom.AttendanceRow) error {
	if _, ok := db.classrooms[classroomID]; !ok {
		return classroom.ErrNotFound
	}
	for _, row := range rows {
		s, ok := db.students[row.Student.ID]
		if !ok || s.ClassroomID != classroomID {
			return errors.Wrapf(ErrNotEnrolled, "student %q", row.Student.ID)
		}
		switch row.Status {
		case classroom.CodePresent, classroom.CodeLate, classroom.CodeAbsent:
		default:
			return errors.Wrapf(ErrInvalidStatus, "%q", row.Status)
		}
	}
	return nil
}

// putAttendance upserts the status of one student on date. Callers must hold the lock.
func (db *DB) putAttendance(classroomID string, date core.Date, row classroom.AttendanceRow) {
	for _, a := range db.attendance {
		if a.ClassroomID == classroomID && a.StudentID == row.Student.ID && a.Date.Equal(date.Time) {
			a.Status = row.Status
			return
		}
	}
	rec := &attendanceRecord{
		ID:          newID(),
		ClassroomID: classroomID,
		StudentID:   row.Student.ID,
		Date:        date,
		Status:      row.Status,
	}
	db.attendance[rec.ID] = rec
}

func (db *DB) rollOf(classroomID string, date core.Date) []classroom.AttendanceRow {
	rows := make([]classroom.AttendanceRow, 0)
	for _, a := range db.attendance {
		if a.ClassroomID == classroomID && a.Date.Equal(date.Time) {
			rows = append(rows, db.rowOf(a))
		}
	}
	sortRows(rows)
	return rows
}

func (db *DB) rowOf(a *attendanceRecord) classroom.AttendanceRow {
	id := a.ID
	row := classroom.AttendanceRow{ID: &id, Date: a.Date, Status: a.Status}
	if s, ok := db.students[a.StudentID]; ok {
		row.Student = rosterStudent(s)
	} else {
		row.Student = classroom.Student{ID: a.StudentID}
	}
	return row
}

// sortRows orders rows by date then student name.
func sortRows(rows []classroom.AttendanceRow) {
	sortByName(rows, func(r classroom.AttendanceRow) string { return r.Student.Name })
	sortStable(rows, func(a, b classroom.AttendanceRow) bool { return a.Date.Before(b.Date) })
}
