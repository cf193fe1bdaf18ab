package inmemdb

import (
	"strings"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
	"github.com/jogaaurora/aurora/core/classroom"
	"github.com/jogaaurora/aurora/core/student"
)

func (db *DB) QueryStudents(page core.PageRequest, filter student.Filter) core.Page[student.Student] {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	all := make([]student.Student, 0, len(db.students))
	for _, rec := range db.students {
		if matches(rec, filter) {
			all = append(all, db.studentOf(rec, false))
		}
	}
	sortByName(all, func(s student.Student) string { return s.Name })
	return core.NewPage(all, page)
}

func matches(rec *studentRecord, f student.Filter) bool {
	if name := core.CleanString(f.Name); name != "" && !strings.Contains(strings.ToLower(rec.Name), strings.ToLower(name)) {
		return false
	}
	if !f.BornFrom.IsZero() && rec.BirthDate.Before(f.BornFrom) {
		return false
	}
	if !f.BornTo.IsZero() && f.BornTo.Before(rec.BirthDate) {
		return false
	}
	if f.Gender != "" && rec.Gender != f.Gender {
		return false
	}
	if f.ClassroomID != "" && rec.ClassroomID != f.ClassroomID {
		return false
	}
	return true
}

// GetStudent returns the student with its classroom and assessment history.
func (db *DB) GetStudent(id string) (student.Student, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	rec, ok := db.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	return db.studentOf(rec, true), nil
}

func (db *DB) CreateStudent(form student.Form) (student.Student, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.classrooms[form.ClassroomID]; !ok {
		return student.Student{}, ErrClassroomMissing
	}
	rec := &studentRecord{ID: newID()}
	fill(rec, form)
	db.students[rec.ID] = rec
	return db.studentOf(rec, true), nil
}

func (db *DB) UpdateStudent(id string, form student.Form) (student.Student, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	rec, ok := db.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	if _, ok = db.classrooms[form.ClassroomID]; !ok {
		return student.Student{}, ErrClassroomMissing
	}
	fill(rec, form)
	return db.studentOf(rec, true), nil
}

// DeleteStudent removes the student along with its attendance and assessments.
func (db *DB) DeleteStudent(id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.students[id]; !ok {
		return student.ErrNotFound
	}
	for aID, a := range db.attendance {
		if a.StudentID == id {
			delete(db.attendance, aID)
		}
	}
	for mID, m := range db.measurements {
		if m.StudentID == id {
			delete(db.measurements, mID)
		}
	}
	for tID, pt := range db.tests {
		if pt.StudentID == id {
			delete(db.tests, tID)
		}
	}
	delete(db.students, id)
	return nil
}

func fill(rec *studentRecord, form student.Form) {
	rec.Name = form.Name
	rec.BirthDate = form.BirthDate
	rec.Gender = form.Gender
	rec.ClassroomID = form.ClassroomID
}

func (db *DB) studentOf(rec *studentRecord, withHistory bool) student.Student {
	s := student.Student{
		ID:        rec.ID,
		Name:      rec.Name,
		BirthDate: rec.BirthDate,
		Gender:    rec.Gender,
	}
	if c, ok := db.classrooms[rec.ClassroomID]; ok {
		s.Classroom = &student.ClassroomRef{ID: c.ID, Name: c.Name}
	}
	if !withHistory {
		return s
	}

	s.BodyMeasurements = make([]assessment.BodyMeasurement, 0)
	for _, m := range db.measurements {
		if m.StudentID == rec.ID {
			s.BodyMeasurements = append(s.BodyMeasurements, db.measurementOf(m))
		}
	}
	sortStable(s.BodyMeasurements, func(a, b assessment.BodyMeasurement) bool { return a.CollectedAt.Before(b.CollectedAt) })

	s.PhysicalTests = make([]assessment.PhysicalTest, 0)
	for _, pt := range db.tests {
		if pt.StudentID == rec.ID {
			s.PhysicalTests = append(s.PhysicalTests, db.physicalTestOf(pt))
		}
	}
	sortStable(s.PhysicalTests, func(a, b assessment.PhysicalTest) bool { return a.CollectedAt.Before(b.CollectedAt) })
	return s
}

// StudentsOf returns the students enrolled in a classroom, with their history.
func (db *DB) StudentsOf(classroomID string) ([]student.Student, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if _, ok := db.classrooms[classroomID]; !ok {
		return nil, classroom.ErrNotFound
	}
	all := make([]student.Student, 0)
	for _, rec := range db.students {
		if rec.ClassroomID == classroomID {
			all = append(all, db.studentOf(rec, true))
		}
	}
	sortByName(all, func(s student.Student) string { return s.Name })
	return all, nil
}
