package inmemdb

import (
	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/classroom"
)

func (db *DB) QueryClassrooms(page core.PageRequest) core.Page[classroom.Classroom] {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	all := make([]classroom.Classroom, 0, len(db.classrooms))
	for _, rec := range db.classrooms {
		all = append(all, db.classroomOf(rec))
	}
	sortByName(all, func(c classroom.Classroom) string { return c.Name })
	return core.NewPage(all, page)
}

func (db *DB) GetClassroom(id string) (classroom.Classroom, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	rec, ok := db.classrooms[id]
	if !ok {
		return classroom.Classroom{}, classroom.ErrNotFound
	}
	return db.classroomOf(rec), nil
}

func (db *DB) CreateClassroom(name string) classroom.Classroom {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	rec := &classroomRecord{ID: newID(), Name: name}
	db.classrooms[rec.ID] = rec
	return db.classroomOf(rec)
}

func (db *DB) UpdateClassroom(id, name string) (classroom.Classroom, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	rec, ok := db.classrooms[id]
	if !ok {
		return classroom.Classroom{}, classroom.ErrNotFound
	}
	rec.Name = name
	return db.classroomOf(rec), nil
}

// DeleteClassroom refuses to delete a classroom that still has enrolled students.
func (db *DB) DeleteClassroom(id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.classrooms[id]; !ok {
		return classroom.ErrNotFound
	}
	for _, s := range db.students {
		if s.ClassroomID == id {
			return classroom.ErrHasStudents
		}
	}
	for aID, a := range db.attendance {
		if a.ClassroomID == id {
			delete(db.attendance, aID)
		}
	}
	delete(db.classrooms, id)
	return nil
}

// classroomOf joins the enrolled students and today's attendance counts.
func (db *DB) classroomOf(rec *classroomRecord) classroom.Classroom {
	c := classroom.Classroom{ID: rec.ID, Name: rec.Name, Students: db.enrolled(rec.ID)}
	today := db.today()
	for _, a := range db.attendance {
		if a.ClassroomID != rec.ID || !a.Date.Equal(today.Time) {
			continue
		}
		c.AttendanceTaken = true
		if a.Status == classroom.CodeAbsent {
			c.Absences++
		} else {
			c.Presences++
		}
	}
	return c
}

func (db *DB) enrolled(classroomID string) []classroom.Student {
	students := make([]classroom.Student, 0)
	for _, s := range db.students {
		if s.ClassroomID == classroomID {
			students = append(students, rosterStudent(s))
		}
	}
	sortByName(students, func(s classroom.Student) string { return s.Name })
	return students
}

func rosterStudent(s *studentRecord) classroom.Student {
	return classroom.Student{ID: s.ID, Name: s.Name, BirthDate: s.BirthDate, Gender: string(s.Gender)}
}
