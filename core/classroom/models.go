package classroom

import (
	"github.com/jogaaurora/aurora/core"
)

// Student is the classroom side view of an enrolled student.
type Student struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	BirthDate core.Date `json:"data_nascimento"`
	Gender    string    `json:"genero,omitempty"`
}

type Classroom struct {
	ID              string    `json:"id"`
	Name            string    `json:"nome"`
	AttendanceTaken bool      `json:"chamada_feita"`
	Students        []Student `json:"estudantes"`
	Presences       int       `json:"presences"`
	Absences        int       `json:"absences"`
}

func (c Classroom) HasStudents() bool {
	return len(c.Students) > 0
}

type (
	// CreateForm names a new classroom.
	CreateForm struct {
		Name string `json:"nome" validate:"required,notblank,min=1,max=32"`
	}

	// RenameForm renames an existing classroom.
	RenameForm struct {
		Name string `json:"nome" validate:"required,notblank,min=3,max=256"`
	}
)

// Attendance is one student's status on a given day. ID is empty until persisted.
type Attendance struct {
	ID      string
	Student Student
	Date    core.Date
	Status  Status
}

// AttendanceRow is the wire form of an Attendance: status as a code, null id until persisted.
type AttendanceRow struct {
	ID      *string    `json:"id"`
	Student Student    `json:"estudante"`
	Date    core.Date  `json:"data_presenca"`
	Status  StatusCode `json:"status"`
}

func (a Attendance) Row() (AttendanceRow, error) {
	code, err := ToBackendStatus(a.Status)
	if err != nil {
		return AttendanceRow{}, err
	}
	row := AttendanceRow{Student: a.Student, Date: a.Date, Status: code}
	if a.ID != "" {
		id := a.ID
		row.ID = &id
	}
	return row, nil
}

func (r AttendanceRow) Attendance() Attendance {
	a := Attendance{Student: r.Student, Date: r.Date, Status: ToFrontendStatus(r.Status)}
	if r.ID != nil {
		a.ID = *r.ID
	}
	return a
}
