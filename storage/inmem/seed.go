package inmemdb

import (
	"time"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
	"github.com/jogaaurora/aurora/core/student"
	"github.com/jogaaurora/aurora/core/user"
)

// Development accounts created by Seed.
const (
	SeedAdminUsername   = "admin"
	SeedTeacherUsername = "professor"
	SeedPassword        = "aurora123"
)

// Seed fills an empty DB with development accounts, classrooms and students.
func Seed(db *DB) error {
	accounts := []user.User{
		{Username: SeedAdminUsername, Name: "Administração", Email: "admin@jogaaurora.dev", Roles: []string{user.RoleAdmin}},
		{Username: SeedTeacherUsername, Name: "Professora Aurora", Email: "professor@jogaaurora.dev", Roles: []string{user.RoleTeacher}},
	}
	for _, usr := range accounts {
		if err := usr.SetPassword(SeedPassword); err != nil {
			return errors.Wrap(err, "hashing seed password")
		}
		if _, err := db.CreateUser(usr); err != nil {
			return errors.Wrapf(err, "creating user %s", usr.Username)
		}
	}

	today := db.today()
	born := func(age int, month time.Month, day int) core.Date {
		return core.NewDate(today.Year()-age, month, day)
	}

	roll := map[string][]student.Form{
		"5º Ano A": {
			{Name: "Ana Beatriz Souza", BirthDate: born(10, time.March, 14), Gender: student.CodeFemale},
			{Name: "Bruno Oliveira", BirthDate: born(11, time.July, 2), Gender: student.CodeMale},
			{Name: "Érica Lima", BirthDate: born(10, time.November, 21), Gender: student.CodeFemale},
		},
		"8º Ano B": {
			{Name: "Caio Ferreira", BirthDate: born(13, time.January, 9), Gender: student.CodeMale},
			{Name: "Davi Santos", BirthDate: born(14, time.May, 30), Gender: student.CodeUnspecified},
		},
		"Turma Sem Alunos": nil,
	}
	for name, forms := range roll {
		c := db.CreateClassroom(name)
		for _, form := range forms {
			form.ClassroomID = c.ID
			s, err := db.CreateStudent(form)
			if err != nil {
				return errors.Wrapf(err, "creating student %s", form.Name)
			}
			if form.Gender == student.CodeUnspecified {
				continue
			}
			if _, err = db.InsertMeasurement(s.ID, assessment.MeasurementForm{Waist: 62, Weight: 38.5, Height: 145}); err != nil {
				return errors.Wrap(err, "creating seed measurement")
			}
		}
	}
	return nil
}
