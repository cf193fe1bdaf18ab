package assessment

import (
	"fmt"
	"time"

	"github.com/jogaaurora/aurora/core"
)

// Kind is the kind of assessment being entered.
type Kind int

const (
	KindBodyMeasurement Kind = iota
	KindPhysicalTest
)

func (k Kind) label() string {
	if k == KindPhysicalTest {
		return "testes físicos"
	}
	return "medidas corporais"
}

const (
	MinAge = 6
	MaxAge = 17
)

// Subject is what eligibility is decided on.
type Subject struct {
	StudentID       string
	BirthDate       core.Date
	GenderSpecified bool
}

// EligibilityError blocks assessment entry. Both flags may be set.
type EligibilityError struct {
	Title         string
	Description   string
	AgeInvalid    bool
	GenderMissing bool
}

func (e *EligibilityError) Error() string { return e.Title + ": " + e.Description }

func (e *EligibilityError) UserMessage() string { return e.Description }

// Age is the number of full years between birth and today.
func Age(birth core.Date, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// CheckEligibility allows entry only for students aged 6 to 17 with a specified gender.
func CheckEligibility(subj Subject, kind Kind, today time.Time) error {
	age := Age(subj.BirthDate, today)
	ageInvalid := subj.BirthDate.IsZero() || age < MinAge || age > MaxAge
	genderMissing := !subj.GenderSpecified
	if !ageInvalid && !genderMissing {
		return nil
	}

	item := kind.label()
	e := &EligibilityError{AgeInvalid: ageInvalid, GenderMissing: genderMissing}
	switch {
	case ageInvalid && genderMissing:
		e.Title = "Dados Incompletos ou Inválidos"
		e.Description = fmt.Sprintf("O gênero do estudante precisa ser informado e a idade deve estar entre %d e %d anos para adicionar %s. Por favor, atualize o cadastro.", MinAge, MaxAge, item)
	case genderMissing:
		e.Title = "Gênero não informado"
		e.Description = fmt.Sprintf("É necessário informar o gênero do estudante para adicionar %s. Por favor, atualize o cadastro do estudante.", item)
	default:
		e.Title = "Idade fora do permitido"
		e.Description = fmt.Sprintf("A idade do estudante deve estar entre %d e %d anos para adicionar %s. Por favor, atualize o cadastro do estudante.", MinAge, MaxAge, item)
	}
	return e
}
