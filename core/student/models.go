package student

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
)

// Gender labels, as shown to users.
type Gender string

// GenderCode is the backend representation of a Gender.
type GenderCode string

const (
	Male        Gender = "Masculino"
	Female      Gender = "Feminino"
	Unspecified Gender = "Não informado"

	CodeMale        GenderCode = "M"
	CodeFemale      GenderCode = "F"
	CodeUnspecified GenderCode = "N"
)

var Genders = []Gender{Male, Female, Unspecified}

var ErrUnknownGender = errors.New("unknown gender")

func ToBackendGender(g Gender) GenderCode {
	switch g {
	case Male:
		return CodeMale
	case Female:
		return CodeFemale
	default:
		return CodeUnspecified
	}
}

func ToFrontendGender(code GenderCode) Gender {
	switch code {
	case CodeMale:
		return Male
	case CodeFemale:
		return Female
	default:
		return Unspecified
	}
}

// ParseGender accepts a label or a code, case insensitively.
func ParseGender(s string) (GenderCode, error) {
	s = strings.TrimSpace(s)
	for _, g := range Genders {
		if strings.EqualFold(s, string(g)) {
			return ToBackendGender(g), nil
		}
	}
	switch code := GenderCode(strings.ToUpper(s)); code {
	case CodeMale, CodeFemale, CodeUnspecified:
		return code, nil
	}
	return "", errors.Wrapf(ErrUnknownGender, "%q", s)
}

// UnmarshalJSON accepts a code or a label. Unknown values read as unspecified.
func (g *GenderCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "decoding gender")
	}
	if s == "" {
		*g = ""
		return nil
	}
	code, err := ParseGender(s)
	if err != nil {
		code = CodeUnspecified
	}
	*g = code
	return nil
}

// ClassroomRef is the student's classroom, as embedded by the backend.
type ClassroomRef struct {
	ID   string `json:"id"`
	Name string `json:"nome,omitempty"`
}

type Student struct {
	ID               string                       `json:"id"`
	Name             string                       `json:"nome"`
	BirthDate        core.Date                    `json:"data_nascimento"`
	Gender           GenderCode                   `json:"genero"`
	BodyMeasurements []assessment.BodyMeasurement `json:"medidas_corporais"`
	PhysicalTests    []assessment.PhysicalTest    `json:"testes_fisicos"`
	Classroom        *ClassroomRef                `json:"turma"`
}

func (s Student) GenderLabel() Gender {
	return ToFrontendGender(s.Gender)
}

// Form creates or updates a student.
type Form struct {
	Name        string     `json:"nome" validate:"required,notblank,min=3,max=256"`
	BirthDate   core.Date  `json:"data_nascimento"`
	Gender      GenderCode `json:"genero" validate:"required,oneof=M F N"`
	ClassroomID string     `json:"turma" validate:"required"`
}

// Payload is the body sent to the backend.
func (f Form) Payload() map[string]interface{} {
	return map[string]interface{}{
		"nome":            f.Name,
		"data_nascimento": f.BirthDate,
		"genero":          f.Gender,
		"turma":           map[string]string{"id": f.ClassroomID},
	}
}

// Filter narrows a student search. Zero fields are ignored.
type Filter struct {
	Name        string
	BornFrom    core.Date
	BornTo      core.Date
	Gender      GenderCode
	ClassroomID string
}

func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Values encodes f as the backend query params, dates as yyyy-MM-dd.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if name := core.CleanString(f.Name); name != "" {
		v.Set("nome", name)
	}
	if !f.BornFrom.IsZero() {
		v.Set("data_nascimento_ini", f.BornFrom.String())
	}
	if !f.BornTo.IsZero() {
		v.Set("data_nascimento_fim", f.BornTo.String())
	}
	if f.Gender != "" {
		v.Set("genero", string(f.Gender))
	}
	if f.ClassroomID != "" {
		v.Set("turma_id", f.ClassroomID)
	}
	return v
}
