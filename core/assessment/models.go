package assessment

import (
	"github.com/jogaaurora/aurora/core"
)

// StudentRef is the owning student, as embedded by the backend.
type StudentRef struct {
	ID   string `json:"id"`
	Name string `json:"nome,omitempty"`
}

// BodyMeasurement is a dated weight/height/waist record.
// The reference fields are classifications computed by the backend and displayed as is.
type BodyMeasurement struct {
	ID                        string      `json:"id"`
	Student                   *StudentRef `json:"estudante,omitempty"`
	CollectedAt               core.Date   `json:"data_coleta"`
	Waist                     float64     `json:"cintura"`
	Weight                    float64     `json:"peso"`
	Height                    float64     `json:"estatura"`
	BMI                       float64     `json:"imc"`
	BMIReference              string      `json:"referencia_imc"`
	WaistHeightRatio          float64     `json:"relacao_cintura_estatura"`
	WaistHeightRatioReference string      `json:"referencia_relacao_cintura_estatura"`
}

type MeasurementForm struct {
	CollectedAt core.Date `json:"data_coleta"`
	Waist       float64   `json:"cintura" validate:"gt=0"`
	Weight      float64   `json:"peso" validate:"gt=0"`
	Height      float64   `json:"estatura" validate:"gt=0"`
}

// PhysicalTest is a dated record of the five fitness tests and their backend references.
type PhysicalTest struct {
	ID                    string      `json:"id"`
	Student               *StudentRef `json:"estudante,omitempty"`
	CollectedAt           core.Date   `json:"data_coleta"`
	SixMinutes            float64     `json:"teste_seis_minutos"`
	SixMinutesReference   string      `json:"referencia_seis_minutos"`
	Flex                  float64     `json:"teste_flex"`
	FlexReference         string      `json:"referencia_flex"`
	RML                   float64     `json:"teste_rml"`
	RMLReference          string      `json:"referencia_rml"`
	TwentyMeters          float64     `json:"teste_vinte_metros"`
	TwentyMetersReference string      `json:"referencia_vinte_metros"`
	TwoKgThrow            float64     `json:"teste_arremesso_dois_quilos"`
	TwoKgThrowReference   string      `json:"referencia_arremesso_dois_quilos"`
}

type PhysicalTestForm struct {
	CollectedAt  core.Date `json:"data_coleta"`
	SixMinutes   float64   `json:"teste_seis_minutos" validate:"gt=0"`
	Flex         float64   `json:"teste_flex" validate:"gte=0"`
	RML          float64   `json:"teste_rml" validate:"gte=0"`
	TwentyMeters float64   `json:"teste_vinte_metros" validate:"gt=0"`
	TwoKgThrow   float64   `json:"teste_arremesso_dois_quilos" validate:"gt=0"`
}
