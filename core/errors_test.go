package core

import (
	"testing"

	"github.com/pkg/errors"
)

type userMsgErr struct{ msg string }

func (e userMsgErr) Error() string       { return "api: " + e.msg }
func (e userMsgErr) UserMessage() string { return e.msg }

func TestNotify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback []string
		want     string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: GenericErrorMsg},
		{name: "plain error with fallback", err: errors.New("boom"), fallback: []string{ClassroomCreateErrMsg}, want: ClassroomCreateErrMsg},
		{
			name: "validation",
			err:  NewValidationError(nil, FieldError{Field: "nome", Error: "nome é obrigatório"}),
			want: "nome: nome é obrigatório",
		},
		{
			name: "wrapped policy",
			err:  errors.Wrap(NewPolicyError("Turma", "não pode"), "deleting classroom"),
			want: "não pode",
		},
		{name: "user message", err: errors.Wrap(userMsgErr{"Turma não encontrada"}, "getting classroom"), want: "Turma não encontrada"},
		{name: "empty user message", err: userMsgErr{}, fallback: []string{LoginErrorMsg}, want: LoginErrorMsg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Notify(tt.err, tt.fallback...); got != tt.want {
				t.Errorf("Notify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationErrorField(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{{Field: "username", Error: "too short"}}}
	if msg, ok := err.Field("username"); !ok || msg != "too short" {
		t.Errorf("Field() = %q, %v", msg, ok)
	}
	if _, ok := err.Field("password"); ok {
		t.Error("Field() found an unreported field")
	}
}
