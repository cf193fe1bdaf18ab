package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name string `json:"nome" validate:"required,notblank,min=3"`
}

func TestValidatorCheck(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Check(form{Name: "Terceiro Ano"}))

	err := v.Check(form{})
	require.Error(t, err)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	msg, ok := vErr.Field("nome")
	require.True(t, ok)
	assert.Equal(t, "nome é obrigatório", msg)

	err = v.Check(form{Name: "    "})
	require.True(t, errors.As(err, &vErr))
	msg, _ = vErr.Field("nome")
	assert.Equal(t, "nome não pode estar em branco", msg)
}
