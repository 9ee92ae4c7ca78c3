package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsClock(t *testing.T) {
	assert.True(t, IsClock("09:00"))
	assert.True(t, IsClock("23:59"))
	assert.False(t, IsClock("9:00"))
	assert.False(t, IsClock("24:00"))
	assert.False(t, IsClock("10h"))
}

func TestRegisterOn(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	type req struct {
		Date  string `validate:"required,date"`
		Start string `validate:"required,clock"`
	}

	assert.NoError(t, v.Struct(req{Date: "2030-03-14", Start: "10:30"}))
	assert.Error(t, v.Struct(req{Date: "14/03/2030", Start: "10:30"}))
	assert.Error(t, v.Struct(req{Date: "2030-03-14", Start: "25:00"}))
}
