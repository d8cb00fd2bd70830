package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHHMM(t *testing.T) {
	for _, ok := range []string{"00:00", "09:30", "23:59"} {
		assert.True(t, IsHHMM(ok), ok)
	}
	for _, bad := range []string{"", "9:30", "24:00", "12:60", "12:3", "noon"} {
		assert.False(t, IsHHMM(bad), bad)
	}
}

func TestRegister(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())

	type req struct {
		Start string `binding:"required,hhmm"`
		Break string `binding:"omitempty,hhmm"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(&req{Start: "08:00"}))
	assert.Error(t, binding.Validator.ValidateStruct(&req{Start: "8am"}))
	assert.Error(t, binding.Validator.ValidateStruct(&req{Start: "08:00", Break: "25:00"}))
}
