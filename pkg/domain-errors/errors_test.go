package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches the code of a direct error", func(t *testing.T) {
		err := New(CodeConflict, "name must be unique")
		assert.True(t, HasCode(err, CodeConflict))
		assert.False(t, HasCode(err, CodeNotFound))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("create contact: %w", New(CodeValidation, "name missing"))
		assert.True(t, HasCode(err, CodeValidation))
	})

	t.Run("uncoded errors have no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to list contacts")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to list contacts: connection refused", err.Error())
	assert.Equal(t, "failed to list contacts", MessageOf(err))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "number missing", MessageOf(New(CodeValidation, "number missing")))
	assert.Equal(t, "plain", MessageOf(errors.New("plain")))
}
