package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/Augustwise/fullstack-task-manager/internal/data_models"
	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
)

func TestParseDueDate(t *testing.T) {
	t.Run("empty means none", func(t *testing.T) {
		got, err := ParseDueDate("  ")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("calendar date is UTC midnight", func(t *testing.T) {
		got, err := ParseDueDate("2025-03-01")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("rfc3339 is normalised to UTC", func(t *testing.T) {
		got, err := ParseDueDate("2025-03-01T10:00:00+02:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), *got)
	})

	for _, raw := range []string{"tomorrow", "2025-13-01", "01/03/2025"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := ParseDueDate(raw)
			assert.ErrorIs(t, err, apperrors.ErrInvalidDueDate)
		})
	}
}

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()

	assert.NoError(t, v.Validate(&dto.CredentialsRequest{Email: "a@x.io", Password: "pw"}))
	assert.ErrorIs(t, v.Validate(&dto.CredentialsRequest{Email: "a@x.io"}), apperrors.ErrEmailRequired)
	assert.ErrorIs(t, v.Validate(&dto.CredentialsRequest{Email: "nope", Password: "pw"}), apperrors.ErrInvalidEmail)
	assert.NoError(t, v.Validate(&dto.LoginRequest{Email: "nope", Password: "pw"}))
}
