package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	err := NewCustomError(ErrEncadreurAtCapacity, "encadreur 3 is full")

	assert.True(t, errors.Is(err, ErrEncadreurAtCapacity))
	assert.Contains(t, err.Error(), "encadreur 3 is full")
}

func TestWithDetails(t *testing.T) {
	err := NewCustomError(ErrValidationFailed, "bad input").
		WithDetails(map[string]interface{}{"field": "email"})

	require.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "email", err.Details["field"])
}

func TestWrappedSentinelSurvivesFmtErrorf(t *testing.T) {
	err := fmt.Errorf("%w: encadreur 7 has 4/4 interns", ErrEncadreurAtCapacity)
	assert.True(t, errors.Is(err, ErrEncadreurAtCapacity))
}
