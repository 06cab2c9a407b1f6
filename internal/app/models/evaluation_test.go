package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willy903/backintern/internal/pkg/apperrors"
)

func TestComputeOverallScore(t *testing.T) {
	tests := []struct {
		name       string
		technical  float64
		soft       float64
		attendance float64
		want       float64
	}{
		{"repeating mean rounds to cents", 18, 14, 20, 17.33},
		{"all zeros", 0, 0, 0, 0},
		{"all max", 20, 20, 20, 20},
		{"exact mean", 10, 12, 14, 12},
		{"two thirds rounds up", 10, 10, 12, 10.67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeOverallScore(tt.technical, tt.soft, tt.attendance)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeOverallScoreRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name       string
		technical  float64
		soft       float64
		attendance float64
	}{
		{"technical negative", -0.5, 10, 10},
		{"soft above max", 10, 20.01, 10},
		{"attendance negative", 10, 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeOverallScore(tt.technical, tt.soft, tt.attendance)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrScoreOutOfRange))
		})
	}
}

func TestDeriveOverallScoreOverridesCallerValue(t *testing.T) {
	evaluation := &Evaluation{
		TechnicalSkillsScore: 18,
		SoftSkillsScore:      14,
		AttendanceScore:      20,
		OverallScore:         5, // caller-supplied garbage
	}

	require.NoError(t, evaluation.DeriveOverallScore())
	assert.Equal(t, 17.33, evaluation.OverallScore)
}

func TestValidateScoreBounds(t *testing.T) {
	assert.NoError(t, ValidateScore("score", 0))
	assert.NoError(t, ValidateScore("score", 20))
	assert.Error(t, ValidateScore("score", -0.01))
	assert.Error(t, ValidateScore("score", 20.01))
}
