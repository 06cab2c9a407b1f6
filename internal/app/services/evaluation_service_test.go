package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
)

type evaluationFixture struct {
	*internFixture
	evaluations *fakeEvaluationRepo
	service     EvaluationService
}

func newEvaluationFixture(t *testing.T) *evaluationFixture {
	t.Helper()
	base := newInternFixture(t, 5)
	evaluations := newFakeEvaluationRepo()
	return &evaluationFixture{
		internFixture: base,
		evaluations:   evaluations,
		service: NewEvaluationService(
			evaluations, base.interns, base.encadreurs, base.notifications, base.activity,
		),
	}
}

func TestRecordDerivesAndPropagatesScore(t *testing.T) {
	ctx := context.Background()
	f := newEvaluationFixture(t)
	intern := f.addIntern(t, "i1@test.local")

	evaluation := &models.Evaluation{
		InternID:             intern.ID,
		EncadreurID:          f.supervisorID,
		TechnicalSkillsScore: 18,
		SoftSkillsScore:      14,
		AttendanceScore:      20,
		OverallScore:         1, // ignored
		Comments:             "solid first month",
	}
	require.NoError(t, f.service.Record(ctx, evaluation))
	assert.Equal(t, 17.33, evaluation.OverallScore)
	assert.False(t, evaluation.EvaluationDate.IsZero())

	stored, err := f.interns.GetByID(ctx, intern.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.EvaluationScore)
	assert.Equal(t, 17.33, *stored.EvaluationScore)

	// intern's user got an EVALUATION notification
	last := f.notifications.sent[len(f.notifications.sent)-1]
	assert.Equal(t, intern.UserID, last.UserID)
	assert.Equal(t, models.NotifEvaluation, last.Type)

	entry := f.activity.entries[len(f.activity.entries)-1]
	assert.Equal(t, models.ActionEvaluate, entry.Action)
	assert.Equal(t, int64(intern.ID), entry.EntityID)
}

func TestRecordRejectsOutOfRangeScores(t *testing.T) {
	ctx := context.Background()
	f := newEvaluationFixture(t)
	intern := f.addIntern(t, "i1@test.local")

	evaluation := &models.Evaluation{
		InternID:             intern.ID,
		EncadreurID:          f.supervisorID,
		TechnicalSkillsScore: 21,
		SoftSkillsScore:      14,
		AttendanceScore:      20,
	}
	err := f.service.Record(ctx, evaluation)
	require.ErrorIs(t, err, apperrors.ErrScoreOutOfRange)

	stored, err := f.interns.GetByID(ctx, intern.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.EvaluationScore)
}

func TestRecordRejectsMissingIntern(t *testing.T) {
	ctx := context.Background()
	f := newEvaluationFixture(t)

	evaluation := &models.Evaluation{
		InternID:             999,
		EncadreurID:          f.supervisorID,
		TechnicalSkillsScore: 10,
		SoftSkillsScore:      10,
		AttendanceScore:      10,
	}
	err := f.service.Record(ctx, evaluation)
	require.ErrorIs(t, err, apperrors.ErrInternNotFound)
}

func TestDeleteRefreshesStandingFromNewestRemaining(t *testing.T) {
	ctx := context.Background()
	f := newEvaluationFixture(t)
	intern := f.addIntern(t, "i1@test.local")

	older := &models.Evaluation{
		InternID: intern.ID, EncadreurID: f.supervisorID,
		TechnicalSkillsScore: 10, SoftSkillsScore: 10, AttendanceScore: 10,
		EvaluationDate: time.Now().AddDate(0, -1, 0),
	}
	require.NoError(t, f.service.Record(ctx, older))

	newer := &models.Evaluation{
		InternID: intern.ID, EncadreurID: f.supervisorID,
		TechnicalSkillsScore: 18, SoftSkillsScore: 14, AttendanceScore: 20,
	}
	require.NoError(t, f.service.Record(ctx, newer))

	stored, err := f.interns.GetByID(ctx, intern.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.EvaluationScore)
	assert.Equal(t, 17.33, *stored.EvaluationScore)

	require.NoError(t, f.service.Delete(ctx, newer.ID))

	stored, err = f.interns.GetByID(ctx, intern.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.EvaluationScore)
	assert.Equal(t, 10.0, *stored.EvaluationScore)
}
