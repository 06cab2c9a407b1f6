package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRefConstructors(t *testing.T) {
	internRef := InternRef(InternID(4))
	assert.Equal(t, EntityIntern, internRef.Kind())
	assert.Equal(t, int64(4), internRef.RawID())
	assert.False(t, internRef.IsZero())

	projectRef := ProjectRef(ProjectID(9))
	assert.Equal(t, EntityProject, projectRef.Kind())
	assert.Equal(t, int64(9), projectRef.RawID())

	taskRef := TaskRef(TaskID(12))
	assert.Equal(t, EntityTask, taskRef.Kind())
	assert.Equal(t, int64(12), taskRef.RawID())
}

func TestParseEntityRef(t *testing.T) {
	ref, err := ParseEntityRef(EntityProject, 3)
	require.NoError(t, err)
	assert.Equal(t, EntityProject, ref.Kind())
	assert.Equal(t, int64(3), ref.RawID())

	_, err = ParseEntityRef(EntityType("DEPARTMENT"), 3)
	assert.Error(t, err)

	_, err = ParseEntityRef(EntityIntern, 0)
	assert.Error(t, err)
}

func TestEntityRefZeroValue(t *testing.T) {
	var ref EntityRef
	assert.True(t, ref.IsZero())
}
