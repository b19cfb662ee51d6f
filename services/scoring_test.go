package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow-backend/models"
)

func TestPointsForTaskCompleted_ByPriority(t *testing.T) {
	low, err := PointsForTaskCompleted(models.PriorityLow, false)
	require.NoError(t, err)
	medium, err := PointsForTaskCompleted(models.PriorityMedium, false)
	require.NoError(t, err)
	high, err := PointsForTaskCompleted(models.PriorityHigh, false)
	require.NoError(t, err)

	assert.Equal(t, 10, low)
	assert.Equal(t, 20, medium)
	assert.Equal(t, 30, high)

	// Higher priority always pays more.
	assert.Less(t, low, medium)
	assert.Less(t, medium, high)
}

func TestPointsForTaskCompleted_EarlyBonus(t *testing.T) {
	for _, priority := range []string{models.PriorityLow, models.PriorityMedium, models.PriorityHigh} {
		late, err := PointsForTaskCompleted(priority, false)
		require.NoError(t, err)
		early, err := PointsForTaskCompleted(priority, true)
		require.NoError(t, err)

		assert.Equal(t, PointsEarlyBonus, early-late, "bonus delta for %s", priority)
	}
}

func TestPointsForTaskCompleted_UnknownPriority(t *testing.T) {
	_, err := PointsForTaskCompleted("URGENT", true)
	require.ErrorIs(t, err, ErrInvalidPriority)

	_, err = PointsForTaskCompleted("", false)
	require.ErrorIs(t, err, ErrInvalidPriority)
}

func TestFixedAwards(t *testing.T) {
	assert.Equal(t, 5, PointsForTaskCreated())
	assert.Equal(t, 2, PointsForComment())
}
