package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationRepository_UpsertAndListAll(t *testing.T) {
	repo := NewLocationRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, 1, 25.0330, 121.5654))
	require.NoError(t, repo.Upsert(ctx, 2, 35.6762, 139.6503))

	locations, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 2)
}

func TestLocationRepository_Upsert_OverwritesExistingRow(t *testing.T) {
	repo := NewLocationRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, 1, 25.0330, 121.5654))
	require.NoError(t, repo.Upsert(ctx, 1, 24.1477, 120.6736))

	locations, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1)

	assert.Equal(t, int64(1), locations[0].UserID)
	assert.InDelta(t, 24.1477, locations[0].Latitude, 1e-9)
	assert.InDelta(t, 120.6736, locations[0].Longitude, 1e-9)
	assert.False(t, locations[0].LastUpdated.IsZero())
}

func TestLocationRepository_ListAll_Empty(t *testing.T) {
	repo := NewLocationRepository(newTestDB(t))

	locations, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, locations)
	assert.NotNil(t, locations)
}
