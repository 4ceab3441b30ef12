package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridiancrm/salescycle/internal/store"
)

func newTestLog(t *testing.T) *store.ActionLog {
	t.Helper()
	log, err := store.NewActionLog(filepath.Join(t.TempDir(), "actions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func TestActionLog_RecordAndRecent(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	proposalID := uuid.New().String()
	require.NoError(t, log.Record(ctx, "submit_proposal", "proposal", proposalID, "Dana Reeve"))
	require.NoError(t, log.Record(ctx, "approve_proposal", "proposal", proposalID, "Sam Ortiz"))

	entries, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		assert.NotEqual(t, uuid.Nil, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}
}

func TestActionLog_RecentHonorsLimit(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, log.Record(ctx, "submit_proposal", "proposal", uuid.New().String(), "Dana Reeve"))
	}

	entries, err := log.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestActionLog_ForEntityFiltersAndOrders(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	target := uuid.New().String()
	other := uuid.New().String()

	require.NoError(t, log.Record(ctx, "submit_proposal", "proposal", target, "Dana Reeve"))
	require.NoError(t, log.Record(ctx, "approve_proposal", "proposal", other, "Sam Ortiz"))
	require.NoError(t, log.Record(ctx, "reject_proposal", "proposal", target, "Sam Ortiz"))

	entries, err := log.ForEntity(ctx, target)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "submit_proposal", entries[0].Action)
	assert.Equal(t, "reject_proposal", entries[1].Action)
}

func TestActionLog_EmptyLog(t *testing.T) {
	log := newTestLog(t)

	entries, err := log.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
