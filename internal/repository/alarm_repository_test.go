package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisops/aegis-api/internal/migration"
	"github.com/aegisops/aegis-api/internal/models"
	"github.com/aegisops/aegis-api/internal/repository"
	"github.com/aegisops/aegis-api/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	st, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, migration.Run(st.DB(), zerolog.Nop()))
	return st.DB()
}

func testAlarm(id string) models.Alarm {
	return models.Alarm{
		ID:          id,
		Type:        models.AlarmTypeFire,
		Title:       "异常高温预警",
		Timestamp:   "09:15",
		CameraName:  "C区货运通道",
		Status:      models.AlarmStatusPending,
		Description: "检测到温度快速升高。",
		SnapshotURL: "https://example.com/" + id + ".jpg",
	}
}

func TestAlarmRepository_AddAndGet(t *testing.T) {
	repo := repository.NewAlarmRepository(newTestDB(t))
	ctx := context.Background()

	added, err := repo.Add(ctx, testAlarm("a1"))
	require.NoError(t, err)

	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, added, got)
	assert.Nil(t, got.RelatedIssueID)
}

func TestAlarmRepository_DuplicateID(t *testing.T) {
	repo := repository.NewAlarmRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Add(ctx, testAlarm("a1"))
	require.NoError(t, err)
	_, err = repo.Add(ctx, testAlarm("a1"))
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestAlarmRepository_ListNewestFirst(t *testing.T) {
	repo := repository.NewAlarmRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Add(ctx, testAlarm(fmt.Sprintf("a%d", i)))
		require.NoError(t, err)
	}

	alarms, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, alarms, 5)
	for i, a := range alarms {
		assert.Equal(t, fmt.Sprintf("a%d", 4-i), a.ID)
	}
}

func TestAlarmRepository_GetMissing(t *testing.T) {
	repo := repository.NewAlarmRepository(newTestDB(t))
	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAlarmRepository_SetStatus(t *testing.T) {
	repo := repository.NewAlarmRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Add(ctx, testAlarm("a1"))
	require.NoError(t, err)

	require.NoError(t, repo.SetStatus(ctx, "a1", models.AlarmStatusResolved))
	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, models.AlarmStatusResolved, got.Status)

	// Idempotent re-apply.
	require.NoError(t, repo.SetStatus(ctx, "a1", models.AlarmStatusResolved))

	err = repo.SetStatus(ctx, "nope", models.AlarmStatusResolved)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
