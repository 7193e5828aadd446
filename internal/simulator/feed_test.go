package simulator

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisops/aegis-api/internal/migration"
	"github.com/aegisops/aegis-api/internal/models"
	"github.com/aegisops/aegis-api/internal/notification"
	"github.com/aegisops/aegis-api/internal/repository"
	"github.com/aegisops/aegis-api/internal/store"
)

func newTestFeed(t *testing.T, minDelay, maxDelay time.Duration) (*Feed, repository.AlarmRepository) {
	t.Helper()
	st, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, migration.Run(st.DB(), zerolog.Nop()))

	alarms := repository.NewAlarmRepository(st.DB())
	bus := notification.NewBus(time.Minute, zerolog.Nop())
	return NewFeed(alarms, bus, minDelay, maxDelay, zerolog.Nop()), alarms
}

func TestSynthesize_FreshPendingAlarm(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC)

	alarm := synthesize(rng, now)
	assert.NotEmpty(t, alarm.ID)
	assert.Equal(t, models.AlarmStatusPending, alarm.Status)
	assert.Equal(t, "09:15", alarm.Timestamp)
	assert.Nil(t, alarm.RelatedIssueID)
	assert.True(t, models.IsValidAlarmType(alarm.Type))
	assert.NotEmpty(t, alarm.Title)
	assert.NotEmpty(t, alarm.SnapshotURL)
}

func TestSynthesize_UniqueIDs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	now := time.Now()

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		alarm := synthesize(rng, now)
		_, dup := seen[alarm.ID]
		require.False(t, dup, "duplicate alarm id %s", alarm.ID)
		seen[alarm.ID] = struct{}{}
	}
}

func TestSynthesize_UsesBothTemplates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	counts := map[models.AlarmType]int{}
	for i := 0; i < 1000; i++ {
		counts[synthesize(rng, time.Now()).Type]++
	}
	assert.Positive(t, counts[models.AlarmTypeFire])
	assert.Positive(t, counts[models.AlarmTypeIntrusion])
	assert.Greater(t, counts[models.AlarmTypeIntrusion], counts[models.AlarmTypeFire])
}

func TestFeed_StartEmitsAndStopHalts(t *testing.T) {
	feed, alarms := newTestFeed(t, time.Millisecond, 5*time.Millisecond)
	ctx := context.Background()

	feed.Start()
	assert.True(t, feed.Running())

	require.Eventually(t, func() bool {
		list, err := alarms.List(ctx)
		return err == nil && len(list) > 0
	}, 2*time.Second, 5*time.Millisecond)

	feed.Stop()
	assert.False(t, feed.Running())

	// No further inserts after Stop has returned.
	list, err := alarms.List(ctx)
	require.NoError(t, err)
	before := len(list)
	time.Sleep(30 * time.Millisecond)
	list, err = alarms.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, len(list))
}

func TestFeed_StartIsIdempotent(t *testing.T) {
	feed, _ := newTestFeed(t, time.Hour, 2*time.Hour)

	feed.Start()
	feed.Start()
	assert.True(t, feed.Running())

	// One Stop must tear down the single loop.
	feed.Stop()
	assert.False(t, feed.Running())
	feed.Stop() // stopping a stopped feed is a no-op
}
