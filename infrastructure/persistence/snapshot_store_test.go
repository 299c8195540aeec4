package persistence_test

import (
	"fmt"
	"testing"
	"time"

	"taskdash/domain/model"
	"taskdash/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotAt(ts time.Time, channelID string) model.AnalyticsSnapshot {
	return model.AnalyticsSnapshot{
		Timestamp: ts,
		Data:      &model.ChannelReport{ChannelID: channelID},
	}
}

func TestSnapshotStore_AppendAndList(t *testing.T) {
	store := persistence.NewSnapshotStore(t.TempDir())

	base := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append("p1", snapshotAt(base, "ch-1")))
	require.NoError(t, store.Append("p1", snapshotAt(base.Add(time.Hour), "ch-1")))

	snaps, err := store.List("p1")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.True(t, snaps[0].Timestamp.Before(snaps[1].Timestamp), "history is oldest first")
}

func TestSnapshotStore_EvictsOldestBeyondCap(t *testing.T) {
	store := persistence.NewSnapshotStore(t.TempDir())

	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < persistence.SnapshotCap+3; i++ {
		snap := snapshotAt(base.Add(time.Duration(i)*time.Hour), fmt.Sprintf("ch-%d", i))
		require.NoError(t, store.Append("p1", snap))
	}

	snaps, err := store.List("p1")
	require.NoError(t, err)
	require.Len(t, snaps, persistence.SnapshotCap)
	// The three oldest entries were evicted.
	assert.Equal(t, "ch-3", snaps[0].Data.ChannelID)
	assert.Equal(t, fmt.Sprintf("ch-%d", persistence.SnapshotCap+2), snaps[len(snaps)-1].Data.ChannelID)
}

func TestSnapshotStore_MissingFileYieldsEmptyHistory(t *testing.T) {
	store := persistence.NewSnapshotStore(t.TempDir())

	snaps, err := store.List("nope")
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestSnapshotStore_ProjectsAreIsolated(t *testing.T) {
	store := persistence.NewSnapshotStore(t.TempDir())

	require.NoError(t, store.Append("p1", snapshotAt(time.Now(), "ch-a")))
	require.NoError(t, store.Append("p2", snapshotAt(time.Now(), "ch-b")))

	p1, _ := store.List("p1")
	p2, _ := store.List("p2")
	require.Len(t, p1, 1)
	require.Len(t, p2, 1)
	assert.Equal(t, "ch-a", p1[0].Data.ChannelID)
	assert.Equal(t, "ch-b", p2[0].Data.ChannelID)
}
