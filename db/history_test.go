package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xandnet/peerwatch/models"
)

func testRepo(t *testing.T) *HistoryRepository {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&models.PeerRecord{}))
	require.NoError(t, database.AutoMigrate(&models.SnapshotRecord{}))
	return NewHistoryRepository(database)
}

func testSnapshot(collectedAt time.Time) *models.Snapshot {
	ram := 60.0
	credits := int64(99)
	return &models.Snapshot{
		ID: "run-1",
		Peers: []models.EnrichedPeer{
			{
				Peer:       models.Peer{Pubkey: "peer-a", Address: "10.0.0.1:6000", Version: "1.2.0"},
				Status:     models.StatusOnline,
				Telemetry:  &models.Telemetry{CPUPercent: 25, FileSize: 4096, UptimeSeconds: 3600},
				RAMPercent: &ram,
				Credits:    &credits,
			},
			{
				Peer:   models.Peer{Pubkey: "peer-b", Address: "10.0.0.2:6000"},
				Status: models.StatusDegraded,
			},
		},
		TotalDiscovered:    2,
		TotalWithTelemetry: 1,
		Errors:             []models.CollectionError{{Kind: models.ErrSeedUnreachable, Target: "seed3", Message: "timeout"}},
		DurationMS:         1200,
		CollectedAt:        collectedAt,
	}
}

func TestInsertSnapshotWritesRows(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.InsertSnapshot(ctx, testSnapshot(now)))

	rows, err := repo.QueryPeerRange(ctx, "", now.Add(-time.Minute), now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byKey := map[string]models.PeerRecord{}
	for _, r := range rows {
		byKey[r.Pubkey] = r
	}
	assert.Equal(t, "online", byKey["peer-a"].Status)
	assert.Equal(t, 25.0, byKey["peer-a"].CPUPercent)
	assert.Equal(t, 60.0, byKey["peer-a"].RAMPercent)
	assert.Equal(t, int64(99), byKey["peer-a"].Credits)
	assert.Equal(t, "degraded", byKey["peer-b"].Status)
	assert.Zero(t, byKey["peer-b"].CPUPercent)

	aggregates, err := repo.QuerySnapshotRange(ctx, now.Add(-time.Minute), now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, aggregates, 1)
	assert.Equal(t, 2, aggregates[0].TotalDiscovered)
	assert.Equal(t, 1, aggregates[0].OnlinePeers)
	assert.Equal(t, 1, aggregates[0].DegradedPeers)
	assert.Equal(t, 1, aggregates[0].ErrorCount)
}

func TestQueryPeerRangeFiltersByPubkey(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.InsertSnapshot(ctx, testSnapshot(now)))

	rows, err := repo.QueryPeerRange(ctx, "peer-a", now.Add(-time.Minute), now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "peer-a", rows[0].Pubkey)
}

func TestQueryPeerRangeExcludesOutsideWindow(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)

	require.NoError(t, repo.InsertSnapshot(ctx, testSnapshot(old)))

	rows, err := repo.QueryPeerRange(ctx, "", time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPruneBefore(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	old := time.Now().Add(-72 * time.Hour)
	recent := time.Now()

	oldSnap := testSnapshot(old)
	oldSnap.ID = "run-old"
	require.NoError(t, repo.InsertSnapshot(ctx, oldSnap))
	require.NoError(t, repo.InsertSnapshot(ctx, testSnapshot(recent)))

	pruned, err := repo.PruneBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)

	rows, err := repo.QueryPeerRange(ctx, "", old.Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	aggregates, err := repo.QuerySnapshotRange(ctx, old.Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, aggregates, 1)
	assert.Equal(t, "run-1", aggregates[0].RunID)
}
