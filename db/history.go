package db

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xandnet/peerwatch/models"
)

// HistoryRepository appends snapshot results to the historical log and
// serves time-range queries over it. Rows are append-only: collection
// cycles insert, retention cleanup deletes, nothing updates.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// InsertSnapshot persists one collection cycle: a per-peer row for
// every enriched peer plus one aggregate row.
func (r *HistoryRepository) InsertSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	rows := make([]models.PeerRecord, 0, len(snapshot.Peers))
	counts := map[models.PeerStatus]int{}

	for _, p := range snapshot.Peers {
		counts[p.Status]++
		row := models.PeerRecord{
			RunID:       snapshot.ID,
			Pubkey:      p.Pubkey,
			Address:     p.Address,
			Version:     p.Version,
			Status:      string(p.Status),
			CollectedAt: snapshot.CollectedAt,
		}
		if p.Telemetry != nil {
			row.CPUPercent = p.Telemetry.CPUPercent
			row.FileSize = p.Telemetry.FileSize
			row.UptimeSecs = p.Telemetry.UptimeSeconds
		}
		if p.RAMPercent != nil {
			row.RAMPercent = *p.RAMPercent
		}
		if p.Credits != nil {
			row.Credits = *p.Credits
		}
		rows = append(rows, row)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, 100).Error; err != nil {
				return err
			}
		}
		aggregate := models.SnapshotRecord{
			RunID:              snapshot.ID,
			TotalDiscovered:    snapshot.TotalDiscovered,
			TotalWithTelemetry: snapshot.TotalWithTelemetry,
			OnlinePeers:        counts[models.StatusOnline],
			DegradedPeers:      counts[models.StatusDegraded],
			OfflinePeers:       counts[models.StatusOffline],
			UnknownPeers:       counts[models.StatusUnknown],
			ErrorCount:         len(snapshot.Errors),
			DurationMS:         snapshot.DurationMS,
			CollectedAt:        snapshot.CollectedAt,
		}
		return tx.Create(&aggregate).Error
	})
}

// QueryPeerRange returns the history rows for one pubkey (or all peers
// when pubkey is empty) within [from, to], oldest first.
func (r *HistoryRepository) QueryPeerRange(ctx context.Context, pubkey string, from, to time.Time) ([]models.PeerRecord, error) {
	var rows []models.PeerRecord
	q := r.db.WithContext(ctx).
		Where("collected_at BETWEEN ? AND ?", from, to).
		Order("collected_at asc")
	if pubkey != "" {
		q = q.Where("pubkey = ?", pubkey)
	}
	err := q.Find(&rows).Error
	return rows, err
}

// QuerySnapshotRange returns network-wide aggregate rows within
// [from, to], oldest first.
func (r *HistoryRepository) QuerySnapshotRange(ctx context.Context, from, to time.Time) ([]models.SnapshotRecord, error) {
	var rows []models.SnapshotRecord
	err := r.db.WithContext(ctx).
		Where("collected_at BETWEEN ? AND ?", from, to).
		Order("collected_at asc").
		Find(&rows).Error
	return rows, err
}

// PruneBefore deletes history rows older than the cutoff and reports
// how many peer rows were removed.
func (r *HistoryRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("collected_at < ?", cutoff).
		Delete(&models.PeerRecord{})
	if res.Error != nil {
		return 0, res.Error
	}
	err := r.db.WithContext(ctx).
		Where("collected_at < ?", cutoff).
		Delete(&models.SnapshotRecord{}).Error
	return res.RowsAffected, err
}
