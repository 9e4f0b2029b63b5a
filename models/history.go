package models

import "time"

// PeerRecord is one append-only history row: the state of one peer as
// observed by one collection cycle. Rows are keyed by (CollectedAt,
// Pubkey) and are never updated after insert.
type PeerRecord struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RunID       string    `json:"run_id" gorm:"index"`
	Pubkey      string    `json:"pubkey" gorm:"index"`
	Address     string    `json:"address"`
	Version     string    `json:"version"`
	Status      string    `json:"status"`
	CPUPercent  float64   `json:"cpu_percent"`
	RAMPercent  float64   `json:"ram_percent"`
	FileSize    int64     `json:"file_size"`
	UptimeSecs  int64     `json:"uptime_seconds"`
	Credits     int64     `json:"credits"`
	CollectedAt time.Time `json:"collected_at" gorm:"index"`
}

// SnapshotRecord is one append-only history row of network-wide
// aggregates for one collection cycle.
type SnapshotRecord struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	RunID              string    `json:"run_id" gorm:"index"`
	TotalDiscovered    int       `json:"total_discovered"`
	TotalWithTelemetry int       `json:"total_with_telemetry"`
	OnlinePeers        int       `json:"online_peers"`
	DegradedPeers      int       `json:"degraded_peers"`
	OfflinePeers       int       `json:"offline_peers"`
	UnknownPeers       int       `json:"unknown_peers"`
	ErrorCount         int       `json:"error_count"`
	DurationMS         int64     `json:"duration_ms"`
	CollectedAt        time.Time `json:"collected_at" gorm:"index"`
}
