package models

import "time"

// CollectionErrorKind tags the origin of a failure observed during one
// collection cycle.
type CollectionErrorKind string

const (
	ErrSeedUnreachable  CollectionErrorKind = "seed_unreachable"
	ErrStatsUnreachable CollectionErrorKind = "stats_unreachable"
	ErrValidation       CollectionErrorKind = "validation_error"
)

// CollectionError is a failure surfaced as data. Collection failures
// are never propagated out of the collector; they accumulate here.
type CollectionError struct {
	Kind    CollectionErrorKind `json:"kind"`
	Target  string              `json:"target"`
	Message string              `json:"message"`
}

// Snapshot is the immutable result of one collection cycle. Consumers
// treat it as a read-only value, typically cached with a short TTL.
type Snapshot struct {
	ID                 string            `json:"id"`
	Peers              []EnrichedPeer    `json:"peers"`
	TotalDiscovered    int               `json:"total_discovered"`
	TotalWithTelemetry int               `json:"total_with_telemetry"`
	Errors             []CollectionError `json:"errors"`
	DurationMS         int64             `json:"duration_ms"`
	CollectedAt        time.Time         `json:"collected_at"`
}

// NetworkStats aggregates one snapshot into network-wide totals for the
// dashboard's stats endpoint.
type NetworkStats struct {
	TotalPeers     int       `json:"total_peers"`
	OnlinePeers    int       `json:"online_peers"`
	DegradedPeers  int       `json:"degraded_peers"`
	OfflinePeers   int       `json:"offline_peers"`
	UnknownPeers   int       `json:"unknown_peers"`
	WithTelemetry  int       `json:"with_telemetry"`
	TotalStorage   int64     `json:"total_storage_bytes"`
	TotalStorageH  string    `json:"total_storage_human"`
	AverageCPU     float64   `json:"average_cpu_percent"`
	NetworkHealth  float64   `json:"network_health"` // percent of peers online
	CollectionTime time.Time `json:"collection_time"`
	ErrorCount     int       `json:"error_count"`
}
