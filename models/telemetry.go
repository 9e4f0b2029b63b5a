package models

// Telemetry holds the live performance metrics one peer reports about
// itself via the get-telemetry RPC. It is optional on an EnrichedPeer:
// a peer whose telemetry endpoint is unreachable has no Telemetry.
//
// Values are peer-reported and not trusted: a misbehaving peer can send
// out-of-range garbage (e.g. CPUPercent > 100), which is kept as-is.
type Telemetry struct {
	ActiveConnections int     `json:"active_connections"`
	CPUPercent        float64 `json:"cpu_percent"`
	RAMUsed           int64   `json:"ram_used"`
	RAMTotal          int64   `json:"ram_total"`
	CurrentIndex      int64   `json:"current_index"`
	FileSize          int64   `json:"file_size"`
	PacketsSent       int64   `json:"packets_sent"`
	PacketsReceived   int64   `json:"packets_received"`
	TotalBytes        int64   `json:"total_bytes"`
	PageCount         int64   `json:"page_count"`
	UptimeSeconds     int64   `json:"uptime_seconds"`
}
