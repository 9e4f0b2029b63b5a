package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/xandnet/peerwatch/models"
)

// One validator per RPC method, applied uniformly at the client
// boundary. Each decodes the raw result payload and checks the fields
// the collector depends on, reporting every problem found rather than
// stopping at the first.

func validateListPeers(target string, raw json.RawMessage) (*models.ListPeersResult, error) {
	var result models.ListPeersResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ValidationError{
			Target: target,
			Method: MethodListPeers,
			Issues: []FieldIssue{{Field: "result", Message: err.Error()}},
		}
	}

	issues := checkPeerList(result.Peers)
	if result.Peers == nil {
		issues = append(issues, FieldIssue{Field: "peers", Message: "missing peer list"})
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Target: target, Method: MethodListPeers, Issues: issues}
	}
	return &result, nil
}

func validateTelemetry(target string, raw json.RawMessage) (*models.Telemetry, error) {
	var result models.Telemetry
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ValidationError{
			Target: target,
			Method: MethodGetTelemetry,
			Issues: []FieldIssue{{Field: "result", Message: err.Error()}},
		}
	}

	issues := checkTelemetry(&result, "")
	if len(issues) > 0 {
		return nil, &ValidationError{Target: target, Method: MethodGetTelemetry, Issues: issues}
	}
	return &result, nil
}

func validateListPeersWithTelemetry(target string, raw json.RawMessage) (*models.ListPeersWithTelemetryResult, error) {
	var result models.ListPeersWithTelemetryResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ValidationError{
			Target: target,
			Method: MethodListPeersWithTelemetry,
			Issues: []FieldIssue{{Field: "result", Message: err.Error()}},
		}
	}

	var issues []FieldIssue
	if result.Peers == nil {
		issues = append(issues, FieldIssue{Field: "peers", Message: "missing peer list"})
	}
	for i, p := range result.Peers {
		issues = append(issues, checkPeer(p.Peer, fmt.Sprintf("peers[%d].", i))...)
		if p.Telemetry != nil {
			issues = append(issues, checkTelemetry(p.Telemetry, fmt.Sprintf("peers[%d].telemetry.", i))...)
		}
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Target: target, Method: MethodListPeersWithTelemetry, Issues: issues}
	}
	return &result, nil
}

func checkPeerList(peers []models.Peer) []FieldIssue {
	var issues []FieldIssue
	for i, p := range peers {
		issues = append(issues, checkPeer(p, fmt.Sprintf("peers[%d].", i))...)
	}
	return issues
}

func checkPeer(p models.Peer, prefix string) []FieldIssue {
	var issues []FieldIssue
	if p.Pubkey == "" {
		issues = append(issues, FieldIssue{Field: prefix + "pubkey", Message: "empty pubkey"})
	}
	if p.Address == "" {
		issues = append(issues, FieldIssue{Field: prefix + "address", Message: "empty address"})
	}
	if p.LastSeenTimestamp < 0 {
		issues = append(issues, FieldIssue{Field: prefix + "last_seen_timestamp", Message: "negative timestamp"})
	}
	return issues
}

// Telemetry values are peer-reported and mostly kept as-is even when
// implausible; only structurally impossible values are rejected.
func checkTelemetry(t *models.Telemetry, prefix string) []FieldIssue {
	var issues []FieldIssue
	if t.RAMTotal < 0 {
		issues = append(issues, FieldIssue{Field: prefix + "ram_total", Message: "negative ram_total"})
	}
	if t.RAMUsed < 0 {
		issues = append(issues, FieldIssue{Field: prefix + "ram_used", Message: "negative ram_used"})
	}
	if t.UptimeSeconds < 0 {
		issues = append(issues, FieldIssue{Field: prefix + "uptime_seconds", Message: "negative uptime"})
	}
	if t.ActiveConnections < 0 {
		issues = append(issues, FieldIssue{Field: prefix + "active_connections", Message: "negative connection count"})
	}
	return issues
}
