package models

import (
	"net"
	"strconv"
)

// PeerStatus classifies peer health from the staleness of its last
// gossip sighting.
type PeerStatus string

const (
	StatusOnline   PeerStatus = "online"
	StatusDegraded PeerStatus = "degraded"
	StatusOffline  PeerStatus = "offline"
	StatusUnknown  PeerStatus = "unknown"
)

// Peer is one entity in the storage network as reported by a bootstrap
// source. Peers are value objects: they are re-created on every
// collection cycle and have no lifecycle outside a snapshot.
type Peer struct {
	Pubkey            string `json:"pubkey"`
	Address           string `json:"address"` // host:port
	RPCPort           int    `json:"rpc_port"`
	Version           string `json:"version,omitempty"`
	LastSeenTimestamp int64  `json:"last_seen_timestamp"` // seconds since epoch, peer-reported
	DeclaredUptime    int64  `json:"declared_uptime,omitempty"`
	DeclaredStorage   int64  `json:"declared_storage,omitempty"`
}

// EnrichedPeer is a Peer plus everything the collector derived for it:
// optional live telemetry, staleness-derived status, RAM percentage and
// best-effort credits.
type EnrichedPeer struct {
	Peer
	Telemetry  *Telemetry `json:"telemetry,omitempty"`
	Status     PeerStatus `json:"status"`
	RAMPercent *float64   `json:"ram_percent,omitempty"`
	UptimeHum  string     `json:"uptime_human,omitempty"`
	Credits    *int64     `json:"credits,omitempty"`
}

// Host returns the host part of the peer address, or the whole address
// when no port is present.
func (p Peer) Host() string {
	host, _, err := net.SplitHostPort(p.Address)
	if err != nil {
		return p.Address
	}
	return host
}

// RPCHostPort returns the host and port for direct RPC calls to the
// peer: the declared RPC port when set, otherwise the port embedded in
// the address, otherwise 0 (caller falls back to the well-known port).
func (p Peer) RPCHostPort() (string, int) {
	host, portStr, err := net.SplitHostPort(p.Address)
	if err != nil {
		host = p.Address
		portStr = ""
	}
	if p.RPCPort > 0 {
		return host, p.RPCPort
	}
	if port, err := strconv.Atoi(portStr); err == nil {
		return host, port
	}
	return host, 0
}
