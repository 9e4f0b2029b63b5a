package collector

import (
	"time"

	"github.com/xandnet/peerwatch/models"
)

// Thresholds are the staleness boundaries, in seconds of peer age, that
// separate the four status classes. The defaults are empirically chosen
// and kept configurable rather than hardcoded at call sites.
type Thresholds struct {
	Online   int64
	Degraded int64
	Offline  int64
}

// DefaultThresholds returns the production staleness boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Online:   240,
		Degraded: 600,
		Offline:  3600,
	}
}

// DetermineStatus classifies a peer from the age of its last gossip
// sighting. Pure function of now-lastSeen: age below the online
// threshold is online, below degraded is degraded, below offline is
// offline, anything older is unknown.
func DetermineStatus(now time.Time, lastSeen int64, th Thresholds) models.PeerStatus {
	age := now.Unix() - lastSeen
	switch {
	case age < th.Online:
		return models.StatusOnline
	case age < th.Degraded:
		return models.StatusDegraded
	case age < th.Offline:
		return models.StatusOffline
	default:
		return models.StatusUnknown
	}
}
