// Package scoring ranks the peers of one snapshot into reputation
// scores. Scoring is a pure transform: it reads enriched peers and
// produces ranked output without touching the network or any store.
package scoring

import (
	"sort"

	goversion "github.com/hashicorp/go-version"

	"github.com/xandnet/peerwatch/models"
)

// statusWeight maps staleness classes to the uptime component of the
// score.
var statusWeight = map[models.PeerStatus]float64{
	models.StatusOnline:   100,
	models.StatusDegraded: 70,
	models.StatusOffline:  30,
	models.StatusUnknown:  0,
}

// Score ranks a snapshot's peers. Uptime score follows the staleness
// class; performance score rewards low CPU and RAM pressure and having
// telemetry at all; total is a weighted blend. Peers also get a
// version-currency flag against the highest version seen in the set.
func Score(peers []models.EnrichedPeer) []models.PeerScore {
	latest := latestVersion(peers)

	scores := make([]models.PeerScore, 0, len(peers))
	for _, p := range peers {
		uptime := statusWeight[p.Status]
		perf := performanceScore(p)

		score := models.PeerScore{
			Pubkey:           p.Pubkey,
			Address:          p.Address,
			Status:           p.Status,
			UptimeScore:      uptime,
			PerformanceScore: perf,
			TotalScore:       0.6*uptime + 0.4*perf,
			Version:          p.Version,
			VersionCurrent:   isCurrent(p.Version, latest),
		}
		if p.Credits != nil {
			score.Credits = *p.Credits
		}
		scores = append(scores, score)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].TotalScore != scores[j].TotalScore {
			return scores[i].TotalScore > scores[j].TotalScore
		}
		return scores[i].Pubkey < scores[j].Pubkey
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}

	return scores
}

func performanceScore(p models.EnrichedPeer) float64 {
	if p.Telemetry == nil {
		return 0
	}

	cpu := p.Telemetry.CPUPercent
	if cpu < 0 {
		cpu = 0
	}
	if cpu > 100 {
		cpu = 100
	}

	ram := 0.0
	if p.RAMPercent != nil {
		ram = *p.RAMPercent
		if ram < 0 {
			ram = 0
		}
		if ram > 100 {
			ram = 100
		}
	}

	// Half the weight on CPU headroom, half on RAM headroom.
	return 0.5*(100-cpu) + 0.5*(100-ram)
}

// latestVersion returns the highest parseable version string in the
// peer set, or "" when none parses.
func latestVersion(peers []models.EnrichedPeer) *goversion.Version {
	var latest *goversion.Version
	for _, p := range peers {
		if p.Version == "" {
			continue
		}
		v, err := goversion.NewVersion(p.Version)
		if err != nil {
			continue
		}
		if latest == nil || v.GreaterThan(latest) {
			latest = v
		}
	}
	return latest
}

func isCurrent(version string, latest *goversion.Version) bool {
	if latest == nil {
		return true
	}
	if version == "" {
		return false
	}
	v, err := goversion.NewVersion(version)
	if err != nil {
		return false
	}
	return v.GreaterThanOrEqual(latest)
}
