package api

import (
	"github.com/gin-gonic/gin"

	"github.com/xandnet/peerwatch/models"
	"github.com/xandnet/peerwatch/utils"
)

// HandleNetworkStats  godoc
//
//	@Summary		Return network-wide aggregates
//	@Description	Gets totals by status, storage totals and average CPU for the latest snapshot
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	models.NetworkStats
//	@Router			/stats [get]
func (h *Handler) HandleNetworkStats(c *gin.Context) {
	snap := h.snapshot(c.Request.Context())
	c.JSON(200, buildNetworkStats(snap))
}

func buildNetworkStats(snap *models.Snapshot) models.NetworkStats {
	counts := statusCounts(snap.Peers)

	var totalStorage int64
	var cpuSum float64
	cpuSamples := 0
	for _, p := range snap.Peers {
		if p.Telemetry == nil {
			continue
		}
		totalStorage += p.Telemetry.FileSize
		cpuSum += p.Telemetry.CPUPercent
		cpuSamples++
	}

	avgCPU := 0.0
	if cpuSamples > 0 {
		avgCPU = cpuSum / float64(cpuSamples)
	}

	health := 0.0
	if len(snap.Peers) > 0 {
		health = float64(counts[models.StatusOnline]) / float64(len(snap.Peers)) * 100
	}

	return models.NetworkStats{
		TotalPeers:     snap.TotalDiscovered,
		OnlinePeers:    counts[models.StatusOnline],
		DegradedPeers:  counts[models.StatusDegraded],
		OfflinePeers:   counts[models.StatusOffline],
		UnknownPeers:   counts[models.StatusUnknown],
		WithTelemetry:  snap.TotalWithTelemetry,
		TotalStorage:   totalStorage,
		TotalStorageH:  utils.HumanBytes(totalStorage),
		AverageCPU:     avgCPU,
		NetworkHealth:  health,
		CollectionTime: snap.CollectedAt,
		ErrorCount:     len(snap.Errors),
	}
}
