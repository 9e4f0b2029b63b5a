package api

import (
	"github.com/gin-gonic/gin"

	"github.com/xandnet/peerwatch/models"
)

// HandleListPeers  godoc
//
//	@Summary		Return the current peer set
//	@Description	Gets the latest network snapshot: every discovered peer with telemetry, status and credits, plus collection errors
//	@Tags			peers
//	@Produce		json
//	@Success		200	{object}	models.Snapshot
//	@Router			/peers [get]
func (h *Handler) HandleListPeers(c *gin.Context) {
	snap := h.snapshot(c.Request.Context())
	c.JSON(200, snap)
}

// HandleGetPeer  godoc
//
//	@Summary		Return one peer by pubkey
//	@Description	Gets a single peer from the latest snapshot
//	@Tags			peers
//	@Produce		json
//	@Success		200	{object}	models.EnrichedPeer
//	@Failure		404	{string}	string
//	@Router			/peers/{pubkey} [get]
func (h *Handler) HandleGetPeer(c *gin.Context) {
	pubkey := c.Param("pubkey")
	snap := h.snapshot(c.Request.Context())

	for _, p := range snap.Peers {
		if p.Pubkey == pubkey {
			c.JSON(200, p)
			return
		}
	}

	c.JSON(404, gin.H{"error": "peer not found", "pubkey": pubkey})
}

// statusCounts tallies peers per status class.
func statusCounts(peers []models.EnrichedPeer) map[models.PeerStatus]int {
	counts := map[models.PeerStatus]int{}
	for _, p := range peers {
		counts[p.Status]++
	}
	return counts
}
