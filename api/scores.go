package api

import (
	"github.com/gin-gonic/gin"

	"github.com/xandnet/peerwatch/scoring"
)

// HandleScores  godoc
//
//	@Summary		Return ranked peer scores
//	@Description	Scores the latest snapshot's peers by uptime and performance and returns them ranked
//	@Tags			scores
//	@Produce		json
//	@Success		200	{array}	models.PeerScore
//	@Router			/scores [get]
func (h *Handler) HandleScores(c *gin.Context) {
	snap := h.snapshot(c.Request.Context())
	c.JSON(200, scoring.Score(snap.Peers))
}
